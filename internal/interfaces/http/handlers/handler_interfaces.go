package handlers

import (
	"context"

	accessdto "github.com/reelgate-inc/reelgate/internal/application/access/dto"
	accessUsecases "github.com/reelgate-inc/reelgate/internal/application/access/usecases"
	entitlementdto "github.com/reelgate-inc/reelgate/internal/application/entitlement/dto"
	purchasedto "github.com/reelgate-inc/reelgate/internal/application/purchase/dto"
	purchaseUsecases "github.com/reelgate-inc/reelgate/internal/application/purchase/usecases"
)

// Use case interfaces keep handlers testable without a database.

type checkEligibilityUseCase interface {
	Execute(ctx context.Context, cmd purchaseUsecases.CheckEligibilityCommand) (*purchasedto.EligibilityResponse, error)
}

type createCheckoutUseCase interface {
	Execute(ctx context.Context, cmd purchaseUsecases.CreateCheckoutCommand) (*purchasedto.CheckoutResponse, error)
}

type handleWebhookUseCase interface {
	Execute(ctx context.Context, payload []byte, signature string) (*purchasedto.SettlementResult, error)
}

type checkAccessUseCase interface {
	Execute(ctx context.Context, query accessUsecases.CheckAccessQuery) (*accessdto.AccessResponse, error)
}

type mintPlaybackURLUseCase interface {
	Execute(ctx context.Context, cmd accessUsecases.MintPlaybackURLCommand) (*accessdto.PlaybackResponse, error)
}

type getUserEntitlementsUseCase interface {
	Execute(ctx context.Context, userID string) (*entitlementdto.UserEntitlementsResponse, error)
}

type batchJob interface {
	Execute(ctx context.Context) (int, error)
}
