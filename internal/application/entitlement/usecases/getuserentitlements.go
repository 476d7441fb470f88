package usecases

import (
	"context"
	"time"

	"github.com/reelgate-inc/reelgate/internal/application/entitlement/dto"
	"github.com/reelgate-inc/reelgate/internal/domain/entitlement"
	"github.com/reelgate-inc/reelgate/internal/shared/errors"
	"github.com/reelgate-inc/reelgate/internal/shared/logger"
)

type entitlementHistory interface {
	ListUserEntitlements(ctx context.Context, userID string) ([]*entitlement.Entitlement, error)
	Now() time.Time
}

// GetUserEntitlementsUseCase returns a user's full purchase history together
// with the entitlement currently in force.
type GetUserEntitlementsUseCase struct {
	store  entitlementHistory
	logger logger.Interface
}

func NewGetUserEntitlementsUseCase(store entitlementHistory, logger logger.Interface) *GetUserEntitlementsUseCase {
	return &GetUserEntitlementsUseCase{
		store:  store,
		logger: logger,
	}
}

func (uc *GetUserEntitlementsUseCase) Execute(ctx context.Context, userID string) (*dto.UserEntitlementsResponse, error) {
	if userID == "" {
		return nil, errors.NewValidationError("user_id is required")
	}

	list, err := uc.store.ListUserEntitlements(ctx, userID)
	if err != nil {
		uc.logger.Errorw("failed to list user entitlements", "user_id", userID, "error", err)
		return nil, err
	}

	// History is newest first, so the head is the current entitlement.
	var current *entitlement.Entitlement
	if len(list) > 0 {
		current = list[0]
	}

	return &dto.UserEntitlementsResponse{
		UserID:       userID,
		Current:      dto.ToEntitlementResponse(current),
		Holding:      entitlement.HoldingName(entitlement.Resolve(current, uc.store.Now())),
		Entitlements: dto.ToEntitlementResponses(list),
	}, nil
}
