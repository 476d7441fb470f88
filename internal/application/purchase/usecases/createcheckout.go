package usecases

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/reelgate-inc/reelgate/internal/application/purchase/dto"
	"github.com/reelgate-inc/reelgate/internal/application/purchase/paymentgateway"
	"github.com/reelgate-inc/reelgate/internal/domain/checkout"
	"github.com/reelgate-inc/reelgate/internal/domain/tier"
	"github.com/reelgate-inc/reelgate/internal/domain/user"
	"github.com/reelgate-inc/reelgate/internal/shared/errors"
	"github.com/reelgate-inc/reelgate/internal/shared/logger"
)

type CreateCheckoutCommand struct {
	UserID string
	Tier   string
}

// CreateCheckoutUseCase opens a hosted checkout with the payment processor,
// but only after the eligibility pre-check passes.
type CreateCheckoutUseCase struct {
	store        EntitlementReader
	checkoutRepo checkout.CheckoutRepository
	gateway      paymentgateway.PaymentGateway
	profiles     ProfileReader // Optional
	ttl          time.Duration
	logger       logger.Interface
}

func NewCreateCheckoutUseCase(
	store EntitlementReader,
	checkoutRepo checkout.CheckoutRepository,
	gateway paymentgateway.PaymentGateway,
	ttl time.Duration,
	logger logger.Interface,
) *CreateCheckoutUseCase {
	return &CreateCheckoutUseCase{
		store:        store,
		checkoutRepo: checkoutRepo,
		gateway:      gateway,
		ttl:          ttl,
		logger:       logger,
	}
}

// SetProfileReader enables prefilling the customer email (optional dependency injection)
func (uc *CreateCheckoutUseCase) SetProfileReader(profiles ProfileReader) {
	uc.profiles = profiles
}

func (uc *CreateCheckoutUseCase) Execute(ctx context.Context, cmd CreateCheckoutCommand) (*dto.CheckoutResponse, error) {
	requested, err := parsePurchaseCommand(cmd.UserID, cmd.Tier)
	if err != nil {
		return nil, err
	}

	eligibility, err := checkUserEligibility(ctx, uc.store, cmd.UserID, requested)
	if err != nil {
		uc.logger.Errorw("eligibility check failed before checkout", "user_id", cmd.UserID, "error", err)
		return nil, err
	}
	if !eligibility.Allowed {
		uc.logger.Infow("checkout refused",
			"user_id", cmd.UserID,
			"tier", requested,
			"reason", eligibility.Reason,
		)
		return &dto.CheckoutResponse{Allowed: false, Reason: eligibility.Reason}, nil
	}

	co, err := checkout.NewCheckout(cmd.UserID, requested, uc.ttl, uc.store.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to create checkout: %w", err)
	}

	t := tier.MustGet(requested)
	session, err := uc.gateway.CreateCheckoutSession(ctx, paymentgateway.CreateCheckoutRequest{
		Reference:     co.Reference(),
		UserID:        cmd.UserID,
		Tier:          string(requested),
		ProductName:   t.Name(),
		AmountCents:   co.AmountCents(),
		Currency:      co.Currency(),
		CustomerEmail: uc.customerEmail(ctx, cmd.UserID),
	})
	if err != nil {
		uc.logger.Errorw("payment processor rejected checkout session",
			"user_id", cmd.UserID,
			"reference", co.Reference(),
			"error", err,
		)
		return nil, errors.NewDependencyError("payment processor unavailable")
	}

	if err := co.AttachSession(session.SessionID, session.RedirectURL, uc.store.Now()); err != nil {
		return nil, fmt.Errorf("failed to attach checkout session: %w", err)
	}

	// The session already exists at the processor; if this write fails the
	// webhook still settles from the signed event metadata.
	if err := uc.checkoutRepo.Create(ctx, co); err != nil {
		uc.logger.Errorw("failed to persist checkout",
			"reference", co.Reference(),
			"session_id", session.SessionID,
			"error", err,
		)
		return nil, fmt.Errorf("failed to persist checkout: %w", err)
	}

	uc.logger.Infow("checkout created",
		"user_id", cmd.UserID,
		"tier", requested,
		"reference", co.Reference(),
		"session_id", session.SessionID,
	)

	return &dto.CheckoutResponse{
		Allowed:     true,
		Reference:   co.Reference(),
		SessionID:   session.SessionID,
		RedirectURL: session.RedirectURL,
	}, nil
}

func (uc *CreateCheckoutUseCase) customerEmail(ctx context.Context, userID string) string {
	if uc.profiles == nil {
		return ""
	}
	p, err := uc.profiles.GetByUserID(ctx, userID)
	if err != nil {
		if !stderrors.Is(err, user.ErrProfileNotFound) {
			uc.logger.Warnw("failed to load profile for checkout", "user_id", userID, "error", err)
		}
		return ""
	}
	return p.Email()
}
