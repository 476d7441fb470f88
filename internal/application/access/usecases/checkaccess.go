package usecases

import (
	"context"

	"github.com/reelgate-inc/reelgate/internal/application/access/dto"
	"github.com/reelgate-inc/reelgate/internal/domain/entitlement"
	"github.com/reelgate-inc/reelgate/internal/domain/tier"
	"github.com/reelgate-inc/reelgate/internal/shared/errors"
	"github.com/reelgate-inc/reelgate/internal/shared/logger"
)

type CheckAccessQuery struct {
	UserID   string
	Category string
}

// CheckAccessUseCase computes effective access from the user's current
// entitlement. Nothing is cached between requests.
type CheckAccessUseCase struct {
	store  EntitlementReader
	logger logger.Interface
}

func NewCheckAccessUseCase(store EntitlementReader, logger logger.Interface) *CheckAccessUseCase {
	return &CheckAccessUseCase{
		store:  store,
		logger: logger,
	}
}

func (uc *CheckAccessUseCase) Execute(ctx context.Context, query CheckAccessQuery) (*dto.AccessResponse, error) {
	if query.UserID == "" {
		return nil, errors.NewValidationError("user_id is required")
	}
	category, err := tier.ParseCategory(query.Category)
	if err != nil {
		return nil, errors.NewValidationError("unknown content category", query.Category)
	}

	decision, err := uc.decide(ctx, query.UserID, category)
	if err != nil {
		return nil, err
	}
	return dto.ToAccessResponse(decision), nil
}

func (uc *CheckAccessUseCase) decide(ctx context.Context, userID string, category tier.Category) (entitlement.AccessDecision, error) {
	current, err := uc.store.GetCurrentEntitlement(ctx, userID)
	if err != nil {
		uc.logger.Errorw("failed to load entitlement for access check", "user_id", userID, "error", err)
		return entitlement.AccessDecision{}, err
	}

	decision := entitlement.CheckAccess(current, uc.store.Now(), category)
	uc.logger.Debugw("access checked",
		"user_id", userID,
		"category", category,
		"has_access", decision.HasAccess,
		"tier", decision.Tier,
	)
	return decision, nil
}
