package usecases

import (
	"context"

	"github.com/reelgate-inc/reelgate/internal/application/purchase/dto"
	"github.com/reelgate-inc/reelgate/internal/domain/entitlement"
	"github.com/reelgate-inc/reelgate/internal/domain/tier"
	"github.com/reelgate-inc/reelgate/internal/shared/errors"
	"github.com/reelgate-inc/reelgate/internal/shared/logger"
)

type CheckEligibilityCommand struct {
	UserID string
	Tier   string
}

type CheckEligibilityUseCase struct {
	store  EntitlementReader
	logger logger.Interface
}

func NewCheckEligibilityUseCase(store EntitlementReader, logger logger.Interface) *CheckEligibilityUseCase {
	return &CheckEligibilityUseCase{
		store:  store,
		logger: logger,
	}
}

func (uc *CheckEligibilityUseCase) Execute(ctx context.Context, cmd CheckEligibilityCommand) (*dto.EligibilityResponse, error) {
	requested, err := parsePurchaseCommand(cmd.UserID, cmd.Tier)
	if err != nil {
		return nil, err
	}

	result, err := checkUserEligibility(ctx, uc.store, cmd.UserID, requested)
	if err != nil {
		uc.logger.Errorw("eligibility check failed", "user_id", cmd.UserID, "tier", cmd.Tier, "error", err)
		return nil, err
	}

	uc.logger.Debugw("eligibility checked",
		"user_id", cmd.UserID,
		"tier", requested,
		"allowed", result.Allowed,
	)
	return &dto.EligibilityResponse{Allowed: result.Allowed, Reason: result.Reason}, nil
}

func parsePurchaseCommand(userID, rawTier string) (tier.ID, error) {
	if userID == "" {
		return "", errors.NewValidationError("user_id is required")
	}
	requested, err := tier.ParseID(rawTier)
	if err != nil {
		return "", errors.NewValidationError("unknown tier", rawTier)
	}
	return requested, nil
}

// checkUserEligibility loads the user's current entitlement and applies the
// pure eligibility rules at the store's current time.
func checkUserEligibility(ctx context.Context, store EntitlementReader, userID string, requested tier.ID) (entitlement.Eligibility, error) {
	current, err := store.GetCurrentEntitlement(ctx, userID)
	if err != nil {
		return entitlement.Eligibility{}, err
	}
	return entitlement.CheckEligibility(current, store.Now(), requested), nil
}
