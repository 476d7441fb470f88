package usecases

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/reelgate-inc/reelgate/internal/domain/user"
	"github.com/reelgate-inc/reelgate/internal/shared/biztime"
	"github.com/reelgate-inc/reelgate/internal/shared/errors"
	"github.com/reelgate-inc/reelgate/internal/shared/logger"
)

// SyncProfileCommand carries the identity-provider claims of one request.
type SyncProfileCommand struct {
	UserID      string
	Email       string
	DisplayName string
}

// SyncProfileUseCase keeps the local contact profile in step with the
// identity provider. Unchanged profiles are not written.
type SyncProfileUseCase struct {
	profileRepo user.ProfileRepository
	clock       biztime.Clock
	logger      logger.Interface
}

func NewSyncProfileUseCase(profileRepo user.ProfileRepository, clock biztime.Clock, logger logger.Interface) *SyncProfileUseCase {
	return &SyncProfileUseCase{
		profileRepo: profileRepo,
		clock:       clock,
		logger:      logger,
	}
}

func (uc *SyncProfileUseCase) Execute(ctx context.Context, cmd SyncProfileCommand) (*user.Profile, error) {
	if cmd.UserID == "" {
		return nil, errors.NewValidationError("user_id is required")
	}
	now := uc.clock.Now()

	existing, err := uc.profileRepo.GetByUserID(ctx, cmd.UserID)
	switch {
	case err == nil:
		if !existing.UpdateFromClaims(cmd.Email, cmd.DisplayName, now) {
			return existing, nil
		}
		if err := uc.profileRepo.Upsert(ctx, existing); err != nil {
			return nil, fmt.Errorf("failed to update profile: %w", err)
		}
		uc.logger.Debugw("profile updated from claims", "user_id", cmd.UserID)
		return existing, nil

	case stderrors.Is(err, user.ErrProfileNotFound):
		profile, err := user.NewProfile(cmd.UserID, cmd.Email, cmd.DisplayName, now)
		if err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
		if err := uc.profileRepo.Upsert(ctx, profile); err != nil {
			return nil, fmt.Errorf("failed to create profile: %w", err)
		}
		uc.logger.Infow("profile created", "user_id", cmd.UserID, "has_email", profile.HasEmail())
		return profile, nil

	default:
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
}
