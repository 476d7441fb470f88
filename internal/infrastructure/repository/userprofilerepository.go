package repository

import (
	"context"
	stderrors "errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/reelgate-inc/reelgate/internal/domain/user"
	"github.com/reelgate-inc/reelgate/internal/infrastructure/persistence/mappers"
	"github.com/reelgate-inc/reelgate/internal/infrastructure/persistence/models"
	"github.com/reelgate-inc/reelgate/internal/shared/db"
	"github.com/reelgate-inc/reelgate/internal/shared/logger"
)

type UserProfileRepository struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewUserProfileRepository(db *gorm.DB, logger logger.Interface) *UserProfileRepository {
	return &UserProfileRepository{db: db, logger: logger}
}

// Upsert inserts the profile or refreshes the contact columns of an existing row.
func (r *UserProfileRepository) Upsert(ctx context.Context, p *user.Profile) error {
	model := mappers.UserProfileToModel(p)

	err := db.GetTxFromContext(ctx, r.db).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"email", "display_name", "updated_at"}),
		}).
		Create(model).Error
	if err != nil {
		r.logger.Errorw("failed to upsert user profile", "user_id", p.UserID(), "error", err)
		return fmt.Errorf("failed to upsert user profile: %w", err)
	}
	return nil
}

func (r *UserProfileRepository) GetByUserID(ctx context.Context, userID string) (*user.Profile, error) {
	var model models.UserProfileModel
	if err := db.GetTxFromContext(ctx, r.db).
		Where("user_id = ?", userID).
		Take(&model).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, user.ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to get user profile: %w", err)
	}
	return mappers.UserProfileToDomain(&model), nil
}
