package repository

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/reelgate-inc/reelgate/internal/domain/entitlement"
	"github.com/reelgate-inc/reelgate/internal/domain/tier"
	"github.com/reelgate-inc/reelgate/internal/infrastructure/persistence/mappers"
	"github.com/reelgate-inc/reelgate/internal/infrastructure/persistence/models"
	"github.com/reelgate-inc/reelgate/internal/shared/db"
	"github.com/reelgate-inc/reelgate/internal/shared/errors"
	"github.com/reelgate-inc/reelgate/internal/shared/logger"
)

// EntitlementRepositoryImpl implements the entitlement.Repository interface
type EntitlementRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.EntitlementMapper
	logger logger.Interface
}

// NewEntitlementRepository creates a new entitlement repository instance
func NewEntitlementRepository(db *gorm.DB, logger logger.Interface) entitlement.Repository {
	return &EntitlementRepositoryImpl{
		db:     db,
		mapper: mappers.NewEntitlementMapper(),
		logger: logger,
	}
}

// Create inserts a new entitlement. The unique index on external_session_id
// rejects a second record for the same payment session.
func (r *EntitlementRepositoryImpl) Create(ctx context.Context, e *entitlement.Entitlement) error {
	model, err := r.mapper.ToModel(e)
	if err != nil {
		return err
	}

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		if errors.IsDuplicateError(err) {
			return fmt.Errorf("%w: %s", entitlement.ErrDuplicateSession, e.ExternalSessionID())
		}
		r.logger.Errorw("failed to create entitlement",
			"user_id", e.UserID(),
			"tier", e.TierID(),
			"external_session_id", e.ExternalSessionID(),
			"error", err)
		return fmt.Errorf("failed to create entitlement: %w", err)
	}

	if err := e.SetID(model.ID); err != nil {
		r.logger.Errorw("failed to set entitlement ID", "error", err)
		return fmt.Errorf("failed to set entitlement ID: %w", err)
	}

	return nil
}

func (r *EntitlementRepositoryImpl) GetByID(ctx context.Context, id uint) (*entitlement.Entitlement, error) {
	var model models.EntitlementModel
	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entitlement.ErrEntitlementNotFound
		}
		return nil, fmt.Errorf("failed to get entitlement: %w", err)
	}
	return r.mapper.ToEntity(&model)
}

// GetLatestByUser returns the current entitlement: newest created_at, then highest id.
func (r *EntitlementRepositoryImpl) GetLatestByUser(ctx context.Context, userID string) (*entitlement.Entitlement, error) {
	var model models.EntitlementModel
	err := db.GetTxFromContext(ctx, r.db).
		Scopes(db.ForUser(userID), db.NewestFirst()).
		Limit(1).
		Take(&model).Error
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to get latest entitlement", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to get latest entitlement: %w", err)
	}
	return r.mapper.ToEntity(&model)
}

func (r *EntitlementRepositoryImpl) GetByExternalSessionID(ctx context.Context, sessionID string) (*entitlement.Entitlement, error) {
	var model models.EntitlementModel
	err := db.GetTxFromContext(ctx, r.db).
		Where("external_session_id = ?", sessionID).
		Take(&model).Error
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get entitlement by session: %w", err)
	}
	return r.mapper.ToEntity(&model)
}

func (r *EntitlementRepositoryImpl) ListByUser(ctx context.Context, userID string) ([]*entitlement.Entitlement, error) {
	var list []*models.EntitlementModel
	if err := db.GetTxFromContext(ctx, r.db).
		Scopes(db.ForUser(userID), db.NewestFirst()).
		Find(&list).Error; err != nil {
		r.logger.Errorw("failed to list entitlements", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to list entitlements: %w", err)
	}
	return r.mapper.ToEntities(list)
}

// MarkNotificationSent flips one flag with "UPDATE ... WHERE flag = false" so
// concurrent notifier runs cannot both claim it.
func (r *EntitlementRepositoryImpl) MarkNotificationSent(ctx context.Context, id uint, kind entitlement.NotificationKind) (bool, error) {
	column, err := mappers.NotificationColumn(kind)
	if err != nil {
		return false, err
	}

	tx := db.GetTxFromContext(ctx, r.db)
	result := tx.Model(&models.EntitlementModel{}).
		Where("id = ? AND "+column+" = ?", id, false).
		Update(column, true)
	if result.Error != nil {
		r.logger.Errorw("failed to mark notification sent",
			"entitlement_id", id,
			"kind", kind,
			"error", result.Error)
		return false, fmt.Errorf("failed to mark notification sent: %w", result.Error)
	}
	if result.RowsAffected > 0 {
		return true, nil
	}

	// Nothing changed: either already set or no such entitlement.
	var count int64
	if err := tx.Model(&models.EntitlementModel{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check entitlement existence: %w", err)
	}
	if count == 0 {
		return false, entitlement.ErrEntitlementNotFound
	}
	return false, nil
}

func (r *EntitlementRepositoryImpl) ListRentalsExpiringBetween(ctx context.Context, from, to time.Time, kind entitlement.NotificationKind) ([]*entitlement.Entitlement, error) {
	column, err := mappers.NotificationColumn(kind)
	if err != nil {
		return nil, err
	}

	var list []*models.EntitlementModel
	if err := db.GetTxFromContext(ctx, r.db).
		Where("tier = ?", string(tier.Rental)).
		Where("expires_at > ? AND expires_at <= ?", from.UTC(), to.UTC()).
		Where(column+" = ?", false).
		Order("expires_at ASC").
		Order("id ASC").
		Find(&list).Error; err != nil {
		r.logger.Errorw("failed to list expiring rentals",
			"kind", kind,
			"from", from,
			"to", to,
			"error", err)
		return nil, fmt.Errorf("failed to list expiring rentals: %w", err)
	}
	return r.mapper.ToEntities(list)
}
