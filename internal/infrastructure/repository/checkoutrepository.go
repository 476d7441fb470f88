package repository

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/reelgate-inc/reelgate/internal/domain/checkout"
	vo "github.com/reelgate-inc/reelgate/internal/domain/checkout/valueobjects"
	"github.com/reelgate-inc/reelgate/internal/infrastructure/persistence/mappers"
	"github.com/reelgate-inc/reelgate/internal/infrastructure/persistence/models"
	"github.com/reelgate-inc/reelgate/internal/shared/db"
	"github.com/reelgate-inc/reelgate/internal/shared/errors"
	"github.com/reelgate-inc/reelgate/internal/shared/logger"
)

type CheckoutRepository struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewCheckoutRepository(db *gorm.DB, logger logger.Interface) *CheckoutRepository {
	return &CheckoutRepository{db: db, logger: logger}
}

func (r *CheckoutRepository) Create(ctx context.Context, c *checkout.Checkout) error {
	model := mappers.CheckoutToModel(c)

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		if errors.IsDuplicateError(err) {
			return errors.NewConflictError("checkout already exists", c.Reference())
		}
		return fmt.Errorf("failed to create checkout: %w", err)
	}

	// Write back the auto-generated ID to the domain object
	if err := c.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set checkout ID: %w", err)
	}
	return nil
}

// Update persists status changes. The domain object has already incremented
// its version, so the row must still carry the previous one.
func (r *CheckoutRepository) Update(ctx context.Context, c *checkout.Checkout) error {
	model := mappers.CheckoutToModel(c)

	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.CheckoutSessionModel{}).
		Where("id = ? AND version = ?", model.ID, model.Version-1).
		Updates(map[string]interface{}{
			"status":              model.Status,
			"external_session_id": model.ExternalSessionID,
			"redirect_url":        model.RedirectURL,
			"reject_reason":       model.RejectReason,
			"settled_at":          model.SettledAt,
			"version":             model.Version,
			"updated_at":          model.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update checkout: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		r.logger.Warnw("checkout update lost optimistic lock",
			"reference", c.Reference(),
			"version", model.Version)
		return fmt.Errorf("%w: %s", checkout.ErrConcurrentUpdate, c.Reference())
	}
	return nil
}

func (r *CheckoutRepository) GetByReference(ctx context.Context, reference string) (*checkout.Checkout, error) {
	var model models.CheckoutSessionModel
	if err := db.GetTxFromContext(ctx, r.db).
		Where("reference = ?", reference).
		Take(&model).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, checkout.ErrCheckoutNotFound
		}
		return nil, fmt.Errorf("failed to get checkout by reference: %w", err)
	}
	return mappers.CheckoutToDomain(&model), nil
}

func (r *CheckoutRepository) GetByExternalSessionID(ctx context.Context, sessionID string) (*checkout.Checkout, error) {
	var model models.CheckoutSessionModel
	if err := db.GetTxFromContext(ctx, r.db).
		Where("external_session_id = ?", sessionID).
		Take(&model).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get checkout by session: %w", err)
	}
	return mappers.CheckoutToDomain(&model), nil
}

func (r *CheckoutRepository) ListExpiredPending(ctx context.Context, now time.Time, limit int) ([]*checkout.Checkout, error) {
	var list []models.CheckoutSessionModel
	if err := db.GetTxFromContext(ctx, r.db).
		Where("status = ? AND expires_at < ?", string(vo.CheckoutStatusPending), now.UTC()).
		Order("expires_at ASC").
		Limit(limit).
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to list expired checkouts: %w", err)
	}

	out := make([]*checkout.Checkout, len(list))
	for i := range list {
		out[i] = mappers.CheckoutToDomain(&list[i])
	}
	return out, nil
}
