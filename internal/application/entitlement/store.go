// Package entitlement is the application-level Entitlement Store: the only
// writer of entitlement records and their notification marks.
package entitlement

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/reelgate-inc/reelgate/internal/domain/entitlement"
	"github.com/reelgate-inc/reelgate/internal/domain/tier"
	"github.com/reelgate-inc/reelgate/internal/shared/biztime"
	"github.com/reelgate-inc/reelgate/internal/shared/errors"
	"github.com/reelgate-inc/reelgate/internal/shared/logger"
)

type Store struct {
	entitlementRepo entitlement.Repository
	clock           biztime.Clock
	logger          logger.Interface
}

func NewStore(
	entitlementRepo entitlement.Repository,
	clock biztime.Clock,
	logger logger.Interface,
) *Store {
	return &Store{
		entitlementRepo: entitlementRepo,
		clock:           clock,
		logger:          logger,
	}
}

// Now exposes the store's clock so decisions and writes share one notion of time.
func (s *Store) Now() time.Time {
	return s.clock.Now()
}

// GetCurrentEntitlement returns the user's most recently created entitlement,
// or nil when the user has never purchased.
func (s *Store) GetCurrentEntitlement(ctx context.Context, userID string) (*entitlement.Entitlement, error) {
	current, err := s.entitlementRepo.GetLatestByUser(ctx, userID)
	if err != nil {
		s.logger.Errorw("failed to load current entitlement", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to load current entitlement: %w", err)
	}
	return current, nil
}

// GetBySessionID returns the entitlement settled from a payment session, or nil.
func (s *Store) GetBySessionID(ctx context.Context, sessionID string) (*entitlement.Entitlement, error) {
	e, err := s.entitlementRepo.GetByExternalSessionID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up entitlement by session: %w", err)
	}
	return e, nil
}

// RecordPurchase appends a new completed entitlement. It never touches earlier
// records. Callers are responsible for calling it at most once per session.
func (s *Store) RecordPurchase(ctx context.Context, userID string, tierID tier.ID, externalSessionID string) (*entitlement.Entitlement, error) {
	e, err := entitlement.NewEntitlement(userID, tierID, externalSessionID, s.clock.Now())
	if err != nil {
		return nil, errors.NewValidationError("invalid purchase", err.Error())
	}

	if err := s.entitlementRepo.Create(ctx, e); err != nil {
		if stderrors.Is(err, entitlement.ErrDuplicateSession) {
			return nil, errors.NewConflictError("payment session already settled", externalSessionID)
		}
		s.logger.Errorw("failed to record purchase",
			"user_id", userID,
			"tier", tierID,
			"session_id", externalSessionID,
			"error", err,
		)
		return nil, fmt.Errorf("failed to record purchase: %w", err)
	}

	s.logger.Infow("purchase recorded",
		"entitlement_id", e.ID(),
		"user_id", userID,
		"tier", tierID,
		"expires_at", e.ExpiresAt(),
	)
	return e, nil
}

// MarkNotificationSent sets one notification flag. Setting a flag twice is a
// no-op; an unknown entitlement is a NotFound error.
func (s *Store) MarkNotificationSent(ctx context.Context, entitlementID uint, kind entitlement.NotificationKind) error {
	if !kind.IsValid() {
		return errors.NewValidationError(entitlement.ErrInvalidNotificationKind.Error(), string(kind))
	}

	updated, err := s.entitlementRepo.MarkNotificationSent(ctx, entitlementID, kind)
	if err != nil {
		if stderrors.Is(err, entitlement.ErrEntitlementNotFound) {
			return errors.NewNotFoundError("entitlement not found", fmt.Sprintf("id=%d", entitlementID))
		}
		return fmt.Errorf("failed to mark %s notification for entitlement %d: %w", kind, entitlementID, err)
	}
	if !updated {
		s.logger.Debugw("notification already marked", "entitlement_id", entitlementID, "kind", kind)
	}
	return nil
}

// ListUserEntitlements returns the user's purchase history, newest first.
func (s *Store) ListUserEntitlements(ctx context.Context, userID string) ([]*entitlement.Entitlement, error) {
	list, err := s.entitlementRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list entitlements: %w", err)
	}
	return list, nil
}

// ListRentalsExpiringBetween is the notifier's read path.
func (s *Store) ListRentalsExpiringBetween(ctx context.Context, from, to time.Time, kind entitlement.NotificationKind) ([]*entitlement.Entitlement, error) {
	list, err := s.entitlementRepo.ListRentalsExpiringBetween(ctx, from, to, kind)
	if err != nil {
		return nil, fmt.Errorf("failed to list rentals expiring between %s and %s: %w",
			biztime.FormatRFC3339(from), biztime.FormatRFC3339(to), err)
	}
	return list, nil
}
