package entitlement

import (
	"context"
	"time"
)

// Repository defines the interface for entitlement persistence operations.
// Entitlements are never updated except for their notification marks, and
// never deleted.
type Repository interface {
	// Create persists a new entitlement and assigns its ID. A second entitlement
	// for the same external session fails with ErrDuplicateSession.
	Create(ctx context.Context, e *Entitlement) error

	// GetByID returns ErrEntitlementNotFound when no row matches.
	GetByID(ctx context.Context, id uint) (*Entitlement, error)

	// GetLatestByUser returns the most recently created entitlement for the
	// user, ties broken by highest ID, or nil when the user has none.
	GetLatestByUser(ctx context.Context, userID string) (*Entitlement, error)

	// GetByExternalSessionID returns nil when the session was never settled.
	GetByExternalSessionID(ctx context.Context, sessionID string) (*Entitlement, error)

	// ListByUser returns the full purchase history, newest first.
	ListByUser(ctx context.Context, userID string) ([]*Entitlement, error)

	// MarkNotificationSent sets one flag with a conditional update. It returns
	// false when the flag was already set and ErrEntitlementNotFound when the
	// entitlement does not exist.
	MarkNotificationSent(ctx context.Context, id uint, kind NotificationKind) (bool, error)

	// ListRentalsExpiringBetween returns rentals with from < expires_at <= to
	// whose flag for kind is still unset.
	ListRentalsExpiringBetween(ctx context.Context, from, to time.Time, kind NotificationKind) ([]*Entitlement, error)
}
