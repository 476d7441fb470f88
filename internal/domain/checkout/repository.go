package checkout

import (
	"context"
	"errors"
	"time"
)

var (
	ErrCheckoutNotFound = errors.New("checkout not found")
	// ErrConcurrentUpdate means the row changed since it was loaded.
	ErrConcurrentUpdate = errors.New("checkout was modified concurrently")
)

type CheckoutRepository interface {
	Create(ctx context.Context, c *Checkout) error
	// Update persists status changes using optimistic locking on version.
	Update(ctx context.Context, c *Checkout) error
	GetByReference(ctx context.Context, reference string) (*Checkout, error)
	// GetByExternalSessionID returns nil when no checkout carries the session.
	GetByExternalSessionID(ctx context.Context, sessionID string) (*Checkout, error)
	// ListExpiredPending returns pending checkouts whose expiry is before now.
	ListExpiredPending(ctx context.Context, now time.Time, limit int) ([]*Checkout, error)
}
