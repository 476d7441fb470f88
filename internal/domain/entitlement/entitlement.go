package entitlement

import (
	"fmt"
	"time"

	"github.com/reelgate-inc/reelgate/internal/domain/tier"
)

// Entitlement is the durable record of one completed purchase. Records are
// append-only: an upgrade creates a new entitlement instead of changing an old one.
type Entitlement struct {
	id                uint
	userID            string
	tierID            tier.ID
	status            EntitlementStatus
	externalSessionID string
	createdAt         time.Time
	expiresAt         *time.Time // set iff tierID is a timed tier
	marks             NotificationMarks
	metadata          map[string]any
}

// NewEntitlement creates a completed entitlement for a settled payment.
// expiresAt is derived from the tier catalog.
func NewEntitlement(userID string, tierID tier.ID, externalSessionID string, createdAt time.Time) (*Entitlement, error) {
	if userID == "" {
		return nil, ErrUserIDRequired
	}
	if externalSessionID == "" {
		return nil, ErrExternalSessionIDRequired
	}
	t, err := tier.Get(tierID)
	if err != nil {
		return nil, err
	}

	createdAt = createdAt.UTC()
	return &Entitlement{
		userID:            userID,
		tierID:            tierID,
		status:            EntitlementStatusCompleted,
		externalSessionID: externalSessionID,
		createdAt:         createdAt,
		expiresAt:         t.ExpiresAt(createdAt),
		metadata:          make(map[string]any),
	}, nil
}

// ReconstructEntitlement reconstructs an entitlement from persistence
func ReconstructEntitlement(
	id uint,
	userID string,
	tierID tier.ID,
	status EntitlementStatus,
	externalSessionID string,
	createdAt time.Time,
	expiresAt *time.Time,
	marks NotificationMarks,
	metadata map[string]any,
) (*Entitlement, error) {
	if id == 0 {
		return nil, fmt.Errorf("entitlement ID cannot be zero")
	}
	if userID == "" {
		return nil, ErrUserIDRequired
	}
	t, err := tier.Get(tierID)
	if err != nil {
		return nil, err
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidStatus, status)
	}
	if t.IsPermanent() != (expiresAt == nil) {
		return nil, fmt.Errorf("%w: entitlement %d tier %s", ErrExpiryMismatch, id, tierID)
	}

	if metadata == nil {
		metadata = make(map[string]any)
	}
	if expiresAt != nil {
		exp := expiresAt.UTC()
		expiresAt = &exp
	}

	return &Entitlement{
		id:                id,
		userID:            userID,
		tierID:            tierID,
		status:            status,
		externalSessionID: externalSessionID,
		createdAt:         createdAt.UTC(),
		expiresAt:         expiresAt,
		marks:             marks,
		metadata:          metadata,
	}, nil
}

// ID returns the entitlement ID
func (e *Entitlement) ID() uint {
	return e.id
}

func (e *Entitlement) UserID() string {
	return e.userID
}

func (e *Entitlement) TierID() tier.ID {
	return e.tierID
}

func (e *Entitlement) Status() EntitlementStatus {
	return e.status
}

// ExternalSessionID is the payment processor's checkout session; it is unique
// across all entitlements and serves as the settlement idempotency key.
func (e *Entitlement) ExternalSessionID() string {
	return e.externalSessionID
}

func (e *Entitlement) CreatedAt() time.Time {
	return e.createdAt
}

// ExpiresAt returns a copy of the expiry, nil for permanent tiers.
func (e *Entitlement) ExpiresAt() *time.Time {
	if e.expiresAt == nil {
		return nil
	}
	exp := *e.expiresAt
	return &exp
}

func (e *Entitlement) Marks() NotificationMarks {
	return e.marks
}

func (e *Entitlement) Metadata() map[string]any {
	return e.metadata
}

// SetID sets the entitlement ID (only for persistence layer use)
func (e *Entitlement) SetID(id uint) error {
	if e.id != 0 {
		return fmt.Errorf("entitlement ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("entitlement ID cannot be zero")
	}
	e.id = id
	return nil
}

// IsExpiredAt reports whether a timed entitlement has lapsed. A rental is
// still valid at exactly its expiry instant.
func (e *Entitlement) IsExpiredAt(now time.Time) bool {
	return e.expiresAt != nil && now.After(*e.expiresAt)
}

// SetMetadata sets a metadata value
func (e *Entitlement) SetMetadata(key string, value any) {
	if e.metadata == nil {
		e.metadata = make(map[string]any)
	}
	e.metadata[key] = value
}

// GetMetadata gets a metadata value
func (e *Entitlement) GetMetadata(key string) (any, bool) {
	v, ok := e.metadata[key]
	return v, ok
}
