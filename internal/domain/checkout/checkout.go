// Package checkout tracks purchase intents handed to the payment processor
// until they are settled, rejected or abandoned.
package checkout

import (
	"fmt"
	"time"

	vo "github.com/reelgate-inc/reelgate/internal/domain/checkout/valueobjects"
	"github.com/reelgate-inc/reelgate/internal/domain/tier"
	"github.com/reelgate-inc/reelgate/internal/shared/id"
)

type Checkout struct {
	id                uint
	reference         string
	userID            string
	tierID            tier.ID
	amountCents       int64
	currency          string
	status            vo.CheckoutStatus
	externalSessionID string
	redirectURL       string
	rejectReason      string
	expiresAt         time.Time
	settledAt         *time.Time

	version   int
	createdAt time.Time
	updatedAt time.Time
}

// NewCheckout opens a pending checkout priced from the tier catalog.
func NewCheckout(userID string, tierID tier.ID, ttl time.Duration, now time.Time) (*Checkout, error) {
	if userID == "" {
		return nil, fmt.Errorf("user ID is required")
	}
	t, err := tier.Get(tierID)
	if err != nil {
		return nil, err
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("checkout TTL must be positive")
	}

	ref, err := id.NewCheckoutID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate checkout reference: %w", err)
	}

	now = now.UTC()
	return &Checkout{
		reference:   ref,
		userID:      userID,
		tierID:      tierID,
		amountCents: t.PriceCents(),
		currency:    t.Currency(),
		status:      vo.CheckoutStatusPending,
		expiresAt:   now.Add(ttl),
		version:     1,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// CheckoutReconstructParams carries persisted state into ReconstructCheckoutWithParams.
type CheckoutReconstructParams struct {
	ID                uint
	Reference         string
	UserID            string
	TierID            tier.ID
	AmountCents       int64
	Currency          string
	Status            vo.CheckoutStatus
	ExternalSessionID string
	RedirectURL       string
	RejectReason      string
	ExpiresAt         time.Time
	SettledAt         *time.Time
	Version           int
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func ReconstructCheckoutWithParams(p CheckoutReconstructParams) *Checkout {
	return &Checkout{
		id:                p.ID,
		reference:         p.Reference,
		userID:            p.UserID,
		tierID:            p.TierID,
		amountCents:       p.AmountCents,
		currency:          p.Currency,
		status:            p.Status,
		externalSessionID: p.ExternalSessionID,
		redirectURL:       p.RedirectURL,
		rejectReason:      p.RejectReason,
		expiresAt:         p.ExpiresAt.UTC(),
		settledAt:         p.SettledAt,
		version:           p.Version,
		createdAt:         p.CreatedAt.UTC(),
		updatedAt:         p.UpdatedAt.UTC(),
	}
}

// AttachSession records the processor session created for this checkout.
func (c *Checkout) AttachSession(sessionID, redirectURL string, now time.Time) error {
	if sessionID == "" {
		return fmt.Errorf("session ID is required")
	}
	if c.externalSessionID != "" && c.externalSessionID != sessionID {
		return fmt.Errorf("checkout %s already bound to session %s", c.reference, c.externalSessionID)
	}
	c.externalSessionID = sessionID
	c.redirectURL = redirectURL
	c.updatedAt = now.UTC()
	return nil
}

func (c *Checkout) MarkCompleted(now time.Time) error {
	if c.status == vo.CheckoutStatusCompleted {
		return nil
	}
	if c.status == vo.CheckoutStatusRejected {
		return fmt.Errorf("cannot complete checkout with status %s", c.status)
	}

	// A late payment on an expired checkout is still honoured.
	now = now.UTC()
	c.status = vo.CheckoutStatusCompleted
	c.settledAt = &now
	c.updatedAt = now
	c.version++
	return nil
}

func (c *Checkout) MarkRejected(reason string, now time.Time) error {
	if c.status == vo.CheckoutStatusRejected {
		return nil
	}
	if c.status == vo.CheckoutStatusCompleted {
		return fmt.Errorf("cannot reject checkout with status %s", c.status)
	}

	now = now.UTC()
	c.status = vo.CheckoutStatusRejected
	c.rejectReason = reason
	c.settledAt = &now
	c.updatedAt = now
	c.version++
	return nil
}

func (c *Checkout) MarkExpired(now time.Time) error {
	if c.status.IsFinal() {
		return nil
	}

	c.status = vo.CheckoutStatusExpired
	c.updatedAt = now.UTC()
	c.version++
	return nil
}

// IsExpiredAt reports whether a pending checkout has outlived its TTL.
func (c *Checkout) IsExpiredAt(now time.Time) bool {
	return c.status.IsPending() && now.After(c.expiresAt)
}

func (c *Checkout) ID() uint {
	return c.id
}

func (c *Checkout) Reference() string {
	return c.reference
}

func (c *Checkout) UserID() string {
	return c.userID
}

func (c *Checkout) TierID() tier.ID {
	return c.tierID
}

func (c *Checkout) AmountCents() int64 {
	return c.amountCents
}

func (c *Checkout) Currency() string {
	return c.currency
}

func (c *Checkout) Status() vo.CheckoutStatus {
	return c.status
}

func (c *Checkout) ExternalSessionID() string {
	return c.externalSessionID
}

func (c *Checkout) RedirectURL() string {
	return c.redirectURL
}

func (c *Checkout) RejectReason() string {
	return c.rejectReason
}

func (c *Checkout) ExpiresAt() time.Time {
	return c.expiresAt
}

func (c *Checkout) SettledAt() *time.Time {
	return c.settledAt
}

func (c *Checkout) Version() int {
	return c.version
}

func (c *Checkout) CreatedAt() time.Time {
	return c.createdAt
}

func (c *Checkout) UpdatedAt() time.Time {
	return c.updatedAt
}

// SetID sets the checkout ID (only for persistence layer use)
func (c *Checkout) SetID(id uint) error {
	if c.id != 0 {
		return fmt.Errorf("checkout ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("checkout ID cannot be zero")
	}
	c.id = id
	return nil
}
