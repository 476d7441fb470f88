package entitlement

import (
	"time"

	"github.com/reelgate-inc/reelgate/internal/domain/tier"
)

// Holding is what a user's current entitlement amounts to at a given instant.
// The set of variants is closed: only this package can implement Holding, and
// callers branch on it with MatchHolding so that a new variant breaks every
// call site at compile time.
type Holding interface {
	isHolding()
}

// NoHolding means the user has never completed a purchase.
type NoHolding struct{}

// ActiveRental is a rental that has not yet lapsed.
type ActiveRental struct {
	ExpiresAt time.Time
}

// ExpiredRental is a rental whose expiry is strictly in the past.
type ExpiredRental struct {
	ExpiredAt time.Time
}

// RegularOwnership is a permanent purchase of the episodes.
type RegularOwnership struct{}

// BoxSetOwnership is a permanent purchase of episodes and extras.
type BoxSetOwnership struct{}

func (NoHolding) isHolding()        {}
func (ActiveRental) isHolding()     {}
func (ExpiredRental) isHolding()    {}
func (RegularOwnership) isHolding() {}
func (BoxSetOwnership) isHolding()  {}

// Resolve derives the holding from the user's current entitlement. Expiry is
// evaluated here, at read time, so correctness never depends on a sweep.
func Resolve(current *Entitlement, now time.Time) Holding {
	if current == nil {
		return NoHolding{}
	}

	switch current.TierID() {
	case tier.Rental:
		exp := current.ExpiresAt()
		if exp == nil {
			// Unreachable through constructors; treated as lapsed.
			return ExpiredRental{ExpiredAt: current.CreatedAt()}
		}
		if current.IsExpiredAt(now) {
			return ExpiredRental{ExpiredAt: *exp}
		}
		return ActiveRental{ExpiresAt: *exp}
	case tier.Regular:
		return RegularOwnership{}
	case tier.BoxSet:
		return BoxSetOwnership{}
	default:
		// Constructors reject unknown tiers, so a record here grants nothing.
		return NoHolding{}
	}
}

// MatchHolding dispatches h to the handler for its variant. Every variant has
// a required parameter.
func MatchHolding[R any](
	h Holding,
	none func(NoHolding) R,
	active func(ActiveRental) R,
	expired func(ExpiredRental) R,
	regular func(RegularOwnership) R,
	boxset func(BoxSetOwnership) R,
) R {
	switch v := h.(type) {
	case NoHolding:
		return none(v)
	case ActiveRental:
		return active(v)
	case ExpiredRental:
		return expired(v)
	case RegularOwnership:
		return regular(v)
	case BoxSetOwnership:
		return boxset(v)
	default:
		// nil interface: no entitlement was resolved.
		return none(NoHolding{})
	}
}

// HoldingName is the label used for logging and API responses.
func HoldingName(h Holding) string {
	return MatchHolding(h,
		func(NoHolding) string { return "" },
		func(ActiveRental) string { return string(tier.Rental) },
		func(ExpiredRental) string { return AccessTierExpired },
		func(RegularOwnership) string { return string(tier.Regular) },
		func(BoxSetOwnership) string { return string(tier.BoxSet) },
	)
}
