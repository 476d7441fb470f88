package entitlement

import (
	"fmt"
	"time"

	"github.com/reelgate-inc/reelgate/internal/domain/tier"
)

const (
	ReasonOwnsBoxSet        = "You already own the Box Set, which includes everything."
	ReasonRentalRedundant   = "A rental would be redundant: you already own the series permanently."
	ReasonAlreadyOwnsSeries = "You already own the series."
	reasonActiveRentalFmt   = "You already have an active rental until %s."
)

// Eligibility is the outcome of a purchase pre-check. A refusal is a normal
// result carrying a reason for the user, not an error.
type Eligibility struct {
	Allowed bool
	Reason  string
}

func allowed() Eligibility {
	return Eligibility{Allowed: true}
}

func blocked(reason string) Eligibility {
	return Eligibility{Allowed: false, Reason: reason}
}

// CheckEligibility decides whether a user whose current entitlement is
// current may buy requested at time now. It performs no I/O.
//
// Unmatched combinations are allowed. This fail-open default is a policy
// choice: a gap in these rules should never stop a legitimate purchase, and
// settlement re-checks eligibility before granting anything.
func CheckEligibility(current *Entitlement, now time.Time, requested tier.ID) Eligibility {
	return MatchHolding(Resolve(current, now),
		func(NoHolding) Eligibility {
			return allowed()
		},
		func(r ActiveRental) Eligibility {
			switch requested {
			case tier.Rental:
				return blocked(ActiveRentalReason(r.ExpiresAt))
			case tier.Regular, tier.BoxSet:
				return allowed()
			default:
				return allowed() // fail-open
			}
		},
		func(ExpiredRental) Eligibility {
			return allowed()
		},
		func(RegularOwnership) Eligibility {
			switch requested {
			case tier.Rental:
				return blocked(ReasonRentalRedundant)
			case tier.Regular:
				return blocked(ReasonAlreadyOwnsSeries)
			case tier.BoxSet:
				return allowed()
			default:
				return allowed() // fail-open
			}
		},
		func(BoxSetOwnership) Eligibility {
			return blocked(ReasonOwnsBoxSet)
		},
	)
}

// ActiveRentalReason formats the refusal for a second rental, naming the
// expiry in RFC 1123 form, UTC.
func ActiveRentalReason(expiresAt time.Time) string {
	return fmt.Sprintf(reasonActiveRentalFmt, expiresAt.UTC().Format(time.RFC1123))
}
