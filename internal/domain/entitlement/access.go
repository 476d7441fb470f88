package entitlement

import (
	"time"

	"github.com/reelgate-inc/reelgate/internal/domain/tier"
)

// AccessTierExpired is reported in place of a tier when the current rental lapsed.
const AccessTierExpired = "expired"

const (
	ReasonNoPurchase       = "no purchase"
	ReasonRentalExpired    = "rental expired"
	ReasonExtrasNeedBoxSet = "extras require box-set"
	ReasonNotIncluded      = "your purchase does not include this content"
)

// AccessDecision is the effective access of a user for one content category.
// It is computed per request and never cached.
type AccessDecision struct {
	HasAccess bool
	// Tier is "rental", "regular", "boxset", "expired" or empty when the user
	// never purchased.
	Tier      string
	Reason    string
	ExpiresAt *time.Time
}

// CheckAccess is the single gate consulted before a playback URL is minted.
func CheckAccess(current *Entitlement, now time.Time, category tier.Category) AccessDecision {
	return MatchHolding(Resolve(current, now),
		func(NoHolding) AccessDecision {
			return AccessDecision{HasAccess: false, Reason: ReasonNoPurchase}
		},
		func(r ActiveRental) AccessDecision {
			exp := r.ExpiresAt
			return grantFor(tier.Rental, category, &exp)
		},
		func(r ExpiredRental) AccessDecision {
			exp := r.ExpiredAt
			return AccessDecision{
				HasAccess: false,
				Tier:      AccessTierExpired,
				Reason:    ReasonRentalExpired,
				ExpiresAt: &exp,
			}
		},
		func(RegularOwnership) AccessDecision {
			return grantFor(tier.Regular, category, nil)
		},
		func(BoxSetOwnership) AccessDecision {
			return grantFor(tier.BoxSet, category, nil)
		},
	)
}

func grantFor(id tier.ID, category tier.Category, expiresAt *time.Time) AccessDecision {
	d := AccessDecision{
		HasAccess: tier.MustGet(id).Grants(category),
		Tier:      string(id),
		ExpiresAt: expiresAt,
	}
	if d.HasAccess {
		return d
	}
	if category == tier.CategoryExtra {
		d.Reason = ReasonExtrasNeedBoxSet
	} else {
		d.Reason = ReasonNotIncluded
	}
	return d
}
