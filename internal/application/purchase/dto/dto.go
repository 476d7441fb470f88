package dto

import "github.com/reelgate-inc/reelgate/internal/domain/tier"

// EligibilityResponse is the answer to a purchase pre-check.
type EligibilityResponse struct {
	Allowed bool   `json:"allowed"`
	Reason  string `json:"reason,omitempty"`
}

// CheckoutResponse is returned when a checkout was opened. When the user is
// not eligible, Allowed is false and only Reason is set.
type CheckoutResponse struct {
	Allowed     bool   `json:"-"`
	Reason      string `json:"reason,omitempty"`
	Reference   string `json:"reference,omitempty"`
	SessionID   string `json:"session_id,omitempty"`
	RedirectURL string `json:"redirect_url,omitempty"`
}

// SettlementOutcome describes what settlement did with a payment event.
type SettlementOutcome string

const (
	SettlementGranted        SettlementOutcome = "granted"
	SettlementAlreadySettled SettlementOutcome = "already_settled"
	SettlementRejected       SettlementOutcome = "rejected"
	SettlementIgnored        SettlementOutcome = "ignored"
)

type SettlementResult struct {
	Outcome       SettlementOutcome `json:"outcome"`
	EntitlementID uint              `json:"entitlement_id,omitempty"`
	Reason        string            `json:"reason,omitempty"`
}

// TierResponse is the public view of a catalog entry.
type TierResponse struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	PriceCents   int64    `json:"price_cents"`
	Currency     string   `json:"currency"`
	Categories   []string `json:"categories"`
	DurationDays *int     `json:"duration_days"`
}

func ToTierResponse(t tier.Tier) TierResponse {
	cats := make([]string, 0, 2)
	for _, c := range t.Categories() {
		cats = append(cats, string(c))
	}
	var days *int
	if !t.IsPermanent() {
		d := t.DurationDays()
		days = &d
	}
	return TierResponse{
		ID:           string(t.ID()),
		Name:         t.Name(),
		PriceCents:   t.PriceCents(),
		Currency:     t.Currency(),
		Categories:   cats,
		DurationDays: days,
	}
}

func ToTierResponses(tiers []tier.Tier) []TierResponse {
	out := make([]TierResponse, 0, len(tiers))
	for _, t := range tiers {
		out = append(out, ToTierResponse(t))
	}
	return out
}
