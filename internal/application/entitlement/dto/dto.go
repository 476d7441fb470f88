package dto

import (
	"time"

	"github.com/reelgate-inc/reelgate/internal/domain/entitlement"
)

// EntitlementResponse represents the response for a single entitlement
type EntitlementResponse struct {
	ID                uint       `json:"id"`
	UserID            string     `json:"user_id"`
	Tier              string     `json:"tier"`
	Status            string     `json:"status"`
	ExternalSessionID string     `json:"external_session_id"`
	CreatedAt         time.Time  `json:"created_at"`
	ExpiresAt         *time.Time `json:"expires_at,omitempty"`
	Notifications     Marks      `json:"notifications"`
}

type Marks struct {
	Warning48hSent bool `json:"warning_48h_sent"`
	Warning24hSent bool `json:"warning_24h_sent"`
	ExpiredSent    bool `json:"expired_sent"`
}

// UserEntitlementsResponse is the admin view of a user's purchase history.
type UserEntitlementsResponse struct {
	UserID string `json:"user_id"`
	// Current is the entitlement access decisions are based on.
	Current      *EntitlementResponse   `json:"current,omitempty"`
	Holding      string                 `json:"holding"`
	Entitlements []*EntitlementResponse `json:"entitlements"`
}

func ToEntitlementResponse(e *entitlement.Entitlement) *EntitlementResponse {
	if e == nil {
		return nil
	}
	m := e.Marks()
	return &EntitlementResponse{
		ID:                e.ID(),
		UserID:            e.UserID(),
		Tier:              string(e.TierID()),
		Status:            string(e.Status()),
		ExternalSessionID: e.ExternalSessionID(),
		CreatedAt:         e.CreatedAt(),
		ExpiresAt:         e.ExpiresAt(),
		Notifications: Marks{
			Warning48hSent: m.Warning48hSent,
			Warning24hSent: m.Warning24hSent,
			ExpiredSent:    m.ExpiredSent,
		},
	}
}

func ToEntitlementResponses(list []*entitlement.Entitlement) []*EntitlementResponse {
	out := make([]*EntitlementResponse, 0, len(list))
	for _, e := range list {
		out = append(out, ToEntitlementResponse(e))
	}
	return out
}
