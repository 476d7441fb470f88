package dto

import (
	"time"

	"github.com/reelgate-inc/reelgate/internal/domain/entitlement"
)

// AccessResponse is the effective access of the caller for one category.
type AccessResponse struct {
	HasAccess bool       `json:"has_access"`
	Tier      *string    `json:"tier"`
	Reason    string     `json:"reason,omitempty"`
	ExpiresAt *time.Time `json:"expires_at"`
}

func ToAccessResponse(d entitlement.AccessDecision) *AccessResponse {
	var tierName *string
	if d.Tier != "" {
		name := d.Tier
		tierName = &name
	}
	return &AccessResponse{
		HasAccess: d.HasAccess,
		Tier:      tierName,
		Reason:    d.Reason,
		ExpiresAt: d.ExpiresAt,
	}
}

// PlaybackResponse carries a signed URL, or the reason none was issued.
type PlaybackResponse struct {
	Granted   bool      `json:"-"`
	Reason    string    `json:"reason,omitempty"`
	URL       string    `json:"url,omitempty"`
	ExpiresAt time.Time `json:"expires_at,omitempty"`
	ContentID string    `json:"content_id,omitempty"`
}
