package dto

import (
	"time"

	"github.com/reelgate-inc/reelgate/internal/domain/entitlement"
)

// MessageKind selects the email template.
type MessageKind string

const (
	MessageRentalWarning48h MessageKind = "rental-48h-warning"
	MessageRentalWarning24h MessageKind = "rental-24h-warning"
	MessageRentalExpired    MessageKind = "rental-expired"
	MessagePurchaseReceipt  MessageKind = "purchase-receipt"
)

// MessageKindFor maps an expiration notification to its template.
func MessageKindFor(kind entitlement.NotificationKind) (MessageKind, bool) {
	switch kind {
	case entitlement.NotificationWarning48h:
		return MessageRentalWarning48h, true
	case entitlement.NotificationWarning24h:
		return MessageRentalWarning24h, true
	case entitlement.NotificationExpired:
		return MessageRentalExpired, true
	default:
		return "", false
	}
}

// MessageData is everything a template may reference.
type MessageData struct {
	RecipientName string
	TierName      string
	PriceCents    int64
	Currency      string
	PurchasedAt   time.Time
	ExpiresAt     *time.Time
}

// RunResult summarizes one notifier pass.
type RunResult struct {
	Sent int `json:"sent"`
	// Incomplete is set when a window query or a flag write failed.
	Incomplete bool `json:"incomplete,omitempty"`
}
