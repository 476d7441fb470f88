package paymentgateway

import (
	"context"
	"errors"
)

// ErrInvalidSignature is returned by ParseWebhook when the payload cannot be
// authenticated. Nothing in such a payload may be acted upon.
var ErrInvalidSignature = errors.New("invalid webhook signature")

// PaymentGateway is the narrow contract with the external payment processor.
type PaymentGateway interface {
	CreateCheckoutSession(ctx context.Context, req CreateCheckoutRequest) (*CreateCheckoutResponse, error)
	// ParseWebhook verifies the signature header against the raw payload and
	// decodes the event. Verification failures wrap ErrInvalidSignature.
	ParseWebhook(payload []byte, signatureHeader string) (*WebhookEvent, error)
}

// CreateCheckoutRequest contains the data needed to open a hosted checkout.
type CreateCheckoutRequest struct {
	Reference     string // our checkout reference, echoed back in the webhook
	UserID        string
	Tier          string
	ProductName   string
	AmountCents   int64
	Currency      string
	CustomerEmail string
}

type CreateCheckoutResponse struct {
	SessionID   string
	RedirectURL string
}

// WebhookEvent is a verified processor event. Completed is set only for a
// paid checkout completion; other event types are acknowledged and ignored.
type WebhookEvent struct {
	ID        string
	Type      string
	Completed *PaymentCompletedEvent
}

// PaymentCompletedEvent is the verified notice that a checkout was paid.
type PaymentCompletedEvent struct {
	SessionID       string
	Reference       string
	UserID          string
	Tier            string
	AmountPaidCents int64
	Currency        string
}
