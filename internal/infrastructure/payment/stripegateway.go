// Package payment adapts the external payment processor to the purchase
// flow's PaymentGateway contract.
package payment

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	"github.com/stripe/stripe-go/v82"
	stripesession "github.com/stripe/stripe-go/v82/checkout/session"
	"github.com/stripe/stripe-go/v82/webhook"

	"github.com/reelgate-inc/reelgate/internal/application/purchase/paymentgateway"
	"github.com/reelgate-inc/reelgate/internal/shared/config"
	"github.com/reelgate-inc/reelgate/internal/shared/logger"
)

const (
	eventCheckoutCompleted      = "checkout.session.completed"
	eventAsyncPaymentSucceeded  = "checkout.session.async_payment_succeeded"
	metadataUserID              = "user_id"
	metadataTier                = "tier"
	minStripeCheckoutExpiration = 30 * time.Minute
)

// StripeGateway implements paymentgateway.PaymentGateway on Stripe Checkout.
type StripeGateway struct {
	webhookSecret string
	successURL    string
	cancelURL     string
	checkoutTTL   time.Duration
	logger        logger.Interface

	createCheckoutSession func(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
	now                   func() time.Time
}

func NewStripeGateway(cfg config.PaymentConfig, logger logger.Interface) *StripeGateway {
	stripe.Key = strings.TrimSpace(cfg.StripeSecretKey)
	return &StripeGateway{
		webhookSecret:         cfg.StripeWebhookKey,
		successURL:            cfg.SuccessURL,
		cancelURL:             cfg.CancelURL,
		checkoutTTL:           cfg.CheckoutTTL(),
		logger:                logger,
		createCheckoutSession: stripesession.New,
		now:                   time.Now,
	}
}

func (g *StripeGateway) CreateCheckoutSession(ctx context.Context, req paymentgateway.CreateCheckoutRequest) (*paymentgateway.CreateCheckoutResponse, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:              stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:        stripe.String(g.successURL),
		CancelURL:         stripe.String(g.cancelURL),
		ClientReferenceID: stripe.String(req.Reference),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(strings.ToLower(req.Currency)),
					UnitAmount: stripe.Int64(req.AmountCents),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(req.ProductName),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
		Metadata: map[string]string{
			metadataUserID: req.UserID,
			metadataTier:   req.Tier,
		},
	}
	params.Context = ctx
	if req.CustomerEmail != "" {
		params.CustomerEmail = stripe.String(req.CustomerEmail)
	}
	// Stripe rejects expirations shorter than 30 minutes.
	if g.checkoutTTL >= minStripeCheckoutExpiration {
		params.ExpiresAt = stripe.Int64(g.now().Add(g.checkoutTTL).Unix())
	}

	session, err := g.createCheckoutSession(params)
	if err != nil {
		g.logger.Errorw("stripe checkout session creation failed",
			"reference", req.Reference,
			"user_id", req.UserID,
			"error", err,
		)
		return nil, fmt.Errorf("failed to create stripe checkout session: %w", err)
	}
	if session == nil || strings.TrimSpace(session.URL) == "" {
		return nil, fmt.Errorf("stripe returned checkout session without redirect url")
	}

	return &paymentgateway.CreateCheckoutResponse{
		SessionID:   session.ID,
		RedirectURL: session.URL,
	}, nil
}

func (g *StripeGateway) ParseWebhook(payload []byte, signatureHeader string) (*paymentgateway.WebhookEvent, error) {
	if strings.TrimSpace(signatureHeader) == "" {
		return nil, fmt.Errorf("%w: missing signature header", paymentgateway.ErrInvalidSignature)
	}

	event, err := webhook.ConstructEventWithOptions(payload, signatureHeader, g.webhookSecret, webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		if isSignatureError(err) {
			return nil, fmt.Errorf("%w: %v", paymentgateway.ErrInvalidSignature, err)
		}
		return nil, fmt.Errorf("failed to decode stripe event: %w", err)
	}

	result := &paymentgateway.WebhookEvent{
		ID:   event.ID,
		Type: string(event.Type),
	}

	switch string(event.Type) {
	case eventCheckoutCompleted, eventAsyncPaymentSucceeded:
		var session stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
			return nil, fmt.Errorf("decode checkout.session: %w", err)
		}
		// A completed session may still be awaiting an asynchronous payment.
		if session.PaymentStatus != stripe.CheckoutSessionPaymentStatusPaid {
			g.logger.Infow("stripe checkout completed without payment, waiting",
				"event_id", event.ID,
				"session_id", session.ID,
				"payment_status", session.PaymentStatus,
			)
			return result, nil
		}
		result.Completed = &paymentgateway.PaymentCompletedEvent{
			SessionID:       session.ID,
			Reference:       session.ClientReferenceID,
			UserID:          session.Metadata[metadataUserID],
			Tier:            session.Metadata[metadataTier],
			AmountPaidCents: session.AmountTotal,
			Currency:        string(session.Currency),
		}
	default:
		g.logger.Debugw("stripe webhook ignored (unhandled type)",
			"event_id", event.ID,
			"type", event.Type,
		)
	}

	return result, nil
}

func isSignatureError(err error) bool {
	return stderrors.Is(err, webhook.ErrNotSigned) ||
		stderrors.Is(err, webhook.ErrInvalidHeader) ||
		stderrors.Is(err, webhook.ErrNoValidSignature) ||
		stderrors.Is(err, webhook.ErrTooOld)
}
