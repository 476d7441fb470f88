package mappers

import (
	"github.com/reelgate-inc/reelgate/internal/domain/checkout"
	vo "github.com/reelgate-inc/reelgate/internal/domain/checkout/valueobjects"
	"github.com/reelgate-inc/reelgate/internal/domain/tier"
	"github.com/reelgate-inc/reelgate/internal/infrastructure/persistence/models"
)

func CheckoutToModel(c *checkout.Checkout) *models.CheckoutSessionModel {
	var sessionID *string
	if s := c.ExternalSessionID(); s != "" {
		sessionID = &s
	}

	return &models.CheckoutSessionModel{
		ID:                c.ID(),
		Reference:         c.Reference(),
		UserID:            c.UserID(),
		Tier:              string(c.TierID()),
		AmountCents:       c.AmountCents(),
		Currency:          c.Currency(),
		Status:            string(c.Status()),
		ExternalSessionID: sessionID,
		RedirectURL:       c.RedirectURL(),
		RejectReason:      c.RejectReason(),
		ExpiresAt:         c.ExpiresAt(),
		SettledAt:         c.SettledAt(),
		Version:           c.Version(),
		CreatedAt:         c.CreatedAt(),
		UpdatedAt:         c.UpdatedAt(),
	}
}

func CheckoutToDomain(m *models.CheckoutSessionModel) *checkout.Checkout {
	var sessionID string
	if m.ExternalSessionID != nil {
		sessionID = *m.ExternalSessionID
	}

	return checkout.ReconstructCheckoutWithParams(checkout.CheckoutReconstructParams{
		ID:                m.ID,
		Reference:         m.Reference,
		UserID:            m.UserID,
		TierID:            tier.ID(m.Tier),
		AmountCents:       m.AmountCents,
		Currency:          m.Currency,
		Status:            vo.CheckoutStatus(m.Status),
		ExternalSessionID: sessionID,
		RedirectURL:       m.RedirectURL,
		RejectReason:      m.RejectReason,
		ExpiresAt:         m.ExpiresAt,
		SettledAt:         m.SettledAt,
		Version:           m.Version,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	})
}
