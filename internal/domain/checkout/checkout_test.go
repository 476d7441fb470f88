package checkout

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "github.com/reelgate-inc/reelgate/internal/domain/checkout/valueobjects"
	"github.com/reelgate-inc/reelgate/internal/domain/tier"
	"github.com/reelgate-inc/reelgate/internal/shared/id"
)

var now = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func newPending(t *testing.T) *Checkout {
	t.Helper()
	c, err := NewCheckout("user-1", tier.Rental, time.Hour, now)
	require.NoError(t, err)
	return c
}

func TestNewCheckout(t *testing.T) {
	c := newPending(t)

	assert.True(t, id.IsCheckoutID(c.Reference()))
	assert.Equal(t, int64(499), c.AmountCents())
	assert.Equal(t, "usd", c.Currency())
	assert.Equal(t, vo.CheckoutStatusPending, c.Status())
	assert.Equal(t, now.Add(time.Hour), c.ExpiresAt())
}

func TestNewCheckoutValidation(t *testing.T) {
	_, err := NewCheckout("", tier.Rental, time.Hour, now)
	assert.Error(t, err)

	_, err = NewCheckout("user-1", "lifetime", time.Hour, now)
	assert.ErrorIs(t, err, tier.ErrUnknownTier)

	_, err = NewCheckout("user-1", tier.Rental, 0, now)
	assert.Error(t, err)
}

func TestAttachSession(t *testing.T) {
	c := newPending(t)

	require.NoError(t, c.AttachSession("cs_1", "https://pay.example/cs_1", now))
	require.NoError(t, c.AttachSession("cs_1", "https://pay.example/cs_1", now))
	assert.Error(t, c.AttachSession("cs_2", "", now))
	assert.Error(t, newPending(t).AttachSession("", "", now))
}

func TestStatusTransitions(t *testing.T) {
	t.Run("complete is idempotent", func(t *testing.T) {
		c := newPending(t)
		require.NoError(t, c.MarkCompleted(now))
		require.NoError(t, c.MarkCompleted(now))
		assert.Equal(t, vo.CheckoutStatusCompleted, c.Status())
		assert.NotNil(t, c.SettledAt())
		assert.Error(t, c.MarkRejected("late", now))
	})

	t.Run("reject keeps reason", func(t *testing.T) {
		c := newPending(t)
		require.NoError(t, c.MarkRejected("You already own the series.", now))
		assert.Equal(t, "You already own the series.", c.RejectReason())
		assert.Error(t, c.MarkCompleted(now))
	})

	t.Run("expired checkout can still complete", func(t *testing.T) {
		c := newPending(t)
		assert.True(t, c.IsExpiredAt(now.Add(2*time.Hour)))
		require.NoError(t, c.MarkExpired(now.Add(2*time.Hour)))
		require.NoError(t, c.MarkCompleted(now.Add(3*time.Hour)))
		assert.Equal(t, vo.CheckoutStatusCompleted, c.Status())
	})

	t.Run("expire leaves final states alone", func(t *testing.T) {
		c := newPending(t)
		require.NoError(t, c.MarkCompleted(now))
		require.NoError(t, c.MarkExpired(now))
		assert.Equal(t, vo.CheckoutStatusCompleted, c.Status())
		assert.False(t, c.IsExpiredAt(now.Add(2*time.Hour)))
	})
}
