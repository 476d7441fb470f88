package entitlement

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/reelgate-inc/reelgate/internal/domain/tier"
)

var baseTime = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestEntitlement(t *testing.T, id uint, tierID tier.ID, createdAt time.Time) *Entitlement {
	t.Helper()
	e, err := NewEntitlement("user-1", tierID, "cs_test_"+string(tierID), createdAt)
	require.NoError(t, err)
	require.NoError(t, e.SetID(id))
	return e
}

// rentalExpiringAt builds a rental whose expiry is exactly exp.
func rentalExpiringAt(t *testing.T, exp time.Time) *Entitlement {
	t.Helper()
	created := exp.AddDate(0, 0, -tier.MustGet(tier.Rental).DurationDays())
	e := newTestEntitlement(t, 1, tier.Rental, created)
	require.Equal(t, exp, *e.ExpiresAt())
	return e
}
