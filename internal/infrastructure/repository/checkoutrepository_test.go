package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reelgate-inc/reelgate/internal/domain/checkout"
	vo "github.com/reelgate-inc/reelgate/internal/domain/checkout/valueobjects"
	"github.com/reelgate-inc/reelgate/internal/domain/tier"
	"github.com/reelgate-inc/reelgate/internal/shared/logger"
)

func newStoredCheckout(t *testing.T, repo *CheckoutRepository, userID, sessionID string, createdAt time.Time) *checkout.Checkout {
	t.Helper()
	co, err := checkout.NewCheckout(userID, tier.Regular, time.Hour, createdAt)
	require.NoError(t, err)
	if sessionID != "" {
		require.NoError(t, co.AttachSession(sessionID, "https://pay.example/"+sessionID, createdAt))
	}
	require.NoError(t, repo.Create(context.Background(), co))
	return co
}

func TestCheckoutRepository_CreateAndGet(t *testing.T) {
	repo := NewCheckoutRepository(setupTestDB(t), logger.NewNopLogger())
	ctx := context.Background()

	co := newStoredCheckout(t, repo, "user-1", "cs_1", testNow)
	assert.NotZero(t, co.ID())

	byRef, err := repo.GetByReference(ctx, co.Reference())
	require.NoError(t, err)
	assert.Equal(t, co.ID(), byRef.ID())
	assert.Equal(t, int64(1499), byRef.AmountCents())
	assert.Equal(t, vo.CheckoutStatusPending, byRef.Status())
	assert.Equal(t, "https://pay.example/cs_1", byRef.RedirectURL())

	bySession, err := repo.GetByExternalSessionID(ctx, "cs_1")
	require.NoError(t, err)
	assert.Equal(t, co.Reference(), bySession.Reference())

	missing, err := repo.GetByExternalSessionID(ctx, "cs_unknown")
	require.NoError(t, err)
	assert.Nil(t, missing)

	_, err = repo.GetByReference(ctx, "chk_missing")
	assert.ErrorIs(t, err, checkout.ErrCheckoutNotFound)
}

func TestCheckoutRepository_CheckoutsWithoutSessionDoNotCollide(t *testing.T) {
	repo := NewCheckoutRepository(setupTestDB(t), logger.NewNopLogger())

	newStoredCheckout(t, repo, "user-1", "", testNow)
	newStoredCheckout(t, repo, "user-1", "", testNow)
}

func TestCheckoutRepository_UpdateUsesOptimisticLock(t *testing.T) {
	repo := NewCheckoutRepository(setupTestDB(t), logger.NewNopLogger())
	ctx := context.Background()
	co := newStoredCheckout(t, repo, "user-1", "cs_1", testNow)

	stale, err := repo.GetByReference(ctx, co.Reference())
	require.NoError(t, err)

	require.NoError(t, co.MarkCompleted(testNow.Add(time.Minute)))
	require.NoError(t, repo.Update(ctx, co))

	found, err := repo.GetByReference(ctx, co.Reference())
	require.NoError(t, err)
	assert.Equal(t, vo.CheckoutStatusCompleted, found.Status())
	assert.Equal(t, 2, found.Version())
	require.NotNil(t, found.SettledAt())

	require.NoError(t, stale.MarkExpired(testNow.Add(2*time.Hour)))
	err = repo.Update(ctx, stale)
	assert.ErrorIs(t, err, checkout.ErrConcurrentUpdate)
}

func TestCheckoutRepository_ListExpiredPending(t *testing.T) {
	repo := NewCheckoutRepository(setupTestDB(t), logger.NewNopLogger())
	ctx := context.Background()

	old := newStoredCheckout(t, repo, "user-1", "cs_old", testNow.Add(-3*time.Hour))
	newStoredCheckout(t, repo, "user-2", "cs_fresh", testNow)
	done := newStoredCheckout(t, repo, "user-3", "cs_done", testNow.Add(-3*time.Hour))
	require.NoError(t, done.MarkCompleted(testNow.Add(-2*time.Hour)))
	require.NoError(t, repo.Update(ctx, done))

	list, err := repo.ListExpiredPending(ctx, testNow, 10)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, old.Reference(), list[0].Reference())
}
