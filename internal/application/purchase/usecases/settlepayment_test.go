package usecases

import (
	"context"
	stderrors "errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reelgate-inc/reelgate/internal/application/purchase/dto"
	"github.com/reelgate-inc/reelgate/internal/application/purchase/paymentgateway"
	"github.com/reelgate-inc/reelgate/internal/domain/checkout"
	vo "github.com/reelgate-inc/reelgate/internal/domain/checkout/valueobjects"
	"github.com/reelgate-inc/reelgate/internal/domain/entitlement"
	"github.com/reelgate-inc/reelgate/internal/domain/tier"
	"github.com/reelgate-inc/reelgate/internal/shared/errors"
	"github.com/reelgate-inc/reelgate/internal/shared/logger"
)

type recordingNotifier struct {
	mu      sync.Mutex
	granted []uint
}

func (n *recordingNotifier) NotifyPurchaseGranted(ctx context.Context, e *entitlement.Entitlement) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.granted = append(n.granted, e.ID())
}

func paidEvent(sessionID string, tierID tier.ID) paymentgateway.PaymentCompletedEvent {
	t := tier.MustGet(tierID)
	return paymentgateway.PaymentCompletedEvent{
		SessionID:       sessionID,
		UserID:          "user-1",
		Tier:            string(tierID),
		AmountPaidCents: t.PriceCents(),
		Currency:        "usd",
	}
}

func newSettleUseCase(store *memoryStore, repo *mockCheckoutRepository) (*SettlePaymentUseCase, *mutexLocker) {
	locker := newMutexLocker()
	return NewSettlePaymentUseCase(store, repo, locker, passthroughTx{}, logger.NewNopLogger()), locker
}

func pendingCheckout(t *testing.T, sessionID string, tierID tier.ID) *checkout.Checkout {
	t.Helper()
	co, err := checkout.NewCheckout("user-1", tierID, time.Hour, testNow)
	require.NoError(t, err)
	require.NoError(t, co.AttachSession(sessionID, "", testNow))
	return co
}

func TestSettlePayment_Grants(t *testing.T) {
	store := newMemoryStore()
	co := pendingCheckout(t, "cs_1", tier.Rental)
	repo := &mockCheckoutRepository{
		GetByExternalSessionIDFunc: func(ctx context.Context, sessionID string) (*checkout.Checkout, error) {
			return co, nil
		},
	}
	uc, locker := newSettleUseCase(store, repo)
	notifier := &recordingNotifier{}
	uc.SetPurchaseNotifier(notifier)

	result, err := uc.Execute(context.Background(), paidEvent("cs_1", tier.Rental))
	require.NoError(t, err)

	assert.Equal(t, dto.SettlementGranted, result.Outcome)
	assert.NotZero(t, result.EntitlementID)
	assert.Equal(t, 1, store.count("user-1"))
	assert.Equal(t, vo.CheckoutStatusCompleted, co.Status())
	assert.Equal(t, 1, locker.calls)
	assert.Equal(t, []uint{result.EntitlementID}, notifier.granted)

	current, err := store.GetCurrentEntitlement(context.Background(), "user-1")
	require.NoError(t, err)
	assert.True(t, entitlement.CheckAccess(current, store.Now(), tier.CategoryEpisode).HasAccess)
}

// Duplicate delivery of the same webhook leaves exactly one entitlement.
func TestSettlePayment_DuplicateDelivery(t *testing.T) {
	store := newMemoryStore()
	uc, _ := newSettleUseCase(store, &mockCheckoutRepository{})

	first, err := uc.Execute(context.Background(), paidEvent("cs_dup", tier.Regular))
	require.NoError(t, err)
	require.Equal(t, dto.SettlementGranted, first.Outcome)

	second, err := uc.Execute(context.Background(), paidEvent("cs_dup", tier.Regular))
	require.NoError(t, err)

	assert.Equal(t, dto.SettlementAlreadySettled, second.Outcome)
	assert.Equal(t, first.EntitlementID, second.EntitlementID)
	assert.Equal(t, 1, store.count("user-1"))
}

func TestSettlePayment_ConcurrentDuplicateDelivery(t *testing.T) {
	store := newMemoryStore()
	uc, _ := newSettleUseCase(store, &mockCheckoutRepository{})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.Execute(context.Background(), paidEvent("cs_same", tier.BoxSet))
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, store.count("user-1"))
}

// Two different checkouts for the same rental race; only one may be granted.
func TestSettlePayment_ConcurrentCheckoutsSerialized(t *testing.T) {
	store := newMemoryStore()
	uc, _ := newSettleUseCase(store, &mockCheckoutRepository{})

	outcomes := make(chan dto.SettlementOutcome, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			result, err := uc.Execute(context.Background(), paidEvent(fmt.Sprintf("cs_race_%d", i), tier.Rental))
			if assert.NoError(t, err) {
				outcomes <- result.Outcome
			}
		}(i)
	}
	wg.Wait()
	close(outcomes)

	var got []dto.SettlementOutcome
	for o := range outcomes {
		got = append(got, o)
	}
	assert.ElementsMatch(t, []dto.SettlementOutcome{dto.SettlementGranted, dto.SettlementRejected}, got)
	assert.Equal(t, 1, store.count("user-1"))
}

func TestSettlePayment_RejectsWhenNoLongerEligible(t *testing.T) {
	store := newMemoryStore()
	store.seed("user-1", tier.BoxSet, testNow.Add(-time.Minute))
	co := pendingCheckout(t, "cs_late", tier.Regular)
	repo := &mockCheckoutRepository{
		GetByExternalSessionIDFunc: func(ctx context.Context, sessionID string) (*checkout.Checkout, error) {
			return co, nil
		},
	}
	uc, _ := newSettleUseCase(store, repo)

	result, err := uc.Execute(context.Background(), paidEvent("cs_late", tier.Regular))
	require.NoError(t, err)

	assert.Equal(t, dto.SettlementRejected, result.Outcome)
	assert.Equal(t, entitlement.ReasonOwnsBoxSet, result.Reason)
	assert.Equal(t, vo.CheckoutStatusRejected, co.Status())
	assert.Equal(t, 1, store.count("user-1"))
}

func TestSettlePayment_RejectedRedeliveryIsStable(t *testing.T) {
	store := newMemoryStore()
	store.seed("user-1", tier.BoxSet, testNow.Add(-time.Minute))
	co := pendingCheckout(t, "cs_late", tier.Regular)
	repo := &mockCheckoutRepository{
		GetByExternalSessionIDFunc: func(ctx context.Context, sessionID string) (*checkout.Checkout, error) {
			return co, nil
		},
	}
	uc, _ := newSettleUseCase(store, repo)

	for i := 0; i < 2; i++ {
		result, err := uc.Execute(context.Background(), paidEvent("cs_late", tier.Regular))
		require.NoError(t, err)
		assert.Equal(t, dto.SettlementRejected, result.Outcome)
		assert.Equal(t, entitlement.ReasonOwnsBoxSet, result.Reason)
	}
	assert.Len(t, repo.updated, 1)
}

func TestSettlePayment_AmountMismatch(t *testing.T) {
	tests := []struct {
		name     string
		amount   int64
		currency string
	}{
		{"underpaid", 299, "usd"},
		{"overpaid", 4999, "usd"},
		{"wrong currency", 499, "eur"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMemoryStore()
			uc, locker := newSettleUseCase(store, &mockCheckoutRepository{})

			event := paidEvent("cs_tampered", tier.Rental)
			event.AmountPaidCents = tt.amount
			event.Currency = tt.currency

			_, err := uc.Execute(context.Background(), event)
			assert.True(t, errors.IsIntegrityError(err))
			assert.Equal(t, 0, store.count("user-1"))
			assert.Equal(t, 0, locker.calls)
		})
	}
}

func TestSettlePayment_CheckoutMismatch(t *testing.T) {
	store := newMemoryStore()
	co := pendingCheckout(t, "cs_swap", tier.Rental)
	repo := &mockCheckoutRepository{
		GetByExternalSessionIDFunc: func(ctx context.Context, sessionID string) (*checkout.Checkout, error) {
			return co, nil
		},
	}
	uc, _ := newSettleUseCase(store, repo)

	_, err := uc.Execute(context.Background(), paidEvent("cs_swap", tier.BoxSet))
	assert.True(t, errors.IsIntegrityError(err))
	assert.Equal(t, 0, store.count("user-1"))
}

func TestSettlePayment_ValidationErrors(t *testing.T) {
	uc, _ := newSettleUseCase(newMemoryStore(), &mockCheckoutRepository{})

	event := paidEvent("", tier.Rental)
	_, err := uc.Execute(context.Background(), event)
	assert.True(t, errors.IsValidationError(err))

	event = paidEvent("cs_1", tier.Rental)
	event.Tier = "lifetime"
	_, err = uc.Execute(context.Background(), event)
	assert.True(t, errors.IsValidationError(err))
}

func TestSettlePayment_StoreFailurePropagates(t *testing.T) {
	store := newMemoryStore()
	store.RecordPurchaseErr = stderrors.New("deadlock")
	uc, _ := newSettleUseCase(store, &mockCheckoutRepository{})

	_, err := uc.Execute(context.Background(), paidEvent("cs_1", tier.Rental))
	assert.ErrorIs(t, err, store.RecordPurchaseErr)
}

func TestSettlePayment_CheckoutUpdateFailurePropagates(t *testing.T) {
	store := newMemoryStore()
	co := pendingCheckout(t, "cs_1", tier.Rental)
	repo := &mockCheckoutRepository{
		GetByExternalSessionIDFunc: func(ctx context.Context, sessionID string) (*checkout.Checkout, error) {
			return co, nil
		},
		UpdateFunc: func(ctx context.Context, c *checkout.Checkout) error {
			return stderrors.New("version conflict")
		},
	}
	uc, _ := newSettleUseCase(store, repo)

	_, err := uc.Execute(context.Background(), paidEvent("cs_1", tier.Rental))
	assert.Error(t, err)
}

type failingLocker struct{}

func (failingLocker) Lock(ctx context.Context, userID string) (func(), error) {
	return nil, stderrors.New("redis unavailable")
}

func TestSettlePayment_LockFailure(t *testing.T) {
	store := newMemoryStore()
	uc := NewSettlePaymentUseCase(store, &mockCheckoutRepository{}, failingLocker{}, passthroughTx{}, logger.NewNopLogger())

	_, err := uc.Execute(context.Background(), paidEvent("cs_1", tier.Rental))
	assert.Error(t, err)
	assert.Equal(t, 0, store.count("user-1"))
}
