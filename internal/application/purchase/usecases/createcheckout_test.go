package usecases

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reelgate-inc/reelgate/internal/application/purchase/paymentgateway"
	"github.com/reelgate-inc/reelgate/internal/domain/checkout"
	vo "github.com/reelgate-inc/reelgate/internal/domain/checkout/valueobjects"
	"github.com/reelgate-inc/reelgate/internal/domain/tier"
	"github.com/reelgate-inc/reelgate/internal/domain/user"
	"github.com/reelgate-inc/reelgate/internal/shared/errors"
	"github.com/reelgate-inc/reelgate/internal/shared/logger"
)

type stubProfiles map[string]*user.Profile

func (s stubProfiles) GetByUserID(ctx context.Context, userID string) (*user.Profile, error) {
	if p, ok := s[userID]; ok {
		return p, nil
	}
	return nil, user.ErrProfileNotFound
}

func TestCreateCheckoutUseCase_Success(t *testing.T) {
	store := newMemoryStore()
	repo := &mockCheckoutRepository{}
	var sent paymentgateway.CreateCheckoutRequest
	gateway := &mockGateway{
		CreateCheckoutSessionFunc: func(ctx context.Context, req paymentgateway.CreateCheckoutRequest) (*paymentgateway.CreateCheckoutResponse, error) {
			sent = req
			return &paymentgateway.CreateCheckoutResponse{SessionID: "cs_test_1", RedirectURL: "https://checkout.example/cs_test_1"}, nil
		},
	}
	profile, err := user.NewProfile("user-1", "ada@example.com", "Ada", testNow)
	require.NoError(t, err)

	uc := NewCreateCheckoutUseCase(store, repo, gateway, time.Hour, logger.NewNopLogger())
	uc.SetProfileReader(stubProfiles{"user-1": profile})

	resp, err := uc.Execute(context.Background(), CreateCheckoutCommand{UserID: "user-1", Tier: "boxset"})
	require.NoError(t, err)

	assert.True(t, resp.Allowed)
	assert.Equal(t, "cs_test_1", resp.SessionID)
	assert.Equal(t, "https://checkout.example/cs_test_1", resp.RedirectURL)

	assert.Equal(t, int64(2499), sent.AmountCents)
	assert.Equal(t, "usd", sent.Currency)
	assert.Equal(t, "boxset", sent.Tier)
	assert.Equal(t, "ada@example.com", sent.CustomerEmail)
	assert.Equal(t, resp.Reference, sent.Reference)

	require.Len(t, repo.created, 1)
	co := repo.created[0]
	assert.Equal(t, vo.CheckoutStatusPending, co.Status())
	assert.Equal(t, "cs_test_1", co.ExternalSessionID())
	assert.Equal(t, tier.BoxSet, co.TierID())
	assert.Equal(t, testNow.Add(time.Hour), co.ExpiresAt())
}

func TestCreateCheckoutUseCase_NotEligible(t *testing.T) {
	store := newMemoryStore()
	store.seed("user-1", tier.BoxSet, testNow.Add(-time.Hour))
	repo := &mockCheckoutRepository{}
	gateway := &mockGateway{
		CreateCheckoutSessionFunc: func(ctx context.Context, req paymentgateway.CreateCheckoutRequest) (*paymentgateway.CreateCheckoutResponse, error) {
			t.Fatal("payment processor must not be called for an ineligible purchase")
			return nil, nil
		},
	}

	uc := NewCreateCheckoutUseCase(store, repo, gateway, time.Hour, logger.NewNopLogger())

	resp, err := uc.Execute(context.Background(), CreateCheckoutCommand{UserID: "user-1", Tier: "regular"})
	require.NoError(t, err)
	assert.False(t, resp.Allowed)
	assert.Contains(t, resp.Reason, "Box Set")
	assert.Empty(t, repo.created)
}

func TestCreateCheckoutUseCase_GatewayFailure(t *testing.T) {
	gateway := &mockGateway{
		CreateCheckoutSessionFunc: func(ctx context.Context, req paymentgateway.CreateCheckoutRequest) (*paymentgateway.CreateCheckoutResponse, error) {
			return nil, stderrors.New("stripe: 503")
		},
	}
	repo := &mockCheckoutRepository{}
	uc := NewCreateCheckoutUseCase(newMemoryStore(), repo, gateway, time.Hour, logger.NewNopLogger())

	_, err := uc.Execute(context.Background(), CreateCheckoutCommand{UserID: "user-1", Tier: "rental"})
	assert.True(t, errors.IsDependencyError(err))
	assert.Empty(t, repo.created)
}

func TestCreateCheckoutUseCase_PersistFailure(t *testing.T) {
	repo := &mockCheckoutRepository{
		CreateFunc: func(ctx context.Context, c *checkout.Checkout) error { return stderrors.New("insert failed") },
	}
	uc := NewCreateCheckoutUseCase(newMemoryStore(), repo, &mockGateway{}, time.Hour, logger.NewNopLogger())

	_, err := uc.Execute(context.Background(), CreateCheckoutCommand{UserID: "user-1", Tier: "rental"})
	assert.Error(t, err)
	assert.False(t, errors.IsAppError(err))
}

func TestCreateCheckoutUseCase_UnknownTier(t *testing.T) {
	uc := NewCreateCheckoutUseCase(newMemoryStore(), &mockCheckoutRepository{}, &mockGateway{}, time.Hour, logger.NewNopLogger())

	_, err := uc.Execute(context.Background(), CreateCheckoutCommand{UserID: "user-1", Tier: "vip"})
	assert.True(t, errors.IsValidationError(err))
}
