package usecases

import (
	"context"
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reelgate-inc/reelgate/internal/application/purchase/dto"
	"github.com/reelgate-inc/reelgate/internal/application/purchase/paymentgateway"
	"github.com/reelgate-inc/reelgate/internal/domain/tier"
	"github.com/reelgate-inc/reelgate/internal/shared/errors"
	"github.com/reelgate-inc/reelgate/internal/shared/logger"
)

func TestHandlePaymentWebhook(t *testing.T) {
	completed := paidEvent("cs_1", tier.Regular)

	tests := []struct {
		name        string
		parse       func(payload []byte, sig string) (*paymentgateway.WebhookEvent, error)
		wantOutcome dto.SettlementOutcome
		wantErr     func(error) bool
	}{
		{
			name: "completed payment is settled",
			parse: func(payload []byte, sig string) (*paymentgateway.WebhookEvent, error) {
				return &paymentgateway.WebhookEvent{ID: "evt_1", Type: "checkout.session.completed", Completed: &completed}, nil
			},
			wantOutcome: dto.SettlementGranted,
		},
		{
			name: "other events are acknowledged",
			parse: func(payload []byte, sig string) (*paymentgateway.WebhookEvent, error) {
				return &paymentgateway.WebhookEvent{ID: "evt_2", Type: "customer.created"}, nil
			},
			wantOutcome: dto.SettlementIgnored,
		},
		{
			name: "bad signature is an integrity error",
			parse: func(payload []byte, sig string) (*paymentgateway.WebhookEvent, error) {
				return nil, fmt.Errorf("%w: no valid signature", paymentgateway.ErrInvalidSignature)
			},
			wantErr: errors.IsIntegrityError,
		},
		{
			name: "undecodable payload is a validation error",
			parse: func(payload []byte, sig string) (*paymentgateway.WebhookEvent, error) {
				return nil, stderrors.New("unexpected end of JSON input")
			},
			wantErr: errors.IsValidationError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMemoryStore()
			settle, _ := newSettleUseCase(store, &mockCheckoutRepository{})
			uc := NewHandlePaymentWebhookUseCase(&mockGateway{ParseWebhookFunc: tt.parse}, settle, logger.NewNopLogger())

			result, err := uc.Execute(context.Background(), []byte(`{}`), "t=1,v1=abc")
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, tt.wantErr(err))
				assert.Equal(t, 0, store.count("user-1"))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantOutcome, result.Outcome)
		})
	}
}
