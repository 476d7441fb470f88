package usecases

import (
	"context"
	stderrors "errors"

	"github.com/reelgate-inc/reelgate/internal/application/purchase/dto"
	"github.com/reelgate-inc/reelgate/internal/application/purchase/paymentgateway"
	"github.com/reelgate-inc/reelgate/internal/shared/errors"
	"github.com/reelgate-inc/reelgate/internal/shared/logger"
	"github.com/reelgate-inc/reelgate/internal/shared/utils/logutil"
)

type paymentSettler interface {
	Execute(ctx context.Context, event paymentgateway.PaymentCompletedEvent) (*dto.SettlementResult, error)
}

// HandlePaymentWebhookUseCase authenticates a processor webhook and hands
// completed payments to settlement.
type HandlePaymentWebhookUseCase struct {
	gateway paymentgateway.PaymentGateway
	settler paymentSettler
	logger  logger.Interface
}

func NewHandlePaymentWebhookUseCase(
	gateway paymentgateway.PaymentGateway,
	settler paymentSettler,
	logger logger.Interface,
) *HandlePaymentWebhookUseCase {
	return &HandlePaymentWebhookUseCase{
		gateway: gateway,
		settler: settler,
		logger:  logger,
	}
}

func (uc *HandlePaymentWebhookUseCase) Execute(ctx context.Context, payload []byte, signature string) (*dto.SettlementResult, error) {
	event, err := uc.gateway.ParseWebhook(payload, signature)
	if err != nil {
		if stderrors.Is(err, paymentgateway.ErrInvalidSignature) {
			uc.logger.Warnw("rejected webhook with invalid signature",
				"security_event", true,
				"payload_bytes", len(payload),
				"signature", logutil.TruncateForLog(signature, 24),
				"error", err,
			)
			return nil, errors.NewIntegrityError("invalid webhook signature")
		}
		uc.logger.Warnw("failed to decode webhook", "error", err)
		return nil, errors.NewValidationError("malformed webhook payload")
	}

	if event.Completed == nil {
		uc.logger.Debugw("ignoring webhook event", "event_id", event.ID, "type", event.Type)
		return &dto.SettlementResult{Outcome: dto.SettlementIgnored}, nil
	}

	return uc.settler.Execute(ctx, *event.Completed)
}
