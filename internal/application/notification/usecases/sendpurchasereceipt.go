package usecases

import (
	"context"
	"time"

	"github.com/reelgate-inc/reelgate/internal/application/notification/dto"
	"github.com/reelgate-inc/reelgate/internal/domain/entitlement"
	"github.com/reelgate-inc/reelgate/internal/domain/tier"
	"github.com/reelgate-inc/reelgate/internal/shared/goroutine"
	"github.com/reelgate-inc/reelgate/internal/shared/logger"
)

const receiptSendTimeout = 30 * time.Second

// SendPurchaseReceiptUseCase emails a receipt once a purchase is granted.
// Delivery is best effort and never affects settlement.
type SendPurchaseReceiptUseCase struct {
	profiles ProfileReader
	sender   Sender
	logger   logger.Interface
}

func NewSendPurchaseReceiptUseCase(profiles ProfileReader, sender Sender, logger logger.Interface) *SendPurchaseReceiptUseCase {
	return &SendPurchaseReceiptUseCase{
		profiles: profiles,
		sender:   sender,
		logger:   logger,
	}
}

// NotifyPurchaseGranted sends the receipt in the background.
func (uc *SendPurchaseReceiptUseCase) NotifyPurchaseGranted(ctx context.Context, e *entitlement.Entitlement) {
	if e == nil {
		return
	}
	goroutine.SafeGo(uc.logger, "purchase-receipt", func() {
		sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), receiptSendTimeout)
		defer cancel()
		if err := uc.Execute(sendCtx, e); err != nil {
			uc.logger.Warnw("failed to send purchase receipt",
				"entitlement_id", e.ID(),
				"user_id", e.UserID(),
				"error", err,
			)
		}
	}, "entitlement_id", e.ID(), "user_id", e.UserID())
}

// Execute sends the receipt synchronously.
func (uc *SendPurchaseReceiptUseCase) Execute(ctx context.Context, e *entitlement.Entitlement) error {
	profile, err := uc.profiles.GetByUserID(ctx, e.UserID())
	if err != nil {
		return err
	}
	if !profile.HasEmail() {
		uc.logger.Debugw("no email on file, receipt skipped", "user_id", e.UserID())
		return nil
	}

	t := tier.MustGet(e.TierID())
	data := dto.MessageData{
		RecipientName: profile.GreetingName(),
		TierName:      t.Name(),
		PriceCents:    t.PriceCents(),
		Currency:      t.Currency(),
		PurchasedAt:   e.CreatedAt(),
		ExpiresAt:     e.ExpiresAt(),
	}
	if err := uc.sender.SendNotification(ctx, profile.Email(), dto.MessagePurchaseReceipt, data); err != nil {
		return err
	}

	uc.logger.Infow("purchase receipt sent",
		"entitlement_id", e.ID(),
		"user_id", e.UserID(),
		"tier", e.TierID(),
	)
	return nil
}
