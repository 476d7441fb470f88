package usecases

import (
	"context"
	"fmt"

	"github.com/reelgate-inc/reelgate/internal/application/purchase/dto"
	"github.com/reelgate-inc/reelgate/internal/application/purchase/paymentgateway"
	"github.com/reelgate-inc/reelgate/internal/domain/checkout"
	vo "github.com/reelgate-inc/reelgate/internal/domain/checkout/valueobjects"
	"github.com/reelgate-inc/reelgate/internal/domain/entitlement"
	"github.com/reelgate-inc/reelgate/internal/domain/tier"
	"github.com/reelgate-inc/reelgate/internal/shared/errors"
	"github.com/reelgate-inc/reelgate/internal/shared/logger"
)

// PurchaseNotifier is told about granted purchases (optional, best effort).
type PurchaseNotifier interface {
	NotifyPurchaseGranted(ctx context.Context, e *entitlement.Entitlement)
}

// SettlePaymentUseCase converts a verified payment event into at most one
// entitlement. Settlement for a user is serialized by UserLocker and applied
// in a single transaction, so a record is either fully written or not at all.
type SettlePaymentUseCase struct {
	store        EntitlementWriter
	checkoutRepo checkout.CheckoutRepository
	locker       UserLocker
	txRunner     TransactionRunner
	notifier     PurchaseNotifier // Optional
	logger       logger.Interface
}

func NewSettlePaymentUseCase(
	store EntitlementWriter,
	checkoutRepo checkout.CheckoutRepository,
	locker UserLocker,
	txRunner TransactionRunner,
	logger logger.Interface,
) *SettlePaymentUseCase {
	return &SettlePaymentUseCase{
		store:        store,
		checkoutRepo: checkoutRepo,
		locker:       locker,
		txRunner:     txRunner,
		logger:       logger,
	}
}

// SetPurchaseNotifier sets the purchase notifier (optional dependency injection)
func (uc *SettlePaymentUseCase) SetPurchaseNotifier(n PurchaseNotifier) {
	uc.notifier = n
}

func (uc *SettlePaymentUseCase) Execute(ctx context.Context, event paymentgateway.PaymentCompletedEvent) (*dto.SettlementResult, error) {
	if event.SessionID == "" || event.UserID == "" {
		uc.logger.Warnw("payment event missing identifiers",
			"session_id", event.SessionID,
			"user_id", event.UserID,
		)
		return nil, errors.NewValidationError("payment event is missing session or user")
	}

	tierID, err := tier.ParseID(event.Tier)
	if err != nil {
		uc.logger.Warnw("payment event names unknown tier", "session_id", event.SessionID, "tier", event.Tier)
		return nil, errors.NewValidationError("unknown tier", event.Tier)
	}

	t := tier.MustGet(tierID)
	if !t.MatchesPayment(event.AmountPaidCents, event.Currency) {
		uc.logger.Errorw("payment amount does not match catalog price",
			"security_event", true,
			"session_id", event.SessionID,
			"user_id", event.UserID,
			"tier", tierID,
			"paid_amount", event.AmountPaidCents,
			"paid_currency", event.Currency,
			"expected_amount", t.PriceCents(),
			"expected_currency", t.Currency(),
		)
		return nil, errors.NewIntegrityError("payment amount mismatch",
			fmt.Sprintf("paid %d %s", event.AmountPaidCents, event.Currency),
			fmt.Sprintf("expected %d %s", t.PriceCents(), t.Currency()),
		)
	}

	release, err := uc.locker.Lock(ctx, event.UserID)
	if err != nil {
		uc.logger.Errorw("failed to acquire purchase lock", "user_id", event.UserID, "error", err)
		return nil, fmt.Errorf("failed to acquire purchase lock: %w", err)
	}
	defer release()

	var result *dto.SettlementResult
	var granted *entitlement.Entitlement
	err = uc.txRunner.RunInTransaction(ctx, func(txCtx context.Context) error {
		existing, err := uc.store.GetBySessionID(txCtx, event.SessionID)
		if err != nil {
			return err
		}
		if existing != nil {
			result = &dto.SettlementResult{Outcome: dto.SettlementAlreadySettled, EntitlementID: existing.ID()}
			return nil
		}

		co, err := uc.checkoutRepo.GetByExternalSessionID(txCtx, event.SessionID)
		if err != nil {
			return fmt.Errorf("failed to load checkout: %w", err)
		}
		if co != nil && (co.UserID() != event.UserID || co.TierID() != tierID) {
			uc.logger.Errorw("payment event disagrees with checkout",
				"security_event", true,
				"session_id", event.SessionID,
				"event_user_id", event.UserID,
				"checkout_user_id", co.UserID(),
				"event_tier", tierID,
				"checkout_tier", co.TierID(),
			)
			return errors.NewIntegrityError("payment event does not match checkout")
		}
		if co != nil && co.Status() == vo.CheckoutStatusRejected {
			result = &dto.SettlementResult{Outcome: dto.SettlementRejected, Reason: co.RejectReason()}
			return nil
		}

		// A different checkout for this user may have settled since the
		// pre-check; re-evaluate against the current entitlement under the lock.
		eligibility, err := checkUserEligibility(txCtx, uc.store, event.UserID, tierID)
		if err != nil {
			return err
		}
		if !eligibility.Allowed {
			if co != nil {
				if err := co.MarkRejected(eligibility.Reason, uc.store.Now()); err != nil {
					return err
				}
				if err := uc.checkoutRepo.Update(txCtx, co); err != nil {
					return fmt.Errorf("failed to mark checkout rejected: %w", err)
				}
			}
			result = &dto.SettlementResult{Outcome: dto.SettlementRejected, Reason: eligibility.Reason}
			return nil
		}

		e, err := uc.store.RecordPurchase(txCtx, event.UserID, tierID, event.SessionID)
		if err != nil {
			return err
		}
		if co != nil {
			if err := co.MarkCompleted(uc.store.Now()); err != nil {
				return err
			}
			if err := uc.checkoutRepo.Update(txCtx, co); err != nil {
				return fmt.Errorf("failed to mark checkout completed: %w", err)
			}
		} else {
			uc.logger.Warnw("settled payment without a stored checkout",
				"session_id", event.SessionID,
				"reference", event.Reference,
			)
		}

		granted = e
		result = &dto.SettlementResult{Outcome: dto.SettlementGranted, EntitlementID: e.ID()}
		return nil
	})
	if err != nil {
		if errors.IsConflictError(err) {
			// Unique index on the session caught a concurrent delivery.
			uc.logger.Infow("payment settled concurrently", "session_id", event.SessionID)
			return &dto.SettlementResult{Outcome: dto.SettlementAlreadySettled}, nil
		}
		uc.logger.Errorw("payment settlement failed",
			"session_id", event.SessionID,
			"user_id", event.UserID,
			"error", err,
		)
		return nil, err
	}

	switch result.Outcome {
	case dto.SettlementGranted:
		uc.logger.Infow("payment settled",
			"session_id", event.SessionID,
			"user_id", event.UserID,
			"tier", tierID,
			"entitlement_id", result.EntitlementID,
		)
		if uc.notifier != nil {
			uc.notifier.NotifyPurchaseGranted(ctx, granted)
		}
	case dto.SettlementAlreadySettled:
		uc.logger.Infow("duplicate payment event ignored",
			"session_id", event.SessionID,
			"entitlement_id", result.EntitlementID,
		)
	case dto.SettlementRejected:
		uc.logger.Warnw("paid checkout rejected at settlement, refund required",
			"session_id", event.SessionID,
			"user_id", event.UserID,
			"tier", tierID,
			"reason", result.Reason,
		)
	}

	return result, nil
}
