package usecases

import (
	"context"
	"fmt"

	"github.com/reelgate-inc/reelgate/internal/domain/checkout"
	"github.com/reelgate-inc/reelgate/internal/shared/biztime"
	"github.com/reelgate-inc/reelgate/internal/shared/logger"
)

const expireCheckoutsBatchSize = 200

// ExpireCheckoutsUseCase marks abandoned pending checkouts as expired. An
// expired checkout can still be settled if the processor reports payment late.
type ExpireCheckoutsUseCase struct {
	checkoutRepo checkout.CheckoutRepository
	clock        biztime.Clock
	logger       logger.Interface
}

func NewExpireCheckoutsUseCase(
	checkoutRepo checkout.CheckoutRepository,
	clock biztime.Clock,
	logger logger.Interface,
) *ExpireCheckoutsUseCase {
	return &ExpireCheckoutsUseCase{
		checkoutRepo: checkoutRepo,
		clock:        clock,
		logger:       logger,
	}
}

func (uc *ExpireCheckoutsUseCase) Execute(ctx context.Context) (int, error) {
	now := uc.clock.Now()
	expired, err := uc.checkoutRepo.ListExpiredPending(ctx, now, expireCheckoutsBatchSize)
	if err != nil {
		uc.logger.Errorw("failed to get expired checkouts", "error", err)
		return 0, fmt.Errorf("failed to get expired checkouts: %w", err)
	}

	if len(expired) == 0 {
		uc.logger.Debugw("no expired checkouts found")
		return 0, nil
	}

	count := 0
	for _, co := range expired {
		if err := co.MarkExpired(now); err != nil {
			uc.logger.Errorw("failed to mark checkout expired", "reference", co.Reference(), "error", err)
			continue
		}
		if err := uc.checkoutRepo.Update(ctx, co); err != nil {
			// A concurrent settlement wins the optimistic lock; that is fine.
			uc.logger.Warnw("failed to update expired checkout", "reference", co.Reference(), "error", err)
			continue
		}
		count++
	}

	uc.logger.Infow("expired checkouts processed",
		"total", len(expired),
		"expired", count,
	)
	return count, nil
}
