package usecases

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/reelgate-inc/reelgate/internal/application/notification/dto"
	"github.com/reelgate-inc/reelgate/internal/domain/entitlement"
	"github.com/reelgate-inc/reelgate/internal/domain/tier"
	"github.com/reelgate-inc/reelgate/internal/domain/user"
	"github.com/reelgate-inc/reelgate/internal/shared/logger"
)

// expirationSweepKey names the lock held for a whole notifier pass.
const expirationSweepKey = "notifier:expiration"

// expiredLookback bounds how long after expiry the "expired" email is still sent.
const expiredLookback = 7 * 24 * time.Hour

type noticeWindow struct {
	kind     entitlement.NotificationKind
	from, to time.Time
}

// windowsAt returns the expiry windows for one pass. A rental is picked up by
// a window when from < expires_at <= to.
func windowsAt(now time.Time) []noticeWindow {
	return []noticeWindow{
		{kind: entitlement.NotificationWarning48h, from: now.Add(24 * time.Hour), to: now.Add(48 * time.Hour)},
		{kind: entitlement.NotificationWarning24h, from: now, to: now.Add(24 * time.Hour)},
		{kind: entitlement.NotificationExpired, from: now.Add(-expiredLookback), to: now},
	}
}

// SendExpirationNoticesUseCase emails rental holders as their rental nears its
// end and once it has lapsed. A flag is only written after its email went out,
// so a failed send is retried on the next pass. Passes hold the sweep lock from
// the window queries until the last flag write, so a scheduled pass and a
// manual run never mail the same notice twice.
type SendExpirationNoticesUseCase struct {
	rentals  RentalSource
	profiles ProfileReader
	sender   Sender
	locker   SweepLocker
	logger   logger.Interface
}

func NewSendExpirationNoticesUseCase(
	rentals RentalSource,
	profiles ProfileReader,
	sender Sender,
	locker SweepLocker,
	logger logger.Interface,
) *SendExpirationNoticesUseCase {
	return &SendExpirationNoticesUseCase{
		rentals:  rentals,
		profiles: profiles,
		sender:   sender,
		locker:   locker,
		logger:   logger,
	}
}

// Execute runs one pass and returns the number of emails sent. Per-rental
// failures are logged and skipped. Failed window queries and flags that could
// not be recorded after a send are returned together.
func (uc *SendExpirationNoticesUseCase) Execute(ctx context.Context) (int, error) {
	release, err := uc.locker.Lock(ctx, expirationSweepKey)
	if err != nil {
		uc.logger.Warnw("failed to acquire notifier lock", "error", err)
		return 0, fmt.Errorf("failed to acquire notifier lock: %w", err)
	}
	defer release()

	// Windows are queried under the lock so a pass that waited sees the flags
	// the previous holder wrote.
	now := uc.rentals.Now()
	sent, skipped := 0, 0
	var errs []error

	for _, w := range windowsAt(now) {
		candidates, err := uc.rentals.ListRentalsExpiringBetween(ctx, w.from, w.to, w.kind)
		if err != nil {
			uc.logger.Errorw("failed to list rentals for notification window",
				"kind", w.kind,
				"error", err,
			)
			errs = append(errs, fmt.Errorf("%s window: %w", w.kind, err))
			continue
		}

		for _, e := range candidates {
			if ctx.Err() != nil {
				return sent, ctx.Err()
			}
			ok, err := uc.notify(ctx, e, w.kind, now)
			if ok {
				sent++
			}
			if err != nil {
				if ok {
					// Sent but not recorded: a store failure the caller must see.
					errs = append(errs, err)
				} else {
					skipped++
				}
			}
		}
	}

	uc.logger.Infow("expiration notices processed",
		"sent", sent,
		"skipped", skipped,
	)

	return sent, stderrors.Join(errs...)
}

// notify handles one rental. It returns false with a nil error when the
// rental no longer needs this notice, and true with an error when the email
// went out but the flag write failed.
func (uc *SendExpirationNoticesUseCase) notify(ctx context.Context, e *entitlement.Entitlement, kind entitlement.NotificationKind, now time.Time) (bool, error) {
	if e.TierID() != tier.Rental || e.Marks().IsSent(kind) {
		return false, nil
	}
	// A rental is still active at its exact expiry instant.
	if kind == entitlement.NotificationExpired && !e.IsExpiredAt(now) {
		return false, nil
	}

	current, err := uc.rentals.GetCurrentEntitlement(ctx, e.UserID())
	if err != nil {
		uc.logger.Warnw("failed to load current entitlement for notice",
			"entitlement_id", e.ID(),
			"user_id", e.UserID(),
			"error", err,
		)
		return false, err
	}
	if current == nil || current.ID() != e.ID() {
		uc.logger.Debugw("rental superseded by a newer purchase, notice skipped",
			"entitlement_id", e.ID(),
			"user_id", e.UserID(),
			"kind", kind,
		)
		return false, nil
	}

	profile, err := uc.profiles.GetByUserID(ctx, e.UserID())
	if err != nil {
		if stderrors.Is(err, user.ErrProfileNotFound) {
			uc.logger.Warnw("no contact profile for rental holder",
				"entitlement_id", e.ID(),
				"user_id", e.UserID(),
			)
		} else {
			uc.logger.Errorw("failed to load contact profile",
				"entitlement_id", e.ID(),
				"user_id", e.UserID(),
				"error", err,
			)
		}
		return false, err
	}
	if !profile.HasEmail() {
		uc.logger.Warnw("rental holder has no email address",
			"entitlement_id", e.ID(),
			"user_id", e.UserID(),
		)
		return false, fmt.Errorf("user %s has no email address", e.UserID())
	}

	msgKind, _ := dto.MessageKindFor(kind)
	t := tier.MustGet(e.TierID())
	data := dto.MessageData{
		RecipientName: profile.GreetingName(),
		TierName:      t.Name(),
		PriceCents:    t.PriceCents(),
		Currency:      t.Currency(),
		PurchasedAt:   e.CreatedAt(),
		ExpiresAt:     e.ExpiresAt(),
	}

	if err := uc.sender.SendNotification(ctx, profile.Email(), msgKind, data); err != nil {
		uc.logger.Warnw("failed to send expiration notice",
			"entitlement_id", e.ID(),
			"user_id", e.UserID(),
			"kind", kind,
			"error", err,
		)
		return false, err
	}

	if err := uc.rentals.MarkNotificationSent(ctx, e.ID(), kind); err != nil {
		// The email went out; the next pass may send it again.
		uc.logger.Errorw("notice sent but flag not recorded",
			"entitlement_id", e.ID(),
			"user_id", e.UserID(),
			"kind", kind,
			"error", err,
		)
		return true, fmt.Errorf("failed to record %s notice for entitlement %d: %w", kind, e.ID(), err)
	}

	uc.logger.Infow("expiration notice sent",
		"entitlement_id", e.ID(),
		"user_id", e.UserID(),
		"kind", kind,
	)
	return true, nil
}
