package usecases

import (
	"context"
	"time"

	"github.com/reelgate-inc/reelgate/internal/application/notification/dto"
	"github.com/reelgate-inc/reelgate/internal/domain/entitlement"
	"github.com/reelgate-inc/reelgate/internal/domain/user"
)

// Sender delivers one rendered notification to an email address.
type Sender interface {
	SendNotification(ctx context.Context, address string, kind dto.MessageKind, data dto.MessageData) error
}

// RentalSource is the part of the Entitlement Store the notifier touches.
type RentalSource interface {
	ListRentalsExpiringBetween(ctx context.Context, from, to time.Time, kind entitlement.NotificationKind) ([]*entitlement.Entitlement, error)
	GetCurrentEntitlement(ctx context.Context, userID string) (*entitlement.Entitlement, error)
	MarkNotificationSent(ctx context.Context, entitlementID uint, kind entitlement.NotificationKind) error
	Now() time.Time
}

type ProfileReader interface {
	GetByUserID(ctx context.Context, userID string) (*user.Profile, error)
}

// SweepLocker keeps notifier passes from overlapping, across instances when it
// is backed by Redis. The returned release function must be called exactly once.
type SweepLocker interface {
	Lock(ctx context.Context, key string) (release func(), err error)
}
