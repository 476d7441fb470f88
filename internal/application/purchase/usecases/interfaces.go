package usecases

import (
	"context"
	"time"

	"github.com/reelgate-inc/reelgate/internal/domain/entitlement"
	"github.com/reelgate-inc/reelgate/internal/domain/tier"
	"github.com/reelgate-inc/reelgate/internal/domain/user"
)

// EntitlementReader is the read side of the Entitlement Store.
type EntitlementReader interface {
	GetCurrentEntitlement(ctx context.Context, userID string) (*entitlement.Entitlement, error)
	Now() time.Time
}

// EntitlementWriter is what settlement needs from the Entitlement Store.
type EntitlementWriter interface {
	EntitlementReader
	GetBySessionID(ctx context.Context, sessionID string) (*entitlement.Entitlement, error)
	RecordPurchase(ctx context.Context, userID string, tierID tier.ID, externalSessionID string) (*entitlement.Entitlement, error)
}

// UserLocker serializes purchase settlement per user. The returned release
// function must be called exactly once.
type UserLocker interface {
	Lock(ctx context.Context, userID string) (release func(), err error)
}

// TransactionRunner runs fn in a database transaction carried by ctx.
type TransactionRunner interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// ProfileReader resolves contact data used to prefill checkout.
type ProfileReader interface {
	GetByUserID(ctx context.Context, userID string) (*user.Profile, error)
}
