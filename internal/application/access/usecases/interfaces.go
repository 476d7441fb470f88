package usecases

import (
	"context"
	"time"

	"github.com/reelgate-inc/reelgate/internal/domain/entitlement"
)

// EntitlementReader is the read side of the Entitlement Store.
type EntitlementReader interface {
	GetCurrentEntitlement(ctx context.Context, userID string) (*entitlement.Entitlement, error)
	Now() time.Time
}

// PlaybackURLSigner mints short-lived playback URLs on the video platform.
// It must only be called once access has been granted.
type PlaybackURLSigner interface {
	MintPlaybackURL(ctx context.Context, contentID string, expiry time.Duration) (string, error)
}
