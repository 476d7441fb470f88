package usecases

import (
	"context"
	"time"

	"github.com/reelgate-inc/reelgate/internal/domain/content"
	"github.com/reelgate-inc/reelgate/internal/domain/entitlement"
)

var testNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

type stubStore struct {
	current *entitlement.Entitlement
	err     error
	now     time.Time
}

func (s *stubStore) GetCurrentEntitlement(ctx context.Context, userID string) (*entitlement.Entitlement, error) {
	return s.current, s.err
}

func (s *stubStore) Now() time.Time {
	return s.now
}

type stubCatalog map[string]content.Item

func (c stubCatalog) Get(ctx context.Context, id string) (content.Item, error) {
	item, ok := c[id]
	if !ok {
		return content.Item{}, content.ErrContentNotFound
	}
	return item, nil
}

func (c stubCatalog) List(ctx context.Context) ([]content.Item, error) {
	out := make([]content.Item, 0, len(c))
	for _, item := range c {
		out = append(out, item)
	}
	return out, nil
}

type mockSigner struct {
	MintPlaybackURLFunc func(ctx context.Context, contentID string, expiry time.Duration) (string, error)
	calls               int
	lastExpiry          time.Duration
}

func (m *mockSigner) MintPlaybackURL(ctx context.Context, contentID string, expiry time.Duration) (string, error) {
	m.calls++
	m.lastExpiry = expiry
	if m.MintPlaybackURLFunc != nil {
		return m.MintPlaybackURLFunc(ctx, contentID, expiry)
	}
	return "https://cdn.example/" + contentID + "?sig=abc", nil
}
