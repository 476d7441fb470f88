package usecases

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/reelgate-inc/reelgate/internal/application/purchase/paymentgateway"
	"github.com/reelgate-inc/reelgate/internal/domain/checkout"
	"github.com/reelgate-inc/reelgate/internal/domain/entitlement"
	"github.com/reelgate-inc/reelgate/internal/domain/tier"
	"github.com/reelgate-inc/reelgate/internal/shared/errors"
)

var testNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

// memoryStore is an in-memory Entitlement Store with the same append-only
// and unique-session semantics as the database-backed one.
type memoryStore struct {
	mu      sync.Mutex
	now     time.Time
	records []*entitlement.Entitlement
	nextID  uint

	RecordPurchaseErr error
	GetCurrentErr     error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{now: testNow}
}

func (s *memoryStore) Now() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

func (s *memoryStore) GetCurrentEntitlement(ctx context.Context, userID string) (*entitlement.Entitlement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.GetCurrentErr != nil {
		return nil, s.GetCurrentErr
	}
	var mine []*entitlement.Entitlement
	for _, e := range s.records {
		if e.UserID() == userID {
			mine = append(mine, e)
		}
	}
	if len(mine) == 0 {
		return nil, nil
	}
	sort.Slice(mine, func(i, j int) bool {
		if !mine[i].CreatedAt().Equal(mine[j].CreatedAt()) {
			return mine[i].CreatedAt().After(mine[j].CreatedAt())
		}
		return mine[i].ID() > mine[j].ID()
	})
	return mine[0], nil
}

func (s *memoryStore) GetBySessionID(ctx context.Context, sessionID string) (*entitlement.Entitlement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.records {
		if e.ExternalSessionID() == sessionID {
			return e, nil
		}
	}
	return nil, nil
}

func (s *memoryStore) RecordPurchase(ctx context.Context, userID string, tierID tier.ID, sessionID string) (*entitlement.Entitlement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.RecordPurchaseErr != nil {
		return nil, s.RecordPurchaseErr
	}
	for _, e := range s.records {
		if e.ExternalSessionID() == sessionID {
			return nil, errors.NewConflictError("payment session already settled", sessionID)
		}
	}
	e, err := entitlement.NewEntitlement(userID, tierID, sessionID, s.now)
	if err != nil {
		return nil, err
	}
	s.nextID++
	if err := e.SetID(s.nextID); err != nil {
		return nil, err
	}
	s.records = append(s.records, e)
	return e, nil
}

func (s *memoryStore) seed(userID string, tierID tier.ID, createdAt time.Time) *entitlement.Entitlement {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	e, err := entitlement.NewEntitlement(userID, tierID, fmt.Sprintf("cs_seed_%d", s.nextID), createdAt)
	if err != nil {
		panic(err)
	}
	_ = e.SetID(s.nextID)
	s.records = append(s.records, e)
	return e
}

func (s *memoryStore) count(userID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, e := range s.records {
		if e.UserID() == userID {
			n++
		}
	}
	return n
}

type mockCheckoutRepository struct {
	mu sync.Mutex

	CreateFunc                 func(ctx context.Context, c *checkout.Checkout) error
	UpdateFunc                 func(ctx context.Context, c *checkout.Checkout) error
	GetByReferenceFunc         func(ctx context.Context, reference string) (*checkout.Checkout, error)
	GetByExternalSessionIDFunc func(ctx context.Context, sessionID string) (*checkout.Checkout, error)
	ListExpiredPendingFunc     func(ctx context.Context, now time.Time, limit int) ([]*checkout.Checkout, error)

	created []*checkout.Checkout
	updated []*checkout.Checkout
}

func (m *mockCheckoutRepository) Create(ctx context.Context, c *checkout.Checkout) error {
	m.mu.Lock()
	m.created = append(m.created, c)
	m.mu.Unlock()
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, c)
	}
	return nil
}

func (m *mockCheckoutRepository) Update(ctx context.Context, c *checkout.Checkout) error {
	m.mu.Lock()
	m.updated = append(m.updated, c)
	m.mu.Unlock()
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, c)
	}
	return nil
}

func (m *mockCheckoutRepository) GetByReference(ctx context.Context, reference string) (*checkout.Checkout, error) {
	if m.GetByReferenceFunc != nil {
		return m.GetByReferenceFunc(ctx, reference)
	}
	return nil, checkout.ErrCheckoutNotFound
}

func (m *mockCheckoutRepository) GetByExternalSessionID(ctx context.Context, sessionID string) (*checkout.Checkout, error) {
	if m.GetByExternalSessionIDFunc != nil {
		return m.GetByExternalSessionIDFunc(ctx, sessionID)
	}
	return nil, nil
}

func (m *mockCheckoutRepository) ListExpiredPending(ctx context.Context, now time.Time, limit int) ([]*checkout.Checkout, error) {
	if m.ListExpiredPendingFunc != nil {
		return m.ListExpiredPendingFunc(ctx, now, limit)
	}
	return nil, nil
}

type mockGateway struct {
	CreateCheckoutSessionFunc func(ctx context.Context, req paymentgateway.CreateCheckoutRequest) (*paymentgateway.CreateCheckoutResponse, error)
	ParseWebhookFunc          func(payload []byte, signatureHeader string) (*paymentgateway.WebhookEvent, error)
}

func (m *mockGateway) CreateCheckoutSession(ctx context.Context, req paymentgateway.CreateCheckoutRequest) (*paymentgateway.CreateCheckoutResponse, error) {
	if m.CreateCheckoutSessionFunc != nil {
		return m.CreateCheckoutSessionFunc(ctx, req)
	}
	return &paymentgateway.CreateCheckoutResponse{
		SessionID:   "cs_test_" + req.Reference,
		RedirectURL: "https://checkout.example/" + req.Reference,
	}, nil
}

func (m *mockGateway) ParseWebhook(payload []byte, signatureHeader string) (*paymentgateway.WebhookEvent, error) {
	if m.ParseWebhookFunc != nil {
		return m.ParseWebhookFunc(payload, signatureHeader)
	}
	return &paymentgateway.WebhookEvent{Type: "ping"}, nil
}

// mutexLocker serializes by user with one mutex per key.
type mutexLocker struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
	calls int
}

func newMutexLocker() *mutexLocker {
	return &mutexLocker{locks: make(map[string]*sync.Mutex)}
}

func (l *mutexLocker) Lock(ctx context.Context, userID string) (func(), error) {
	l.mu.Lock()
	m, ok := l.locks[userID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[userID] = m
	}
	l.calls++
	l.mu.Unlock()

	m.Lock()
	return m.Unlock, nil
}

type passthroughTx struct{}

func (passthroughTx) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
