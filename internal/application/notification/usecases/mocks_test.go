package usecases

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/reelgate-inc/reelgate/internal/application/notification/dto"
	"github.com/reelgate-inc/reelgate/internal/domain/entitlement"
	"github.com/reelgate-inc/reelgate/internal/domain/tier"
	"github.com/reelgate-inc/reelgate/internal/domain/user"
)

var testNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

// memoryRentals keeps entitlements and their marks with the same window
// semantics as the database-backed store.
type memoryRentals struct {
	mu      sync.Mutex
	now     time.Time
	records []*entitlement.Entitlement
	marks   map[uint]entitlement.NotificationMarks

	ListErr  error
	MarkErr  error
	markCall int
}

func newMemoryRentals(now time.Time) *memoryRentals {
	return &memoryRentals{now: now, marks: make(map[uint]entitlement.NotificationMarks)}
}

// add stores a purchase made by userID at createdAt and returns its ID.
func (m *memoryRentals) add(userID string, tierID tier.ID, createdAt time.Time) uint {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, err := entitlement.NewEntitlement(userID, tierID, fmt.Sprintf("cs_%d", len(m.records)+1), createdAt)
	if err != nil {
		panic(err)
	}
	id := uint(len(m.records) + 1)
	if err := e.SetID(id); err != nil {
		panic(err)
	}
	m.records = append(m.records, e)
	return id
}

func (m *memoryRentals) setNow(now time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = now
}

func (m *memoryRentals) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

func (m *memoryRentals) withMarks(e *entitlement.Entitlement) *entitlement.Entitlement {
	out, err := entitlement.ReconstructEntitlement(e.ID(), e.UserID(), e.TierID(), e.Status(),
		e.ExternalSessionID(), e.CreatedAt(), e.ExpiresAt(), m.marks[e.ID()], nil)
	if err != nil {
		panic(err)
	}
	return out
}

func (m *memoryRentals) ListRentalsExpiringBetween(ctx context.Context, from, to time.Time, kind entitlement.NotificationKind) ([]*entitlement.Entitlement, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	var out []*entitlement.Entitlement
	for _, e := range m.records {
		exp := e.ExpiresAt()
		if exp == nil || !exp.After(from) || exp.After(to) || m.marks[e.ID()].IsSent(kind) {
			continue
		}
		out = append(out, m.withMarks(e))
	}
	return out, nil
}

func (m *memoryRentals) GetCurrentEntitlement(ctx context.Context, userID string) (*entitlement.Entitlement, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var mine []*entitlement.Entitlement
	for _, e := range m.records {
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
	return m.withMarks(mine[0]), nil
}

func (m *memoryRentals) MarkNotificationSent(ctx context.Context, id uint, kind entitlement.NotificationKind) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.markCall++
	if m.MarkErr != nil {
		return m.MarkErr
	}
	m.marks[id] = m.marks[id].With(kind)
	return nil
}

type sentMessage struct {
	Address string
	Kind    dto.MessageKind
	Data    dto.MessageData
}

type mockSender struct {
	mu   sync.Mutex
	sent []sentMessage

	SendNotificationFunc func(ctx context.Context, address string, kind dto.MessageKind, data dto.MessageData) error
}

func (s *mockSender) SendNotification(ctx context.Context, address string, kind dto.MessageKind, data dto.MessageData) error {
	if s.SendNotificationFunc != nil {
		if err := s.SendNotificationFunc(ctx, address, kind, data); err != nil {
			return err
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, sentMessage{Address: address, Kind: kind, Data: data})
	return nil
}

func (s *mockSender) messages() []sentMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]sentMessage(nil), s.sent...)
}

type stubProfiles map[string]*user.Profile

func (p stubProfiles) GetByUserID(ctx context.Context, userID string) (*user.Profile, error) {
	profile, ok := p[userID]
	if !ok {
		return nil, user.ErrProfileNotFound
	}
	return profile, nil
}

func profilesFor(userIDs ...string) stubProfiles {
	p := make(stubProfiles, len(userIDs))
	for _, id := range userIDs {
		p[id] = user.ReconstructProfile(id, id+"@example.com", "Viewer "+id, testNow, testNow)
	}
	return p
}

// mutexLocker is a single-process SweepLocker keyed by name.
type mutexLocker struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
	keys  []string

	LockErr error
}

func (l *mutexLocker) Lock(ctx context.Context, key string) (func(), error) {
	if l.LockErr != nil {
		return nil, l.LockErr
	}
	l.mu.Lock()
	if l.locks == nil {
		l.locks = make(map[string]*sync.Mutex)
	}
	m, ok := l.locks[key]
	if !ok {
		m = &sync.Mutex{}
		l.locks[key] = m
	}
	l.keys = append(l.keys, key)
	l.mu.Unlock()

	m.Lock()
	var once sync.Once
	return func() { once.Do(m.Unlock) }, nil
}
