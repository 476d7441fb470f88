package cache

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/reelgate-inc/reelgate/internal/shared/id"
	"github.com/reelgate-inc/reelgate/internal/shared/logger"
)

const (
	purchaseLockPrefix = "purchase_lock:"
	jobLockPrefix      = "job_lock:"

	// DefaultPurchaseLockTTL bounds how long a crashed holder can block a user.
	DefaultPurchaseLockTTL = 30 * time.Second

	// DefaultJobLockTTL must outlast one notifier pass, SMTP round trips included.
	DefaultJobLockTTL = 15 * time.Minute

	defaultLockRetryInterval = 50 * time.Millisecond
)

// ErrLockTimeout is returned when ctx ends before the lock was acquired.
var ErrLockTimeout = errors.New("timed out waiting for lock")

// releaseScript deletes the key only if it still holds our token, so a holder
// whose TTL lapsed cannot release someone else's lock.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// PurchaseLock serializes purchase settlement per user across instances.
// Key format: purchase_lock:{user_id}, or job_lock:{job} when built by
// NewJobLock for background sweeps.
type PurchaseLock struct {
	client        *redis.Client
	prefix        string
	ttl           time.Duration
	retryInterval time.Duration
	logger        logger.Interface
}

func NewPurchaseLock(client *redis.Client, ttl time.Duration, logger logger.Interface) *PurchaseLock {
	if ttl <= 0 {
		ttl = DefaultPurchaseLockTTL
	}
	return &PurchaseLock{
		client:        client,
		prefix:        purchaseLockPrefix,
		ttl:           ttl,
		retryInterval: defaultLockRetryInterval,
		logger:        logger,
	}
}

// NewJobLock returns a lock for background jobs that must not overlap across
// server instances. Keys live under job_lock: and default to DefaultJobLockTTL.
func NewJobLock(client *redis.Client, ttl time.Duration, logger logger.Interface) *PurchaseLock {
	if ttl <= 0 {
		ttl = DefaultJobLockTTL
	}
	l := NewPurchaseLock(client, ttl, logger)
	l.prefix = jobLockPrefix
	return l
}

func (l *PurchaseLock) buildKey(userID string) string {
	return l.prefix + userID
}

// Lock blocks until the user's lock is held or ctx is done.
func (l *PurchaseLock) Lock(ctx context.Context, userID string) (func(), error) {
	key := l.buildKey(userID)
	token, err := id.Generate(id.DefaultLength)
	if err != nil {
		return nil, fmt.Errorf("failed to generate lock token: %w", err)
	}

	ticker := time.NewTicker(l.retryInterval)
	defer ticker.Stop()

	for {
		// SetNX is atomic: only sets if key doesn't exist
		acquired, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to acquire lock %s: %w", key, err)
		}
		if acquired {
			return l.releaser(key, token), nil
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %s", ErrLockTimeout, userID)
		case <-ticker.C:
		}
	}
}

func (l *PurchaseLock) releaser(key, token string) func() {
	var once sync.Once
	return func() {
		once.Do(func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := releaseScript.Run(ctx, l.client, []string{key}, token).Err(); err != nil {
				l.logger.Warnw("failed to release lock", "key", key, "error", err)
			}
		})
	}
}

// LocalPurchaseLock is the single-process fallback used when Redis is not
// configured.
type LocalPurchaseLock struct {
	mu    sync.Mutex
	locks map[string]*userLock
}

type userLock struct {
	ch   chan struct{}
	refs int
}

func NewLocalPurchaseLock() *LocalPurchaseLock {
	return &LocalPurchaseLock{locks: make(map[string]*userLock)}
}

func (l *LocalPurchaseLock) Lock(ctx context.Context, userID string) (func(), error) {
	l.mu.Lock()
	ul, ok := l.locks[userID]
	if !ok {
		ul = &userLock{ch: make(chan struct{}, 1)}
		l.locks[userID] = ul
	}
	ul.refs++
	l.mu.Unlock()

	select {
	case ul.ch <- struct{}{}:
	case <-ctx.Done():
		l.unref(userID, ul)
		return nil, fmt.Errorf("%w: %s", ErrLockTimeout, userID)
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-ul.ch
			l.unref(userID, ul)
		})
	}, nil
}

func (l *LocalPurchaseLock) unref(userID string, ul *userLock) {
	l.mu.Lock()
	defer l.mu.Unlock()
	ul.refs--
	if ul.refs == 0 {
		delete(l.locks, userID)
	}
}
