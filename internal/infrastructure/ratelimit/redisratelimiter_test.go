package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) *redis.Client {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	t.Cleanup(func() {
		client.Close()
		mr.Close()
	})

	return client
}

func TestRedisRateLimiter_Allow_PerMinute(t *testing.T) {
	client := setupTestRedis(t)
	limiter := NewRedisRateLimiter(client)
	ctx := context.Background()

	config := RateLimitConfig{RequestsPerMinute: 5}
	key := "playback:user-1"

	for i := 0; i < 5; i++ {
		allowed, err := limiter.Allow(ctx, key, config)
		require.NoError(t, err)
		assert.True(t, allowed, "request %d should be allowed", i+1)
	}

	allowed, err := limiter.Allow(ctx, key, config)
	require.NoError(t, err)
	assert.False(t, allowed, "6th request should be denied")
}

func TestRedisRateLimiter_Allow_PerHour(t *testing.T) {
	client := setupTestRedis(t)
	limiter := NewRedisRateLimiter(client)
	ctx := context.Background()

	config := RateLimitConfig{RequestsPerHour: 3}
	key := "webhook:10.0.0.1"

	for i := 0; i < 3; i++ {
		allowed, err := limiter.Allow(ctx, key, config)
		require.NoError(t, err)
		assert.True(t, allowed)
	}

	allowed, err := limiter.Allow(ctx, key, config)
	require.NoError(t, err)
	assert.False(t, allowed, "4th request should be denied")
}

func TestRedisRateLimiter_Allow_DifferentKeys(t *testing.T) {
	client := setupTestRedis(t)
	limiter := NewRedisRateLimiter(client)
	ctx := context.Background()

	config := RateLimitConfig{RequestsPerMinute: 2}

	for i := 0; i < 2; i++ {
		allowed, err := limiter.Allow(ctx, "playback:user-1", config)
		require.NoError(t, err)
		assert.True(t, allowed)
	}

	allowed, err := limiter.Allow(ctx, "playback:user-1", config)
	require.NoError(t, err)
	assert.False(t, allowed, "user-1 should be rate limited")

	allowed, err = limiter.Allow(ctx, "playback:user-2", config)
	require.NoError(t, err)
	assert.True(t, allowed, "user-2 should not be affected")
}

func TestRedisRateLimiter_GetRemaining(t *testing.T) {
	client := setupTestRedis(t)
	limiter := NewRedisRateLimiter(client)
	ctx := context.Background()

	config := RateLimitConfig{RequestsPerMinute: 5}
	key := "playback:remaining"

	remaining, err := limiter.GetRemaining(ctx, key, time.Minute, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(5), remaining)

	for i := 0; i < 3; i++ {
		_, err := limiter.Allow(ctx, key, config)
		require.NoError(t, err)
	}

	remaining, err = limiter.GetRemaining(ctx, key, time.Minute, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(2), remaining)
}

func TestRedisRateLimiter_ZeroLimits(t *testing.T) {
	client := setupTestRedis(t)
	limiter := NewRedisRateLimiter(client)

	allowed, err := limiter.Allow(context.Background(), "playback:zero", RateLimitConfig{})
	require.NoError(t, err)
	assert.True(t, allowed, "zero limits should allow all requests")
}

func TestRedisRateLimiter_UnavailableReturnsError(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
	})
	t.Cleanup(func() { client.Close() })
	limiter := NewRedisRateLimiter(client)

	_, err := limiter.Allow(context.Background(), "playback:down", RateLimitConfig{RequestsPerMinute: 1})
	assert.Error(t, err)
}
