package ratelimit

import (
	"context"
	"time"
)

// RateLimitConfig caps requests per window. A zero limit disables that window.
type RateLimitConfig struct {
	RequestsPerMinute int
	RequestsPerHour   int
}

type RateLimiter interface {
	// Allow counts one request against every enabled window of config.
	Allow(ctx context.Context, key string, config RateLimitConfig) (bool, error)
	// GetRemaining reports the budget left in window without counting a request.
	GetRemaining(ctx context.Context, key string, window time.Duration, limit int) (int64, error)
}
