package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/reelgate-inc/reelgate/internal/infrastructure/ratelimit"
	"github.com/reelgate-inc/reelgate/internal/shared/constants"
	"github.com/reelgate-inc/reelgate/internal/shared/logger"
	"github.com/reelgate-inc/reelgate/internal/shared/utils"
)

// RateLimiter turns a sliding-window limiter into gin middleware. When the
// backing store fails the request is let through. Limited responses carry
// X-RateLimit-Limit and X-RateLimit-Remaining for the per-minute window.
type RateLimiter struct {
	limiter ratelimit.RateLimiter
	logger  logger.Interface
}

func NewRateLimiter(limiter ratelimit.RateLimiter, logger logger.Interface) *RateLimiter {
	return &RateLimiter{
		limiter: limiter,
		logger:  logger,
	}
}

// PerUser limits authenticated callers by subject. It must run after RequireAuth.
func (rl *RateLimiter) PerUser(scope string, perMinute int) gin.HandlerFunc {
	return rl.limit(scope, perMinute, func(c *gin.Context) string {
		if userID, ok := CurrentUserID(c); ok {
			return "user:" + userID
		}
		return "ip:" + c.ClientIP()
	})
}

// PerIP limits unauthenticated callers such as the payment processor.
func (rl *RateLimiter) PerIP(scope string, perMinute int) gin.HandlerFunc {
	return rl.limit(scope, perMinute, func(c *gin.Context) string {
		return "ip:" + c.ClientIP()
	})
}

func (rl *RateLimiter) limit(scope string, perMinute int, keyFn func(*gin.Context) string) gin.HandlerFunc {
	cfg := ratelimit.RateLimitConfig{RequestsPerMinute: perMinute}
	return func(c *gin.Context) {
		if rl == nil || rl.limiter == nil || perMinute <= 0 {
			c.Next()
			return
		}

		key := scope + ":" + keyFn(c)
		allowed, err := rl.limiter.Allow(c.Request.Context(), key, cfg)
		if err != nil {
			rl.logger.Warnw("rate limiter unavailable, allowing request",
				"scope", scope,
				"error", err)
			c.Next()
			return
		}

		rl.setBudgetHeaders(c, key, perMinute)

		if !allowed {
			rl.logger.Warnw("rate limit exceeded",
				"scope", scope,
				"key", key,
				"path", c.Request.URL.Path)
			utils.ErrorResponse(c, http.StatusTooManyRequests, "rate limit exceeded, please try again later")
			c.Abort()
			return
		}

		c.Next()
	}
}

func (rl *RateLimiter) setBudgetHeaders(c *gin.Context, key string, perMinute int) {
	remaining, err := rl.limiter.GetRemaining(c.Request.Context(), key, time.Minute, perMinute)
	if err != nil {
		rl.logger.Debugw("failed to read remaining rate limit budget", "error", err)
		return
	}
	c.Header(constants.HeaderRateLimitLimit, strconv.Itoa(perMinute))
	c.Header(constants.HeaderRateLimitLeft, strconv.FormatInt(remaining, 10))
}
