package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/redis/go-redis/v9"
)

const rateLimitPrefix = "ratelimit:caller:"

// RateLimiter enforces a per-caller fixed window over Redis so the limit
// holds across replicas.
type RateLimiter struct {
	client            *Client
	clock             clockwork.Clock
	requestsPerMinute int
	burst             int
}

// NewRateLimiter creates a new rate limiter
func NewRateLimiter(client *Client, clock clockwork.Clock, requestsPerMinute, burst int) *RateLimiter {
	return &RateLimiter{
		client:            client,
		clock:             clock,
		requestsPerMinute: requestsPerMinute,
		burst:             burst,
	}
}

// Allow checks whether the caller may proceed in the current window.
// Returns (allowed, remaining, resetTime, error).
func (r *RateLimiter) Allow(ctx context.Context, callerID string) (bool, int, time.Time, error) {
	fullKey := rateLimitPrefix + callerID
	windowEnd := r.clock.Now().Truncate(time.Minute).Add(time.Minute)

	pipe := r.client.rdb.Pipeline()
	incrCmd := pipe.Incr(ctx, fullKey)
	pipe.ExpireNX(ctx, fullKey, time.Minute)

	if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
		return false, 0, time.Time{}, fmt.Errorf("failed to execute rate limit check: %w", err)
	}

	count := incrCmd.Val()
	limit := int64(r.requestsPerMinute + r.burst)
	remaining := int(limit - count)
	if remaining < 0 {
		remaining = 0
	}

	return count <= limit, remaining, windowEnd, nil
}

// Reset clears the caller's window, mainly for tests and ops tooling.
func (r *RateLimiter) Reset(ctx context.Context, callerID string) error {
	return r.client.rdb.Del(ctx, rateLimitPrefix+callerID).Err()
}
