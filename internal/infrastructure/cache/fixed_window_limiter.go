package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/lexmanthefirst/paystack-wallet-to-wallet-service/internal/pkg/logger"
	"github.com/redis/go-redis/v9"
)

// Decision is the outcome of a rate limit check. RetryAfter carries the
// remaining window time when the request was denied.
type Decision struct {
	Allowed    bool
	RetryAfter time.Duration
}

// FixedWindowLimiter counts requests per key in fixed windows backed by
// Redis INCR and EXPIRE. Errors are returned to the caller, which is
// expected to fail closed.
type FixedWindowLimiter struct {
	client *redis.Client
	logger logger.Logger
}

// NewFixedWindowLimiter creates a FixedWindowLimiter on the given client
func NewFixedWindowLimiter(client *redis.Client, logger logger.Logger) (*FixedWindowLimiter, error) {
	return &FixedWindowLimiter{
		client: client,
		logger: logger,
	}, nil
}

// Allow records a hit on key and reports whether it stays within
// maxRequests per window. The first hit of a window sets its expiry.
func (l *FixedWindowLimiter) Allow(ctx context.Context, key string, maxRequests int, window time.Duration) (*Decision, error) {
	current, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("rate limit check failed: %w", err)
	}

	if current == 1 {
		if err := l.client.Expire(ctx, key, window).Err(); err != nil {
			return nil, fmt.Errorf("rate limit check failed: %w", err)
		}
	}

	if current > int64(maxRequests) {
		ttl, err := l.client.TTL(ctx, key).Result()
		if err != nil {
			return nil, fmt.Errorf("rate limit check failed: %w", err)
		}

		l.logger.Warn("Rate limit exceeded for ", key, ": ", current, "/", maxRequests)
		return &Decision{Allowed: false, RetryAfter: ttl}, nil
	}

	return &Decision{Allowed: true}, nil
}
