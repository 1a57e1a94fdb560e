package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lexmanthefirst/paystack-wallet-to-wallet-service/internal/domain/users"
	"github.com/lexmanthefirst/paystack-wallet-to-wallet-service/internal/pkg/logger"
	"github.com/redis/go-redis/v9"
)

// oauthStateKeyPrefix namespaces login state values in Redis.
const oauthStateKeyPrefix = "oauth_state:"

type redisStateStore struct {
	client *redis.Client
	logger logger.Logger
}

// NewRedisStateStore creates a Redis-backed StateStore implementation for
// OAuth login state values.
func NewRedisStateStore(client *redis.Client, logger logger.Logger) (users.StateStore, error) {
	return &redisStateStore{
		client: client,
		logger: logger,
	}, nil
}

func (s *redisStateStore) Put(ctx context.Context, state string, ttl time.Duration) error {
	if err := s.client.Set(ctx, oauthStateKeyPrefix+state, "1", ttl).Err(); err != nil {
		return fmt.Errorf("failed to store oauth state: %w", err)
	}
	return nil
}

func (s *redisStateStore) Take(ctx context.Context, state string) (bool, error) {
	// GETDEL makes each state single-use
	val, err := s.client.GetDel(ctx, oauthStateKeyPrefix+state).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to take oauth state: %w", err)
	}
	return val != "", nil
}
