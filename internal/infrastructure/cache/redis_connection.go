// Package cache provides the Redis-backed pieces of the service: the fixed
// window rate limiter and the short-lived OAuth state store.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/lexmanthefirst/paystack-wallet-to-wallet-service/internal/pkg/config"
	"github.com/lexmanthefirst/paystack-wallet-to-wallet-service/internal/pkg/logger"
	"github.com/redis/go-redis/v9"
)

// NewRedisClient creates a Redis client from settings. An unreachable server
// is logged but not fatal: commands fail until Redis comes back, and the
// rate limiter fails closed in the meantime.
func NewRedisClient(settings *config.RedisSettings, logger logger.Logger) (*redis.Client, error) {
	opts, err := redis.ParseURL(settings.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}

	opts.DialTimeout = time.Duration(settings.ConnectTimeoutSecs) * time.Second
	opts.PoolSize = 10

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), opts.DialTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logger.Error("Failed to connect to Redis: ", err)
	} else {
		logger.Info("Redis connected successfully")
	}

	return client, nil
}

// CloseRedis closes the Redis connection
func CloseRedis(client *redis.Client) error {
	if err := client.Close(); err != nil {
		return fmt.Errorf("failed to close redis connection: %w", err)
	}
	return nil
}
