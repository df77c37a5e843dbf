package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/actiondesk/action-tracker/pkg/config"
)

// NewRedisClient creates a new Redis client from configuration
func NewRedisClient(cfg *config.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.GetRedisAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return client, nil
}

// RedisLock serializes extraction runs across processes using SETNX
// with a TTL. Release is token-checked so an expired lock taken over
// by another run is never cleared by the first one.
type RedisLock struct {
	client *redis.Client
}

// NewRedisLock creates a Redis-backed run lock
func NewRedisLock(client *redis.Client) *RedisLock {
	return &RedisLock{client: client}
}

// Acquire takes the lock if free; returns false when already held
func (l *RedisLock) Acquire(ctx context.Context, key, token string, ttl time.Duration) (bool, error) {
	ok, err := l.client.SetNX(ctx, key, token, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("redis setnx: %w", err)
	}
	return ok, nil
}

// Release clears the lock when token still owns it
func (l *RedisLock) Release(ctx context.Context, key, token string) error {
	current, err := l.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return nil
		}
		return fmt.Errorf("redis get: %w", err)
	}
	if current != token {
		return nil
	}
	return l.client.Del(ctx, key).Err()
}
