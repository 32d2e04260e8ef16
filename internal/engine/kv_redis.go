package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
)

// redisKeyPrefix namespaces keys in a shared Redis.
const redisKeyPrefix = "placement:"

// RedisKV stores values as plain Redis strings without expiry.
type RedisKV struct {
	rdb *redis.Client
}

// OpenRedisKV connects to redisURL and pings it with retry.
func OpenRedisKV(ctx context.Context, redisURL string) (*RedisKV, error) {
	if redisURL == "" {
		return nil, errors.New("REDIS_URL is required")
	}
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse REDIS_URL: %w", err)
	}
	rdb := redis.NewClient(opts)
	if _, err := RetryDo(ctx, pingRetry, func() (string, error) {
		return rdb.Ping(ctx).Result()
	}); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	slog.Info("store: redis backend", slog.String("addr", opts.Addr))
	return &RedisKV{rdb: rdb}, nil
}

func (s *RedisKV) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := s.rdb.Get(ctx, redisKeyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis kv: get %s: %w", key, err)
	}
	return v, true, nil
}

func (s *RedisKV) Set(ctx context.Context, key, value string) error {
	if err := s.rdb.Set(ctx, redisKeyPrefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("redis kv: set %s: %w", key, err)
	}
	return nil
}

func (s *RedisKV) Remove(ctx context.Context, key string) error {
	if err := s.rdb.Del(ctx, redisKeyPrefix+key).Err(); err != nil {
		return fmt.Errorf("redis kv: remove %s: %w", key, err)
	}
	return nil
}

func (s *RedisKV) Close() error {
	return s.rdb.Close()
}
