package engine

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// ErrMalformed reports a stored value that could not be decoded.
var ErrMalformed = errors.New("malformed record")

// KV is the string key-value store every record lives in.
// Keys are independent; there are no transactions across keys.
type KV interface {
	// Get returns ok=false when the key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// pingRetry bounds how long remote backends are probed at startup.
var pingRetry = RetryConfig{
	MaxRetries:  3,
	InitialWait: 250 * time.Millisecond,
	MaxWait:     2 * time.Second,
	Multiplier:  2.0,
}

// OpenKV opens the backend named by c.StoreBackend and wraps it in the
// tiered L1 cache when c.CacheTTL > 0. An unreachable remote backend
// falls back to SQLite in c.DataDir.
func OpenKV(ctx context.Context, c Config) (KV, error) {
	backend, err := openBackend(ctx, c)
	if err != nil {
		return nil, err
	}
	if c.CacheTTL <= 0 {
		return backend, nil
	}
	return NewTieredKV(backend, c.CacheTTL, c.CacheMaxEntries, c.CacheCleanupInterval), nil
}

func openBackend(ctx context.Context, c Config) (KV, error) {
	name := strings.ToLower(strings.TrimSpace(c.StoreBackend))
	var (
		kv  KV
		err error
	)
	switch name {
	case BackendMemory:
		slog.Info("store: memory backend (state is lost on restart)")
		return NewMemoryKV(), nil
	case "", BackendSQLite:
		return OpenSQLiteKV(c.DataDir)
	case BackendRedis:
		kv, err = OpenRedisKV(ctx, c.RedisURL)
	case BackendPostgres:
		kv, err = OpenPostgresKV(ctx, c.DatabaseURL)
	default:
		return nil, fmt.Errorf("unknown store backend %q (valid: memory, sqlite, redis, postgres)", c.StoreBackend)
	}
	if err == nil {
		return kv, nil
	}
	metrics.StoreErrors.Add(1)
	slog.Warn("store: remote backend unavailable, falling back to sqlite",
		slog.String("backend", name), slog.Any("error", err))
	return OpenSQLiteKV(c.DataDir)
}

// CloseKV releases kv. A tiered cache closes its backend too.
func CloseKV(kv KV) error {
	switch s := kv.(type) {
	case *TieredKV:
		s.Close()
		return CloseKV(s.backend)
	case *PostgresKV:
		s.Close()
	case interface{ Close() error }:
		return s.Close()
	}
	return nil
}

// LoadJSON decodes the value at key into T. Absent keys return ok=false
// and no error; undecodable values return ErrMalformed.
func LoadJSON[T any](ctx context.Context, kv KV, key string) (T, bool, error) {
	var zero T
	raw, ok, err := kv.Get(ctx, key)
	if err != nil {
		metrics.StoreErrors.Add(1)
		return zero, false, fmt.Errorf("load %s: %w", key, err)
	}
	if !ok {
		return zero, false, nil
	}
	var out T
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		metrics.MalformedRecords.Add(1)
		return zero, false, fmt.Errorf("load %s: %w: %v", key, ErrMalformed, err)
	}
	return out, true, nil
}

// StoreJSON encodes v and writes it at key.
func StoreJSON[T any](ctx context.Context, kv KV, key string, v T) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("store %s: %w", key, err)
	}
	if err := kv.Set(ctx, key, string(data)); err != nil {
		metrics.StoreErrors.Add(1)
		return fmt.Errorf("store %s: %w", key, err)
	}
	return nil
}
