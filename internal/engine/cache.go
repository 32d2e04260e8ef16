package engine

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// Cache metrics, updated atomically.
var (
	cacheHits   atomic.Int64
	cacheMisses atomic.Int64
)

// TieredKV is an L1 in-memory read cache in front of a KV backend.
// Writes go through to the backend; Remove invalidates L1.
type TieredKV struct {
	backend         KV
	l1              sync.Map // key → *cacheEntry
	ttl             time.Duration
	maxEntries      int
	cleanupInterval time.Duration
	stop            chan struct{}
	stopOnce        sync.Once

	// gen counts writes per key. A backend read fills L1 only if no
	// Set or Remove on its key started or finished since the read began.
	genMu sync.Mutex
	gen   map[string]uint64
}

type cacheEntry struct {
	value     string
	expiresAt time.Time
}

// NewTieredKV wraps backend with an L1 cache and starts its cleanup loop.
func NewTieredKV(backend KV, ttl time.Duration, maxEntries int, cleanupInterval time.Duration) *TieredKV {
	c := &TieredKV{
		backend:         backend,
		ttl:             ttl,
		maxEntries:      maxEntries,
		cleanupInterval: cleanupInterval,
		stop:            make(chan struct{}),
		gen:             make(map[string]uint64),
	}
	slog.Info("cache: initialized", slog.Duration("ttl", ttl), slog.Int("max_entries", maxEntries))

	go c.cleanupLoop()
	return c
}

// Get tries L1, then the backend. A backend hit populates L1.
func (c *TieredKV) Get(ctx context.Context, key string) (string, bool, error) {
	if val, ok := c.l1.Load(key); ok {
		entry := val.(*cacheEntry)
		if time.Now().Before(entry.expiresAt) {
			slog.Debug("cache: L1 hit", slog.String("key", key))
			cacheHits.Add(1)
			return entry.value, true, nil
		}
		c.l1.Delete(key) // expired
	}

	cacheMisses.Add(1)
	start := c.generation(key)
	value, ok, err := c.backend.Get(ctx, key)
	if err != nil || !ok {
		return value, ok, err
	}
	c.genMu.Lock()
	if c.gen[key] == start {
		c.store(key, value)
	}
	c.genMu.Unlock()
	return value, true, nil
}

// Set writes to the backend first and caches only on success, unless a
// newer write to the same key started meanwhile.
func (c *TieredKV) Set(ctx context.Context, key, value string) error {
	mine := c.invalidate(key)
	err := c.backend.Set(ctx, key, value)

	c.genMu.Lock()
	defer c.genMu.Unlock()
	latest := c.gen[key] == mine
	c.gen[key]++
	if err != nil || !latest {
		c.l1.Delete(key)
		return err
	}
	c.store(key, value)
	return nil
}

// Remove deletes from the backend and invalidates L1.
func (c *TieredKV) Remove(ctx context.Context, key string) error {
	c.invalidate(key)
	err := c.backend.Remove(ctx, key)
	c.invalidate(key)
	return err
}

// invalidate drops key from L1 and bumps its generation so in-flight
// fills are discarded. It returns the new generation.
func (c *TieredKV) invalidate(key string) uint64 {
	c.genMu.Lock()
	defer c.genMu.Unlock()
	c.gen[key]++
	c.l1.Delete(key)
	return c.gen[key]
}

func (c *TieredKV) generation(key string) uint64 {
	c.genMu.Lock()
	defer c.genMu.Unlock()
	return c.gen[key]
}

// Close stops the cleanup loop. The backend is left open.
func (c *TieredKV) Close() {
	c.stopOnce.Do(func() { close(c.stop) })
}

func (c *TieredKV) store(key, value string) {
	c.evictIfNeeded()
	c.l1.Store(key, &cacheEntry{value: value, expiresAt: time.Now().Add(c.ttl)})
}

// CacheStats returns current cache hit/miss counters.
func CacheStats() (hits, misses int64) {
	return cacheHits.Load(), cacheMisses.Load()
}

// evictIfNeeded removes entries when L1 exceeds maxEntries.
// Removes expired entries first, then oldest entries if still over limit.
func (c *TieredKV) evictIfNeeded() {
	if c.maxEntries <= 0 {
		return
	}

	count := 0
	c.l1.Range(func(_, _ any) bool {
		count++
		return true
	})
	if count < c.maxEntries {
		return
	}

	// Phase 1: remove expired
	now := time.Now()
	c.l1.Range(func(key, val any) bool {
		if entry, ok := val.(*cacheEntry); ok && now.After(entry.expiresAt) {
			c.l1.Delete(key)
			count--
		}
		return count >= c.maxEntries
	})
	if count < c.maxEntries {
		return
	}

	// Phase 2: remove oldest entries until under limit.
	// Earlier expiry = older entry (expiry = storedAt + ttl).
	for count >= c.maxEntries {
		var oldestKey any
		oldestAt := now.Add(c.ttl + time.Hour)
		c.l1.Range(func(key, val any) bool {
			if entry, ok := val.(*cacheEntry); ok && entry.expiresAt.Before(oldestAt) {
				oldestKey = key
				oldestAt = entry.expiresAt
			}
			return true
		})
		if oldestKey == nil {
			break
		}
		c.l1.Delete(oldestKey)
		count--
	}
}

// cleanupLoop periodically removes expired L1 entries.
func (c *TieredKV) cleanupLoop() {
	interval := c.cleanupInterval
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			now := time.Now()
			c.l1.Range(func(key, val any) bool {
				if entry, ok := val.(*cacheEntry); ok && now.After(entry.expiresAt) {
					c.l1.Delete(key)
				}
				return true
			})
		}
	}
}
