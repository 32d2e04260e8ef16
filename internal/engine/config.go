package engine

import "time"

// Store backends accepted by OpenKV.
const (
	BackendMemory   = "memory"
	BackendSQLite   = "sqlite"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

// Config holds all engine configuration, injected from main.
type Config struct {
	StoreBackend         string        // memory | sqlite | redis | postgres
	DataDir              string        // sqlite database directory
	DatabaseURL          string        // postgres backend
	RedisURL             string        // redis backend
	CacheTTL             time.Duration // 0 disables the L1 read cache
	CacheMaxEntries      int
	CacheCleanupInterval time.Duration
	JobsFile             string // optional override for the embedded job catalog
}
