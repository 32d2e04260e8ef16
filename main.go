// go_placement: placement readiness and job tracker MCP server.
//
// Exposes JD analysis (skill extraction, readiness score, rounds, checklist,
// 7-day plan, questions), job matching against saved preferences, the daily
// digest, application status tracking, proof of work and a resume ATS score.
// State lives in a key-value store: sqlite by default, or memory, redis
// or postgres.
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/anatolykoptev/go-kit/env"
	"github.com/anatolykoptev/go-mcpserver"
	"github.com/anatolykoptev/go_placement/internal/engine"
	"github.com/anatolykoptev/go_placement/internal/engine/jobs"
	"github.com/anatolykoptev/go_placement/internal/engine/records"
	"github.com/anatolykoptev/go_placement/internal/jobserver"
	"github.com/joho/godotenv"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

var version = "dev"

func main() {
	// .env is optional; real environment variables win.
	_ = godotenv.Load()
	initLogger(env.Str("LOG_LEVEL", "info"))
	mcpPort := env.Str("MCP_PORT", "8893")

	c := engine.Config{
		StoreBackend:         env.Str("STORE_BACKEND", engine.BackendSQLite),
		DataDir:              env.Str("DATA_DIR", ""),
		DatabaseURL:          env.Str("DATABASE_URL", ""),
		RedisURL:             env.Str("REDIS_URL", ""),
		CacheTTL:             env.Duration("CACHE_TTL", 5*time.Minute),
		CacheMaxEntries:      env.Int("CACHE_MAX_ENTRIES", 256),
		CacheCleanupInterval: env.Duration("CACHE_CLEANUP_INTERVAL", 300*time.Second),
		JobsFile:             env.Str("JOBS_FILE", ""),
	}

	ctx := context.Background()
	kv, err := engine.OpenKV(ctx, c)
	if err != nil {
		slog.Error("store init failed", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := engine.CloseKV(kv); err != nil {
			slog.Warn("store close failed", slog.Any("error", err))
		}
	}()

	catalog := jobs.LoadCatalog(c.JobsFile)

	slog.Info("starting go_placement",
		slog.String("port", mcpPort),
		slog.String("store", c.StoreBackend),
		slog.Int("jobs", len(catalog)),
	)

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "go_placement",
		Version: version,
	}, nil)

	deps := jobserver.Deps{
		Store:   records.New(kv),
		Catalog: catalog,
	}
	n := jobserver.RegisterTools(server, deps)
	slog.Info("tools registered", slog.Int("count", n))

	if spec := env.Str("DIGEST_SCHEDULE", "0 9 * * *"); spec != "" {
		sched, err := jobserver.NewDigestScheduler(spec, deps)
		if err != nil {
			slog.Warn("digest scheduler disabled", slog.Any("error", err))
		} else {
			sched.Start()
			defer sched.Stop()
		}
	}

	if err := mcpserver.Run(server, mcpserver.Config{
		Name:         "go_placement",
		Version:      version,
		Port:         mcpPort,
		WriteTimeout: 60 * time.Second,
		Metrics:      engine.FormatMetrics,
	}); err != nil {
		slog.Error("server failed", slog.Any("error", err))
	}
}

// initLogger installs a JSON handler on stderr; stdout may carry the
// stdio transport.
func initLogger(level string) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})))
}
