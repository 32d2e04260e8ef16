package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"
)

// Metrics tracks operational counters across the engine.
var metrics struct {
	AnalysesCreated   atomic.Int64
	ConfidenceToggles atomic.Int64
	MatchScores       atomic.Int64
	DigestsBuilt      atomic.Int64
	StatusUpdates     atomic.Int64
	ResumeScores      atomic.Int64
	StoreErrors       atomic.Int64
	MalformedRecords  atomic.Int64
}

// metricKeys fixes the export order.
var metricKeys = []string{
	"analyses_created", "confidence_toggles",
	"match_scores", "digests_built", "status_updates",
	"resume_scores",
	"store_errors", "malformed_records",
	"cache_hits", "cache_misses",
}

// GetMetrics returns a snapshot of all metrics including cache stats.
func GetMetrics() map[string]int64 {
	hits, misses := CacheStats()
	return map[string]int64{
		"analyses_created":   metrics.AnalysesCreated.Load(),
		"confidence_toggles": metrics.ConfidenceToggles.Load(),
		"match_scores":       metrics.MatchScores.Load(),
		"digests_built":      metrics.DigestsBuilt.Load(),
		"status_updates":     metrics.StatusUpdates.Load(),
		"resume_scores":      metrics.ResumeScores.Load(),
		"store_errors":       metrics.StoreErrors.Load(),
		"malformed_records":  metrics.MalformedRecords.Load(),
		"cache_hits":         hits,
		"cache_misses":       misses,
	}
}

// FormatMetrics returns metrics as a simple text format for HTTP endpoint.
func FormatMetrics() string {
	m := GetMetrics()
	var sb strings.Builder
	for _, k := range metricKeys {
		fmt.Fprintf(&sb, "%s %d\n", k, m[k])
	}
	return sb.String()
}

// Incrementors for records/ and jobserver/.
func IncrAnalysesCreated()   { metrics.AnalysesCreated.Add(1) }
func IncrConfidenceToggles() { metrics.ConfidenceToggles.Add(1) }
func IncrMatchScores(n int)  { metrics.MatchScores.Add(int64(n)) }
func IncrDigestsBuilt()      { metrics.DigestsBuilt.Add(1) }
func IncrStatusUpdates()     { metrics.StatusUpdates.Add(1) }
func IncrResumeScores()      { metrics.ResumeScores.Add(1) }
func IncrMalformedRecords()  { metrics.MalformedRecords.Add(1) }

// TrackOperation logs a warning if an operation takes longer than threshold.
func TrackOperation(ctx context.Context, name string, threshold time.Duration, fn func(context.Context) error) error {
	start := time.Now()
	err := fn(ctx)
	if elapsed := time.Since(start); elapsed > threshold {
		slog.Warn("slow operation", slog.String("op", name), slog.Duration("elapsed", elapsed))
	}
	return err
}
