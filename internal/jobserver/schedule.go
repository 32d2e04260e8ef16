package jobserver

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/robfig/cron/v3"
)

// DigestScheduler prebuilds the day's digest on a cron spec so the first
// job_digest call of the day finds it stored.
type DigestScheduler struct {
	cron  *cron.Cron
	tools *tools
	spec  string
}

// NewDigestScheduler validates spec (standard 5-field cron or "@daily").
func NewDigestScheduler(spec string, d Deps) (*DigestScheduler, error) {
	s := &DigestScheduler{cron: cron.New(), tools: newTools(d), spec: spec}
	if _, err := s.cron.AddFunc(spec, func() { s.tools.prebuildDigest(context.Background()) }); err != nil {
		return nil, fmt.Errorf("digest schedule %q: %w", spec, err)
	}
	return s, nil
}

// Start runs the scheduler in the background.
func (s *DigestScheduler) Start() {
	s.cron.Start()
	slog.Info("digest scheduler started", slog.String("spec", s.spec))
}

// Stop stops the scheduler and waits for a running prebuild to finish.
func (s *DigestScheduler) Stop() {
	<-s.cron.Stop().Done()
}

// prebuildDigest stores today's digest unless preferences are missing or
// it already exists. It reports whether a new digest was stored.
func (t *tools) prebuildDigest(ctx context.Context) bool {
	prefs := t.activePreferences(ctx, "digest_schedule")
	if prefs == nil {
		slog.Debug("digest_schedule: no preferences, skipping")
		return false
	}
	d, created, err := t.store.Digests.GetOrBuild(ctx, t.catalog, prefs)
	if err != nil {
		slog.Warn("digest_schedule: build failed", slog.Any("error", err))
		return false
	}
	if created {
		slog.Info("digest_schedule: prebuilt", slog.String("date", d.Date), slog.Int("jobs", len(d.Jobs)))
	}
	return created
}
