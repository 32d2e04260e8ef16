package records

import (
	"context"
	"log/slog"

	"github.com/anatolykoptev/go_placement/internal/engine"
	"github.com/anatolykoptev/go_placement/internal/engine/jobs"
)

// DigestStore keeps one digest per calendar day.
type DigestStore struct {
	*base
}

// GetOrBuild returns today's stored digest, building and storing it on
// first request. A digest that needs preferences is never stored so it
// is rebuilt once preferences exist.
func (s *DigestStore) GetOrBuild(ctx context.Context, catalog []jobs.Job, prefs *jobs.Preferences) (jobs.Digest, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	key := DigestKey(jobs.DigestDate(now))

	stored, ok, err := load[jobs.Digest](ctx, s.kv, key)
	if err != nil {
		return jobs.Digest{}, false, err
	}
	if ok && !stored.NeedsPreferences {
		return stored, false, nil
	}

	d := jobs.BuildDigest(catalog, prefs, now)
	if d.NeedsPreferences {
		return d, false, nil
	}
	if err := engine.StoreJSON(ctx, s.kv, key, d); err != nil {
		return d, false, err
	}
	engine.IncrDigestsBuilt()
	slog.Info("digest: built", slog.String("date", d.Date), slog.Int("jobs", len(d.Jobs)))
	return d, true, nil
}

// Clear removes the digest for the current day so the next request rebuilds it.
func (s *DigestStore) Clear(ctx context.Context) error {
	return s.kv.Remove(ctx, DigestKey(jobs.DigestDate(s.now())))
}
