// Package records is the persistence boundary between the pure engine
// packages and the KV store. Every record is an independent JSON value
// under a fixed key; legacy shapes are normalized on load so the engine
// only ever sees canonical types.
package records

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/anatolykoptev/go_placement/internal/engine"
)

// Store keys.
const (
	KeyPreferences   = "jobTrackerPreferences"
	KeyHistory       = "placementAnalysisHistory"
	KeyStatus        = "jobTrackerStatus"
	KeyStatusUpdates = "jobTrackerStatusUpdates"
	KeySavedJobs     = "jobTrackerSavedJobs"
	KeyTestChecklist = "jobTrackerTestChecklist"
	KeyArtifacts     = "jobTrackerArtifacts"
	KeyResume        = "resumeBuilderData"

	digestKeyPrefix = "jobTrackerDigest_"
)

// DigestKey returns the key of the digest for date (YYYY-MM-DD).
func DigestKey(date string) string {
	return digestKeyPrefix + date
}

// ErrNotFound reports a missing history entry or job.
var ErrNotFound = errors.New("not found")

// Store groups the record stores over one KV.
type Store struct {
	History *History
	Prefs   *PreferenceStore
	Tracker *Tracker
	Digests *DigestStore
	Proof   *ProofStore
	Resume  *ResumeStore
}

// Option configures a Store.
type Option func(*base)

// WithClock overrides time.Now for timestamps.
func WithClock(now func() time.Time) Option {
	return func(b *base) { b.now = now }
}

// base is shared by every store over one KV. mu serializes
// load-modify-store sequences so concurrent tool calls do not drop writes.
type base struct {
	kv  engine.KV
	now func() time.Time
	mu  sync.Mutex
}

// New builds every record store over kv.
func New(kv engine.KV, opts ...Option) *Store {
	b := &base{kv: kv, now: time.Now}
	for _, o := range opts {
		o(b)
	}
	return &Store{
		History: &History{base: b},
		Prefs:   &PreferenceStore{base: b},
		Tracker: &Tracker{base: b},
		Digests: &DigestStore{base: b},
		Proof:   &ProofStore{base: b},
		Resume:  &ResumeStore{base: b},
	}
}

// load reads key into T. Malformed values are logged and read as absent.
func load[T any](ctx context.Context, kv engine.KV, key string) (T, bool, error) {
	v, ok, err := engine.LoadJSON[T](ctx, kv, key)
	if errors.Is(err, engine.ErrMalformed) {
		slog.Warn("records: malformed record, treating as empty", slog.String("key", key), slog.Any("error", err))
		var zero T
		return zero, false, nil
	}
	return v, ok, err
}
