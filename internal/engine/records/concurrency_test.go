package records

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/anatolykoptev/go_placement/internal/engine"
	"github.com/anatolykoptev/go_placement/internal/engine/jobs"
	"github.com/anatolykoptev/go_placement/internal/engine/placement"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const concurrentWriters = 20

// newSQLiteStore returns a Store over a sqlite KV behind the L1 cache,
// the production default.
func newSQLiteStore(t *testing.T) *Store {
	t.Helper()
	backend, err := engine.OpenSQLiteKV(t.TempDir())
	require.NoError(t, err)
	kv := engine.NewTieredKV(backend, time.Minute, 64, time.Minute)
	t.Cleanup(func() { require.NoError(t, engine.CloseKV(kv)) })
	return New(kv, WithClock(func() time.Time { return testNow }))
}

func runConcurrently(t *testing.T, n int, fn func(i int) error) {
	t.Helper()
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs <- fn(i)
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}
}

func TestHistory_ConcurrentSavesKeepEveryAnalysis(t *testing.T) {
	ctx := context.Background()
	s := newSQLiteStore(t)

	runConcurrently(t, concurrentWriters, func(i int) error {
		a := placement.Analyze(placement.Input{
			Company: fmt.Sprintf("Company %d", i),
			JDText:  "React, SQL, DSA",
		}, testNow)
		return s.History.Save(ctx, a)
	})

	list, skipped, err := s.History.List(ctx)
	require.NoError(t, err)
	assert.Zero(t, skipped)
	assert.Len(t, list, concurrentWriters)
}

func TestTracker_ConcurrentMutationsKeepEveryChange(t *testing.T) {
	ctx := context.Background()
	s := newSQLiteStore(t)

	runConcurrently(t, concurrentWriters, func(i int) error {
		id := fmt.Sprintf("job-%03d", i+1)
		if _, err := s.Tracker.ToggleSaved(ctx, id); err != nil {
			return err
		}
		_, err := s.Tracker.SetStatus(ctx, jobs.Job{ID: id}, jobs.StatusApplied)
		return err
	})

	ids, err := s.Tracker.Saved(ctx)
	require.NoError(t, err)
	assert.Len(t, ids, concurrentWriters)

	statuses, err := s.Tracker.Statuses(ctx)
	require.NoError(t, err)
	assert.Len(t, statuses, concurrentWriters)

	updates, err := s.Tracker.Updates(ctx)
	require.NoError(t, err)
	assert.Len(t, updates, MaxStatusUpdates)
}

func TestProof_ConcurrentChecksKeepEveryTest(t *testing.T) {
	ctx := context.Background()
	s := newSQLiteStore(t)

	runConcurrently(t, len(ProofTests), func(i int) error {
		_, err := s.Proof.SetTest(ctx, ProofTests[i].ID, true)
		return err
	})

	st, err := s.Proof.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(ProofTests), st.Passed)
}
