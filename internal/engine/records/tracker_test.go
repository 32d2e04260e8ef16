package records

import (
	"context"
	"fmt"
	"testing"

	"github.com/anatolykoptev/go_placement/internal/engine/jobs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTracker_SetStatus(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	job := jobs.Job{ID: "job-002", Title: "React Developer", Company: "Razorpay"}

	u, err := s.Tracker.SetStatus(ctx, job, jobs.StatusApplied)
	require.NoError(t, err)
	assert.Equal(t, "Razorpay", u.Company)
	assert.Equal(t, testNow, u.ChangedAt)

	statuses, err := s.Tracker.Statuses(ctx)
	require.NoError(t, err)
	assert.Equal(t, jobs.StatusApplied, statuses["job-002"])
	assert.Equal(t, jobs.StatusNotApplied, jobs.StatusOf(statuses, "job-001"))

	_, err = s.Tracker.SetStatus(ctx, job, jobs.StatusNotApplied)
	require.NoError(t, err)
	statuses, err = s.Tracker.Statuses(ctx)
	require.NoError(t, err)
	assert.NotContains(t, statuses, "job-002")

	updates, err := s.Tracker.Updates(ctx)
	require.NoError(t, err)
	require.Len(t, updates, 2)
	assert.Equal(t, jobs.StatusNotApplied, updates[0].Status, "newest first")
}

func TestTracker_UnknownStoredStatusDropped(t *testing.T) {
	s, kv := newTestStore(t)
	putRaw(t, kv, KeyStatus, `{"job-001":"applied","job-002":"Interviewing"}`)

	statuses, err := s.Tracker.Statuses(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]jobs.Status{"job-001": jobs.StatusApplied}, statuses)
}

func TestTracker_UpdateLogCapped(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	for i := 0; i < MaxStatusUpdates+5; i++ {
		_, err := s.Tracker.SetStatus(ctx, jobs.Job{ID: fmt.Sprintf("job-%03d", i)}, jobs.StatusApplied)
		require.NoError(t, err)
	}
	updates, err := s.Tracker.Updates(ctx)
	require.NoError(t, err)
	require.Len(t, updates, MaxStatusUpdates)
	assert.Equal(t, "job-024", updates[0].JobID)
}

func TestTracker_ToggleSaved(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	saved, err := s.Tracker.ToggleSaved(ctx, "job-001")
	require.NoError(t, err)
	assert.True(t, saved)
	saved, err = s.Tracker.ToggleSaved(ctx, "job-003")
	require.NoError(t, err)
	assert.True(t, saved)

	ids, err := s.Tracker.Saved(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"job-001", "job-003"}, ids)

	saved, err = s.Tracker.ToggleSaved(ctx, "job-001")
	require.NoError(t, err)
	assert.False(t, saved)
	ids, err = s.Tracker.Saved(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"job-003"}, ids)
}

func TestTracker_MalformedReadsEmpty(t *testing.T) {
	s, kv := newTestStore(t)
	putRaw(t, kv, KeySavedJobs, `not json`)
	ids, err := s.Tracker.Saved(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{}, ids)
}
