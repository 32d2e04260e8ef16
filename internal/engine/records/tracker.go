package records

import (
	"context"
	"time"

	"github.com/anatolykoptev/go_placement/internal/engine"
	"github.com/anatolykoptev/go_placement/internal/engine/jobs"
)

// MaxStatusUpdates bounds the status-change log.
const MaxStatusUpdates = 20

// StatusUpdate is one entry of the status-change log.
type StatusUpdate struct {
	JobID     string      `json:"jobId"`
	Title     string      `json:"title"`
	Company   string      `json:"company"`
	Status    jobs.Status `json:"status"`
	ChangedAt time.Time   `json:"changedAt"`
}

// Tracker holds per-job application status and the saved-job set.
type Tracker struct {
	*base
}

// Statuses returns the tracked status per job ID. Unknown status values
// are dropped so they read as Not Applied.
func (t *Tracker) Statuses(ctx context.Context) (map[string]jobs.Status, error) {
	raw, _, err := load[map[string]string](ctx, t.kv, KeyStatus)
	if err != nil {
		return map[string]jobs.Status{}, err
	}
	out := make(map[string]jobs.Status, len(raw))
	for id, s := range raw {
		if st, err := jobs.ParseStatus(s); err == nil {
			out[id] = st
		}
	}
	return out, nil
}

// SetStatus records st for job and prepends the change to the log.
func (t *Tracker) SetStatus(ctx context.Context, job jobs.Job, st jobs.Status) (StatusUpdate, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	statuses, err := t.Statuses(ctx)
	if err != nil {
		return StatusUpdate{}, err
	}
	if st == jobs.StatusNotApplied {
		delete(statuses, job.ID)
	} else {
		statuses[job.ID] = st
	}
	if err := engine.StoreJSON(ctx, t.kv, KeyStatus, statuses); err != nil {
		return StatusUpdate{}, err
	}

	u := StatusUpdate{
		JobID:     job.ID,
		Title:     job.Title,
		Company:   job.Company,
		Status:    st,
		ChangedAt: t.now().UTC(),
	}
	updates, err := t.Updates(ctx)
	if err != nil {
		return u, err
	}
	updates = append([]StatusUpdate{u}, updates...)
	if len(updates) > MaxStatusUpdates {
		updates = updates[:MaxStatusUpdates]
	}
	return u, engine.StoreJSON(ctx, t.kv, KeyStatusUpdates, updates)
}

// Updates returns the status-change log, newest first.
func (t *Tracker) Updates(ctx context.Context) ([]StatusUpdate, error) {
	updates, _, err := load[[]StatusUpdate](ctx, t.kv, KeyStatusUpdates)
	if updates == nil {
		updates = []StatusUpdate{}
	}
	return updates, err
}

// Saved returns the saved job IDs in the order they were saved.
func (t *Tracker) Saved(ctx context.Context) ([]string, error) {
	ids, _, err := load[[]string](ctx, t.kv, KeySavedJobs)
	if ids == nil {
		ids = []string{}
	}
	return ids, err
}

// ToggleSaved adds or removes jobID from the saved set and reports
// whether it is saved afterwards.
func (t *Tracker) ToggleSaved(ctx context.Context, jobID string) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	ids, err := t.Saved(ctx)
	if err != nil {
		return false, err
	}
	for i, id := range ids {
		if id == jobID {
			ids = append(ids[:i], ids[i+1:]...)
			return false, engine.StoreJSON(ctx, t.kv, KeySavedJobs, ids)
		}
	}
	ids = append(ids, jobID)
	return true, engine.StoreJSON(ctx, t.kv, KeySavedJobs, ids)
}
