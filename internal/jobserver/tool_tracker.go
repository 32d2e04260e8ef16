package jobserver

import (
	"context"
	"log/slog"

	"github.com/anatolykoptev/go_placement/internal/engine"
	"github.com/anatolykoptev/go_placement/internal/engine/jobs"
	"github.com/anatolykoptev/go_placement/internal/engine/records"
	"github.com/anatolykoptev/go_placement/internal/toolutil"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// StatusInput is the job_status_set request.
type StatusInput struct {
	JobID  string `json:"job_id" jsonschema:"Job ID from job_feed" validate:"required"`
	Status string `json:"status" jsonschema:"Not Applied, Applied, Rejected or Selected" validate:"job_status"`
}

// StatusOutput is the recorded change.
type StatusOutput struct {
	Update records.StatusUpdate `json:"update"`
	Notice string               `json:"notice"`
}

func (t *tools) setStatus(ctx context.Context, _ *mcp.CallToolRequest, input StatusInput) (*mcp.CallToolResult, StatusOutput, error) {
	if err := toolutil.Validate(input); err != nil {
		return nil, StatusOutput{}, err
	}
	st, err := jobs.ParseStatus(input.Status)
	if err != nil {
		return nil, StatusOutput{}, err
	}
	job, err := t.job(input.JobID)
	if err != nil {
		return nil, StatusOutput{}, err
	}
	u, err := t.store.Tracker.SetStatus(ctx, job, st)
	if err != nil {
		return nil, StatusOutput{}, err
	}
	engine.IncrStatusUpdates()
	slog.Info("job_status_set", slog.String("job_id", job.ID), slog.String("status", string(st)))
	return nil, StatusOutput{Update: u, Notice: "Status updated: " + string(st)}, nil
}

// StatusUpdatesOutput is the status-change log.
type StatusUpdatesOutput struct {
	Updates []records.StatusUpdate `json:"updates"`
}

func (t *tools) statusUpdates(ctx context.Context, _ *mcp.CallToolRequest, _ NoInput) (*mcp.CallToolResult, StatusUpdatesOutput, error) {
	updates, err := t.store.Tracker.Updates(ctx)
	if err != nil {
		slog.Warn("job_status_updates: load failed", slog.Any("error", err))
	}
	return nil, StatusUpdatesOutput{Updates: updates}, nil
}

// SaveToggleOutput reports whether the job is saved afterwards.
type SaveToggleOutput struct {
	JobID string `json:"job_id"`
	Saved bool   `json:"saved"`
}

func (t *tools) toggleSaved(ctx context.Context, _ *mcp.CallToolRequest, input JobIDInput) (*mcp.CallToolResult, SaveToggleOutput, error) {
	if err := toolutil.Validate(input); err != nil {
		return nil, SaveToggleOutput{}, err
	}
	job, err := t.job(input.JobID)
	if err != nil {
		return nil, SaveToggleOutput{}, err
	}
	saved, err := t.store.Tracker.ToggleSaved(ctx, job.ID)
	if err != nil {
		return nil, SaveToggleOutput{}, err
	}
	return nil, SaveToggleOutput{JobID: job.ID, Saved: saved}, nil
}

// SavedJobsOutput lists saved jobs in the order they were saved.
type SavedJobsOutput struct {
	Jobs []jobs.ScoredJob `json:"jobs"`
}

func (t *tools) savedJobs(ctx context.Context, _ *mcp.CallToolRequest, _ NoInput) (*mcp.CallToolResult, SavedJobsOutput, error) {
	ids, err := t.store.Tracker.Saved(ctx)
	if err != nil {
		slog.Warn("saved_jobs: load failed", slog.Any("error", err))
	}
	prefs := t.activePreferences(ctx, "saved_jobs")
	statuses := t.statuses(ctx, "saved_jobs")

	out := SavedJobsOutput{Jobs: []jobs.ScoredJob{}}
	for _, id := range ids {
		job, ok := jobs.FindJob(t.catalog, id)
		if !ok {
			continue
		}
		score, rules := jobs.ScoreMatchDetail(job, prefs)
		out.Jobs = append(out.Jobs, jobs.ScoredJob{
			Job:          job,
			MatchScore:   score,
			MatchedRules: rules,
			Status:       jobs.StatusOf(statuses, job.ID),
		})
	}
	engine.IncrMatchScores(len(out.Jobs))
	return nil, out, nil
}
