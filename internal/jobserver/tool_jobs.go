package jobserver

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/anatolykoptev/go_placement/internal/engine"
	"github.com/anatolykoptev/go_placement/internal/engine/jobs"
	"github.com/anatolykoptev/go_placement/internal/engine/records"
	"github.com/anatolykoptev/go_placement/internal/toolutil"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// FeedInput is the job_feed request. Empty or "all" filters match everything.
type FeedInput struct {
	Keyword     string `json:"keyword,omitempty" jsonschema:"Matches job title or company (case-insensitive)"`
	Location    string `json:"location,omitempty" jsonschema:"Exact location, e.g. Bangalore"`
	Mode        string `json:"mode,omitempty" jsonschema:"Remote, Hybrid or Onsite"`
	Experience  string `json:"experience,omitempty" jsonschema:"Fresher, 0-1 Years, 1-3 Years or 3-5 Years"`
	Source      string `json:"source,omitempty" jsonschema:"Listing source, e.g. LinkedIn, Naukri, Indeed"`
	Status      string `json:"status,omitempty" jsonschema:"Tracked status: Not Applied, Applied, Rejected, Selected"`
	OnlyMatches bool   `json:"only_matches,omitempty" jsonschema:"Keep only jobs at or above the minimum match score"`
	Sort        string `json:"sort,omitempty" jsonschema:"latest (default), match or salary" validate:"omitempty,oneof=latest match salary"`
	Limit       int    `json:"limit,omitempty" jsonschema:"Max jobs to return (default: all)" validate:"min=0"`
}

// FeedOutput is the filtered, scored job list.
type FeedOutput struct {
	Jobs             []jobs.ScoredJob `json:"jobs"`
	Total            int              `json:"total"`
	NeedsPreferences bool             `json:"needs_preferences,omitempty"`
	Notice           string           `json:"notice,omitempty"`
}

func (t *tools) feed(ctx context.Context, _ *mcp.CallToolRequest, input FeedInput) (*mcp.CallToolResult, FeedOutput, error) {
	if err := toolutil.Validate(input); err != nil {
		return nil, FeedOutput{}, err
	}
	prefs := t.activePreferences(ctx, "job_feed")
	statuses := t.statuses(ctx, "job_feed")

	list := jobs.Feed(t.catalog, prefs, statuses, jobs.Filter{
		Keyword:     input.Keyword,
		Location:    input.Location,
		Mode:        input.Mode,
		Experience:  input.Experience,
		Source:      input.Source,
		Status:      input.Status,
		OnlyMatches: input.OnlyMatches,
		Sort:        input.Sort,
	})
	engine.IncrMatchScores(len(list))

	needsPrefs := prefs == nil || prefs.IsEmpty()
	out := FeedOutput{Jobs: list, Total: len(list), NeedsPreferences: needsPrefs}
	if input.Limit > 0 && len(out.Jobs) > input.Limit {
		out.Jobs = out.Jobs[:input.Limit]
	}
	switch {
	case needsPrefs:
		out.Notice = "Set your preferences to activate intelligent matching."
	case len(list) == 0:
		out.Notice = "No roles match your criteria. Adjust filters or lower threshold."
	}
	return nil, out, nil
}

// JobIDInput addresses one catalog job.
type JobIDInput struct {
	JobID string `json:"job_id" jsonschema:"Job ID from job_feed, e.g. job-002" validate:"required"`
}

// MatchOutput is one job's score against the saved preferences.
type MatchOutput struct {
	JobID        string   `json:"job_id"`
	Title        string   `json:"title"`
	Company      string   `json:"company"`
	MatchScore   int      `json:"match_score"`
	MatchedRules []string `json:"matched_rules"`
	Threshold    int      `json:"threshold"`
	IsMatch      bool     `json:"is_match"`
}

func (t *tools) matchScore(ctx context.Context, _ *mcp.CallToolRequest, input JobIDInput) (*mcp.CallToolResult, MatchOutput, error) {
	if err := toolutil.Validate(input); err != nil {
		return nil, MatchOutput{}, err
	}
	job, err := t.job(input.JobID)
	if err != nil {
		return nil, MatchOutput{}, err
	}
	prefs := t.activePreferences(ctx, "job_match_score")
	score, rules := jobs.ScoreMatchDetail(job, prefs)
	engine.IncrMatchScores(1)

	out := MatchOutput{
		JobID:        job.ID,
		Title:        job.Title,
		Company:      job.Company,
		MatchScore:   score,
		MatchedRules: rules,
		Threshold:    jobs.DefaultMinMatchScore,
	}
	if out.MatchedRules == nil {
		out.MatchedRules = []string{}
	}
	if prefs != nil {
		out.Threshold = prefs.MinMatchScore
		out.IsMatch = score >= prefs.MinMatchScore
	}
	return nil, out, nil
}

// DigestInput is the job_digest request.
type DigestInput struct {
	Regenerate bool `json:"regenerate,omitempty" jsonschema:"Discard today's stored digest and build a new one"`
}

// DigestOutput is today's digest.
type DigestOutput struct {
	Digest  jobs.Digest `json:"digest"`
	Created bool        `json:"created"`
	Notice  string      `json:"notice,omitempty"`
}

func (t *tools) digest(ctx context.Context, _ *mcp.CallToolRequest, input DigestInput) (*mcp.CallToolResult, DigestOutput, error) {
	if input.Regenerate {
		if err := t.store.Digests.Clear(ctx); err != nil {
			slog.Warn("job_digest: clear failed", slog.Any("error", err))
		}
	}
	prefs := t.activePreferences(ctx, "job_digest")
	d, created, err := t.store.Digests.GetOrBuild(ctx, t.catalog, prefs)
	if err != nil {
		slog.Warn("job_digest: store failed, returning unsaved digest", slog.Any("error", err))
		if d.Date == "" {
			d = jobs.BuildDigest(t.catalog, prefs, t.now())
		}
	}
	out := DigestOutput{Digest: d, Created: created}
	switch {
	case d.NeedsPreferences:
		out.Notice = "Set preferences to generate a personalized digest."
	case len(d.Jobs) == 0:
		out.Notice = "No matching roles today. Check again tomorrow."
	}
	return nil, out, nil
}

func (t *tools) job(id string) (jobs.Job, error) {
	job, ok := jobs.FindJob(t.catalog, strings.TrimSpace(id))
	if !ok {
		return jobs.Job{}, fmt.Errorf("job %q: %w", id, records.ErrNotFound)
	}
	return job, nil
}

// statuses loads the tracked statuses. Storage errors degrade to an
// empty map, so every job reads as Not Applied.
func (t *tools) statuses(ctx context.Context, tool string) map[string]jobs.Status {
	st, err := t.store.Tracker.Statuses(ctx)
	if err != nil {
		slog.Warn(tool+": status load failed", slog.Any("error", err))
		return map[string]jobs.Status{}
	}
	return st
}
