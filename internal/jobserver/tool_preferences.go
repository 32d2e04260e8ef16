package jobserver

import (
	"context"
	"log/slog"

	"github.com/anatolykoptev/go_placement/internal/engine/jobs"
	"github.com/anatolykoptev/go_placement/internal/toolutil"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// PreferencesOutput is the stored preferences record.
type PreferencesOutput struct {
	Preferences jobs.Preferences `json:"preferences"`
	Saved       bool             `json:"saved"`
}

func (t *tools) getPreferences(ctx context.Context, _ *mcp.CallToolRequest, _ NoInput) (*mcp.CallToolResult, PreferencesOutput, error) {
	p, ok, err := t.store.Prefs.Load(ctx)
	if err != nil {
		slog.Warn("preferences_get: load failed", slog.Any("error", err))
	}
	return nil, PreferencesOutput{Preferences: p, Saved: ok}, nil
}

// PreferencesInput is the preferences_save request. The whole record is replaced.
type PreferencesInput struct {
	RoleKeywords       []string `json:"role_keywords,omitempty" jsonschema:"Role keywords matched against job titles and descriptions, e.g. React, Backend"`
	PreferredLocations []string `json:"preferred_locations,omitempty" jsonschema:"Preferred locations, e.g. Bangalore, Remote"`
	PreferredModes     []string `json:"preferred_modes,omitempty" jsonschema:"Work modes: Remote, Hybrid, Onsite" validate:"dive,work_mode"`
	ExperienceLevel    string   `json:"experience_level,omitempty" jsonschema:"Fresher, 0-1 Years, 1-3 Years or 3-5 Years" validate:"experience_level"`
	Skills             []string `json:"skills,omitempty" jsonschema:"Your skills, matched against job skill tags"`
	MinMatchScore      *int     `json:"min_match_score,omitempty" jsonschema:"Minimum match score 0-100 for matches and the digest (default: 40)" validate:"omitempty,min=0,max=100"`
}

func (in PreferencesInput) preferences() jobs.Preferences {
	p := jobs.Preferences{
		RoleKeywords:       in.RoleKeywords,
		PreferredLocations: in.PreferredLocations,
		ExperienceLevel:    in.ExperienceLevel,
		Skills:             in.Skills,
		MinMatchScore:      jobs.DefaultMinMatchScore,
	}
	for _, m := range in.PreferredModes {
		if mode, ok := jobs.ParseMode(m); ok {
			p.PreferredModes = append(p.PreferredModes, mode)
		}
	}
	if in.MinMatchScore != nil {
		p.MinMatchScore = *in.MinMatchScore
	}
	return p
}

func (t *tools) savePreferences(ctx context.Context, _ *mcp.CallToolRequest, input PreferencesInput) (*mcp.CallToolResult, PreferencesOutput, error) {
	if err := toolutil.Validate(input); err != nil {
		return nil, PreferencesOutput{}, err
	}
	p, err := t.store.Prefs.Save(ctx, input.preferences())
	if err != nil {
		return nil, PreferencesOutput{}, err
	}
	slog.Info("preferences_save: saved",
		slog.Int("keywords", len(p.RoleKeywords)),
		slog.Int("skills", len(p.Skills)),
		slog.Int("min_match_score", p.MinMatchScore),
	)
	return nil, PreferencesOutput{Preferences: p, Saved: true}, nil
}

// activePreferences loads the preferences used for scoring. Storage
// errors degrade to no preferences.
func (t *tools) activePreferences(ctx context.Context, tool string) *jobs.Preferences {
	p, err := t.store.Prefs.Active(ctx)
	if err != nil {
		slog.Warn(tool+": preferences load failed", slog.Any("error", err))
		return nil
	}
	return p
}
