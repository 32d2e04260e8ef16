package records

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strconv"
	"strings"

	"github.com/anatolykoptev/go_placement/internal/engine"
	"github.com/anatolykoptev/go_placement/internal/engine/jobs"
)

// PreferenceStore holds the single preferences record.
type PreferenceStore struct {
	*base
}

// storedPreferences accepts lists as arrays or comma strings and the
// single-valued preferredMode of older versions.
type storedPreferences struct {
	RoleKeywords       json.RawMessage `json:"roleKeywords"`
	PreferredLocations json.RawMessage `json:"preferredLocations"`
	PreferredModes     json.RawMessage `json:"preferredModes"`
	PreferredMode      json.RawMessage `json:"preferredMode"`
	ExperienceLevel    json.RawMessage `json:"experienceLevel"`
	Skills             json.RawMessage `json:"skills"`
	MinMatchScore      json.RawMessage `json:"minMatchScore"`
}

// Load returns the saved preferences. ok is false, and the defaults are
// returned, when nothing usable is stored.
func (s *PreferenceStore) Load(ctx context.Context) (jobs.Preferences, bool, error) {
	stored, ok, err := engine.LoadJSON[storedPreferences](ctx, s.kv, KeyPreferences)
	if errors.Is(err, engine.ErrMalformed) {
		slog.Warn("preferences: malformed record, using defaults", slog.Any("error", err))
		return jobs.DefaultPreferences(), false, nil
	}
	if err != nil {
		return jobs.DefaultPreferences(), false, err
	}
	if !ok {
		return jobs.DefaultPreferences(), false, nil
	}
	return normalizePreferences(stored), true, nil
}

// Active returns the saved preferences to score against, or nil when none
// are saved. Saved preferences without criteria still earn the recency and
// source rules.
func (s *PreferenceStore) Active(ctx context.Context) (*jobs.Preferences, error) {
	p, ok, err := s.Load(ctx)
	if err != nil || !ok {
		return nil, err
	}
	return &p, nil
}

// Save overwrites the stored preferences after cleaning them.
func (s *PreferenceStore) Save(ctx context.Context, p jobs.Preferences) (jobs.Preferences, error) {
	p = CleanPreferences(p)
	if err := engine.StoreJSON(ctx, s.kv, KeyPreferences, p); err != nil {
		return p, err
	}
	return p, nil
}

// CleanPreferences trims and dedupes lists, drops unknown modes and
// experience labels, and clamps the threshold to 0..100.
func CleanPreferences(p jobs.Preferences) jobs.Preferences {
	out := jobs.Preferences{
		RoleKeywords:       dedupe(p.RoleKeywords),
		PreferredLocations: dedupe(p.PreferredLocations),
		PreferredModes:     []jobs.Mode{},
		Skills:             dedupe(p.Skills),
		MinMatchScore:      max(0, min(100, p.MinMatchScore)),
	}
	for _, m := range p.PreferredModes {
		if mode, ok := jobs.ParseMode(string(m)); ok && !containsMode(out.PreferredModes, mode) {
			out.PreferredModes = append(out.PreferredModes, mode)
		}
	}
	if jobs.ValidExperience(strings.TrimSpace(p.ExperienceLevel)) {
		out.ExperienceLevel = strings.TrimSpace(p.ExperienceLevel)
	}
	return out
}

func normalizePreferences(s storedPreferences) jobs.Preferences {
	p := jobs.Preferences{
		RoleKeywords:       stringList(s.RoleKeywords),
		PreferredLocations: stringList(s.PreferredLocations),
		Skills:             stringList(s.Skills),
		MinMatchScore:      jobs.DefaultMinMatchScore,
	}
	modes := stringList(s.PreferredModes)
	if isNull(s.PreferredModes) {
		modes = stringList(s.PreferredMode)
	}
	for _, m := range modes {
		p.PreferredModes = append(p.PreferredModes, jobs.Mode(m))
	}
	var exp string
	if json.Unmarshal(s.ExperienceLevel, &exp) == nil {
		p.ExperienceLevel = exp
	}
	if score, ok := number(s.MinMatchScore); ok {
		p.MinMatchScore = score
	}
	return CleanPreferences(p)
}

// stringList decodes an array of strings or a comma-separated string.
// Any other shape yields an empty list.
func stringList(raw json.RawMessage) []string {
	if isNull(raw) {
		return []string{}
	}
	var list []string
	if json.Unmarshal(raw, &list) == nil {
		return list
	}
	var s string
	if json.Unmarshal(raw, &s) == nil {
		return strings.Split(s, ",")
	}
	return []string{}
}

// number decodes a JSON number or numeric string as a 0..100 score.
func number(raw json.RawMessage) (int, bool) {
	if isNull(raw) {
		return 0, false
	}
	var f float64
	if json.Unmarshal(raw, &f) == nil {
		return clampScore(f), true
	}
	var s string
	if json.Unmarshal(raw, &s) == nil {
		if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return clampScore(f), true
		}
	}
	return 0, false
}

func dedupe(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		dup := false
		for _, got := range out {
			if strings.EqualFold(got, s) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, s)
		}
	}
	return out
}

func containsMode(modes []jobs.Mode, m jobs.Mode) bool {
	for _, got := range modes {
		if got == m {
			return true
		}
	}
	return false
}
