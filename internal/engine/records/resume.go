package records

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/anatolykoptev/go_placement/internal/engine"
	"github.com/anatolykoptev/go_placement/internal/engine/jobs"
)

// ResumeStore holds the resume-builder draft.
type ResumeStore struct {
	*base
}

// storedResume shadows Skills so older flat shapes still decode.
type storedResume struct {
	jobs.Resume
	Skills json.RawMessage `json:"skills"`
}

// Load returns the saved draft, or an empty one with ok=false.
func (s *ResumeStore) Load(ctx context.Context) (jobs.Resume, bool, error) {
	stored, ok, err := load[storedResume](ctx, s.kv, KeyResume)
	if err != nil || !ok {
		return jobs.Resume{}, false, err
	}
	r := stored.Resume
	r.Skills = normalizeResumeSkills(stored.Skills)
	return r, true, nil
}

// Save overwrites the draft.
func (s *ResumeStore) Save(ctx context.Context, r jobs.Resume) error {
	r.Skills = jobs.ResumeSkills{
		Technical: dedupe(r.Skills.Technical),
		Soft:      dedupe(r.Skills.Soft),
		Tools:     dedupe(r.Skills.Tools),
	}
	return engine.StoreJSON(ctx, s.kv, KeyResume, r)
}

// normalizeResumeSkills accepts the grouped object, a flat array or a
// comma string. Flat shapes become technical skills.
func normalizeResumeSkills(raw json.RawMessage) jobs.ResumeSkills {
	out := jobs.ResumeSkills{Technical: []string{}, Soft: []string{}, Tools: []string{}}
	if isNull(raw) {
		return out
	}
	var grouped jobs.ResumeSkills
	if json.Unmarshal(raw, &grouped) == nil {
		out.Technical = dedupe(grouped.Technical)
		out.Soft = dedupe(grouped.Soft)
		out.Tools = dedupe(grouped.Tools)
		return out
	}
	if list := stringList(raw); len(list) > 0 {
		out.Technical = dedupe(list)
	}
	return out
}

// SplitSkills parses a comma-separated skill list as typed in the builder.
func SplitSkills(s string) []string {
	return dedupe(strings.Split(s, ","))
}
