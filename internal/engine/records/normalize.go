package records

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/anatolykoptev/go_placement/internal/engine/placement"
	"github.com/google/uuid"
)

// storedAnalysis accepts every analysis shape written by earlier versions.
// Fields whose shape changed are kept raw and decoded leniently.
type storedAnalysis struct {
	ID                 string                     `json:"id"`
	SchemaVersion      int                        `json:"schemaVersion"`
	CreatedAt          json.RawMessage            `json:"createdAt"`
	UpdatedAt          json.RawMessage            `json:"updatedAt"`
	Company            string                     `json:"company"`
	Role               string                     `json:"role"`
	JDText             string                     `json:"jdText"`
	ExtractedSkills    json.RawMessage            `json:"extractedSkills"`
	CompanyIntel       json.RawMessage            `json:"companyIntel"`
	RoundMapping       json.RawMessage            `json:"roundMapping"`
	Checklist          json.RawMessage            `json:"checklist"`
	Plan7Days          json.RawMessage            `json:"plan7Days"`
	Plan               json.RawMessage            `json:"plan"`
	Questions          json.RawMessage            `json:"questions"`
	BaseScore          *float64                   `json:"baseScore"`
	ReadinessScore     *float64                   `json:"readinessScore"`
	SkillConfidenceMap map[string]json.RawMessage `json:"skillConfidenceMap"`
}

// normalizeAnalysis decodes one history entry into the canonical
// analysis. Derived fields are rebuilt when absent and FinalScore is
// always recomputed from BaseScore and the confidence map.
func normalizeAnalysis(raw json.RawMessage) (placement.Analysis, error) {
	var s storedAnalysis
	if err := json.Unmarshal(raw, &s); err != nil {
		return placement.Analysis{}, fmt.Errorf("decode analysis: %w", err)
	}

	a := placement.Analysis{
		ID:            strings.TrimSpace(s.ID),
		SchemaVersion: placement.SchemaVersion,
		Company:       strings.TrimSpace(s.Company),
		Role:          strings.TrimSpace(s.Role),
		JDText:        s.JDText,
	}
	if a.ID == "" {
		// Stable across loads until the record is rewritten.
		a.ID = uuid.NewSHA1(uuid.NameSpaceOID, raw).String()
	}
	a.CreatedAt = parseTime(s.CreatedAt)
	a.UpdatedAt = parseTime(s.UpdatedAt)
	if a.UpdatedAt.IsZero() {
		a.UpdatedAt = a.CreatedAt
	}

	skills, ok := decodeSkills(s.ExtractedSkills)
	if !ok {
		skills = placement.Extract(a.JDText)
	}
	a.ExtractedSkills = skills

	if !decodeInto(s.CompanyIntel, &a.CompanyIntel) ||
		(a.CompanyIntel.Size != placement.SizeEnterprise && a.CompanyIntel.Size != placement.SizeStartup) {
		a.CompanyIntel = placement.CompanyIntelFor(a.Company)
	}
	if !decodeInto(s.RoundMapping, &a.RoundMapping) || len(a.RoundMapping) == 0 {
		a.RoundMapping = placement.GenerateRoundMapping(a.CompanyIntel.Size, skills)
	}
	if !decodeInto(s.Checklist, &a.Checklist) || len(a.Checklist) == 0 {
		a.Checklist = placement.GenerateChecklist(skills)
	}
	if !decodeInto(s.Plan7Days, &a.Plan7Days) || len(a.Plan7Days) == 0 {
		if !decodeInto(s.Plan, &a.Plan7Days) || len(a.Plan7Days) == 0 {
			a.Plan7Days = placement.GeneratePlan(skills)
		}
	}
	if !decodeInto(s.Questions, &a.Questions) || len(a.Questions) == 0 {
		a.Questions = placement.GenerateQuestions(skills)
	}
	if len(a.Questions) > placement.MaxQuestions {
		a.Questions = a.Questions[:placement.MaxQuestions]
	}

	switch {
	case s.BaseScore != nil:
		a.BaseScore = clampScore(*s.BaseScore)
	case s.ReadinessScore != nil:
		a.BaseScore = clampScore(*s.ReadinessScore)
	default:
		a.BaseScore = placement.ScoreReadiness(skills, a.Company, a.Role, utf8.RuneCountInString(a.JDText))
	}

	a.SkillConfidenceMap = placement.DefaultConfidence(skills)
	for skill, v := range s.SkillConfidenceMap {
		var str string
		if json.Unmarshal(v, &str) != nil {
			continue
		}
		c, err := placement.ParseConfidence(str)
		if err != nil {
			continue
		}
		for known := range a.SkillConfidenceMap {
			if strings.EqualFold(known, strings.TrimSpace(skill)) {
				a.SkillConfidenceMap[known] = c
			}
		}
	}
	a.FinalScore = placement.AdjustFinalScore(a.BaseScore, a.SkillConfidenceMap)
	return a, nil
}

// decodeSkills accepts a category map keyed by canonical key or display
// label, or a flat skill list re-bucketed by the keyword catalog.
func decodeSkills(raw json.RawMessage) (placement.Skills, bool) {
	if isNull(raw) {
		return nil, false
	}
	out := placement.Skills{}
	add := func(c placement.Category, skill string) {
		skill = strings.TrimSpace(skill)
		if skill == "" {
			return
		}
		if known, ok := placement.CategoryOf(skill); ok && c == "" {
			c = known
		}
		if c == "" {
			c = placement.CategoryOther
		}
		for _, got := range out[c] {
			if strings.EqualFold(got, skill) {
				return
			}
		}
		out[c] = append(out[c], skill)
	}

	var flat []string
	if json.Unmarshal(raw, &flat) == nil {
		for _, skill := range flat {
			add("", skill)
		}
		return out.Normalize(), true
	}

	var byCategory map[string]json.RawMessage
	if json.Unmarshal(raw, &byCategory) != nil {
		return nil, false
	}
	keys := make([]string, 0, len(byCategory))
	for key := range byCategory {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, c := range placement.Categories {
		for _, key := range keys {
			parsed, ok := placement.ParseCategory(key)
			if !ok {
				parsed = placement.CategoryOther
			}
			if parsed != c {
				continue
			}
			var list []string
			if json.Unmarshal(byCategory[key], &list) != nil {
				continue
			}
			for _, skill := range list {
				add(c, skill)
			}
		}
	}
	return out.Normalize(), true
}

// parseTime accepts RFC 3339 strings and Unix milliseconds.
func parseTime(raw json.RawMessage) time.Time {
	if isNull(raw) {
		return time.Time{}
	}
	var s string
	if json.Unmarshal(raw, &s) == nil {
		if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
			return t.UTC()
		}
		if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
			return time.UnixMilli(ms).UTC()
		}
		return time.Time{}
	}
	var ms float64
	if json.Unmarshal(raw, &ms) == nil {
		return time.UnixMilli(int64(ms)).UTC()
	}
	return time.Time{}
}

func decodeInto(raw json.RawMessage, dst any) bool {
	if isNull(raw) {
		return false
	}
	return json.Unmarshal(raw, dst) == nil
}

func isNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

// clampScore rounds v into 0..100. Clamping happens before the int
// conversion so huge or non-finite values cannot wrap.
func clampScore(v float64) int {
	if math.IsNaN(v) {
		return 0
	}
	return int(math.Round(math.Max(0, math.Min(100, v))))
}
