package placement

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// SchemaVersion is stamped on every analysis written by this version.
const SchemaVersion = 2

// Input is what the user submits for analysis.
type Input struct {
	Company string
	Role    string
	JDText  string
}

// Analysis is a complete JD analysis record.
// BaseScore is fixed at creation; FinalScore follows SkillConfidenceMap.
type Analysis struct {
	ID                 string                `json:"id"`
	SchemaVersion      int                   `json:"schemaVersion"`
	CreatedAt          time.Time             `json:"createdAt"`
	UpdatedAt          time.Time             `json:"updatedAt"`
	Company            string                `json:"company"`
	Role               string                `json:"role"`
	JDText             string                `json:"jdText"`
	ExtractedSkills    Skills                `json:"extractedSkills"`
	CompanyIntel       CompanyIntel          `json:"companyIntel"`
	RoundMapping       []RoundInfo           `json:"roundMapping"`
	Checklist          []ChecklistRound      `json:"checklist"`
	Plan7Days          []PlanDay             `json:"plan7Days"`
	Questions          []string              `json:"questions"`
	BaseScore          int                   `json:"baseScore"`
	SkillConfidenceMap map[string]Confidence `json:"skillConfidenceMap"`
	FinalScore         int                   `json:"finalScore"`
}

// Analyze runs extraction, scoring and every generator over the input.
func Analyze(in Input, now time.Time) *Analysis {
	company := strings.TrimSpace(in.Company)
	role := strings.TrimSpace(in.Role)

	skills := Extract(in.JDText)
	intel := CompanyIntelFor(company)
	base := ScoreReadiness(skills, company, role, utf8.RuneCountInString(in.JDText))
	confidence := DefaultConfidence(skills)

	now = now.UTC()
	return &Analysis{
		ID:                 uuid.NewString(),
		SchemaVersion:      SchemaVersion,
		CreatedAt:          now,
		UpdatedAt:          now,
		Company:            company,
		Role:               role,
		JDText:             in.JDText,
		ExtractedSkills:    skills,
		CompanyIntel:       intel,
		RoundMapping:       GenerateRoundMapping(intel.Size, skills),
		Checklist:          GenerateChecklist(skills),
		Plan7Days:          GeneratePlan(skills),
		Questions:          GenerateQuestions(skills),
		BaseScore:          base,
		SkillConfidenceMap: confidence,
		FinalScore:         AdjustFinalScore(base, confidence),
	}
}

// SetConfidence flips one skill and recomputes FinalScore from BaseScore.
func (a *Analysis) SetConfidence(skill string, c Confidence, now time.Time) error {
	if c != ConfidenceKnow && c != ConfidencePractice {
		return fmt.Errorf("%w: %q", ErrInvalidConfidence, c)
	}
	key, ok := a.skillKey(skill)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownSkill, skill)
	}
	if a.SkillConfidenceMap == nil {
		a.SkillConfidenceMap = make(map[string]Confidence)
	}
	a.SkillConfidenceMap[key] = c
	a.FinalScore = AdjustFinalScore(a.BaseScore, a.SkillConfidenceMap)
	a.UpdatedAt = now.UTC()
	return nil
}

// skillKey resolves a user-typed skill to its stored spelling.
func (a *Analysis) skillKey(skill string) (string, bool) {
	skill = strings.TrimSpace(skill)
	for _, s := range a.ExtractedSkills.All() {
		if strings.EqualFold(s, skill) {
			return s, true
		}
	}
	return "", false
}

// WeakSkills returns up to n skills still marked "practice", in extraction order.
func WeakSkills(a *Analysis, n int) []string {
	var out []string
	for _, s := range a.ExtractedSkills.All() {
		if len(out) >= n {
			break
		}
		if a.SkillConfidenceMap[s] != ConfidenceKnow {
			out = append(out, s)
		}
	}
	return out
}
