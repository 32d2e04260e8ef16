package jobs

import (
	"strings"
	"unicode/utf8"
)

// Resume is the resume-builder draft.
type Resume struct {
	Personal   PersonalInfo `json:"personal,omitempty"`
	Summary    string       `json:"summary,omitempty"`
	Education  []Education  `json:"education,omitempty"`
	Experience []Experience `json:"experience,omitempty"`
	Projects   []Project    `json:"projects,omitempty"`
	Skills     ResumeSkills `json:"skills,omitempty"`
	Links      ResumeLinks  `json:"links,omitempty"`
}

type PersonalInfo struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Location string `json:"location,omitempty"`
}

type Education struct {
	Institution string `json:"institution,omitempty"`
	Degree      string `json:"degree,omitempty"`
	Year        string `json:"year,omitempty"`
}

type Experience struct {
	Company     string `json:"company,omitempty"`
	Role        string `json:"role,omitempty"`
	Duration    string `json:"duration,omitempty"`
	Description string `json:"description,omitempty"`
}

type Project struct {
	Title       string   `json:"title,omitempty"`
	Description string   `json:"description,omitempty"`
	TechStack   []string `json:"techStack,omitempty"`
	LiveURL     string   `json:"liveUrl,omitempty"`
	GitHubURL   string   `json:"githubUrl,omitempty"`
}

// ResumeSkills groups skills the way the builder edits them.
type ResumeSkills struct {
	Technical []string `json:"technical,omitempty"`
	Soft      []string `json:"soft,omitempty"`
	Tools     []string `json:"tools,omitempty"`
}

// Count returns the number of non-blank skills across groups.
func (s ResumeSkills) Count() int {
	return len(nonBlank(s.Technical)) + len(nonBlank(s.Soft)) + len(nonBlank(s.Tools))
}

type ResumeLinks struct {
	GitHub   string `json:"github,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
}

// ATSResult is the heuristic resume-readiness score.
type ATSResult struct {
	Score       int      `json:"score"`
	Band        string   `json:"band"`
	Suggestions []string `json:"suggestions"`
}

const maxSuggestions = 3

var actionVerbs = []string{
	"built", "led", "designed", "improved", "developed", "optimized",
	"created", "implemented", "launched", "reduced", "automated",
}

type atsRule struct {
	weight     int
	ok         func(r Resume) bool
	suggestion string
}

var atsRules = []atsRule{
	{10, func(r Resume) bool { return strings.TrimSpace(r.Personal.Name) != "" }, "Add your full name."},
	{10, func(r Resume) bool { return strings.TrimSpace(r.Personal.Email) != "" }, "Add a professional email address."},
	{10, func(r Resume) bool { return utf8.RuneCountInString(strings.TrimSpace(r.Summary)) > 50 }, "Write a summary longer than 50 characters."},
	{15, hasDescribedExperience, "Add at least one experience entry with a description."},
	{10, func(r Resume) bool { return len(r.Education) > 0 }, "Add your education."},
	{10, func(r Resume) bool { return r.Skills.Count() >= 5 }, "List at least 5 skills."},
	{10, func(r Resume) bool { return len(r.Projects) > 0 }, "Add at least one project."},
	{5, func(r Resume) bool { return strings.TrimSpace(r.Personal.Phone) != "" }, "Add a phone number."},
	{5, func(r Resume) bool { return strings.TrimSpace(r.Links.LinkedIn) != "" }, "Add your LinkedIn profile."},
	{5, func(r Resume) bool { return strings.TrimSpace(r.Links.GitHub) != "" }, "Add your GitHub profile."},
	{10, summaryHasActionVerb, "Start summary sentences with action verbs (built, led, designed)."},
}

// ScoreResume applies the fixed ATS rules. Suggestions list the first
// failed rules in rule order.
func ScoreResume(r Resume) ATSResult {
	res := ATSResult{Suggestions: []string{}}
	for _, rule := range atsRules {
		if rule.ok(r) {
			res.Score += rule.weight
			continue
		}
		if len(res.Suggestions) < maxSuggestions {
			res.Suggestions = append(res.Suggestions, rule.suggestion)
		}
	}
	res.Score = min(res.Score, 100)
	res.Band = atsBand(res.Score)
	return res
}

func atsBand(score int) string {
	switch {
	case score <= 40:
		return "Needs Work"
	case score <= 70:
		return "Getting There"
	default:
		return "Strong Resume"
	}
}

func hasDescribedExperience(r Resume) bool {
	for _, e := range r.Experience {
		if strings.TrimSpace(e.Description) != "" {
			return true
		}
	}
	return false
}

func summaryHasActionVerb(r Resume) bool {
	words := strings.FieldsFunc(strings.ToLower(r.Summary), func(c rune) bool {
		return !(c >= 'a' && c <= 'z')
	})
	for _, w := range words {
		for _, v := range actionVerbs {
			if w == v {
				return true
			}
		}
	}
	return false
}
