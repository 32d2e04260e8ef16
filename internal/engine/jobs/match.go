package jobs

import (
	"strings"
)

// Match rule weights. Each rule contributes at most once.
const (
	weightTitle       = 25
	weightDescription = 15
	weightLocation    = 15
	weightMode        = 10
	weightExperience  = 10
	weightSkills      = 15
	weightRecency     = 5
	weightSource      = 5

	recentDays    = 2
	bonusSource   = "LinkedIn"
	maxMatchScore = 100
)

// Rule names reported by ScoreMatchDetail.
const (
	RuleTitle       = "title"
	RuleDescription = "description"
	RuleLocation    = "location"
	RuleMode        = "mode"
	RuleExperience  = "experience"
	RuleSkills      = "skills"
	RuleRecency     = "recency"
	RuleSource      = "source"
)

// ScoreMatch scores job against prefs on a 0–100 scale. Nil prefs score 0.
func ScoreMatch(job Job, prefs *Preferences) int {
	score, _ := ScoreMatchDetail(job, prefs)
	return score
}

// ScoreMatchDetail is ScoreMatch plus the names of the rules that fired.
func ScoreMatchDetail(job Job, prefs *Preferences) (score int, matched []string) {
	if prefs == nil {
		return 0, nil
	}
	keywords := nonBlank(prefs.RoleKeywords)

	hit := func(rule string, weight int, ok bool) {
		if ok {
			score += weight
			matched = append(matched, rule)
		}
	}

	hit(RuleTitle, weightTitle, anySubstring(job.Title, keywords))
	hit(RuleDescription, weightDescription, anySubstring(job.Description, keywords))
	hit(RuleLocation, weightLocation, anyEqualFold(job.Location, nonBlank(prefs.PreferredLocations)))
	hit(RuleMode, weightMode, modeIn(job.Mode, prefs.PreferredModes))
	hit(RuleExperience, weightExperience, prefs.ExperienceLevel != "" && job.Experience == prefs.ExperienceLevel)
	hit(RuleSkills, weightSkills, skillsOverlap(nonBlank(prefs.Skills), job.Skills))
	hit(RuleRecency, weightRecency, job.PostedDaysAgo <= recentDays)
	hit(RuleSource, weightSource, job.Source == bonusSource)

	return min(score, maxMatchScore), matched
}

// nonBlank trims entries and drops empty ones.
func nonBlank(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// anySubstring reports whether any keyword occurs in haystack (case-insensitive).
func anySubstring(haystack string, keywords []string) bool {
	lower := strings.ToLower(haystack)
	for _, kw := range keywords {
		if strings.Contains(lower, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

func anyEqualFold(s string, candidates []string) bool {
	s = strings.TrimSpace(s)
	for _, c := range candidates {
		if strings.EqualFold(c, s) {
			return true
		}
	}
	return false
}

func modeIn(m Mode, modes []Mode) bool {
	for _, pm := range modes {
		if pm == m {
			return true
		}
	}
	return false
}

func skillsOverlap(mine, theirs []string) bool {
	for _, a := range mine {
		if anyEqualFold(a, theirs) {
			return true
		}
	}
	return false
}
