package jobs

import (
	"sort"
	"time"
)

// DigestSize is the maximum number of jobs in a daily digest.
const DigestSize = 10

// Digest is the day's top matches.
type Digest struct {
	Date             string      `json:"date"`
	GeneratedAt      time.Time   `json:"generatedAt"`
	Jobs             []ScoredJob `json:"jobs"`
	NeedsPreferences bool        `json:"needsPreferences,omitempty"`
}

// DigestDate formats t as the digest key date (YYYY-MM-DD).
func DigestDate(t time.Time) string {
	return t.Format(time.DateOnly)
}

// BuildDigest selects up to DigestSize jobs scoring at least MinMatchScore,
// ordered by score and then recency.
func BuildDigest(all []Job, prefs *Preferences, now time.Time) Digest {
	d := Digest{Date: DigestDate(now), GeneratedAt: now.UTC(), Jobs: []ScoredJob{}}
	if prefs == nil || prefs.IsEmpty() {
		d.NeedsPreferences = true
		return d
	}
	for _, j := range all {
		score, rules := ScoreMatchDetail(j, prefs)
		if score < prefs.MinMatchScore {
			continue
		}
		d.Jobs = append(d.Jobs, ScoredJob{Job: j, MatchScore: score, MatchedRules: rules})
	}
	sort.SliceStable(d.Jobs, func(i, k int) bool {
		if d.Jobs[i].MatchScore != d.Jobs[k].MatchScore {
			return d.Jobs[i].MatchScore > d.Jobs[k].MatchScore
		}
		return d.Jobs[i].PostedDaysAgo < d.Jobs[k].PostedDaysAgo
	})
	if len(d.Jobs) > DigestSize {
		d.Jobs = d.Jobs[:DigestSize]
	}
	return d
}
