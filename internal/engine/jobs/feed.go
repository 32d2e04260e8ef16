package jobs

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Sort orders for the job feed.
const (
	SortLatest = "latest"
	SortMatch  = "match"
	SortSalary = "salary"
)

// Filter narrows the job feed. Empty fields do not filter.
type Filter struct {
	Keyword     string
	Location    string
	Mode        string
	Experience  string
	Source      string
	Status      string
	OnlyMatches bool
	Sort        string
}

// ScoredJob is a job with its match score and tracked status.
type ScoredJob struct {
	Job
	MatchScore   int      `json:"matchScore"`
	MatchedRules []string `json:"matchedRules,omitempty"`
	Status       Status   `json:"status"`
}

// Feed scores, filters and sorts jobs. prefs may be nil; OnlyMatches then
// yields nothing because no job can reach a threshold without preferences.
func Feed(all []Job, prefs *Preferences, statuses map[string]Status, f Filter) []ScoredJob {
	keyword := strings.ToLower(strings.TrimSpace(f.Keyword))
	threshold := DefaultMinMatchScore
	if prefs != nil {
		threshold = prefs.MinMatchScore
	}

	out := make([]ScoredJob, 0, len(all))
	for _, j := range all {
		if keyword != "" &&
			!strings.Contains(strings.ToLower(j.Title), keyword) &&
			!strings.Contains(strings.ToLower(j.Company), keyword) {
			continue
		}
		if !matchField(j.Location, f.Location) || !matchField(string(j.Mode), f.Mode) ||
			!matchField(j.Experience, f.Experience) || !matchField(j.Source, f.Source) {
			continue
		}
		st := StatusOf(statuses, j.ID)
		if !matchField(string(st), f.Status) {
			continue
		}
		score, rules := ScoreMatchDetail(j, prefs)
		if f.OnlyMatches && (prefs == nil || score < threshold) {
			continue
		}
		out = append(out, ScoredJob{Job: j, MatchScore: score, MatchedRules: rules, Status: st})
	}

	sortJobs(out, f.Sort)
	return out
}

// matchField treats an empty or "all" filter as a wildcard.
func matchField(value, filter string) bool {
	filter = strings.TrimSpace(filter)
	if filter == "" || strings.EqualFold(filter, "all") {
		return true
	}
	return strings.EqualFold(strings.TrimSpace(value), filter)
}

func sortJobs(jobs []ScoredJob, order string) {
	switch strings.ToLower(order) {
	case SortMatch:
		sort.SliceStable(jobs, func(i, k int) bool {
			if jobs[i].MatchScore != jobs[k].MatchScore {
				return jobs[i].MatchScore > jobs[k].MatchScore
			}
			return jobs[i].PostedDaysAgo < jobs[k].PostedDaysAgo
		})
	case SortSalary:
		sort.SliceStable(jobs, func(i, k int) bool {
			return ParseSalary(jobs[i].SalaryRange) > ParseSalary(jobs[k].SalaryRange)
		})
	default:
		sort.SliceStable(jobs, func(i, k int) bool {
			return jobs[i].PostedDaysAgo < jobs[k].PostedDaysAgo
		})
	}
}

var salaryNumRe = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(k)?`)

// ParseSalary returns the annual lower bound in rupees for ranges like
// "10–18 LPA" or "₹15k–₹40k/month". Unparseable input returns 0.
func ParseSalary(s string) int {
	lower := strings.ToLower(s)
	m := salaryNumRe.FindStringSubmatch(lower)
	if m == nil {
		return 0
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0
	}
	if m[2] == "k" {
		v *= 1_000
	}
	switch {
	case strings.Contains(lower, "lpa"):
		v *= 100_000
	case strings.Contains(lower, "month"):
		v *= 12
	}
	return int(v)
}
