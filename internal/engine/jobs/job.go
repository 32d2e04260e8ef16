// Package jobs implements the job-notification tracker's pure logic:
// the job catalog, preference-driven match scoring, feed filtering,
// the daily digest and the resume ATS scorer.
package jobs

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// Mode is the work arrangement of a job.
type Mode string

const (
	ModeRemote Mode = "Remote"
	ModeHybrid Mode = "Hybrid"
	ModeOnsite Mode = "Onsite"
)

// Modes lists all valid work modes.
var Modes = []Mode{ModeRemote, ModeHybrid, ModeOnsite}

// ExperienceLevels lists the fixed experience labels, most junior first.
var ExperienceLevels = []string{"Fresher", "0-1 Years", "1-3 Years", "3-5 Years"}

// ParseMode accepts a mode name case-insensitively.
func ParseMode(s string) (Mode, bool) {
	for _, m := range Modes {
		if strings.EqualFold(string(m), strings.TrimSpace(s)) {
			return m, true
		}
	}
	return "", false
}

// ValidExperience reports whether s is one of ExperienceLevels.
func ValidExperience(s string) bool {
	for _, e := range ExperienceLevels {
		if e == s {
			return true
		}
	}
	return false
}

// Job is an immutable job listing.
type Job struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Company       string   `json:"company"`
	Location      string   `json:"location"`
	Mode          Mode     `json:"mode"`
	Experience    string   `json:"experience"`
	Skills        []string `json:"skills"`
	Source        string   `json:"source"`
	PostedDaysAgo int      `json:"postedDaysAgo"`
	SalaryRange   string   `json:"salaryRange"`
	ApplyURL      string   `json:"applyUrl"`
	Description   string   `json:"description"`
}

//go:embed jobs.json
var embeddedJobs []byte

// LoadCatalog returns the job listings from path, or the embedded dataset
// when path is empty or unreadable.
func LoadCatalog(path string) []Job {
	if path != "" {
		data, err := os.ReadFile(path)
		if err == nil {
			jobs, perr := parseCatalog(data)
			if perr == nil {
				slog.Info("jobs: catalog loaded", slog.String("path", path), slog.Int("count", len(jobs)))
				return jobs
			}
			err = perr
		}
		slog.Warn("jobs: catalog file unusable, using embedded dataset", slog.String("path", path), slog.Any("error", err))
	}
	jobs, err := parseCatalog(embeddedJobs)
	if err != nil {
		panic(fmt.Sprintf("jobs: embedded catalog: %v", err))
	}
	return jobs
}

func parseCatalog(data []byte) ([]Job, error) {
	var jobs []Job
	if err := json.Unmarshal(data, &jobs); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	out := jobs[:0]
	for _, j := range jobs {
		if j.ID == "" || j.Title == "" {
			continue
		}
		if j.PostedDaysAgo < 0 {
			j.PostedDaysAgo = 0
		}
		out = append(out, j)
	}
	return out, nil
}

// FindJob looks a job up by ID.
func FindJob(all []Job, id string) (Job, bool) {
	for _, j := range all {
		if j.ID == id {
			return j, true
		}
	}
	return Job{}, false
}
