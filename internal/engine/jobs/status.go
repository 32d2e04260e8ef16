package jobs

import (
	"fmt"
	"strings"
)

// Status is the application state the user tracks per job.
type Status string

const (
	StatusNotApplied Status = "Not Applied"
	StatusApplied    Status = "Applied"
	StatusRejected   Status = "Rejected"
	StatusSelected   Status = "Selected"
)

// Statuses lists every valid status; the first is the default.
var Statuses = []Status{StatusNotApplied, StatusApplied, StatusRejected, StatusSelected}

// ParseStatus accepts a status case-insensitively ("applied", "not applied").
func ParseStatus(s string) (Status, error) {
	s = strings.TrimSpace(s)
	for _, st := range Statuses {
		if strings.EqualFold(string(st), s) {
			return st, nil
		}
	}
	return "", fmt.Errorf("invalid status %q (valid: Not Applied, Applied, Rejected, Selected)", s)
}

// StatusOf returns the tracked status of a job, defaulting to Not Applied.
func StatusOf(statuses map[string]Status, jobID string) Status {
	if st, ok := statuses[jobID]; ok && st != "" {
		return st
	}
	return StatusNotApplied
}
