package jobs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func fullResume() Resume {
	return Resume{
		Personal: PersonalInfo{Name: "Asha Rao", Email: "asha@example.com", Phone: "+91 90000 00000"},
		Summary:  "Built a payments dashboard used by 10k merchants and led the move to Go services.",
		Education: []Education{
			{Institution: "NIT Trichy", Degree: "B.Tech CSE", Year: "2025"},
		},
		Experience: []Experience{
			{Company: "Razorpay", Role: "Intern", Description: "Shipped refunds UI."},
		},
		Projects: []Project{{Title: "Placement Tracker"}},
		Skills: ResumeSkills{
			Technical: []string{"Go", "React", "SQL"},
			Soft:      []string{"Communication"},
			Tools:     []string{"Docker"},
		},
		Links: ResumeLinks{GitHub: "https://github.com/asha", LinkedIn: "https://linkedin.com/in/asha"},
	}
}

func TestScoreResume_Full(t *testing.T) {
	res := ScoreResume(fullResume())
	assert.Equal(t, 100, res.Score)
	assert.Equal(t, "Strong Resume", res.Band)
	assert.Empty(t, res.Suggestions)
}

func TestScoreResume_Empty(t *testing.T) {
	res := ScoreResume(Resume{})
	assert.Zero(t, res.Score)
	assert.Equal(t, "Needs Work", res.Band)
	assert.Equal(t, []string{
		"Add your full name.",
		"Add a professional email address.",
		"Write a summary longer than 50 characters.",
	}, res.Suggestions)
}

func TestScoreResume_Partial(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(r *Resume)
		want     int
		wantBand string
	}{
		{"no links", func(r *Resume) { r.Links = ResumeLinks{} }, 90, "Strong Resume"},
		{"no action verb", func(r *Resume) {
			r.Summary = "Final-year student passionate about backend systems and clean code."
		}, 90, "Strong Resume"},
		{"blank experience description", func(r *Resume) { r.Experience[0].Description = "  " }, 85, "Strong Resume"},
		{"four skills", func(r *Resume) { r.Skills.Tools = []string{" "} }, 90, "Strong Resume"},
		{"contact only", func(r *Resume) {
			*r = Resume{Personal: r.Personal}
		}, 25, "Needs Work"},
		{"getting there", func(r *Resume) {
			r.Projects, r.Education, r.Links = nil, nil, ResumeLinks{}
		}, 70, "Getting There"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := fullResume()
			tt.mutate(&r)
			res := ScoreResume(r)
			assert.Equal(t, tt.want, res.Score)
			assert.Equal(t, tt.wantBand, res.Band)
			assert.LessOrEqual(t, len(res.Suggestions), 3)
		})
	}
}
