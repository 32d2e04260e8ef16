package jobs

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ids(jobs []ScoredJob) []string {
	out := make([]string, len(jobs))
	for i, j := range jobs {
		out[i] = j.ID
	}
	return out
}

func TestLoadCatalog_Embedded(t *testing.T) {
	all := LoadCatalog("")
	require.Len(t, all, 16)
	j, ok := FindJob(all, "job-002")
	require.True(t, ok)
	assert.Equal(t, "Razorpay", j.Company)
	assert.Equal(t, ModeRemote, j.Mode)

	_, ok = FindJob(all, "job-999")
	assert.False(t, ok)
}

func TestLoadCatalog_File(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "jobs.json")
	require.NoError(t, os.WriteFile(good, []byte(`[
		{"id":"a","title":"Go Dev","mode":"Remote","postedDaysAgo":-3},
		{"id":"","title":"missing id"}
	]`), 0o644))
	all := LoadCatalog(good)
	require.Len(t, all, 1)
	assert.Equal(t, 0, all[0].PostedDaysAgo)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{not json`), 0o644))
	assert.Len(t, LoadCatalog(bad), 16)
	assert.Len(t, LoadCatalog(filepath.Join(dir, "missing.json")), 16)
}

func TestFeed_Filters(t *testing.T) {
	all := LoadCatalog("")
	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{"keyword title", Filter{Keyword: "react"}, []string{"job-002"}},
		{"keyword company", Filter{Keyword: "ZERODHA"}, []string{"job-012"}},
		{"mode", Filter{Mode: "remote", Sort: SortLatest}, []string{"job-002", "job-006", "job-012", "job-016"}},
		{"all is wildcard", Filter{Mode: "All", Location: "all", Keyword: "react"}, []string{"job-002"}},
		{"experience and source", Filter{Experience: "3-5 Years", Source: "Indeed"}, []string{"job-011"}},
		{"status", Filter{Status: "Applied"}, []string{"job-004"}},
	}
	statuses := map[string]Status{"job-004": StatusApplied}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(Feed(all, nil, statuses, tt.filter)))
		})
	}
}

func TestFeed_StatusDefaultsToNotApplied(t *testing.T) {
	got := Feed(LoadCatalog(""), nil, nil, Filter{Keyword: "react"})
	require.Len(t, got, 1)
	assert.Equal(t, StatusNotApplied, got[0].Status)
	assert.Zero(t, got[0].MatchScore)
}

func TestFeed_Sorting(t *testing.T) {
	all := LoadCatalog("")

	latest := Feed(all, nil, nil, Filter{})
	require.Len(t, latest, 16)
	assert.Equal(t, []string{"job-001", "job-009"}, ids(latest[:2]))
	for i := 1; i < len(latest); i++ {
		assert.LessOrEqual(t, latest[i-1].PostedDaysAgo, latest[i].PostedDaysAgo)
	}

	salary := Feed(all, nil, nil, Filter{Sort: SortSalary})
	assert.Equal(t, "job-013", salary[0].ID)

	match := Feed(all, reactPrefs(), nil, Filter{Sort: SortMatch})
	assert.Equal(t, "job-002", match[0].ID)
	for i := 1; i < len(match); i++ {
		assert.GreaterOrEqual(t, match[i-1].MatchScore, match[i].MatchScore)
	}
}

func TestFeed_OnlyMatches(t *testing.T) {
	all := LoadCatalog("")
	assert.Empty(t, Feed(all, nil, nil, Filter{OnlyMatches: true}))

	got := Feed(all, reactPrefs(), nil, Filter{OnlyMatches: true})
	require.NotEmpty(t, got)
	for _, j := range got {
		assert.GreaterOrEqual(t, j.MatchScore, 40)
	}
}

func TestParseSalary(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"10–18 LPA", 1_000_000},
		{"3–5 LPA", 300_000},
		{"₹40k–₹60k/month Internship", 480_000},
		{"₹15k", 15_000},
		{"Competitive", 0},
		{"", 0},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseSalary(tt.in))
		})
	}
}

func TestParseStatus(t *testing.T) {
	st, err := ParseStatus(" not applied ")
	require.NoError(t, err)
	assert.Equal(t, StatusNotApplied, st)

	st, err = ParseStatus("SELECTED")
	require.NoError(t, err)
	assert.Equal(t, StatusSelected, st)

	_, err = ParseStatus("ghosted")
	assert.Error(t, err)
}

func TestParseMode(t *testing.T) {
	m, ok := ParseMode("hybrid")
	assert.True(t, ok)
	assert.Equal(t, ModeHybrid, m)
	_, ok = ParseMode("moon")
	assert.False(t, ok)

	assert.True(t, ValidExperience("0-1 Years"))
	assert.False(t, ValidExperience("10+ Years"))
}

func TestBuildDigest(t *testing.T) {
	all := LoadCatalog("")
	now := time.Date(2026, 3, 4, 9, 0, 0, 0, time.UTC)

	prefs := &Preferences{
		RoleKeywords:   []string{"React"},
		Skills:         []string{"React"},
		PreferredModes: []Mode{ModeRemote},
		MinMatchScore:  30,
	}
	d := BuildDigest(all, prefs, now)
	assert.Equal(t, "2026-03-04", d.Date)
	assert.False(t, d.NeedsPreferences)
	assert.Equal(t, []string{"job-002", "job-009"}, ids(d.Jobs))
	assert.Equal(t, 75, d.Jobs[0].MatchScore)
	assert.Equal(t, 35, d.Jobs[1].MatchScore)
}

func TestBuildDigest_NeedsPreferences(t *testing.T) {
	now := time.Date(2026, 3, 4, 9, 0, 0, 0, time.UTC)
	for _, p := range []*Preferences{nil, {MinMatchScore: 40}} {
		d := BuildDigest(LoadCatalog(""), p, now)
		assert.True(t, d.NeedsPreferences)
		assert.Empty(t, d.Jobs)
	}
}

func TestBuildDigest_Capped(t *testing.T) {
	prefs := &Preferences{PreferredModes: Modes, MinMatchScore: 0}
	d := BuildDigest(LoadCatalog(""), prefs, time.Now())
	assert.Len(t, d.Jobs, DigestSize)
}
