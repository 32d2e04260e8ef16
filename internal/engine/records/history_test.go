package records

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/anatolykoptev/go_placement/internal/engine/placement"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistory_SaveListGetDelete(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	first := placement.Analyze(placement.Input{Company: "Acme Labs", JDText: "React, SQL"}, testNow)
	second := placement.Analyze(placement.Input{Company: "Google", JDText: "Java, DSA"}, testNow.Add(time.Hour))
	require.NoError(t, s.History.Save(ctx, first))
	require.NoError(t, s.History.Save(ctx, second))

	list, skipped, err := s.History.List(ctx)
	require.NoError(t, err)
	assert.Zero(t, skipped)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID, "newest first")
	assert.Equal(t, first.ID, list[1].ID)

	got, err := s.History.Get(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, first.BaseScore, got.BaseScore)
	assert.Equal(t, first.FinalScore, got.FinalScore)
	assert.Equal(t, first.ExtractedSkills, got.ExtractedSkills)

	require.NoError(t, s.History.Delete(ctx, first.ID))
	_, err = s.History.Get(ctx, first.ID)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.True(t, errors.Is(s.History.Delete(ctx, first.ID), ErrNotFound))

	list, _, err = s.History.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestHistory_SetConfidenceReversible(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	a := placement.Analyze(placement.Input{JDText: "React, SQL, Docker"}, testNow)
	require.NoError(t, s.History.Save(ctx, a))
	original := a.FinalScore

	updated, err := s.History.SetConfidence(ctx, a.ID, "react", placement.ConfidenceKnow)
	require.NoError(t, err)
	assert.Equal(t, original+4, updated.FinalScore)
	assert.Equal(t, placement.ConfidenceKnow, updated.SkillConfidenceMap["React"])
	assert.Equal(t, a.BaseScore, updated.BaseScore)

	stored, err := s.History.Get(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, original+4, stored.FinalScore)

	back, err := s.History.SetConfidence(ctx, a.ID, "React", placement.ConfidencePractice)
	require.NoError(t, err)
	assert.Equal(t, original, back.FinalScore)

	_, err = s.History.SetConfidence(ctx, a.ID, "Rust", placement.ConfidenceKnow)
	assert.True(t, errors.Is(err, placement.ErrUnknownSkill))
	_, err = s.History.SetConfidence(ctx, "missing", "React", placement.ConfidenceKnow)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestHistory_MalformedTopLevel(t *testing.T) {
	ctx := context.Background()
	s, kv := newTestStore(t)
	putRaw(t, kv, KeyHistory, `{"not":"a list"`)

	list, skipped, err := s.History.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.Zero(t, skipped)

	a := placement.Analyze(placement.Input{JDText: "Go"}, testNow)
	require.NoError(t, s.History.Save(ctx, a))
	list, _, err = s.History.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestHistory_CorruptEntrySkippedAndKept(t *testing.T) {
	ctx := context.Background()
	s, kv := newTestStore(t)
	putRaw(t, kv, KeyHistory, `["garbage", {"id":"ok-1","jdText":"React"}]`)

	list, skipped, err := s.History.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, skipped)
	require.Len(t, list, 1)
	assert.Equal(t, "ok-1", list[0].ID)

	_, err = s.History.SetConfidence(ctx, "ok-1", "React", placement.ConfidenceKnow)
	require.NoError(t, err)

	raw, _, err := kv.Get(ctx, KeyHistory)
	require.NoError(t, err)
	var entries []json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(raw), &entries))
	require.Len(t, entries, 2)
	assert.JSONEq(t, `"garbage"`, string(entries[0]))
}

func TestNormalizeAnalysis_LabelKeyedSkills(t *testing.T) {
	raw := `{
		"id": "old-1",
		"createdAt": "2024-05-01T10:00:00.000Z",
		"company": "Google",
		"role": "SDE",
		"jdText": "React and SQL",
		"extractedSkills": {"Web": ["React"], "Data": ["SQL"], "Cloud/DevOps": []},
		"readinessScore": 60,
		"finalScore": 99,
		"skillConfidenceMap": {"react": "know", "SQL": "know", "Rust": "know"}
	}`
	a, err := normalizeAnalysis(json.RawMessage(raw))
	require.NoError(t, err)

	assert.Equal(t, placement.SchemaVersion, a.SchemaVersion)
	assert.Equal(t, time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC), a.CreatedAt)
	assert.Equal(t, a.CreatedAt, a.UpdatedAt)
	assert.Equal(t, []string{"React"}, a.ExtractedSkills[placement.CategoryWeb])
	assert.Equal(t, []string{"SQL"}, a.ExtractedSkills[placement.CategoryData])
	assert.Empty(t, a.ExtractedSkills[placement.CategoryOther])
	assert.Len(t, a.ExtractedSkills, len(placement.Categories))

	assert.Equal(t, 60, a.BaseScore)
	assert.Equal(t, map[string]placement.Confidence{
		"React": placement.ConfidenceKnow,
		"SQL":   placement.ConfidenceKnow,
	}, a.SkillConfidenceMap)
	assert.Equal(t, 64, a.FinalScore, "final score is recomputed, not trusted")

	assert.Equal(t, placement.SizeEnterprise, a.CompanyIntel.Size)
	assert.NotEmpty(t, a.RoundMapping)
	assert.NotEmpty(t, a.Checklist)
	assert.NotEmpty(t, a.Plan7Days)
	assert.Len(t, a.Questions, placement.MaxQuestions)
}

func TestNormalizeAnalysis_FlatSkillArray(t *testing.T) {
	a, err := normalizeAnalysis(json.RawMessage(`{"id":"old-2","extractedSkills":["React","Docker","Teamwork","react"],"baseScore":50}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"React"}, a.ExtractedSkills[placement.CategoryWeb])
	assert.Equal(t, []string{"Docker"}, a.ExtractedSkills[placement.CategoryCloud])
	assert.Equal(t, []string{"Teamwork"}, a.ExtractedSkills[placement.CategoryOther])
	assert.Len(t, a.SkillConfidenceMap, 3)
	assert.Equal(t, 44, a.FinalScore)
}

func TestNormalizeAnalysis_MissingSkillsReExtracted(t *testing.T) {
	a, err := normalizeAnalysis(json.RawMessage(`{"id":"old-3","jdText":"We need Python and AWS","createdAt":1714557600000}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"Python"}, a.ExtractedSkills[placement.CategoryLanguages])
	assert.Equal(t, []string{"AWS"}, a.ExtractedSkills[placement.CategoryCloud])
	assert.Equal(t, 45, a.BaseScore)
	assert.Equal(t, 41, a.FinalScore)
	assert.Equal(t, time.UnixMilli(1714557600000).UTC(), a.CreatedAt)
}

func TestNormalizeAnalysis_StableDerivedID(t *testing.T) {
	raw := json.RawMessage(`{"jdText":"Java"}`)
	a1, err := normalizeAnalysis(raw)
	require.NoError(t, err)
	a2, err := normalizeAnalysis(raw)
	require.NoError(t, err)
	assert.NotEmpty(t, a1.ID)
	assert.Equal(t, a1.ID, a2.ID)
}

func TestNormalizeAnalysis_RoundTripCanonical(t *testing.T) {
	a := placement.Analyze(placement.Input{Company: "Infosys", Role: "Engineer", JDText: "Java, Spring, MySQL, AWS"}, testNow)
	data, err := json.Marshal(a)
	require.NoError(t, err)

	got, err := normalizeAnalysis(data)
	require.NoError(t, err)
	assert.Equal(t, *a, got)
}

func TestNormalizeAnalysis_Errors(t *testing.T) {
	for _, raw := range []string{`"garbage"`, `42`, `[]`} {
		_, err := normalizeAnalysis(json.RawMessage(raw))
		assert.Error(t, err, raw)
	}
}

func TestClampScore(t *testing.T) {
	tests := []struct {
		in   float64
		want int
	}{
		{-3, 0},
		{42.4, 42},
		{42.5, 43},
		{100.4, 100},
		{1e300, 100},
		{-1e300, 0},
		{math.Inf(1), 100},
		{math.NaN(), 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, clampScore(tt.in), "clampScore(%v)", tt.in)
	}
}
