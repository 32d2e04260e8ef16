package records

import (
	"context"
	"testing"

	"github.com/anatolykoptev/go_placement/internal/engine/jobs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResume_SaveLoad(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	_, ok, err := s.Resume.Load(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	in := jobs.Resume{
		Personal: jobs.PersonalInfo{Name: "Asha Rao", Email: "asha@example.com"},
		Skills:   jobs.ResumeSkills{Technical: []string{"Go", "go", " SQL "}, Tools: []string{"Git"}},
	}
	require.NoError(t, s.Resume.Save(ctx, in))

	got, ok, err := s.Resume.Load(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "Asha Rao", got.Personal.Name)
	assert.Equal(t, []string{"Go", "SQL"}, got.Skills.Technical)
	assert.Equal(t, []string{}, got.Skills.Soft)
	assert.Equal(t, []string{"Git"}, got.Skills.Tools)
}

func TestResume_LegacySkillShapes(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"comma string", `{"skills":"React, Node.js,,React"}`, []string{"React", "Node.js"}},
		{"flat array", `{"skills":["Python","Django"]}`, []string{"Python", "Django"}},
		{"missing", `{"summary":"hi"}`, []string{}},
		{"wrong type", `{"skills":7}`, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, kv := newTestStore(t)
			putRaw(t, kv, KeyResume, tt.raw)
			got, ok, err := s.Resume.Load(context.Background())
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, tt.want, got.Skills.Technical)
			assert.Empty(t, got.Skills.Soft)
		})
	}
}

func TestSplitSkills(t *testing.T) {
	assert.Equal(t, []string{"Go", "Docker"}, SplitSkills(" Go, Docker ,go,"))
	assert.Equal(t, []string{}, SplitSkills(""))
}
