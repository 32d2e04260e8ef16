package records

import (
	"context"
	"testing"

	"github.com/anatolykoptev/go_placement/internal/engine/jobs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDigest_NeedsPreferencesNotStored(t *testing.T) {
	ctx := context.Background()
	s, kv := newTestStore(t)

	d, created, err := s.Digests.GetOrBuild(ctx, jobs.LoadCatalog(""), nil)
	require.NoError(t, err)
	assert.False(t, created)
	assert.True(t, d.NeedsPreferences)

	_, ok, err := kv.Get(ctx, DigestKey("2026-03-04"))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDigest_StoredForTheDay(t *testing.T) {
	ctx := context.Background()
	s, kv := newTestStore(t)
	catalog := jobs.LoadCatalog("")
	prefs := &jobs.Preferences{RoleKeywords: []string{"React"}, Skills: []string{"React"}, MinMatchScore: 30}

	d, created, err := s.Digests.GetOrBuild(ctx, catalog, prefs)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "2026-03-04", d.Date)
	require.NotEmpty(t, d.Jobs)

	_, ok, err := kv.Get(ctx, DigestKey("2026-03-04"))
	require.NoError(t, err)
	assert.True(t, ok)

	// Changed preferences do not alter today's digest.
	other := &jobs.Preferences{Skills: []string{"Kotlin"}, MinMatchScore: 0}
	again, created, err := s.Digests.GetOrBuild(ctx, catalog, other)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, d.Jobs[0].ID, again.Jobs[0].ID)
	assert.Len(t, again.Jobs, len(d.Jobs))

	require.NoError(t, s.Digests.Clear(ctx))
	rebuilt, created, err := s.Digests.GetOrBuild(ctx, catalog, other)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "job-014", rebuilt.Jobs[0].ID)
}
