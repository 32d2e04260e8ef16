package jobserver

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/anatolykoptev/go_placement/internal/engine"
	"github.com/anatolykoptev/go_placement/internal/engine/jobs"
	"github.com/anatolykoptev/go_placement/internal/engine/records"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// connectClient registers every tool on a fresh server and returns a
// client session over in-memory transports, so calls pass through the
// generated input schemas.
func connectClient(t *testing.T) *mcp.ClientSession {
	t.Helper()
	ctx := context.Background()
	clock := func() time.Time { return testNow }
	server := mcp.NewServer(&mcp.Implementation{Name: "go_placement", Version: "test"}, nil)
	RegisterTools(server, Deps{
		Store:   records.New(engine.NewMemoryKV(), records.WithClock(clock)),
		Catalog: jobs.LoadCatalog(""),
		Now:     clock,
	})

	clientT, serverT := mcp.NewInMemoryTransports()
	ss, err := server.Connect(ctx, serverT, nil)
	require.NoError(t, err)
	t.Cleanup(func() { ss.Close() })

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "test"}, nil)
	cs, err := client.Connect(ctx, clientT, nil)
	require.NoError(t, err)
	t.Cleanup(func() { cs.Close() })
	return cs
}

func callTool[T any](t *testing.T, cs *mcp.ClientSession, name string, args map[string]any) T {
	t.Helper()
	res, err := cs.CallTool(context.Background(), &mcp.CallToolParams{Name: name, Arguments: args})
	require.NoError(t, err)
	require.False(t, res.IsError, "%s returned a tool error: %+v", name, res.Content)

	data, err := json.Marshal(res.StructuredContent)
	require.NoError(t, err)
	var out T
	require.NoError(t, json.Unmarshal(data, &out))
	return out
}

func TestMCP_ListTools(t *testing.T) {
	cs := connectClient(t)
	res, err := cs.ListTools(context.Background(), nil)
	require.NoError(t, err)
	assert.Len(t, res.Tools, 20)
}

func TestMCP_ResumeSavePartialDraft(t *testing.T) {
	cs := connectClient(t)

	out := callTool[ResumeOutput](t, cs, "resume_save", map[string]any{
		"resume": map[string]any{"personal": map[string]any{"name": "A"}},
	})
	assert.True(t, out.Saved)
	assert.Equal(t, "A", out.Resume.Personal.Name)
	assert.Equal(t, 10, out.ATS.Score)
	assert.Contains(t, out.ATS.Suggestions, "Add a professional email address.")

	out = callTool[ResumeOutput](t, cs, "resume_save", map[string]any{
		"technical_skills": "Go, SQL",
	})
	assert.True(t, out.Saved)
	assert.Equal(t, []string{"Go", "SQL"}, out.Resume.Skills.Technical)
	assert.Empty(t, out.Resume.Personal.Name, "save replaces the draft")

	scored := callTool[ResumeOutput](t, cs, "resume_ats_score", map[string]any{})
	assert.True(t, scored.Saved)
	assert.Equal(t, []string{"Go", "SQL"}, scored.Resume.Skills.Technical)
}

func TestMCP_ProofLinksPartial(t *testing.T) {
	cs := connectClient(t)

	out := callTool[records.ProofStatus](t, cs, "proof_links_set", map[string]any{
		"github_link": "https://github.com/asha/tracker",
	})
	assert.Equal(t, "https://github.com/asha/tracker", out.Artifacts.GitHubLink)
	assert.Equal(t, records.ProofInProgress, out.Status)
}
