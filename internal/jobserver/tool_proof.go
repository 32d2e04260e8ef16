package jobserver

import (
	"context"
	"errors"
	"log/slog"

	"github.com/anatolykoptev/go_placement/internal/engine/records"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (t *tools) proofStatus(ctx context.Context, _ *mcp.CallToolRequest, _ NoInput) (*mcp.CallToolResult, records.ProofStatus, error) {
	st, err := t.store.Proof.Status(ctx)
	if err != nil {
		return nil, records.ProofStatus{}, err
	}
	return nil, st, nil
}

// ProofTestInput is the proof_test_set request.
type ProofTestInput struct {
	Test   string `json:"test,omitempty" jsonschema:"Test ID (test-3) or number (3)"`
	Passed bool   `json:"passed,omitempty" jsonschema:"true to check the test, false to uncheck it"`
	Reset  bool   `json:"reset,omitempty" jsonschema:"Uncheck every test; test and passed are ignored"`
}

func (t *tools) setProofTest(ctx context.Context, _ *mcp.CallToolRequest, input ProofTestInput) (*mcp.CallToolResult, records.ProofStatus, error) {
	if input.Reset {
		st, err := t.store.Proof.ResetTests(ctx)
		if err != nil {
			return nil, records.ProofStatus{}, err
		}
		return nil, st, nil
	}
	if input.Test == "" {
		return nil, records.ProofStatus{}, errors.New("test is required unless reset is set")
	}
	st, err := t.store.Proof.SetTest(ctx, input.Test, input.Passed)
	if err != nil {
		return nil, records.ProofStatus{}, err
	}
	return nil, st, nil
}

// ProofLinksInput is the proof_links_set request.
type ProofLinksInput struct {
	LovableLink  string `json:"lovable_link,omitempty" jsonschema:"Lovable project URL"`
	GitHubLink   string `json:"github_link,omitempty" jsonschema:"GitHub repository URL"`
	DeployedLink string `json:"deployed_link,omitempty" jsonschema:"Deployed app URL"`
}

func (t *tools) setProofLinks(ctx context.Context, _ *mcp.CallToolRequest, input ProofLinksInput) (*mcp.CallToolResult, records.ProofStatus, error) {
	st, err := t.store.Proof.SetLinks(ctx, records.Artifacts{
		LovableLink:  input.LovableLink,
		GitHubLink:   input.GitHubLink,
		DeployedLink: input.DeployedLink,
	})
	if err != nil {
		return nil, records.ProofStatus{}, err
	}
	if st.Status == records.ProofShipped {
		slog.Info("proof_links_set: project shipped")
	}
	return nil, st, nil
}
