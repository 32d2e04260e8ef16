package records

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/anatolykoptev/go_placement/internal/engine"
	"github.com/anatolykoptev/go_placement/internal/toolutil"
)

// Ship states of the proof-of-work checklist.
const (
	ProofNotStarted = "Not Started"
	ProofInProgress = "In Progress"
	ProofShipped    = "Shipped"
)

// ProofTest is one fixed manual test of the job tracker.
type ProofTest struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// ProofTests lists the tests that must pass before shipping.
var ProofTests = []ProofTest{
	{"test-1", "Preferences persist after refresh"},
	{"test-2", "Match score is calculated correctly"},
	{"test-3", `"Show only matches" toggle works`},
	{"test-4", "Save job persists after refresh"},
	{"test-5", "Apply opens in a new tab"},
	{"test-6", "Status update persists after refresh"},
	{"test-7", "Status filter works correctly"},
	{"test-8", "Digest generates top 10 by score"},
	{"test-9", "Digest persists for the day"},
	{"test-10", "No console errors on main pages"},
}

// Artifacts are the submission links. Each must be an http(s) URL.
type Artifacts struct {
	LovableLink  string `json:"lovableLink" validate:"omitempty,http_url"`
	GitHubLink   string `json:"githubLink" validate:"omitempty,http_url"`
	DeployedLink string `json:"deployedLink" validate:"omitempty,http_url"`
}

func (a Artifacts) complete() bool {
	return a.LovableLink != "" && a.GitHubLink != "" && a.DeployedLink != ""
}

func (a Artifacts) started() bool {
	return a.LovableLink != "" || a.GitHubLink != "" || a.DeployedLink != ""
}

// ProofTestState is a test with its checked flag.
type ProofTestState struct {
	ProofTest
	Passed bool `json:"passed"`
}

// ProofStatus summarizes the checklist and links.
type ProofStatus struct {
	Tests     []ProofTestState `json:"tests"`
	Passed    int              `json:"passed"`
	Total     int              `json:"total"`
	Artifacts Artifacts        `json:"artifacts"`
	Status    string           `json:"status"`
}

// ProofStore holds the test checklist and artifact links.
type ProofStore struct {
	*base
}

// Status reads both records and derives the ship state. Shipped requires
// every test passed and all three links.
func (s *ProofStore) Status(ctx context.Context) (ProofStatus, error) {
	checked, _, err := load[map[string]bool](ctx, s.kv, KeyTestChecklist)
	if err != nil {
		return ProofStatus{}, err
	}
	links, _, err := load[Artifacts](ctx, s.kv, KeyArtifacts)
	if err != nil {
		return ProofStatus{}, err
	}
	if toolutil.Validate(links) != nil {
		links = Artifacts{}
	}

	st := ProofStatus{Total: len(ProofTests), Artifacts: links}
	for _, t := range ProofTests {
		passed := checked[t.ID]
		if passed {
			st.Passed++
		}
		st.Tests = append(st.Tests, ProofTestState{ProofTest: t, Passed: passed})
	}
	switch {
	case st.Passed == st.Total && links.complete():
		st.Status = ProofShipped
	case st.Passed > 0 || links.started():
		st.Status = ProofInProgress
	default:
		st.Status = ProofNotStarted
	}
	return st, nil
}

// SetTest checks or unchecks one test, by ID ("test-3") or 1-based number ("3").
func (s *ProofStore) SetTest(ctx context.Context, ref string, passed bool) (ProofStatus, error) {
	id, ok := resolveProofTest(ref)
	if !ok {
		return ProofStatus{}, fmt.Errorf("proof test %q: %w", ref, ErrNotFound)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	checked, _, err := load[map[string]bool](ctx, s.kv, KeyTestChecklist)
	if err != nil {
		return ProofStatus{}, err
	}
	if checked == nil {
		checked = make(map[string]bool)
	}
	if passed {
		checked[id] = true
	} else {
		delete(checked, id)
	}
	if err := engine.StoreJSON(ctx, s.kv, KeyTestChecklist, checked); err != nil {
		return ProofStatus{}, err
	}
	return s.Status(ctx)
}

// ResetTests unchecks every test.
func (s *ProofStore) ResetTests(ctx context.Context) (ProofStatus, error) {
	if err := s.kv.Remove(ctx, KeyTestChecklist); err != nil {
		return ProofStatus{}, err
	}
	return s.Status(ctx)
}

// SetLinks validates and stores the artifact links. Empty links clear.
func (s *ProofStore) SetLinks(ctx context.Context, a Artifacts) (ProofStatus, error) {
	a = Artifacts{
		LovableLink:  strings.TrimSpace(a.LovableLink),
		GitHubLink:   strings.TrimSpace(a.GitHubLink),
		DeployedLink: strings.TrimSpace(a.DeployedLink),
	}
	if err := toolutil.Validate(a); err != nil {
		return ProofStatus{}, err
	}
	if err := engine.StoreJSON(ctx, s.kv, KeyArtifacts, a); err != nil {
		return ProofStatus{}, err
	}
	return s.Status(ctx)
}

func resolveProofTest(ref string) (string, bool) {
	ref = strings.ToLower(strings.TrimSpace(ref))
	if n, err := strconv.Atoi(ref); err == nil {
		if n >= 1 && n <= len(ProofTests) {
			return ProofTests[n-1].ID, true
		}
		return "", false
	}
	for _, t := range ProofTests {
		if t.ID == ref {
			return t.ID, true
		}
	}
	return "", false
}
