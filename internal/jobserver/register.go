package jobserver

import (
	"time"

	"github.com/anatolykoptev/go_placement/internal/engine/jobs"
	"github.com/anatolykoptev/go_placement/internal/engine/records"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Deps are the collaborators every tool shares.
type Deps struct {
	Store   *records.Store
	Catalog []jobs.Job
	// Now defaults to time.Now.
	Now func() time.Time
}

type tools struct {
	store   *records.Store
	catalog []jobs.Job
	now     func() time.Time
}

func newTools(d Deps) *tools {
	now := d.Now
	if now == nil {
		now = time.Now
	}
	return &tools{store: d.Store, catalog: d.Catalog, now: now}
}

// RegisterTools registers the placement and job tracker tools on server:
// JD analysis and history, preferences, feed and digest, application
// status, proof of work and the resume ATS score.
func RegisterTools(server *mcp.Server, d Deps) int {
	t := newTools(d)

	// analysis
	mcp.AddTool(server, &mcp.Tool{
		Name:        "jd_analyze",
		Description: "Analyze a job description (plain text or pasted HTML). Extracts skills by category, classifies the company, maps interview rounds, and builds a preparation checklist, a 7-day plan and 10 likely questions. Returns the readiness score and saves the analysis to history.",
	}, t.analyze)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "company_intel",
		Description: "Classify a company as Enterprise or Startup, infer its industry, and describe the typical hiring focus and interview rounds for a skill set.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, t.companyIntel)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "analysis_history",
		Description: "List saved JD analyses, newest first, with scores and a short JD preview. Reports how many stored entries could not be read.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, t.history)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "analysis_get",
		Description: "Get one saved analysis by ID, including skills, rounds, checklist, plan, questions and per-skill confidence.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, t.getAnalysis)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "analysis_delete",
		Description: "Delete a saved analysis by ID.",
		Annotations: &mcp.ToolAnnotations{DestructiveHint: ptr(true)},
	}, t.deleteAnalysis)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "skill_confidence_set",
		Description: "Mark an extracted skill as know or practice for a saved analysis. Each known skill adds 2 points and each practice skill subtracts 2 from the base readiness score. Returns the updated final score.",
	}, t.setConfidence)

	// preferences
	mcp.AddTool(server, &mcp.Tool{
		Name:        "preferences_get",
		Description: "Get the saved job preferences (role keywords, locations, work modes, experience level, skills, minimum match score). Returns defaults when none are saved.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, t.getPreferences)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "preferences_save",
		Description: "Save job preferences. Replaces the whole record; omitted fields are cleared.",
	}, t.savePreferences)

	// job tracker
	mcp.AddTool(server, &mcp.Tool{
		Name:        "job_feed",
		Description: "List jobs with match scores and tracked status. Filter by keyword (title or company), location, mode, experience, source and status; sort by latest, match or salary. only_matches keeps jobs at or above the minimum match score.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, t.feed)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "job_match_score",
		Description: "Score one job against the saved preferences and list the rules that matched.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, t.matchScore)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "job_digest",
		Description: "Get today's digest: the top 10 jobs at or above the minimum match score. The digest is built once per day and then returned unchanged; set regenerate to rebuild it.",
	}, t.digest)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "job_status_set",
		Description: "Set the application status of a job: Not Applied, Applied, Rejected or Selected. Each change is added to the recent updates log.",
	}, t.setStatus)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "job_status_updates",
		Description: "List recent application status changes, newest first (at most 20).",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, t.statusUpdates)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "job_save_toggle",
		Description: "Save a job for later, or unsave it if it is already saved.",
	}, t.toggleSaved)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "saved_jobs",
		Description: "List saved jobs with match scores and tracked status.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, t.savedJobs)

	// proof of work
	mcp.AddTool(server, &mcp.Tool{
		Name:        "proof_status",
		Description: "Show the 10-item test checklist, the submission links and the ship status (Not Started, In Progress, Shipped).",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, t.proofStatus)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "proof_test_set",
		Description: "Check or uncheck a checklist test by ID (test-3) or number (3). Set reset to uncheck every test.",
	}, t.setProofTest)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "proof_links_set",
		Description: "Save the Lovable, GitHub and deployed links. Each must be an http(s) URL; empty clears it. Shipping requires all three links and all tests passed.",
	}, t.setProofLinks)

	// resume
	mcp.AddTool(server, &mcp.Tool{
		Name:        "resume_save",
		Description: "Save the resume builder draft (personal info, summary, education, experience, projects, skills, links). Replaces the stored draft and returns its ATS score.",
	}, t.saveResume)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "resume_ats_score",
		Description: "Score the saved resume draft (0-100) with deterministic ATS rules and return up to 3 improvement suggestions.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, t.atsScore)

	return 20
}

func ptr[T any](v T) *T { return &v }

// NoInput is the request of tools that take no arguments.
type NoInput struct{}
