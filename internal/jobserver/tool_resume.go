package jobserver

import (
	"context"
	"log/slog"

	"github.com/anatolykoptev/go_placement/internal/engine"
	"github.com/anatolykoptev/go_placement/internal/engine/jobs"
	"github.com/anatolykoptev/go_placement/internal/engine/records"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ResumeInput is the resume_save request.
type ResumeInput struct {
	Resume jobs.Resume `json:"resume,omitempty" jsonschema:"Resume draft, every field optional: personal, summary, education, experience, projects, skills {technical, soft, tools}, links {github, linkedin}"`
	// Comma-separated lists as typed in the builder, appended to resume.skills.
	TechnicalSkills string `json:"technical_skills,omitempty" jsonschema:"Comma-separated technical skills, e.g. Go, SQL, React"`
	SoftSkills      string `json:"soft_skills,omitempty" jsonschema:"Comma-separated soft skills"`
	Tools           string `json:"tools,omitempty" jsonschema:"Comma-separated tools, e.g. Git, Docker"`
}

// ResumeOutput is the stored draft with its ATS score.
type ResumeOutput struct {
	Resume jobs.Resume    `json:"resume"`
	ATS    jobs.ATSResult `json:"ats"`
	Saved  bool           `json:"saved"`
}

func (t *tools) saveResume(ctx context.Context, _ *mcp.CallToolRequest, input ResumeInput) (*mcp.CallToolResult, ResumeOutput, error) {
	r := input.Resume
	r.Skills.Technical = append(r.Skills.Technical, records.SplitSkills(input.TechnicalSkills)...)
	r.Skills.Soft = append(r.Skills.Soft, records.SplitSkills(input.SoftSkills)...)
	r.Skills.Tools = append(r.Skills.Tools, records.SplitSkills(input.Tools)...)

	if err := t.store.Resume.Save(ctx, r); err != nil {
		return nil, ResumeOutput{}, err
	}
	saved, _, err := t.store.Resume.Load(ctx)
	if err != nil {
		slog.Warn("resume_save: reload failed", slog.Any("error", err))
		saved = r
	}
	res := jobs.ScoreResume(saved)
	engine.IncrResumeScores()
	return nil, ResumeOutput{Resume: saved, ATS: res, Saved: true}, nil
}

func (t *tools) atsScore(ctx context.Context, _ *mcp.CallToolRequest, _ NoInput) (*mcp.CallToolResult, ResumeOutput, error) {
	r, ok, err := t.store.Resume.Load(ctx)
	if err != nil {
		slog.Warn("resume_ats_score: load failed", slog.Any("error", err))
	}
	res := jobs.ScoreResume(r)
	engine.IncrResumeScores()
	return nil, ResumeOutput{Resume: r, ATS: res, Saved: ok}, nil
}
