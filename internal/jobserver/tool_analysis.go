package jobserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/anatolykoptev/go_placement/internal/engine"
	"github.com/anatolykoptev/go_placement/internal/engine/placement"
	"github.com/anatolykoptev/go_placement/internal/toolutil"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	previewLen     = 120
	weakSkillsHint = 3
)

// AnalyzeInput is the jd_analyze request.
type AnalyzeInput struct {
	Company string `json:"company,omitempty" jsonschema:"Company name (optional, improves round mapping and score)" validate:"max=200"`
	Role    string `json:"role,omitempty" jsonschema:"Role title (optional)" validate:"max=200"`
	JDText  string `json:"jd_text" jsonschema:"Job description as plain text or pasted HTML" validate:"required"`
}

// AnalysisOutput wraps a full analysis with derived hints.
type AnalysisOutput struct {
	Analysis   *placement.Analysis `json:"analysis"`
	ActionNext []string            `json:"action_next,omitempty"`
	Saved      bool                `json:"saved"`
}

func (t *tools) analyze(ctx context.Context, _ *mcp.CallToolRequest, input AnalyzeInput) (*mcp.CallToolResult, AnalysisOutput, error) {
	if err := toolutil.Validate(input); err != nil {
		return nil, AnalysisOutput{}, err
	}
	text := engine.NormalizeJDText(input.JDText)
	if text == "" {
		return nil, AnalysisOutput{}, errors.New("jd_text has no readable text")
	}

	a := placement.Analyze(placement.Input{Company: input.Company, Role: input.Role, JDText: text}, t.now())
	engine.IncrAnalysesCreated()

	out := AnalysisOutput{Analysis: a, ActionNext: placement.WeakSkills(a, weakSkillsHint)}
	err := engine.TrackOperation(ctx, "history.save", 500*time.Millisecond, func(ctx context.Context) error {
		return t.store.History.Save(ctx, a)
	})
	if err != nil {
		slog.Warn("jd_analyze: history save failed", slog.String("id", a.ID), slog.Any("error", err))
		return nil, out, nil
	}
	out.Saved = true
	slog.Info("jd_analyze: saved",
		slog.String("id", a.ID),
		slog.String("size", string(a.CompanyIntel.Size)),
		slog.Int("base_score", a.BaseScore),
	)
	return nil, out, nil
}

// CompanyIntelInput is the company_intel request.
type CompanyIntelInput struct {
	Company string `json:"company" jsonschema:"Company name" validate:"required,max=200"`
	JDText  string `json:"jd_text,omitempty" jsonschema:"Optional job description used to tailor the round mapping"`
}

// CompanyIntelOutput is the classification plus the round mapping it implies.
type CompanyIntelOutput struct {
	Intel  placement.CompanyIntel `json:"intel"`
	Rounds []placement.RoundInfo  `json:"rounds"`
}

func (t *tools) companyIntel(_ context.Context, _ *mcp.CallToolRequest, input CompanyIntelInput) (*mcp.CallToolResult, CompanyIntelOutput, error) {
	if err := toolutil.Validate(input); err != nil {
		return nil, CompanyIntelOutput{}, err
	}
	intel := placement.CompanyIntelFor(input.Company)
	skills := placement.Extract(engine.NormalizeJDText(input.JDText))
	return nil, CompanyIntelOutput{
		Intel:  intel,
		Rounds: placement.GenerateRoundMapping(intel.Size, skills),
	}, nil
}

// HistoryInput is the analysis_history request.
type HistoryInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"Max entries to return (default: all)" validate:"min=0"`
}

// HistoryEntry is one analysis in the history listing.
type HistoryEntry struct {
	ID         string    `json:"id"`
	CreatedAt  time.Time `json:"created_at"`
	Company    string    `json:"company"`
	Role       string    `json:"role"`
	BaseScore  int       `json:"base_score"`
	FinalScore int       `json:"final_score"`
	Preview    string    `json:"preview"`
}

// HistoryOutput lists analyses newest first.
type HistoryOutput struct {
	Entries []HistoryEntry `json:"entries"`
	Total   int            `json:"total"`
	Skipped int            `json:"skipped,omitempty"`
	Notice  string         `json:"notice,omitempty"`
}

func (t *tools) history(ctx context.Context, _ *mcp.CallToolRequest, input HistoryInput) (*mcp.CallToolResult, HistoryOutput, error) {
	if err := toolutil.Validate(input); err != nil {
		return nil, HistoryOutput{}, err
	}
	list, skipped, err := t.store.History.List(ctx)
	if err != nil {
		slog.Warn("analysis_history: list failed", slog.Any("error", err))
	}
	out := HistoryOutput{Entries: []HistoryEntry{}, Total: len(list), Skipped: skipped}
	if skipped > 0 {
		out.Notice = fmt.Sprintf("%d saved entr%s couldn't be loaded.", skipped, plural(skipped, "y", "ies"))
	}
	for _, a := range list {
		if input.Limit > 0 && len(out.Entries) >= input.Limit {
			break
		}
		out.Entries = append(out.Entries, HistoryEntry{
			ID:         a.ID,
			CreatedAt:  a.CreatedAt,
			Company:    a.Company,
			Role:       a.Role,
			BaseScore:  a.BaseScore,
			FinalScore: a.FinalScore,
			Preview:    engine.Preview(a.JDText, previewLen),
		})
	}
	return nil, out, nil
}

// AnalysisIDInput addresses one saved analysis.
type AnalysisIDInput struct {
	ID string `json:"id" jsonschema:"Analysis ID from analysis_history" validate:"required"`
}

func (t *tools) getAnalysis(ctx context.Context, _ *mcp.CallToolRequest, input AnalysisIDInput) (*mcp.CallToolResult, AnalysisOutput, error) {
	if err := toolutil.Validate(input); err != nil {
		return nil, AnalysisOutput{}, err
	}
	a, err := t.store.History.Get(ctx, input.ID)
	if err != nil {
		return nil, AnalysisOutput{}, err
	}
	return nil, AnalysisOutput{Analysis: a, ActionNext: placement.WeakSkills(a, weakSkillsHint), Saved: true}, nil
}

// DeleteOutput confirms a deletion.
type DeleteOutput struct {
	ID      string `json:"id"`
	Deleted bool   `json:"deleted"`
}

func (t *tools) deleteAnalysis(ctx context.Context, _ *mcp.CallToolRequest, input AnalysisIDInput) (*mcp.CallToolResult, DeleteOutput, error) {
	if err := toolutil.Validate(input); err != nil {
		return nil, DeleteOutput{}, err
	}
	if err := t.store.History.Delete(ctx, input.ID); err != nil {
		return nil, DeleteOutput{}, err
	}
	return nil, DeleteOutput{ID: input.ID, Deleted: true}, nil
}

// ConfidenceInput is the skill_confidence_set request.
type ConfidenceInput struct {
	ID         string `json:"id" jsonschema:"Analysis ID" validate:"required"`
	Skill      string `json:"skill" jsonschema:"Extracted skill name, e.g. React" validate:"required"`
	Confidence string `json:"confidence" jsonschema:"know or practice" validate:"confidence"`
}

// ConfidenceOutput reports the recomputed score.
type ConfidenceOutput struct {
	ID         string               `json:"id"`
	Skill      string               `json:"skill"`
	Confidence placement.Confidence `json:"confidence"`
	BaseScore  int                  `json:"base_score"`
	FinalScore int                  `json:"final_score"`
	ActionNext []string             `json:"action_next,omitempty"`
}

func (t *tools) setConfidence(ctx context.Context, _ *mcp.CallToolRequest, input ConfidenceInput) (*mcp.CallToolResult, ConfidenceOutput, error) {
	if err := toolutil.Validate(input); err != nil {
		return nil, ConfidenceOutput{}, err
	}
	c, err := placement.ParseConfidence(input.Confidence)
	if err != nil {
		return nil, ConfidenceOutput{}, err
	}
	a, err := t.store.History.SetConfidence(ctx, input.ID, input.Skill, c)
	if err != nil {
		return nil, ConfidenceOutput{}, err
	}
	engine.IncrConfidenceToggles()
	return nil, ConfidenceOutput{
		ID:         a.ID,
		Skill:      input.Skill,
		Confidence: c,
		BaseScore:  a.BaseScore,
		FinalScore: a.FinalScore,
		ActionNext: placement.WeakSkills(a, weakSkillsHint),
	}, nil
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
