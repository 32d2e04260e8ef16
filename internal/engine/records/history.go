package records

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/anatolykoptev/go_placement/internal/engine"
	"github.com/anatolykoptev/go_placement/internal/engine/placement"
)

// History is the newest-first list of saved analyses.
type History struct {
	*base
}

// loadRaw returns the stored entries undecoded so corrupt ones survive
// rewrites of their neighbours. A malformed top-level value reads as empty.
func (h *History) loadRaw(ctx context.Context) ([]json.RawMessage, error) {
	entries, _, err := engine.LoadJSON[[]json.RawMessage](ctx, h.kv, KeyHistory)
	if errors.Is(err, engine.ErrMalformed) {
		slog.Warn("history: malformed record, treating as empty", slog.Any("error", err))
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// List returns every readable analysis, newest first, and the number of
// entries skipped because they could not be decoded.
func (h *History) List(ctx context.Context) ([]placement.Analysis, int, error) {
	entries, err := h.loadRaw(ctx)
	if err != nil {
		return nil, 0, err
	}
	out := make([]placement.Analysis, 0, len(entries))
	skipped := 0
	for i, raw := range entries {
		a, err := normalizeAnalysis(raw)
		if err != nil {
			skipped++
			engine.IncrMalformedRecords()
			slog.Warn("history: skipping corrupt entry", slog.Int("index", i), slog.Any("error", err))
			continue
		}
		out = append(out, a)
	}
	return out, skipped, nil
}

// Get returns the analysis with the given ID.
func (h *History) Get(ctx context.Context, id string) (*placement.Analysis, error) {
	entries, err := h.loadRaw(ctx)
	if err != nil {
		return nil, err
	}
	_, a, ok := findAnalysis(entries, id)
	if !ok {
		return nil, fmt.Errorf("analysis %q: %w", id, ErrNotFound)
	}
	return &a, nil
}

// Save prepends a to the history.
func (h *History) Save(ctx context.Context, a *placement.Analysis) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	entries, err := h.loadRaw(ctx)
	if err != nil {
		return err
	}
	data, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("encode analysis: %w", err)
	}
	entries = append([]json.RawMessage{data}, entries...)
	return engine.StoreJSON(ctx, h.kv, KeyHistory, entries)
}

// Delete removes the analysis with the given ID.
func (h *History) Delete(ctx context.Context, id string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	entries, err := h.loadRaw(ctx)
	if err != nil {
		return err
	}
	i, _, ok := findAnalysis(entries, id)
	if !ok {
		return fmt.Errorf("analysis %q: %w", id, ErrNotFound)
	}
	entries = append(entries[:i], entries[i+1:]...)
	return engine.StoreJSON(ctx, h.kv, KeyHistory, entries)
}

// SetConfidence flips one skill of a saved analysis, recomputes its final
// score and rewrites the entry in place.
func (h *History) SetConfidence(ctx context.Context, id, skill string, c placement.Confidence) (*placement.Analysis, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	entries, err := h.loadRaw(ctx)
	if err != nil {
		return nil, err
	}
	i, a, ok := findAnalysis(entries, id)
	if !ok {
		return nil, fmt.Errorf("analysis %q: %w", id, ErrNotFound)
	}
	if err := a.SetConfidence(skill, c, h.now()); err != nil {
		return nil, err
	}
	data, err := json.Marshal(a)
	if err != nil {
		return nil, fmt.Errorf("encode analysis: %w", err)
	}
	entries[i] = data
	if err := engine.StoreJSON(ctx, h.kv, KeyHistory, entries); err != nil {
		return nil, err
	}
	return &a, nil
}

func findAnalysis(entries []json.RawMessage, id string) (int, placement.Analysis, bool) {
	for i, raw := range entries {
		a, err := normalizeAnalysis(raw)
		if err != nil {
			continue
		}
		if a.ID == id {
			return i, a, true
		}
	}
	return -1, placement.Analysis{}, false
}
