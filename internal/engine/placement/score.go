package placement

import (
	"errors"
	"fmt"
	"strings"
)

// Readiness score weights.
const (
	readinessBase       = 35
	perCategoryBonus    = 5
	maxCategoryBonus    = 30
	companyBonus        = 10
	roleBonus           = 10
	longTextBonus       = 10
	longTextThreshold   = 800
	confidenceKnowDelta = 2
	maxScore            = 100
)

// Confidence is the user's self-assessment for one extracted skill.
type Confidence string

const (
	ConfidenceKnow     Confidence = "know"
	ConfidencePractice Confidence = "practice"
)

var (
	ErrUnknownSkill      = errors.New("skill is not part of this analysis")
	ErrInvalidConfidence = errors.New("confidence must be know or practice")
)

// ParseConfidence accepts "know" or "practice", case-insensitively.
func ParseConfidence(s string) (Confidence, error) {
	switch Confidence(strings.ToLower(strings.TrimSpace(s))) {
	case ConfidenceKnow:
		return ConfidenceKnow, nil
	case ConfidencePractice:
		return ConfidencePractice, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidConfidence, s)
}

// ScoreReadiness computes the base readiness score of a JD analysis.
func ScoreReadiness(extracted Skills, company, role string, textLength int) int {
	score := readinessBase
	score += min(extracted.RealCategoryCount()*perCategoryBonus, maxCategoryBonus)
	if strings.TrimSpace(company) != "" {
		score += companyBonus
	}
	if strings.TrimSpace(role) != "" {
		score += roleBonus
	}
	if textLength > longTextThreshold {
		score += longTextBonus
	}
	return min(score, maxScore)
}

// AdjustFinalScore recomputes the final score from scratch: +2 per known
// skill, -2 for everything else, clamped to 0..100.
func AdjustFinalScore(base int, confidence map[string]Confidence) int {
	score := base
	for _, c := range confidence {
		if c == ConfidenceKnow {
			score += confidenceKnowDelta
		} else {
			score -= confidenceKnowDelta
		}
	}
	return clampInt(score, 0, maxScore)
}

// DefaultConfidence marks every extracted skill as "practice".
func DefaultConfidence(s Skills) map[string]Confidence {
	m := make(map[string]Confidence)
	for _, skill := range s.All() {
		m[skill] = ConfidencePractice
	}
	return m
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
