package debate

import (
	"context"
	"encoding/json"
	"strings"

	"DebateRehearsal/pkg/llm"
	"DebateRehearsal/pkg/logger"
	"DebateRehearsal/pkg/prompts"
)

// Rubric weights. Logic carries the most weight; evidence and
// persuasiveness split the rest.
const (
	weightLogic          = 0.4
	weightEvidence       = 0.3
	weightPersuasiveness = 0.3

	// fallbackScore is returned whenever the rating cannot be obtained or
	// parsed. A fixed neutral value keeps path selection deterministic.
	fallbackScore = 0.5
)

// Scorer rates a response and returns a normalized quality value in [0,1].
// Implementations must never fail: any service or parse error degrades to a
// fallback value.
type Scorer interface {
	Score(ctx context.Context, response string) float64
}

// RubricScorer asks the generation service to rate a response for logic,
// evidence, and persuasiveness on a 1-10 scale, then reduces the three
// ratings to a single weighted score.
type RubricScorer struct {
	gen  Generator
	opts llm.Options
}

// NewRubricScorer creates a scorer backed by the given generator. opts are
// passed through to every rating call.
func NewRubricScorer(gen Generator, opts llm.Options) *RubricScorer {
	return &RubricScorer{gen: gen, opts: opts}
}

// Score implements Scorer. It never returns an error and never panics;
// malformed or missing ratings yield the fallback score.
func (s *RubricScorer) Score(ctx context.Context, response string) float64 {
	analysis, err := s.gen.Generate(ctx, prompts.Rating(response), s.opts)
	if err != nil {
		logger.Debugf("rating call failed, using fallback score: %v", err)
		return fallbackScore
	}

	var rating struct {
		Logic          *float64 `json:"logic"`
		Evidence       *float64 `json:"evidence"`
		Persuasiveness *float64 `json:"persuasiveness"`
	}

	raw := extractJSONObject(analysis)
	if raw == "" {
		return fallbackScore
	}
	if err := json.Unmarshal([]byte(raw), &rating); err != nil {
		return fallbackScore
	}
	if rating.Logic == nil || rating.Evidence == nil || rating.Persuasiveness == nil {
		return fallbackScore
	}

	score := (*rating.Logic*weightLogic +
		*rating.Evidence*weightEvidence +
		*rating.Persuasiveness*weightPersuasiveness) / 10

	return clamp01(score)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// extractJSONObject pulls the first top-level JSON object out of model
// output. Models routinely wrap JSON in markdown fences or surround it with
// prose; both are tolerated. Returns "" when no object is present.
func extractJSONObject(s string) string {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start == -1 || end == -1 || end < start {
		return ""
	}
	return s[start : end+1]
}
