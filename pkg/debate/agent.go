package debate

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"time"

	"DebateRehearsal/pkg/llm"
	"DebateRehearsal/pkg/logger"
	"DebateRehearsal/pkg/prompts"
)

// Generator is the prompt-in/string-out contract of the generation service.
// *llm.Client satisfies it; tests substitute deterministic stubs.
type Generator interface {
	Generate(ctx context.Context, prompt string, opts llm.Options) (string, error)
}

// Agent is the public contract both debater variants satisfy, so the driver
// can swap them transparently. BuildRehearsalTree and SelectBestPath are
// exposed independently for end-of-debate diagnostic traces.
type Agent interface {
	Position() string
	GenerateResponse(ctx context.Context, opponentStatement string) (string, error)
	BuildRehearsalTree(ctx context.Context, statement string) *Node
	SelectBestPath(root *Node) []*Node
}

// Config holds a debater's fixed configuration. Immutable after
// construction; validated fail-fast because bad values are programmer error,
// not runtime conditions.
type Config struct {
	Position      string      // debating position label, e.g. "PRO"
	KnowledgeBase []string    // fact strings sampled into prompts
	MaxDepth      int         // rehearsal tree depth, >= 0
	MaxBreadth    int         // candidates per node, >= 1
	SampleSize    int         // facts per baseline prompt (default 2)
	MaxSentences  int         // response length cap (default 3)
	GenOptions    llm.Options // generation parameters for candidate calls
}

func (c *Config) applyDefaults() {
	if c.SampleSize == 0 {
		c.SampleSize = 2
	}
	if c.MaxSentences == 0 {
		c.MaxSentences = 3
	}
}

// Validate reports the first configuration error, if any.
func (c Config) Validate() error {
	if c.Position == "" {
		return fmt.Errorf("position must not be empty")
	}
	if c.MaxDepth < 0 {
		return fmt.Errorf("max depth must be >= 0, got %d", c.MaxDepth)
	}
	if c.MaxBreadth < 1 {
		return fmt.Errorf("max breadth must be >= 1, got %d", c.MaxBreadth)
	}
	if len(c.KnowledgeBase) == 0 {
		return fmt.Errorf("knowledge base must not be empty")
	}
	if c.SampleSize < 1 {
		return fmt.Errorf("sample size must be >= 1, got %d", c.SampleSize)
	}
	if c.SampleSize > len(c.KnowledgeBase) {
		return fmt.Errorf("sample size %d exceeds knowledge base size %d",
			c.SampleSize, len(c.KnowledgeBase))
	}
	return nil
}

// candidatePrompter builds the prompt for one candidate rebuttal. The
// baseline debater and the theory-of-mind debater differ only here and in
// the pre-generation model update.
type candidatePrompter interface {
	candidatePrompt(statement string) string
}

// Option customizes debater construction.
type Option func(*Debater)

// WithRand injects a seeded random source so knowledge sampling (and thus
// whole trees) are reproducible.
func WithRand(rng *rand.Rand) Option {
	return func(d *Debater) { d.rng = rng }
}

// WithScorer replaces the default rubric scorer.
func WithScorer(s Scorer) Option {
	return func(d *Debater) { d.scorer = s }
}

// Debater is the baseline agent: rehearsal tree plus greedy path selection,
// no opponent modeling.
type Debater struct {
	cfg      Config
	gen      Generator
	scorer   Scorer
	rng      *rand.Rand
	prompter candidatePrompter
}

// NewDebater creates a baseline debater. Configuration errors surface here,
// never at generation time.
func NewDebater(cfg Config, gen Generator, opts ...Option) (*Debater, error) {
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid debater config: %w", err)
	}
	if gen == nil {
		return nil, fmt.Errorf("generator must not be nil")
	}

	d := &Debater{
		cfg:    cfg,
		gen:    gen,
		scorer: NewRubricScorer(gen, cfg.GenOptions),
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	d.prompter = d
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// Position returns the debating position label.
func (d *Debater) Position() string { return d.cfg.Position }

// GenerateResponse builds a rehearsal tree rooted at the opponent's
// statement, selects the best path, and returns the first real candidate on
// it. With MaxDepth 0 there is no candidate, so the seed's own content comes
// back. That is an edge case, not a failure.
func (d *Debater) GenerateResponse(ctx context.Context, opponentStatement string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	tree := d.BuildRehearsalTree(ctx, opponentStatement)
	path := d.SelectBestPath(tree)
	if len(path) < 2 {
		logger.Warnf("%s: no rebuttal generated (depth %d), echoing seed", d.cfg.Position, d.cfg.MaxDepth)
		return path[0].Content, nil
	}
	return path[1].Content, nil
}

// SelectBestPath extracts the best root-to-leaf path from a built tree.
func (d *Debater) SelectBestPath(root *Node) []*Node {
	return SelectBestPath(root)
}

// candidatePrompt implements candidatePrompter for the baseline variant.
func (d *Debater) candidatePrompt(statement string) string {
	facts := d.sampleFacts(d.cfg.SampleSize)
	return prompts.Rebuttal(d.cfg.Position, statement, facts, d.cfg.MaxSentences)
}

// sampleFacts draws n knowledge-base facts without replacement.
func (d *Debater) sampleFacts(n int) []string {
	idx := d.rng.Perm(len(d.cfg.KnowledgeBase))
	facts := make([]string, 0, n)
	for _, i := range idx[:n] {
		facts = append(facts, d.cfg.KnowledgeBase[i])
	}
	return facts
}

// TheoryOfMindDebater is the enhanced agent: before each response it
// refreshes a belief state about the opponent and biases candidate prompts
// with that state.
type TheoryOfMindDebater struct {
	*Debater
	model OpponentModel
}

// NewTheoryOfMindDebater creates the enhanced debater. The opponent model
// starts neutral and persists across the debate.
func NewTheoryOfMindDebater(cfg Config, gen Generator, opts ...Option) (*TheoryOfMindDebater, error) {
	base, err := NewDebater(cfg, gen, opts...)
	if err != nil {
		return nil, err
	}

	t := &TheoryOfMindDebater{
		Debater: base,
		model:   NewOpponentModel(),
	}
	base.prompter = t
	return t, nil
}

// GenerateResponse refreshes the opponent model from the statement, then
// proceeds exactly as the baseline: every candidate generated for this round
// sees the freshly inferred state.
func (t *TheoryOfMindDebater) GenerateResponse(ctx context.Context, opponentStatement string) (string, error) {
	t.UpdateOpponentModel(ctx, opponentStatement)
	return t.Debater.GenerateResponse(ctx, opponentStatement)
}

// UpdateOpponentModel asks the generation service to analyze the statement
// and merges well-typed fields into the model. On any service or parse
// failure the model is left completely unchanged.
func (t *TheoryOfMindDebater) UpdateOpponentModel(ctx context.Context, statement string) {
	out, err := t.gen.Generate(ctx, prompts.OpponentAnalysis(statement), t.cfg.GenOptions)
	if err != nil {
		logger.Debugf("%s: opponent analysis failed, keeping previous model: %v", t.cfg.Position, err)
		return
	}

	raw := extractJSONObject(out)
	if raw == "" {
		return
	}

	var analysis opponentAnalysis
	if err := json.Unmarshal([]byte(raw), &analysis); err != nil {
		logger.Debugf("%s: opponent analysis unparseable, keeping previous model: %v", t.cfg.Position, err)
		return
	}

	t.model.merge(analysis)
}

// OpponentModel returns a copy of the current belief state for diagnostics.
func (t *TheoryOfMindDebater) OpponentModel() OpponentModel {
	return t.model.clone()
}

// candidatePrompt implements candidatePrompter for the enhanced variant: one
// sampled fact plus the opponent-model snapshot and derived strategy.
func (t *TheoryOfMindDebater) candidatePrompt(statement string) string {
	fact := t.sampleFacts(1)[0]

	weakness := ""
	if len(t.model.Weaknesses) > 0 {
		weakness = t.model.Weaknesses[0]
	}
	strategy := t.model.StrategyFor()

	return prompts.StrategicRebuttal(
		t.cfg.Position, statement, fact,
		string(t.model.EmotionalState), string(t.model.ArgumentStyle),
		t.model.Beliefs, weakness,
		strategy.Tone, strategy.Approach,
		t.cfg.MaxSentences,
	)
}
