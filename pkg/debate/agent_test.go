package debate

import (
	"context"
	"strings"
	"testing"

	"DebateRehearsal/pkg/llm"
)

// recordingGen captures every prompt it receives.
type recordingGen struct{ prompts []string }

func (g *recordingGen) Generate(ctx context.Context, prompt string, opts llm.Options) (string, error) {
	g.prompts = append(g.prompts, prompt)
	return "ok", nil
}

func TestConfigValidate(t *testing.T) {
	valid := Config{
		Position:      "PRO",
		KnowledgeBase: []string{"a", "b"},
		MaxDepth:      2,
		MaxBreadth:    2,
		SampleSize:    2,
		MaxSentences:  3,
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"empty position", func(c *Config) { c.Position = "" }, "position"},
		{"negative depth", func(c *Config) { c.MaxDepth = -1 }, "max depth"},
		{"zero breadth", func(c *Config) { c.MaxBreadth = 0 }, "max breadth"},
		{"empty knowledge base", func(c *Config) { c.KnowledgeBase = nil }, "knowledge base"},
		{"sample exceeds knowledge", func(c *Config) { c.SampleSize = 5 }, "sample size"},
		{"zero depth is fine", func(c *Config) { c.MaxDepth = 0 }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %v, want error mentioning %q", err, tt.wantErr)
			}
		})
	}
}

func TestNewDebater_NilGenerator(t *testing.T) {
	_, err := NewDebater(Config{
		Position:      "PRO",
		KnowledgeBase: []string{"a"},
		MaxBreadth:    1,
		SampleSize:    1,
	}, nil)
	if err == nil {
		t.Fatal("NewDebater accepted a nil generator")
	}
}

// TestGenerateResponse_PicksBestFirstStep walks the whole engine on a
// depth-2, breadth-2 tree with deterministic stubs. Candidates are numbered
// in creation order (1..6) and scored 0.2..0.7 in the same order, so the
// greedy path is root -> candidate 4 -> candidate 6 and the committed
// response is candidate 4.
func TestGenerateResponse_PicksBestFirstStep(t *testing.T) {
	d := newTestDebater(t, 2, 2, &countingGen{}, &seqScorer{}, 1)

	tree := d.BuildRehearsalTree(context.Background(), "the seed")
	path := d.SelectBestPath(tree)

	want := []string{"the seed", "candidate 4", "candidate 6"}
	if len(path) != len(want) {
		t.Fatalf("path length = %d, want %d", len(path), len(want))
	}
	for i, n := range path {
		if n.Content != want[i] {
			t.Errorf("path[%d] = %q, want %q", i, n.Content, want[i])
		}
	}

	// Same stubs, fresh state: GenerateResponse commits to the first step.
	d2 := newTestDebater(t, 2, 2, &countingGen{}, &seqScorer{}, 1)
	got, err := d2.GenerateResponse(context.Background(), "the seed")
	if err != nil {
		t.Fatalf("GenerateResponse failed: %v", err)
	}
	if got != "candidate 4" {
		t.Errorf("GenerateResponse = %q, want candidate 4", got)
	}
}

func TestGenerateResponse_DepthZeroEchoesSeed(t *testing.T) {
	d := newTestDebater(t, 0, 2, &countingGen{}, fixedScorer{0.5}, 1)
	got, err := d.GenerateResponse(context.Background(), "original statement")
	if err != nil {
		t.Fatalf("GenerateResponse failed: %v", err)
	}
	if got != "original statement" {
		t.Errorf("GenerateResponse = %q, want the seed back", got)
	}
}

func TestGenerateResponse_CancelledContext(t *testing.T) {
	d := newTestDebater(t, 2, 2, &countingGen{}, fixedScorer{0.5}, 1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := d.GenerateResponse(ctx, "seed"); err == nil {
		t.Fatal("GenerateResponse succeeded on a cancelled context")
	}
}

func TestDefaults(t *testing.T) {
	d, err := NewDebater(Config{
		Position:      "PRO",
		KnowledgeBase: []string{"a", "b", "c"},
		MaxDepth:      1,
		MaxBreadth:    1,
	}, &countingGen{})
	if err != nil {
		t.Fatalf("NewDebater failed: %v", err)
	}
	if d.cfg.SampleSize != 2 {
		t.Errorf("default SampleSize = %d, want 2", d.cfg.SampleSize)
	}
	if d.cfg.MaxSentences != 3 {
		t.Errorf("default MaxSentences = %d, want 3", d.cfg.MaxSentences)
	}
}

func TestTheoryOfMind_PromptReflectsStrategy(t *testing.T) {
	analysis := `{"emotional_state": "angry", "argument_style": "emotional",
		"beliefs": ["tech fixes everything"], "weaknesses": ["no sources"]}`
	tom := newTestToM(t, staticGen{out: analysis})
	tom.UpdateOpponentModel(context.Background(), "opening statement")

	prompt := tom.candidatePrompt("your move")
	for _, fragment := range []string{"angry", "emotional", "calm", "no sources", "tech fixes everything"} {
		if !strings.Contains(prompt, fragment) {
			t.Errorf("strategic prompt missing %q:\n%s", fragment, prompt)
		}
	}
}

func TestTheoryOfMind_UsesOwnPrompter(t *testing.T) {
	// The embedded baseline must dispatch candidate prompts through the
	// enhanced variant, not its own template.
	gen := &recordingGen{}
	tom, err := NewTheoryOfMindDebater(Config{
		Position:      "CON",
		KnowledgeBase: []string{"fact one"},
		MaxDepth:      1,
		MaxBreadth:    1,
		SampleSize:    1,
	}, gen, WithScorer(fixedScorer{0.5}))
	if err != nil {
		t.Fatalf("NewTheoryOfMindDebater failed: %v", err)
	}

	tom.BuildRehearsalTree(context.Background(), "statement")

	if len(gen.prompts) == 0 {
		t.Fatal("no candidate prompts were generated")
	}
	if !strings.Contains(gen.prompts[0], "Strategy:") {
		t.Errorf("candidate prompt is not the strategic template:\n%s", gen.prompts[0])
	}
}
