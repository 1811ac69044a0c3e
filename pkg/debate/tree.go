package debate

import (
	"context"
	"fmt"

	"DebateRehearsal/pkg/logger"
)

// BuildRehearsalTree expands a statement into a bounded tree of candidate
// rebuttals: MaxBreadth candidates per node, MaxDepth plies deep, expanded
// sequentially left-to-right so a seeded random source reproduces the exact
// tree.
//
// Scoring policy: every node, the root included, is scored at creation. The
// selector compares children by their own score, so internal nodes need real
// scores, not zero placeholders.
func (d *Debater) BuildRehearsalTree(ctx context.Context, statement string) *Node {
	root := &Node{Content: statement}
	d.expand(ctx, root, d.cfg.MaxDepth)
	return root
}

func (d *Debater) expand(ctx context.Context, node *Node, depth int) {
	node.Score = d.scorer.Score(ctx, node.Content)
	if depth == 0 {
		return
	}

	for i := 0; i < d.cfg.MaxBreadth; i++ {
		child := &Node{Content: d.generateCandidate(ctx, node.Content)}
		node.Children = append(node.Children, child)
		d.expand(ctx, child, depth-1)
	}
}

// generateCandidate produces one candidate rebuttal to the given statement.
// A failed generation still materializes a candidate (best-effort error
// text) so the tree always completes with uniform shape; a partial tree
// would break the selector's invariants.
func (d *Debater) generateCandidate(ctx context.Context, statement string) string {
	prompt := d.prompter.candidatePrompt(statement)

	out, err := d.gen.Generate(ctx, prompt, d.cfg.GenOptions)
	if err != nil {
		logger.Warnf("%s: candidate generation failed, materializing error text: %v", d.cfg.Position, err)
		return fmt.Sprintf("API Error: %v", err)
	}
	return out
}
