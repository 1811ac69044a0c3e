// Package viz renders built rehearsal trees to Graphviz DOT files and,
// when the dot binary is available, to PNG diagrams. Rendering is a
// best-effort diagnostic: failures are reported but must never abort a
// debate.
package viz

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"DebateRehearsal/pkg/debate"
	"DebateRehearsal/pkg/logger"
	"DebateRehearsal/pkg/utils"
)

// labelLimit bounds how much node content appears in a diagram label.
const labelLimit = 50

// WriteDOT writes the tree as a Graphviz digraph. Node labels carry the
// score and a content excerpt.
func WriteDOT(root *debate.Node, w io.Writer) error {
	if root == nil {
		return fmt.Errorf("nil tree")
	}

	if _, err := fmt.Fprintln(w, "digraph rehearsal {"); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, `  node [shape=box, fontsize=10];`); err != nil {
		return err
	}

	next := 0
	var emit func(n *debate.Node) (int, error)
	emit = func(n *debate.Node) (int, error) {
		id := next
		next++
		if _, err := fmt.Fprintf(w, "  n%d [label=%q];\n", id, nodeLabel(n)); err != nil {
			return 0, err
		}
		for _, c := range n.Children {
			childID, err := emit(c)
			if err != nil {
				return 0, err
			}
			if _, err := fmt.Fprintf(w, "  n%d -> n%d;\n", id, childID); err != nil {
				return 0, err
			}
		}
		return id, nil
	}

	if _, err := emit(root); err != nil {
		return err
	}

	_, err := fmt.Fprintln(w, "}")
	return err
}

func nodeLabel(n *debate.Node) string {
	content := utils.CollapseWhitespace(n.Content)
	if len([]rune(content)) > labelLimit {
		content = utils.Truncate(content, labelLimit) + "..."
	}
	return fmt.Sprintf("%.2f | %s", n.Score, content)
}

// SaveTree writes <name>.dot under dir and attempts to render <name>.png via
// the dot binary. A missing or failing renderer degrades to a warning; only
// the DOT write itself can fail.
func SaveTree(root *debate.Node, dir, name string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	dotPath := filepath.Join(dir, name+".dot")
	var sb strings.Builder
	if err := WriteDOT(root, &sb); err != nil {
		return "", err
	}
	if err := os.WriteFile(dotPath, []byte(sb.String()), 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", dotPath, err)
	}
	logger.Debugf("tree saved as %s", dotPath)

	pngPath := filepath.Join(dir, name+".png")
	if err := renderPNG(dotPath, pngPath); err != nil {
		logger.Warnf("tree render skipped (%v)", err)
		return dotPath, nil
	}
	logger.Infof("tree diagram saved as %s", pngPath)
	return dotPath, nil
}

func renderPNG(dotPath, pngPath string) error {
	dotBin, err := exec.LookPath("dot")
	if err != nil {
		return fmt.Errorf("graphviz not installed")
	}

	cmd := exec.Command(dotBin, "-Tpng", dotPath, "-o", pngPath)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("dot failed: %v: %s", err, strings.TrimSpace(string(out)))
	}
	return nil
}
