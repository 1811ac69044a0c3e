package debate

// SelectBestPath walks a built rehearsal tree and returns the root-to-leaf
// path that greedily maximizes each child's own score. Ties go to the
// first-encountered child, so insertion (generation) order is the stable
// tie-break. A childless root yields a single-node path, which callers must
// treat as "no rebuttal generated".
//
// Greedy-by-own-score is the selection policy for the whole engine: the
// debate commits only to the path's first step, so a strong opening move
// matters more than a strong deep leaf reached through a weak one.
func SelectBestPath(root *Node) []*Node {
	if root == nil {
		return nil
	}

	path := []*Node{root}
	node := root
	for len(node.Children) > 0 {
		best := node.Children[0]
		for _, c := range node.Children[1:] {
			if c.Score > best.Score {
				best = c
			}
		}
		path = append(path, best)
		node = best
	}
	return path
}
