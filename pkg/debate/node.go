// Package debate implements the rehearsal-tree debate engine: two LLM-driven
// agents that pick each utterance by expanding a bounded tree of candidate
// rebuttals, scoring them, and committing to the first step of the best path.
package debate

// Node is one candidate utterance at one ply of the rehearsal tree. The root
// holds the opponent's statement being rebutted; every other node holds a
// generated candidate. A node has either no children (leaf at the depth
// limit) or exactly the configured breadth. Nodes are not mutated after the
// build completes.
type Node struct {
	Content  string
	Children []*Node
	Score    float64
}

// IsLeaf reports whether the node has no children.
func (n *Node) IsLeaf() bool { return len(n.Children) == 0 }

// Size returns the total number of nodes in the subtree rooted at n.
func (n *Node) Size() int {
	if n == nil {
		return 0
	}
	total := 1
	for _, c := range n.Children {
		total += c.Size()
	}
	return total
}

// Height returns the number of edges from n to its deepest leaf. Trees built
// by BuildRehearsalTree are uniform, so this equals the configured max depth.
func (n *Node) Height() int {
	if n == nil || len(n.Children) == 0 {
		return 0
	}
	max := 0
	for _, c := range n.Children {
		if h := c.Height(); h > max {
			max = h
		}
	}
	return max + 1
}
