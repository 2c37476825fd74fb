// Package patterntrie implements the rule tree that backs an include or
// exclude side of a Matcher. A PatternTrie is keyed by pattern.Pattern
// rather than by string, so that a literal rule and a glob rule occupying
// the same conceptual position in the tree are tracked as distinct edges,
// each able to have its own children and terminal marking.
package patterntrie

import "github.com/pathsync/pathsync/pkg/pattern"

// Node is a node in a PatternTrie. The zero value is an empty, non-terminal
// root node ready for use.
type Node struct {
	children map[pattern.Pattern]*Node
	terminal bool
}

// New creates an empty PatternTrie root.
func New() *Node {
	return &Node{}
}

// Insert walks or creates the edge path described by segments, starting
// from n, and marks the final node terminal. Re-inserting the same segment
// sequence is idempotent: the trie is left unchanged beyond the (already
// present) terminal marker.
func (n *Node) Insert(segments []pattern.Pattern) {
	current := n
	for _, segment := range segments {
		if current.children == nil {
			current.children = make(map[pattern.Pattern]*Node)
		}
		child, ok := current.children[segment]
		if !ok {
			child = &Node{}
			current.children[segment] = child
		}
		current = child
	}
	current.terminal = true
}

// Terminal reports whether a complete rule ends at this node.
func (n *Node) Terminal() bool {
	return n != nil && n.terminal
}

// Advance returns the set of children reachable from n by matching
// component against every outgoing edge pattern. It is the single-node
// building block of the frontier expansion used by the classifier: the
// frontier for a whole path is the union of Advance results over every node
// in the previous frontier.
func (n *Node) Advance(component string) []*Node {
	if n == nil || len(n.children) == 0 {
		return nil
	}
	var next []*Node
	for edge, child := range n.children {
		if edge.Matches(component) {
			next = append(next, child)
		}
	}
	return next
}
