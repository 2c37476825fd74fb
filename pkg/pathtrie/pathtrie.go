// Package pathtrie implements the set-of-relative-paths data structure used
// to represent the copy-set and delete-set produced by the sync engine. It
// is keyed by path component strings (as opposed to patterntrie, which is
// keyed by compiled patterns) and supports membership, insertion, and
// removal, plus a flattening operation for callers (the driver, tests) that
// want a plain slice of paths.
package pathtrie

import "strings"

// Trie is a tree whose edges are path-component strings and whose terminal
// marker denotes that the path leading to a node is present in the set. The
// zero value is an empty, ready-to-use trie.
type Trie struct {
	children map[string]*Trie
	present  bool
}

// New creates an empty Trie.
func New() *Trie {
	return &Trie{}
}

// splitPath splits a '/'-separated relative path into its components. An
// empty path yields no components (the root itself).
func splitPath(path string) []string {
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}

// Insert adds path (relative to the trie's root) to the set.
func (t *Trie) Insert(path string) {
	current := t
	for _, component := range splitPath(path) {
		if current.children == nil {
			current.children = make(map[string]*Trie)
		}
		child, ok := current.children[component]
		if !ok {
			child = &Trie{}
			current.children[component] = child
		}
		current = child
	}
	current.present = true
}

// Contains reports whether path is present in the set.
func (t *Trie) Contains(path string) bool {
	node := t.walk(path)
	return node != nil && node.present
}

// Remove clears the presence marker for path, if any. It does not prune
// now-unreachable intermediate nodes; this trades a small amount of
// memory for simplicity, since the tries in this package are short-lived
// (scoped to a single sync call).
func (t *Trie) Remove(path string) {
	if node := t.walk(path); node != nil {
		node.present = false
	}
}

// walk returns the node at path, or nil if no such node exists.
func (t *Trie) walk(path string) *Trie {
	current := t
	for _, component := range splitPath(path) {
		if current == nil || current.children == nil {
			return nil
		}
		current = current.children[component]
	}
	return current
}

// Paths returns every present path in the set, in no particular order.
func (t *Trie) Paths() []string {
	var out []string
	t.collect("", &out)
	return out
}

func (t *Trie) collect(prefix string, out *[]string) {
	if t == nil {
		return
	}
	if t.present {
		*out = append(*out, prefix)
	}
	for component, child := range t.children {
		next := component
		if prefix != "" {
			next = prefix + "/" + component
		}
		child.collect(next, out)
	}
}

// Len returns the number of present paths in the set.
func (t *Trie) Len() int {
	return len(t.Paths())
}
