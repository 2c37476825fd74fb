// Package classify implements the Matcher: per-path classification against
// a pair of pattern tries, and recursive classification over a directory
// tree into copy-candidate and exclude path sets.
package classify

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/pathsync/pathsync/pkg/patterntrie"
	"github.com/pathsync/pathsync/pkg/pathtrie"
)

// Class is the classification verdict for a single path.
type Class uint8

const (
	// Included indicates the path matched a strictly longer prefix in the
	// include trie than in the exclude trie.
	Included Class = iota
	// Excluded indicates the path matched a strictly longer prefix in the
	// exclude trie than in the include trie.
	Excluded
	// Both indicates the include and exclude frontiers collapsed at the
	// same depth (including the degenerate case of an empty path against
	// two non-empty tries). Resolution is deferred to the caller.
	Both
)

// String renders a Class for diagnostics.
func (c Class) String() string {
	switch c {
	case Included:
		return "included"
	case Excluded:
		return "excluded"
	case Both:
		return "both"
	default:
		return "unknown"
	}
}

// Matcher owns an include trie and an exclude trie. It is immutable after
// construction and trivially shareable across classification calls; it
// holds no mutable state of its own.
type Matcher struct {
	include *patterntrie.Node
	exclude *patterntrie.Node
}

// New creates a Matcher from a pre-populated include/exclude trie pair.
func New(include, exclude *patterntrie.Node) *Matcher {
	return &Matcher{include: include, exclude: exclude}
}

// Classify classifies relativePath against the matcher's pair of tries by
// simulating both frontiers simultaneously, advancing one path component at
// a time, and returning as soon as one frontier (but not the other) is
// exhausted. If both frontiers exhaust on the same component, or relativePath
// has no components at all, the result is Both.
//
// This must track every node in each frontier layer, not just a single
// branch: multiple alternative rules (e.g. "foo" and "fo*" under the same
// parent) can simultaneously match the same component, and a reimplementation
// that collapses the frontier to one node will silently misclassify such
// inputs.
func (m *Matcher) Classify(relativePath string) Class {
	includeFrontier := []*patterntrie.Node{m.include}
	excludeFrontier := []*patterntrie.Node{m.exclude}

	if relativePath == "" {
		return Both
	}

	for _, component := range strings.Split(relativePath, "/") {
		includeFrontier = advance(includeFrontier, component)
		excludeFrontier = advance(excludeFrontier, component)

		includeEmpty := len(includeFrontier) == 0
		excludeEmpty := len(excludeFrontier) == 0

		switch {
		case includeEmpty && excludeEmpty:
			return Both
		case includeEmpty:
			return Excluded
		case excludeEmpty:
			return Included
		}
	}

	return Both
}

// advance expands every node in frontier by matching component against its
// outgoing edges, returning the union of results. This is the BFS layer
// expansion that tracks every still-viable rule in parallel.
func advance(frontier []*patterntrie.Node, component string) []*patterntrie.Node {
	var next []*patterntrie.Node
	for _, node := range frontier {
		next = append(next, node.Advance(component)...)
	}
	return next
}

// Result is the output of ClassifyRecursive: two disjoint sets of paths,
// relative to root, destined for inclusion or exclusion.
type Result struct {
	Include *pathtrie.Trie
	Exclude *pathtrie.Trie
}

// ClassifyRecursive walks the filesystem subtree rooted at root and
// dispatches every entry found beneath it into Result.Include or
// Result.Exclude.
//
// A directory classified as Included or Excluded dominates its entire
// subtree: every file beneath it is placed into the corresponding set
// without being individually reclassified, which is both a performance
// optimization and the semantic mechanism by which a single rule (e.g. a
// glob matching "docs") can govern an entire subtree. A directory classified
// as Both is, by contrast, ambiguous only at that level; its immediate
// children are classified individually. A file classified as Both is routed
// according to includeByDefault.
//
// I/O errors encountered while reading directories are propagated
// immediately; ClassifyRecursive never returns a partially populated Result
// alongside a non-nil error.
func (m *Matcher) ClassifyRecursive(root string, includeByDefault bool) (*Result, error) {
	result := &Result{Include: pathtrie.New(), Exclude: pathtrie.New()}

	info, err := os.Lstat(root)
	if err != nil {
		return nil, errors.Wrap(err, "unable to stat root")
	}
	if !info.IsDir() {
		return nil, errors.Errorf("root %q is not a directory", root)
	}

	if err := m.classifyDirectoryChildren(root, "", includeByDefault, result); err != nil {
		return nil, err
	}

	return result, nil
}

// classifyDirectoryChildren classifies each immediate child of the
// directory at root+relDir (relDir being relative to root, possibly empty
// for the root itself).
func (m *Matcher) classifyDirectoryChildren(root, relDir string, includeByDefault bool, result *Result) error {
	absDir := filepath.Join(root, relDir)
	entries, err := os.ReadDir(absDir)
	if err != nil {
		return errors.Wrapf(err, "unable to read directory %q", absDir)
	}

	for _, entry := range entries {
		relPath := entry.Name()
		if relDir != "" {
			relPath = relDir + "/" + entry.Name()
		}

		isDir := entry.IsDir()
		class := m.Classify(relPath)

		switch class {
		case Included:
			if isDir {
				if err := m.insertAllFiles(root, relPath, result.Include); err != nil {
					return err
				}
			} else {
				result.Include.Insert(relPath)
			}
		case Excluded:
			if isDir {
				if err := m.insertAllFiles(root, relPath, result.Exclude); err != nil {
					return err
				}
			} else {
				result.Exclude.Insert(relPath)
			}
		case Both:
			if isDir {
				if err := m.classifyDirectoryChildren(root, relPath, includeByDefault, result); err != nil {
					return err
				}
			} else if includeByDefault {
				result.Include.Insert(relPath)
			} else {
				result.Exclude.Insert(relPath)
			}
		}
	}

	return nil
}

// insertAllFiles walks every file (non-directory entry) beneath root+relDir
// and inserts its path (relative to root) into dest, without reclassifying
// any of them. It implements directory dominance: the directory at relDir
// has already been classified, so every descendant file inherits that
// classification unconditionally.
func (m *Matcher) insertAllFiles(root, relDir string, dest *pathtrie.Trie) error {
	absDir := filepath.Join(root, relDir)
	return filepath.WalkDir(absDir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return errors.Wrapf(err, "unable to walk %q", path)
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return errors.Wrapf(err, "unable to relativize %q", path)
		}
		dest.Insert(filepath.ToSlash(rel))
		return nil
	})
}
