// Package syncengine orchestrates a full sync decision: it seeds a
// copy-candidate set from the source tree, walks the destination tree, and
// reconciles the two into a final (copy, delete) pair of path sets under a
// configurable delete policy and pluggable byte-comparison function.
package syncengine

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/pathsync/pathsync/pkg/classify"
	"github.com/pathsync/pathsync/pkg/compare"
	"github.com/pathsync/pathsync/pkg/pathtrie"
)

// DeleteReason names one of the three independent categories of destination
// file that may be eligible for deletion. DeleteBehaviour is a set over
// these, not an enum, so that callers compose policy freely.
type DeleteReason uint8

const (
	// IncludedNoEquiv: the destination file classifies as Included (per the
	// rules) but has no corresponding file under the source root.
	IncludedNoEquiv DeleteReason = iota
	// ExcludedEquiv: the destination file classifies as Excluded, but a
	// corresponding file does exist under the source root.
	ExcludedEquiv
	// ExcludedNoEquiv: the destination file classifies as anything other
	// than Included (Excluded or Both) and has no corresponding file under
	// the source root.
	ExcludedNoEquiv
)

// DeleteBehaviour is a set of DeleteReason flags controlling which
// categories of destination file the engine proposes for deletion.
type DeleteBehaviour map[DeleteReason]bool

// NewDeleteBehaviour constructs a DeleteBehaviour containing exactly the
// given reasons.
func NewDeleteBehaviour(reasons ...DeleteReason) DeleteBehaviour {
	b := make(DeleteBehaviour, len(reasons))
	for _, r := range reasons {
		b[r] = true
	}
	return b
}

// Has reports whether reason is a member of the set.
func (b DeleteBehaviour) Has(reason DeleteReason) bool {
	return b[reason]
}

// all reports whether every one of the three reasons is a member, the
// "delete everything extraneous" fast path.
func (b DeleteBehaviour) all() bool {
	return len(b) == 3
}

// Config is the read-only value bag the sync engine is driven by. It is
// constructed once per run and passed by value into Sync; the engine
// performs no mutation of it.
type Config struct {
	// SourceDir and DestDir are absolute directory paths for the two sides
	// of the sync.
	SourceDir string
	DestDir   string
	// Comparison determines file-content equivalence during reconciliation.
	// If nil, compare.Content{} is used.
	Comparison compare.Method
	// DeleteBehaviour controls which categories of destination file are
	// eligible for deletion.
	DeleteBehaviour DeleteBehaviour
	// IncludeByDefault is the tie-break applied to files that classify as
	// Both during the initial source classification.
	IncludeByDefault bool
}

// Result is the output of Sync: the final sets of paths (relative to their
// respective roots) to copy from source to destination, and to delete from
// destination. A path relative to DestDir never appears in both sets
// simultaneously.
type Result struct {
	Copy   *pathtrie.Trie
	Delete *pathtrie.Trie
}

// Sync computes the copy-set and delete-set for config using matcher to
// classify paths. It performs two filesystem walks (ClassifyRecursive over
// SourceDir internally, then an explicit walk of DestDir) and never returns
// a partially populated Result alongside a non-nil error: either both sets
// are fully computed, or an error is returned and both are nil.
func Sync(matcher *classify.Matcher, config Config) (*Result, error) {
	comparison := config.Comparison
	if comparison == nil {
		comparison = compare.Content{}
	}

	seed, err := matcher.ClassifyRecursive(config.SourceDir, config.IncludeByDefault)
	if err != nil {
		return nil, errors.Wrap(err, "unable to classify source tree")
	}
	copySet := seed.Include

	deleteSet := pathtrie.New()

	walkErr := filepath.WalkDir(config.DestDir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return errors.Wrap(err, "unable to walk destination")
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(config.DestDir, path)
		if err != nil {
			return errors.Wrapf(err, "unable to relativize %q", path)
		}
		rel = filepath.ToSlash(rel)
		sourceEquiv := filepath.Join(config.SourceDir, filepath.FromSlash(rel))

		return reconcileOne(matcher, comparison, config.DeleteBehaviour, rel, path, sourceEquiv, copySet, deleteSet)
	})
	if walkErr != nil {
		return nil, walkErr
	}

	return &Result{Copy: copySet, Delete: deleteSet}, nil
}

// reconcileOne applies the priority-ordered reconciliation rules to a single
// destination file at rel (relative path), identified on disk by destPath,
// with a hypothetical source counterpart at sourceEquivPath.
func reconcileOne(
	matcher *classify.Matcher,
	comparison compare.Method,
	deleteBehaviour DeleteBehaviour,
	rel string,
	destPath string,
	sourceEquivPath string,
	copySet *pathtrie.Trie,
	deleteSet *pathtrie.Trie,
) error {
	// Case 1: Included, Equivalent present.
	if copySet.Contains(rel) {
		same, err := comparison.SameFile(destPath, sourceEquivPath)
		if err != nil {
			return errors.Wrapf(err, "unable to compare %q", rel)
		}
		if same {
			copySet.Remove(rel)
		}
		return nil
	}

	// Delete-all fast path.
	if deleteBehaviour.all() {
		deleteSet.Insert(rel)
		return nil
	}

	sourceExists, err := exists(sourceEquivPath)
	if err != nil {
		return errors.Wrapf(err, "unable to stat %q", sourceEquivPath)
	}

	// Case 2: Excluded, Equivalent present.
	if sourceExists {
		if deleteBehaviour.Has(ExcludedEquiv) {
			deleteSet.Insert(rel)
		}
		return nil
	}

	// Opportunistic no-equivalent fast path.
	if deleteBehaviour.Has(IncludedNoEquiv) && deleteBehaviour.Has(ExcludedNoEquiv) {
		deleteSet.Insert(rel)
		return nil
	}

	// Case 3: Included, No equivalent.
	if matcher.Classify(rel) == classify.Included {
		if deleteBehaviour.Has(IncludedNoEquiv) {
			deleteSet.Insert(rel)
		}
		return nil
	}

	// Case 4: Excluded, No equivalent.
	if deleteBehaviour.Has(ExcludedNoEquiv) {
		deleteSet.Insert(rel)
	}
	return nil
}

// exists reports whether path is present on disk, treating "not found" as a
// non-error false rather than propagating os.ErrNotExist.
func exists(path string) (bool, error) {
	_, err := os.Lstat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}
