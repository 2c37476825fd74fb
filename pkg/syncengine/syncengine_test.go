package syncengine

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/pathsync/pathsync/pkg/classify"
	"github.com/pathsync/pathsync/pkg/rules"
)

func mustMatcher(t *testing.T, document string) *classify.Matcher {
	t.Helper()
	tries, err := rules.Parse(document)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	return classify.New(tries.Include, tries.Exclude)
}

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		full := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
}

func sorted(paths []string) []string {
	out := append([]string(nil), paths...)
	sort.Strings(out)
	return out
}

func assertPathSet(t *testing.T, label string, got []string, want []string) {
	t.Helper()
	g, w := sorted(got), sorted(want)
	if len(g) != len(w) {
		t.Fatalf("%s: got %v, want %v", label, g, w)
	}
	for i := range g {
		if g[i] != w[i] {
			t.Fatalf("%s: got %v, want %v", label, g, w)
		}
	}
}

// TestSyncEqualIncludedFileNeedsNoCopy verifies that an included file
// already byte-identical on the destination requires no copy, and an empty
// delete policy deletes nothing.
func TestSyncEqualIncludedFileNeedsNoCopy(t *testing.T) {
	source, dest := t.TempDir(), t.TempDir()
	writeTree(t, source, map[string]string{"a.txt": "same", "b.txt": "x"})
	writeTree(t, dest, map[string]string{"a.txt": "same"})

	m := mustMatcher(t, "a.txt\n")
	result, err := Sync(m, Config{
		SourceDir:       source,
		DestDir:         dest,
		DeleteBehaviour: NewDeleteBehaviour(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertPathSet(t, "copy", result.Copy.Paths(), nil)
	assertPathSet(t, "delete", result.Delete.Paths(), nil)
}

// TestSyncDeleteExcludedWithSourceEquivalent verifies that an unmatched
// destination file with a source equivalent is deleted only under
// ExcludedEquiv.
func TestSyncDeleteExcludedWithSourceEquivalent(t *testing.T) {
	source, dest := t.TempDir(), t.TempDir()
	writeTree(t, source, map[string]string{"keep": "same", "junk": "src-junk"})
	writeTree(t, dest, map[string]string{"keep": "same", "junk": "dest-junk"})

	m := mustMatcher(t, "keep\n")
	result, err := Sync(m, Config{
		SourceDir:       source,
		DestDir:         dest,
		DeleteBehaviour: NewDeleteBehaviour(ExcludedEquiv),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertPathSet(t, "copy", result.Copy.Paths(), nil)
	assertPathSet(t, "delete", result.Delete.Paths(), []string{"junk"})
}

// TestSyncOrphanDeletion verifies that a destination file with no source
// equivalent is deleted under ExcludedNoEquiv.
func TestSyncOrphanDeletion(t *testing.T) {
	source, dest := t.TempDir(), t.TempDir()
	writeTree(t, source, map[string]string{"a": "same"})
	writeTree(t, dest, map[string]string{"a": "same", "old": "orphan"})

	m := mustMatcher(t, "a\n")
	result, err := Sync(m, Config{
		SourceDir:        source,
		DestDir:          dest,
		IncludeByDefault: true,
		DeleteBehaviour:  NewDeleteBehaviour(ExcludedNoEquiv),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertPathSet(t, "copy", result.Copy.Paths(), nil)
	assertPathSet(t, "delete", result.Delete.Paths(), []string{"old"})
}

// TestSyncKeepsDifferingIncludedFile verifies that an included file whose
// destination copy differs in content stays in the copy set and is never
// placed in the delete set.
func TestSyncKeepsDifferingIncludedFile(t *testing.T) {
	source, dest := t.TempDir(), t.TempDir()
	writeTree(t, source, map[string]string{"a.txt": "new content"})
	writeTree(t, dest, map[string]string{"a.txt": "old content"})

	m := mustMatcher(t, "a.txt\n")
	result, err := Sync(m, Config{
		SourceDir:        source,
		DestDir:          dest,
		IncludeByDefault: true,
		DeleteBehaviour:  NewDeleteBehaviour(IncludedNoEquiv, ExcludedEquiv, ExcludedNoEquiv),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertPathSet(t, "copy", result.Copy.Paths(), []string{"a.txt"})
	assertPathSet(t, "delete", result.Delete.Paths(), nil)
}

// TestSyncDeleteAllFastPath verifies that a full DeleteBehaviour deletes
// every destination file that isn't kept as an equal copy candidate.
func TestSyncDeleteAllFastPath(t *testing.T) {
	source, dest := t.TempDir(), t.TempDir()
	writeTree(t, source, map[string]string{"a.txt": "same"})
	writeTree(t, dest, map[string]string{"a.txt": "same", "stray1": "x", "stray2": "y"})

	m := mustMatcher(t, "a.txt\n")
	result, err := Sync(m, Config{
		SourceDir:        source,
		DestDir:          dest,
		IncludeByDefault: true,
		DeleteBehaviour:  NewDeleteBehaviour(IncludedNoEquiv, ExcludedEquiv, ExcludedNoEquiv),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertPathSet(t, "copy", result.Copy.Paths(), nil)
	assertPathSet(t, "delete", result.Delete.Paths(), []string{"stray1", "stray2"})
}

// TestSyncEmptyDeleteBehaviourDeletesNothing verifies that with an empty
// DeleteBehaviour, nothing is ever placed in the delete set regardless of
// destination contents.
func TestSyncEmptyDeleteBehaviourDeletesNothing(t *testing.T) {
	source, dest := t.TempDir(), t.TempDir()
	writeTree(t, source, map[string]string{"a.txt": "same"})
	writeTree(t, dest, map[string]string{"a.txt": "same", "extra": "z"})

	m := mustMatcher(t, "a.txt\n")
	result, err := Sync(m, Config{
		SourceDir:        source,
		DestDir:          dest,
		IncludeByDefault: true,
		DeleteBehaviour:  NewDeleteBehaviour(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertPathSet(t, "delete", result.Delete.Paths(), nil)
}

// TestSyncNoDoublePlacement verifies that no path ends up in both the copy
// and delete sets.
func TestSyncNoDoublePlacement(t *testing.T) {
	source, dest := t.TempDir(), t.TempDir()
	writeTree(t, source, map[string]string{"a.txt": "new"})
	writeTree(t, dest, map[string]string{"a.txt": "old"})

	m := mustMatcher(t, "a.txt\n")
	result, err := Sync(m, Config{
		SourceDir:        source,
		DestDir:          dest,
		IncludeByDefault: true,
		DeleteBehaviour:  NewDeleteBehaviour(IncludedNoEquiv, ExcludedEquiv, ExcludedNoEquiv),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, p := range result.Copy.Paths() {
		if result.Delete.Contains(p) {
			t.Errorf("path %q present in both copy and delete sets", p)
		}
	}
}

// TestSyncAmbiguousTieBreak verifies that a source file matched by
// identical-length include and exclude rules enters the copy set only when
// IncludeByDefault is set.
func TestSyncAmbiguousTieBreak(t *testing.T) {
	source, dest := t.TempDir(), t.TempDir()
	writeTree(t, source, map[string]string{"amb": "content"})

	m := mustMatcher(t, "amb\n/!/ amb\n")

	included, err := Sync(m, Config{
		SourceDir:        source,
		DestDir:          dest,
		IncludeByDefault: true,
		DeleteBehaviour:  NewDeleteBehaviour(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertPathSet(t, "copy", included.Copy.Paths(), []string{"amb"})
	assertPathSet(t, "delete", included.Delete.Paths(), nil)

	excluded, err := Sync(m, Config{
		SourceDir:       source,
		DestDir:         dest,
		DeleteBehaviour: NewDeleteBehaviour(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertPathSet(t, "copy", excluded.Copy.Paths(), nil)
}
