package cli_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pathsync/pathsync/internal/cli"
	"github.com/pathsync/pathsync/pkg/classify"
	"github.com/pathsync/pathsync/pkg/logging"
	"github.com/pathsync/pathsync/pkg/rules"
	"github.com/pathsync/pathsync/pkg/syncengine"
)

// writeTree creates files (relative to root) with the given contents,
// creating parent directories as needed.
func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

// TestApplyEndToEnd exercises the full driver pipeline (parse include file,
// classify the source tree, reconcile against the destination, apply the
// resulting copy/delete sets) against real directories: an excluded
// destination file with a source equivalent is deleted once ExcludedEquiv
// is enabled.
func TestApplyEndToEnd(t *testing.T) {
	sourceDir := t.TempDir()
	destDir := t.TempDir()

	writeTree(t, sourceDir, map[string]string{
		"keep": "same bytes",
		"junk": "source junk",
	})
	writeTree(t, destDir, map[string]string{
		"keep": "same bytes",
		"junk": "stale bytes",
	})

	tries, err := rules.Parse("keep\n")
	require.NoError(t, err)
	matcher := classify.New(tries.Include, tries.Exclude)

	result, err := syncengine.Sync(matcher, syncengine.Config{
		SourceDir:       sourceDir,
		DestDir:         destDir,
		DeleteBehaviour: syncengine.NewDeleteBehaviour(syncengine.ExcludedEquiv),
	})
	require.NoError(t, err)

	require.Empty(t, result.Copy.Paths(), "keep is byte-identical and should not need copying")
	require.ElementsMatch(t, []string{"junk"}, result.Delete.Paths())

	logger := logging.RootLogger.Sublogger("test")
	require.NoError(t, cli.ApplyCopy(logger, sourceDir, destDir, result.Copy.Paths(), false))
	require.NoError(t, cli.ApplyDelete(logger, destDir, result.Delete.Paths(), false))

	_, err = os.Stat(filepath.Join(destDir, "junk"))
	require.True(t, os.IsNotExist(err), "junk should have been deleted from dest")

	keepContent, err := os.ReadFile(filepath.Join(destDir, "keep"))
	require.NoError(t, err)
	require.Equal(t, "same bytes", string(keepContent))
}

// TestApplyDryRun verifies that dry-run mode logs but never touches the
// filesystem.
func TestApplyDryRun(t *testing.T) {
	destDir := t.TempDir()
	writeTree(t, destDir, map[string]string{"stale": "data"})

	logger := logging.RootLogger.Sublogger("test")
	require.NoError(t, cli.ApplyDelete(logger, destDir, []string{"stale"}, true))

	_, err := os.Stat(filepath.Join(destDir, "stale"))
	require.NoError(t, err, "dry-run must not delete anything")
}
