package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/google/uuid"
)

// RunID generates a correlation identifier for a single sync invocation, so
// that log lines from the classification, reconciliation, and application
// phases of one run can be tied together when the driver is used
// non-interactively (e.g. from a scheduler) and its output is interleaved
// with other runs.
func RunID() string {
	return uuid.NewString()
}

// Summary holds the counts and byte totals printed by the sync command before
// a sync is (optionally) applied.
type Summary struct {
	CopyCount   int
	CopyBytes   int64
	DeleteCount int
	DeleteBytes int64
}

// PrintSummary writes a human-readable, colorized summary of a computed
// sync result to standard output.
func PrintSummary(s Summary) {
	fmt.Printf(
		"%s %d file(s), %s\n",
		color.GreenString("copy:"),
		s.CopyCount,
		humanize.Bytes(uint64(s.CopyBytes)),
	)
	fmt.Printf(
		"%s %d file(s), %s\n",
		color.RedString("delete:"),
		s.DeleteCount,
		humanize.Bytes(uint64(s.DeleteBytes)),
	)
}

// SummarizeCopy computes the file count and total byte size (as reported by
// the source tree) for a copy-set.
func SummarizeCopy(sourceDir string, paths []string) (Summary, error) {
	var s Summary
	s.CopyCount = len(paths)
	for _, rel := range paths {
		info, err := os.Stat(filepath.Join(sourceDir, filepath.FromSlash(rel)))
		if err != nil {
			return Summary{}, err
		}
		s.CopyBytes += info.Size()
	}
	return s, nil
}

// SummarizeDelete computes the file count and total byte size (as reported
// by the destination tree) for a delete-set, merging it into an existing
// Summary produced by SummarizeCopy.
func SummarizeDelete(destDir string, paths []string, s Summary) (Summary, error) {
	s.DeleteCount = len(paths)
	for _, rel := range paths {
		info, err := os.Stat(filepath.Join(destDir, filepath.FromSlash(rel)))
		if err != nil {
			return Summary{}, err
		}
		s.DeleteBytes += info.Size()
	}
	return s, nil
}
