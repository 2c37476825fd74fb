package main

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/pathsync/pathsync/internal/cli"
	"github.com/pathsync/pathsync/pkg/classify"
	"github.com/pathsync/pathsync/pkg/config"
	"github.com/pathsync/pathsync/pkg/logging"
	"github.com/pathsync/pathsync/pkg/rules"
	"github.com/pathsync/pathsync/pkg/syncengine"
)

// syncConfiguration stores configuration for the sync command.
var syncConfiguration struct {
	// configFile is the path to an optional YAML run configuration. Flags
	// below override whatever it specifies.
	configFile string
	// includeFile is the path to the include-file rule document.
	includeFile string
	// includeByDefault is the tie-break applied to ambiguous (Both) files.
	includeByDefault bool
	// delete lists the delete-behaviour reason names to enable.
	delete []string
	// apply, if set, applies the computed copy/delete sets to the
	// destination. Without it, sync only prints the summary.
	apply bool
	// dryRun, if set alongside apply, logs the operations that would be
	// performed without touching the filesystem.
	dryRun bool
}

// syncMain is the entry point for the sync command.
func syncMain(command *cobra.Command, arguments []string) error {
	logger := logging.RootLogger.Sublogger(cli.RunID())

	file, sourceDir, destDir, err := resolveRunConfiguration(arguments)
	if err != nil {
		return err
	}

	document, err := os.ReadFile(file.IncludeFile)
	if err != nil {
		return errors.Wrap(err, "unable to read include file")
	}

	tries, err := rules.Parse(string(document))
	if err != nil {
		return errors.Wrap(err, "unable to parse include file")
	}
	matcher := classify.New(tries.Include, tries.Exclude)

	deleteBehaviour, err := file.DeleteBehaviour()
	if err != nil {
		return err
	}

	logger.Infof("classifying %s against %s", sourceDir, file.IncludeFile)
	result, err := syncengine.Sync(matcher, syncengine.Config{
		SourceDir:        sourceDir,
		DestDir:          destDir,
		DeleteBehaviour:  deleteBehaviour,
		IncludeByDefault: file.IncludeByDefault,
	})
	if err != nil {
		return errors.Wrap(err, "unable to compute sync result")
	}

	copyPaths := result.Copy.Paths()
	deletePaths := result.Delete.Paths()
	for _, rel := range copyPaths {
		logger.Tracef("copy candidate: %s", rel)
	}
	for _, rel := range deletePaths {
		logger.Tracef("delete candidate: %s", rel)
	}

	summary, err := cli.SummarizeCopy(sourceDir, copyPaths)
	if err != nil {
		return errors.Wrap(err, "unable to summarize copy set")
	}
	summary, err = cli.SummarizeDelete(destDir, deletePaths, summary)
	if err != nil {
		return errors.Wrap(err, "unable to summarize delete set")
	}
	cli.PrintSummary(summary)

	if !syncConfiguration.apply {
		return nil
	}

	if err := cli.ApplyCopy(logger, sourceDir, destDir, copyPaths, syncConfiguration.dryRun); err != nil {
		return errors.Wrap(err, "unable to apply copy set")
	}
	if err := cli.ApplyDelete(logger, destDir, deletePaths, syncConfiguration.dryRun); err != nil {
		return errors.Wrap(err, "unable to apply delete set")
	}

	return nil
}

// resolveRunConfiguration merges the optional YAML run configuration with
// command-line flags and positional [source dest] arguments, flags and
// arguments taking priority over the file.
func resolveRunConfiguration(arguments []string) (*config.File, string, string, error) {
	var file config.File
	if syncConfiguration.configFile != "" {
		loaded, err := config.Load(syncConfiguration.configFile)
		if err != nil {
			return nil, "", "", errors.Wrap(err, "unable to load run configuration")
		}
		file = *loaded
	}

	if len(arguments) > 0 {
		file.Source = arguments[0]
	}
	if len(arguments) > 1 {
		file.Dest = arguments[1]
	}
	if syncConfiguration.includeFile != "" {
		file.IncludeFile = syncConfiguration.includeFile
	}
	if syncConfiguration.includeByDefault {
		file.IncludeByDefault = true
	}
	if len(syncConfiguration.delete) > 0 {
		file.Delete = syncConfiguration.delete
	}

	if file.Source == "" || file.Dest == "" || file.IncludeFile == "" {
		return nil, "", "", errors.New("source, dest, and include-file must all be specified")
	}

	sourceDir, err := filepath.Abs(file.Source)
	if err != nil {
		return nil, "", "", errors.Wrap(err, "unable to resolve source directory")
	}
	destDir, err := filepath.Abs(file.Dest)
	if err != nil {
		return nil, "", "", errors.Wrap(err, "unable to resolve destination directory")
	}

	return &file, sourceDir, destDir, nil
}

// syncCommand is the sync command.
var syncCommand = &cobra.Command{
	Use:          "sync [<source> <dest>]",
	Short:        "Compute (and optionally apply) the copy and delete sets between two directory trees",
	Args:         cobra.MaximumNArgs(2),
	RunE:         syncMain,
	SilenceUsage: true,
}

func init() {
	flags := syncCommand.Flags()
	flags.SortFlags = false

	flags.StringVar(&syncConfiguration.configFile, "config", "", "Path to a YAML run configuration")
	flags.StringVar(&syncConfiguration.includeFile, "include-file", "", "Path to the include-file rule document")
	flags.BoolVar(&syncConfiguration.includeByDefault, "include-by-default", false, "Treat ambiguous (Both) files as included")
	flags.Var(&deleteReasonsFlag{values: &syncConfiguration.delete}, "delete", "Delete-behaviour reasons to enable (included-no-equiv|excluded-equiv|excluded-no-equiv)")
	flags.BoolVar(&syncConfiguration.apply, "apply", false, "Apply the computed copy and delete sets to the filesystem")
	flags.BoolVar(&syncConfiguration.dryRun, "dry-run", false, "With --apply, log operations without performing them")
}
