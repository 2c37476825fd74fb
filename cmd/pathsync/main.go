// Command pathsync computes, and optionally applies, the set of files that
// must be copied from a source directory tree into a destination tree (and
// the set of destination files that should be deleted), under a
// declarative, pattern-based include file.
//
// The heavy lifting (pattern compilation, classification, and
// reconciliation) lives in the core packages under pkg/; this command only
// parses arguments, loads the include file and optional YAML run
// configuration, logs, and applies the resulting path sets to the
// filesystem.
package main

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/pathsync/pathsync/internal/cli"
	"github.com/pathsync/pathsync/pkg/logging"
)

var rootConfiguration struct {
	// logLevel is the name of the log level to use for the root logger.
	logLevel string
}

var rootCommand = &cobra.Command{
	Use:           "pathsync",
	Short:         "pathsync computes and applies rule-driven directory mirroring",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(command *cobra.Command, arguments []string) error {
		level, ok := logging.NameToLevel(rootConfiguration.logLevel)
		if !ok {
			return errors.Errorf("unknown log level: %s", rootConfiguration.logLevel)
		}
		logging.RootLogger.SetLevel(level)
		return nil
	},
}

func init() {
	flags := rootCommand.PersistentFlags()
	flags.StringVar(&rootConfiguration.logLevel, "log-level", "info", "Log level (disabled|error|warn|info|debug|trace)")

	cobra.EnableCommandSorting = false

	rootCommand.AddCommand(
		syncCommand,
		validateCommand,
		classifyCommand,
	)
}

func main() {
	if err := rootCommand.Execute(); err != nil {
		cli.Fatal(err)
	}
}
