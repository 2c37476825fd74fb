// Package cli holds small helpers shared by the pathsync command-line
// driver: error reporting and the application of a computed (copy, delete)
// result to the filesystem. None of this is part of the core, which returns
// path sets and leaves their application to its caller.
package cli

import (
	"os"

	"github.com/pathsync/pathsync/pkg/logging"
)

// Fatal reports err through the root logger, honoring whatever --log-level
// the driver configured (including the colorization already built into
// logging.Logger.Error), and then terminates the process with a non-zero
// exit code.
func Fatal(err error) {
	logging.RootLogger.Error(err)
	os.Exit(1)
}
