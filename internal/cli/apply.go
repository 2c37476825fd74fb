package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/pathsync/pathsync/pkg/logging"
)

// applyCopyBufferSize is the size of the buffer used when streaming file
// contents from source to destination.
const applyCopyBufferSize = 32 * 1024

// ApplyCopy copies every path in paths from sourceDir to destDir, creating
// any necessary parent directories. It stops and returns the first error
// encountered.
func ApplyCopy(logger *logging.Logger, sourceDir, destDir string, paths []string, dryRun bool) error {
	buffer := make([]byte, applyCopyBufferSize)
	for _, rel := range paths {
		srcPath := filepath.Join(sourceDir, filepath.FromSlash(rel))
		dstPath := filepath.Join(destDir, filepath.FromSlash(rel))

		logger.Debugf("copy %s", rel)
		if dryRun {
			continue
		}

		if err := copyFile(srcPath, dstPath, buffer); err != nil {
			return errors.Wrapf(err, "unable to copy %q", rel)
		}
	}
	return nil
}

// ApplyDelete removes every path in paths from destDir. It stops and
// returns the first error encountered.
func ApplyDelete(logger *logging.Logger, destDir string, paths []string, dryRun bool) error {
	for _, rel := range paths {
		dstPath := filepath.Join(destDir, filepath.FromSlash(rel))

		logger.Debugf("delete %s", rel)
		if dryRun {
			continue
		}

		if err := os.Remove(dstPath); err != nil {
			return errors.Wrapf(err, "unable to delete %q", rel)
		}
	}
	return nil
}

// copyFile streams src to dst, creating dst's parent directory tree if
// necessary, and ensuring both files are closed on every exit path. A newly
// created dst gets src's permission bits (subject to the umask); an existing
// dst is truncated and keeps its own permission bits.
func copyFile(src, dst string, buffer []byte) error {
	source, err := os.Open(src)
	if err != nil {
		return err
	}
	defer source.Close()

	info, err := source.Stat()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}

	destination, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}
	defer destination.Close()

	if _, err := io.CopyBuffer(destination, source, buffer); err != nil {
		return err
	}

	return nil
}
