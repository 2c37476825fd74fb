// Package config loads an optional YAML run configuration for pathsync,
// allowing a non-interactive invocation to specify source/destination
// directories, the include file, and delete-policy flags in a single
// document instead of a long command line. It is a convenience layered over
// the core; the core itself knows nothing about YAML.
package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/pathsync/pathsync/pkg/syncengine"
)

// File is the top-level shape of a pathsync YAML run configuration.
type File struct {
	// Source is the path to the source directory tree.
	Source string `yaml:"source"`
	// Dest is the path to the destination directory tree.
	Dest string `yaml:"dest"`
	// IncludeFile is the path to the include-file rule document.
	IncludeFile string `yaml:"includeFile"`
	// IncludeByDefault is the tie-break applied to ambiguous (Both) files.
	IncludeByDefault bool `yaml:"includeByDefault"`
	// Delete lists the delete-policy reasons to enable, using the string
	// names below.
	Delete []string `yaml:"delete"`
}

// deleteReasonNames maps the YAML string vocabulary to DeleteReason values.
var deleteReasonNames = map[string]syncengine.DeleteReason{
	"included-no-equiv": syncengine.IncludedNoEquiv,
	"excluded-equiv":    syncengine.ExcludedEquiv,
	"excluded-no-equiv": syncengine.ExcludedNoEquiv,
}

// Load reads and parses a YAML run configuration from path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "unable to read configuration file")
	}

	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, errors.Wrap(err, "unable to parse configuration file")
	}

	if file.Source == "" {
		return nil, errors.New("configuration file missing required field: source")
	}
	if file.Dest == "" {
		return nil, errors.New("configuration file missing required field: dest")
	}
	if file.IncludeFile == "" {
		return nil, errors.New("configuration file missing required field: includeFile")
	}

	return &file, nil
}

// KnownDeleteReason reports whether name is a recognized delete-behaviour
// reason string, using the same vocabulary as DeleteBehaviour. It lets
// callers outside this package (e.g. a command-line flag type) validate a
// name without duplicating the reason table.
func KnownDeleteReason(name string) bool {
	_, ok := deleteReasonNames[name]
	return ok
}

// DeleteBehaviour converts the YAML delete-reason names into a
// syncengine.DeleteBehaviour, returning an error if an unrecognized name is
// present. This validation happens entirely in the driver layer: by the
// time a DeleteBehaviour reaches the core, it is assumed already valid.
func (f *File) DeleteBehaviour() (syncengine.DeleteBehaviour, error) {
	var reasons []syncengine.DeleteReason
	for _, name := range f.Delete {
		reason, ok := deleteReasonNames[name]
		if !ok {
			return nil, errors.Errorf("unrecognized delete-behaviour flag: %q", name)
		}
		reasons = append(reasons, reason)
	}
	return syncengine.NewDeleteBehaviour(reasons...), nil
}
