package main

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"

	"github.com/pathsync/pathsync/pkg/config"
)

// deleteReasonsFlag is a pflag.Value that accumulates delete-behaviour
// reason names for the --delete flag, validating each one against
// config.KnownDeleteReason as it is parsed so that an unrecognized reason
// fails at flag-parsing time rather than surfacing later as a YAML-shaped
// error out of config.File.DeleteBehaviour.
type deleteReasonsFlag struct {
	values *[]string
}

// String implements pflag.Value.String.
func (f *deleteReasonsFlag) String() string {
	if f.values == nil {
		return ""
	}
	return strings.Join(*f.values, ",")
}

// Set implements pflag.Value.Set. It accepts a comma-separated list of
// reason names, same as pflag's built-in StringSlice, appending to any
// values already accumulated from prior occurrences of the flag.
func (f *deleteReasonsFlag) Set(raw string) error {
	for _, name := range strings.Split(raw, ",") {
		if !config.KnownDeleteReason(name) {
			return errors.Errorf("unrecognized delete-behaviour reason: %q", name)
		}
		*f.values = append(*f.values, name)
	}
	return nil
}

// Type implements pflag.Value.Type.
func (f *deleteReasonsFlag) Type() string {
	return "strings"
}

var _ pflag.Value = (*deleteReasonsFlag)(nil)
