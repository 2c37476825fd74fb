package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/pathsync/pathsync/pkg/rules"
)

// validateMain is the entry point for the validate command.
func validateMain(_ *cobra.Command, arguments []string) error {
	document, err := os.ReadFile(arguments[0])
	if err != nil {
		return errors.Wrap(err, "unable to read include file")
	}

	if _, err := rules.Parse(string(document)); err != nil {
		return err
	}

	fmt.Println(color.GreenString("ok:"), "include file parses cleanly")
	return nil
}

// validateCommand is the validate command.
var validateCommand = &cobra.Command{
	Use:          "validate <include-file>",
	Short:        "Parse an include file and report the first error, if any",
	Args:         cobra.ExactArgs(1),
	RunE:         validateMain,
	SilenceUsage: true,
}
