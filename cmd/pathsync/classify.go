package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/pathsync/pathsync/pkg/classify"
	"github.com/pathsync/pathsync/pkg/rules"
)

// classifyMain is the entry point for the classify command.
func classifyMain(_ *cobra.Command, arguments []string) error {
	document, err := os.ReadFile(arguments[0])
	if err != nil {
		return errors.Wrap(err, "unable to read include file")
	}

	tries, err := rules.Parse(string(document))
	if err != nil {
		return errors.Wrap(err, "unable to parse include file")
	}
	matcher := classify.New(tries.Include, tries.Exclude)

	fmt.Println(matcher.Classify(arguments[1]))
	return nil
}

// classifyCommand is the classify command.
var classifyCommand = &cobra.Command{
	Use:          "classify <include-file> <path>",
	Short:        "Classify a single relative path against an include file",
	Args:         cobra.ExactArgs(2),
	RunE:         classifyMain,
	SilenceUsage: true,
}
