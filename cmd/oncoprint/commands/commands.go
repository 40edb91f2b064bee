// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"io"

	"github.com/spf13/pflag"

	"github.com/mskilab-org/gOS-sub001/cmd/oncoprint/cli"
	"github.com/mskilab-org/gOS-sub001/lib/version"
)

// Root builds the oncoprint command tree. Command output goes to
// stdout, help text to stderr.
func Root(stdout, stderr io.Writer) *cli.Command {
	var showVersion bool

	root := &cli.Command{
		Name: "oncoprint",
		Description: `oncoprint: feature × sample alteration matrices.

Builds an oncoprint from a cohort file (a JSON array of records with a
sample_id, a free-text alteration summary and numeric attribute maps),
orders it with the memo sort, and prints, renders or browses it.`,
		HelpOutput: stderr,
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("oncoprint", pflag.ContinueOnError)
			flagSet.BoolVar(&showVersion, "version", false, "print version information and exit")
			return flagSet
		},
		Subcommands: []*cli.Command{
			orderCommand(stdout),
			renderCommand(stdout),
			viewCommand(),
			versionCommand(stdout),
		},
		Examples: []cli.Example{
			{
				Description: "Print the memo-sorted order for two genes",
				Command:     "oncoprint order cohort.json --features TP53,ATM",
			},
			{
				Description: "Export a PNG of a numeric attribute",
				Command:     "oncoprint render cohort.json --mode numeric --attribute cnv -o cnv.png",
			},
			{
				Description: "Browse the cohort in the terminal",
				Command:     "oncoprint view cohort.json --features TP53,KRAS,EGFR",
			},
		},
	}
	root.Run = func(args []string) error {
		if showVersion {
			_, err := fmt.Fprintf(stdout, "oncoprint %s\n", version.Full())
			return err
		}
		root.PrintHelp(stderr)
		return cli.Validation("subcommand required")
	}
	return root
}

func versionCommand(stdout io.Writer) *cli.Command {
	var params struct {
		JSON bool `flag:"json" desc:"print build information as JSON"`
	}

	return &cli.Command{
		Name:    "version",
		Summary: "Print version information",
		Usage:   "oncoprint version [--json]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("version", &params)
		},
		Run: func(args []string) error {
			if len(args) > 0 {
				return cli.Validation("version takes no arguments, got %q", args[0])
			}
			if params.JSON {
				return cli.WriteJSON(stdout, version.Current())
			}
			_, err := fmt.Fprintf(stdout, "oncoprint %s\n", version.Full())
			return err
		},
	}
}
