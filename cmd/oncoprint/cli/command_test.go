// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/spf13/pflag"
)

func TestCommand_Execute_DispatchesToSubcommand(t *testing.T) {
	var called string
	var receivedArgs []string

	root := &Command{
		Name: "oncoprint",
		Subcommands: []*Command{
			{
				Name: "order",
				Run: func(args []string) error {
					called = "order"
					receivedArgs = args
					return nil
				},
			},
			{
				Name: "render",
				Run: func(args []string) error {
					called = "render"
					return nil
				},
			},
		},
	}

	if err := root.Execute([]string{"order", "extra-arg"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if called != "order" {
		t.Errorf("dispatched to %q, want %q", called, "order")
	}
	if len(receivedArgs) != 1 || receivedArgs[0] != "extra-arg" {
		t.Errorf("args = %v, want [extra-arg]", receivedArgs)
	}
}

func TestCommand_Execute_FlagParsing(t *testing.T) {
	var width int
	var positional []string

	command := &Command{
		Name: "render",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("render", pflag.ContinueOnError)
			flagSet.IntVar(&width, "width", 0, "surface width")
			return flagSet
		},
		Run: func(args []string) error {
			positional = args
			return nil
		},
	}

	if err := command.Execute([]string{"--width", "640", "cohort.json"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if width != 640 {
		t.Errorf("width = %d, want 640", width)
	}
	if len(positional) != 1 || positional[0] != "cohort.json" {
		t.Errorf("args = %v", positional)
	}
}

func TestCommand_Execute_UnknownCommandSuggests(t *testing.T) {
	root := &Command{
		Name:        "oncoprint",
		Subcommands: []*Command{{Name: "render", Run: func([]string) error { return nil }}},
	}

	err := root.Execute([]string{"rendr"})
	if err == nil {
		t.Fatal("expected error for unknown command")
	}
	if !strings.Contains(err.Error(), `did you mean "render"`) {
		t.Errorf("error = %q, want a suggestion", err)
	}
	var toolError *ToolError
	if !errors.As(err, &toolError) || toolError.Category != CategoryValidation {
		t.Errorf("error category = %v, want validation", err)
	}
}

func TestCommand_Execute_UnknownFlagSuggests(t *testing.T) {
	command := &Command{
		Name: "order",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("order", pflag.ContinueOnError)
			flagSet.String("features", "", "")
			flagSet.String("format", "json", "")
			return flagSet
		},
		Run: func([]string) error { return nil },
	}

	err := command.Execute([]string{"--featurs", "TP53"})
	if err == nil {
		t.Fatal("expected error for unknown flag")
	}
	if !strings.Contains(err.Error(), "did you mean --features?") {
		t.Errorf("error = %q", err)
	}
	if !strings.Contains(err.Error(), "Run 'order --help'") {
		t.Errorf("error = %q, want a help pointer", err)
	}
}

func TestCommand_Execute_SubcommandRequired(t *testing.T) {
	var help bytes.Buffer
	root := &Command{
		Name:        "oncoprint",
		HelpOutput:  &help,
		Subcommands: []*Command{{Name: "view", Summary: "Browse a cohort", Run: func([]string) error { return nil }}},
	}
	err := root.Execute(nil)
	if err == nil || !strings.Contains(err.Error(), "subcommand required") {
		t.Fatalf("error = %v", err)
	}
	if !strings.Contains(help.String(), "view") || !strings.Contains(help.String(), "Browse a cohort") {
		t.Errorf("help = %q", help.String())
	}
}

func TestCommand_PrintHelp(t *testing.T) {
	var width int
	command := &Command{
		Name:        "render",
		Description: "Render an oncoprint.",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("render", pflag.ContinueOnError)
			flagSet.IntVar(&width, "width", 0, "surface width")
			return flagSet
		},
		Examples: []Example{{Description: "Export a PNG", Command: "oncoprint render --format png"}},
	}

	var output bytes.Buffer
	command.PrintHelp(&output)
	help := output.String()
	for _, want := range []string{"Render an oncoprint.", "Usage:\n  render [flags]", "--width", "# Export a PNG", "oncoprint render --format png"} {
		if !strings.Contains(help, want) {
			t.Errorf("help missing %q:\n%s", want, help)
		}
	}
}

func TestCommand_HelpFlagGoesToHelpOutput(t *testing.T) {
	var help bytes.Buffer
	called := false
	command := &Command{
		Name:       "order",
		Summary:    "Print the ordered rows and columns",
		HelpOutput: &help,
		Run:        func([]string) error { called = true; return nil },
	}
	if err := command.Execute([]string{"--help"}); err != nil {
		t.Fatal(err)
	}
	if called {
		t.Error("--help ran the command")
	}
	if !strings.Contains(help.String(), "Print the ordered rows and columns") {
		t.Errorf("help = %q", help.String())
	}
}
