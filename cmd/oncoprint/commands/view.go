// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/termenv"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/mskilab-org/gOS-sub001/cmd/oncoprint/cli"
	"github.com/mskilab-org/gOS-sub001/lib/browser"
	"github.com/mskilab-org/gOS-sub001/lib/engine"
)

type viewParams struct {
	SelectionParams
}

func viewCommand() *cli.Command {
	var params viewParams

	return &cli.Command{
		Name:    "view",
		Summary: "Browse an oncoprint in the terminal",
		Description: `Open an interactive oncoprint viewer.

The matrix fills the terminal and scrolls horizontally with h/l, the
arrow keys, the mouse wheel or by dragging the scrollbar. Hovering a
cell shows its alterations or value; clicking selects it. Press s to
toggle the memo sort and q to quit.

Log records at or above --log-level appear in the status bar.`,
		Usage: "oncoprint view <cohort.json> [flags]",
		Examples: []cli.Example{
			{
				Description: "Browse three genes",
				Command:     "oncoprint view cohort.json -f TP53,KRAS,EGFR",
			},
			{
				Description: "Browse a numeric attribute with debug logging",
				Command:     "oncoprint view cohort.json --mode numeric --attribute cnv --log-level debug",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("view", &params)
		},
		Run: func(args []string) error {
			return runView(args, &params)
		},
	}
}

func runView(args []string, params *viewParams) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return cli.Validation("view needs an interactive terminal; use 'oncoprint render --format ansi' for piped output")
	}
	level, err := params.level()
	if err != nil {
		return err
	}

	// The alternate screen owns the terminal, so logs go to the status
	// bar.
	relay := browser.NewRelay()
	logger := slog.New(browser.NewStatusLogHandler(level, relay)).With("command", "view")

	sel, err := params.load(args, logger)
	if err != nil {
		return err
	}

	geometry := sel.config.Terminal
	options := sel.engineOptions(geometry)
	options.RebuildDelay = sel.config.Schedule.RebuildDelay
	options.FrameInterval = sel.config.Schedule.FrameInterval
	options.OnRedraw = relay.Redraw
	options.OnCellClick = func(cell engine.Cell) {
		logger.Debug("cell clicked", "feature", cell.Feature, "sample", cell.SampleID, "present", cell.Present)
	}
	eng := engine.New(options)
	defer eng.Close()

	model := browser.NewModel(eng, sel.inputs, browser.Options{
		Renderer: sel.renderer(geometry),
		Profile:  termenv.NewOutput(os.Stdout).EnvColorProfile(),
		Title:    filepath.Base(sel.path),
	})
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseAllMotion())
	relay.SetProgram(program)

	if _, err := program.Run(); err != nil {
		return cli.Internal("running viewer: %w", err)
	}
	return nil
}
