// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/muesli/termenv"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/mskilab-org/gOS-sub001/cmd/oncoprint/cli"
	"github.com/mskilab-org/gOS-sub001/lib/config"
	"github.com/mskilab-org/gOS-sub001/lib/engine"
	"github.com/mskilab-org/gOS-sub001/lib/layout"
	"github.com/mskilab-org/gOS-sub001/lib/render/raster"
	"github.com/mskilab-org/gOS-sub001/lib/render/termcanvas"
)

const (
	defaultPNGHeight     = 400
	minimumPNGWidth      = 320
	defaultTerminalWidth = 100
	defaultTerminalRows  = 24
	defaultPNGName       = "oncoprint.png"
)

type renderParams struct {
	SelectionParams
	Format  string  `flag:"format" desc:"output format: png or ansi" default:"png"`
	Output  string  `flag:"output,o" desc:"PNG output path (default: oncoprint.png in output.directory)"`
	Width   int     `flag:"width" desc:"viewport width in pixels (png) or columns (ansi); 0 fits every column (png) or the terminal (ansi)"`
	Height  int     `flag:"height" desc:"viewport height in pixels (png, default 400) or rows (ansi, default 24)"`
	ScrollX float64 `flag:"scroll" desc:"horizontal scroll offset, in pixels (png) or columns (ansi)"`
}

func renderCommand(stdout io.Writer) *cli.Command {
	var params renderParams

	return &cli.Command{
		Name:    "render",
		Summary: "Draw an oncoprint to a PNG file or the terminal",
		Description: `Build the matrix for a cohort and draw one frame.

PNG output uses the layout geometry from the config. With --width 0
(the default) the image is wide enough for every column at the
maximum cell width; otherwise cells are sized to fit the viewport
within the configured band and only the columns visible at --scroll
are drawn.

ANSI output draws with half-block characters at the terminal
geometry, two cell rows per character row, and writes to stdout.`,
		Usage: "oncoprint render <cohort.json> [flags]",
		Examples: []cli.Example{
			{
				Description: "Export the full matrix as a PNG",
				Command:     "oncoprint render cohort.json -f TP53,ATM,KRAS -o oncoprint.png",
			},
			{
				Description: "Draw an 80-column frame on the terminal",
				Command:     "oncoprint render cohort.json -f TP53,ATM --format ansi --width 80",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("render", &params)
		},
		Run: func(args []string) error {
			return runRender(args, &params, stdout)
		},
	}
}

func runRender(args []string, params *renderParams, stdout io.Writer) error {
	if params.Format != "png" && params.Format != "ansi" {
		return cli.Validation("--format must be png or ansi, got %q", params.Format)
	}
	if params.Width < 0 || params.Height < 0 {
		return cli.Validation("--width and --height must not be negative")
	}
	level, err := params.level()
	if err != nil {
		return err
	}
	logger := cli.NewCommandLogger(level).With("command", "render")

	sel, err := params.load(args, logger)
	if err != nil {
		return err
	}
	if params.Format == "ansi" {
		return renderANSI(sel, params, stdout)
	}
	return renderPNG(sel, params, stdout)
}

func renderPNG(sel *selection, params *renderParams, stdout io.Writer) error {
	geometry := sel.config.Layout
	height := float64(params.Height)
	if height == 0 {
		height = defaultPNGHeight
	}

	eng, err := sel.build(geometry, func(inputs *engine.Inputs) {
		inputs.Viewport = layout.Viewport{Width: float64(params.Width), Height: height}
		inputs.ScrollX = params.ScrollX
	})
	if err != nil {
		return err
	}
	defer eng.Close()

	if params.Width == 0 {
		if err := eng.Resize(layout.Viewport{Width: fullWidth(eng.Layout(), geometry), Height: height}); err != nil {
			return cli.Internal("sizing image: %w", err)
		}
	}

	frame := eng.Frame()
	canvas := raster.New(
		int(math.Ceil(frame.Viewport.Width)),
		int(math.Ceil(frame.Layout.SurfaceHeight)),
		sel.palette.Background,
		sel.palette.Label,
	)
	sel.renderer(geometry).Draw(canvas, frame)

	path := params.Output
	if path == "" {
		path = filepath.Join(sel.config.Output.Directory, defaultPNGName)
	}
	if err := writePNG(path, canvas); err != nil {
		return err
	}
	sel.logger.Info("wrote image", "path", path, "width", canvas.Image().Bounds().Dx(), "height", canvas.Image().Bounds().Dy())
	fmt.Fprintln(stdout, path)
	return nil
}

// fullWidth is the viewport width at which every column gets the
// maximum cell width, so nothing scrolls. Empty matrices still get room
// for the notice text.
func fullWidth(params layout.Params, geometry config.GeometryConfig) float64 {
	margins := params.Margins
	width := margins.Left + margins.Right + float64(params.ColCount)*(geometry.CellWidth.Max+params.CellGap)
	return math.Max(width, minimumPNGWidth)
}

func writePNG(path string, canvas *raster.Canvas) error {
	file, err := os.Create(path)
	if err != nil {
		return cli.Internal("creating %s: %w", path, err)
	}
	if err := canvas.EncodePNG(file); err != nil {
		file.Close()
		return cli.Internal("writing %s: %w", path, err)
	}
	if err := file.Close(); err != nil {
		return cli.Internal("writing %s: %w", path, err)
	}
	return nil
}

func renderANSI(sel *selection, params *renderParams, stdout io.Writer) error {
	geometry := sel.config.Terminal
	columns := params.Width
	if columns == 0 {
		columns = terminalWidth(stdout)
	}
	rows := params.Height
	if rows == 0 {
		rows = defaultTerminalRows
	}

	// Layout units are half a character row high.
	eng, err := sel.build(geometry, func(inputs *engine.Inputs) {
		inputs.Viewport = layout.Viewport{Width: float64(columns), Height: float64(rows * 2)}
		inputs.ScrollX = params.ScrollX
	})
	if err != nil {
		return err
	}
	defer eng.Close()

	frame := eng.Frame()
	canvas := termcanvas.New(columns, int(math.Ceil(frame.Layout.SurfaceHeight/2)), termcanvas.Options{
		Background: sel.palette.Background,
		Label:      sel.palette.Label,
		Profile:    termenv.NewOutput(stdout).EnvColorProfile(),
	})
	sel.renderer(geometry).Draw(canvas, frame)

	if _, err := fmt.Fprintln(stdout, canvas.String()); err != nil {
		return cli.Internal("writing output: %w", err)
	}
	return nil
}

// terminalWidth returns the width of w when it is a terminal, and a
// fixed default otherwise.
func terminalWidth(w io.Writer) int {
	file, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(file.Fd())) {
		return defaultTerminalWidth
	}
	width, _, err := term.GetSize(int(file.Fd()))
	if err != nil || width <= 0 {
		return defaultTerminalWidth
	}
	return width
}
