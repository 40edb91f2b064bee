// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package termcanvas implements the render draw contract on a terminal
// character grid.
//
// One layout unit is one terminal column wide and half a character row
// high. Each character cell shows two vertically stacked sub-pixels with
// the upper half block "▀": the foreground colour paints the top half
// and the background colour the bottom half. Labels occupy whole
// character cells and take precedence over sub-pixels.
package termcanvas

import (
	"image/color"
	"math"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/mskilab-org/gOS-sub001/lib/layout"
	"github.com/mskilab-org/gOS-sub001/lib/render"
)

const halfBlock = "▀"

// Canvas is a render.Surface over a width×height character grid.
type Canvas struct {
	width  int
	height int

	// pixels holds width × 2·height sub-pixels, row-major. Unset
	// sub-pixels show the background.
	pixels []color.RGBA
	set    []bool

	// text holds label runes per character cell; zero means none.
	text []rune

	background color.RGBA
	label      color.RGBA
	renderer   *lipgloss.Renderer
}

// Options configures a Canvas.
type Options struct {
	Background color.RGBA
	Label      color.RGBA

	// Profile is the colour profile of the output. The zero value
	// (termenv.TrueColor) is used as-is; termenv.Ascii yields plain
	// characters, which is what tests compare against.
	Profile termenv.Profile
}

// New creates a canvas of width columns and height rows.
func New(width, height int, options Options) *Canvas {
	width = max(width, 0)
	height = max(height, 0)
	// The colour profile is forced: output always goes to a terminal
	// view (or a test), so auto-detection against the process's own
	// stdout would only lose colours.
	renderer := lipgloss.NewRenderer(os.Stdout, termenv.WithProfile(options.Profile))
	renderer.SetColorProfile(options.Profile)
	return &Canvas{
		width:      width,
		height:     height,
		pixels:     make([]color.RGBA, width*height*2),
		set:        make([]bool, width*height*2),
		text:       make([]rune, width*height),
		background: options.Background,
		label:      options.Label,
		renderer:   renderer,
	}
}

// Width returns the canvas width in columns.
func (c *Canvas) Width() int { return c.width }

// Height returns the canvas height in character rows.
func (c *Canvas) Height() int { return c.height }

// DrawCellBand fills the sub-pixels covered by rect. Edges are rounded
// to whole sub-pixels; a band thinner than half a sub-pixel after
// rounding still paints one sub-pixel row so thin categorical bands
// remain visible.
func (c *Canvas) DrawCellBand(rect layout.Rect, fill color.RGBA) {
	if rect.Empty() {
		return
	}
	x0 := int(math.Round(rect.X))
	x1 := int(math.Round(rect.X + rect.W))
	y0 := int(math.Round(rect.Y))
	y1 := int(math.Round(rect.Y + rect.H))
	if y1 == y0 {
		y1 = y0 + 1
	}
	x0, x1 = max(x0, 0), min(x1, c.width)
	y0, y1 = max(y0, 0), min(y1, c.height*2)
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			index := y*c.width + x
			c.pixels[index] = fill
			c.set[index] = true
		}
	}
}

// DrawLabel writes text on the character row containing point.Y.
// Characters falling outside the canvas are dropped.
func (c *Canvas) DrawLabel(point layout.Point, text string, align render.Align) {
	runes := []rune(text)
	if len(runes) == 0 {
		return
	}
	row := int(math.Floor(point.Y / 2))
	if row < 0 || row >= c.height {
		return
	}
	start := int(math.Round(point.X))
	switch align {
	case render.AlignCenter:
		start -= len(runes) / 2
	case render.AlignRight:
		start -= len(runes)
	}
	for i, r := range runes {
		column := start + i
		if column < 0 || column >= c.width {
			continue
		}
		c.text[row*c.width+column] = r
	}
}

// Lines renders the canvas as one styled string per character row.
// Adjacent characters with the same colours share one styled run.
func (c *Canvas) Lines() []string {
	lines := make([]string, c.height)
	for row := range c.height {
		var line strings.Builder
		var run strings.Builder
		var current glyphStyle
		flush := func() {
			if run.Len() == 0 {
				return
			}
			line.WriteString(c.style(current).Render(run.String()))
			run.Reset()
		}
		for column := range c.width {
			character, style := c.glyph(row, column)
			if run.Len() > 0 && style != current {
				flush()
			}
			current = style
			run.WriteString(character)
		}
		flush()
		lines[row] = line.String()
	}
	return lines
}

// String renders the canvas with rows joined by newlines.
func (c *Canvas) String() string {
	return strings.Join(c.Lines(), "\n")
}

type glyphStyle struct {
	foreground color.RGBA
	background color.RGBA
}

func (c *Canvas) glyph(row, column int) (string, glyphStyle) {
	if r := c.text[row*c.width+column]; r != 0 {
		return string(r), glyphStyle{foreground: c.label, background: c.background}
	}
	top := c.subPixel(row*2, column)
	bottom := c.subPixel(row*2+1, column)
	if top == c.background && bottom == c.background {
		return " ", glyphStyle{foreground: c.background, background: c.background}
	}
	return halfBlock, glyphStyle{foreground: top, background: bottom}
}

func (c *Canvas) subPixel(y, x int) color.RGBA {
	index := y*c.width + x
	if !c.set[index] {
		return c.background
	}
	return c.pixels[index]
}

func (c *Canvas) style(style glyphStyle) lipgloss.Style {
	return c.renderer.NewStyle().
		Foreground(lipgloss.Color(render.Hex(style.foreground))).
		Background(lipgloss.Color(render.Hex(style.background)))
}
