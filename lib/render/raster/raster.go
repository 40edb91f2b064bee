// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package raster implements the render draw contract on an in-memory
// RGBA image, for PNG export of an oncoprint.
package raster

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/mskilab-org/gOS-sub001/lib/layout"
	"github.com/mskilab-org/gOS-sub001/lib/render"
)

// Canvas is a render.Surface backed by an image.RGBA. Coordinates are
// pixels; fractional rectangle edges are rounded to the nearest pixel so
// adjacent cells and bands tile without seams.
type Canvas struct {
	image      *image.RGBA
	face       font.Face
	labelColor *image.Uniform
}

// New creates a width×height canvas filled with background. Labels are
// drawn in labelColor with the 7×13 bitmap face.
func New(width, height int, background, labelColor color.RGBA) *Canvas {
	canvas := &Canvas{
		image:      image.NewRGBA(image.Rect(0, 0, max(width, 1), max(height, 1))),
		face:       basicfont.Face7x13,
		labelColor: image.NewUniform(labelColor),
	}
	draw.Draw(canvas.image, canvas.image.Bounds(), image.NewUniform(background), image.Point{}, draw.Src)
	return canvas
}

// DrawCellBand fills rect, clipped to the image bounds.
func (c *Canvas) DrawCellBand(rect layout.Rect, fill color.RGBA) {
	target := image.Rect(
		int(math.Round(rect.X)),
		int(math.Round(rect.Y)),
		int(math.Round(rect.X+rect.W)),
		int(math.Round(rect.Y+rect.H)),
	).Intersect(c.image.Bounds())
	if target.Empty() {
		return
	}
	draw.Draw(c.image, target, image.NewUniform(fill), image.Point{}, draw.Src)
}

// DrawLabel draws text with its vertical centre on point.Y.
func (c *Canvas) DrawLabel(point layout.Point, text string, align render.Align) {
	if text == "" {
		return
	}
	drawer := &font.Drawer{Dst: c.image, Src: c.labelColor, Face: c.face}
	width := drawer.MeasureString(text).Ceil()

	x := int(math.Round(point.X))
	switch align {
	case render.AlignCenter:
		x -= width / 2
	case render.AlignRight:
		x -= width
	}
	// The baseline sits half the cap height below the centre line.
	ascent := c.face.Metrics().Ascent.Ceil()
	y := int(math.Round(point.Y)) + ascent/2

	drawer.Dot = fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)}
	drawer.DrawString(text)
}

// Image returns the underlying image.
func (c *Canvas) Image() *image.RGBA {
	return c.image
}

// EncodePNG writes the canvas as PNG.
func (c *Canvas) EncodePNG(w io.Writer) error {
	if err := png.Encode(w, c.image); err != nil {
		return fmt.Errorf("encoding png: %w", err)
	}
	return nil
}
