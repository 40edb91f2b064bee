// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package render

import (
	"fmt"
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/zeebo/blake3"
)

// Palette maps cell content to fill colours.
type Palette struct {
	// Categories maps a normalized alteration category (lower-case,
	// underscores) to its band colour. Categories without an entry get
	// a colour derived from the category name.
	Categories map[string]color.RGBA

	// NoData fills cells without signal.
	NoData color.RGBA

	// Low and High bound the numeric intensity scale. A value of zero
	// maps to Low and the matrix maximum maps to High.
	Low  color.RGBA
	High color.RGBA

	// Label is the text colour and Background the surface fill.
	Label      color.RGBA
	Background color.RGBA
}

// DefaultPalette returns the standard oncoprint colours.
func DefaultPalette() Palette {
	return Palette{
		Categories: map[string]color.RGBA{
			"missense":      mustHex("#008000"),
			"trunc":         mustHex("#000000"),
			"truncating":    mustHex("#000000"),
			"nonsense":      mustHex("#000000"),
			"frameshift":    mustHex("#5e2a1e"),
			"inframe":       mustHex("#993404"),
			"in_frame_del":  mustHex("#993404"),
			"in_frame_ins":  mustHex("#993404"),
			"splice":        mustHex("#e6a300"),
			"amp":           mustHex("#ff0000"),
			"amplification": mustHex("#ff0000"),
			"homdel":        mustHex("#0000ff"),
			"deletion":      mustHex("#0000ff"),
			"gain":          mustHex("#ffb6c1"),
			"loss":          mustHex("#8fd3fe"),
			"fusion":        mustHex("#8b00c9"),
			"sv":            mustHex("#8b00c9"),
		},
		NoData:     mustHex("#e5e5e5"),
		Low:        mustHex("#f7fbff"),
		High:       mustHex("#08306b"),
		Label:      mustHex("#202020"),
		Background: mustHex("#ffffff"),
	}
}

// CategoryColor returns the configured colour for a category, or a
// colour derived deterministically from the category name: a blake3
// digest picks the hue of a mid-lightness HCL colour, so the same
// unknown category is always drawn the same way.
func (p Palette) CategoryColor(category string) color.RGBA {
	if fill, ok := p.Categories[category]; ok {
		return fill
	}
	digest := blake3.Sum256([]byte(category))
	hue := float64(uint16(digest[0])<<8|uint16(digest[1])) / 65536 * 360
	return toRGBA(colorful.Hcl(hue, 0.55, 0.6).Clamped())
}

// Intensity maps value onto the Low→High scale over [0, maximum],
// blending in CIE L*a*b* so equal value steps look like equal colour
// steps. Values outside the range are clamped; a non-positive maximum
// yields High for positive values and Low otherwise.
func (p Palette) Intensity(value, maximum float64) color.RGBA {
	switch {
	case math.IsNaN(value) || value <= 0:
		return p.Low
	case maximum <= 0 || value >= maximum:
		return p.High
	}
	low, _ := colorful.MakeColor(p.Low)
	high, _ := colorful.MakeColor(p.High)
	return toRGBA(low.BlendLab(high, value/maximum).Clamped())
}

// ParseHex converts "#rrggbb" (or "#rgb") to an opaque colour.
func ParseHex(text string) (color.RGBA, error) {
	parsed, err := colorful.Hex(text)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("parsing colour %q: %w", text, err)
	}
	return toRGBA(parsed), nil
}

// Hex formats an opaque colour as "#rrggbb".
func Hex(fill color.RGBA) string {
	converted, _ := colorful.MakeColor(color.RGBA{R: fill.R, G: fill.G, B: fill.B, A: 255})
	return converted.Hex()
}

func mustHex(text string) color.RGBA {
	parsed, err := ParseHex(text)
	if err != nil {
		panic(err)
	}
	return parsed
}

func toRGBA(c colorful.Color) color.RGBA {
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}
