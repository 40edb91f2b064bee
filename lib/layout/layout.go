// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package layout holds the oncoprint geometry: cell sizing from the
// viewport, the visible column window under horizontal scrolling, and
// the inverse mapping from a pointer position back to a cell.
//
// Forward placement ([Params.CellRect]) and hit testing
// ([Params.HitTest]) are written against the same fields of [Params],
// so a point at the centre of a drawn cell always hits that cell.
//
// Units are abstract: pixels for the raster backend, terminal columns
// and half character rows for the terminal canvas.
package layout

import "math"

// Viewport is the visible drawing area.
type Viewport struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Margins reserve space around the cell grid. Left holds row labels and
// Top holds column labels.
type Margins struct {
	Top    float64 `json:"top" yaml:"top"`
	Right  float64 `json:"right" yaml:"right"`
	Bottom float64 `json:"bottom" yaml:"bottom"`
	Left   float64 `json:"left" yaml:"left"`
}

// Band is an inclusive [Min, Max] size range.
type Band struct {
	Min float64 `json:"min" yaml:"min"`
	Max float64 `json:"max" yaml:"max"`
}

// Clamp bounds value to the band. A NaN value yields Max.
func (b Band) Clamp(value float64) float64 {
	if math.IsNaN(value) {
		return b.Max
	}
	return math.Min(b.Max, math.Max(b.Min, value))
}

// Config is the fixed part of the geometry.
type Config struct {
	Margins    Margins
	CellWidth  Band
	CellHeight Band
	CellGap    float64
}

// DefaultConfig returns pixel geometry suitable for raster output.
func DefaultConfig() Config {
	return Config{
		Margins:    Margins{Top: 64, Right: 8, Bottom: 8, Left: 96},
		CellWidth:  Band{Min: 4, Max: 24},
		CellHeight: Band{Min: 12, Max: 28},
		CellGap:    1,
	}
}

// Params is the computed geometry for one viewport and matrix shape.
type Params struct {
	CellWidth  float64 `json:"cell_width"`
	CellHeight float64 `json:"cell_height"`
	CellGap    float64 `json:"cell_gap"`
	Margins    Margins `json:"margins"`
	RowCount   int     `json:"row_count"`
	ColCount   int     `json:"col_count"`

	// ContentWidth and ContentHeight are the full extent of the grid
	// including margins.
	ContentWidth  float64 `json:"content_width"`
	ContentHeight float64 `json:"content_height"`

	// SurfaceHeight is max(viewport height, ContentHeight): short
	// matrices fill the viewport, tall ones scroll vertically.
	SurfaceHeight float64 `json:"surface_height"`
}

// Calculate sizes cells so the grid fills the viewport, within the
// configured bands:
//
//	cellWidth  = clamp(innerWidth  / colCount, CellWidth)
//	cellHeight = clamp(innerHeight / rowCount, CellHeight)
//
// where the inner sizes subtract the margins. A zero count uses the
// band maximum.
func Calculate(viewport Viewport, rowCount, colCount int, config Config) Params {
	rowCount = max(rowCount, 0)
	colCount = max(colCount, 0)
	margins := config.Margins
	gap := math.Max(config.CellGap, 0)

	innerWidth := math.Max(viewport.Width-margins.Left-margins.Right, 0)
	innerHeight := math.Max(viewport.Height-margins.Top-margins.Bottom, 0)

	cellWidth := config.CellWidth.Max
	if colCount > 0 {
		cellWidth = config.CellWidth.Clamp(innerWidth / float64(colCount))
	}
	cellHeight := config.CellHeight.Max
	if rowCount > 0 {
		cellHeight = config.CellHeight.Clamp(innerHeight / float64(rowCount))
	}

	params := Params{
		CellWidth:  cellWidth,
		CellHeight: cellHeight,
		CellGap:    gap,
		Margins:    margins,
		RowCount:   rowCount,
		ColCount:   colCount,
	}
	params.ContentWidth = margins.Left + margins.Right + float64(colCount)*params.ColumnStep()
	params.ContentHeight = margins.Top + margins.Bottom + float64(rowCount)*params.RowStep()
	params.SurfaceHeight = math.Max(viewport.Height, params.ContentHeight)
	return params
}

// ColumnStep is the horizontal distance between consecutive columns.
func (p Params) ColumnStep() float64 { return p.CellWidth + p.CellGap }

// RowStep is the vertical distance between consecutive rows.
func (p Params) RowStep() float64 { return p.CellHeight + p.CellGap }

// ColumnLabelsLegible reports whether columns are at least threshold
// wide, the point below which column labels are skipped.
func (p Params) ColumnLabelsLegible(threshold float64) bool {
	return p.CellWidth >= threshold
}
