// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package render paints an oncoprint frame through a minimal draw
// contract. The algorithmic side (which cells, which colours, where)
// lives here; a [Surface] backend only knows how to fill a rectangle and
// place a label.
//
// Two backends ship with the module: raster (an image.RGBA encoded to
// PNG) and termcanvas (a half-block character grid for the terminal
// viewer).
package render

import (
	"image/color"
	"slices"

	"github.com/mskilab-org/gOS-sub001/lib/layout"
	"github.com/mskilab-org/gOS-sub001/lib/matrix"
)

// Align positions a label relative to its anchor point. The anchor's Y
// is always the vertical centre of the text.
type Align int

const (
	// AlignLeft starts the text at the anchor.
	AlignLeft Align = iota
	// AlignCenter centres the text on the anchor.
	AlignCenter
	// AlignRight ends the text at the anchor.
	AlignRight
)

// Surface is the draw contract a backend implements.
type Surface interface {
	// DrawCellBand fills rect with a solid colour.
	DrawCellBand(rect layout.Rect, fill color.RGBA)
	// DrawLabel draws text anchored at point.
	DrawLabel(point layout.Point, text string, align Align)
}

// Notice selects the empty-state message drawn instead of the grid.
type Notice int

const (
	// NoticeNone draws the grid.
	NoticeNone Notice = iota
	// NoticeNotComputed is shown before the first build completes.
	NoticeNotComputed
	// NoticeNoFeatures is shown when the row set is empty.
	NoticeNoFeatures
	// NoticeNoSignal is shown when no sample has signal among the rows.
	NoticeNoSignal
	// NoticeNoRecords is shown when the cohort holds no samples.
	NoticeNoRecords
)

// Message returns the human-readable empty-state text.
func (n Notice) Message() string {
	switch n {
	case NoticeNotComputed:
		return "Matrix not computed yet"
	case NoticeNoFeatures:
		return "No features selected"
	case NoticeNoSignal:
		return "No samples with signal for the selected features"
	case NoticeNoRecords:
		return "No samples in the cohort"
	default:
		return ""
	}
}

// Frame is everything one draw needs. Rows and Cols are the ordered
// labels; Visible is the virtualized column window for ScrollX.
type Frame struct {
	Matrix   *matrix.Matrix
	Rows     []string
	Cols     []string
	Layout   layout.Params
	Visible  layout.Range
	ScrollX  float64
	Viewport layout.Viewport

	// MaxValue is the top of the numeric intensity scale. The engine
	// computes it once per build; zero means "derive from Matrix".
	MaxValue float64

	// Notice forces an empty-state message. When NoticeNone, an empty
	// row or column set still selects the matching message.
	Notice Notice
}

// Renderer draws frames. The zero value is not usable; start from
// NewRenderer.
type Renderer struct {
	Palette Palette

	// LabelThreshold is the minimum cell width at which column labels
	// are drawn.
	LabelThreshold float64

	// LabelPadding separates labels from the grid.
	LabelPadding float64
}

// NewRenderer returns a renderer with the default palette and pixel
// label settings.
func NewRenderer() *Renderer {
	return &Renderer{
		Palette:        DefaultPalette(),
		LabelThreshold: 12,
		LabelPadding:   4,
	}
}

// Draw paints one frame onto surface: every ordered row, and only the
// columns in frame.Visible. Cells are placed by their absolute column
// index, so geometry is stable while scrolling, and are clipped at the
// row-label margin.
func (r *Renderer) Draw(surface Surface, frame Frame) {
	notice := frame.Notice
	if notice == NoticeNone {
		switch {
		case len(frame.Rows) == 0:
			notice = NoticeNoFeatures
		case len(frame.Cols) == 0:
			notice = NoticeNoSignal
		}
	}
	if notice != NoticeNone {
		r.drawNotice(surface, frame, notice)
		return
	}

	params := frame.Layout
	visible := clampRange(frame.Visible, len(frame.Cols))
	numeric := frame.Matrix.Mode() == matrix.Numeric
	maximum := frame.MaxValue
	if numeric && maximum <= 0 {
		maximum = frame.Matrix.MaxValue()
	}

	for rowIndex, feature := range frame.Rows {
		for colIndex := visible.Start; colIndex < visible.End; colIndex++ {
			rect := params.CellRect(rowIndex, colIndex, frame.ScrollX)
			if rect.ClipLeft(params.Margins.Left).Empty() {
				continue
			}
			cell, ok := frame.Matrix.Lookup(feature, frame.Cols[colIndex])
			if numeric {
				r.drawNumeric(surface, rect, params.Margins.Left, cell, ok, maximum)
			} else {
				r.drawCategorical(surface, rect, params.Margins.Left, cell, ok)
			}
		}
	}

	r.drawRowLabels(surface, frame)
	if params.ColumnLabelsLegible(r.LabelThreshold) {
		r.drawColumnLabels(surface, frame, visible)
	}
}

func (r *Renderer) drawCategorical(surface Surface, rect layout.Rect, clipX float64, cell matrix.Cell, ok bool) {
	categories := distinctCategories(cell)
	if !ok || len(categories) == 0 {
		surface.DrawCellBand(rect.ClipLeft(clipX), r.Palette.NoData)
		return
	}
	bandHeight := rect.H / float64(len(categories))
	for i, category := range categories {
		band := layout.Rect{
			X: rect.X,
			Y: rect.Y + float64(i)*bandHeight,
			W: rect.W,
			H: bandHeight,
		}
		surface.DrawCellBand(band.ClipLeft(clipX), r.Palette.CategoryColor(category))
	}
}

func (r *Renderer) drawNumeric(surface Surface, rect layout.Rect, clipX float64, cell matrix.Cell, ok bool, maximum float64) {
	fill := r.Palette.NoData
	if ok && cell.Value != 0 {
		fill = r.Palette.Intensity(cell.Value, maximum)
	}
	surface.DrawCellBand(rect.ClipLeft(clipX), fill)
}

// Row labels are not virtualized: the row count is bounded by the
// builders' row limits.
func (r *Renderer) drawRowLabels(surface Surface, frame Frame) {
	params := frame.Layout
	x := params.Margins.Left - r.LabelPadding
	for rowIndex, feature := range frame.Rows {
		center := params.CellRect(rowIndex, 0, 0).Center()
		surface.DrawLabel(layout.Point{X: x, Y: center.Y}, feature, AlignRight)
	}
}

func (r *Renderer) drawColumnLabels(surface Surface, frame Frame, visible layout.Range) {
	params := frame.Layout
	y := params.Margins.Top - r.LabelPadding
	for colIndex := visible.Start; colIndex < visible.End; colIndex++ {
		center := params.CellRect(0, colIndex, frame.ScrollX).Center()
		if center.X < params.Margins.Left {
			continue
		}
		surface.DrawLabel(layout.Point{X: center.X, Y: y}, frame.Cols[colIndex], AlignCenter)
	}
}

func (r *Renderer) drawNotice(surface Surface, frame Frame, notice Notice) {
	center := layout.Point{X: frame.Viewport.Width / 2, Y: frame.Viewport.Height / 2}
	surface.DrawLabel(center, notice.Message(), AlignCenter)
}

// distinctCategories lists the categories of a cell in first-appearance
// order.
func distinctCategories(cell matrix.Cell) []string {
	if len(cell.Alterations) == 0 {
		return nil
	}
	categories := make([]string, 0, len(cell.Alterations))
	for _, alteration := range cell.Alterations {
		if !slices.Contains(categories, alteration.Category) {
			categories = append(categories, alteration.Category)
		}
	}
	return categories
}

func clampRange(r layout.Range, count int) layout.Range {
	r.Start = min(max(r.Start, 0), count)
	r.End = min(max(r.End, r.Start), count)
	return r
}
