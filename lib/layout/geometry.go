// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package layout

import "math"

// Point is a position on the drawing surface.
type Point struct {
	X float64
	Y float64
}

// Rect is an axis-aligned rectangle. W and H are never negative.
type Rect struct {
	X float64
	Y float64
	W float64
	H float64
}

// Center returns the midpoint of the rectangle.
func (r Rect) Center() Point {
	return Point{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// ClipLeft removes the part of the rectangle left of x.
func (r Rect) ClipLeft(x float64) Rect {
	if r.X >= x {
		return r
	}
	cut := x - r.X
	r.X = x
	r.W = math.Max(r.W-cut, 0)
	return r
}

// Hit is a resolved grid position: indices into the ordered rows and
// ordered columns.
type Hit struct {
	Row int
	Col int
}

// CellRect places the cell at (row, col) for a horizontal scroll offset.
// col is the absolute index in the full ordered column sequence, so a
// cell keeps its geometry regardless of which columns are visible.
func (p Params) CellRect(row, col int, scrollX float64) Rect {
	return Rect{
		X: p.Margins.Left + float64(col)*p.ColumnStep() - scrollX,
		Y: p.Margins.Top + float64(row)*p.RowStep(),
		W: p.CellWidth,
		H: p.CellHeight,
	}
}

// HitTest maps a surface position under scroll offset scrollX back to a
// cell. It returns false for points outside the grid or in the label
// margins. Gaps between cells miss too, so a hit always lies inside the
// drawn [Params.CellRect].
func (p Params) HitTest(x, y, scrollX float64) (Hit, bool) {
	if math.IsNaN(x) || math.IsNaN(y) {
		return Hit{}, false
	}
	if x < p.Margins.Left || y < p.Margins.Top {
		return Hit{}, false
	}
	columnStep := p.ColumnStep()
	rowStep := p.RowStep()
	if columnStep <= 0 || rowStep <= 0 {
		return Hit{}, false
	}

	colOffset := x - p.Margins.Left + scrollX
	rowOffset := y - p.Margins.Top
	colPosition := math.Floor(colOffset / columnStep)
	rowPosition := math.Floor(rowOffset / rowStep)
	if colPosition < 0 || rowPosition < 0 ||
		colPosition >= float64(p.ColCount) || rowPosition >= float64(p.RowCount) {
		return Hit{}, false
	}
	if colOffset-colPosition*columnStep >= p.CellWidth ||
		rowOffset-rowPosition*rowStep >= p.CellHeight {
		return Hit{}, false
	}
	return Hit{Row: int(rowPosition), Col: int(colPosition)}, true
}
