// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package layout

import "math"

// Range is a half-open interval [Start, End) of column indices.
type Range struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Len returns the number of columns in the range.
func (r Range) Len() int { return r.End - r.Start }

// Contains reports whether col is inside the range.
func (r Range) Contains(col int) bool { return col >= r.Start && col < r.End }

// VisibleColumns returns the columns that intersect the viewport at
// horizontal offset scrollX, widened on both sides by bufferPixels worth
// of columns:
//
//	buffer = ceil(bufferPixels / step)
//	start  = max(0, floor(scrollX / step) − buffer)
//	end    = min(colCount, ceil((scrollX + viewportWidth − left) / step) + buffer)
//
// The result always satisfies 0 ≤ Start ≤ End ≤ ColCount.
func VisibleColumns(scrollX, viewportWidth float64, params Params, bufferPixels float64) Range {
	step := params.ColumnStep()
	if params.ColCount <= 0 || step <= 0 {
		return Range{}
	}
	scrollX = finiteOrZero(scrollX)
	viewportWidth = finiteOrZero(viewportWidth)

	buffer := 0.0
	if bufferPixels > 0 && !math.IsInf(bufferPixels, 0) {
		buffer = math.Ceil(bufferPixels / step)
	}

	// Clamp in float64 before converting so extreme offsets cannot
	// overflow int.
	count := float64(params.ColCount)
	start := math.Floor(scrollX/step) - buffer
	end := math.Ceil((scrollX+viewportWidth-params.Margins.Left)/step) + buffer

	start = math.Min(math.Max(start, 0), count)
	end = math.Min(math.Max(end, start), count)
	return Range{Start: int(start), End: int(end)}
}

// MaxScroll is the largest useful horizontal offset for a viewport.
func MaxScroll(viewportWidth float64, params Params) float64 {
	return math.Max(0, params.ContentWidth-finiteOrZero(viewportWidth))
}

// ClampScroll bounds a requested offset to [0, MaxScroll].
func ClampScroll(scrollX, viewportWidth float64, params Params) float64 {
	return math.Min(math.Max(finiteOrZero(scrollX), 0), MaxScroll(viewportWidth, params))
}

func finiteOrZero(value float64) float64 {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0
	}
	return value
}
