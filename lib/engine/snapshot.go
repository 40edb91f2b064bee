// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package engine

import (
	"slices"

	"github.com/mskilab-org/gOS-sub001/lib/layout"
	"github.com/mskilab-org/gOS-sub001/lib/matrix"
	"github.com/mskilab-org/gOS-sub001/lib/render"
)

// Snapshot is a render-ready copy of the engine state.
type Snapshot struct {
	Status      Status        `json:"status"`
	EmptyReason EmptyReason   `json:"empty_reason"`
	Loading     bool          `json:"loading"`
	OrderedRows []string      `json:"ordered_rows"`
	OrderedCols []string      `json:"ordered_cols"`
	Layout      layout.Params `json:"layout"`
	Visible     layout.Range  `json:"visible"`
	ScrollX     float64       `json:"scroll_x"`

	Viewport    layout.Viewport `json:"viewport"`
	SortEnabled bool            `json:"sort_enabled"`
	Mode        matrix.Mode     `json:"mode"`
}

// Snapshot returns the current state. The slices are copies.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	snapshot := Snapshot{
		Status:      e.status,
		EmptyReason: e.reason,
		Loading:     e.loading,
		Layout:      e.params,
		Visible:     e.visible,
		ScrollX:     e.scrollX,
		Viewport:    e.inputs.Viewport,
		SortEnabled: e.inputs.SortEnabled,
		Mode:        e.inputs.Mode,
	}
	if e.entry != nil {
		snapshot.OrderedRows = slices.Clone(e.entry.Order.Rows)
		snapshot.OrderedCols = slices.Clone(e.entry.Order.Cols)
	}
	return snapshot
}

// Layout returns the current layout parameters.
func (e *Engine) Layout() layout.Params {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.params
}

// Matrix returns the matrix of the current build, or nil before the
// first build. The matrix is immutable.
func (e *Engine) Matrix() *matrix.Matrix {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.entry == nil {
		return nil
	}
	return e.entry.Result.Matrix
}

// Frame assembles the render frame for the current state. The ordered
// slices are shared with the current build, which is never mutated.
func (e *Engine) Frame() render.Frame {
	e.mu.Lock()
	defer e.mu.Unlock()
	frame := render.Frame{
		Layout:   e.params,
		Visible:  e.visible,
		ScrollX:  e.scrollX,
		Viewport: e.inputs.Viewport,
		Notice:   notice(e.status, e.reason),
	}
	if e.entry != nil {
		frame.Matrix = e.entry.Result.Matrix
		frame.Rows = e.entry.Order.Rows
		frame.Cols = e.entry.Order.Cols
		frame.MaxValue = e.entry.MaxValue
	}
	return frame
}

// Draw renders the current frame onto surface.
func (e *Engine) Draw(renderer *render.Renderer, surface render.Surface) {
	renderer.Draw(surface, e.Frame())
}

func notice(status Status, reason EmptyReason) render.Notice {
	switch status {
	case StatusNotComputed:
		return render.NoticeNotComputed
	case StatusEmpty:
		switch reason {
		case EmptyNoRecords:
			return render.NoticeNoRecords
		case EmptyNoFeatures:
			return render.NoticeNoFeatures
		default:
			return render.NoticeNoSignal
		}
	default:
		return render.NoticeNone
	}
}
