// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package engine

import (
	"github.com/mskilab-org/gOS-sub001/lib/matrix"
)

// Cell is a resolved matrix position: the ordered feature and sample
// under the pointer and the data stored there. Present is false for a
// grid position without signal; Data is then the zero Cell.
type Cell struct {
	Feature  string      `json:"feature"`
	SampleID string      `json:"sample_id"`
	Data     matrix.Cell `json:"data"`
	Present  bool        `json:"present"`

	// Row and Col index the ordered rows and columns.
	Row int `json:"row"`
	Col int `json:"col"`
}

// InteractionState is the pointer state machine:
//
//	Idle → Hovering(cell) → Idle            on leave
//	Idle|Hovering → Clicked(cell) → Idle    on click
type InteractionState int

const (
	Idle InteractionState = iota
	Hovering
	Clicked
)

// String returns a lower-case name for logs.
func (s InteractionState) String() string {
	switch s {
	case Idle:
		return "idle"
	case Hovering:
		return "hovering"
	case Clicked:
		return "clicked"
	default:
		return "unknown"
	}
}

// Interaction is the current pointer state. Cell is nil when Idle.
type Interaction struct {
	State InteractionState
	Cell  *Cell
}

// CellAt resolves a surface position to a cell using the current layout,
// orders and scroll offset. It returns nil outside the grid, before the
// first build, and for empty builds.
func (e *Engine) CellAt(x, y float64) *Cell {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cellAtLocked(x, y)
}

func (e *Engine) cellAtLocked(x, y float64) *Cell {
	if e.entry == nil || e.status != StatusReady {
		return nil
	}
	hit, ok := e.params.HitTest(x, y, e.scrollX)
	if !ok {
		return nil
	}
	rows := e.entry.Order.Rows
	cols := e.entry.Order.Cols
	if hit.Row >= len(rows) || hit.Col >= len(cols) {
		return nil
	}
	feature := rows[hit.Row]
	sampleID := cols[hit.Col]
	data, present := e.entry.Result.Matrix.Lookup(feature, sampleID)
	return &Cell{
		Feature:  feature,
		SampleID: sampleID,
		Data:     data,
		Present:  present,
		Row:      hit.Row,
		Col:      hit.Col,
	}
}

// PointerMove updates hover state for a pointer at (x, y). Entering a
// new cell emits OnCellHover(cell); leaving the grid emits
// OnCellHover(nil). Moving within the same cell emits nothing.
func (e *Engine) PointerMove(x, y float64) {
	e.mu.Lock()
	cell := e.cellAtLocked(x, y)
	var emit func()
	switch {
	case cell == nil && e.interaction.State == Hovering:
		e.interaction = Interaction{State: Idle}
		emit = func() { e.hover(nil) }
	case cell == nil:
	case e.interaction.State == Hovering && sameCell(e.interaction.Cell, cell):
	default:
		e.interaction = Interaction{State: Hovering, Cell: cell}
		hovered := *cell
		emit = func() { e.hover(&hovered) }
	}
	e.mu.Unlock()

	if emit != nil {
		emit()
	}
}

// PointerLeave returns to Idle when the pointer leaves the surface.
func (e *Engine) PointerLeave() {
	e.mu.Lock()
	left := e.resetInteractionLocked()
	e.mu.Unlock()
	if left {
		e.hover(nil)
	}
}

// Click resolves (x, y) and, when it hits a cell, passes through
// Clicked(cell) to Idle and emits OnCellClick. It reports the clicked
// cell, or nil for a miss.
func (e *Engine) Click(x, y float64) *Cell {
	e.mu.Lock()
	cell := e.cellAtLocked(x, y)
	if cell == nil {
		e.mu.Unlock()
		return nil
	}
	wasHovering := e.interaction.State == Hovering
	e.interaction = Interaction{State: Clicked, Cell: cell}
	clicked := *cell
	e.mu.Unlock()

	if e.options.OnCellClick != nil {
		e.options.OnCellClick(clicked)
	}

	e.mu.Lock()
	if e.interaction.State == Clicked {
		e.interaction = Interaction{State: Idle}
	}
	e.mu.Unlock()
	if wasHovering {
		e.hover(nil)
	}
	return &clicked
}

// Interaction returns the current pointer state.
func (e *Engine) Interaction() Interaction {
	e.mu.Lock()
	defer e.mu.Unlock()
	interaction := e.interaction
	if interaction.Cell != nil {
		copied := *interaction.Cell
		interaction.Cell = &copied
	}
	return interaction
}

// resetInteractionLocked returns to Idle and reports whether a hover
// ended, in which case the caller emits OnCellHover(nil).
func (e *Engine) resetInteractionLocked() bool {
	wasHovering := e.interaction.State == Hovering
	e.interaction = Interaction{State: Idle}
	return wasHovering
}

func (e *Engine) hover(cell *Cell) {
	if e.options.OnCellHover != nil {
		e.options.OnCellHover(cell)
	}
}

func sameCell(a, b *Cell) bool {
	return a != nil && b != nil && a.Feature == b.Feature && a.SampleID == b.SampleID
}
