// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package engine owns the oncoprint data flow and its scheduling:
//
//	records + selection → matrix build → memo sort → layout →
//	visible columns → draw, with hit testing on pointer events.
//
// Structural input changes (records, mode, features, attribute, sort
// flag) mark the engine loading and schedule a deferred rebuild; a
// newer change cancels the pending rebuild and schedules its own, and a
// generation counter drops any rebuild that was already running when
// it was superseded. Builds go through a fingerprint-keyed result
// cache.
//
// Scroll events are coalesced to one visible-range recompute per frame
// interval, using the latest offset. Resizes recompute layout and the
// visible range immediately. Neither touches the matrix or the orders.
//
// All time goes through a [clock.Clock]. Engine methods are safe for
// concurrent use: real timers fire on their own goroutines, so one
// mutex guards the state. Callbacks run outside the lock and may call
// back into the engine.
package engine

import (
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/mskilab-org/gOS-sub001/lib/clock"
	"github.com/mskilab-org/gOS-sub001/lib/cohort"
	"github.com/mskilab-org/gOS-sub001/lib/layout"
	"github.com/mskilab-org/gOS-sub001/lib/memosort"
	"github.com/mskilab-org/gOS-sub001/lib/resultcache"
)

// Options configures an Engine. Zero values select defaults.
type Options struct {
	Clock  clock.Clock
	Logger *slog.Logger

	// Geometry is the fixed layout configuration, in the units of the
	// backend that will draw the frames.
	Geometry layout.Config

	// Buffer widens the visible column window on both sides.
	Buffer float64

	Precision           memosort.Precision
	CategoricalRowLimit int
	NumericRowLimit     int

	// RebuildDelay defers rebuilds after structural changes. Zero
	// rebuilds synchronously inside the call that changed the inputs.
	RebuildDelay time.Duration

	// FrameInterval coalesces scroll events. Zero applies every scroll
	// immediately.
	FrameInterval time.Duration

	Cache  *resultcache.Cache
	Parser *cohort.Parser

	// OnRedraw is called whenever the drawable state changes: loading
	// starts, a build lands, the visible range or layout changes.
	OnRedraw func()

	// OnCellHover receives the newly hovered cell, or nil when the
	// pointer leaves the matrix.
	OnCellHover func(*Cell)

	// OnCellClick receives a clicked cell.
	OnCellClick func(Cell)
}

// Engine holds the oncoprint state for one view.
type Engine struct {
	options Options
	clock   clock.Clock
	logger  *slog.Logger

	mu sync.Mutex

	inputs Inputs

	// Current build. nil until the first rebuild lands.
	entry  *resultcache.Entry
	status Status
	reason EmptyReason

	loading      bool
	generation   uint64
	rebuildTimer *clock.Timer

	params  layout.Params
	visible layout.Range
	scrollX float64

	pendingScroll float64
	scrollPending bool

	interaction Interaction
	closed      bool
}

// New creates an engine with no inputs. Status is NotComputed until the
// first SetInputs rebuild completes.
func New(options Options) *Engine {
	if options.Clock == nil {
		options.Clock = clock.Real()
	}
	if options.Logger == nil {
		options.Logger = slog.New(slog.DiscardHandler)
	}
	if options.Cache == nil {
		options.Cache = resultcache.New(0)
	}
	if options.Parser == nil {
		options.Parser = cohort.NewParser(0)
	}
	engine := &Engine{
		options: options,
		clock:   options.Clock,
		logger:  options.Logger,
		status:  StatusNotComputed,
	}
	engine.relayoutLocked()
	return engine
}

// SetInputs validates and applies a full set of inputs. Viewport and
// scroll take effect immediately; a change to any structural input
// schedules a rebuild.
func (e *Engine) SetInputs(inputs Inputs) error {
	if err := inputs.Validate(); err != nil {
		return err
	}
	inputs.Records = slices.Clone(inputs.Records)
	inputs.Features = slices.Clone(inputs.Features)

	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return nil
	}
	structural := e.entry == nil && !e.loading || structuralChange(e.inputs, inputs)
	e.inputs = inputs
	e.relayoutLocked()
	e.scrollX = layout.ClampScroll(inputs.ScrollX, inputs.Viewport.Width, e.params)
	e.visible = e.visibleLocked()
	e.mu.Unlock()

	if structural {
		e.scheduleRebuild()
		return nil
	}
	e.redraw()
	return nil
}

// SetSortEnabled toggles the memo sort. Toggling is a structural change
// and goes through the deferred rebuild; toggling back usually hits the
// result cache.
func (e *Engine) SetSortEnabled(enabled bool) {
	e.mu.Lock()
	if e.closed || e.inputs.SortEnabled == enabled {
		e.mu.Unlock()
		return
	}
	e.inputs.SortEnabled = enabled
	e.mu.Unlock()
	e.scheduleRebuild()
}

// Resize applies a new viewport: layout and visible range are recomputed
// at once and a redraw is requested.
func (e *Engine) Resize(viewport layout.Viewport) error {
	if err := validateViewport(viewport); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInputs, err)
	}
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return nil
	}
	e.inputs.Viewport = viewport
	e.relayoutLocked()
	e.scrollX = layout.ClampScroll(e.scrollX, viewport.Width, e.params)
	e.visible = e.visibleLocked()
	e.mu.Unlock()

	e.redraw()
	return nil
}

// Scroll records a horizontal scroll offset. The first call in a frame
// schedules a flush after FrameInterval; later calls in the same frame
// only replace the offset.
func (e *Engine) Scroll(scrollX float64) {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	e.pendingScroll = scrollX
	schedule := !e.scrollPending
	e.scrollPending = true
	e.mu.Unlock()

	switch {
	case !schedule:
	case e.options.FrameInterval <= 0:
		e.flushScroll()
	default:
		e.clock.AfterFunc(e.options.FrameInterval, e.flushScroll)
	}
}

// ScrollBy offsets the latest requested scroll position by delta.
func (e *Engine) ScrollBy(delta float64) {
	e.mu.Lock()
	base := e.scrollX
	if e.scrollPending {
		base = e.pendingScroll
	}
	e.mu.Unlock()
	e.Scroll(layout.ClampScroll(base+delta, e.viewportWidth(), e.Layout()))
}

func (e *Engine) flushScroll() {
	e.mu.Lock()
	if e.closed || !e.scrollPending {
		e.mu.Unlock()
		return
	}
	e.scrollPending = false
	scrollX := layout.ClampScroll(e.pendingScroll, e.inputs.Viewport.Width, e.params)
	changed := scrollX != e.scrollX
	e.scrollX = scrollX
	e.inputs.ScrollX = scrollX
	e.visible = e.visibleLocked()
	e.mu.Unlock()

	if changed {
		e.redraw()
	}
}

// Close cancels pending work. Later calls are ignored and pending
// callbacks become no-ops.
func (e *Engine) Close() {
	e.mu.Lock()
	e.closed = true
	e.generation++
	timer := e.rebuildTimer
	e.rebuildTimer = nil
	e.mu.Unlock()
	timer.Stop()
}

// scheduleRebuild marks the engine loading and (re)starts the rebuild
// timer: cancel-then-reschedule, so only the newest inputs are built.
func (e *Engine) scheduleRebuild() {
	e.mu.Lock()
	e.generation++
	generation := e.generation
	previous := e.rebuildTimer
	e.rebuildTimer = nil
	e.loading = true
	e.mu.Unlock()

	previous.Stop()
	e.redraw()

	if e.options.RebuildDelay <= 0 {
		e.rebuild(generation)
		return
	}
	timer := e.clock.AfterFunc(e.options.RebuildDelay, func() { e.rebuild(generation) })

	e.mu.Lock()
	if e.generation == generation && e.loading {
		e.rebuildTimer = timer
	}
	e.mu.Unlock()
}

// rebuild runs the build for generation outside the lock and installs
// the result only if no newer change arrived meanwhile.
func (e *Engine) rebuild(generation uint64) {
	e.mu.Lock()
	if e.closed || generation != e.generation {
		e.mu.Unlock()
		return
	}
	inputs := e.inputs
	e.mu.Unlock()

	entry := e.build(inputs)

	e.mu.Lock()
	if e.closed || generation != e.generation {
		e.mu.Unlock()
		e.logger.Debug("discarding superseded build", "generation", generation)
		return
	}
	e.entry = entry
	e.rebuildTimer = nil
	e.loading = false
	e.status, e.reason = classify(inputs, entry)
	e.relayoutLocked()
	e.scrollX = layout.ClampScroll(e.scrollX, e.inputs.Viewport.Width, e.params)
	e.visible = e.visibleLocked()
	leftHover := e.resetInteractionLocked()
	e.mu.Unlock()

	if leftHover && e.options.OnCellHover != nil {
		e.options.OnCellHover(nil)
	}
	e.redraw()
}

// relayoutLocked recomputes the layout for the current build and
// viewport. Callers hold e.mu.
func (e *Engine) relayoutLocked() {
	rows, cols := 0, 0
	if e.entry != nil {
		rows = len(e.entry.Order.Rows)
		cols = len(e.entry.Order.Cols)
	}
	e.params = layout.Calculate(e.inputs.Viewport, rows, cols, e.options.Geometry)
}

func (e *Engine) visibleLocked() layout.Range {
	return layout.VisibleColumns(e.scrollX, e.inputs.Viewport.Width, e.params, e.options.Buffer)
}

func (e *Engine) viewportWidth() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.inputs.Viewport.Width
}

func (e *Engine) redraw() {
	if e.options.OnRedraw != nil {
		e.options.OnRedraw()
	}
}

// structuralChange reports whether rebuilding is needed to go from old
// to next. Record and feature slices are compared element-wise by
// identity; records are immutable, so a new pointer means new data and
// the fingerprint decides whether the cache already has it.
func structuralChange(old, next Inputs) bool {
	return old.Mode != next.Mode ||
		old.Attribute != next.Attribute ||
		old.SortEnabled != next.SortEnabled ||
		!slices.Equal(old.Features, next.Features) ||
		!slices.Equal(old.Records, next.Records)
}
