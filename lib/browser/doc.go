// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package browser implements the interactive terminal oncoprint viewer
// on bubbletea.
//
// The [Model] drives an [engine.Engine] and draws its frames on a
// [termcanvas.Canvas]: one terminal column per layout unit horizontally
// and two sub-pixels per character row vertically.
//
// Screen layout, top to bottom:
//
//	header     mode, matrix size, sort flag, build status
//	matrix     row labels on the left, cells to the right
//	scrollbar  horizontal position within the ordered columns
//	status     key help, the selected cell, or the latest log record
//
// Pointer motion over the matrix hovers cells and shows a tooltip; a
// left click selects a cell; the wheel and the arrow keys scroll
// horizontally. Scroll events go through the engine, which coalesces
// them per frame.
//
// Engine callbacks fire on timer goroutines. They reach the program
// through a [Relay], which posts messages without blocking the caller,
// so the engine (and slog, via [StatusLogHandler]) may be called from
// inside Update.
package browser
