// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package tui provides the terminal chrome shared by the interactive
// oncoprint viewer: the colour theme, a horizontal scrollbar, and
// ANSI-aware overlay splicing for hover tooltips.
//
// Components are plain functions over strings so they compose with any
// bubbletea View. The viewer owns its data, its layout and the drawing of
// the matrix itself.
package tui
