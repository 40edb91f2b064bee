// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides YAML configuration loading for the oncoprint
// tools.
//
// Configuration is loaded from a single file specified by either the
// ONCOPRINT_CONFIG environment variable (via [Load]) or a --config flag
// (via [LoadFile]). There is no automatic file search. Values absent
// from the file keep their [Default].
//
// Sections:
//
//   - layout: pixel geometry for raster output (margins, cell bands,
//     gap, virtualization buffer, label threshold)
//   - terminal: the same geometry in terminal units for the viewer
//     (one column wide, half a character row high)
//   - matrix: row limits of the two build strategies
//   - sort: memo-sort default and score precision
//   - schedule: deferred rebuild delay and scroll frame interval
//   - cache: result cache and per-record parse cache sizes
//   - palette: category colours, no-data, numeric scale, labels
//   - output: default directory for rendered files
//
// Variable expansion is performed on output.directory after loading:
// ${HOME} and ${VAR:-default} patterns are expanded.
//
// This package depends only on the geometry, rendering and sorting
// value types it converts into.
package config
