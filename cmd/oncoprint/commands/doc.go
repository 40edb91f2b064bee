// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands builds the oncoprint command tree.
//
// Every subcommand loads a cohort file and a configuration, drives a
// [engine.Engine] with the selection given on the command line, and
// presents the result: order prints the ordered rows and columns,
// render draws one frame to a PNG file or the terminal, and view opens
// the interactive browser. Batch commands run the engine with zero
// scheduling delays, so every build completes inside SetInputs.
package commands
