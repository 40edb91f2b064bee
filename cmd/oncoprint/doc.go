// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Oncoprint builds, renders and browses feature × sample alteration
// matrices from cohort files.
//
// Usage:
//
//	oncoprint order  <cohort.json> [--features TP53,ATM] [--format json|cbor]
//	oncoprint render <cohort.json> [--format png|ansi] [-o out.png]
//	oncoprint view   <cohort.json> [--mode numeric --attribute cnv]
//	oncoprint version [--json]
//
// Configuration is read from --config, then $ONCOPRINT_CONFIG, and
// otherwise defaults apply. Exit codes: 0 success, 1 internal error,
// 2 invalid input, 3 missing file.
package main
