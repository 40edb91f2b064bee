// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli provides the command-line framework for the oncoprint
// binary.
//
// The central type is [Command], a named subcommand with optional
// nested [Command.Subcommands], a [pflag.FlagSet] factory, and a Run
// function. Commands are assembled into a tree in
// cmd/oncoprint/commands and dispatched via [Command.Execute], which
// handles flag parsing, subcommand routing, and help output with
// examples.
//
// Flag sets are usually built from tagged parameter structs with
// [FlagsFromParams]. When a user types an unknown subcommand or flag,
// the framework suggests the closest known name by Levenshtein
// distance (threshold: distance <= 3).
//
// Errors returned by commands are classified with [ToolError]
// (validation, not found, internal); the binary maps the category to an
// exit code. [ExitError] signals a non-zero exit whose message the
// command has already printed.
package cli
