// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers.
//
// [RequireReceive] encapsulates the timeout safety valve pattern
// (select with a time.After fallback) for tests that exercise real
// timers, such as an engine running on the wall clock. Scheduling
// tests should prefer a fake clock; these helpers are the only place
// where tests wait on real time.
//
// Helpers call t.Fatalf on failure rather than returning errors,
// since test setup failures are not recoverable.
package testutil
