// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock provides the injectable time source used by the
// oncoprint engine's scheduler.
//
// The engine never calls time.AfterFunc directly. Deferred matrix
// rebuilds and per-frame scroll flushes are scheduled through a
// [Clock], so production code runs on [Real] while tests drive the
// same code paths with [Fake] and [FakeClock.Advance]:
//
//	c := clock.Fake(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
//	e := engine.New(engine.Config{Clock: c})
//	e.Scroll(120)
//	e.Scroll(240)
//	c.Advance(16 * time.Millisecond) // one coalesced flush at 240
//
// FakeClock callbacks run synchronously inside Advance, in deadline
// order, on the calling goroutine.
package clock
