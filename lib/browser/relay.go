// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package browser

import (
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"
)

// redrawMsg asks the model to re-render from the engine's current
// state.
type redrawMsg struct{}

// Relay delivers messages from engine callbacks and log handlers into a
// bubbletea program.
//
// tea.Program.Send blocks until the event loop receives the message, so
// calling it from inside Update would deadlock. Relay therefore sends
// from a fresh goroutine. Messages arriving before SetProgram are
// dropped; the first WindowSizeMsg redraws everything anyway.
type Relay struct {
	program atomic.Pointer[tea.Program]
}

// NewRelay creates a relay with no program attached.
func NewRelay() *Relay {
	return &Relay{}
}

// SetProgram attaches the program. Safe to call from any goroutine.
func (relay *Relay) SetProgram(program *tea.Program) {
	relay.program.Store(program)
}

// Send posts message to the program without blocking.
func (relay *Relay) Send(message tea.Msg) {
	program := relay.program.Load()
	if program == nil {
		return
	}
	go program.Send(message)
}

// Redraw is an engine OnRedraw callback.
func (relay *Relay) Redraw() {
	relay.Send(redrawMsg{})
}
