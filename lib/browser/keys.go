// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package browser

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings of the viewer.
type KeyMap struct {
	ScrollLeft  key.Binding
	ScrollRight key.Binding
	PageLeft    key.Binding
	PageRight   key.Binding
	Home        key.Binding
	End         key.Binding

	// SortToggle switches the memo sort on and off.
	SortToggle key.Binding

	// ClearSelection drops the selected cell from the status line.
	ClearSelection key.Binding

	Quit key.Binding
}

// DefaultKeyMap is the built-in key binding set: vim-style h/l
// alongside the arrow keys.
var DefaultKeyMap = KeyMap{
	ScrollLeft: key.NewBinding(
		key.WithKeys("h", "left"),
		key.WithHelp("h/←", "scroll left"),
	),
	ScrollRight: key.NewBinding(
		key.WithKeys("l", "right"),
		key.WithHelp("l/→", "scroll right"),
	),
	PageLeft: key.NewBinding(
		key.WithKeys("pgup", "ctrl+u"),
		key.WithHelp("PgUp", "page left"),
	),
	PageRight: key.NewBinding(
		key.WithKeys("pgdown", "ctrl+d"),
		key.WithHelp("PgDn", "page right"),
	),
	Home: key.NewBinding(
		key.WithKeys("g", "home"),
		key.WithHelp("g", "first column"),
	),
	End: key.NewBinding(
		key.WithKeys("G", "end"),
		key.WithHelp("G", "last column"),
	),
	SortToggle: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "toggle sort"),
	),
	ClearSelection: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("Esc", "clear selection"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// helpBindings lists the bindings shown in the status line.
func (keys KeyMap) helpBindings() []key.Binding {
	return []key.Binding{keys.Quit, keys.ScrollLeft, keys.ScrollRight, keys.PageRight, keys.SortToggle}
}
