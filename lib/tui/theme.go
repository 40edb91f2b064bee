// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"log/slog"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines the colours of the viewer chrome. All colors use
// lipgloss ANSI 256-color codes for broad terminal compatibility. The
// matrix cells themselves are coloured by the render palette, not the
// theme.
type Theme struct {
	// Text colors.
	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	// UI chrome.
	HeaderForeground lipgloss.Color
	BorderColor      lipgloss.Color
	HelpText         lipgloss.Color

	// Accent marks the focused scrollbar thumb and ready state.
	Accent lipgloss.Color

	// Warning and Error colour status bar messages and the loading
	// indicator.
	Warning lipgloss.Color
	Error   lipgloss.Color

	// Hover tooltips.
	TooltipForeground lipgloss.Color // Text color inside tooltip boxes.
	TooltipBackground lipgloss.Color // Background color for tooltip boxes.
}

// StatusColor returns the color for an engine status name ("ready",
// "empty", "not_computed") or "loading". Unknown values get FaintText.
func (theme Theme) StatusColor(status string) lipgloss.Color {
	switch status {
	case "ready":
		return theme.Accent
	case "loading":
		return theme.Warning
	default:
		return theme.FaintText
	}
}

// LevelColor returns the status bar color for a log level.
func (theme Theme) LevelColor(level slog.Level) lipgloss.Color {
	switch {
	case level >= slog.LevelError:
		return theme.Error
	case level >= slog.LevelWarn:
		return theme.Warning
	default:
		return theme.HelpText
	}
}

// DefaultTheme is the built-in dark-terminal color scheme.
var DefaultTheme = Theme{
	NormalText: lipgloss.Color("252"),
	FaintText:  lipgloss.Color("245"),

	HeaderForeground: lipgloss.Color("255"),
	BorderColor:      lipgloss.Color("240"),
	HelpText:         lipgloss.Color("241"),

	Accent:  lipgloss.Color("114"), // green
	Warning: lipgloss.Color("220"), // yellow/amber
	Error:   lipgloss.Color("196"), // red

	TooltipForeground: lipgloss.Color("252"), // same as NormalText
	TooltipBackground: lipgloss.Color("237"), // slightly lighter than terminal background
}
