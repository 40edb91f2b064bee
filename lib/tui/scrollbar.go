// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// RenderHorizontalScrollbar produces a single-line scrollbar of the
// given width. The thumb shows the visible span within total content
// units at scrollOffset.
//
// When content fits the thumb spans the whole track. The thumb uses the
// accent color when focused and the border color otherwise.
func RenderHorizontalScrollbar(theme Theme, width, total, visible, scrollOffset int, focused bool) string {
	if width <= 0 {
		return ""
	}

	thumbColor := theme.BorderColor
	if focused {
		thumbColor = theme.Accent
	}
	trackStyle := lipgloss.NewStyle().Foreground(theme.BorderColor)
	thumbStyle := lipgloss.NewStyle().Foreground(thumbColor)

	thumbOffset, thumbSize := thumbGeometry(width, total, visible, scrollOffset)

	var line strings.Builder
	if thumbOffset > 0 {
		line.WriteString(trackStyle.Render(strings.Repeat("─", thumbOffset)))
	}
	line.WriteString(thumbStyle.Render(strings.Repeat("━", thumbSize)))
	if rest := width - thumbOffset - thumbSize; rest > 0 {
		line.WriteString(trackStyle.Render(strings.Repeat("─", rest)))
	}
	return line.String()
}

// ScrollOffsetAt inverts the scrollbar: it returns the scroll offset
// that centres the thumb on track column x.
func ScrollOffsetAt(x, width, total, visible int) int {
	scrollable := total - visible
	if width <= 0 || scrollable <= 0 {
		return 0
	}
	_, thumbSize := thumbGeometry(width, total, visible, 0)
	trackRange := width - thumbSize
	if trackRange <= 0 {
		return 0
	}
	position := min(max(x-thumbSize/2, 0), trackRange)
	return position * scrollable / trackRange
}

// thumbGeometry returns the thumb's start column and size.
func thumbGeometry(width, total, visible, scrollOffset int) (int, int) {
	if total <= visible || total <= 0 {
		return 0, width
	}

	// Thumb size: proportional to visible/total, minimum 1 column.
	thumbSize := max(width*visible/total, 1)

	scrollableRange := total - visible
	trackRange := width - thumbSize
	thumbOffset := 0
	if trackRange > 0 {
		thumbOffset = min(max(scrollOffset, 0), scrollableRange) * trackRange / scrollableRange
	}
	return thumbOffset, thumbSize
}
