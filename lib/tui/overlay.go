// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// SpliceOverlay replaces a rectangular region of a rendered view with
// overlay lines placed from (anchorX, anchorY) in screen coordinates.
// Truncation is ANSI-aware, so escape sequences in the view survive on
// both sides of the overlay. View lines shorter than anchorX are padded
// with spaces.
func SpliceOverlay(view string, overlayLines []string, anchorX, anchorY int) string {
	if len(overlayLines) == 0 {
		return view
	}
	anchorX = max(anchorX, 0)

	viewLines := strings.Split(view, "\n")
	for index, overlayLine := range overlayLines {
		viewLineIndex := anchorY + index
		if viewLineIndex < 0 || viewLineIndex >= len(viewLines) {
			continue
		}

		viewLine := viewLines[viewLineIndex]
		viewLineWidth := ansi.StringWidth(viewLine)

		// prefix + reset + overlay + reset + suffix
		var result strings.Builder
		if anchorX > 0 {
			result.WriteString(ansi.Truncate(viewLine, anchorX, ""))
			if viewLineWidth < anchorX {
				result.WriteString(strings.Repeat(" ", anchorX-viewLineWidth))
			}
		}
		result.WriteString("\x1b[0m")
		result.WriteString(overlayLine)
		result.WriteString("\x1b[0m")

		suffixStart := anchorX + ansi.StringWidth(overlayLine)
		if suffixStart < viewLineWidth {
			result.WriteString(ansi.TruncateLeft(viewLine, suffixStart, ""))
		}

		viewLines[viewLineIndex] = result.String()
	}

	return strings.Join(viewLines, "\n")
}

// PadOverlayLine pads styled content for an overlay's inner area to
// innerWidth, with one background-colored column on each side. Content
// wider than innerWidth is truncated with an ellipsis.
func PadOverlayLine(styledContent string, innerWidth int, backgroundStyle lipgloss.Style) string {
	contentWidth := ansi.StringWidth(styledContent)
	if contentWidth > innerWidth {
		styledContent = ansi.Truncate(styledContent, innerWidth, "…")
		contentWidth = ansi.StringWidth(styledContent)
	}
	rightPad := max(innerWidth-contentWidth, 0)
	return backgroundStyle.Render(" ") +
		styledContent +
		backgroundStyle.Render(strings.Repeat(" ", rightPad+1))
}

// PlaceOverlay picks the top-left corner for a boxWidth×boxHeight
// overlay near the pointer at (pointerX, pointerY): below and to the
// right when it fits, flipped above or to the left otherwise, and
// finally clamped to the screen.
func PlaceOverlay(pointerX, pointerY, boxWidth, boxHeight, screenWidth, screenHeight int) (int, int) {
	anchorX := pointerX + 2
	if anchorX+boxWidth > screenWidth {
		anchorX = pointerX - boxWidth - 1
	}
	anchorY := pointerY + 1
	if anchorY+boxHeight > screenHeight {
		anchorY = pointerY - boxHeight
	}
	anchorX = max(min(anchorX, screenWidth-boxWidth), 0)
	anchorY = max(min(anchorY, screenHeight-boxHeight), 0)
	return anchorX, anchorY
}
