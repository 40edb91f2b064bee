// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package browser

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/mskilab-org/gOS-sub001/lib/engine"
	"github.com/mskilab-org/gOS-sub001/lib/matrix"
	"github.com/mskilab-org/gOS-sub001/lib/tui"
)

// tooltipMaxWidth is the maximum width of the tooltip box in visible
// characters, including 1 character of padding on each side.
const tooltipMaxWidth = 40

// tooltipMaxCategories caps the category lines of a tooltip.
const tooltipMaxCategories = 4

// tooltipState holds the data for a visible hover tooltip.
type tooltipState struct {
	cell engine.Cell

	// Screen position of the pointer that produced the hover.
	screenX int
	screenY int
}

// renderTooltip produces a tooltip box for a hovered cell: one line
// naming the cell, then its categories or its value. Every line has the
// same visible width and carries the tooltip background.
//
//	TP53 · S1
//	• missense
//	• trunc
func renderTooltip(cell engine.Cell, mode matrix.Mode, theme tui.Theme, maxWidth int) []string {
	maxWidth = max(maxWidth, 10)

	title := cell.Feature + " · " + cell.SampleID
	body := cellDetails(cell, mode)

	innerWidth := ansi.StringWidth(title)
	for _, line := range body {
		innerWidth = max(innerWidth, ansi.StringWidth(line))
	}
	innerWidth = min(innerWidth, maxWidth-2)

	backgroundStyle := lipgloss.NewStyle().Background(theme.TooltipBackground)
	textStyle := backgroundStyle.Foreground(theme.TooltipForeground)
	titleStyle := textStyle.Bold(true)

	lines := make([]string, 0, len(body)+1)
	lines = append(lines, tui.PadOverlayLine(titleStyle.Render(title), innerWidth, backgroundStyle))
	for _, line := range body {
		lines = append(lines, tui.PadOverlayLine(textStyle.Render(line), innerWidth, backgroundStyle))
	}
	return lines
}

// cellDetails lists what a cell holds: distinct categories in
// first-appearance order for categorical cells, the value for numeric
// ones.
func cellDetails(cell engine.Cell, mode matrix.Mode) []string {
	if mode == matrix.Numeric {
		if !cell.Present {
			return []string{"no value"}
		}
		return []string{"value " + formatValue(cell.Data.Value)}
	}

	categories := cellCategories(cell)
	if len(categories) == 0 {
		return []string{"no alteration"}
	}
	lines := make([]string, 0, min(len(categories), tooltipMaxCategories+1))
	for index, category := range categories {
		if index == tooltipMaxCategories {
			lines = append(lines, fmt.Sprintf("+%d more", len(categories)-index))
			break
		}
		lines = append(lines, "• "+category)
	}
	return lines
}

func cellCategories(cell engine.Cell) []string {
	var categories []string
	for _, alteration := range cell.Data.Alterations {
		if !slices.Contains(categories, alteration.Category) {
			categories = append(categories, alteration.Category)
		}
	}
	return categories
}

// describeCell is the one-line form used in the status line.
func describeCell(cell engine.Cell, mode matrix.Mode) string {
	var detail string
	switch {
	case mode == matrix.Numeric && cell.Present:
		detail = formatValue(cell.Data.Value)
	case mode == matrix.Numeric:
		detail = "no value"
	case len(cell.Data.Alterations) == 0:
		detail = "no alteration"
	default:
		detail = strings.Join(cellCategories(cell), ", ")
	}
	return fmt.Sprintf("%s × %s: %s", cell.Feature, cell.SampleID, detail)
}

func formatValue(value float64) string {
	return strconv.FormatFloat(value, 'g', 4, 64)
}
