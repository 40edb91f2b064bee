// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package browser

import (
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"

	"github.com/mskilab-org/gOS-sub001/lib/engine"
	"github.com/mskilab-org/gOS-sub001/lib/layout"
	"github.com/mskilab-org/gOS-sub001/lib/render"
	"github.com/mskilab-org/gOS-sub001/lib/render/termcanvas"
	"github.com/mskilab-org/gOS-sub001/lib/tui"
)

// Rows of chrome around the matrix canvas.
const (
	headerRows = 1
	footerRows = 2 // scrollbar + status line
)

// defaultWheelColumns is how many columns one wheel notch scrolls.
const defaultWheelColumns = 3

// Options configures a Model. Zero values select defaults.
type Options struct {
	Theme    tui.Theme
	Keys     KeyMap
	Renderer *render.Renderer

	// Profile is the colour profile the canvas renders for.
	Profile termenv.Profile

	// Title is shown at the left of the header.
	Title string

	WheelColumns int
}

// Model is the bubbletea model of the viewer. The engine is shared by
// every copy of the model; the model itself only holds view state.
type Model struct {
	engine  *engine.Engine
	inputs  engine.Inputs
	options Options
	canvas  termcanvas.Options
	help    help.Model

	// Terminal dimensions (set by WindowSizeMsg).
	width  int
	height int
	ready  bool

	tooltip  *tooltipState
	selected *engine.Cell

	// Latest log record shown in the status line.
	status         string
	statusLevel    slog.Level
	statusSequence int

	inputError error

	draggingScrollbar bool
}

// NewModel creates a viewer for inputs. The inputs' viewport is ignored:
// the engine receives the inputs with the terminal's size on the first
// WindowSizeMsg.
func NewModel(eng *engine.Engine, inputs engine.Inputs, options Options) Model {
	if options.Theme == (tui.Theme{}) {
		options.Theme = tui.DefaultTheme
	}
	if len(options.Keys.Quit.Keys()) == 0 {
		options.Keys = DefaultKeyMap
	}
	if options.Renderer == nil {
		options.Renderer = render.NewRenderer()
	}
	if options.Title == "" {
		options.Title = "oncoprint"
	}
	if options.WheelColumns <= 0 {
		options.WheelColumns = defaultWheelColumns
	}
	return Model{
		engine:  eng,
		inputs:  inputs,
		options: options,
		canvas: termcanvas.Options{
			Background: options.Renderer.Palette.Background,
			Label:      options.Renderer.Palette.Label,
			Profile:    options.Profile,
		},
		help: help.New(),
	}
}

// Init implements tea.Model. The engine is started by the first
// WindowSizeMsg.
func (model Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (model Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.KeyMsg:
		// Any keyboard input dismisses the hover tooltip.
		model.tooltip = nil
		return model.handleKey(message)

	case tea.MouseMsg:
		model.handleMouse(message)

	case tea.WindowSizeMsg:
		model.width = message.Width
		model.height = message.Height
		model.help.Width = message.Width
		model.tooltip = nil
		model.resize()

	case redrawMsg:
		// View re-reads the engine.

	case logRecordMsg:
		model.statusSequence++
		model.status = message.Summary
		model.statusLevel = message.Level
		sequence := model.statusSequence
		return model, tea.Tick(logRecordFadeDelay, func(time.Time) tea.Msg {
			return logRecordFadeMsg{sequence: sequence}
		})

	case logRecordFadeMsg:
		if message.sequence == model.statusSequence {
			model.status = ""
		}
	}
	return model, nil
}

// resize hands the canvas size to the engine: the full inputs on the
// first call, a plain resize afterwards.
func (model *Model) resize() {
	viewport := model.viewport()
	if !model.ready {
		model.ready = true
		model.inputs.Viewport = viewport
		model.inputError = model.engine.SetInputs(model.inputs)
		return
	}
	model.inputError = model.engine.Resize(viewport)
}

func (model Model) canvasRows() int {
	return max(model.height-headerRows-footerRows, 0)
}

// viewport is the canvas size in layout units: one unit per column,
// two per character row.
func (model Model) viewport() layout.Viewport {
	return layout.Viewport{
		Width:  float64(max(model.width, 0)),
		Height: float64(model.canvasRows() * 2),
	}
}

// surfacePoint maps a screen cell to a layout point in the upper
// sub-pixel of that cell.
func (model Model) surfacePoint(screenX, screenY int) (float64, float64) {
	return float64(screenX) + 0.5, float64(screenY-headerRows)*2 + 0.5
}

func (model Model) scrollbarRow() int {
	return headerRows + model.canvasRows()
}

func (model Model) handleKey(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := model.options.Keys
	params := model.engine.Layout()
	step := params.ColumnStep()
	page := math.Max(float64(model.width)-params.Margins.Left, step)

	switch {
	case key.Matches(message, keys.Quit):
		model.engine.Close()
		return model, tea.Quit

	case key.Matches(message, keys.ScrollLeft):
		model.engine.ScrollBy(-step)

	case key.Matches(message, keys.ScrollRight):
		model.engine.ScrollBy(step)

	case key.Matches(message, keys.PageLeft):
		model.engine.ScrollBy(-page)

	case key.Matches(message, keys.PageRight):
		model.engine.ScrollBy(page)

	case key.Matches(message, keys.Home):
		model.engine.Scroll(0)

	case key.Matches(message, keys.End):
		model.engine.Scroll(layout.MaxScroll(float64(model.width), params))

	case key.Matches(message, keys.SortToggle):
		model.engine.SetSortEnabled(!model.engine.Snapshot().SortEnabled)

	case key.Matches(message, keys.ClearSelection):
		model.selected = nil
	}
	return model, nil
}

func (model *Model) handleMouse(message tea.MouseMsg) {
	canvasBottom := headerRows + model.canvasRows()
	inCanvas := message.Y >= headerRows && message.Y < canvasBottom

	// Scrollbar drags: motion follows the pointer, release ends.
	if model.draggingScrollbar {
		if message.Action == tea.MouseActionRelease {
			model.draggingScrollbar = false
			return
		}
		model.scrollToColumn(message.X)
		return
	}

	// Motion events with no button held: update hover and tooltip.
	if message.Action == tea.MouseActionMotion && message.Button == tea.MouseButtonNone {
		model.updateHover(message, inCanvas)
		return
	}

	model.tooltip = nil
	wheel := float64(model.options.WheelColumns) * model.engine.Layout().ColumnStep()

	switch message.Button {
	case tea.MouseButtonWheelUp, tea.MouseButtonWheelLeft:
		model.engine.ScrollBy(-wheel)

	case tea.MouseButtonWheelDown, tea.MouseButtonWheelRight:
		model.engine.ScrollBy(wheel)

	case tea.MouseButtonLeft:
		if message.Action != tea.MouseActionPress {
			return
		}
		if message.Y == model.scrollbarRow() {
			model.draggingScrollbar = true
			model.scrollToColumn(message.X)
			return
		}
		if inCanvas {
			x, y := model.surfacePoint(message.X, message.Y)
			if cell := model.engine.Click(x, y); cell != nil {
				model.selected = cell
			}
		}
	}
}

func (model *Model) updateHover(message tea.MouseMsg, inCanvas bool) {
	if !inCanvas {
		model.engine.PointerLeave()
		model.tooltip = nil
		return
	}
	x, y := model.surfacePoint(message.X, message.Y)
	model.engine.PointerMove(x, y)
	interaction := model.engine.Interaction()
	if interaction.State != engine.Hovering || interaction.Cell == nil {
		model.tooltip = nil
		return
	}
	model.tooltip = &tooltipState{
		cell:    *interaction.Cell,
		screenX: message.X,
		screenY: message.Y,
	}
}

// scrollToColumn scrolls so the scrollbar thumb centres on screen
// column x.
func (model *Model) scrollToColumn(x int) {
	total := int(math.Ceil(model.engine.Layout().ContentWidth))
	offset := tui.ScrollOffsetAt(x, model.width, total, model.width)
	model.engine.Scroll(float64(offset))
}

// View implements tea.Model.
func (model Model) View() string {
	if !model.ready {
		return "Loading..."
	}
	snapshot := model.engine.Snapshot()

	canvas := termcanvas.New(model.width, model.canvasRows(), model.canvas)
	model.engine.Draw(model.options.Renderer, canvas)

	sections := make([]string, 0, model.canvasRows()+headerRows+footerRows)
	sections = append(sections, model.renderHeader(snapshot))
	sections = append(sections, canvas.Lines()...)
	sections = append(sections, tui.RenderHorizontalScrollbar(
		model.options.Theme,
		model.width,
		int(math.Ceil(snapshot.Layout.ContentWidth)),
		model.width,
		int(math.Round(snapshot.ScrollX)),
		model.draggingScrollbar,
	))
	sections = append(sections, model.renderStatus(snapshot))

	output := strings.Join(sections, "\n")

	if model.tooltip != nil {
		lines := renderTooltip(model.tooltip.cell, snapshot.Mode, model.options.Theme, tooltipMaxWidth)
		anchorX, anchorY := tui.PlaceOverlay(
			model.tooltip.screenX, model.tooltip.screenY,
			ansi.StringWidth(lines[0]), len(lines),
			model.width, model.height)
		output = tui.SpliceOverlay(output, lines, anchorX, anchorY)
	}
	return output
}

func (model Model) renderHeader(snapshot engine.Snapshot) string {
	theme := model.options.Theme
	titleStyle := lipgloss.NewStyle().Foreground(theme.HeaderForeground).Bold(true)
	faintStyle := lipgloss.NewStyle().Foreground(theme.FaintText)

	status := snapshot.Status.String()
	if snapshot.Status == engine.StatusEmpty {
		status += ": " + snapshot.EmptyReason.String()
	}
	if snapshot.Loading {
		status = "loading"
	}
	statusStyle := lipgloss.NewStyle().Foreground(theme.StatusColor(status)).Bold(true)

	sortState := "sort off"
	if snapshot.SortEnabled {
		sortState = "sort on"
	}
	// Most useful first: the line is truncated to the terminal width.
	details := fmt.Sprintf("%d×%d  %s  %s",
		len(snapshot.OrderedRows), len(snapshot.OrderedCols), sortState, snapshot.Mode)
	if snapshot.Visible.Len() > 0 {
		details += fmt.Sprintf("  columns %d–%d", snapshot.Visible.Start+1, snapshot.Visible.End)
	}

	line := titleStyle.Render(" "+model.options.Title) + " " +
		statusStyle.Render("["+status+"]") + "  " +
		faintStyle.Render(details)
	return ansi.Truncate(line, model.width, "…")
}

// renderStatus shows, in order of precedence: an input error, the
// latest log record, the selected cell, or key help.
func (model Model) renderStatus(snapshot engine.Snapshot) string {
	theme := model.options.Theme
	var line string
	switch {
	case model.inputError != nil:
		line = lipgloss.NewStyle().Foreground(theme.Error).Bold(true).
			Render(" Error: " + model.inputError.Error())
	case model.status != "":
		line = lipgloss.NewStyle().Foreground(theme.LevelColor(model.statusLevel)).
			Render(" " + model.status)
	case model.selected != nil:
		line = lipgloss.NewStyle().Foreground(theme.NormalText).
			Render(" Selected " + describeCell(*model.selected, snapshot.Mode))
	default:
		line = " " + model.help.ShortHelpView(model.options.Keys.helpBindings())
	}
	return ansi.Truncate(line, model.width, "…")
}
