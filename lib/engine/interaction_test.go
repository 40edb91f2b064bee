// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package engine

import (
	"image/color"
	"testing"

	"github.com/mskilab-org/gOS-sub001/lib/layout"
	"github.com/mskilab-org/gOS-sub001/lib/render"
)

func readyEngine(t *testing.T) (*Engine, *recorder) {
	t.Helper()
	engine, fake, events := newTestEngine(t)
	if err := engine.SetInputs(scenarioInputs()); err != nil {
		t.Fatal(err)
	}
	fake.Advance(rebuildDelay)
	return engine, events
}

func TestCellAtInvertsCellRect(t *testing.T) {
	engine, _ := readyEngine(t)
	params := engine.Layout()
	snapshot := engine.Snapshot()

	for row, feature := range snapshot.OrderedRows {
		for col, sampleID := range snapshot.OrderedCols {
			center := params.CellRect(row, col, snapshot.ScrollX).Center()
			cell := engine.CellAt(center.X, center.Y)
			if cell == nil {
				t.Fatalf("CellAt(%v) = nil for (%d,%d)", center, row, col)
			}
			if cell.Feature != feature || cell.SampleID != sampleID || cell.Row != row || cell.Col != col {
				t.Errorf("CellAt(%v) = %+v, want %s/%s", center, cell, feature, sampleID)
			}
		}
	}

	cell := engine.CellAt(35, 25)
	if cell == nil || cell.Feature != "ATM" || cell.SampleID != "S2" || cell.Present {
		t.Errorf("ATM×S2 = %+v, want an absent cell", cell)
	}
	if engine.CellAt(5, 15) != nil {
		t.Error("row label margin resolved to a cell")
	}
	if engine.CellAt(25, 5) != nil {
		t.Error("top margin resolved to a cell")
	}
	if engine.CellAt(45, 15) != nil {
		t.Error("position right of the last column resolved to a cell")
	}
}

func TestHoverStateMachine(t *testing.T) {
	engine, events := readyEngine(t)

	engine.PointerMove(25, 15)
	engine.PointerMove(27, 17)
	if len(events.hovers) != 1 || events.hovers[0] == nil || events.hovers[0].SampleID != "S1" {
		t.Fatalf("hovers = %v, want one hover on S1", events.hovers)
	}
	if state := engine.Interaction(); state.State != Hovering || state.Cell.Feature != "TP53" {
		t.Errorf("interaction = %+v", state)
	}

	engine.PointerMove(35, 15)
	if len(events.hovers) != 2 || events.hovers[1].SampleID != "S2" {
		t.Fatalf("moving to a new cell: hovers = %v", events.hovers)
	}

	engine.PointerMove(5, 5)
	if len(events.hovers) != 3 || events.hovers[2] != nil {
		t.Fatalf("leaving the grid should emit nil, hovers = %v", events.hovers)
	}
	if engine.Interaction().State != Idle {
		t.Error("not idle after leaving the grid")
	}

	// Idle and off-grid: nothing to report.
	engine.PointerMove(5, 5)
	engine.PointerLeave()
	if len(events.hovers) != 3 {
		t.Errorf("idle pointer emitted hovers: %v", events.hovers)
	}

	engine.PointerMove(25, 25)
	engine.PointerLeave()
	if len(events.hovers) != 5 || events.hovers[4] != nil {
		t.Errorf("PointerLeave should end the hover, hovers = %v", events.hovers)
	}
}

func TestClickPassesThroughToIdle(t *testing.T) {
	engine, events := readyEngine(t)

	engine.PointerMove(25, 15)
	cell := engine.Click(25, 15)
	if cell == nil || cell.Feature != "TP53" || cell.SampleID != "S1" || !cell.Present {
		t.Fatalf("Click = %+v", cell)
	}
	if len(cell.Data.Alterations) != 1 || cell.Data.Alterations[0].Category != "missense" {
		t.Errorf("clicked cell data = %+v", cell.Data)
	}
	if len(events.clicks) != 1 || events.clicks[0].SampleID != "S1" {
		t.Errorf("clicks = %v", events.clicks)
	}
	if engine.Interaction().State != Idle {
		t.Error("click did not return to idle")
	}
	if last := events.hovers[len(events.hovers)-1]; last != nil {
		t.Error("click while hovering should end the hover")
	}

	if engine.Click(1, 1) != nil || len(events.clicks) != 1 {
		t.Error("click outside the grid emitted a cell")
	}
}

func TestRebuildResetsHover(t *testing.T) {
	engine, fake, events := newTestEngine(t)
	inputs := scenarioInputs()
	if err := engine.SetInputs(inputs); err != nil {
		t.Fatal(err)
	}
	fake.Advance(rebuildDelay)
	engine.PointerMove(25, 15)

	engine.SetSortEnabled(false)
	fake.Advance(rebuildDelay)
	if engine.Interaction().State != Idle {
		t.Error("hover survived a rebuild")
	}
	if last := events.hovers[len(events.hovers)-1]; last != nil {
		t.Error("rebuild should emit a nil hover")
	}
}

func TestCellAtFollowsScroll(t *testing.T) {
	engine, fake, _ := newTestEngine(t)
	if err := engine.SetInputs(scenarioInputs()); err != nil {
		t.Fatal(err)
	}
	fake.Advance(rebuildDelay)
	if err := engine.Resize(layout.Viewport{Width: 30, Height: 100}); err != nil {
		t.Fatal(err)
	}
	engine.Scroll(10)
	fake.Advance(frameInterval)

	cell := engine.CellAt(25, 15)
	if cell == nil || cell.SampleID != "S2" {
		t.Errorf("after scrolling one column, CellAt = %+v, want S2", cell)
	}
}

type band struct {
	rect layout.Rect
	fill color.RGBA
}

type surface struct {
	bands  []band
	labels []string
}

func (s *surface) DrawCellBand(rect layout.Rect, fill color.RGBA) {
	s.bands = append(s.bands, band{rect, fill})
}

func (s *surface) DrawLabel(_ layout.Point, text string, _ render.Align) {
	s.labels = append(s.labels, text)
}

func TestDrawMatchesHitTest(t *testing.T) {
	engine, _ := readyEngine(t)
	target := &surface{}
	engine.Draw(render.NewRenderer(), target)

	if len(target.bands) != 4 {
		t.Fatalf("drew %d bands, want one per cell of the 2×2 grid", len(target.bands))
	}
	noData := render.DefaultPalette().NoData
	for _, drawn := range target.bands {
		center := drawn.rect.Center()
		cell := engine.CellAt(center.X, center.Y)
		if cell == nil {
			t.Fatalf("band at %+v does not hit a cell", drawn.rect)
		}
		if cell.Present == (drawn.fill == noData) {
			t.Errorf("band at %+v: fill %v disagrees with present=%v", drawn.rect, drawn.fill, cell.Present)
		}
	}
}

func TestDrawNotice(t *testing.T) {
	engine, _, _ := newTestEngine(t)
	target := &surface{}
	engine.Draw(render.NewRenderer(), target)
	if len(target.bands) != 0 || len(target.labels) != 1 {
		t.Fatalf("not computed frame drew %d bands %v", len(target.bands), target.labels)
	}
	if target.labels[0] != render.NoticeNotComputed.Message() {
		t.Errorf("notice = %q", target.labels[0])
	}
}
