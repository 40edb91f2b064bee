// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package memosort

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/RoaringBitmap/roaring"
)

// grid is a Presence backed by a set of "feature/sample" strings.
type grid map[string]bool

func (g grid) Present(feature, sampleID string) bool {
	return g[feature+"/"+sampleID]
}

func (g grid) set(feature, sampleID string) {
	g[feature+"/"+sampleID] = true
}

func TestSortScenario(t *testing.T) {
	presence := grid{}
	presence.set("TP53", "S1")
	presence.set("ATM", "S1")
	presence.set("TP53", "S2")

	// Input order deliberately puts ATM and S2 first.
	order := Sort([]string{"ATM", "TP53"}, []string{"S2", "S1"}, presence, Options{Enabled: true})
	if !slices.Equal(order.Rows, []string{"TP53", "ATM"}) {
		t.Errorf("Rows = %v, want [TP53 ATM]", order.Rows)
	}
	if !slices.Equal(order.Cols, []string{"S1", "S2"}) {
		t.Errorf("Cols = %v, want [S1 S2]", order.Cols)
	}
}

func TestSortDisabledPassesThrough(t *testing.T) {
	presence := grid{}
	presence.set("B", "S2")
	rows := []string{"A", "B"}
	cols := []string{"S1", "S2"}

	order := Sort(rows, cols, presence, Options{Enabled: false})
	if !slices.Equal(order.Rows, rows) || !slices.Equal(order.Cols, cols) {
		t.Fatalf("disabled sort reordered: %+v", order)
	}
	order.Rows[0] = "mutated"
	if rows[0] != "A" {
		t.Error("Sort must return copies, not the caller's slices")
	}
}

func TestRowStability(t *testing.T) {
	bitmaps := []*roaring.Bitmap{
		roaring.BitmapOf(0),       // row 0: 1
		roaring.BitmapOf(0, 1, 2), // row 1: 3
		roaring.BitmapOf(1),       // row 2: 1
		roaring.BitmapOf(0, 2),    // row 3: 2
		roaring.BitmapOf(2),       // row 4: 1
		nil,                       // row 5: 0
	}
	got := RankRows(bitmaps)
	want := []int{1, 3, 0, 2, 4, 5}
	if !slices.Equal(got, want) {
		t.Errorf("RankRows = %v, want %v", got, want)
	}
}

func TestColumnScoreOrdering(t *testing.T) {
	// Rows ranked [A, B] (A and B both present twice, so input order
	// holds). Column "both" is present in A and B; "onlyB" only in B;
	// "onlyA" only in A.
	presence := grid{}
	presence.set("A", "both")
	presence.set("B", "both")
	presence.set("B", "onlyB")
	presence.set("A", "onlyA")

	for _, precision := range []Precision{PrecisionExact, PrecisionFloat64} {
		t.Run(precision.String(), func(t *testing.T) {
			order := Sort([]string{"A", "B"}, []string{"onlyB", "onlyA", "both"}, presence,
				Options{Enabled: true, Precision: precision})
			if !slices.Equal(order.Rows, []string{"A", "B"}) {
				t.Fatalf("Rows = %v", order.Rows)
			}
			if !slices.Equal(order.Cols, []string{"both", "onlyA", "onlyB"}) {
				t.Errorf("Cols = %v, want [both onlyA onlyB]", order.Cols)
			}
		})
	}
}

func TestColumnTiesKeepInputOrder(t *testing.T) {
	presence := grid{}
	for _, col := range []string{"c3", "c1", "c2"} {
		presence.set("A", col)
	}
	order := Sort([]string{"A"}, []string{"c3", "c1", "c2", "empty"}, presence, Options{Enabled: true})
	if !slices.Equal(order.Cols, []string{"c3", "c1", "c2", "empty"}) {
		t.Errorf("Cols = %v, want input order for equal scores", order.Cols)
	}
}

func TestCompareExact(t *testing.T) {
	cases := []struct {
		a, b []uint32
		want int
	}{
		{[]uint32{0}, []uint32{1}, 1},
		{[]uint32{0, 1}, []uint32{0}, 1},
		{[]uint32{0}, []uint32{0, 5}, -1},
		{[]uint32{1, 2, 3}, []uint32{0}, -1},
		{[]uint32{2, 9}, []uint32{2, 9}, 0},
		{nil, nil, 0},
		{nil, []uint32{100}, -1},
	}
	for _, c := range cases {
		got := compareExact(roaring.BitmapOf(c.a...), roaring.BitmapOf(c.b...))
		if got != c.want {
			t.Errorf("compareExact(%v, %v) = %d, want %d", c.a, c.b, got, c.want)
		}
	}
}

// precisionFixture builds 70 rows that all have presence count 2 (so
// the row ranking keeps input order) and two columns that differ only
// in the least significant row:
//
//	X: rows 0 and 69  → 2^70 + 2^1
//	Y: row 0          → 2^70
//
// In float64, 2^70 + 2 rounds to 2^70, so the columns tie.
func precisionFixture() (rows, cols []string, presence grid) {
	const rowCount = 70
	presence = grid{}
	rows = make([]string, rowCount)
	for i := range rows {
		rows[i] = fmt.Sprintf("R%02d", i)
	}
	cols = []string{"Y", "X"}

	presence.set(rows[0], "X")
	presence.set(rows[0], "Y")
	presence.set(rows[rowCount-1], "X")
	presence.set(rows[rowCount-1], "F69")
	cols = append(cols, "F69")
	for i := 1; i < rowCount-1; i++ {
		a, b := fmt.Sprintf("F%02da", i), fmt.Sprintf("F%02db", i)
		presence.set(rows[i], a)
		presence.set(rows[i], b)
		cols = append(cols, a, b)
	}
	return rows, cols, presence
}

func TestPrecisionLargeRowCount(t *testing.T) {
	rows, cols, presence := precisionFixture()

	exact := Sort(rows, cols, presence, Options{Enabled: true, Precision: PrecisionExact})
	legacy := Sort(rows, cols, presence, Options{Enabled: true, Precision: PrecisionFloat64})

	if !slices.Equal(exact.Rows, rows) || !slices.Equal(legacy.Rows, rows) {
		t.Fatal("equal row counts must keep input order in both modes")
	}

	// Exact: X (extra low bit) outranks Y.
	if exact.Cols[0] != "X" || exact.Cols[1] != "Y" {
		t.Errorf("exact Cols[:2] = %v, want [X Y]", exact.Cols[:2])
	}
	// Float64: the low bit is lost, X and Y tie, input order (Y, X) holds.
	if legacy.Cols[0] != "Y" || legacy.Cols[1] != "X" {
		t.Errorf("float64 Cols[:2] = %v, want [Y X] (precision tie)", legacy.Cols[:2])
	}
}

func TestSortIsPermutation(t *testing.T) {
	random := rand.New(rand.NewPCG(7, 11))
	for trial := range 25 {
		rowCount := 1 + random.IntN(80)
		colCount := 1 + random.IntN(60)
		rows := make([]string, rowCount)
		cols := make([]string, colCount)
		for i := range rows {
			rows[i] = fmt.Sprintf("G%d", i)
		}
		for i := range cols {
			cols[i] = fmt.Sprintf("S%d", i)
		}
		presence := grid{}
		for _, row := range rows {
			for _, col := range cols {
				if random.IntN(4) == 0 {
					presence.set(row, col)
				}
			}
		}

		for _, precision := range []Precision{PrecisionExact, PrecisionFloat64} {
			order := Sort(rows, cols, presence, Options{Enabled: true, Precision: precision})
			if !isPermutation(order.Rows, rows) {
				t.Fatalf("trial %d: rows %v not a permutation of %v", trial, order.Rows, rows)
			}
			if !isPermutation(order.Cols, cols) {
				t.Fatalf("trial %d: cols not a permutation", trial)
			}
			again := Sort(rows, cols, presence, Options{Enabled: true, Precision: precision})
			if !slices.Equal(order.Rows, again.Rows) || !slices.Equal(order.Cols, again.Cols) {
				t.Fatalf("trial %d: sort not deterministic", trial)
			}
		}

		// Row counts are non-increasing after ranking.
		order := Sort(rows, cols, presence, Options{Enabled: true})
		previous := colCount + 1
		for _, row := range order.Rows {
			count := 0
			for _, col := range cols {
				if presence.Present(row, col) {
					count++
				}
			}
			if count > previous {
				t.Fatalf("trial %d: row %s count %d after %d", trial, row, count, previous)
			}
			previous = count
		}
	}
}

func isPermutation(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	a := slices.Clone(got)
	b := slices.Clone(want)
	slices.Sort(a)
	slices.Sort(b)
	return slices.Equal(a, b)
}

func TestParsePrecision(t *testing.T) {
	if p, err := ParsePrecision("Float64"); err != nil || p != PrecisionFloat64 {
		t.Errorf("ParsePrecision(Float64) = %v, %v", p, err)
	}
	if p, err := ParsePrecision(""); err != nil || p != PrecisionExact {
		t.Errorf("ParsePrecision(\"\") = %v, %v", p, err)
	}
	if _, err := ParsePrecision("bigint"); err == nil {
		t.Error("ParsePrecision(bigint) should fail")
	}
}
