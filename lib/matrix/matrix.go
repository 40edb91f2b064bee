// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package matrix aggregates parsed cohort entries into the sparse
// (feature, sample) matrix that the oncoprint engine sorts, lays out and
// draws.
//
// Two strategies implement [Builder]:
//
//   - [CategoricalBuilder] stores alteration lists for a caller-supplied
//     candidate feature set (the "gene set");
//   - [NumericBuilder] derives its rows from the cohort itself, as the
//     union of keys of one numeric attribute.
//
// Both share deterministic row truncation and zero-signal column
// exclusion: a sample with no entry among the kept rows is not a column
// of the result.
package matrix

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/mskilab-org/gOS-sub001/lib/cohort"
)

// Mode selects how records are interpreted.
type Mode int

const (
	// Categorical reads the free-text alteration summary.
	Categorical Mode = iota
	// Numeric reads one named numeric attribute map.
	Numeric
)

// String returns the configuration spelling of the mode.
func (m Mode) String() string {
	switch m {
	case Categorical:
		return "categorical"
	case Numeric:
		return "numeric"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode converts "categorical" or "numeric" (any case) to a Mode.
func ParseMode(text string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "categorical":
		return Categorical, nil
	case "numeric":
		return Numeric, nil
	default:
		return 0, fmt.Errorf("unknown matrix mode %q (want categorical or numeric)", text)
	}
}

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	return m == Categorical || m == Numeric
}

// Key addresses one matrix cell. Construct keys only through NewKey so
// builds and lookups agree on case normalization.
type Key struct {
	Feature  string `json:"feature"`
	SampleID string `json:"sample_id"`
}

// NewKey upper-cases the feature and keeps the sample id verbatim.
func NewKey(feature, sampleID string) Key {
	return Key{Feature: strings.ToUpper(feature), SampleID: sampleID}
}

// Cell is the content of one present matrix entry. Categorical cells
// carry a non-empty alteration list; numeric cells carry a non-zero
// value.
type Cell struct {
	Alterations []cohort.Alteration `json:"alterations,omitempty"`
	Value       float64             `json:"value,omitempty"`
}

// Present reports whether the cell counts as signal for sorting:
// categorical cells need at least one alteration, numeric cells a
// positive value.
func (c Cell) Present(mode Mode) bool {
	if mode == Numeric {
		return c.Value > 0
	}
	return len(c.Alterations) > 0
}

// Matrix is a sparse map of present cells. An absent key means "no
// signal". A Matrix is immutable once returned by a Builder.
type Matrix struct {
	mode  Mode
	cells map[Key]Cell
}

// New returns an empty matrix for the given mode.
func New(mode Mode) *Matrix {
	return &Matrix{mode: mode, cells: make(map[Key]Cell)}
}

// Mode returns the mode the matrix was built in.
func (m *Matrix) Mode() Mode {
	if m == nil {
		return Categorical
	}
	return m.mode
}

// Len returns the number of stored cells.
func (m *Matrix) Len() int {
	if m == nil {
		return 0
	}
	return len(m.cells)
}

// Lookup returns the cell at (feature, sampleID). The feature is
// normalized through NewKey.
func (m *Matrix) Lookup(feature, sampleID string) (Cell, bool) {
	if m == nil {
		return Cell{}, false
	}
	cell, ok := m.cells[NewKey(feature, sampleID)]
	return cell, ok
}

// Present reports whether (feature, sampleID) holds signal.
func (m *Matrix) Present(feature, sampleID string) bool {
	cell, ok := m.Lookup(feature, sampleID)
	return ok && cell.Present(m.mode)
}

// MaxValue returns the largest numeric value in the matrix, or zero for
// an empty or categorical matrix. The numeric colour scale spans
// [0, MaxValue].
func (m *Matrix) MaxValue() float64 {
	if m == nil {
		return 0
	}
	maximum := 0.0
	for _, cell := range m.cells {
		maximum = max(maximum, cell.Value)
	}
	return maximum
}

// Entry is one (key, cell) pair in deterministic order.
type Entry struct {
	Key  Key  `json:"key"`
	Cell Cell `json:"cell"`
}

// Entries returns every cell sorted by (feature, sample id). Encoding
// the entries gives a byte-stable representation of the matrix.
func (m *Matrix) Entries() []Entry {
	if m == nil {
		return nil
	}
	entries := make([]Entry, 0, len(m.cells))
	for key, cell := range m.cells {
		entries = append(entries, Entry{Key: key, Cell: cell})
	}
	slices.SortFunc(entries, func(a, b Entry) int {
		return cmp.Or(
			strings.Compare(a.Key.Feature, b.Key.Feature),
			strings.Compare(a.Key.SampleID, b.Key.SampleID),
		)
	})
	return entries
}

func (m *Matrix) appendAlteration(key Key, alteration cohort.Alteration) {
	cell := m.cells[key]
	cell.Alterations = append(cell.Alterations, alteration)
	m.cells[key] = cell
}

func (m *Matrix) setValue(key Key, value float64) {
	m.cells[key] = Cell{Value: value}
}

// Result is a built matrix with its row and column labels before
// ordering.
type Result struct {
	Rows   []string `json:"rows"`
	Cols   []string `json:"cols"`
	Matrix *Matrix  `json:"-"`
}

// Empty reports whether the result has nothing to draw. This is the
// empty-input sentinel: it is distinct from a result that has not been
// computed yet, which the engine tracks separately.
func (r Result) Empty() bool {
	return len(r.Rows) == 0 || len(r.Cols) == 0
}

func emptyResult(mode Mode) Result {
	return Result{Rows: []string{}, Cols: []string{}, Matrix: New(mode)}
}
