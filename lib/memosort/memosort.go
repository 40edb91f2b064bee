// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package memosort orders the rows and columns of an oncoprint matrix
// so that co-occurring signal clusters toward the top-left.
//
// The ordering is the classic two-phase greedy memo sort:
//
//  1. Rows are ranked by how many columns they are present in,
//     descending. Ties keep their input order.
//  2. Each column's presence pattern across the ranked rows is read as
//     a binary number with row 0 most significant, i.e. the score
//     Σ 2^(R−i) over present ranked rows i. Columns sort by score,
//     descending. Ties keep their input order.
//
// Presence is held in roaring bitmaps: one bitmap of column indices per
// row for phase 1, and one bitmap of ranked row indices per column for
// phase 2.
//
// Scores grow as 2^R. [PrecisionExact] compares the column bitmaps
// lexicographically, which is the exact comparison of the binary
// numbers for any row count. [PrecisionFloat64] reproduces the
// historical float64 sum, which stops discriminating once the
// significant bits of two scores differ by more than 53 positions; ties
// introduced that way fall back to input order.
package memosort

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/RoaringBitmap/roaring"
)

// Presence reports whether the cell at (feature, sampleID) carries
// signal. *matrix.Matrix implements it.
type Presence interface {
	Present(feature, sampleID string) bool
}

// Precision selects how column scores are compared.
type Precision int

const (
	// PrecisionExact compares presence patterns bit by bit.
	PrecisionExact Precision = iota
	// PrecisionFloat64 sums math.Pow(2, R−i) in float64.
	PrecisionFloat64
)

// String returns the configuration spelling of the precision.
func (p Precision) String() string {
	switch p {
	case PrecisionExact:
		return "exact"
	case PrecisionFloat64:
		return "float64"
	default:
		return fmt.Sprintf("Precision(%d)", int(p))
	}
}

// ParsePrecision converts "exact" or "float64" to a Precision.
func ParsePrecision(text string) (Precision, error) {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "exact", "":
		return PrecisionExact, nil
	case "float64":
		return PrecisionFloat64, nil
	default:
		return 0, fmt.Errorf("unknown sort precision %q (want exact or float64)", text)
	}
}

// Options controls Sort.
type Options struct {
	// Enabled turns the memo sort on. When false, rows and columns pass
	// through in input order.
	Enabled bool

	Precision Precision
}

// Order is a permutation of the input rows and a permutation of the
// input columns.
type Order struct {
	Rows []string `json:"rows"`
	Cols []string `json:"cols"`
}

// Sort computes the memo-sort order of rows and cols. The returned
// slices are always fresh copies.
func Sort(rows, cols []string, presence Presence, options Options) Order {
	if !options.Enabled || presence == nil {
		return Order{Rows: slices.Clone(rows), Cols: slices.Clone(cols)}
	}

	rowBitmaps := make([]*roaring.Bitmap, len(rows))
	for rowIndex, row := range rows {
		bitmap := roaring.New()
		for colIndex, col := range cols {
			if presence.Present(row, col) {
				bitmap.Add(uint32(colIndex))
			}
		}
		rowBitmaps[rowIndex] = bitmap
	}

	rankedRows := RankRows(rowBitmaps)
	rankedCols := RankColumns(rowBitmaps, rankedRows, len(cols), options.Precision)

	order := Order{
		Rows: make([]string, len(rankedRows)),
		Cols: make([]string, len(rankedCols)),
	}
	for i, index := range rankedRows {
		order.Rows[i] = rows[index]
	}
	for i, index := range rankedCols {
		order.Cols[i] = cols[index]
	}
	return order
}

// RankRows returns row indices ordered by descending presence count.
// rowBitmaps[i] holds the column indices where row i is present. The
// sort is stable: rows with equal counts keep their relative order.
func RankRows(rowBitmaps []*roaring.Bitmap) []int {
	ranked := make([]int, len(rowBitmaps))
	counts := make([]uint64, len(rowBitmaps))
	for i, bitmap := range rowBitmaps {
		ranked[i] = i
		if bitmap != nil {
			counts[i] = bitmap.GetCardinality()
		}
	}
	slices.SortStableFunc(ranked, func(a, b int) int {
		switch {
		case counts[a] > counts[b]:
			return -1
		case counts[a] < counts[b]:
			return 1
		default:
			return 0
		}
	})
	return ranked
}

// RankColumns returns column indices ordered by descending score over
// the ranked rows. rankedRows is the output of RankRows for the same
// rowBitmaps. The sort is stable.
func RankColumns(rowBitmaps []*roaring.Bitmap, rankedRows []int, colCount int, precision Precision) []int {
	// Transpose into per-column bitmaps of ranked row positions, so
	// bit 0 is the most significant row.
	columns := make([]*roaring.Bitmap, colCount)
	for i := range columns {
		columns[i] = roaring.New()
	}
	for position, rowIndex := range rankedRows {
		bitmap := rowBitmaps[rowIndex]
		if bitmap == nil {
			continue
		}
		iterator := bitmap.Iterator()
		for iterator.HasNext() {
			col := iterator.Next()
			if int(col) < colCount {
				columns[col].Add(uint32(position))
			}
		}
	}

	ranked := make([]int, colCount)
	for i := range ranked {
		ranked[i] = i
	}

	switch precision {
	case PrecisionFloat64:
		scores := make([]float64, colCount)
		for i, column := range columns {
			scores[i] = float64Score(column, len(rankedRows))
		}
		slices.SortStableFunc(ranked, func(a, b int) int {
			switch {
			case scores[a] > scores[b]:
				return -1
			case scores[a] < scores[b]:
				return 1
			default:
				return 0
			}
		})
	default:
		slices.SortStableFunc(ranked, func(a, b int) int {
			return -compareExact(columns[a], columns[b])
		})
	}
	return ranked
}

// float64Score is the historical Σ 2^(rowCount−i) over present ranked
// rows.
func float64Score(column *roaring.Bitmap, rowCount int) float64 {
	score := 0.0
	iterator := column.Iterator()
	for iterator.HasNext() {
		position := iterator.Next()
		score += math.Pow(2, float64(rowCount-int(position)))
	}
	return score
}

// compareExact compares two presence patterns as binary numbers whose
// most significant bit is position 0. It returns +1 when a is greater.
//
// Walking both sets in ascending order, the first position present in
// only one of them decides: that set holds the higher bit. When one set
// is a prefix of the other, the longer set has the extra lower bits and
// is greater.
func compareExact(a, b *roaring.Bitmap) int {
	left := a.Iterator()
	right := b.Iterator()
	for left.HasNext() && right.HasNext() {
		l := left.Next()
		r := right.Next()
		switch {
		case l < r:
			return 1
		case l > r:
			return -1
		}
	}
	switch {
	case left.HasNext():
		return 1
	case right.HasNext():
		return -1
	default:
		return 0
	}
}
