// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package matrix

import (
	"slices"
	"strings"

	"github.com/mskilab-org/gOS-sub001/lib/cohort"
)

// DefaultNumericRowLimit caps the rows of a numeric matrix when the
// builder does not set its own limit.
const DefaultNumericRowLimit = 100

// Builder turns a cohort into a Result. Implementations never return an
// error: malformed records and entries are skipped, and empty inputs
// produce an empty Result.
type Builder interface {
	Mode() Mode
	Build(records []*cohort.Record) Result
}

// CategoricalBuilder builds a matrix of alteration lists for a fixed
// candidate feature set.
type CategoricalBuilder struct {
	// Features is the candidate row set, matched case-insensitively.
	// Duplicates (after upper-casing) are dropped; first occurrence
	// wins and candidate order is kept.
	Features []string

	// RowLimit truncates the candidate rows after de-duplication. Zero
	// or negative means no limit.
	RowLimit int

	// Parser supplies cached summary parses. Nil parses directly.
	Parser *cohort.Parser
}

// Mode returns Categorical.
func (b CategoricalBuilder) Mode() Mode { return Categorical }

// Build stores an alteration list at (feature, sample) for every
// alteration whose feature is a candidate. Work is proportional to the
// total number of parsed alterations, not to features × cohort.
func (b CategoricalBuilder) Build(records []*cohort.Record) Result {
	rows := truncateRows(uniqueUpper(b.Features), b.RowLimit)
	if len(records) == 0 || len(rows) == 0 {
		return emptyResult(Categorical)
	}

	candidates := make(map[string]struct{}, len(rows))
	for _, row := range rows {
		candidates[row] = struct{}{}
	}

	built := New(Categorical)
	seen := make(map[string]struct{}, len(records))
	for _, record := range records {
		if record == nil {
			continue
		}
		// Later duplicates of a sample id would otherwise merge their
		// alterations into the first record's cells.
		if _, duplicate := seen[record.SampleID]; duplicate {
			continue
		}
		seen[record.SampleID] = struct{}{}
		for _, alteration := range b.Parser.Alterations(record) {
			if _, ok := candidates[alteration.Feature]; !ok {
				continue
			}
			built.appendAlteration(NewKey(alteration.Feature, record.SampleID), alteration)
		}
	}

	return Result{
		Rows:   rows,
		Cols:   signalColumns(records, built),
		Matrix: built,
	}
}

// NumericBuilder builds a matrix from one numeric attribute. Its rows
// are the union of attribute keys with a non-zero value anywhere in the
// cohort.
type NumericBuilder struct {
	Attribute string

	// RowLimit caps the sorted row union. Zero or negative selects
	// DefaultNumericRowLimit.
	RowLimit int
}

// Mode returns Numeric.
func (b NumericBuilder) Mode() Mode { return Numeric }

// Build collects the key union, sorts the row labels lexicographically
// (byte order, so "Zeta" precedes "alpha"), truncates them to RowLimit,
// and stores (key, sample) → value for the kept rows.
//
// Keys that differ only in case share a row. The row label is the
// lexicographically smallest spelling, and when one record holds
// several spellings the value of the smallest spelling wins.
func (b NumericBuilder) Build(records []*cohort.Record) Result {
	if len(records) == 0 || b.Attribute == "" {
		return emptyResult(Numeric)
	}
	limit := b.RowLimit
	if limit <= 0 {
		limit = DefaultNumericRowLimit
	}

	type parsed struct {
		sampleID string
		entries  []cohort.NumericEntry
	}
	perRecord := make([]parsed, 0, len(records))
	labels := make(map[string]string)
	seen := make(map[string]struct{}, len(records))
	for _, record := range records {
		if record == nil {
			continue
		}
		if _, duplicate := seen[record.SampleID]; duplicate {
			continue
		}
		seen[record.SampleID] = struct{}{}
		entries := cohort.ParseAttribute(record, b.Attribute)
		perRecord = append(perRecord, parsed{sampleID: record.SampleID, entries: entries})
		for _, entry := range entries {
			normalized := strings.ToUpper(entry.Feature)
			if existing, ok := labels[normalized]; !ok || entry.Feature < existing {
				labels[normalized] = entry.Feature
			}
		}
	}
	if len(labels) == 0 {
		return emptyResult(Numeric)
	}

	rows := make([]string, 0, len(labels))
	for _, label := range labels {
		rows = append(rows, label)
	}
	slices.Sort(rows)
	rows = truncateRows(rows, limit)

	kept := make(map[string]struct{}, len(rows))
	for _, row := range rows {
		kept[strings.ToUpper(row)] = struct{}{}
	}

	built := New(Numeric)
	for _, record := range perRecord {
		// Entries arrive sorted by raw key, so the first spelling seen
		// for a normalized key is the smallest one.
		for _, entry := range record.entries {
			normalized := strings.ToUpper(entry.Feature)
			if _, ok := kept[normalized]; !ok {
				continue
			}
			key := NewKey(entry.Feature, record.sampleID)
			if _, exists := built.cells[key]; exists {
				continue
			}
			built.setValue(key, entry.Value)
		}
	}

	return Result{
		Rows:   rows,
		Cols:   signalColumns(records, built),
		Matrix: built,
	}
}

// truncateRows keeps the first limit rows of an already ordered list.
// Truncation happens after each strategy's own ordering (candidate order
// or lexicographic), so the kept set is deterministic.
func truncateRows(rows []string, limit int) []string {
	if limit > 0 && len(rows) > limit {
		return rows[:limit:limit]
	}
	return rows
}

// signalColumns returns the sample ids, in record order, that hold at
// least one cell of built. Builders only store cells for kept rows, so
// samples without signal among those rows are excluded; they reappear
// when a different row set gives them an entry. Duplicate sample ids
// appear once.
func signalColumns(records []*cohort.Record, built *Matrix) []string {
	withSignal := make(map[string]struct{}, len(built.cells))
	for key := range built.cells {
		withSignal[key.SampleID] = struct{}{}
	}

	columns := make([]string, 0, len(withSignal))
	for _, record := range records {
		if record == nil {
			continue
		}
		if _, ok := withSignal[record.SampleID]; !ok {
			continue
		}
		columns = append(columns, record.SampleID)
		delete(withSignal, record.SampleID)
	}
	return columns
}

func uniqueUpper(features []string) []string {
	rows := make([]string, 0, len(features))
	seen := make(map[string]struct{}, len(features))
	for _, feature := range features {
		normalized := strings.ToUpper(strings.TrimSpace(feature))
		if normalized == "" {
			continue
		}
		if _, duplicate := seen[normalized]; duplicate {
			continue
		}
		seen[normalized] = struct{}{}
		rows = append(rows, normalized)
	}
	return rows
}
