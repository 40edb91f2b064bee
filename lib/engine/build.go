// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package engine

import (
	"github.com/mskilab-org/gOS-sub001/lib/cohort"
	"github.com/mskilab-org/gOS-sub001/lib/matrix"
	"github.com/mskilab-org/gOS-sub001/lib/memosort"
	"github.com/mskilab-org/gOS-sub001/lib/resultcache"
)

// Status is the build state of the engine.
type Status int

const (
	// StatusNotComputed means no build has landed yet.
	StatusNotComputed Status = iota
	// StatusEmpty means the latest build produced nothing to draw; see
	// EmptyReason.
	StatusEmpty
	// StatusReady means the latest build has rows and columns.
	StatusReady
)

// String returns a lower-case name for logs.
func (s Status) String() string {
	switch s {
	case StatusNotComputed:
		return "not_computed"
	case StatusEmpty:
		return "empty"
	case StatusReady:
		return "ready"
	default:
		return "unknown"
	}
}

// EmptyReason explains a StatusEmpty build.
type EmptyReason int

const (
	// EmptyNone accompanies every status other than StatusEmpty.
	EmptyNone EmptyReason = iota
	// EmptyNoRecords: the cohort has no records.
	EmptyNoRecords
	// EmptyNoFeatures: the candidate feature set (categorical) or the
	// attribute key union (numeric) is empty.
	EmptyNoFeatures
	// EmptyNoSignal: there are rows, but no sample has an entry among
	// them.
	EmptyNoSignal
)

// String returns a lower-case name for logs.
func (r EmptyReason) String() string {
	switch r {
	case EmptyNone:
		return "none"
	case EmptyNoRecords:
		return "no_records"
	case EmptyNoFeatures:
		return "no_features"
	case EmptyNoSignal:
		return "no_signal"
	default:
		return "unknown"
	}
}

// build produces the entry for inputs, from the cache when the
// fingerprint is known. It never fails: inputs that cannot be
// fingerprinted are built without caching.
func (e *Engine) build(inputs Inputs) *resultcache.Entry {
	cacheInputs := resultcache.Inputs{
		Records:             inputs.Records,
		Mode:                inputs.Mode,
		Features:            inputs.Features,
		Attribute:           inputs.Attribute,
		SortEnabled:         inputs.SortEnabled,
		Precision:           e.options.Precision,
		CategoricalRowLimit: e.options.CategoricalRowLimit,
		NumericRowLimit:     e.options.NumericRowLimit,
	}
	fingerprint, err := resultcache.Compute(cacheInputs)
	cacheable := err == nil
	if !cacheable {
		e.logger.Debug("inputs not fingerprintable, building uncached", "error", err)
	}

	if cacheable {
		if entry, ok := e.options.Cache.Get(fingerprint); ok {
			stats := e.options.Cache.Stats()
			e.logger.Debug("result cache hit",
				"fingerprint", fingerprint.Short(),
				"hits", stats.Hits,
				"misses", stats.Misses,
			)
			return entry
		}
	}

	builder := e.builder(inputs)
	result := builder.Build(inputs.Records)
	e.logMalformed(inputs)

	order := memosort.Sort(result.Rows, result.Cols, result.Matrix, memosort.Options{
		Enabled:   inputs.SortEnabled,
		Precision: e.options.Precision,
	})
	entry := &resultcache.Entry{
		Fingerprint: fingerprint,
		Result:      result,
		Order:       order,
		MaxValue:    result.Matrix.MaxValue(),
	}
	if cacheable {
		e.options.Cache.Add(entry)
	}

	stats := e.options.Cache.Stats()
	e.logger.Debug("matrix built",
		"mode", inputs.Mode,
		"rows", len(result.Rows),
		"cols", len(result.Cols),
		"cells", result.Matrix.Len(),
		"sorted", inputs.SortEnabled,
		"cache_hits", stats.Hits,
		"cache_misses", stats.Misses,
	)
	return entry
}

func (e *Engine) builder(inputs Inputs) matrix.Builder {
	if inputs.Mode == matrix.Numeric {
		return matrix.NumericBuilder{
			Attribute: inputs.Attribute,
			RowLimit:  e.options.NumericRowLimit,
		}
	}
	return matrix.CategoricalBuilder{
		Features: inputs.Features,
		RowLimit: e.options.CategoricalRowLimit,
		Parser:   e.options.Parser,
	}
}

// logMalformed reports records the build skipped in part or whole.
// Malformed data never fails a build.
func (e *Engine) logMalformed(inputs Inputs) {
	malformed := 0
	for _, record := range inputs.Records {
		switch {
		case record == nil:
			malformed++
		case inputs.Mode == matrix.Numeric:
			malformed += cohort.AttributeMalformed(record, inputs.Attribute)
		case cohort.SummaryMalformed(record):
			malformed++
		}
	}
	if malformed > 0 {
		e.logger.Debug("skipped malformed record entries",
			"mode", inputs.Mode,
			"count", malformed,
		)
	}
}

func classify(inputs Inputs, entry *resultcache.Entry) (Status, EmptyReason) {
	switch {
	case len(inputs.Records) == 0:
		return StatusEmpty, EmptyNoRecords
	case len(entry.Order.Rows) == 0:
		return StatusEmpty, EmptyNoFeatures
	case len(entry.Order.Cols) == 0:
		return StatusEmpty, EmptyNoSignal
	default:
		return StatusReady, EmptyNone
	}
}
