// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package cohort defines the per-case records the oncoprint engine
// consumes and the parsers that turn them into typed entries.
//
// A record carries either a free-text alteration summary (categorical
// mode) or one or more named numeric attribute maps (numeric mode).
// Records are owned by the caller and never mutated here.
//
// Summaries are line-oriented:
//
//	Missense: TP53
//	Trunc: ATM
//
// Each line yields one [Alteration]; see [ParseSummary] for the exact
// normalization. Attribute maps yield one [NumericEntry] per key with a
// finite non-zero number; see [ParseAttribute].
//
// Cohorts are authored on disk as JSONC files (JSON with comments and
// trailing commas) and loaded with [LoadFile] or [Parse].
package cohort

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/tidwall/jsonc"
)

// ErrMalformedCohort is returned when a cohort document is not a JSON
// array of record objects. Individual malformed records inside a
// well-formed array are skipped, not reported through this error.
var ErrMalformedCohort = errors.New("malformed cohort")

// Record is one cohort member.
type Record struct {
	// SampleID is the stable identifier of the case. It becomes the
	// matrix column label verbatim (no case folding).
	SampleID string `json:"sample_id"`

	// Summary is the raw alteration text. Any dynamic type other than
	// string is tolerated and parses to no alterations.
	Summary any `json:"summary,omitempty"`

	// Attributes maps an attribute name (e.g. "cnv", "expression") to
	// that attribute's key/value map. Values that are not numbers are
	// skipped by ParseAttribute.
	Attributes map[string]map[string]any `json:"attributes,omitempty"`
}

// Cohort is the result of loading a cohort document.
type Cohort struct {
	Records []*Record

	// Skipped counts array elements that could not be decoded into a
	// record (not an object, missing or non-string sample_id).
	Skipped int
}

// rawRecord decodes leniently: attribute maps that are not objects are
// dropped individually instead of failing the whole record.
type rawRecord struct {
	SampleID   json.RawMessage            `json:"sample_id"`
	Summary    any                        `json:"summary"`
	Attributes map[string]json.RawMessage `json:"attributes"`
}

// Parse strips JSONC comments and trailing commas from data and decodes
// the resulting array of records. Numbers are kept as json.Number so no
// precision is lost before ParseAttribute converts them.
func Parse(data []byte) (*Cohort, error) {
	stripped := jsonc.ToJSON(data)

	var elements []json.RawMessage
	if err := json.Unmarshal(stripped, &elements); err != nil {
		return nil, fmt.Errorf("parsing cohort: %w: %w", ErrMalformedCohort, err)
	}

	cohort := &Cohort{Records: make([]*Record, 0, len(elements))}
	for _, element := range elements {
		record, ok := decodeRecord(element)
		if !ok {
			cohort.Skipped++
			continue
		}
		cohort.Records = append(cohort.Records, record)
	}
	return cohort, nil
}

// LoadFile reads and parses a JSONC cohort file.
func LoadFile(path string) (*Cohort, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	cohort, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cohort, nil
}

func decodeRecord(element json.RawMessage) (*Record, bool) {
	var raw rawRecord
	if err := decodeNumbers(element, &raw); err != nil {
		return nil, false
	}

	var sampleID string
	if err := json.Unmarshal(raw.SampleID, &sampleID); err != nil || sampleID == "" {
		return nil, false
	}

	record := &Record{SampleID: sampleID, Summary: raw.Summary}
	for name, encoded := range raw.Attributes {
		var values map[string]any
		if err := decodeNumbers(encoded, &values); err != nil || values == nil {
			continue
		}
		if record.Attributes == nil {
			record.Attributes = make(map[string]map[string]any, len(raw.Attributes))
		}
		record.Attributes[name] = values
	}
	return record, true
}

func decodeNumbers(data []byte, target any) error {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()
	return decoder.Decode(target)
}
