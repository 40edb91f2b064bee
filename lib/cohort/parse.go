// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cohort

import (
	"encoding/json"
	"math"
	"slices"
	"strings"
)

// Alteration is one parsed summary line, e.g. {Feature: "TP53",
// Category: "missense"}.
type Alteration struct {
	Feature  string `json:"feature"`
	Category string `json:"category"`
}

// NumericEntry is one non-zero value of a numeric attribute.
type NumericEntry struct {
	Feature string  `json:"feature"`
	Value   float64 `json:"value"`
}

// ParseSummary extracts alterations from a record summary. The summary
// is split on line breaks (CRLF tolerated). For each line containing a
// colon, the category is the text before the first colon, lower-cased
// with whitespace runs collapsed to "_", and the feature is the text
// after it, trimmed and upper-cased. Lines without a colon, with an
// empty category, or with an empty feature are discarded.
//
// Order is preserved and duplicates are kept. A summary that is not a
// string, or is empty, yields nil.
func ParseSummary(summary any) []Alteration {
	text, ok := summary.(string)
	if !ok || text == "" {
		return nil
	}

	var alterations []Alteration
	for line := range strings.SplitSeq(text, "\n") {
		line = strings.TrimSuffix(line, "\r")
		category, feature, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		category = strings.Join(strings.Fields(strings.ToLower(category)), "_")
		feature = strings.ToUpper(strings.TrimSpace(feature))
		if category == "" || feature == "" {
			continue
		}
		alterations = append(alterations, Alteration{Feature: feature, Category: category})
	}
	return alterations
}

// ParseAttribute returns one entry per key of the named attribute whose
// value is a finite, non-zero number. Zero, NaN, infinite and
// non-numeric values are treated as absent: "no data" is distinct from
// "value of zero". Entries are sorted by key.
func ParseAttribute(record *Record, attribute string) []NumericEntry {
	if record == nil {
		return nil
	}
	values := record.Attributes[attribute]
	if len(values) == 0 {
		return nil
	}

	entries := make([]NumericEntry, 0, len(values))
	for key, raw := range values {
		value, ok := Number(raw)
		if !ok || value == 0 || key == "" {
			continue
		}
		entries = append(entries, NumericEntry{Feature: key, Value: value})
	}
	slices.SortFunc(entries, func(a, b NumericEntry) int {
		return strings.Compare(a.Feature, b.Feature)
	})
	return entries
}

// Number converts a dynamically typed attribute value to float64. It
// accepts every Go integer and float kind plus json.Number, and rejects
// NaN and infinities.
func Number(value any) (float64, bool) {
	var result float64
	switch typed := value.(type) {
	case float64:
		result = typed
	case float32:
		result = float64(typed)
	case int:
		result = float64(typed)
	case int8:
		result = float64(typed)
	case int16:
		result = float64(typed)
	case int32:
		result = float64(typed)
	case int64:
		result = float64(typed)
	case uint:
		result = float64(typed)
	case uint8:
		result = float64(typed)
	case uint16:
		result = float64(typed)
	case uint32:
		result = float64(typed)
	case uint64:
		result = float64(typed)
	case json.Number:
		parsed, err := typed.Float64()
		if err != nil {
			return 0, false
		}
		result = parsed
	default:
		return 0, false
	}
	if math.IsNaN(result) || math.IsInf(result, 0) {
		return 0, false
	}
	return result, true
}

// SummaryMalformed reports whether the record's summary is present but
// not a string. Such a record contributes no alterations.
func SummaryMalformed(record *Record) bool {
	if record == nil || record.Summary == nil {
		return false
	}
	_, ok := record.Summary.(string)
	return !ok
}

// AttributeMalformed counts the values of the named attribute that
// ParseAttribute skips because they are not finite numbers. Zero is a
// valid "absent" value and is not counted.
func AttributeMalformed(record *Record, attribute string) int {
	if record == nil {
		return 0
	}
	count := 0
	for _, raw := range record.Attributes[attribute] {
		if _, ok := Number(raw); !ok {
			count++
		}
	}
	return count
}
