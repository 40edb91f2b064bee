// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cohort

import (
	"encoding/json"
	"math"
	"testing"
)

func TestParseSummary(t *testing.T) {
	tests := []struct {
		name    string
		summary any
		want    []Alteration
	}{
		{
			name:    "two lines",
			summary: "Missense: TP53\nTrunc: ATM",
			want: []Alteration{
				{Feature: "TP53", Category: "missense"},
				{Feature: "ATM", Category: "trunc"},
			},
		},
		{
			name:    "crlf and whitespace normalization",
			summary: "  In Frame  Del :  egfr \r\nSplice:kras\r\n",
			want: []Alteration{
				{Feature: "EGFR", Category: "in_frame_del"},
				{Feature: "KRAS", Category: "splice"},
			},
		},
		{
			name:    "only first colon splits",
			summary: "fusion: BCR:ABL1",
			want:    []Alteration{{Feature: "BCR:ABL1", Category: "fusion"}},
		},
		{
			name:    "discarded lines",
			summary: "no colon here\n: TP53\nmissense:   \n\nAmp: MYC",
			want:    []Alteration{{Feature: "MYC", Category: "amp"}},
		},
		{
			name:    "duplicates kept in order",
			summary: "missense: TP53\nmissense: TP53",
			want: []Alteration{
				{Feature: "TP53", Category: "missense"},
				{Feature: "TP53", Category: "missense"},
			},
		},
		{name: "empty", summary: "", want: nil},
		{name: "nil", summary: nil, want: nil},
		{name: "non-string", summary: 42, want: nil},
		{name: "string list", summary: []any{"missense: TP53"}, want: nil},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := ParseSummary(test.summary)
			if len(got) != len(test.want) {
				t.Fatalf("ParseSummary(%q) = %v, want %v", test.summary, got, test.want)
			}
			for i := range got {
				if got[i] != test.want[i] {
					t.Errorf("entry %d = %+v, want %+v", i, got[i], test.want[i])
				}
			}
		})
	}
}

func TestParseAttribute(t *testing.T) {
	record := &Record{
		SampleID: "S1",
		Attributes: map[string]map[string]any{
			"cnv": {
				"TP53":  1.5,
				"MYC":   json.Number("-2"),
				"ATM":   0,
				"EGFR":  "high",
				"KRAS":  math.NaN(),
				"BRAF":  math.Inf(1),
				"PTEN":  int64(3),
				"ERBB2": uint8(7),
				"":      1.0,
			},
		},
	}

	got := ParseAttribute(record, "cnv")
	want := []NumericEntry{
		{Feature: "ERBB2", Value: 7},
		{Feature: "MYC", Value: -2},
		{Feature: "PTEN", Value: 3},
		{Feature: "TP53", Value: 1.5},
	}
	if len(got) != len(want) {
		t.Fatalf("ParseAttribute = %v, want %v", got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Errorf("entry %d = %+v, want %+v", i, got[i], want[i])
		}
	}

	if entries := ParseAttribute(record, "expression"); entries != nil {
		t.Errorf("missing attribute = %v, want nil", entries)
	}
	if entries := ParseAttribute(nil, "cnv"); entries != nil {
		t.Errorf("nil record = %v, want nil", entries)
	}

	// EGFR (string), KRAS (NaN), BRAF (Inf) are malformed; ATM (zero) is absent.
	if count := AttributeMalformed(record, "cnv"); count != 3 {
		t.Errorf("AttributeMalformed = %d, want 3", count)
	}
}

func TestSummaryMalformed(t *testing.T) {
	cases := []struct {
		summary any
		want    bool
	}{
		{nil, false},
		{"", false},
		{"missense: TP53", false},
		{12.5, true},
		{map[string]any{"gene": "TP53"}, true},
	}
	for _, c := range cases {
		if got := SummaryMalformed(&Record{Summary: c.summary}); got != c.want {
			t.Errorf("SummaryMalformed(%v) = %v, want %v", c.summary, got, c.want)
		}
	}
}
