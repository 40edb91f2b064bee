// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package resultcache

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/zeebo/blake3"

	"github.com/mskilab-org/gOS-sub001/lib/codec"
	"github.com/mskilab-org/gOS-sub001/lib/cohort"
	"github.com/mskilab-org/gOS-sub001/lib/matrix"
	"github.com/mskilab-org/gOS-sub001/lib/memosort"
)

// Fingerprint is a 32-byte BLAKE3 digest of the structural inputs of a
// build.
type Fingerprint [32]byte

// String returns the hex form of the fingerprint.
func (f Fingerprint) String() string {
	return hex.EncodeToString(f[:])
}

// Short returns the first 12 hex characters, for log lines.
func (f Fingerprint) Short() string {
	return f.String()[:12]
}

// fingerprintDomainKey separates build fingerprints from any other
// BLAKE3 use. The bytes are the ASCII domain name, zero-padded to 32
// bytes; changing them invalidates every fingerprint.
var fingerprintDomainKey = [32]byte{
	'o', 'n', 'c', 'o', 'p', 'r', 'i', 'n', 't', '.', 'b', 'u', 'i', 'l', 'd', '.',
	'i', 'n', 'p', 'u', 't', 's', 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
}

// Inputs is everything a matrix build and memo sort depend on. Viewport
// and scroll position are deliberately absent: they never change the
// matrix or the orders.
type Inputs struct {
	Records     []*cohort.Record
	Mode        matrix.Mode
	Features    []string
	Attribute   string
	SortEnabled bool
	Precision   memosort.Precision

	CategoricalRowLimit int
	NumericRowLimit     int
}

// fingerprintRecord is what the build reads from a record in a given
// mode: the summary text when it is a string, or the parsed numeric
// entries of the attribute. Raw dynamic values are never hashed, since
// values that encode alike (json.Number("2") and "2") can build
// differently. Fingerprinting only the read part also keeps a
// categorical build from being invalidated by an unrelated attribute
// edit.
type fingerprintRecord struct {
	SampleID string                `cbor:"1,keyasint"`
	Summary  string                `cbor:"2,keyasint,omitempty"`
	Values   []cohort.NumericEntry `cbor:"3,keyasint,omitempty"`
}

type fingerprintInputs struct {
	Records             []fingerprintRecord `cbor:"1,keyasint"`
	Mode                matrix.Mode         `cbor:"2,keyasint"`
	Features            []string            `cbor:"3,keyasint"`
	Attribute           string              `cbor:"4,keyasint"`
	SortEnabled         bool                `cbor:"5,keyasint"`
	Precision           memosort.Precision  `cbor:"6,keyasint"`
	CategoricalRowLimit int                 `cbor:"7,keyasint"`
	NumericRowLimit     int                 `cbor:"8,keyasint"`
}

// Compute returns the fingerprint of inputs: the keyed BLAKE3 hash of
// their deterministic CBOR encoding. Features are upper-cased first,
// matching the case-insensitive candidate set. Records are covered by
// content, in order, not by pointer identity, so an equal cohort loaded
// twice shares a fingerprint.
//
// An error means the canonical form could not be encoded; callers treat
// that as "uncacheable" and build directly.
func Compute(inputs Inputs) (Fingerprint, error) {
	canonical := fingerprintInputs{
		Records:     make([]fingerprintRecord, 0, len(inputs.Records)),
		Mode:        inputs.Mode,
		SortEnabled: inputs.SortEnabled,
		Precision:   inputs.Precision,
	}
	switch inputs.Mode {
	case matrix.Numeric:
		canonical.Attribute = inputs.Attribute
		canonical.NumericRowLimit = inputs.NumericRowLimit
	default:
		canonical.Features = make([]string, len(inputs.Features))
		for i, feature := range inputs.Features {
			canonical.Features[i] = strings.ToUpper(strings.TrimSpace(feature))
		}
		canonical.CategoricalRowLimit = inputs.CategoricalRowLimit
	}

	for _, record := range inputs.Records {
		if record == nil {
			continue
		}
		entry := fingerprintRecord{SampleID: record.SampleID}
		if inputs.Mode == matrix.Numeric {
			entry.Values = cohort.ParseAttribute(record, inputs.Attribute)
		} else if summary, ok := record.Summary.(string); ok {
			entry.Summary = summary
		}
		canonical.Records = append(canonical.Records, entry)
	}

	hasher, err := blake3.NewKeyed(fingerprintDomainKey[:])
	if err != nil {
		panic("resultcache: BLAKE3 keyed hash initialization failed: " + err.Error())
	}
	if err := codec.NewEncoder(hasher).Encode(canonical); err != nil {
		return Fingerprint{}, fmt.Errorf("encoding fingerprint inputs: %w", err)
	}
	var fingerprint Fingerprint
	copy(fingerprint[:], hasher.Sum(nil))
	return fingerprint, nil
}
