// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec holds the one CBOR configuration the module uses.
//
// Two consumers depend on byte-for-byte stable output:
//
//   - resultcache fingerprints hash the encoded structural inputs, so
//     the same cohort and selection must always encode identically;
//   - the determinism guarantees of the matrix builder and memo sort
//     are checked by comparing encoded results across repeated runs.
//
// The encoder therefore uses Core Deterministic Encoding (RFC 8949
// §4.2): sorted map keys, smallest integer encoding, no
// indefinite-length items.
//
//	data, err := codec.Marshal(order)
//	err = codec.Unmarshal(data, &order)
//
// Types shared with JSON output carry `json` tags; fxamacker/cbor reads
// them when `cbor` tags are absent.
package codec
