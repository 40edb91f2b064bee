// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cohort

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultParserCacheSize bounds the per-record parse cache when the
// caller does not choose a size.
const DefaultParserCacheSize = 4096

// Parser memoizes ParseSummary per record reference. Summaries are
// re-read during matrix builds and again when resolving hit-test data,
// so a cohort of thousands of records is parsed once per record rather
// than once per pass.
//
// The cache is keyed by pointer: a caller that replaces a record's
// Summary in place must use a fresh Record (records are treated as
// immutable, which is also the engine's contract). Parser is safe for
// concurrent use.
type Parser struct {
	cache *lru.Cache[*Record, []Alteration]
}

// NewParser creates a Parser holding at most size records. A size of
// zero or less selects DefaultParserCacheSize.
func NewParser(size int) *Parser {
	if size <= 0 {
		size = DefaultParserCacheSize
	}
	cache, err := lru.New[*Record, []Alteration](size)
	if err != nil {
		// lru.New only fails for non-positive sizes.
		panic("cohort: parser cache: " + err.Error())
	}
	return &Parser{cache: cache}
}

// Alterations returns the parsed summary of record. The returned slice
// is shared with the cache and must not be modified. A nil Parser
// parses without caching.
func (p *Parser) Alterations(record *Record) []Alteration {
	if record == nil {
		return nil
	}
	if p == nil {
		return ParseSummary(record.Summary)
	}
	if cached, ok := p.cache.Get(record); ok {
		return cached
	}
	alterations := ParseSummary(record.Summary)
	p.cache.Add(record, alterations)
	return alterations
}

// Len returns the number of cached records.
func (p *Parser) Len() int {
	if p == nil {
		return 0
	}
	return p.cache.Len()
}

// Purge drops every cached parse.
func (p *Parser) Purge() {
	if p != nil {
		p.cache.Purge()
	}
}
