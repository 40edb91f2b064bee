// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package resultcache memoizes matrix builds and memo-sort orders by a
// structural fingerprint of their inputs.
//
// The fingerprint ([Compute]) covers the records, mode, feature set,
// attribute name, sort flag, sort precision and row limits, so a stale
// entry can never be served for changed inputs: any change produces a
// different key. Entries are immutable once added.
package resultcache

import (
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/mskilab-org/gOS-sub001/lib/matrix"
	"github.com/mskilab-org/gOS-sub001/lib/memosort"
)

// DefaultSize is the number of builds kept when the caller does not
// choose a size. Toggling sort or switching between two feature sets
// should hit the cache, so a handful of entries suffices.
const DefaultSize = 8

// Entry is one cached build.
type Entry struct {
	Fingerprint Fingerprint
	Result      matrix.Result
	Order       memosort.Order

	// MaxValue is the numeric scale maximum of Result.Matrix, computed
	// once at build time.
	MaxValue float64
}

// Stats reports cache effectiveness.
type Stats struct {
	Hits   uint64
	Misses uint64
	Len    int
}

// Cache is a bounded LRU of entries. It is safe for concurrent use.
type Cache struct {
	entries *lru.Cache[Fingerprint, *Entry]
	hits    atomic.Uint64
	misses  atomic.Uint64
}

// New returns a cache holding at most size entries. A size of zero or
// less selects DefaultSize.
func New(size int) *Cache {
	if size <= 0 {
		size = DefaultSize
	}
	entries, err := lru.New[Fingerprint, *Entry](size)
	if err != nil {
		// lru.New only fails for non-positive sizes.
		panic("resultcache: " + err.Error())
	}
	return &Cache{entries: entries}
}

// Get returns the entry for fingerprint and records a hit or miss.
func (c *Cache) Get(fingerprint Fingerprint) (*Entry, bool) {
	entry, ok := c.entries.Get(fingerprint)
	if ok {
		c.hits.Add(1)
	} else {
		c.misses.Add(1)
	}
	return entry, ok
}

// Add stores entry under its fingerprint, evicting the least recently
// used entry when full.
func (c *Cache) Add(entry *Entry) {
	if entry == nil {
		return
	}
	c.entries.Add(entry.Fingerprint, entry)
}

// Purge drops every entry. Statistics are kept.
func (c *Cache) Purge() {
	c.entries.Purge()
}

// Stats returns the current counters.
func (c *Cache) Stats() Stats {
	return Stats{
		Hits:   c.hits.Load(),
		Misses: c.misses.Load(),
		Len:    c.entries.Len(),
	}
}
