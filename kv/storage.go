// Package kv implements the case-insensitive, order-preserving multimap
// used to back the header and trailer containers of the Message concept
// (spec.md §3, §6).
package kv

import (
	"github.com/indigo-web/iter"
	"github.com/indigo-web/utils/strcomp"
)

// Pair is a single stored (key, value) entry.
type Pair struct {
	Key, Value string
}

// Storage is an associative structure for (string, string) pairs with
// case-insensitive keys. It behaves like a multimap but uses linear search
// instead of a real hash map: at the handful of headers a real request
// carries, linear scan beats hashing, and it preserves insertion order for
// free, which a map cannot give us.
type Storage struct {
	pairs      []Pair
	uniqueBuff []string
	valuesBuff []string
}

// New returns an empty Storage.
func New() *Storage {
	return new(Storage)
}

// NewPrealloc returns an empty Storage with room for n pairs pre-allocated.
func NewPrealloc(n int) *Storage {
	return &Storage{pairs: make([]Pair, 0, n)}
}

// Add appends a new (key, value) pair, keeping any existing entries stored
// under the same key. This is spec.md's insert(pair).
func (s *Storage) Add(key, value string) *Storage {
	s.pairs = append(s.pairs, Pair{Key: key, Value: value})
	return s
}

// Value returns the first value stored under key, or "" if absent.
func (s *Storage) Value(key string) string {
	value, _ := s.Get(key)
	return value
}

// Get returns the first value stored under key, case-insensitively. This is
// spec.md's find(name), narrowed to the value a caller almost always wants.
func (s *Storage) Get(key string) (value string, found bool) {
	for _, pair := range s.pairs {
		if strcomp.EqualFold(key, pair.Key) {
			return pair.Value, true
		}
	}

	return "", false
}

// Has reports whether any entry is stored under key.
func (s *Storage) Has(key string) bool {
	for _, pair := range s.pairs {
		if strcomp.EqualFold(key, pair.Key) {
			return true
		}
	}

	return false
}

// Values returns every value stored under key, in insertion order, or nil
// if none exist.
//
// WARNING: the returned slice is a reused internal buffer; a second call
// invalidates it. Copy it if it must outlive the next call.
func (s *Storage) Values(key string) []string {
	s.valuesBuff = s.valuesBuff[:0]

	for _, pair := range s.pairs {
		if strcomp.EqualFold(pair.Key, key) {
			s.valuesBuff = append(s.valuesBuff, pair.Value)
		}
	}

	if len(s.valuesBuff) == 0 {
		return nil
	}

	return s.valuesBuff
}

// Count returns how many entries are stored under key. Together with
// DeleteAll this implements spec.md's equal_range + erase(range) pattern
// used to drop a duplicated Expect header entirely (spec.md §4.3).
func (s *Storage) Count(key string) int {
	n := 0

	for _, pair := range s.pairs {
		if strcomp.EqualFold(pair.Key, key) {
			n++
		}
	}

	return n
}

// DeleteAll removes every entry stored under key, preserving the relative
// order of what remains.
func (s *Storage) DeleteAll(key string) *Storage {
	out := s.pairs[:0]

	for _, pair := range s.pairs {
		if !strcomp.EqualFold(pair.Key, key) {
			out = append(out, pair)
		}
	}

	s.pairs = out
	return s
}

// Keys returns the unique keys present, each spelled the way they were
// first inserted, in order of first appearance.
//
// WARNING: the returned slice is a reused internal buffer; a second call
// invalidates it.
func (s *Storage) Keys() []string {
	s.uniqueBuff = s.uniqueBuff[:0]

	for _, pair := range s.pairs {
		if containsFold(s.uniqueBuff, pair.Key) {
			continue
		}

		s.uniqueBuff = append(s.uniqueBuff, pair.Key)
	}

	return s.uniqueBuff
}

// Iter returns a forward iterator over every stored pair, in insertion
// order — the order the response serializer must reproduce on the wire
// (spec.md §4.2 step 5).
func (s *Storage) Iter() iter.Iterator[Pair] {
	return iter.Slice(s.pairs)
}

// Len returns the number of stored pairs.
func (s *Storage) Len() int {
	return len(s.pairs)
}

// Empty reports whether the storage holds no pairs.
func (s *Storage) Empty() bool {
	return len(s.pairs) == 0
}

// Expose exposes the underlying pairs slice for callers needing direct,
// zero-copy access (the response serializer's scatter/gather writer).
func (s *Storage) Expose() []Pair {
	return s.pairs
}

// Clear drops every entry without releasing the underlying array, so the
// storage can be reused across requests without reallocating.
func (s *Storage) Clear() *Storage {
	s.pairs = s.pairs[:0]
	return s
}

func containsFold(keys []string, key string) bool {
	for _, k := range keys {
		if strcomp.EqualFold(k, key) {
			return true
		}
	}

	return false
}
