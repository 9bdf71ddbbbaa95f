// Package prism: numeric index.
//
// A numeric index keeps every (value, doc) pair in one slice sorted by
// value then doc. Range lookups binary-search the bounds, collect the
// matching DocIds and sort them once, so the evaluator always receives an
// ascending posting list.
package prism

import (
	"errors"
	"math"
	"sort"
)

// ErrNaN is returned when a document's numeric value is NaN.
var ErrNaN = errors.New("numeric value is NaN")

// Compile-time check to ensure NumericIndex implements FieldIndex.
var _ FieldIndex = (*NumericIndex)(nil)

type numericEntry struct {
	value float64
	doc   DocId
}

// NumericIndex is a sorted multiset of (value, doc) pairs supporting
// inclusive and exclusive range scans.
type NumericIndex struct {
	entries []numericEntry
}

// NewNumericIndex returns a new empty numeric index.
func NewNumericIndex() *NumericIndex {
	return &NumericIndex{}
}

// search returns the position of the first entry >= e in (value, doc) order.
func (ix *NumericIndex) search(e numericEntry) int {
	return sort.Search(len(ix.entries), func(i int) bool {
		c := ix.entries[i]
		if c.value != e.value {
			return c.value > e.value
		}
		return c.doc >= e.doc
	})
}

// Add inserts the document's value. NaN values are rejected and leave the
// index unchanged. Re-adding the same document is a no-op.
func (ix *NumericIndex) Add(doc DocId, access DocumentAccessor, identifier string) error {
	value, ok := access.GetNumeric(identifier)
	if !ok {
		return nil
	}
	if math.IsNaN(value) {
		return ErrNaN
	}
	e := numericEntry{value: value, doc: doc}
	pos := ix.search(e)
	if pos < len(ix.entries) && ix.entries[pos] == e {
		return nil
	}
	ix.entries = append(ix.entries, numericEntry{})
	copy(ix.entries[pos+1:], ix.entries[pos:])
	ix.entries[pos] = e
	return nil
}

// Remove deletes the document's value. Removing an absent pair is a no-op.
func (ix *NumericIndex) Remove(doc DocId, access DocumentAccessor, identifier string) {
	value, ok := access.GetNumeric(identifier)
	if !ok || math.IsNaN(value) {
		return
	}
	e := numericEntry{value: value, doc: doc}
	pos := ix.search(e)
	if pos >= len(ix.entries) || ix.entries[pos] != e {
		return
	}
	ix.entries = append(ix.entries[:pos], ix.entries[pos+1:]...)
}

// Range returns the DocIds of all entries inside the interval, sorted
// ascending. Bounds are inclusive unless the matching exclusivity flag is
// set.
func (ix *NumericIndex) Range(lo float64, loExcl bool, hi float64, hiExcl bool) []DocId {
	start := sort.Search(len(ix.entries), func(i int) bool {
		if loExcl {
			return ix.entries[i].value > lo
		}
		return ix.entries[i].value >= lo
	})
	end := sort.Search(len(ix.entries), func(i int) bool {
		if hiExcl {
			return ix.entries[i].value >= hi
		}
		return ix.entries[i].value > hi
	})
	if start >= end {
		return nil
	}
	out := make([]DocId, 0, end-start)
	for _, e := range ix.entries[start:end] {
		out = append(out, e.doc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
