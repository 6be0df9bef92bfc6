// Package scan implements the exact-match and prefix-match query
// operators (spec §4.4) over a dictionary and code column: the
// baseline scalar oracle, the code-domain scalar scan, and the
// AVX2-lane scan, plus the prefix-match candidate-set walk shared by
// both prefix variants.
//
// Every function here reads the dictionary through its own exported
// accessors (Lookup, ValueOf, ForEach), each of which takes the
// dictionary's read lock for just that one call; nothing in this
// package holds the lock across a whole scan; sync.RWMutex forbids
// recursive read locking, so callers must not wrap these in their own
// RLock either. This is safe because a Codec's dictionary and column
// are only ever mutated by Encode/Load, never concurrently with a
// query.
package scan

import (
	"github.com/dictcol/dictcol/internal/column"
	"github.com/dictcol/dictcol/internal/dict"
	"github.com/dictcol/dictcol/internal/simd"
)

// ExactBaseline walks the column and dereferences reverse[code] for
// every row, comparing against value directly. It never needs to
// resolve value to a code and is used as the correctness oracle
// invariant 5 checks the other two implementations against.
func ExactBaseline(d *dict.Dictionary, col *column.Column, value string) []int {
	var rows []int
	for i := 0; i < col.Len(); i++ {
		v, ok := d.ValueOf(col.At(i))
		if ok && v == value {
			rows = append(rows, i)
		}
	}

	return rows
}

// ExactScalar resolves value to its code once, then linearly scans
// the column. Returns nil (not an error) if value was never interned.
func ExactScalar(d *dict.Dictionary, col *column.Column, value string) []int {
	code, ok := d.Lookup(value)
	if !ok {
		return nil
	}

	return simd.ExactMatchScalar(col.Raw(), code, nil)
}

// ExactSIMD resolves value to its code once, then scans the column
// with the AVX2-lane-width kernel.
func ExactSIMD(d *dict.Dictionary, col *column.Column, value string) []int {
	code, ok := d.Lookup(value)
	if !ok {
		return nil
	}

	return simd.ExactMatchAVX2(col.Raw(), code, nil)
}

// BatchExact applies ExactSIMD to every value in values, in order.
// No cross-query vectorization is required by the spec; this simply
// avoids re-resolving shared setup per call site.
func BatchExact(d *dict.Dictionary, col *column.Column, values []string) [][]int {
	results := make([][]int, len(values))
	for i, v := range values {
		results[i] = ExactSIMD(d, col, v)
	}

	return results
}
