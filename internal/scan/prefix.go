package scan

import (
	"strings"

	"github.com/dictcol/dictcol/internal/column"
	"github.com/dictcol/dictcol/internal/dict"
	"github.com/dictcol/dictcol/internal/pool"
	"github.com/dictcol/dictcol/internal/simd"
)

// Match pairs a dictionary value with the ascending row indices where
// it occurs; a prefix search returns one Match per matching
// dictionary entry.
type Match struct {
	Value string
	Rows  []int
}

// candidateCodes enumerates the dictionary in code order and returns
// the codes (and their values, same order) whose value has the given
// byte prefix. An empty prefix yields no candidates, per the
// empty-prefix-returns-empty-result convention.
func candidateCodes(d *dict.Dictionary, prefix string) (codes []uint32, values []string) {
	if prefix == "" {
		return nil, nil
	}

	scratch, cleanup := pool.GetUint32Slice(0)
	defer cleanup()

	d.ForEach(func(value string, code uint32) {
		if strings.HasPrefix(value, prefix) {
			scratch = append(scratch, code)
			values = append(values, value)
		}
	})

	if len(scratch) == 0 {
		return nil, nil
	}

	codes = make([]uint32, len(scratch))
	copy(codes, scratch)

	return codes, values
}

// PrefixBaseline dispatches every row by resolving its code back to a
// string and re-checking the prefix, exactly as spec.md's baseline
// describes. It is the scalar reference the SIMD variant is checked
// against for parity.
func PrefixBaseline(d *dict.Dictionary, col *column.Column, prefix string) []Match {
	codes, values := candidateCodes(d, prefix)
	if len(codes) == 0 {
		return nil
	}

	buckets := make(map[string][]int, len(codes))
	for _, v := range values {
		buckets[v] = nil
	}

	for i := 0; i < col.Len(); i++ {
		v, ok := d.ValueOf(col.At(i))
		if !ok {
			continue
		}
		if _, isCandidate := buckets[v]; isCandidate {
			buckets[v] = append(buckets[v], i)
		}
	}

	return assembleMatches(values, buckets)
}

// PrefixSIMD dispatches every row by testing pure code membership in
// the candidate set, avoiding a string comparison per row; the
// candidate set itself is still derived from a byte-prefix scan of
// the dictionary, so both variants agree on which values qualify.
func PrefixSIMD(d *dict.Dictionary, col *column.Column, prefix string) []Match {
	codes, values := candidateCodes(d, prefix)
	if len(codes) == 0 {
		return nil
	}

	codeBuckets := make(map[uint32][]int, len(codes))
	for _, c := range codes {
		codeBuckets[c] = nil
	}

	simd.PrefixCandidateScan(col.Raw(), codeBuckets)

	valueBuckets := make(map[string][]int, len(codes))
	for i, c := range codes {
		valueBuckets[values[i]] = codeBuckets[c]
	}

	return assembleMatches(values, valueBuckets)
}

// assembleMatches builds the final pairs in dictionary-enumeration
// order (the order values were discovered in), dropping empty
// buckets. Rows arrive already ascending because both dispatch loops
// walk the column in row order.
func assembleMatches(values []string, buckets map[string][]int) []Match {
	matches := make([]Match, 0, len(values))
	for _, v := range values {
		rows := buckets[v]
		if len(rows) == 0 {
			continue
		}
		matches = append(matches, Match{Value: v, Rows: rows})
	}

	return matches
}
