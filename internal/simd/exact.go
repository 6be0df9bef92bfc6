package simd

import "math/bits"

// ExactMatchScalar linearly scans codes and appends every row index i
// where codes[i] == target to dst, returning the extended slice. This
// is the code-domain scalar path (spec §4.4.1) and doubles as the
// correctness oracle the AVX2 path is checked against.
func ExactMatchScalar(codes []uint32, target uint32, dst []int) []int {
	for i, c := range codes {
		if c == target {
			dst = append(dst, i)
		}
	}

	return dst
}

// ExactMatchAVX2 finds every row index where codes[i] == target using
// an 8-lane-at-a-time comparison loop shaped after AVX2's
// _mm256_cmpeq_epi32 + movemask + tzcnt idiom: compare 8 uint32 lanes
// against the broadcast target, reduce to an 8-bit mask, and consume
// set bits with bits.TrailingZeros32 / mask &= mask-1. Four such
// 8-lane groups are unrolled per outer iteration to improve prefetch
// behavior, matching the layout the reference implementation
// describes, with 8-lane and then scalar fallbacks for the remainder.
//
// Go has no portable AVX2 intrinsic, so this loop runs identically
// whether or not the host actually has AVX2; ActiveISA only reports
// which shape was selected, it does not change the code generated.
func ExactMatchAVX2(codes []uint32, target uint32, dst []int) []int {
	n := len(codes)
	i := 0

	for ; i+32 <= n; i += 32 {
		dst = matchLane8(codes[i:i+8], target, i, dst)
		dst = matchLane8(codes[i+8:i+16], target, i+8, dst)
		dst = matchLane8(codes[i+16:i+24], target, i+16, dst)
		dst = matchLane8(codes[i+24:i+32], target, i+24, dst)
	}

	for ; i+8 <= n; i += 8 {
		dst = matchLane8(codes[i:i+8], target, i, dst)
	}

	for ; i < n; i++ {
		if codes[i] == target {
			dst = append(dst, i)
		}
	}

	return dst
}

// matchLane8 compares an 8-element lane against target, builds an
// 8-bit mask of matching lanes, and appends base+lane_index for each
// set bit, clearing the lowest set bit each iteration.
func matchLane8(lane []uint32, target uint32, base int, dst []int) []int {
	var mask uint32
	for j := 0; j < len(lane); j++ {
		if lane[j] == target {
			mask |= 1 << uint(j)
		}
	}

	for mask != 0 {
		bit := bits.TrailingZeros32(mask)
		dst = append(dst, base+bit)
		mask &= mask - 1
	}

	return dst
}
