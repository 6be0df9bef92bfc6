package simd

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExactMatchScalar(t *testing.T) {
	codes := []uint32{5, 1, 5, 2, 5, 3}
	got := ExactMatchScalar(codes, 5, nil)
	assert.Equal(t, []int{0, 2, 4}, got)

	got = ExactMatchScalar(codes, 99, nil)
	assert.Empty(t, got)
}

func TestExactMatchAVX2_MatchesScalar(t *testing.T) {
	r := rand.New(rand.NewSource(1))

	for trial := 0; trial < 20; trial++ {
		n := r.Intn(200)
		codes := make([]uint32, n)
		for i := range codes {
			codes[i] = uint32(r.Intn(5))
		}

		for target := uint32(0); target < 6; target++ {
			want := ExactMatchScalar(codes, target, nil)
			got := ExactMatchAVX2(codes, target, nil)
			assert.Equal(t, want, got, "n=%d target=%d", n, target)
		}
	}
}

func TestExactMatchAVX2_SIMDTailScenario(t *testing.T) {
	// 37 lines alternating "x" (code 0) and "y" (code 1), starting with x.
	codes := make([]uint32, 37)
	for i := range codes {
		codes[i] = uint32(i % 2)
	}

	xRows := ExactMatchAVX2(codes, 0, nil)
	yRows := ExactMatchAVX2(codes, 1, nil)

	var wantX, wantY []int
	for i := 0; i < 37; i += 2 {
		wantX = append(wantX, i)
	}
	for i := 1; i < 37; i += 2 {
		wantY = append(wantY, i)
	}

	assert.Equal(t, wantX, xRows)
	assert.Equal(t, wantY, yRows)
}

func TestExactMatchAVX2_EmptyInput(t *testing.T) {
	assert.Empty(t, ExactMatchAVX2(nil, 0, nil))
}
