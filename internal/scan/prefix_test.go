package scan

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrefixMatch_ScenarioB(t *testing.T) {
	d, col := buildScenarioA(t)

	want := []Match{{Value: "apple", Rows: []int{0, 2, 5}}}
	assert.Equal(t, want, PrefixBaseline(d, col, "ap"))
	assert.Equal(t, want, PrefixSIMD(d, col, "ap"))

	want = []Match{{Value: "banana", Rows: []int{1, 4}}}
	assert.Equal(t, want, PrefixBaseline(d, col, "b"))
	assert.Equal(t, want, PrefixSIMD(d, col, "b"))

	assert.Empty(t, PrefixBaseline(d, col, ""))
	assert.Empty(t, PrefixSIMD(d, col, ""))
}

func TestPrefixMatch_NoCandidates(t *testing.T) {
	d, col := buildScenarioA(t)

	assert.Empty(t, PrefixBaseline(d, col, "zzz"))
	assert.Empty(t, PrefixSIMD(d, col, "zzz"))
}
