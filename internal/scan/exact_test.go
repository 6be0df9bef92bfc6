package scan

import (
	"testing"

	"github.com/dictcol/dictcol/internal/column"
	"github.com/dictcol/dictcol/internal/dict"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildScenarioA(t *testing.T) (*dict.Dictionary, *column.Column) {
	t.Helper()
	values := []string{"apple", "banana", "apple", "cherry", "banana", "apple"}
	d := dict.New(0)
	col := column.New(len(values))

	for i, v := range values {
		code, err := d.Intern(v)
		require.NoError(t, err)
		col.Set(i, code)
	}

	return d, col
}

func TestExactMatch_ScenarioA(t *testing.T) {
	d, col := buildScenarioA(t)

	assert.Equal(t, []int{0, 2, 5}, ExactBaseline(d, col, "apple"))
	assert.Equal(t, []int{0, 2, 5}, ExactScalar(d, col, "apple"))
	assert.Equal(t, []int{0, 2, 5}, ExactSIMD(d, col, "apple"))

	assert.Equal(t, []int{1, 4}, ExactBaseline(d, col, "banana"))
	assert.Equal(t, []int{1, 4}, ExactScalar(d, col, "banana"))
	assert.Equal(t, []int{1, 4}, ExactSIMD(d, col, "banana"))

	assert.Empty(t, ExactBaseline(d, col, "date"))
	assert.Empty(t, ExactScalar(d, col, "date"))
	assert.Empty(t, ExactSIMD(d, col, "date"))
}

func TestBatchExact(t *testing.T) {
	d, col := buildScenarioA(t)

	results := BatchExact(d, col, []string{"apple", "banana", "date"})
	assert.Equal(t, []int{0, 2, 5}, results[0])
	assert.Equal(t, []int{1, 4}, results[1])
	assert.Empty(t, results[2])
}
