package encode

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.txt")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func valuesOf(t *testing.T, res *Result) []string {
	t.Helper()
	out := make([]string, res.Column.Len())
	for i := 0; i < res.Column.Len(); i++ {
		v, ok := res.Dictionary.ValueOf(res.Column.At(i))
		require.True(t, ok)
		out[i] = v
	}
	return out
}

func TestEncode_ScenarioA_TrivialDuplicates(t *testing.T) {
	path := writeTempFile(t, "apple\nbanana\napple\ncherry\nbanana\napple\n")

	res, err := Encode(path, Options{Threads: 1})
	require.NoError(t, err)

	assert.Equal(t, 6, res.RowCount)
	assert.Equal(t, 3, res.Dictionary.Len())
	assert.Equal(t,
		[]string{"apple", "banana", "apple", "cherry", "banana", "apple"},
		valuesOf(t, res))
}

func TestEncode_ScenarioD_ThreadEquivalence(t *testing.T) {
	var lines string
	values := []string{"a", "bb", "ccc", "a", "bb", "a", "dddd", "ccc", "a", "bb"}
	for _, v := range values {
		lines += v + "\n"
	}
	path := writeTempFile(t, lines)

	for _, threads := range []int{1, 2, 4, 8} {
		res, err := Encode(path, Options{Threads: threads, BatchSize: 2})
		require.NoError(t, err)
		assert.Equal(t, values, valuesOf(t, res), "threads=%d", threads)
	}
}

func TestEncode_ScenarioF_UnterminatedFinalLine(t *testing.T) {
	path := writeTempFile(t, "apple\nbanana\ncherry")

	res, err := Encode(path, Options{Threads: 2})
	require.NoError(t, err)

	assert.Equal(t, 3, res.RowCount)
	assert.Equal(t, []string{"apple", "banana", "cherry"}, valuesOf(t, res))
}

func TestEncode_EmptyFile(t *testing.T) {
	path := writeTempFile(t, "")

	res, err := Encode(path, Options{Threads: 4})
	require.NoError(t, err)

	assert.Equal(t, 0, res.RowCount)
	assert.Equal(t, 0, res.Dictionary.Len())
}

func TestEncode_EmptyLines(t *testing.T) {
	path := writeTempFile(t, "apple\n\napple\n\n")

	res, err := Encode(path, Options{Threads: 2})
	require.NoError(t, err)

	assert.Equal(t, 4, res.RowCount)
	assert.Equal(t, []string{"apple", "", "apple", ""}, valuesOf(t, res))
	assert.Equal(t, 2, res.Dictionary.Len())
}

func TestEncode_SpansMultipleBlocks(t *testing.T) {
	values := make([]string, 0, 5000)
	var lines string
	for i := 0; i < 5000; i++ {
		v := []string{"red", "green", "blue"}[i%3]
		values = append(values, v)
		lines += v + "\n"
	}
	path := writeTempFile(t, lines)

	res, err := Encode(path, Options{Threads: 4, BlockSize: 1024, BatchSize: 5})
	require.NoError(t, err)

	assert.Equal(t, 5000, res.RowCount)
	assert.Equal(t, 3, res.Dictionary.Len())
	assert.Equal(t, values, valuesOf(t, res))
}
