package dictcol

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dictcol/dictcol/format"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeInput(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.txt")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestCodec_EncodeAndQuery_ScenarioA(t *testing.T) {
	path := writeInput(t, "apple\nbanana\napple\ncherry\nbanana\napple\n")

	c, err := New()
	require.NoError(t, err)
	require.NoError(t, c.Encode(path))

	rows, err := c.FindExact("apple")
	require.NoError(t, err)
	assert.Equal(t, []int{0, 2, 5}, rows)

	baseline, err := c.FindExactBaseline("apple")
	require.NoError(t, err)
	assert.Equal(t, rows, baseline)

	size, err := c.DictionarySize()
	require.NoError(t, err)
	assert.Equal(t, 3, size)

	rowCount, err := c.RowCount()
	require.NoError(t, err)
	assert.Equal(t, 6, rowCount)
}

func TestCodec_FindPrefix_ScenarioB(t *testing.T) {
	path := writeInput(t, "apple\nbanana\napple\ncherry\nbanana\napple\n")

	c, err := New()
	require.NoError(t, err)
	require.NoError(t, c.Encode(path))

	matches, err := c.FindPrefix("ap")
	require.NoError(t, err)
	assert.Equal(t, []Match{{Value: "apple", Rows: []int{0, 2, 5}}}, matches)

	baseline, err := c.FindPrefixBaseline("ap")
	require.NoError(t, err)
	assert.Equal(t, matches, baseline)

	empty, err := c.FindPrefix("")
	require.NoError(t, err)
	assert.Empty(t, empty)

	emptyBaseline, err := c.FindPrefixBaseline("")
	require.NoError(t, err)
	assert.Empty(t, emptyBaseline)
}

func TestCodec_ScenarioD_ThreadEquivalence(t *testing.T) {
	var lines string
	values := []string{"a", "bb", "ccc", "a", "bb", "a", "dddd", "ccc", "a", "bb"}
	for _, v := range values {
		lines += v + "\n"
	}
	path := writeInput(t, lines)

	var reference [][]int
	for _, threads := range []int{1, 2, 4, 8} {
		c, err := New(WithThreads(threads), WithBatchSize(2))
		require.NoError(t, err)
		require.NoError(t, c.Encode(path))

		results, err := c.BatchFindExact([]string{"a", "bb", "ccc", "dddd", "zzz"})
		require.NoError(t, err)

		if reference == nil {
			reference = results
		} else {
			assert.Equal(t, reference, results, "threads=%d", threads)
		}
	}
}

func TestCodec_ScenarioE_SaveLoadRoundTrip(t *testing.T) {
	path := writeInput(t, "apple\nbanana\napple\ncherry\nbanana\napple\n")

	c, err := New(WithCompression(format.CompressionZstd))
	require.NoError(t, err)
	require.NoError(t, c.Encode(path))

	savePath := filepath.Join(t.TempDir(), "out.dcol")
	require.NoError(t, c.Save(savePath))

	loaded, err := New()
	require.NoError(t, err)
	require.NoError(t, loaded.Load(savePath))

	before, err := c.FindExact("banana")
	require.NoError(t, err)
	after, err := loaded.FindExact("banana")
	require.NoError(t, err)
	assert.Equal(t, before, after)

	beforeSize, _ := c.DictionarySize()
	afterSize, _ := loaded.DictionarySize()
	assert.Equal(t, beforeSize, afterSize)
}

func TestCodec_ScenarioF_EmptyAndEdgeLines(t *testing.T) {
	path := writeInput(t, "apple\n\napple\n\n")

	c, err := New()
	require.NoError(t, err)
	require.NoError(t, c.Encode(path))

	rowCount, err := c.RowCount()
	require.NoError(t, err)
	assert.Equal(t, 4, rowCount)

	rows, err := c.FindExact("")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3}, rows)
}

func TestCodec_QueriesBeforeEncode(t *testing.T) {
	c, err := New()
	require.NoError(t, err)

	_, err = c.FindExact("x")
	assert.ErrorIs(t, err, ErrNotEncoded)

	_, err = c.RowCount()
	assert.ErrorIs(t, err, ErrNotEncoded)

	err = c.Save(filepath.Join(t.TempDir(), "out.dcol"))
	assert.ErrorIs(t, err, ErrNotEncoded)
}

func TestCodec_CompressionRatioAndMemoryUsage(t *testing.T) {
	path := writeInput(t, "apple\nbanana\napple\ncherry\nbanana\napple\n")

	c, err := New()
	require.NoError(t, err)
	require.NoError(t, c.Encode(path))

	ratio, err := c.CompressionRatio()
	require.NoError(t, err)
	assert.Greater(t, ratio, 0.0)

	usage, err := c.MemoryUsage()
	require.NoError(t, err)
	assert.Greater(t, usage, uint64(0))
}

func TestNew_RejectsInvalidOptions(t *testing.T) {
	_, err := New(WithThreads(0))
	assert.Error(t, err)

	_, err = New(WithCompression(format.CompressionType(0xff)))
	assert.Error(t, err)
}
