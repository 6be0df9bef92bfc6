package dict

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntern_NewAndExisting(t *testing.T) {
	d := New(0)

	c1, err := d.Intern("apple")
	require.NoError(t, err)
	assert.Equal(t, uint32(0), c1)

	c2, err := d.Intern("banana")
	require.NoError(t, err)
	assert.Equal(t, uint32(1), c2)

	c3, err := d.Intern("apple")
	require.NoError(t, err)
	assert.Equal(t, c1, c3)

	assert.Equal(t, 2, d.Len())
}

func TestLookup(t *testing.T) {
	d := New(0)
	_, _ = d.Intern("apple")

	code, ok := d.Lookup("apple")
	require.True(t, ok)
	assert.Equal(t, uint32(0), code)

	_, ok = d.Lookup("missing")
	assert.False(t, ok)
}

func TestValueOf(t *testing.T) {
	d := New(0)
	code, err := d.Intern("apple")
	require.NoError(t, err)

	value, ok := d.ValueOf(code)
	require.True(t, ok)
	assert.Equal(t, "apple", value)

	_, ok = d.ValueOf(999)
	assert.False(t, ok)
}

func TestInternBatch(t *testing.T) {
	d := New(0)
	dest := make([]uint32, 4)

	err := d.InternBatch([]string{"a", "b", "a"}, []int{0, 1, 2}, dest)
	require.NoError(t, err)

	assert.Equal(t, dest[0], dest[2])
	assert.NotEqual(t, dest[0], dest[1])
	assert.Equal(t, 2, d.Len())
}

func TestInternBatch_ReprobesUnderLock(t *testing.T) {
	d := New(0)
	_, err := d.Intern("a")
	require.NoError(t, err)

	dest := make([]uint32, 2)
	err = d.InternBatch([]string{"a", "b"}, []int{0, 1}, dest)
	require.NoError(t, err)

	assert.Equal(t, uint32(0), dest[0])
	assert.Equal(t, uint32(1), dest[1])
	assert.Equal(t, 2, d.Len())
}

func TestDenseCodesInvariant(t *testing.T) {
	d := New(0)
	values := []string{"a", "b", "c", "a", "d", "b"}
	seen := map[string]uint32{}

	for _, v := range values {
		code, err := d.Intern(v)
		require.NoError(t, err)
		seen[v] = code
	}

	codes := make(map[uint32]bool)
	for _, c := range seen {
		codes[c] = true
	}
	assert.Equal(t, len(seen), len(codes))
	for c := range codes {
		assert.Less(t, c, uint32(len(seen)))
	}
}

func TestConcurrentIntern(t *testing.T) {
	d := New(0)
	const workers = 32
	const perWorker = 200

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				_, err := d.Intern("value")
				assert.NoError(t, err)
			}
		}(w)
	}
	wg.Wait()

	assert.Equal(t, 1, d.Len(), "identical value interned concurrently must collapse to one code")
}

func TestLoadFrom(t *testing.T) {
	d := LoadFrom([]string{"apple", "banana", "cherry"})

	code, ok := d.Lookup("banana")
	require.True(t, ok)
	assert.Equal(t, uint32(1), code)

	value, ok := d.ValueOf(2)
	require.True(t, ok)
	assert.Equal(t, "cherry", value)
}

func TestForEach(t *testing.T) {
	d := New(0)
	_, _ = d.Intern("a")
	_, _ = d.Intern("b")

	var visited []string
	d.ForEach(func(value string, code uint32) {
		visited = append(visited, value)
		assert.Equal(t, value, d.reverse[code])
	})

	assert.Equal(t, []string{"a", "b"}, visited)
}
