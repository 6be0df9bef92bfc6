package dictcol

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dictcol/dictcol/internal/column"
	"github.com/dictcol/dictcol/internal/dict"
	"github.com/dictcol/dictcol/internal/encode"
	"github.com/dictcol/dictcol/internal/options"
	"github.com/dictcol/dictcol/internal/scan"
	"github.com/dictcol/dictcol/persist"
)

// Match pairs a dictionary value with the ascending rows it occurs
// at, one per matching value returned by FindPrefix.
type Match = scan.Match

// Codec owns one dictionary and one code column: the encoded form of
// a single input file. It is not safe for concurrent Encode/Load
// calls against the same Codec, but concurrent queries (FindExact,
// FindPrefix, ...) against an already-encoded Codec are safe, since
// they only ever take the dictionary's read lock.
type Codec struct {
	cfg  *config
	dict *dict.Dictionary
	col  *column.Column
}

// New constructs a Codec with no data yet; call Encode or Load to
// populate it.
func New(opts ...Option) (*Codec, error) {
	cfg := newConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return &Codec{cfg: cfg}, nil
}

// Encode reads path once to count lines and once more to stream and
// intern them, per the concurrent algorithm in internal/encode. It
// replaces any dictionary/column already held by the Codec.
func (c *Codec) Encode(path string) error {
	start := time.Now()

	res, err := encode.Encode(path, encode.Options{
		Threads:            c.cfg.threads,
		BlockSize:          c.cfg.blockSize,
		BatchSize:          c.cfg.batchSize,
		DictionaryCapacity: c.cfg.dictionaryCapacity,
	})

	elapsed := time.Since(start)

	if err != nil {
		wrapped := translateEncodeError(path, err)
		c.cfg.logger.LogEncode(context.Background(), path, c.cfg.threads, 0, 0, elapsed, wrapped)
		c.cfg.metrics.RecordEncode(0, elapsed, wrapped)
		return wrapped
	}

	c.dict = res.Dictionary
	c.col = res.Column

	c.cfg.logger.LogEncode(context.Background(), path, c.cfg.threads, res.RowCount, res.Dictionary.Len(), elapsed, nil)
	c.cfg.metrics.RecordEncode(res.RowCount, elapsed, nil)

	return nil
}

func translateEncodeError(path string, err error) error {
	if errors.Is(err, dict.ErrDictionaryFull) {
		return fmt.Errorf("%w: %s", ErrDictionaryFull, path)
	}

	return &IOError{Op: "encode", Path: path, cause: err}
}

// ready reports whether the Codec holds encoded or loaded data.
func (c *Codec) ready() bool {
	return c.dict != nil && c.col != nil
}

// FindExact returns the ascending rows whose value equals value,
// using the SIMD-style scan path.
func (c *Codec) FindExact(value string) ([]int, error) {
	if !c.ready() {
		return nil, ErrNotEncoded
	}

	start := time.Now()
	rows := scan.ExactSIMD(c.dict, c.col, value)

	c.cfg.logger.LogQuery(context.Background(), "exact", value, len(rows), time.Since(start))
	c.cfg.metrics.RecordQuery("exact", len(rows), time.Since(start))

	return rows, nil
}

// FindExactBaseline is FindExact using the row-by-row string
// comparison reference path, kept for parity testing and for callers
// that want to bypass the SIMD-style dispatch entirely.
func (c *Codec) FindExactBaseline(value string) ([]int, error) {
	if !c.ready() {
		return nil, ErrNotEncoded
	}

	rows := scan.ExactBaseline(c.dict, c.col, value)

	return rows, nil
}

// BatchFindExact resolves multiple exact-match queries, in the order
// values were given.
func (c *Codec) BatchFindExact(values []string) ([][]int, error) {
	if !c.ready() {
		return nil, ErrNotEncoded
	}

	results := scan.BatchExact(c.dict, c.col, values)

	return results, nil
}

// FindPrefix returns one Match per distinct dictionary value with the
// given byte prefix, using the SIMD-style code-membership dispatch. An
// empty prefix returns an empty result, not an error.
func (c *Codec) FindPrefix(prefix string) ([]Match, error) {
	if !c.ready() {
		return nil, ErrNotEncoded
	}

	start := time.Now()
	matches := scan.PrefixSIMD(c.dict, c.col, prefix)

	c.cfg.logger.LogQuery(context.Background(), "prefix", prefix, len(matches), time.Since(start))
	c.cfg.metrics.RecordQuery("prefix", len(matches), time.Since(start))

	return matches, nil
}

// FindPrefixBaseline is FindPrefix using the per-row string
// re-derivation reference path. An empty prefix returns an empty
// result, not an error.
func (c *Codec) FindPrefixBaseline(prefix string) ([]Match, error) {
	if !c.ready() {
		return nil, ErrNotEncoded
	}

	matches := scan.PrefixBaseline(c.dict, c.col, prefix)

	return matches, nil
}

// Save persists the Codec's dictionary and code column to path using
// the compression codec selected by WithCompression (Zstandard by
// default).
func (c *Codec) Save(path string) error {
	if !c.ready() {
		return ErrNotEncoded
	}

	start := time.Now()
	err := persist.Save(path, c.dict, c.col, c.cfg.compression)
	elapsed := time.Since(start)

	if err != nil {
		wrapped := translatePersistError("save", path, err)
		c.cfg.logger.LogSave(context.Background(), path, 0, wrapped)
		c.cfg.metrics.RecordSave(0, elapsed, wrapped)
		return wrapped
	}

	c.cfg.logger.LogSave(context.Background(), path, 0, nil)
	c.cfg.metrics.RecordSave(0, elapsed, nil)

	return nil
}

// Load replaces the Codec's dictionary and code column with the
// contents of the dictcol file at path.
func (c *Codec) Load(path string) error {
	start := time.Now()
	d, col, err := persist.Load(path)
	elapsed := time.Since(start)

	if err != nil {
		wrapped := translatePersistError("load", path, err)
		c.cfg.logger.LogLoad(context.Background(), path, 0, 0, wrapped)
		c.cfg.metrics.RecordLoad(0, elapsed, wrapped)
		return wrapped
	}

	c.dict = d
	c.col = col

	c.cfg.logger.LogLoad(context.Background(), path, col.Len(), d.Len(), nil)
	c.cfg.metrics.RecordLoad(col.Len(), elapsed, nil)

	return nil
}

func translatePersistError(op, path string, err error) error {
	var corrupt *persist.DictionaryCorruptError
	if errors.As(err, &corrupt) {
		return &DictionaryCorruptError{Count: corrupt.Count, cause: err}
	}

	var ioErr *persist.IOError
	if errors.As(err, &ioErr) {
		return &IOError{Op: op, Path: path, cause: err}
	}

	if errors.Is(err, persist.ErrCompressionFailed) {
		return fmt.Errorf("%w: %v", ErrCompressionFailed, err)
	}

	return err
}

// DictionarySize returns the number of distinct interned values.
func (c *Codec) DictionarySize() (int, error) {
	if !c.ready() {
		return 0, ErrNotEncoded
	}

	return c.dict.Len(), nil
}

// RowCount returns the number of encoded rows.
func (c *Codec) RowCount() (int, error) {
	if !c.ready() {
		return 0, ErrNotEncoded
	}

	return c.col.Len(), nil
}

// CompressionRatio computes total original bytes / (dictionary bytes
// + column bytes), the canonical formula resolved in DESIGN.md.
// Values greater than 1.0 mean the encoding is smaller than the
// original data.
func (c *Codec) CompressionRatio() (float64, error) {
	if !c.ready() {
		return 0, ErrNotEncoded
	}

	dictBytes := 0
	c.dict.ForEach(func(value string, _ uint32) {
		dictBytes += len(value)
	})

	originalBytes := 0
	for i := 0; i < c.col.Len(); i++ {
		v, ok := c.dict.ValueOf(c.col.At(i))
		if ok {
			originalBytes += len(v)
		}
	}

	columnBytes := c.col.Len() * 4
	denominator := dictBytes + columnBytes
	if denominator == 0 {
		return 0, nil
	}

	return float64(originalBytes) / float64(denominator), nil
}

// MemoryUsage estimates the Codec's resident memory in bytes: the
// dictionary's distinct value bytes, its reverse-vector string header
// overhead, and the code column's four bytes per row.
func (c *Codec) MemoryUsage() (uint64, error) {
	if !c.ready() {
		return 0, ErrNotEncoded
	}

	const stringHeaderOverhead = 16 // runtime.StringHeader-equivalent bytes per entry

	dictBytes := uint64(0)
	c.dict.ForEach(func(value string, _ uint32) {
		dictBytes += uint64(len(value)) + stringHeaderOverhead
	})

	columnBytes := uint64(c.col.Len()) * 4

	return dictBytes + columnBytes, nil
}
