// Package encode implements the concurrent encoder (spec §4.3): it
// streams a text file in fixed-size blocks, partitions each block
// into contiguous per-worker line ranges, and has each worker resolve
// values against a shared dictionary, batching misses under the
// writer lock before writing codes into disjoint column ranges.
package encode

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/dictcol/dictcol/internal/column"
	"github.com/dictcol/dictcol/internal/dict"
	"github.com/dictcol/dictcol/internal/pool"
)

// DefaultBlockSize is the target size, in bytes, of each streamed
// text block (spec §4.3 step 2).
const DefaultBlockSize = 10 * 1024 * 1024

// DefaultBatchSize is the number of pending misses a worker
// accumulates before upgrading to the writer lock (spec §4.3).
const DefaultBatchSize = 100

// DefaultDictionaryCapacity is the pre-reserved dictionary capacity
// (spec §4.1).
const DefaultDictionaryCapacity = 1_000_000

// Options configures a single Encode call.
type Options struct {
	Threads            int
	BlockSize          int
	BatchSize          int
	DictionaryCapacity int
}

// Result is the populated dictionary and code column, plus the row
// count observed during the pre-pass.
type Result struct {
	Dictionary *dict.Dictionary
	Column     *column.Column
	RowCount   int
}

// Encode reads path once to count lines, then streams it again in
// blocks, filling a dictionary and code column per the algorithm in
// spec §4.3. Threads below 1 is treated as 1.
func Encode(path string, opts Options) (*Result, error) {
	if opts.Threads < 1 {
		opts.Threads = 1
	}
	if opts.BlockSize <= 0 {
		opts.BlockSize = DefaultBlockSize
	}
	if opts.BatchSize <= 0 {
		opts.BatchSize = DefaultBatchSize
	}
	if opts.DictionaryCapacity <= 0 {
		opts.DictionaryCapacity = DefaultDictionaryCapacity
	}

	rowCount, err := countLines(path)
	if err != nil {
		return nil, fmt.Errorf("encode: pre-pass: %w", err)
	}

	d := dict.New(opts.DictionaryCapacity)
	col := column.New(rowCount)

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	defer f.Close()

	if err := streamBlocks(f, opts, d, col); err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}

	return &Result{Dictionary: d, Column: col, RowCount: rowCount}, nil
}

// countLines does the pre-pass line count used to size the column
// (spec §4.3 step 1). A file with a final unterminated line still
// counts that line, matching the input-format contract in spec §6.
func countLines(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	reader := bufio.NewReaderSize(f, DefaultBlockSize)
	count := 0
	sawAnyByte := false
	trailingNewline := true

	for {
		chunk, err := reader.ReadSlice('\n')
		if len(chunk) > 0 {
			sawAnyByte = true
		}
		if len(chunk) > 0 && chunk[len(chunk)-1] == '\n' {
			count++
			trailingNewline = true
		} else if len(chunk) > 0 {
			trailingNewline = false
		}

		if err == io.EOF {
			break
		}
		if err != nil && err != bufio.ErrBufferFull {
			return 0, err
		}
	}

	if sawAnyByte && !trailingNewline {
		count++
	}

	return count, nil
}

// streamBlocks reads the file in opts.BlockSize-ish chunks, always
// extended to the next line boundary, and processes each block's
// lines before advancing to the next (spec §4.3 steps 2-5).
func streamBlocks(f *os.File, opts Options, d *dict.Dictionary, col *column.Column) error {
	reader := bufio.NewReaderSize(f, opts.BlockSize)
	buf := pool.GetBlockBuffer()
	defer pool.PutBlockBuffer(buf)

	row := 0

	for {
		lines, eof, err := readBlockLines(reader, opts.BlockSize, buf)
		if err != nil {
			return err
		}

		if len(lines) > 0 {
			if err := processBlock(lines, row, opts, d, col); err != nil {
				return err
			}
			row += len(lines)
		}

		if eof {
			return nil
		}
	}
}

// readBlockLines fills buf with at least opts.BlockSize bytes (unless
// EOF intervenes), extended to the next '\n' so no line spans two
// blocks, then splits it into lines. Each returned line is an owned
// string copy, so it stays valid after buf is reused.
func readBlockLines(reader *bufio.Reader, blockSize int, buf *pool.ByteBuffer) ([]string, bool, error) {
	buf.Reset()
	eof := false

	for {
		// ReadSlice can return ErrBufferFull mid-line (a line longer
		// than the reader's internal buffer); keep reading regardless
		// of blockSize until a real line boundary or EOF is reached,
		// so a line is never split across two blocks.
		chunk, err := reader.ReadSlice('\n')
		buf.MustWrite(chunk)

		if err == io.EOF {
			eof = true
			break
		}
		if err == bufio.ErrBufferFull {
			continue
		}
		if err != nil {
			return nil, false, err
		}

		if buf.Len() >= blockSize {
			break
		}
	}

	data := buf.Bytes()
	if len(data) == 0 {
		return nil, eof, nil
	}

	// Trim a single trailing newline so it doesn't produce a phantom
	// empty final line; a final record without one is still ingested
	// (spec §6).
	if data[len(data)-1] == '\n' {
		data = data[:len(data)-1]
	}

	// The block was a lone "\n": one empty record, not an empty block.
	if len(data) == 0 {
		return []string{""}, eof, nil
	}

	rawLines := bytes.Split(data, []byte{'\n'})
	lines := make([]string, len(rawLines))

	lineBuf := pool.GetLineBuffer()
	defer pool.PutLineBuffer(lineBuf)

	for i, l := range rawLines {
		lineBuf.Reset()
		lineBuf.MustWrite(l)
		lines[i] = string(lineBuf.Bytes())
	}

	return lines, eof, nil
}

// processBlock partitions lines into opts.Threads contiguous ranges,
// runs one goroutine per range, and joins before returning (spec §4.3
// steps 3-5). rowBase is the column index of lines[0]. Each worker
// gets its own bounded sub-slice of the column via column.Slice,
// rather than the full backing array, so it can only ever write
// inside the range it owns.
func processBlock(lines []string, rowBase int, opts Options, d *dict.Dictionary, col *column.Column) error {
	threads := opts.Threads
	if threads > len(lines) {
		threads = len(lines)
	}
	if threads < 1 {
		threads = 1
	}

	rangeSize := len(lines) / threads
	var g errgroup.Group

	start := 0
	for t := 0; t < threads; t++ {
		end := start + rangeSize
		if t == threads-1 {
			end = len(lines)
		}

		lo, hi := start, end
		dest := col.Slice(rowBase+lo, rowBase+hi)
		g.Go(func() error {
			return processRange(lines[lo:hi], dest, opts.BatchSize, d)
		})

		start = end
	}

	return g.Wait()
}

// processRange is the per-worker logic in spec §4.3: probe under the
// reader lock, batch misses, flush under the writer lock at BATCH
// entries or range end. dest is this worker's own sub-range of the
// column, so row indices here are relative to dest, not the column.
func processRange(lines []string, dest []uint32, batchSize int, d *dict.Dictionary) error {
	pendingValues, cleanupValues := pool.GetStringSlice(0)
	defer cleanupValues()
	pendingRows, cleanupRows := pool.GetIntSlice(0)
	defer cleanupRows()

	flush := func() error {
		if len(pendingValues) == 0 {
			return nil
		}

		if err := d.InternBatch(pendingValues, pendingRows, dest); err != nil {
			return err
		}

		pendingValues = pendingValues[:0]
		pendingRows = pendingRows[:0]

		return nil
	}

	for i, value := range lines {
		if code, ok := d.Lookup(value); ok {
			dest[i] = code
			continue
		}

		pendingValues = append(pendingValues, value)
		pendingRows = append(pendingRows, i)

		if len(pendingValues) >= batchSize {
			if err := flush(); err != nil {
				return err
			}
		}
	}

	return flush()
}
