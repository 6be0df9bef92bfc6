// Package persist implements the on-disk file format (spec.md §4.5):
// a dictionary section followed by a compressed code column and a
// whole-file checksum trailer, versioned by a leading magic number.
package persist

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/dictcol/dictcol/compress"
	"github.com/dictcol/dictcol/format"
	"github.com/dictcol/dictcol/internal/column"
	"github.com/dictcol/dictcol/internal/dict"
	"github.com/dictcol/dictcol/internal/hash"
	"github.com/dictcol/dictcol/internal/pool"
)

// headerSize is magic(4) + version(2) + dict_count(8).
const headerSize = 4 + 2 + 8

// Save writes the dictionary and code column to path as a single
// dictcol file: header, dictionary entries, row count, the code
// column compressed with codecType, and a trailing xxHash64 checksum
// over everything before it.
func Save(path string, d *dict.Dictionary, col *column.Column, codecType format.CompressionType) error {
	codec, err := compress.CreateCodec(codecType, "column")
	if err != nil {
		return err
	}

	body := pool.GetBlockBuffer()
	defer pool.PutBlockBuffer(body)

	d.RLock()
	writeHeader(body, d)
	d.RUnlock()

	if err := writeColumn(body, col, codecType, codec); err != nil {
		return err
	}

	checksum := hash.Sum64(body.Bytes())

	f, err := os.Create(path)
	if err != nil {
		return wrapIO("save", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if _, err := body.WriteTo(w); err != nil {
		return wrapIO("save", path, err)
	}
	if err := binary.Write(w, binary.LittleEndian, checksum); err != nil {
		return wrapIO("save", path, err)
	}
	if err := w.Flush(); err != nil {
		return wrapIO("save", path, err)
	}

	return nil
}

func writeHeader(w *pool.ByteBuffer, d *dict.Dictionary) {
	var hdr [headerSize]byte
	binary.LittleEndian.PutUint32(hdr[0:4], format.Magic)
	binary.LittleEndian.PutUint16(hdr[4:6], format.Version)
	binary.LittleEndian.PutUint64(hdr[6:14], uint64(len(d.Snapshot())))
	w.MustWrite(hdr[:])

	for code, value := range d.Snapshot() {
		var lenBuf [8]byte
		binary.LittleEndian.PutUint64(lenBuf[:], uint64(len(value)))
		w.MustWrite(lenBuf[:])
		w.MustWrite([]byte(value))

		var codeBuf [4]byte
		binary.LittleEndian.PutUint32(codeBuf[:], uint32(code))
		w.MustWrite(codeBuf[:])
	}
}

func writeColumn(w *pool.ByteBuffer, col *column.Column, codecType format.CompressionType, codec compress.Codec) error {
	var rowCountBuf [8]byte
	binary.LittleEndian.PutUint64(rowCountBuf[:], uint64(col.Len()))
	w.MustWrite(rowCountBuf[:])

	raw := encodeCodes(col.Raw())
	compressed, err := codec.Compress(raw)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCompressionFailed, err)
	}

	w.MustWrite([]byte{byte(codecType)})

	var sizeBuf [8]byte
	binary.LittleEndian.PutUint64(sizeBuf[:], uint64(len(compressed)))
	w.MustWrite(sizeBuf[:])
	w.MustWrite(compressed)

	return nil
}

// Load reads a dictcol file written by Save, verifying the magic,
// version, and checksum before reconstructing the dictionary and code
// column. The codec sizes its own decompression buffer; row_count in
// the file is used to check that the decompressed column is exactly
// row_count*4 bytes and to size the decoded code array.
func Load(path string) (*dict.Dictionary, *column.Column, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, wrapIO("load", path, err)
	}

	if len(data) < headerSize+8 {
		return nil, nil, ErrCorruptFile
	}

	trailerAt := len(data) - 8
	body := data[:trailerAt]
	wantChecksum := binary.LittleEndian.Uint64(data[trailerAt:])
	if hash.Sum64(body) != wantChecksum {
		return nil, nil, ErrChecksumMismatch
	}

	r := &reader{buf: body}

	magic, err := r.uint32()
	if err != nil || magic != format.Magic {
		return nil, nil, ErrCorruptFile
	}

	version, err := r.uint16()
	if err != nil {
		return nil, nil, ErrCorruptFile
	}
	if version != format.Version {
		return nil, nil, ErrUnsupportedVersion
	}

	dictCount, err := r.uint64()
	if err != nil {
		return nil, nil, wrapIO("load", path, err)
	}

	values, err := readDictionary(r, dictCount)
	if err != nil {
		return nil, nil, err
	}

	rowCount, err := r.uint64()
	if err != nil {
		return nil, nil, wrapIO("load", path, err)
	}

	codecTypeByte, err := r.byte()
	if err != nil {
		return nil, nil, wrapIO("load", path, err)
	}

	compressedSize, err := r.uint64()
	if err != nil {
		return nil, nil, wrapIO("load", path, err)
	}

	compressed, err := r.bytes(int(compressedSize))
	if err != nil {
		return nil, nil, wrapIO("load", path, err)
	}

	codec, err := compress.CreateCodec(format.CompressionType(codecTypeByte), "column")
	if err != nil {
		return nil, nil, err
	}

	raw, err := codec.Decompress(compressed)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrCompressionFailed, err)
	}
	if len(raw) != int(rowCount)*4 {
		return nil, nil, fmt.Errorf("%w: decompressed %d bytes, want %d", ErrCorruptFile, len(raw), int(rowCount)*4)
	}

	codes := decodeCodes(raw, int(rowCount))

	return dict.LoadFrom(values), column.FromSlice(codes), nil
}

// readDictionary reads count (value, code) entries and returns the
// values ordered by code, verifying the codes form a dense
// permutation of {0, ..., count-1}.
func readDictionary(r *reader, count uint64) ([]string, error) {
	values := make([]string, count)
	seen := make([]bool, count)

	for i := uint64(0); i < count; i++ {
		valueLen, err := r.uint64()
		if err != nil {
			return nil, err
		}

		valueBytes, err := r.bytes(int(valueLen))
		if err != nil {
			return nil, err
		}

		code, err := r.uint32()
		if err != nil {
			return nil, err
		}

		if uint64(code) >= count || seen[code] {
			return nil, &DictionaryCorruptError{Count: int(count), Code: code}
		}
		seen[code] = true
		values[code] = string(valueBytes)
	}

	return values, nil
}

// reader is a small cursor over an in-memory byte slice, used instead
// of bytes.Reader so short reads surface as io.ErrUnexpectedEOF
// consistently across every field width.
type reader struct {
	buf []byte
	pos int
}

func (r *reader) take(n int) ([]byte, error) {
	if r.pos+n > len(r.buf) {
		return nil, io.ErrUnexpectedEOF
	}
	b := r.buf[r.pos : r.pos+n]
	r.pos += n

	return b, nil
}

func (r *reader) byte() (byte, error) {
	b, err := r.take(1)
	if err != nil {
		return 0, err
	}

	return b[0], nil
}

func (r *reader) uint16() (uint16, error) {
	b, err := r.take(2)
	if err != nil {
		return 0, err
	}

	return binary.LittleEndian.Uint16(b), nil
}

func (r *reader) uint32() (uint32, error) {
	b, err := r.take(4)
	if err != nil {
		return 0, err
	}

	return binary.LittleEndian.Uint32(b), nil
}

func (r *reader) uint64() (uint64, error) {
	b, err := r.take(8)
	if err != nil {
		return 0, err
	}

	return binary.LittleEndian.Uint64(b), nil
}

func (r *reader) bytes(n int) ([]byte, error) {
	b, err := r.take(n)
	if err != nil {
		return nil, err
	}

	out := make([]byte, n)
	copy(out, b)

	return out, nil
}
