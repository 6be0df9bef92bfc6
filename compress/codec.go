package compress

import (
	"fmt"

	"github.com/dictcol/dictcol/format"
)

// Compressor compresses a byte slice. Implementations used by the
// persistence codec operate on the serialized code column, so inputs
// are typically a few hundred KiB to a few hundred MiB of packed
// uint32 values.
type Compressor interface {
	// Compress compresses the input data and returns the compressed result.
	//
	// Memory management:
	//   - Returned slice is newly allocated and owned by the caller
	//   - Input slice is not modified
	//   - Internal buffers may be reused for efficiency
	Compress(data []byte) ([]byte, error)
}

// Decompressor mirrors Compressor for the decompression direction.
// Separate interfaces allow asymmetric implementations where
// compression and decompression have different resource needs.
type Decompressor interface {
	// Decompress decompresses the input data and returns the original result.
	//
	// Implementations size the output buffer themselves. The persistence
	// codec checks the returned length against the row count stored just
	// before the compressed column.
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both compression and decompression capabilities.
type Codec interface {
	Compressor
	Decompressor
}

// CompressionStats reports the outcome of a compress/decompress round
// for diagnostics. It is independent of Codec.CompressionRatio in the
// root package, which computes its own ratio.
type CompressionStats struct {
	Algorithm           format.CompressionType
	OriginalSize        int64
	CompressedSize      int64
	Ratio               float64
	CompressionTimeNs   int64
	DecompressionTimeNs int64
}

// CompressionRatio returns compressed size / original size. Values
// less than 1.0 indicate successful compression.
func (s CompressionStats) CompressionRatio() float64 {
	if s.OriginalSize == 0 {
		return 0.0
	}

	return float64(s.CompressedSize) / float64(s.OriginalSize)
}

// SpaceSavings returns the space saved as a percentage (0-100).
func (s CompressionStats) SpaceSavings() float64 {
	return (1.0 - s.CompressionRatio()) * 100.0
}

// CreateCodec constructs a Codec for the given compression type.
// target names the caller for error messages (e.g. "column").
func CreateCodec(compressionType format.CompressionType, target string) (Codec, error) {
	switch compressionType {
	case format.CompressionNone:
		return NewNoOpCompressor(), nil
	case format.CompressionZstd:
		return NewZstdCompressor(), nil
	case format.CompressionS2:
		return NewS2Compressor(), nil
	case format.CompressionLZ4:
		return NewLZ4Compressor(), nil
	default:
		return nil, fmt.Errorf("invalid %s compression: %s", target, compressionType)
	}
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone: NewNoOpCompressor(),
	format.CompressionZstd: NewZstdCompressor(),
	format.CompressionS2:   NewS2Compressor(),
	format.CompressionLZ4:  NewLZ4Compressor(),
}

// GetCodec retrieves a built-in Codec for the specified compression type.
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("unsupported compression type: %s", compressionType)
}
