// Package format defines the on-disk constants shared by the persistence
// codec: the file magic, format version, and the pluggable compression
// algorithm tag written alongside the compressed code column.
package format

// CompressionType identifies which Codec compressed the code column.
type CompressionType uint8

const (
	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.
)

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// Magic is the 4-byte prefix identifying a dictcol persistence file.
// It reads "DCOL" as a big-endian u32; the file stores it
// little-endian, so the first four bytes on disk are "LOCD".
const Magic uint32 = 0x44434f4c

// Version is the current on-disk format version. Bumped whenever the
// binary layout in persist changes in an incompatible way.
const Version uint16 = 1
