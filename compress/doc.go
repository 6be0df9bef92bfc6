// Package compress provides pluggable compression codecs for the
// persisted code column.
//
// The persistence codec writes the dense uint32 code array to disk as a
// single compressed block. Which algorithm compresses that block is
// selectable independently of everything else in the file format:
//
//   - None: no compression, useful for benchmarking codec overhead
//   - Zstd: best compression ratio, the default
//   - S2: balanced ratio and throughput
//   - LZ4: fastest decompression
//
// All four implement the Codec interface (Compressor + Decompressor)
// and are safe for concurrent use; CreateCodec/GetCodec construct one
// from a format.CompressionType tag, the same tag persisted just before
// the compressed column so Load can pick the matching decompressor without the
// caller specifying it again.
package compress
