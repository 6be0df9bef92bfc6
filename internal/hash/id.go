package hash

import "github.com/cespare/xxhash/v2"

// Sum64 computes the xxHash64 of the given byte slice, used for the
// persistence codec's whole-file checksum trailer.
func Sum64(data []byte) uint64 {
	return xxhash.Sum64(data)
}
