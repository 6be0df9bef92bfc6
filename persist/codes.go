package persist

import "encoding/binary"

// encodeCodes packs codes into their little-endian byte representation
// for compression, the same layout used by the reference format.
func encodeCodes(codes []uint32) []byte {
	buf := make([]byte, len(codes)*4)
	for i, c := range codes {
		binary.LittleEndian.PutUint32(buf[i*4:], c)
	}

	return buf
}

// decodeCodes unpacks a decompressed byte slice back into rowCount
// codes. The caller has already checked buf against the persisted row
// count, so it must be exactly rowCount*4 bytes.
func decodeCodes(buf []byte, rowCount int) []uint32 {
	codes := make([]uint32, rowCount)
	for i := range codes {
		codes[i] = binary.LittleEndian.Uint32(buf[i*4:])
	}

	return codes
}
