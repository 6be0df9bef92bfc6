// Package column implements the code column: the dense, per-row
// uint32 array the encoder fills and every scan operator reads.
package column

// Column is a fixed-size uint32 array indexed by row. It carries no
// lock of its own: the encoder writes to disjoint sub-ranges
// concurrently (see internal/encode), and readers only ever run once
// encode has returned and joined every worker, so no synchronization
// is required for either phase.
type Column struct {
	codes []uint32
}

// New allocates a Column with exactly rowCount slots, all zero until
// the encoder assigns them.
func New(rowCount int) *Column {
	return &Column{codes: make([]uint32, rowCount)}
}

// FromSlice wraps an existing []uint32 without copying, used by the
// persistence codec after decompressing a saved column.
func FromSlice(codes []uint32) *Column {
	return &Column{codes: codes}
}

// Len returns the row count.
func (c *Column) Len() int {
	return len(c.codes)
}

// At returns the code stored at row i. Callers must ensure i is in
// range; Column performs no bounds checking beyond what the slice
// index already provides.
func (c *Column) At(i int) uint32 {
	return c.codes[i]
}

// Set stores code at row i. Only the encoder calls this, and only
// within the row's owning worker range.
func (c *Column) Set(i int, code uint32) {
	c.codes[i] = code
}

// Slice returns the sub-range [start:end) directly, letting a worker
// or scan operator index into it without a bounds check per element.
func (c *Column) Slice(start, end int) []uint32 {
	return c.codes[start:end]
}

// Raw exposes the backing slice for the scan and persistence
// packages, which need it for SIMD-width iteration and serialization
// respectively.
func (c *Column) Raw() []uint32 {
	return c.codes
}
