package pool

import "sync"

// Slice pools for efficient reuse of typed slices.
// These pools reduce allocations on two hot paths: buffering the
// encoder's pending (value, row) inserts and collecting prefix-search
// candidate codes.
var (
	uint32SlicePool = sync.Pool{
		New: func() any { return &[]uint32{} },
	}
	intSlicePool = sync.Pool{
		New: func() any { return &[]int{} },
	}
	stringSlicePool = sync.Pool{
		New: func() any { return &[]string{} },
	}
)

// GetUint32Slice retrieves and resizes a uint32 slice from the pool.
//
// The returned slice will have the exact length specified by size. If
// the pooled slice has insufficient capacity, a new slice is
// allocated. The caller must call the returned cleanup function
// (typically with defer) to return the slice to the pool.
func GetUint32Slice(size int) ([]uint32, func()) {
	ptr, _ := uint32SlicePool.Get().(*[]uint32)
	slice := (*ptr)[:0]

	if cap(slice) < size {
		slice = make([]uint32, size)
		*ptr = slice
	} else {
		slice = slice[:size]
		*ptr = slice
	}

	return slice, func() { uint32SlicePool.Put(ptr) }
}

// GetIntSlice retrieves and resizes an int slice from the pool. Used
// by the encoder to buffer the row indices of pending inserts.
func GetIntSlice(size int) ([]int, func()) {
	ptr, _ := intSlicePool.Get().(*[]int)
	slice := (*ptr)[:0]

	if cap(slice) < size {
		slice = make([]int, size)
		*ptr = slice
	} else {
		slice = slice[:size]
		*ptr = slice
	}

	return slice, func() { intSlicePool.Put(ptr) }
}

// GetStringSlice retrieves and resizes a string slice from the pool.
// Used by the encoder to buffer pending values before a batched
// dictionary insert.
func GetStringSlice(size int) ([]string, func()) {
	ptr, _ := stringSlicePool.Get().(*[]string)
	slice := (*ptr)[:0]

	if cap(slice) < size {
		slice = make([]string, size)
		*ptr = slice
	} else {
		slice = slice[:size]
		*ptr = slice
	}

	return slice, func() { stringSlicePool.Put(ptr) }
}
