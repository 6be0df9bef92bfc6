// Package dict implements the value<->code bijection shared by the
// encoder and every scan operator: a hash map from value to a dense
// uint32 code, backed by an append-only vector giving O(1) reverse
// lookup and stable addresses for the interned bytes.
package dict

import (
	"sync"
)

// MaxCode is the largest uint32 value (2^32 - 1). The dictionary holds
// at most MaxCode entries (codes 0..MaxCode-1) and refuses a new entry
// that would need code MaxCode.
const MaxCode = ^uint32(0)

// Dictionary is the value<->code bijection. The zero value is not
// usable; construct with New. A single sync.RWMutex guards both the
// forward map and the reverse slice — readers (queries, lookup
// probes) take RLock, writers (interning a new value) take Lock.
type Dictionary struct {
	mu      sync.RWMutex
	forward map[string]uint32
	reverse []string
}

// New creates an empty Dictionary pre-reserving capacity entries in
// the forward map to minimize rehashing during a large encode.
func New(capacity int) *Dictionary {
	if capacity < 0 {
		capacity = 0
	}

	return &Dictionary{
		forward: make(map[string]uint32, capacity),
		reverse: make([]string, 0, capacity),
	}
}

// Lookup returns the code for value under a reader lock, and whether
// it was found. This is the fast path every encoder worker takes
// before considering an insert.
func (d *Dictionary) Lookup(value string) (uint32, bool) {
	d.mu.RLock()
	code, ok := d.forward[value]
	d.mu.RUnlock()

	return code, ok
}

// Intern assigns value the next dense code if it is not already
// present, or returns its existing code. Callers on the encoder's hot
// path should prefer Lookup plus InternBatch, which amortizes the
// writer-lock acquisition; Intern is provided for single-value use
// (tests, small inputs).
func (d *Dictionary) Intern(value string) (uint32, error) {
	if code, ok := d.Lookup(value); ok {
		return code, nil
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if code, ok := d.forward[value]; ok {
		return code, nil
	}

	return d.insertLocked(value)
}

// insertLocked assigns the next code to value. Caller must hold the
// write lock.
func (d *Dictionary) insertLocked(value string) (uint32, error) {
	if len(d.reverse) >= int(MaxCode) {
		return 0, errDictionaryFull
	}

	code := uint32(len(d.reverse))
	d.reverse = append(d.reverse, value)
	d.forward[value] = code

	return code, nil
}

// InternBatch flushes a batch of pending (value, rowIndex) misses
// gathered by an encoder worker under reader-lock probing. It takes
// the writer lock once for the whole batch, re-probing each entry
// (another worker may have interned it in the meantime) before
// assigning a new code. dest receives the resolved code for the row
// at the matching index in rows.
func (d *Dictionary) InternBatch(values []string, rows []int, dest []uint32) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	for i, value := range values {
		code, ok := d.forward[value]
		if !ok {
			var err error
			code, err = d.insertLocked(value)
			if err != nil {
				return err
			}
		}

		dest[rows[i]] = code
	}

	return nil
}

// ValueOf returns the value for code under a reader lock.
func (d *Dictionary) ValueOf(code uint32) (string, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if int(code) >= len(d.reverse) {
		return "", false
	}

	return d.reverse[code], true
}

// Len returns the number of distinct interned values.
func (d *Dictionary) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return len(d.reverse)
}

// RLock/RUnlock/Lock/Unlock expose the dictionary's lock directly so
// callers needing to hold it across a multi-step operation (a full
// scan, or a batch save) can do so without a second layer of locking.
func (d *Dictionary) RLock()   { d.mu.RLock() }
func (d *Dictionary) RUnlock() { d.mu.RUnlock() }
func (d *Dictionary) Lock()    { d.mu.Lock() }
func (d *Dictionary) Unlock()  { d.mu.Unlock() }

// Snapshot returns the values in code order (index i holds the value
// for code i). The caller must hold at least a read lock, or be certain no encode is
// in flight, since the returned slice aliases the dictionary's
// internal storage.
func (d *Dictionary) Snapshot() []string {
	return d.reverse
}

// ForEach calls fn for every (value, code) pair while holding the
// read lock, in code order. fn must not call back into the
// dictionary.
func (d *Dictionary) ForEach(fn func(value string, code uint32)) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	for code, value := range d.reverse {
		fn(value, uint32(code))
	}
}

// LoadFrom rebuilds the dictionary from an ordered slice of values
// (index i is the value for code i), used by the persistence codec on
// Load. It returns a new Dictionary that keeps values as its reverse
// slice without copying it.
func LoadFrom(values []string) *Dictionary {
	d := &Dictionary{
		forward: make(map[string]uint32, len(values)),
		reverse: values,
	}
	for code, value := range values {
		d.forward[value] = uint32(code)
	}

	return d
}
