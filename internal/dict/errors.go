package dict

import "errors"

// errDictionaryFull is returned internally when a new code would
// exceed MaxCode. The root package maps this to its own
// ErrDictionaryFull sentinel at the API boundary.
var errDictionaryFull = errors.New("dict: dictionary full")

// ErrDictionaryFull is exported so callers outside the package (the
// root façade) can match it with errors.Is without an import cycle.
var ErrDictionaryFull = errDictionaryFull
