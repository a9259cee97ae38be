package alloc

import "errors"

var (
	// ErrOutOfMemory indicates that the backing storage cannot supply the
	// requested number of elements.
	ErrOutOfMemory = errors.New("alloc: out of memory")

	// ErrNegativeCount indicates a negative element count was requested.
	ErrNegativeCount = errors.New("alloc: negative element count")
)
