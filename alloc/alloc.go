package alloc

import (
	"fmt"
	"unsafe"
)

// Allocator supplies storage for runs of elements of type T.
//
// Implementations must return a slice of exactly n elements from Allocate.
// Deallocate receives the same slice and count that Allocate returned.
type Allocator[T any] interface {
	Allocate(n int) ([]T, error)
	Deallocate(p []T, n int)
}

/*****************************************************************************
 * HEAP
 *****************************************************************************/

// Heap allocates from the Go heap. The zero value is ready to use.
type Heap[T any] struct{}

// Allocate returns a zeroed slice of n elements.
func (Heap[T]) Allocate(n int) ([]T, error) {
	if n < 0 {
		return nil, ErrNegativeCount
	}
	return make([]T, n), nil
}

// Deallocate clears p so that references held in it can be collected.
func (Heap[T]) Deallocate(p []T, _ int) { clear(p) }

/*****************************************************************************
 * ARENA
 *****************************************************************************/

// Storage is a fixed-capacity bump arena. It only does the bookkeeping of a
// byte region: reservations advance a fill pointer, honouring alignment, and
// nothing is ever returned except through Reset.
type Storage struct {
	capacity uintptr
	filled   uintptr
}

// NewStorage creates a Storage able to hold capacity bytes.
func NewStorage(capacity int) *Storage {
	return &Storage{capacity: uintptr(max(capacity, 0))}
}

// Cap returns the total capacity in bytes.
func (s *Storage) Cap() int { return int(s.capacity) }

// Used returns the number of bytes reserved so far, padding included.
func (s *Storage) Used() int { return int(s.filled) }

// Reset forgets every reservation. Slices obtained earlier stay valid Go
// memory but no longer count against the capacity.
func (s *Storage) Reset() { s.filled = 0 }

// reserve advances the fill pointer past size bytes aligned to align and
// returns the offset of the reservation.
func (s *Storage) reserve(size, align uintptr) (uintptr, error) {
	if align == 0 {
		align = 1
	}
	pos := s.filled + (align-s.filled%align)%align
	if pos+size > s.capacity || pos+size < pos {
		return 0, fmt.Errorf("%w: need %d bytes at offset %d, capacity %d",
			ErrOutOfMemory, size, pos, s.capacity)
	}
	s.filled = pos + size
	return pos, nil
}

// Arena is an Allocator that charges every allocation against a shared
// Storage. Arena values are cheap to copy; all copies refer to the same
// Storage.
type Arena[T any] struct {
	s *Storage
}

// NewArena returns an Arena drawing from s.
func NewArena[T any](s *Storage) Arena[T] { return Arena[T]{s: s} }

// Rebind returns an Arena for element type U that shares a's Storage.
func Rebind[U, T any](a Arena[T]) Arena[U] { return Arena[U]{s: a.s} }

// Storage returns the backing Storage.
func (a Arena[T]) Storage() *Storage { return a.s }

// Allocate reserves room for n elements of T and returns them.
func (a Arena[T]) Allocate(n int) ([]T, error) {
	if n < 0 {
		return nil, ErrNegativeCount
	}
	var zero T
	size := unsafe.Sizeof(zero) * uintptr(n)
	if _, err := a.s.reserve(size, unsafe.Alignof(zero)); err != nil {
		return nil, err
	}
	return make([]T, n), nil
}

// Deallocate is a no-op: bump arenas only release memory on Reset.
func (a Arena[T]) Deallocate([]T, int) {}
