// Package alloc provides the allocator contract shared by the containers in
// this module, together with two implementations.
//
// # Allocator Interface
//
// An Allocator hands out runs of element slots and takes them back:
//
//   - Allocate(n): return storage for n elements, or an error
//   - Deallocate(p, n): return storage previously obtained from Allocate
//
// # Implementations
//
// Heap: draws from the Go heap. It is the default for every container and
// never fails for a non-negative count.
//
// Arena: a bump-style adapter over a fixed-capacity Storage. Every Allocate
// reserves aligned space from the Storage and fails with ErrOutOfMemory once
// the capacity is spent. Deallocate is a no-op; space comes back only through
// Storage.Reset. Copies of an Arena, and Arenas produced by Rebind, all draw
// from the same Storage.
//
//	s := alloc.NewStorage(4096)
//	a := alloc.NewArena[int](s)
//	ints, err := a.Allocate(16)
//	if err != nil {
//	    return err
//	}
//	b := alloc.Rebind[string](a) // same Storage, different element type
//
// # Thread Safety
//
// Neither Storage nor Arena is safe for concurrent use.
package alloc
