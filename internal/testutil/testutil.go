// Package testutil provides instrumented collaborators for container tests:
// an allocator that counts and can refuse allocations, and an element copier
// that fails on a chosen call.
package testutil

import (
	"errors"
	"fmt"

	"github.com/lucasgdosr/blockdeque/alloc"
)

// ErrInjected is the error returned by injected failures.
var ErrInjected = errors.New("testutil: injected failure")

// CountingAllocator wraps the heap allocator, counting calls. When FailOn is
// positive, the FailOn-th call to Allocate (counting from 1) and every call
// after it fail with ErrInjected.
type CountingAllocator[T any] struct {
	FailOn int

	Allocs      int
	Deallocs    int
	Outstanding int

	heap alloc.Heap[T]
}

// Allocate implements alloc.Allocator.
func (c *CountingAllocator[T]) Allocate(n int) ([]T, error) {
	c.Allocs++
	if c.FailOn > 0 && c.Allocs >= c.FailOn {
		return nil, fmt.Errorf("allocate #%d: %w", c.Allocs, ErrInjected)
	}
	p, err := c.heap.Allocate(n)
	if err != nil {
		return nil, err
	}
	c.Outstanding++
	return p, nil
}

// Deallocate implements alloc.Allocator.
func (c *CountingAllocator[T]) Deallocate(p []T, n int) {
	c.Deallocs++
	c.Outstanding--
	c.heap.Deallocate(p, n)
}

// FailAfter makes the allocator refuse every allocation after the next n.
func (c *CountingAllocator[T]) FailAfter(n int) { c.FailOn = c.Allocs + n + 1 }

// Copier counts element copies and fails the FailOn-th one (counting from 1)
// when FailOn is positive. Destroyed counts calls to Destroy.
type Copier[T any] struct {
	FailOn    int
	Calls     int
	Destroyed int
}

// Copy is suitable for deque.WithCopier.
func (c *Copier[T]) Copy(v T) (T, error) {
	c.Calls++
	if c.FailOn > 0 && c.Calls == c.FailOn {
		var zero T
		return zero, fmt.Errorf("copy #%d: %w", c.Calls, ErrInjected)
	}
	return v, nil
}

// Destroy is suitable for deque.WithDestroyer.
func (c *Copier[T]) Destroy(*T) { c.Destroyed++ }

// FailNext arms the copier to fail on the n-th copy from now.
func (c *Copier[T]) FailNext(n int) { c.FailOn = c.Calls + n }
