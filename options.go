package deque

import (
	"io"
	"log/slog"

	"github.com/lucasgdosr/blockdeque/alloc"
)

// Option configures a Deque at construction time.
type Option[T any] func(*config[T])

type config[T any] struct {
	alloc   alloc.Allocator[T]
	copy    func(T) (T, error)
	destroy func(*T)
	logger  *slog.Logger
}

func newConfig[T any](opts []Option[T]) config[T] {
	c := config[T]{
		alloc:  alloc.Heap[T]{},
		copy:   func(t T) (T, error) { return t, nil },
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// WithAllocator makes the Deque draw its blocks from a instead of the heap.
func WithAllocator[T any](a alloc.Allocator[T]) Option[T] {
	return func(c *config[T]) {
		if a != nil {
			c.alloc = a
		}
	}
}

// WithCopier sets the function used whenever the Deque stores a copy of a
// value: on every push and insert, and for every element of a Clone. If it
// returns an error, the operation fails and the Deque is left unchanged.
//
// Without a copier, values are stored by plain assignment.
func WithCopier[T any](f func(T) (T, error)) Option[T] {
	return func(c *config[T]) {
		if f != nil {
			c.copy = f
		}
	}
}

// WithDestroyer sets a function called on every element the Deque discards,
// right before its slot is zeroed.
func WithDestroyer[T any](f func(*T)) Option[T] {
	return func(c *config[T]) { c.destroy = f }
}

// WithLogger sets the logger used for grid growth and rollback diagnostics.
func WithLogger[T any](l *slog.Logger) Option[T] {
	return func(c *config[T]) {
		if l != nil {
			c.logger = l
		}
	}
}
