// Package list implements a doubly linked list whose nodes come from an
// alloc.Allocator.
//
// Links are indexes into a node table rather than pointers. Index 0 is the
// sentinel: it sits between the last and the first element, so End() is
// simply the iterator at index 0 and an empty list is a sentinel linked to
// itself by index.
//
// To draw nodes from an arena, rebind the arena to the node type:
//
//	s := alloc.NewStorage(1 << 16)
//	l := list.New[int](alloc.Rebind[list.Node[int]](alloc.NewArena[byte](s)))
package list

import (
	"errors"
	"iter"

	"github.com/lucasgdosr/blockdeque/alloc"
)

const sentinel = 0

// Node is the unit of allocation of a List. Its fields are private; the type
// is exported so that allocators can be instantiated for it.
type Node[T any] struct {
	prev, next int
	value      T
}

// List is a doubly linked list. The zero value is not usable; create lists
// with New or NewFilled. A List is not safe for concurrent use.
type List[T any] struct {
	// slots[i] is the single-element allocation holding node i; nil slots
	// are free and listed in free.
	slots [][]Node[T]
	free  []int
	size  int
	alloc alloc.Allocator[Node[T]]
}

// New returns an empty list drawing nodes from a, or from the heap if a is
// nil.
func New[T any](a alloc.Allocator[Node[T]]) *List[T] {
	if a == nil {
		a = alloc.Heap[Node[T]]{}
	}
	return &List[T]{
		slots: [][]Node[T]{make([]Node[T], 1)},
		alloc: a,
	}
}

// NewFilled returns a list holding n copies of t. On allocation failure
// every node allocated so far is released.
func NewFilled[T any](n int, t T, a alloc.Allocator[Node[T]]) (*List[T], error) {
	l := New[T](a)
	for range n {
		if err := l.PushBack(t); err != nil {
			l.Release()
			return nil, err
		}
	}
	return l, nil
}

// Len returns the number of elements.
func (l *List[T]) Len() int { return l.size }

func (l *List[T]) node(i int) *Node[T] { return &l.slots[i][0] }

// Insert stores t before it. If the node cannot be allocated the list is
// unchanged.
func (l *List[T]) Insert(it Iterator[T], t T) error {
	p, err := l.alloc.Allocate(1)
	if err != nil {
		return err
	}
	var i int
	if n := len(l.free); n > 0 {
		i = l.free[n-1]
		l.free = l.free[:n-1]
		l.slots[i] = p
	} else {
		i = len(l.slots)
		l.slots = append(l.slots, p)
	}

	next := it.i
	prev := l.node(next).prev
	*l.node(i) = Node[T]{prev: prev, next: next, value: t}
	l.node(prev).next = i
	l.node(next).prev = i
	l.size++
	return nil
}

// Erase removes the element at it. Erasing End() returns ErrEnd.
func (l *List[T]) Erase(it Iterator[T]) error {
	if it.i == sentinel {
		return ErrEnd
	}
	n := l.node(it.i)
	l.node(n.prev).next = n.next
	l.node(n.next).prev = n.prev
	*n = Node[T]{}
	l.alloc.Deallocate(l.slots[it.i], 1)
	l.slots[it.i] = nil
	l.free = append(l.free, it.i)
	l.size--
	return nil
}

// PushBack appends t.
func (l *List[T]) PushBack(t T) error { return l.Insert(l.End(), t) }

// PushFront prepends t.
func (l *List[T]) PushFront(t T) error { return l.Insert(l.Begin(), t) }

// PopBack removes the last element. It returns false if the list is empty.
func (l *List[T]) PopBack() bool { return l.Erase(l.End().Prev()) == nil }

// PopFront removes the first element. It returns false if the list is empty.
func (l *List[T]) PopFront() bool { return l.Erase(l.Begin()) == nil }

// Front returns the first element, or false if the list is empty.
func (l *List[T]) Front() (t T, ok bool) {
	if l.size == 0 {
		return
	}
	return l.Begin().Value(), true
}

// Back returns the last element, or false if the list is empty.
func (l *List[T]) Back() (t T, ok bool) {
	if l.size == 0 {
		return
	}
	return l.End().Prev().Value(), true
}

// Clone copies the list node by node using the same allocator.
func (l *List[T]) Clone() (*List[T], error) {
	c := New[T](l.alloc)
	for t := range l.All() {
		if err := c.PushBack(t); err != nil {
			c.Release()
			return nil, err
		}
	}
	return c, nil
}

// Release returns every node to the allocator. The list is empty afterwards.
func (l *List[T]) Release() {
	for i := l.node(sentinel).next; i != sentinel; {
		next := l.node(i).next
		l.alloc.Deallocate(l.slots[i], 1)
		i = next
	}
	clear(l.slots[1:])
	l.slots = l.slots[:1]
	*l.node(sentinel) = Node[T]{}
	l.free = nil
	l.size = 0
}

// Begin returns an iterator to the first element.
func (l *List[T]) Begin() Iterator[T] { return Iterator[T]{l, l.node(sentinel).next} }

// End returns the iterator past the last element.
func (l *List[T]) End() Iterator[T] { return Iterator[T]{l, sentinel} }

// All returns an iterator over the values from front to back.
func (l *List[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for it := l.Begin(); it.i != sentinel; it = it.Next() {
			if !yield(it.Value()) {
				return
			}
		}
	}
}

// Backward returns an iterator over the values from back to front.
func (l *List[T]) Backward() iter.Seq[T] {
	return func(yield func(T) bool) {
		for it := l.End().Prev(); it.i != sentinel; it = it.Prev() {
			if !yield(it.Value()) {
				return
			}
		}
	}
}

// Iterator is a bidirectional position in a List. It stays valid until the
// element it refers to is erased.
type Iterator[T any] struct {
	l *List[T]
	i int
}

func (it Iterator[T]) Next() Iterator[T] { return Iterator[T]{it.l, it.l.node(it.i).next} }
func (it Iterator[T]) Prev() Iterator[T] { return Iterator[T]{it.l, it.l.node(it.i).prev} }

// Equal reports whether both iterators refer to the same node.
func (it Iterator[T]) Equal(o Iterator[T]) bool { return it.l == o.l && it.i == o.i }

// Value returns the element at the iterator. Calling it on End() returns the
// zero value.
func (it Iterator[T]) Value() T { return it.l.node(it.i).value }

// Set overwrites the element at the iterator.
func (it Iterator[T]) Set(t T) { it.l.node(it.i).value = t }

// ErrEnd is returned when erasing the End() iterator, including popping an
// empty list.
var ErrEnd = errors.New("list: cannot erase end")
