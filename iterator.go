package deque

import "github.com/lucasgdosr/blockdeque/internal/grid"

// position is a (block, offset) coordinate into a block table. It owns
// nothing; it stays meaningful until the Deque it came from grows its grid.
type position[T any] struct {
	table    [][]T
	col, off int
}

func (p position[T]) next() position[T] {
	if p.off+1 == grid.RowSize {
		p.col++
		p.off = 0
	} else {
		p.off++
	}
	return p
}

func (p position[T]) prev() position[T] {
	if p.off == 0 {
		p.col--
		p.off = grid.RowSize - 1
	} else {
		p.off--
	}
	return p
}

// add moves n slots. Going backwards the block delta is rounded up and the
// offset is brought back into [0, RowSize), so crossing any number of block
// boundaries in either direction lands on the right block.
func (p position[T]) add(n int) position[T] {
	if n >= 0 {
		p.col += (p.off + n) / grid.RowSize
		p.off = (p.off + n) % grid.RowSize
		return p
	}
	n = -n
	if n > p.off {
		p.col -= (n - p.off + grid.RowSize - 1) / grid.RowSize
	}
	p.off = ((p.off-n)%grid.RowSize + grid.RowSize) % grid.RowSize
	return p
}

func (p position[T]) diff(o position[T]) int {
	return (p.col-o.col)*grid.RowSize + (p.off - o.off)
}

func (p position[T]) equal(o position[T]) bool {
	return p.col == o.col && p.off == o.off
}

func (p position[T]) less(o position[T]) bool {
	if p.col == o.col {
		return p.off < o.off
	}
	return p.col < o.col
}

func (p position[T]) ptr() *T { return &p.table[p.col][p.off] }

/*****************************************************************************
 * ITERATOR
 *****************************************************************************/

// Iterator is a random-access position in a Deque with read and write
// access. Iterators are values: stepping returns a new Iterator.
//
// Growing the Deque (a push or insert that reallocates the grid) invalidates
// every Iterator obtained before, as does removing the element it refers to.
// Dereferencing an Iterator outside the live range is undefined.
type Iterator[T any] struct{ p position[T] }

// Next returns the iterator one position forward.
func (it Iterator[T]) Next() Iterator[T] { return Iterator[T]{it.p.next()} }

// Prev returns the iterator one position back.
func (it Iterator[T]) Prev() Iterator[T] { return Iterator[T]{it.p.prev()} }

// Add returns the iterator n positions forward. n may be negative.
func (it Iterator[T]) Add(n int) Iterator[T] { return Iterator[T]{it.p.add(n)} }

// Sub returns the iterator n positions back.
func (it Iterator[T]) Sub(n int) Iterator[T] { return Iterator[T]{it.p.add(-n)} }

// Diff returns the number of positions from o to it.
func (it Iterator[T]) Diff(o Iterator[T]) int { return it.p.diff(o.p) }

// Equal reports whether both iterators refer to the same position.
func (it Iterator[T]) Equal(o Iterator[T]) bool { return it.p.equal(o.p) }

// Less reports whether it comes before o.
func (it Iterator[T]) Less(o Iterator[T]) bool { return it.p.less(o.p) }

// Value returns the element at the iterator.
func (it Iterator[T]) Value() T { return *it.p.ptr() }

// Ptr returns a pointer to the element at the iterator.
func (it Iterator[T]) Ptr() *T { return it.p.ptr() }

// Set overwrites the element at the iterator.
func (it Iterator[T]) Set(t T) { *it.p.ptr() = t }

// Const returns a read-only iterator at the same position.
func (it Iterator[T]) Const() ConstIterator[T] { return ConstIterator[T]{it.p} }

/*****************************************************************************
 * CONST ITERATOR
 *****************************************************************************/

// ConstIterator is the read-only counterpart of Iterator.
type ConstIterator[T any] struct{ p position[T] }

func (it ConstIterator[T]) Next() ConstIterator[T]      { return ConstIterator[T]{it.p.next()} }
func (it ConstIterator[T]) Prev() ConstIterator[T]      { return ConstIterator[T]{it.p.prev()} }
func (it ConstIterator[T]) Add(n int) ConstIterator[T]  { return ConstIterator[T]{it.p.add(n)} }
func (it ConstIterator[T]) Sub(n int) ConstIterator[T]  { return ConstIterator[T]{it.p.add(-n)} }
func (it ConstIterator[T]) Diff(o ConstIterator[T]) int { return it.p.diff(o.p) }
func (it ConstIterator[T]) Equal(o ConstIterator[T]) bool {
	return it.p.equal(o.p)
}
func (it ConstIterator[T]) Less(o ConstIterator[T]) bool { return it.p.less(o.p) }
func (it ConstIterator[T]) Value() T                     { return *it.p.ptr() }

/*****************************************************************************
 * REVERSE ITERATORS
 *****************************************************************************/

// ReverseIterator walks a Deque from back to front. It wraps a forward
// Iterator and refers to the element just before it, so RBegin wraps End
// and REnd wraps Begin.
type ReverseIterator[T any] struct{ base Iterator[T] }

// Base returns the underlying forward iterator.
func (r ReverseIterator[T]) Base() Iterator[T] { return r.base }

func (r ReverseIterator[T]) Next() ReverseIterator[T] { return ReverseIterator[T]{r.base.Prev()} }
func (r ReverseIterator[T]) Prev() ReverseIterator[T] { return ReverseIterator[T]{r.base.Next()} }
func (r ReverseIterator[T]) Add(n int) ReverseIterator[T] {
	return ReverseIterator[T]{r.base.Add(-n)}
}
func (r ReverseIterator[T]) Diff(o ReverseIterator[T]) int { return o.base.Diff(r.base) }
func (r ReverseIterator[T]) Equal(o ReverseIterator[T]) bool {
	return r.base.Equal(o.base)
}
func (r ReverseIterator[T]) Value() T { return r.base.Prev().Value() }
func (r ReverseIterator[T]) Ptr() *T  { return r.base.Prev().Ptr() }
func (r ReverseIterator[T]) Set(t T)  { r.base.Prev().Set(t) }

// ConstReverseIterator is the read-only counterpart of ReverseIterator.
type ConstReverseIterator[T any] struct{ base ConstIterator[T] }

func (r ConstReverseIterator[T]) Base() ConstIterator[T] { return r.base }
func (r ConstReverseIterator[T]) Next() ConstReverseIterator[T] {
	return ConstReverseIterator[T]{r.base.Prev()}
}
func (r ConstReverseIterator[T]) Prev() ConstReverseIterator[T] {
	return ConstReverseIterator[T]{r.base.Next()}
}
func (r ConstReverseIterator[T]) Add(n int) ConstReverseIterator[T] {
	return ConstReverseIterator[T]{r.base.Add(-n)}
}
func (r ConstReverseIterator[T]) Diff(o ConstReverseIterator[T]) int {
	return o.base.Diff(r.base)
}
func (r ConstReverseIterator[T]) Equal(o ConstReverseIterator[T]) bool {
	return r.base.Equal(o.base)
}
func (r ConstReverseIterator[T]) Value() T { return r.base.Prev().Value() }
