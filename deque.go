package deque

import (
	"errors"
	"fmt"
	"iter"
	"slices"

	"github.com/lucasgdosr/blockdeque/internal/grid"
)

// RowSize is the number of elements held by each block of the grid.
const RowSize = grid.RowSize

// Deque is a double-ended queue with random access, stored as a grid of
// fixed-size blocks. Pushing at either end is amortized O(1) and never moves
// existing elements: when an end runs out of blocks, the block table is
// tripled and the old blocks keep their identity in its middle third.
//
// To create a Deque instance, you must use one of the available constructors,
// MakeDeque(), MakeDequeFilled(n, t) or CopySliceToDeque(s). The zero value
// is not usable:
//
//	var deque Deque[int] // wrong
//
// Every mutating method either succeeds or returns an error and leaves the
// Deque exactly as it was. Failures come from the allocator (see
// WithAllocator) or from the element copier (see WithCopier).
//
// A Deque is not safe for concurrent use.
type Deque[T any] struct {
	grid *grid.Grid[T]

	// [head, tail) in row-major (column, offset) order holds the live
	// elements. Every other slot holds the zero value.
	headCol, headOff int
	tailCol, tailOff int
	size             int

	cfg config[T]
}

/*****************************************************************************
 * CONSTRUCTORS
 *****************************************************************************/

// MakeDeque allocates an empty Deque with a single block.
func MakeDeque[T any](opts ...Option[T]) (*Deque[T], error) {
	cfg := newConfig(opts)
	g, err := grid.New(cfg.alloc, 1, cfg.logger)
	if err != nil {
		return nil, err
	}
	return &Deque[T]{grid: g, cfg: cfg}, nil
}

// MakeDequeFilled allocates a Deque holding n copies of t. The elements are
// centred in a grid three times larger than they need, leaving room to grow
// at both ends. It returns an error if n is negative.
func MakeDequeFilled[T any](n int, t T, opts ...Option[T]) (*Deque[T], error) {
	if n < 0 {
		return nil, ErrNegativeLength
	}
	cfg := newConfig(opts)
	columns := (n/RowSize + 1) * 3
	g, err := grid.New(cfg.alloc, columns, cfg.logger)
	if err != nil {
		return nil, err
	}
	d := &Deque[T]{
		grid:    g,
		headCol: columns / 2,
		tailCol: columns/2 + n/RowSize,
		tailOff: n % RowSize,
		size:    n,
		cfg:     cfg,
	}
	if err := d.constructAll(func(int) T { return t }); err != nil {
		return nil, err
	}
	return d, nil
}

// CopySliceToDeque makes a Deque and pushes a copy of every element of s,
// in order.
func CopySliceToDeque[T any](s []T, opts ...Option[T]) (*Deque[T], error) {
	d, err := MakeDeque(opts...)
	if err != nil {
		return nil, err
	}
	for _, t := range s {
		if err := d.PushBack(t); err != nil {
			d.Release()
			return nil, err
		}
	}
	return d, nil
}

// Clone returns a deep copy of the Deque: a grid with the same number of
// blocks, and a copy of every element at the same coordinates. If a copy or
// an allocation fails, nothing is left allocated and the error is returned.
func (d *Deque[T]) Clone() (*Deque[T], error) { return d.cloneWith(d.cfg) }

func (d *Deque[T]) cloneWith(cfg config[T]) (*Deque[T], error) {
	g, err := grid.New(cfg.alloc, d.grid.Columns(), cfg.logger)
	if err != nil {
		return nil, err
	}
	c := &Deque[T]{
		grid:    g,
		headCol: d.headCol,
		headOff: d.headOff,
		tailCol: d.tailCol,
		tailOff: d.tailOff,
		size:    d.size,
		cfg:     cfg,
	}
	if err := c.constructAll(d.AtUnsafe); err != nil {
		return nil, err
	}
	return c, nil
}

// Assign replaces the contents of d with a copy of src. The receiver keeps
// its own options. On failure d is unchanged.
func (d *Deque[T]) Assign(src *Deque[T]) error {
	c, err := src.cloneWith(d.cfg)
	if err != nil {
		return err
	}
	d.Swap(c)
	c.Release()
	return nil
}

// Swap exchanges the contents, and options, of two Deques in O(1).
func (d *Deque[T]) Swap(other *Deque[T]) { *d, *other = *other, *d }

// Release destroys every element in index order and frees the grid. The
// Deque must not be used afterwards, except for Len. Calling Release twice is
// a no-op.
func (d *Deque[T]) Release() {
	if d.grid == nil {
		return
	}
	for i := range d.size {
		d.destroyAt(d.RefUnsafe(i))
	}
	d.grid.Free()
	d.grid = nil
	d.headCol, d.headOff, d.tailCol, d.tailOff, d.size = 0, 0, 0, 0, 0
}

/*****************************************************************************
 * DEQUE API
 *****************************************************************************/

// Len returns the number of elements in the Deque or 0 if nil.
func (d *Deque[T]) Len() int {
	if d == nil {
		return 0
	}
	return d.size
}

// Empty returns whether the Deque is empty.
func (d *Deque[T]) Empty() bool { return d.size == 0 }

// Columns returns the number of blocks in the grid.
func (d *Deque[T]) Columns() int { return d.grid.Columns() }

// Footprint returns an estimate, in bytes, of the memory held by the grid.
func (d *Deque[T]) Footprint() int { return d.grid.Bytes() }

// PushBack stores a copy of t after the last element.
func (d *Deque[T]) PushBack(t T) error {
	v, err := d.cfg.copy(t)
	if err != nil {
		return err
	}
	return d.pushBackOwned(v)
}

// pushBackOwned places v in the tail slot, then moves the tail forward,
// growing the grid when the tail sits in the last slot of the last block. If
// growing fails, v is destroyed and nothing else has changed.
func (d *Deque[T]) pushBackOwned(v T) error {
	*d.grid.Slot(d.tailCol, d.tailOff) = v
	if d.tailOff+1 == RowSize {
		if d.tailCol+1 == d.grid.Columns() {
			shift, err := d.grid.Grow()
			if err != nil {
				d.destroyAt(d.grid.Slot(d.tailCol, d.tailOff))
				return err
			}
			d.headCol += shift
			d.tailCol += shift
		}
		d.tailCol++
		d.tailOff = 0
	} else {
		d.tailOff++
	}
	d.size++
	return nil
}

// PushFront stores a copy of t before the first element.
//
// When the head already sits at the very first slot of the grid, the grid has
// to grow before there is a slot to write to. That path takes a full copy of
// the Deque first and restores it if storing t fails.
func (d *Deque[T]) PushFront(t T) error {
	if d.headCol != 0 || d.headOff != 0 {
		col, off := d.headCol, d.headOff-1
		if d.headOff == 0 {
			col, off = d.headCol-1, RowSize-1
		}
		if err := d.constructAt(d.grid.Slot(col, off), t); err != nil {
			return err
		}
		d.headCol, d.headOff = col, off
		d.size++
		return nil
	}

	snapshot, err := d.Clone()
	if err != nil {
		return err
	}
	shift, err := d.grid.Grow()
	if err != nil {
		snapshot.Release()
		return err
	}
	d.headCol += shift
	d.tailCol += shift
	if err := d.constructAt(d.grid.Slot(d.headCol-1, RowSize-1), t); err != nil {
		d.restore(snapshot, "push_front", err)
		return err
	}
	snapshot.Release()
	d.headCol--
	d.headOff = RowSize - 1
	d.size++
	return nil
}

// PopBack destroys the last element. It returns false if the Deque is empty.
// The grid never shrinks.
func (d *Deque[T]) PopBack() bool {
	if d.Empty() {
		return false
	}
	if d.tailOff == 0 {
		d.tailCol--
		d.tailOff = RowSize - 1
	} else {
		d.tailOff--
	}
	d.destroyAt(d.grid.Slot(d.tailCol, d.tailOff))
	d.size--
	return true
}

// PopFront destroys the first element. It returns false if the Deque is
// empty. The grid never shrinks.
func (d *Deque[T]) PopFront() bool {
	if d.Empty() {
		return false
	}
	d.destroyAt(d.grid.Slot(d.headCol, d.headOff))
	if d.headOff+1 == RowSize {
		d.headCol++
		d.headOff = 0
	} else {
		d.headOff++
	}
	d.size--
	return true
}

// Front returns the first element. If the Deque is empty, it returns false.
func (d *Deque[T]) Front() (t T, ok bool) {
	if d.Empty() {
		return
	}
	return d.AtUnsafe(0), true
}

// Back returns the last element. If the Deque is empty, it returns false.
func (d *Deque[T]) Back() (t T, ok bool) {
	if d.Empty() {
		return
	}
	return d.AtUnsafe(d.size - 1), true
}

// Insert stores a copy of t at the position of it, shifting every element
// from it to the back one place toward the back. it may be End(). Insert
// costs O(n): it takes a full copy of the Deque up front so that any failure
// can be undone.
func (d *Deque[T]) Insert(it Iterator[T], t T) error {
	i := it.Diff(d.Begin())
	if i < 0 || i > d.size {
		return fmt.Errorf("%w: insert at %d with length %d", ErrOutOfRange, i, d.size)
	}
	snapshot, err := d.Clone()
	if err != nil {
		return err
	}
	carry, err := d.cfg.copy(t)
	if err != nil {
		snapshot.Release()
		return err
	}
	for cur, end := d.Begin().Add(i), d.End(); !cur.Equal(end); cur = cur.Next() {
		p := cur.Ptr()
		*p, carry = carry, *p
	}
	if err := d.pushBackOwned(carry); err != nil {
		d.restore(snapshot, "insert", err)
		return err
	}
	snapshot.Release()
	return nil
}

// Erase removes the element at it, shifting every later element one place
// toward the front. Like Insert, it copies the whole Deque first.
func (d *Deque[T]) Erase(it Iterator[T]) error {
	i := it.Diff(d.Begin())
	if i < 0 || i >= d.size {
		return fmt.Errorf("%w: erase at %d with length %d", ErrOutOfRange, i, d.size)
	}
	snapshot, err := d.Clone()
	if err != nil {
		return err
	}
	for cur, last := d.Begin().Add(i), d.End().Prev(); !cur.Equal(last); cur = cur.Next() {
		a, b := cur.Ptr(), cur.Next().Ptr()
		*a, *b = *b, *a
	}
	d.PopBack()
	snapshot.Release()
	return nil
}

/*****************************************************************************
 * INDEX API
 *****************************************************************************/

// At returns the i-th element, or an error wrapping ErrOutOfRange.
func (d *Deque[T]) At(i int) (t T, err error) {
	if err = d.checkBounds(i); err != nil {
		return
	}
	return d.AtUnsafe(i), nil
}

// AtUnsafe returns the i-th element without checking bounds. An out of
// range index either panics or returns a slot outside the live range.
func (d *Deque[T]) AtUnsafe(i int) T { return *d.RefUnsafe(i) }

// Ref returns a pointer to the i-th element, or an error wrapping
// ErrOutOfRange. The pointer stays valid until the element is removed.
func (d *Deque[T]) Ref(i int) (*T, error) {
	if err := d.checkBounds(i); err != nil {
		return nil, err
	}
	return d.RefUnsafe(i), nil
}

// RefUnsafe returns a pointer to the i-th element without checking bounds.
func (d *Deque[T]) RefUnsafe(i int) *T {
	n := d.headOff + i
	return d.grid.Slot(d.headCol+n/RowSize, n%RowSize)
}

// Set replaces the i-th element with a copy of t, destroying the old one.
func (d *Deque[T]) Set(i int, t T) error {
	if err := d.checkBounds(i); err != nil {
		return err
	}
	v, err := d.cfg.copy(t)
	if err != nil {
		return err
	}
	p := d.RefUnsafe(i)
	d.destroyAt(p)
	*p = v
	return nil
}

/*****************************************************************************
 * ITERATOR API
 *****************************************************************************/

// Begin returns an iterator to the first element.
func (d *Deque[T]) Begin() Iterator[T] {
	return Iterator[T]{position[T]{d.grid.Table(), d.headCol, d.headOff}}
}

// End returns an iterator one past the last element.
func (d *Deque[T]) End() Iterator[T] {
	return Iterator[T]{position[T]{d.grid.Table(), d.tailCol, d.tailOff}}
}

// CBegin returns a read-only iterator to the first element.
func (d *Deque[T]) CBegin() ConstIterator[T] { return d.Begin().Const() }

// CEnd returns a read-only iterator one past the last element.
func (d *Deque[T]) CEnd() ConstIterator[T] { return d.End().Const() }

// RBegin returns a reverse iterator to the last element.
func (d *Deque[T]) RBegin() ReverseIterator[T] { return ReverseIterator[T]{d.End()} }

// REnd returns a reverse iterator one before the first element.
func (d *Deque[T]) REnd() ReverseIterator[T] { return ReverseIterator[T]{d.Begin()} }

// CRBegin returns a read-only reverse iterator to the last element.
func (d *Deque[T]) CRBegin() ConstReverseIterator[T] { return ConstReverseIterator[T]{d.CEnd()} }

// CREnd returns a read-only reverse iterator one before the first element.
func (d *Deque[T]) CREnd() ConstReverseIterator[T] { return ConstReverseIterator[T]{d.CBegin()} }

// Iter returns an iterator over values only in order. If you need indexes,
// use All instead. The Deque must not be modified during iteration.
func (d *Deque[T]) Iter() iter.Seq[T] {
	return func(yield func(T) bool) {
		if d == nil {
			return
		}
		d.segments(func(s []T) bool {
			for _, t := range s {
				if !yield(t) {
					return false
				}
			}
			return true
		})
	}
}

// All returns an iterator over index-value pairs in order.
func (d *Deque[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		if d == nil {
			return
		}
		i := 0
		d.segments(func(s []T) bool {
			for _, t := range s {
				if !yield(i, t) {
					return false
				}
				i++
			}
			return true
		})
	}
}

// Backward returns an iterator over index-value pairs from back to front.
func (d *Deque[T]) Backward() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := d.Len() - 1; i >= 0; i-- {
			if !yield(i, d.AtUnsafe(i)) {
				return
			}
		}
	}
}

// MakeSliceCopy allocates a slice holding every element in order.
func (d *Deque[T]) MakeSliceCopy() []T {
	s := make([]T, 0, d.Len())
	d.segments(func(b []T) bool {
		s = append(s, b...)
		return true
	})
	return s
}

// ContainsFunc returns whether an element satisfying f is in the Deque.
func (d *Deque[T]) ContainsFunc(f func(T) bool) bool { return d.IndexFunc(f) != -1 }

// IndexFunc returns the index of the first element that satisfies f in the
// Deque or -1 if none do.
func (d *Deque[T]) IndexFunc(f func(T) bool) int {
	result, base := -1, 0
	d.segments(func(s []T) bool {
		if i := slices.IndexFunc(s, f); i != -1 {
			result = base + i
			return false
		}
		base += len(s)
		return true
	})
	return result
}

// Contains returns whether the element is in the Deque. This must not be a
// method, otherwise Deque would be constrained to comparable elements.
func Contains[T comparable](d *Deque[T], t T) bool { return Index(d, t) != -1 }

// Index returns the index of the first occurrence of t in the Deque or -1 if
// absent.
func Index[T comparable](d *Deque[T], t T) int {
	return d.IndexFunc(func(e T) bool { return e == t })
}

// Equal returns whether both Deques have the same length and the same elements
// in the same order. Two nil Deques are equal, but an empty Deque and nil are
// not.
func Equal[T comparable](d1 *Deque[T], d2 *Deque[T]) bool {
	if d1 == nil || d2 == nil {
		return d1 == d2
	}
	if d1.size != d2.size {
		return false
	}
	for i := range d1.size {
		if d1.AtUnsafe(i) != d2.AtUnsafe(i) {
			return false
		}
	}
	return true
}

/*****************************************************************************
 * SENTINEL ERRORS
 *****************************************************************************/

// ErrOutOfRange is returned by bounds-checked accessors and by Insert and
// Erase when given a position outside the Deque.
var ErrOutOfRange = errors.New("deque: index out of range")

// ErrNegativeLength is returned when asking for a Deque of negative length.
var ErrNegativeLength = errors.New("deque: length cannot be negative")

/*****************************************************************************
 * HELPERS
 *****************************************************************************/

func (d *Deque[T]) checkBounds(i int) error {
	if i < 0 || i >= d.Len() {
		return fmt.Errorf("%w: index %d with length %d", ErrOutOfRange, i, d.Len())
	}
	return nil
}

func (d *Deque[T]) constructAt(slot *T, t T) error {
	v, err := d.cfg.copy(t)
	if err != nil {
		return err
	}
	*slot = v
	return nil
}

func (d *Deque[T]) destroyAt(slot *T) {
	if d.cfg.destroy != nil {
		d.cfg.destroy(slot)
	}
	var zero T
	*slot = zero
}

// constructAll fills the live range of a fresh grid with copies of src(i).
// On failure it destroys what it built and frees the grid.
func (d *Deque[T]) constructAll(src func(int) T) error {
	for i := range d.size {
		if err := d.constructAt(d.RefUnsafe(i), src(i)); err != nil {
			for j := range i {
				d.destroyAt(d.RefUnsafe(j))
			}
			d.grid.Free()
			d.grid = nil
			return err
		}
	}
	return nil
}

// restore puts snapshot back in place of d and discards the failed state.
func (d *Deque[T]) restore(snapshot *Deque[T], op string, cause error) {
	d.Swap(snapshot)
	snapshot.Release()
	d.cfg.logger.Debug("deque rolled back", "op", op, "len", d.size, "err", cause)
}

// segments calls f with the live part of each block, front to back, until f
// returns false.
func (d *Deque[T]) segments(f func([]T) bool) {
	if d == nil || d.size == 0 {
		return
	}
	for col := d.headCol; col <= d.tailCol; col++ {
		lo, hi := 0, RowSize
		if col == d.headCol {
			lo = d.headOff
		}
		if col == d.tailCol {
			hi = d.tailOff
		}
		if lo < hi && !f(d.grid.Block(col)[lo:hi]) {
			return
		}
	}
}
