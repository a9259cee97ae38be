// Package grid implements the two-level block storage behind the deque: a
// table of fixed-size blocks that grows by tripling the table while keeping
// every existing block in place.
//
// A Grid knows nothing about element lifetime. Slots are handed out as raw
// storage and the caller decides which of them hold live values.
package grid

import (
	"fmt"
	"io"
	"log/slog"
	"unsafe"

	"github.com/lucasgdosr/blockdeque/alloc"
)

// RowSize is the number of slots in every block.
const RowSize = 32

// Grid is a table of blocks, each RowSize slots long.
type Grid[T any] struct {
	blocks [][]T
	alloc  alloc.Allocator[T]
	logger *slog.Logger
}

// New allocates a grid of columns blocks. If any block cannot be allocated,
// the blocks obtained so far are released and the error is returned.
func New[T any](a alloc.Allocator[T], columns int, logger *slog.Logger) (*Grid[T], error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	g := &Grid[T]{alloc: a, logger: logger}
	blocks := make([][]T, columns)
	for i := range blocks {
		b, err := a.Allocate(RowSize)
		if err != nil {
			g.release(blocks[:i])
			return nil, fmt.Errorf("grid: allocating block %d of %d: %w", i, columns, err)
		}
		blocks[i] = b
	}
	g.blocks = blocks
	return g, nil
}

// Columns returns the number of blocks in the table.
func (g *Grid[T]) Columns() int { return len(g.blocks) }

// Block returns the i-th block.
func (g *Grid[T]) Block(i int) []T { return g.blocks[i] }

// Slot returns a pointer to slot off of block col.
func (g *Grid[T]) Slot(col, off int) *T { return &g.blocks[col][off] }

// Table returns the current block table. The slice is replaced, not
// modified, by Grow, so a table obtained before a Grow keeps describing the
// old layout.
func (g *Grid[T]) Table() [][]T { return g.blocks }

// Bytes approximates the memory held by the grid: block slots plus the
// table itself.
func (g *Grid[T]) Bytes() int {
	var zero T
	var hdr []T
	return len(g.blocks) * (RowSize*int(unsafe.Sizeof(zero)) + int(unsafe.Sizeof(hdr)))
}

// Grow triples the block table. The existing blocks move to the middle third
// unchanged; the outer thirds receive new blocks. On failure every new block
// is released and the grid is left exactly as it was.
//
// Grow returns the number of columns the existing blocks were shifted by,
// which is the column count before the call.
func (g *Grid[T]) Grow() (int, error) {
	n := len(g.blocks)
	grown := make([][]T, 3*n)
	copy(grown[n:2*n], g.blocks)
	for _, r := range [][2]int{{0, n}, {2 * n, 3 * n}} {
		for i := r[0]; i < r[1]; i++ {
			b, err := g.alloc.Allocate(RowSize)
			if err != nil {
				g.release(grown[:n])
				g.release(grown[2*n:])
				return 0, fmt.Errorf("grid: growing %d -> %d columns: %w", n, 3*n, err)
			}
			grown[i] = b
		}
	}
	g.blocks = grown
	g.logger.Debug("grid grown", "from", n, "to", 3*n)
	return n, nil
}

// Free releases every block. The grid must not be used afterwards.
func (g *Grid[T]) Free() {
	g.release(g.blocks)
	g.blocks = nil
}

func (g *Grid[T]) release(blocks [][]T) {
	for _, b := range blocks {
		if b != nil {
			g.alloc.Deallocate(b, RowSize)
		}
	}
}
