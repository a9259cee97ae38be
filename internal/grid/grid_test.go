package grid

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lucasgdosr/blockdeque/internal/testutil"
)

func TestNew_AllocatesColumns(t *testing.T) {
	a := &testutil.CountingAllocator[int]{}

	g, err := New[int](a, 3, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, g.Columns())
	assert.Equal(t, 3, a.Allocs)
	for i := range g.Columns() {
		assert.Len(t, g.Block(i), RowSize)
	}

	g.Free()
	assert.Equal(t, 0, a.Outstanding)
}

// TestNew_FailureReleasesPartial checks no block outlives a failed New.
func TestNew_FailureReleasesPartial(t *testing.T) {
	a := &testutil.CountingAllocator[int]{FailOn: 3}

	g, err := New[int](a, 5, nil)
	require.ErrorIs(t, err, testutil.ErrInjected)
	assert.Nil(t, g)
	assert.Equal(t, 2, a.Deallocs, "both blocks allocated before the failure should be freed")
	assert.Equal(t, 0, a.Outstanding)
}

func TestGrow_PreservesBlockIdentity(t *testing.T) {
	a := &testutil.CountingAllocator[int]{}
	g, err := New[int](a, 2, nil)
	require.NoError(t, err)

	*g.Slot(0, 5) = 42
	*g.Slot(1, 31) = 7
	before := g.Table()

	shift, err := g.Grow()
	require.NoError(t, err)
	assert.Equal(t, 2, shift)
	assert.Equal(t, 6, g.Columns())

	for i := range before {
		assert.Same(t, &before[i][0], &g.Block(i + shift)[0], "block %d moved", i)
	}
	assert.Equal(t, 42, *g.Slot(2, 5))
	assert.Equal(t, 7, *g.Slot(3, 31))
	assert.Equal(t, 6, a.Outstanding)
}

// TestGrow_FailureIsAtomic injects failures at every point of the growth and
// checks that the grid is untouched each time.
func TestGrow_FailureIsAtomic(t *testing.T) {
	for failAt := 1; failAt <= 6; failAt++ {
		a := &testutil.CountingAllocator[int]{}
		g, err := New[int](a, 3, nil)
		require.NoError(t, err)
		before := g.Table()

		a.FailAfter(failAt - 1)
		_, err = g.Grow()
		require.ErrorIs(t, err, testutil.ErrInjected, "failAt=%d", failAt)

		require.Equal(t, 3, g.Columns())
		for i := range before {
			assert.Same(t, &before[i][0], &g.Block(i)[0])
		}
		assert.Equal(t, 3, a.Outstanding, "failAt=%d: new blocks leaked", failAt)
	}
}

func TestBytes(t *testing.T) {
	g, err := New[int64](&testutil.CountingAllocator[int64]{}, 1, nil)
	require.NoError(t, err)
	assert.Equal(t, RowSize*8+int(unsafe.Sizeof([]int64(nil))), g.Bytes())
}
