package list

import (
	"slices"
	"testing"
	"unsafe"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lucasgdosr/blockdeque/alloc"
	"github.com/lucasgdosr/blockdeque/internal/testutil"
)

func requireList(t *testing.T, l *List[int], want []int) {
	t.Helper()
	require.Equal(t, len(want), l.Len())
	if diff := cmp.Diff(want, slices.Collect(l.All()), cmpopts.EquateEmpty()); diff != "" {
		t.Fatalf("forward mismatch (-want +got):\n%s", diff)
	}
	back := slices.Clone(want)
	slices.Reverse(back)
	if diff := cmp.Diff(back, slices.Collect(l.Backward()), cmpopts.EquateEmpty()); diff != "" {
		t.Fatalf("backward mismatch (-want +got):\n%s", diff)
	}
}

func TestList_PushPop(t *testing.T) {
	l := New[int](nil)
	defer l.Release()

	require.NoError(t, l.PushBack(1))
	require.NoError(t, l.PushBack(2))
	require.NoError(t, l.PushFront(0))
	requireList(t, l, []int{0, 1, 2})

	f, ok := l.Front()
	require.True(t, ok)
	assert.Equal(t, 0, f)
	b, ok := l.Back()
	require.True(t, ok)
	assert.Equal(t, 2, b)

	require.True(t, l.PopFront())
	require.True(t, l.PopBack())
	requireList(t, l, []int{1})

	require.True(t, l.PopBack())
	assert.False(t, l.PopBack())
	assert.False(t, l.PopFront())
	_, ok = l.Front()
	assert.False(t, ok)
	requireList(t, l, []int{})
}

func TestList_InsertErase(t *testing.T) {
	l, err := NewFilled(3, 7, nil)
	require.NoError(t, err)
	defer l.Release()

	it := l.Begin().Next()
	require.NoError(t, l.Insert(it, 99))
	requireList(t, l, []int{7, 99, 7, 7})

	// it still refers to the same node after an insert before it.
	it.Set(5)
	requireList(t, l, []int{7, 99, 5, 7})

	require.NoError(t, l.Erase(l.Begin()))
	requireList(t, l, []int{99, 5, 7})
	require.ErrorIs(t, l.Erase(l.End()), ErrEnd)

	// Freed node slots are reused.
	slots := len(l.slots)
	require.NoError(t, l.PushBack(8))
	assert.Equal(t, slots, len(l.slots))
	requireList(t, l, []int{99, 5, 7, 8})
}

func TestList_IteratorWalk(t *testing.T) {
	l, err := NewFilled(0, 0, nil)
	require.NoError(t, err)
	for i := range 10 {
		require.NoError(t, l.PushBack(i))
	}

	assert.True(t, l.End().Next().Equal(l.Begin()), "sentinel links back to the front")
	assert.True(t, l.Begin().Prev().Equal(l.End()))
	assert.Equal(t, 9, l.End().Prev().Value())

	var got []int
	for it := l.Begin(); !it.Equal(l.End()); it = it.Next() {
		got = append(got, it.Value())
	}
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, got)
}

func TestList_AllocFailureLeavesListUnchanged(t *testing.T) {
	a := &testutil.CountingAllocator[Node[int]]{}
	l := New[int](a)
	for i := range 4 {
		require.NoError(t, l.PushBack(i))
	}

	a.FailAfter(0)
	require.ErrorIs(t, l.PushFront(-1), testutil.ErrInjected)
	require.ErrorIs(t, l.Insert(l.Begin().Next(), -1), testutil.ErrInjected)
	requireList(t, l, []int{0, 1, 2, 3})

	_, err := l.Clone()
	require.ErrorIs(t, err, testutil.ErrInjected)
	assert.Equal(t, 4, a.Outstanding)

	l.Release()
	assert.Equal(t, 0, a.Outstanding)
	assert.Equal(t, 0, l.Len())
}

func TestList_Clone(t *testing.T) {
	l, err := NewFilled(5, 1, nil)
	require.NoError(t, err)
	c, err := l.Clone()
	require.NoError(t, err)

	c.Begin().Set(100)
	require.NoError(t, c.PushBack(2))
	requireList(t, l, []int{1, 1, 1, 1, 1})
	requireList(t, c, []int{100, 1, 1, 1, 1, 2})
}

func TestList_ArenaExhaustion(t *testing.T) {
	s := alloc.NewStorage(4 * int(unsafe.Sizeof(Node[int64]{})))
	a := alloc.Rebind[Node[int64]](alloc.NewArena[byte](s))

	l, err := NewFilled[int64](4, 1, a)
	require.NoError(t, err)
	assert.Equal(t, s.Cap(), s.Used())

	require.ErrorIs(t, l.PushBack(2), alloc.ErrOutOfMemory)
	assert.Equal(t, 4, l.Len())

	_, err = NewFilled[int64](1, 1, a)
	require.ErrorIs(t, err, alloc.ErrOutOfMemory)
}
