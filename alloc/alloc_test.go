package alloc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeap_Allocate(t *testing.T) {
	var h Heap[string]

	p, err := h.Allocate(8)
	require.NoError(t, err)
	require.Len(t, p, 8)

	p[3] = "x"
	h.Deallocate(p, 8)
	assert.Equal(t, "", p[3], "Deallocate should clear references")

	_, err = h.Allocate(-1)
	require.ErrorIs(t, err, ErrNegativeCount)
}

func TestStorage_Alignment(t *testing.T) {
	s := NewStorage(64)

	// One byte, then an int64 which must start at offset 8.
	_, err := NewArena[byte](s).Allocate(1)
	require.NoError(t, err)
	assert.Equal(t, 1, s.Used())

	_, err = NewArena[int64](s).Allocate(1)
	require.NoError(t, err)
	assert.Equal(t, 16, s.Used(), "int64 should be padded to an 8-byte boundary")
}

func TestArena_Exhaustion(t *testing.T) {
	s := NewStorage(32)
	a := NewArena[int32](s)

	_, err := a.Allocate(8)
	require.NoError(t, err)
	assert.Equal(t, 32, s.Used())

	_, err = a.Allocate(1)
	require.ErrorIs(t, err, ErrOutOfMemory)
	assert.Equal(t, 32, s.Used(), "failed allocation must not consume space")

	s.Reset()
	_, err = a.Allocate(8)
	require.NoError(t, err)
}

func TestArena_RebindSharesStorage(t *testing.T) {
	s := NewStorage(1024)
	a := NewArena[int64](s)
	b := Rebind[int16](a)
	c := a // copies have reference semantics

	_, err := a.Allocate(2)
	require.NoError(t, err)
	_, err = b.Allocate(4)
	require.NoError(t, err)
	_, err = c.Allocate(1)
	require.NoError(t, err)

	assert.Same(t, s, b.Storage())
	assert.Equal(t, 16+8+8, s.Used())
}

func TestArena_DeallocateIsNoop(t *testing.T) {
	s := NewStorage(128)
	a := NewArena[int](s)

	p, err := a.Allocate(4)
	require.NoError(t, err)
	used := s.Used()
	a.Deallocate(p, 4)
	assert.Equal(t, used, s.Used())
}
