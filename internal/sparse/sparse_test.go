package sparse

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSetBasicOperations(t *testing.T) {
	s := NewSet(16)

	require.Equal(t, 0, s.Size())
	require.False(t, s.Contains(0))

	s.Insert(3)
	s.Insert(7)
	s.Insert(3) // duplicate insert is a no-op

	require.Equal(t, 2, s.Size())
	require.True(t, s.Contains(3))
	require.True(t, s.Contains(7))
	require.False(t, s.Contains(4))
}

func TestSetInsertionOrder(t *testing.T) {
	s := NewSet(8)
	for _, v := range []uint32{5, 1, 6, 2} {
		s.Insert(v)
	}
	require.Equal(t, []uint32{5, 1, 6, 2}, s.Values())
}

func TestSetClear(t *testing.T) {
	s := NewSet(4)
	s.Insert(1)
	s.Insert(2)

	s.Clear()
	require.Equal(t, 0, s.Size())
	require.False(t, s.Contains(1))

	// The set is reusable after clearing.
	s.Insert(2)
	require.True(t, s.Contains(2))
	require.Equal(t, []uint32{2}, s.Values())
}

func TestSetOutOfRange(t *testing.T) {
	s := NewSet(4)
	require.False(t, s.Contains(100))
}

func TestSetUninitializedMemory(t *testing.T) {
	// The sparse array is never zeroed between clears; membership must
	// still be exact.
	s := NewSet(8)
	s.Insert(0)
	s.Clear()
	require.False(t, s.Contains(0))
}
