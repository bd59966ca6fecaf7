package weakset

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSet_AddContains(t *testing.T) {
	a := &[]int{1, 2}
	b := &[]int{1, 2, 3}

	s := New[[]int]()
	assert.False(t, s.Contains(a))
	assert.False(t, s.Contains(b))

	require.NoError(t, s.Add(a))
	assert.True(t, s.Contains(a))
	assert.False(t, s.Contains(b))

	require.NoError(t, s.Add(b))
	assert.True(t, s.Contains(a))
	assert.True(t, s.Contains(b))
	assert.Equal(t, 2, s.Len())
}

func TestSet_IdentityNotEquality(t *testing.T) {
	// Two distinct objects with equal contents are distinct members.
	a := new(int)
	b := new(int)

	s := New[int]()
	require.NoError(t, s.Add(a))

	assert.True(t, s.Contains(a))
	assert.False(t, s.Contains(b))
}

func TestSet_AddTwiceIsNoop(t *testing.T) {
	x := new(int)
	s := New[int]()

	require.NoError(t, s.Add(x))
	require.NoError(t, s.Add(x))
	assert.Equal(t, 1, s.Len())
}

func TestSet_AddNil(t *testing.T) {
	s := New[int]()
	assert.ErrorIs(t, s.Add(nil), ErrNilItem)
	assert.False(t, s.Contains(nil))
}

func TestSet_DoesNotKeepMembersAlive(t *testing.T) {
	s := New[[1024]byte]()

	// Add an object whose only strong reference dies with this scope.
	func() {
		x := new([1024]byte)
		require.NoError(t, s.Add(x))
		require.True(t, s.Contains(x))
		require.Equal(t, 1, s.Len())
	}()

	// The entry must not pin the object; after collection the member
	// is gone without any explicit removal.
	for i := 0; i < 10 && s.Len() != 0; i++ {
		runtime.GC()
	}
	assert.Equal(t, 0, s.Len())
}

func TestSet_SurvivorsStayMembers(t *testing.T) {
	s := New[int]()

	kept := new(int)
	require.NoError(t, s.Add(kept))

	func() {
		gone := new(int)
		require.NoError(t, s.Add(gone))
	}()

	for i := 0; i < 10 && s.Len() != 1; i++ {
		runtime.GC()
	}
	assert.True(t, s.Contains(kept))
	assert.Equal(t, 1, s.Len())
	runtime.KeepAlive(kept)
}
