package tensor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShape_NumElements(t *testing.T) {
	tests := []struct {
		name  string
		shape Shape
		want  int
	}{
		{"scalar", Shape{}, 1},
		{"vector", Shape{5}, 5},
		{"matrix", Shape{3, 4}, 12},
		{"3d", Shape{2, 3, 4}, 24},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.shape.NumElements(); got != tt.want {
				t.Errorf("NumElements() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestShape_Equal(t *testing.T) {
	assert.True(t, Shape{2, 3}.Equal(Shape{2, 3}))
	assert.False(t, Shape{2, 3}.Equal(Shape{3, 2}))
	assert.False(t, Shape{2, 3}.Equal(Shape{2, 3, 1}))
}

func TestShape_String(t *testing.T) {
	assert.Equal(t, "[7 3]", Shape{7, 3}.String())
	assert.Equal(t, "[]", Shape{}.String())
}

func TestShape_Ints_DoesNotAlias(t *testing.T) {
	s := Shape{2, 3}
	ints := s.Ints()
	ints[0] = 99
	assert.Equal(t, Shape{2, 3}, s)
}

func TestFromSlice(t *testing.T) {
	data := []float32{1, 2, 3, 4, 5, 6}
	ten, err := FromSlice(data, Shape{2, 3})
	require.NoError(t, err)
	assert.Equal(t, 6, ten.NumElements())
	assert.Equal(t, Float32, ten.DType())
	assert.Equal(t, 24, ten.ByteSize())
}

func TestFromSlice_LengthMismatch(t *testing.T) {
	_, err := FromSlice([]float32{1, 2, 3}, Shape{2, 3})
	assert.Error(t, err)
}

func TestFromSlice_InvalidShape(t *testing.T) {
	_, err := FromSlice([]float32{}, Shape{0, 3})
	assert.Error(t, err)
}

func TestMatMul(t *testing.T) {
	// [2, 3] @ [3, 2] = [2, 2]
	a, err := FromSlice([]float32{1, 2, 3, 4, 5, 6}, Shape{2, 3})
	require.NoError(t, err)
	b, err := FromSlice([]float32{7, 8, 9, 10, 11, 12}, Shape{3, 2})
	require.NoError(t, err)

	c := a.MatMul(b)
	assert.Equal(t, Shape{2, 2}, c.Shape())
	assert.Equal(t, []float32{58, 64, 139, 154}, c.Data())
}

func TestMatMul_ShapeMismatch(t *testing.T) {
	a := Zeros(Shape{2, 3})
	b := Zeros(Shape{2, 3})
	assert.Panics(t, func() { a.MatMul(b) })
}

func TestTranspose(t *testing.T) {
	a, err := FromSlice([]float32{1, 2, 3, 4, 5, 6}, Shape{2, 3})
	require.NoError(t, err)

	at := a.Transpose()
	assert.Equal(t, Shape{3, 2}, at.Shape())
	assert.Equal(t, []float32{1, 4, 2, 5, 3, 6}, at.Data())
}

func TestAdd_SameShape(t *testing.T) {
	a := Ones(Shape{2, 2})
	b := Full(Shape{2, 2}, 2)
	c := a.Add(b)
	assert.Equal(t, []float32{3, 3, 3, 3}, c.Data())
}

func TestAdd_RowBroadcast(t *testing.T) {
	a, err := FromSlice([]float32{1, 2, 3, 4}, Shape{2, 2})
	require.NoError(t, err)
	bias, err := FromSlice([]float32{10, 20}, Shape{1, 2})
	require.NoError(t, err)

	c := a.Add(bias)
	assert.Equal(t, []float32{11, 22, 13, 24}, c.Data())
}

func TestAdd_Incompatible(t *testing.T) {
	a := Zeros(Shape{2, 3})
	b := Zeros(Shape{3, 3})
	assert.Panics(t, func() { a.Add(b) })
}

func TestReshape(t *testing.T) {
	a := Ones(Shape{2, 3})
	b := a.Reshape(3, 2)
	assert.Equal(t, Shape{3, 2}, b.Shape())

	// Reshape returns a view over the same storage.
	b.Data()[0] = 42
	assert.Equal(t, float32(42), a.Data()[0])

	assert.Panics(t, func() { a.Reshape(4, 2) })
}

func TestRequiresGrad_Propagation(t *testing.T) {
	x := Randn(Shape{2, 3})
	w := Randn(Shape{3, 4}).SetRequiresGrad(true)

	assert.False(t, x.RequiresGrad())
	assert.True(t, x.MatMul(w).RequiresGrad())
	assert.True(t, x.MatMul(w).Apply(func(v float32) float32 { return v }).RequiresGrad())
	assert.False(t, x.Transpose().RequiresGrad())
	assert.True(t, w.Add(w).RequiresGrad())
}

func TestDataType_Size(t *testing.T) {
	assert.Equal(t, 4, Float32.Size())
	assert.Equal(t, 8, Float64.Size())
	assert.Equal(t, 4, Int32.Size())
	assert.Equal(t, 8, Int64.Size())
	assert.Equal(t, 1, Uint8.Size())
}

func TestMatMul_LargeUsesParallelPath(t *testing.T) {
	// Rows above the parallel chunk threshold must still produce exact
	// results.
	m, k, n := 200, 16, 8
	a := Ones(Shape{m, k})
	b := Ones(Shape{k, n})

	c := a.MatMul(b)
	for i, v := range c.Data() {
		if v != float32(k) {
			t.Fatalf("c[%d] = %v, want %v", i, v, float32(k))
		}
	}
}
