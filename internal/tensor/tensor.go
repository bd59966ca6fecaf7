package tensor

import (
	"fmt"
	"math/rand"
)

// Tensor is a dense row-major float32 tensor.
//
// It carries the metadata the tracking layer observes: shape, runtime
// data type (for byte accounting) and a requires-grad marker. There is
// no autograd tape here; requiresGrad only records whether a value is
// learnable so measurement policies can split learnable from fixed.
type Tensor struct {
	shape        Shape
	dtype        DataType
	data         []float32
	requiresGrad bool
}

// New creates an uninitialized (zero-filled) tensor with the given shape.
func New(shape Shape) *Tensor {
	if err := shape.Validate(); err != nil {
		panic(fmt.Sprintf("tensor.New: %v", err))
	}
	return &Tensor{
		shape: shape.Clone(),
		dtype: Float32,
		data:  make([]float32, shape.NumElements()),
	}
}

// FromSlice creates a tensor from existing data.
//
// The data slice is used directly, not copied.
func FromSlice(data []float32, shape Shape) (*Tensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shape: %w", err)
	}
	if len(data) != shape.NumElements() {
		return nil, fmt.Errorf("data length %d does not match shape %v (%d elements)",
			len(data), shape, shape.NumElements())
	}
	return &Tensor{shape: shape.Clone(), dtype: Float32, data: data}, nil
}

// Zeros creates a tensor filled with zeros.
func Zeros(shape Shape) *Tensor {
	return New(shape)
}

// Ones creates a tensor filled with ones.
func Ones(shape Shape) *Tensor {
	t := New(shape)
	for i := range t.data {
		t.data[i] = 1
	}
	return t
}

// Full creates a tensor filled with the given value.
func Full(shape Shape, value float32) *Tensor {
	t := New(shape)
	for i := range t.data {
		t.data[i] = value
	}
	return t
}

// Randn creates a tensor with random values from N(0, 1).
func Randn(shape Shape) *Tensor {
	t := New(shape)
	for i := range t.data {
		//nolint:gosec // math/rand is fine for data initialization
		t.data[i] = float32(rand.NormFloat64())
	}
	return t
}

// Shape returns the tensor dimensions.
func (t *Tensor) Shape() Shape {
	return t.shape
}

// DType returns the runtime data type.
func (t *Tensor) DType() DataType {
	return t.dtype
}

// NumElements returns the total number of elements.
func (t *Tensor) NumElements() int {
	return t.shape.NumElements()
}

// ByteSize returns the storage size in bytes (elements times element width).
func (t *Tensor) ByteSize() int {
	return t.shape.NumElements() * t.dtype.Size()
}

// Data returns the underlying storage slice.
func (t *Tensor) Data() []float32 {
	return t.data
}

// RequiresGrad reports whether this tensor is marked as learnable.
func (t *Tensor) RequiresGrad() bool {
	return t.requiresGrad
}

// SetRequiresGrad marks the tensor as learnable (or not) and returns it
// for chaining.
func (t *Tensor) SetRequiresGrad(v bool) *Tensor {
	t.requiresGrad = v
	return t
}

// Reshape returns a view of the tensor with a new shape.
//
// The new shape must describe the same number of elements. The returned
// tensor shares storage with the receiver.
func (t *Tensor) Reshape(dims ...int) *Tensor {
	newShape := Shape(dims)
	if err := newShape.Validate(); err != nil {
		panic(fmt.Sprintf("Tensor.Reshape: %v", err))
	}
	if newShape.NumElements() != t.shape.NumElements() {
		panic(fmt.Sprintf("Tensor.Reshape: cannot reshape %v (%d elements) to %v (%d elements)",
			t.shape, t.shape.NumElements(), newShape, newShape.NumElements()))
	}
	return &Tensor{
		shape:        newShape.Clone(),
		dtype:        t.dtype,
		data:         t.data,
		requiresGrad: t.requiresGrad,
	}
}

// String returns a short description: shape, dtype and grad marker.
func (t *Tensor) String() string {
	grad := ""
	if t.requiresGrad {
		grad = ", requires_grad"
	}
	return fmt.Sprintf("Tensor(%v, %v%s)", t.shape, t.dtype, grad)
}
