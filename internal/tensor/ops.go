package tensor

import (
	"fmt"

	"github.com/born-ml/track/internal/parallel"
)

// The op surface is the minimum the dense stack needs: 2D matmul,
// transpose, broadcast add for the bias row and elementwise apply for
// activations. Results are marked learnable when any operand is, so the
// tracking layer observes a realistic learnable/fixed split.

// MatMul computes the matrix product of two 2D tensors.
//
// Shapes: [m, k] @ [k, n] -> [m, n]. Rows of the result are computed in
// parallel for large outputs.
func (t *Tensor) MatMul(other *Tensor) *Tensor {
	if len(t.shape) != 2 || len(other.shape) != 2 {
		panic(fmt.Sprintf("Tensor.MatMul: expected 2D tensors, got %v and %v", t.shape, other.shape))
	}
	m, k := t.shape[0], t.shape[1]
	k2, n := other.shape[0], other.shape[1]
	if k != k2 {
		panic(fmt.Sprintf("Tensor.MatMul: inner dimensions mismatch: %v @ %v", t.shape, other.shape))
	}

	out := New(Shape{m, n})
	out.requiresGrad = t.requiresGrad || other.requiresGrad

	cfg := parallel.DefaultConfig()
	parallel.For(m, func(i int) {
		row := t.data[i*k : (i+1)*k]
		outRow := out.data[i*n : (i+1)*n]
		for j := 0; j < n; j++ {
			var sum float32
			for p := 0; p < k; p++ {
				sum += row[p] * other.data[p*n+j]
			}
			outRow[j] = sum
		}
	}, cfg)

	return out
}

// Transpose returns the transpose of a 2D tensor.
func (t *Tensor) Transpose() *Tensor {
	if len(t.shape) != 2 {
		panic(fmt.Sprintf("Tensor.Transpose: expected 2D tensor, got %v", t.shape))
	}
	rows, cols := t.shape[0], t.shape[1]
	out := New(Shape{cols, rows})
	out.requiresGrad = t.requiresGrad
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			out.data[j*rows+i] = t.data[i*cols+j]
		}
	}
	return out
}

// Add returns the elementwise sum of two tensors.
//
// Shapes must either be equal, or other must be a [1, n] row broadcast
// against a [m, n] receiver (the bias-add pattern).
func (t *Tensor) Add(other *Tensor) *Tensor {
	out := New(t.shape)
	out.requiresGrad = t.requiresGrad || other.requiresGrad

	switch {
	case t.shape.Equal(other.shape):
		for i := range t.data {
			out.data[i] = t.data[i] + other.data[i]
		}
	case len(t.shape) == 2 && len(other.shape) == 2 &&
		other.shape[0] == 1 && other.shape[1] == t.shape[1]:
		n := t.shape[1]
		for i := 0; i < t.shape[0]; i++ {
			for j := 0; j < n; j++ {
				out.data[i*n+j] = t.data[i*n+j] + other.data[j]
			}
		}
	default:
		panic(fmt.Sprintf("Tensor.Add: shapes not compatible: %v + %v", t.shape, other.shape))
	}

	return out
}

// Apply returns a new tensor with f applied to every element.
func (t *Tensor) Apply(f func(float32) float32) *Tensor {
	out := New(t.shape)
	out.requiresGrad = t.requiresGrad
	for i, v := range t.data {
		out.data[i] = f(v)
	}
	return out
}
