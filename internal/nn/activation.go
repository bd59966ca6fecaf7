package nn

import (
	"fmt"
	"math"

	"github.com/born-ml/track/internal/tensor"
)

// ReLU is a Rectified Linear Unit activation module.
//
// Applies the element-wise function: f(x) = max(0, x)
type ReLU struct {
	Hookable
}

// NewReLU creates a new ReLU activation module.
func NewReLU() *ReLU {
	return &ReLU{}
}

// Forward applies ReLU activation: f(x) = max(0, x).
func (r *ReLU) Forward(input *tensor.Tensor) *tensor.Tensor {
	return input.Apply(func(x float32) float32 {
		if x > 0 {
			return x
		}
		return 0
	})
}

// Parameters returns nil (ReLU has no trainable parameters).
func (r *ReLU) Parameters(recurse bool) []*Parameter { return nil }

// Children returns nil (ReLU is a leaf layer).
func (r *ReLU) Children() []Module { return nil }

// Kind returns "ReLU".
func (r *ReLU) Kind() string { return "ReLU" }

// Sigmoid is a sigmoid activation module.
//
// Applies the element-wise function: σ(x) = 1 / (1 + exp(-x))
type Sigmoid struct {
	Hookable
}

// NewSigmoid creates a new Sigmoid activation module.
func NewSigmoid() *Sigmoid {
	return &Sigmoid{}
}

// Forward applies Sigmoid activation: σ(x) = 1 / (1 + exp(-x)).
func (s *Sigmoid) Forward(input *tensor.Tensor) *tensor.Tensor {
	return input.Apply(func(x float32) float32 {
		return float32(1.0 / (1.0 + math.Exp(float64(-x))))
	})
}

// Parameters returns nil (Sigmoid has no trainable parameters).
func (s *Sigmoid) Parameters(recurse bool) []*Parameter { return nil }

// Children returns nil (Sigmoid is a leaf layer).
func (s *Sigmoid) Children() []Module { return nil }

// Kind returns "Sigmoid".
func (s *Sigmoid) Kind() string { return "Sigmoid" }

// Tanh is a hyperbolic tangent activation module.
type Tanh struct {
	Hookable
}

// NewTanh creates a new Tanh activation module.
func NewTanh() *Tanh {
	return &Tanh{}
}

// Forward applies Tanh activation.
func (t *Tanh) Forward(input *tensor.Tensor) *tensor.Tensor {
	return input.Apply(func(x float32) float32 {
		return float32(math.Tanh(float64(x)))
	})
}

// Parameters returns nil (Tanh has no trainable parameters).
func (t *Tanh) Parameters(recurse bool) []*Parameter { return nil }

// Children returns nil (Tanh is a leaf layer).
func (t *Tanh) Children() []Module { return nil }

// Kind returns "Tanh".
func (t *Tanh) Kind() string { return "Tanh" }

// Identity passes its input through unchanged.
type Identity struct {
	Hookable
}

// NewIdentity creates a new Identity module.
func NewIdentity() *Identity {
	return &Identity{}
}

// Forward returns the input unchanged.
func (i *Identity) Forward(input *tensor.Tensor) *tensor.Tensor {
	return input
}

// Parameters returns nil (Identity has no trainable parameters).
func (i *Identity) Parameters(recurse bool) []*Parameter { return nil }

// Children returns nil (Identity is a leaf layer).
func (i *Identity) Children() []Module { return nil }

// Kind returns "Identity".
func (i *Identity) Kind() string { return "Identity" }

// NewActivation resolves an activation module by name.
//
// Supported names: "relu", "sigmoid", "tanh", "identity".
func NewActivation(name string) (Module, error) {
	switch name {
	case "relu":
		return NewReLU(), nil
	case "sigmoid":
		return NewSigmoid(), nil
	case "tanh":
		return NewTanh(), nil
	case "identity":
		return NewIdentity(), nil
	default:
		return nil, fmt.Errorf("unknown activation %q", name)
	}
}
