package nn

import (
	"github.com/born-ml/track/internal/tensor"
)

// Parameter represents a trainable parameter in a neural network.
//
// Parameters are tensors that would receive gradient updates during
// training. They typically represent weights and biases of layers.
// Wrapping a tensor in a Parameter marks it as learnable.
type Parameter struct {
	name   string         // Parameter name (e.g., "weight", "bias")
	tensor *tensor.Tensor // The parameter tensor
}

// NewParameter creates a new trainable parameter.
//
// The wrapped tensor is marked as requiring gradients.
func NewParameter(name string, t *tensor.Tensor) *Parameter {
	t.SetRequiresGrad(true)
	return &Parameter{
		name:   name,
		tensor: t,
	}
}

// Name returns the parameter name.
func (p *Parameter) Name() string {
	return p.name
}

// Tensor returns the parameter tensor.
func (p *Parameter) Tensor() *tensor.Tensor {
	return p.tensor
}
