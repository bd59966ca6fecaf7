package nn

import (
	"fmt"
	"math/rand"

	"github.com/born-ml/track/internal/tensor"
)

// Dropout randomly zeroes elements of the input during training.
//
// The rate is the forget probability: each element is dropped with
// probability p and the survivors are scaled by 1/(1-p) so the expected
// activation stays unchanged. In evaluation mode (the default) Dropout
// is the identity and returns its input tensor unmodified.
type Dropout struct {
	Hookable
	p        float32
	training bool
}

// NewDropout creates a new Dropout layer with forget probability p.
func NewDropout(p float32) *Dropout {
	if p < 0 || p >= 1 {
		panic(fmt.Sprintf("NewDropout: forget probability must be in [0, 1), got %v", p))
	}
	return &Dropout{p: p}
}

// Train switches the layer between training and evaluation mode.
func (d *Dropout) Train(training bool) {
	d.training = training
}

// Training reports whether the layer is in training mode.
func (d *Dropout) Training() bool {
	return d.training
}

// Rate returns the forget probability.
func (d *Dropout) Rate() float32 {
	return d.p
}

// Forward applies dropout in training mode, identity otherwise.
func (d *Dropout) Forward(input *tensor.Tensor) *tensor.Tensor {
	if !d.training || d.p == 0 {
		return input
	}
	scale := 1 / (1 - d.p)
	return input.Apply(func(x float32) float32 {
		//nolint:gosec // math/rand is fine for dropout masks
		if rand.Float32() < d.p {
			return 0
		}
		return x * scale
	})
}

// Parameters returns nil (Dropout has no trainable parameters).
func (d *Dropout) Parameters(recurse bool) []*Parameter { return nil }

// Children returns nil (Dropout is a leaf layer).
func (d *Dropout) Children() []Module { return nil }

// Kind returns "Dropout".
func (d *Dropout) Kind() string { return "Dropout" }
