package nn

import (
	"fmt"

	"github.com/born-ml/track/internal/tensor"
)

// DenseStack is a stack of fully connected layers.
//
// Architecture, repeated once per entry in numUnits:
//
//	x -> Dropout -> Linear -> activation -> x
//
// The layers are held as an explicit ordered list, so the stack can be
// walked and tracked like any other container. The dropout rate is the
// forget probability of each Dropout layer.
type DenseStack struct {
	Hookable
	inputSize  int
	numUnits   []int
	activation string
	dropout    float32
	layers     []Module
}

// NewDenseStack creates a stack of dense layers.
//
// Each hidden layer is Dropout -> Linear -> activation, with layer i
// mapping from the previous width to numUnits[i]. The activation is
// resolved by name ("relu", "sigmoid", "tanh", "identity").
//
// Example:
//
//	stack, err := nn.NewDenseStack(513, []int{1024, 1024, 1024}, "relu", 0.5)
func NewDenseStack(inputSize int, numUnits []int, activation string, dropout float32) (*DenseStack, error) {
	if inputSize <= 0 {
		return nil, fmt.Errorf("dense stack: input size must be positive, got %d", inputSize)
	}
	if len(numUnits) == 0 {
		return nil, fmt.Errorf("dense stack: at least one layer width required")
	}

	s := &DenseStack{
		inputSize:  inputSize,
		numUnits:   append([]int(nil), numUnits...),
		activation: activation,
		dropout:    dropout,
	}

	widths := append([]int{inputSize}, numUnits...)
	for i, units := range numUnits {
		act, err := NewActivation(activation)
		if err != nil {
			return nil, fmt.Errorf("dense stack: %w", err)
		}
		s.layers = append(s.layers,
			NewDropout(dropout),
			NewLinear(widths[i], units),
			act,
		)
	}

	return s, nil
}

// Forward chains the stack's layers over the input.
//
// Input shape: [batch_size, input_size]
// Output shape: [batch_size, numUnits[len(numUnits)-1]]
func (s *DenseStack) Forward(input *tensor.Tensor) *tensor.Tensor {
	output := input
	for _, layer := range s.layers {
		output = Call(layer, output)
	}
	return output
}

// Parameters returns the stack's parameters.
//
// The stack holds no parameters directly; with recurse true the
// parameters of every layer are collected.
func (s *DenseStack) Parameters(recurse bool) []*Parameter {
	if !recurse {
		return nil
	}
	var params []*Parameter
	for _, layer := range s.layers {
		params = append(params, layer.Parameters(true)...)
	}
	return params
}

// Children returns the ordered layer list.
func (s *DenseStack) Children() []Module {
	return s.layers
}

// Kind returns "DenseStack".
func (s *DenseStack) Kind() string {
	return "DenseStack"
}

// Train switches every Dropout layer between training and evaluation mode.
func (s *DenseStack) Train(training bool) {
	for _, layer := range s.layers {
		if d, ok := layer.(*Dropout); ok {
			d.Train(training)
		}
	}
}

// InputSize returns the expected input width.
func (s *DenseStack) InputSize() int {
	return s.inputSize
}

// NumUnits returns the per-layer output widths.
func (s *DenseStack) NumUnits() []int {
	return append([]int(nil), s.numUnits...)
}
