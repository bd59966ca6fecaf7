package nn

import (
	"github.com/born-ml/track/internal/tensor"
)

// Sequential is a container module that chains multiple modules together.
//
// Each module's output becomes the next module's input, creating a
// sequential pipeline of transformations. Child execution is routed
// through Call so entry/exit hooks fire at every level.
type Sequential struct {
	Hookable
	modules []Module
}

// NewSequential creates a new Sequential container.
func NewSequential(modules ...Module) *Sequential {
	return &Sequential{
		modules: modules,
	}
}

// Forward applies all modules in sequence.
func (s *Sequential) Forward(input *tensor.Tensor) *tensor.Tensor {
	output := input
	for _, module := range s.modules {
		output = Call(module, output)
	}
	return output
}

// Parameters returns the container's parameters.
//
// A Sequential holds no parameters of its own; with recurse true the
// parameters of every child are collected recursively, with recurse
// false the result is nil.
func (s *Sequential) Parameters(recurse bool) []*Parameter {
	if !recurse {
		return nil
	}
	var params []*Parameter
	for _, module := range s.modules {
		params = append(params, module.Parameters(true)...)
	}
	return params
}

// Children returns the contained modules in execution order.
func (s *Sequential) Children() []Module {
	return s.modules
}

// Kind returns "Sequential".
func (s *Sequential) Kind() string {
	return "Sequential"
}

// Add appends a module to the sequence.
func (s *Sequential) Add(module Module) {
	s.modules = append(s.modules, module)
}

// Len returns the number of modules in the sequence.
func (s *Sequential) Len() int {
	return len(s.modules)
}

// Module returns the module at the given index.
//
// Panics if index is out of bounds.
func (s *Sequential) Module(index int) Module {
	if index < 0 || index >= len(s.modules) {
		panic("Sequential.Module: index out of bounds")
	}
	return s.modules[index]
}
