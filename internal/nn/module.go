package nn

import (
	"github.com/born-ml/track/internal/tensor"
)

// Module is the base interface for all neural network components.
//
// Besides the forward computation, every module exposes the structure
// the tracking layer needs: its child modules, a kind identifier used
// for leaf filtering, its parameters (own or full recursive set) and a
// per-module hook registry for entry/exit interception.
type Module interface {
	// Forward computes the output of the module given an input tensor.
	Forward(input *tensor.Tensor) *tensor.Tensor

	// Parameters returns the trainable parameters of this module.
	//
	// With recurse true the full recursive parameter set is returned,
	// including every descendant module's parameters. With recurse
	// false only the module's own directly-held parameters are
	// returned (an empty slice for containers and activations).
	Parameters(recurse bool) []*Parameter

	// Children returns the direct child modules in execution order.
	// Leaf layers return nil.
	Children() []Module

	// Kind returns the module kind identifier (e.g. "Linear", "ReLU").
	Kind() string

	// Hooks returns the module's hook registry.
	Hooks() *HookSet
}

// LeafModule is an optional interface for modules that should be
// treated as atomic during tracking even though they have children.
type LeafModule interface {
	TrackAsLeaf() bool
}

// Call invokes a module through its hook registry.
//
// Pre hooks fire with the inputs, then Forward runs, then post hooks
// fire with inputs and output. Containers route child execution through
// Call so that interception points fire at every level of the tree.
// Execution is strictly sequential and depth-first; if Forward panics,
// post hooks for the failing module do not fire and the panic
// propagates to the caller.
func Call(m Module, input *tensor.Tensor) *tensor.Tensor {
	hooks := m.Hooks()
	inputs := []any{input}
	hooks.firePre(m, inputs)
	output := m.Forward(input)
	hooks.firePost(m, inputs, output)
	return output
}
