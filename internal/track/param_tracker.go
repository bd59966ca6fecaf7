package track

import (
	"fmt"

	"github.com/born-ml/track/internal/nn"
)

// ParamTracker records the number of parameter elements of one module
// execution.
//
// Recursion over the parameter set follows the leaf flag: a module
// tracked as a leaf is counted with its full recursive parameter set,
// an internal module only with its own directly-held parameters. The
// internal modules' subtrees are counted by their own trackers, so the
// per-module numbers sum to the tree total without double counting.
type ParamTracker struct {
	Base
	ModuleKind string
	NumParams  int
}

// NewParamTracker is a Factory for ParamTracker.
func NewParamTracker(count, depth int, leaf bool, shared Dict) Tracker {
	return &ParamTracker{Base: Base{Count: count, Depth: depth, Leaf: leaf, Shared: shared}}
}

// Pre records the module kind.
func (t *ParamTracker) Pre(m nn.Module, inputs []any) {
	t.ModuleKind = m.Kind()
}

// Post sums the element counts of the module's parameters.
func (t *ParamTracker) Post(m nn.Module, inputs []any, output any) {
	total := 0
	for _, p := range m.Parameters(t.Leaf) {
		total += p.Tensor().NumElements()
	}
	t.NumParams = total
}

// String renders "<count> <kind>: <num params>".
func (t *ParamTracker) String() string {
	return fmt.Sprintf("%s: %d", labelFor(t.Count, t.Depth, t.ModuleKind), t.NumParams)
}
