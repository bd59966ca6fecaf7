package track

import (
	"fmt"

	"github.com/born-ml/track/internal/nn"
	"github.com/born-ml/track/internal/tensor"
	"github.com/born-ml/track/weakset"
)

// Shared/local Dict keys of the IOP trackers.
const (
	keyParamsLearnable  = "parameters_learnable"
	keyParamsFixed      = "parameters_fixed"
	keyTensorsLearnable = "tensors_learnable"
	keyTensorsFixed     = "tensors_fixed"
	keyVisited          = "visited"
)

// IOPCounts is one tier of input/output/parameter accounting, split by
// whether the counted tensors are learnable (require gradients).
type IOPCounts struct {
	ParamsLearnable  int
	ParamsFixed      int
	TensorsLearnable int
	TensorsFixed     int
}

// Params returns the combined learnable + fixed parameter tally.
func (c IOPCounts) Params() int { return c.ParamsLearnable + c.ParamsFixed }

// Tensors returns the combined learnable + fixed input/output tally.
func (c IOPCounts) Tensors() int { return c.TensorsLearnable + c.TensorsFixed }

// IOPTracker accounts for the elements (or bytes) of a module's
// parameters and of every tensor reachable from its inputs and outputs.
//
// Two tiers accumulate in parallel: a local tally for this module
// execution and a session-wide tally in the shared Dict. Each tier
// de-duplicates by object identity, so a tensor flowing through nested
// calls, or appearing as both input and output, is counted once per
// tier. Identity tracking uses a weak set and never extends tensor
// lifetimes.
type IOPTracker struct {
	Base
	ModuleKind string
	local      Dict
	size       func(*tensor.Tensor) int
	unit       string
}

// NewIOPNumTracker is a Factory for element-count accounting.
func NewIOPNumTracker(count, depth int, leaf bool, shared Dict) Tracker {
	return &IOPTracker{
		Base: Base{Count: count, Depth: depth, Leaf: leaf, Shared: shared},
		size: (*tensor.Tensor).NumElements,
	}
}

// NewIOPMemTracker is a Factory for byte accounting: element counts
// weighted by element byte width.
func NewIOPMemTracker(count, depth int, leaf bool, shared Dict) Tracker {
	return &IOPTracker{
		Base: Base{Count: count, Depth: depth, Leaf: leaf, Shared: shared},
		size: (*tensor.Tensor).ByteSize,
		unit: " B",
	}
}

// maybeInit seeds the shared and local tallies on first use.
func (t *IOPTracker) maybeInit() {
	if len(t.Shared) == 0 {
		seedCounts(t.Shared)
	}
	if t.local == nil {
		t.local = make(Dict)
		seedCounts(t.local)
	}
}

func seedCounts(d Dict) {
	d[keyParamsLearnable] = 0
	d[keyParamsFixed] = 0
	d[keyTensorsLearnable] = 0
	d[keyTensorsFixed] = 0
	d[keyVisited] = weakset.New[tensor.Tensor]()
}

// maybeAdd accounts for one tensor in both tiers, skipping identities
// a tier has already seen.
func (t *IOPTracker) maybeAdd(ten *tensor.Tensor, learnableKey, fixedKey string) {
	addTo(t.Shared, ten, t.size(ten), learnableKey, fixedKey)
	addTo(t.local, ten, t.size(ten), learnableKey, fixedKey)
}

func addTo(d Dict, ten *tensor.Tensor, size int, learnableKey, fixedKey string) {
	visited := d[keyVisited].(*weakset.Set[tensor.Tensor])
	if visited.Contains(ten) {
		return
	}
	if err := visited.Add(ten); err != nil {
		return
	}
	key := fixedKey
	if ten.RequiresGrad() {
		key = learnableKey
	}
	d[key] = d[key].(int) + size
}

// flatTensors collects every tensor reachable from obj, recursing
// through slices and string-keyed maps.
func flatTensors(obj any) []*tensor.Tensor {
	var out []*tensor.Tensor
	switch v := obj.(type) {
	case []any:
		for _, e := range v {
			out = append(out, flatTensors(e)...)
		}
	case map[string]any:
		for _, e := range v {
			out = append(out, flatTensors(e)...)
		}
	case *tensor.Tensor:
		if v != nil {
			out = append(out, v)
		}
	}
	return out
}

// Pre accounts for the module's parameters and input tensors.
//
// The parameter set follows the leaf flag, like ParamTracker: leaf
// modules contribute their full recursive parameter set, internal
// modules only their own.
func (t *IOPTracker) Pre(m nn.Module, inputs []any) {
	t.ModuleKind = m.Kind()
	t.maybeInit()

	for _, p := range m.Parameters(t.Leaf) {
		t.maybeAdd(p.Tensor(), keyParamsLearnable, keyParamsFixed)
	}
	for _, ten := range flatTensors(inputs) {
		t.maybeAdd(ten, keyTensorsLearnable, keyTensorsFixed)
	}
}

// Post accounts for the output tensors.
func (t *IOPTracker) Post(m nn.Module, inputs []any, output any) {
	for _, ten := range flatTensors(output) {
		t.maybeAdd(ten, keyTensorsLearnable, keyTensorsFixed)
	}
}

// Local returns this execution's tier of counts.
func (t *IOPTracker) Local() IOPCounts {
	return countsFrom(t.local)
}

// SessionTotal returns the session-wide tier of counts. Because of
// identity de-duplication the totals are smaller than the sum of the
// per-module numbers.
func (t *IOPTracker) SessionTotal() IOPCounts {
	return countsFrom(t.Shared)
}

func countsFrom(d Dict) IOPCounts {
	get := func(key string) int {
		if v, ok := d[key].(int); ok {
			return v
		}
		return 0
	}
	return IOPCounts{
		ParamsLearnable:  get(keyParamsLearnable),
		ParamsFixed:      get(keyParamsFixed),
		TensorsLearnable: get(keyTensorsLearnable),
		TensorsFixed:     get(keyTensorsFixed),
	}
}

func (t *IOPTracker) formatCounts(c IOPCounts) string {
	return fmt.Sprintf("P: %6d%s (requires_grad: %6d%s) IO: %6d%s (requires_grad: %6d%s)",
		c.Params(), t.unit, c.ParamsLearnable, t.unit,
		c.Tensors(), t.unit, c.TensorsLearnable, t.unit)
}

// String renders the local tier.
func (t *IOPTracker) String() string {
	return fmt.Sprintf("%s: %s", labelFor(t.Count, t.Depth, t.ModuleKind), t.formatCounts(t.Local()))
}

// TotalString renders the session-wide tier.
func (t *IOPTracker) TotalString() string {
	return t.formatCounts(t.SessionTotal())
}
