package track

import (
	"github.com/born-ml/track/internal/nn"
)

// MultiTracker fans one module execution out to several tracker kinds.
//
// Combine builds one instance per composed factory for every execution,
// so a single traversal yields the measurements of all kinds in
// parallel. Each kind accumulates into its own sub-Dict, keyed by its
// position, so accumulating policies of different kinds never collide.
type MultiTracker struct {
	instances []Tracker
}

// Combine composes multiple tracker factories into one.
//
// The returned factory produces MultiTracker instances whose Pre/Post
// fan out to every composed kind in registration order.
//
// Example:
//
//	factory := track.Combine(track.NewShapeTracker, track.NewParamTracker)
//	trackers := track.Trace(net, factory, nil, run)
//	shapes := trackers[0].(*track.MultiTracker).At(0).(*track.ShapeTracker)
func Combine(factories ...Factory) Factory {
	return func(count, depth int, leaf bool, shared Dict) Tracker {
		mt := &MultiTracker{
			instances: make([]Tracker, len(factories)),
		}
		for i, factory := range factories {
			sub, ok := shared[i].(Dict)
			if !ok {
				sub = make(Dict)
				shared[i] = sub
			}
			mt.instances[i] = factory(count, depth, leaf, sub)
		}
		return mt
	}
}

// Pre fans out to every composed instance in order.
func (t *MultiTracker) Pre(m nn.Module, inputs []any) {
	for _, instance := range t.instances {
		instance.Pre(m, inputs)
	}
}

// Post fans out to every composed instance in order.
func (t *MultiTracker) Post(m nn.Module, inputs []any, output any) {
	for _, instance := range t.instances {
		instance.Post(m, inputs, output)
	}
}

// At returns the i-th composed instance.
//
// Panics if i is out of range.
func (t *MultiTracker) At(i int) Tracker {
	return t.instances[i]
}

// Trackers returns all composed instances in registration order.
func (t *MultiTracker) Trackers() []Tracker {
	return t.instances
}

// Len returns the number of composed kinds.
func (t *MultiTracker) Len() int {
	return len(t.instances)
}
