package track

import (
	"github.com/born-ml/track/internal/nn"
)

// Session instruments a module tree for one traversal.
//
// Start walks the tree, classifies every module as leaf or internal and
// registers entry/exit hooks on each visited module. While the session
// is open, every execution routed through nn.Call produces one tracker:
// built at entry with the next pre-order index and the current nesting
// depth, appended to the flat result list, and completed at exit.
//
// A session assumes strictly sequential, single-threaded, depth-first
// execution of the instrumented tree; concurrent or reentrant execution
// of the same session would corrupt the call stack and is unsupported.
type Session struct {
	factory  Factory
	shared   Dict
	trackers []Tracker
	stack    []Tracker
	handles  []*nn.HookHandle
	closed   bool
}

// Start instruments root and returns the open session.
//
// Modules whose Kind is listed in leafKinds, and modules reporting
// TrackAsLeaf, are treated as atomic: they are instrumented as leaves
// and their subtrees are not instrumented. Close must be called to
// detach the instrumentation; use Trace for a scoped variant that
// guarantees detachment on every exit path.
func Start(root nn.Module, factory Factory, leafKinds ...string) *Session {
	s := &Session{
		factory: factory,
		shared:  make(Dict),
	}

	kinds := make(map[string]struct{}, len(leafKinds))
	for _, k := range leafKinds {
		kinds[k] = struct{}{}
	}

	s.walk(root, kinds)
	return s
}

// walk visits every module below (and including) m, instrumenting each
// one and classifying it as leaf or internal. A module matching the
// leaf filter is instrumented as a leaf and not descended into.
func (s *Session) walk(m nn.Module, leafKinds map[string]struct{}) {
	isLeaf := true
	for _, child := range m.Children() {
		isLeaf = false
		if filteredAsLeaf(child, leafKinds) {
			s.instrument(child, true)
		} else {
			s.walk(child, leafKinds)
		}
	}
	s.instrument(m, isLeaf)
}

func filteredAsLeaf(m nn.Module, leafKinds map[string]struct{}) bool {
	if _, ok := leafKinds[m.Kind()]; ok {
		return true
	}
	if lm, ok := m.(nn.LeafModule); ok && lm.TrackAsLeaf() {
		return true
	}
	return false
}

// instrument registers the entry and exit hooks for one module.
func (s *Session) instrument(m nn.Module, leaf bool) {
	hooks := m.Hooks()
	s.handles = append(s.handles,
		hooks.RegisterPre(func(m nn.Module, inputs []any) {
			s.enter(m, inputs, leaf)
		}),
		hooks.RegisterPost(func(m nn.Module, inputs []any, output any) {
			s.exit(m, inputs, output)
		}),
	)
}

// enter fires at module entry: a fresh tracker is constructed with the
// next pre-order index and the current stack depth, observes the
// inputs, and is pushed and recorded.
func (s *Session) enter(m nn.Module, inputs []any, leaf bool) {
	tracker := s.factory(len(s.trackers), len(s.stack), leaf, s.shared)
	tracker.Pre(m, inputs)
	s.stack = append(s.stack, tracker)
	s.trackers = append(s.trackers, tracker)
}

// exit fires at module exit: the matching tracker is popped and
// completed. Modules finish in strict LIFO order; an exit with no
// matching entry means the sequential-execution contract was broken
// and is unrecoverable.
func (s *Session) exit(m nn.Module, inputs []any, output any) {
	if len(s.stack) == 0 {
		panic("track: module exit without matching entry (reentrant or concurrent execution?)")
	}
	tracker := s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
	tracker.Post(m, inputs, output)
}

// Trackers returns the flat result list in execution (pre-order) order.
func (s *Session) Trackers() []Tracker {
	return s.trackers
}

// Close detaches every hook the session registered. It is idempotent
// and never fails, whether or not the instrumented computation ran or
// completed.
func (s *Session) Close() {
	if s.closed {
		return
	}
	s.closed = true
	for _, h := range s.handles {
		h.Remove()
	}
	s.handles = nil
}

// Trace runs fn under a session on root and returns the resulting
// tracker list.
//
// Instrumentation is detached on every exit path: if fn panics, the
// hooks are removed and the panic propagates unchanged to the caller.
//
// Example:
//
//	net := nn.NewSequential(nn.NewLinear(3, 1000), nn.NewReLU())
//	trackers := track.Trace(net, track.NewShapeTracker, nil, func() {
//	    nn.Call(net, tensor.Randn(tensor.Shape{7, 3}))
//	})
func Trace(root nn.Module, factory Factory, leafKinds []string, fn func()) []Tracker {
	s := Start(root, factory, leafKinds...)
	defer s.Close()
	fn()
	return s.Trackers()
}
