package track

import (
	"github.com/born-ml/track/internal/nn"
)

// Dict is the session-wide accumulator shared by all trackers of one
// kind. Measurement policies use string keys; Combine hands each
// composed kind its own sub-Dict under an int position key.
type Dict map[any]any

// Tracker observes one module execution.
//
// One instance is created per (module, execution) pair. Pre runs
// immediately before the module executes, Post immediately after it
// produced its output, paired with the most recent unmatched Pre on the
// same module. Neither may fail: a policy that cannot compute its
// metric records a sentinel value instead of aborting the traversal.
type Tracker interface {
	Pre(m nn.Module, inputs []any)
	Post(m nn.Module, inputs []any, output any)
}

// Factory builds a tracker for one module execution.
//
// count is the 0-based pre-order execution index, depth the nesting
// depth at entry, leaf whether the module is being treated as a leaf,
// and shared the accumulator Dict shared across the whole session.
type Factory func(count, depth int, leaf bool, shared Dict) Tracker

// Base carries the per-execution identity every tracker is constructed
// with. Fields are assigned once and read-only afterward. Base provides
// no-op Pre/Post so policies only implement the phases they observe.
type Base struct {
	Count  int  // 0-based pre-order execution index
	Depth  int  // nesting depth at entry
	Leaf   bool // whether this module is treated as a leaf
	Shared Dict // session-wide accumulator, shared per tracker kind
}

// Pre is a no-op.
func (b *Base) Pre(m nn.Module, inputs []any) {}

// Post is a no-op.
func (b *Base) Post(m nn.Module, inputs []any, output any) {}
