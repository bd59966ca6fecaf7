package track

import (
	"fmt"
	"time"

	"github.com/born-ml/track/internal/nn"
)

// TimeTracker records the wall-clock time a module execution took,
// measured with the monotonic clock.
//
// The elapsed time of an internal module includes the time of its
// whole subtree, matching ordinary call-tree semantics.
type TimeTracker struct {
	Base
	ModuleKind string
	start      time.Time
	elapsed    time.Duration
}

// NewTimeTracker is a Factory for TimeTracker.
func NewTimeTracker(count, depth int, leaf bool, shared Dict) Tracker {
	return &TimeTracker{Base: Base{Count: count, Depth: depth, Leaf: leaf, Shared: shared}}
}

// Pre records the module kind and the start timestamp.
func (t *TimeTracker) Pre(m nn.Module, inputs []any) {
	t.ModuleKind = m.Kind()
	t.start = time.Now()
}

// Post records the elapsed time.
func (t *TimeTracker) Post(m nn.Module, inputs []any, output any) {
	t.elapsed = time.Since(t.start)
}

// Elapsed returns the measured duration.
func (t *TimeTracker) Elapsed() time.Duration {
	return t.elapsed
}

// String renders "<count> <kind>: <elapsed>".
func (t *TimeTracker) String() string {
	return fmt.Sprintf("%s: %v", labelFor(t.Count, t.Depth, t.ModuleKind), t.elapsed)
}
