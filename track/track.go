// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package track

import (
	"github.com/born-ml/track/internal/nn"
	"github.com/born-ml/track/internal/track"
)

// Dict is the session-wide accumulator shared by all trackers of one
// kind.
type Dict = track.Dict

// Tracker observes one module execution: Pre immediately before the
// module runs, Post immediately after it produced its output.
type Tracker = track.Tracker

// Factory builds a tracker for one module execution from
// (count, depth, leaf, shared).
type Factory = track.Factory

// Base carries the per-execution identity every tracker is constructed
// with, and provides no-op Pre/Post for embedding.
type Base = track.Base

// Session instruments a module tree for one traversal.
type Session = track.Session

// Start instruments root and returns the open session. The caller must
// Close it; prefer Trace, which closes on every exit path.
func Start(root nn.Module, factory Factory, leafKinds ...string) *Session {
	return track.Start(root, factory, leafKinds...)
}

// Trace runs fn under a session on root and returns the tracker list in
// execution (pre-order) order. Instrumentation is detached even if fn
// panics; the panic propagates unchanged.
//
// Modules whose Kind is listed in leafKinds are treated as atomic:
// tracked as leaves, their subtrees left uninstrumented.
func Trace(root nn.Module, factory Factory, leafKinds []string, fn func()) []Tracker {
	return track.Trace(root, factory, leafKinds, fn)
}

// MultiTracker fans one module execution out to several tracker kinds.
type MultiTracker = track.MultiTracker

// Combine composes multiple tracker factories into one; a single
// traversal then produces the measurements of every composed kind.
func Combine(factories ...Factory) Factory {
	return track.Combine(factories...)
}

// Measurement policies

// ShapeTracker records input/output tensor-shape trees.
type ShapeTracker = track.ShapeTracker

// NewShapeTracker is a Factory for ShapeTracker.
var NewShapeTracker Factory = track.NewShapeTracker

// ParamTracker records per-module parameter element counts.
type ParamTracker = track.ParamTracker

// NewParamTracker is a Factory for ParamTracker.
var NewParamTracker Factory = track.NewParamTracker

// TimeTracker records wall-clock execution time per module.
type TimeTracker = track.TimeTracker

// NewTimeTracker is a Factory for TimeTracker.
var NewTimeTracker Factory = track.NewTimeTracker

// MemTracker records the signed delta of a memory reading across one
// module execution.
type MemTracker = track.MemTracker

// MemFunc reads a memory level in bytes.
type MemFunc = track.MemFunc

// NewCPUMemTracker is a Factory tracking the process resident set size.
// Note that this measures the whole process, not a tensor allocator.
var NewCPUMemTracker Factory = track.NewCPUMemTracker

// NewGPUMemTracker is a Factory tracking allocated device memory on
// device 0. A compute backend provides the reading via
// RegisterDeviceMem; without one, every sample reads zero.
var NewGPUMemTracker Factory = track.NewGPUMemTracker

// MemTrackerWith returns a Factory for a MemTracker over an arbitrary
// memory source.
func MemTrackerWith(read MemFunc) Factory {
	return track.MemTrackerWith(read)
}

// RegisterDeviceMem installs the device-memory source consumed by
// DeviceMem and NewGPUMemTracker. Passing nil restores the default
// zero reader.
func RegisterDeviceMem(read func(device int) (uint64, error)) {
	track.RegisterDeviceMem(read)
}

// DeviceMem returns a MemFunc reading allocated bytes on the given
// device index.
func DeviceMem(device int) MemFunc {
	return track.DeviceMem(device)
}

// ProcessRSS reads the resident set size of the current process.
func ProcessRSS() (uint64, error) {
	return track.ProcessRSS()
}

// IOPTracker accounts for input/output/parameter elements or bytes,
// de-duplicated by tensor identity, in a local and a session-wide tier.
type IOPTracker = track.IOPTracker

// IOPCounts is one tier of input/output/parameter accounting.
type IOPCounts = track.IOPCounts

// NewIOPNumTracker is a Factory for element-count accounting.
var NewIOPNumTracker Factory = track.NewIOPNumTracker

// NewIOPMemTracker is a Factory for byte accounting.
var NewIOPMemTracker Factory = track.NewIOPMemTracker
