// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package track instruments a module tree and records one measurement
// per module execution.
//
// # Overview
//
// A tracking session walks a module tree, hooks every node and, for
// each node execution, builds one Tracker: constructed at entry with
// its pre-order index, nesting depth, leaf flag and a session-wide
// shared dict, shown the inputs before the node runs and the output
// after. The session yields the flat tracker list in execution order:
// a pre-order-indexed, depth-annotated trace of the whole forward pass.
//
// # Usage
//
//	net := nn.NewSequential(
//	    nn.NewLinear(3, 1000),
//	    nn.NewReLU(),
//	    nn.NewSequential(nn.NewLinear(1000, 2), nn.NewReLU()),
//	)
//
//	trackers := track.Trace(net, track.NewShapeTracker, nil, func() {
//	    nn.Call(net, tensor.Randn(tensor.Shape{7, 3}))
//	})
//	for _, t := range trackers {
//	    fmt.Println(t)
//	}
//
//	// 0 Sequential          : ([7 3]) -> [7 2]
//	// 1   Linear            : ([7 3]) -> [7 1000]
//	// 2   ReLU              : ([7 1000]) -> [7 1000]
//	// 3   Sequential        : ([7 1000]) -> [7 2]
//	// 4     Linear          : ([7 1000]) -> [7 2]
//	// 5     ReLU            : ([7 2]) -> [7 2]
//
// Combine composes several tracker kinds into one, so a single
// traversal produces parallel measurements:
//
//	factory := track.Combine(track.NewShapeTracker, track.NewParamTracker, track.NewTimeTracker)
//	trackers := track.Trace(net, factory, nil, run)
//
// Instrumentation is always detached when the session ends, whether the
// traced computation returned or panicked.
//
// Sessions are single-threaded: the trace relies on the strict nested
// execution order of ordinary synchronous calls. Tracing the same
// session from multiple goroutines, or reentering it, is unsupported.
package track
