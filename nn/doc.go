// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides a small module tree with entry/exit interception.
//
// # Overview
//
// Modules form a tree of computational units: leaf layers (Linear,
// activations, Dropout) and containers (Sequential, DenseStack). Every
// module exposes the structure the track package instruments: child
// enumeration, a kind identifier, own vs. recursive parameter sets and
// a per-module hook registry.
//
// # Execution
//
// Run modules through Call rather than Forward directly; Call is the
// interception point that fires a module's pre hooks, runs Forward and
// fires its post hooks. Containers route child execution through Call
// internally, so one Call at the root reaches every instrumented node:
//
//	model := nn.NewSequential(
//	    nn.NewLinear(784, 128),
//	    nn.NewReLU(),
//	    nn.NewLinear(128, 10),
//	)
//	output := nn.Call(model, input)
//
// Execution is strictly sequential and single-threaded; hooks and hook
// registration are not synchronized.
package nn
