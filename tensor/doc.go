// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the dense tensor type observed by the
// tracking framework.
//
// # Overview
//
// Tensors here are deliberately small: dense, row-major, float32
// storage plus the metadata the track package measures: shape, runtime
// data type (for byte accounting) and a requires-grad marker that
// separates learnable values from fixed ones. There is no autograd and
// no device abstraction; those belong to a full framework, not to an
// introspection utility.
//
// # Basic Usage
//
//	x := tensor.Randn(tensor.Shape{7, 3})
//	w := tensor.Zeros(tensor.Shape{1000, 3}).SetRequiresGrad(true)
//
//	y := x.MatMul(w.Transpose()) // [7, 1000], requires grad
//
// The op surface covers what the nn layers need: MatMul, Transpose,
// broadcast Add and elementwise Apply. Results are marked learnable
// when any operand is.
package tensor
