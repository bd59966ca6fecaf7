// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"github.com/born-ml/track/internal/nn"
	"github.com/born-ml/track/internal/tensor"
)

// Module is the common interface for all neural network modules.
type Module = nn.Module

// LeafModule marks a module as atomic for tracking even when it has
// children.
type LeafModule = nn.LeafModule

// Parameter represents a trainable parameter in a neural network.
type Parameter = nn.Parameter

// NewParameter creates a new trainable parameter.
func NewParameter(name string, t *tensor.Tensor) *Parameter {
	return nn.NewParameter(name, t)
}

// Hooks

// HookSet is a per-module registry of entry and exit hooks.
type HookSet = nn.HookSet

// HookHandle identifies a registered hook and can remove it.
type HookHandle = nn.HookHandle

// Hookable is an embeddable base supplying the per-module HookSet.
type Hookable = nn.Hookable

// PreHook is invoked immediately before a module executes.
type PreHook = nn.PreHook

// PostHook is invoked immediately after a module produces its output.
type PostHook = nn.PostHook

// Call invokes a module through its hook registry.
//
// This is the interception point the tracking session relies on: pre
// hooks, Forward, post hooks, in that order.
func Call(m Module, input *tensor.Tensor) *tensor.Tensor {
	return nn.Call(m, input)
}

// Layers

// Linear represents a fully connected (dense) layer.
type Linear = nn.Linear

// NewLinear creates a new linear layer with Xavier initialization.
//
// Example:
//
//	layer := nn.NewLinear(784, 128)
func NewLinear(inFeatures, outFeatures int) *Linear {
	return nn.NewLinear(inFeatures, outFeatures)
}

// Dropout randomly zeroes elements of the input during training.
type Dropout = nn.Dropout

// NewDropout creates a new dropout layer with forget probability p.
func NewDropout(p float32) *Dropout {
	return nn.NewDropout(p)
}

// Activations

// ReLU represents the Rectified Linear Unit activation function.
type ReLU = nn.ReLU

// NewReLU creates a new ReLU activation layer.
func NewReLU() *ReLU {
	return nn.NewReLU()
}

// Sigmoid represents the Sigmoid activation function.
type Sigmoid = nn.Sigmoid

// NewSigmoid creates a new Sigmoid activation layer.
func NewSigmoid() *Sigmoid {
	return nn.NewSigmoid()
}

// Tanh represents the Tanh activation function.
type Tanh = nn.Tanh

// NewTanh creates a new Tanh activation layer.
func NewTanh() *Tanh {
	return nn.NewTanh()
}

// Identity passes its input through unchanged.
type Identity = nn.Identity

// NewIdentity creates a new Identity layer.
func NewIdentity() *Identity {
	return nn.NewIdentity()
}

// NewActivation resolves an activation module by name
// ("relu", "sigmoid", "tanh", "identity").
func NewActivation(name string) (Module, error) {
	return nn.NewActivation(name)
}

// Containers

// Sequential represents a sequential container of modules.
type Sequential = nn.Sequential

// NewSequential creates a new sequential model.
//
// Example:
//
//	model := nn.NewSequential(
//	    nn.NewLinear(784, 128),
//	    nn.NewReLU(),
//	    nn.NewLinear(128, 10),
//	)
func NewSequential(modules ...Module) *Sequential {
	return nn.NewSequential(modules...)
}

// DenseStack is a stack of Dropout -> Linear -> activation layers.
type DenseStack = nn.DenseStack

// NewDenseStack creates a stack of dense layers.
//
// Example:
//
//	stack, err := nn.NewDenseStack(513, []int{1024, 1024, 1024}, "relu", 0.5)
func NewDenseStack(inputSize int, numUnits []int, activation string, dropout float32) (*DenseStack, error) {
	return nn.NewDenseStack(inputSize, numUnits, activation, dropout)
}

// Initialization functions

// Xavier initializes a tensor using Xavier/Glorot initialization.
func Xavier(fanIn, fanOut int, shape tensor.Shape) *tensor.Tensor {
	return nn.Xavier(fanIn, fanOut, shape)
}

// Zeros initializes a tensor with zeros (for biases).
func Zeros(shape tensor.Shape) *tensor.Tensor {
	return nn.Zeros(shape)
}

// Ones initializes a tensor with ones.
func Ones(shape tensor.Shape) *tensor.Tensor {
	return nn.Ones(shape)
}

// Randn initializes a tensor with random values from N(0, 1).
func Randn(shape tensor.Shape) *tensor.Tensor {
	return nn.Randn(shape)
}
