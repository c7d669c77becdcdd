// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"math/rand"

	"github.com/born-ml/micrograd/engine"
	"github.com/born-ml/micrograd/internal/nn"
)

// Module is implemented by every component with trainable parameters.
type Module = nn.Module

// Parameter is a named trainable scalar.
type Parameter = nn.Parameter

// NewParameter wraps v as a named parameter.
func NewParameter(name string, v engine.Value) *Parameter {
	return nn.NewParameter(name, v)
}

// ZeroGrad clears the gradient of every parameter of m.
func ZeroGrad(m Module) {
	nn.ZeroGrad(m)
}

// NumParameters counts the parameters of m.
func NumParameters(m Module) int {
	return nn.NumParameters(m)
}

// Activations

// Activation selects a neuron non-linearity.
type Activation = nn.Activation

// Supported activations.
const (
	Tanh   = nn.Tanh
	ReLU   = nn.ReLU
	Linear = nn.Linear
)

// ParseActivation converts "tanh", "relu" or "linear" to an Activation.
func ParseActivation(name string) (Activation, error) {
	return nn.ParseActivation(name)
}

// Initialization

// Initializer draws one initial weight.
type Initializer = nn.Initializer

// Uniform draws weights from U(-1, 1).
func Uniform(rng *rand.Rand, fanIn, fanOut int) float64 {
	return nn.Uniform(rng, fanIn, fanOut)
}

// Xavier draws weights from the Glorot uniform distribution.
func Xavier(rng *rand.Rand, fanIn, fanOut int) float64 {
	return nn.Xavier(rng, fanIn, fanOut)
}

// Layers

// Neuron computes act(w·x + b).
type Neuron = nn.Neuron

// NewNeuron creates a neuron with nin inputs.
func NewNeuron(vf engine.Factory, nin int, act Activation, initializer Initializer, rng *rand.Rand) *Neuron {
	return nn.NewNeuron(vf, nin, act, initializer, rng)
}

// Layer is a row of neurons sharing the same inputs.
type Layer = nn.Layer

// NewLayer creates a layer of nout neurons with nin inputs each.
func NewLayer(vf engine.Factory, nin, nout int, act Activation, initializer Initializer, rng *rand.Rand) *Layer {
	return nn.NewLayer(vf, nin, nout, act, initializer, rng)
}

// MLPConfig describes a multi-layer perceptron.
type MLPConfig = nn.MLPConfig

// MLP is a stack of fully connected layers.
type MLP = nn.MLP

// NewMLP creates a multi-layer perceptron.
//
// Example:
//
//	life, vf := engine.Build()
//	defer life.Release()
//	model := nn.NewMLP(vf, nn.MLPConfig{In: 2, Outs: []int{16, 16, 1}, Activation: nn.ReLU, LinearOutput: true})
func NewMLP(vf engine.Factory, cfg MLPConfig) *MLP {
	return nn.NewMLP(vf, cfg)
}

// Loss functions

// MSE returns mean((predictions - targets)²).
func MSE(predictions, targets []engine.Value) engine.Value {
	return nn.MSE(predictions, targets)
}

// Hinge returns the mean max-margin loss for labels in {-1, +1}.
func Hinge(scores []engine.Value, labels []float64) engine.Value {
	return nn.Hinge(scores, labels)
}

// L2 returns alpha * Σ p².
func L2(params []*Parameter, alpha float64) engine.Value {
	return nn.L2(params, alpha)
}

// Accuracy returns the fraction of scores whose sign matches the label.
func Accuracy(scores []engine.Value, labels []float64) float64 {
	return nn.Accuracy(scores, labels)
}
