// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides scalar neural network building blocks on top of engine.
//
// # Overview
//
// This package contains:
//   - Layers: Neuron, Layer, MLP
//   - Activations: Tanh, ReLU, Linear
//   - Loss functions: MSE, Hinge, L2, plus Accuracy
//   - Initialization: Uniform, Xavier
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/micrograd/engine"
//	    "github.com/born-ml/micrograd/nn"
//	)
//
//	func main() {
//	    life, vf := engine.Build()
//	    defer life.Release()
//
//	    model := nn.NewMLP(vf, nn.MLPConfig{In: 3, Outs: []int{4, 4, 1}, Seed: 42})
//	    out := model.Forward(vf.Values(2.0, 3.0, -1.0))[0]
//
//	    loss := nn.MSE([]engine.Value{out}, vf.Values(1.0))
//	    nn.ZeroGrad(model)
//	    loss.Backward()
//	}
//
// # Parameter Management
//
// Every parameter carries a stable name:
//
//	for _, p := range model.Parameters() {
//	    fmt.Println(p.Name(), p.Data(), p.Grad())
//	}
//
// Models live in the arena that created them. MLP.CloneInto copies a model,
// with its current weights, into another arena so the old one can be
// released between training steps.
package nn
