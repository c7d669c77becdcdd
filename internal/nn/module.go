// Package nn implements scalar neural network modules on top of the engine.
//
// This package provides building blocks for small multi-layer perceptrons:
//   - Module interface: Base interface for all NN components
//   - Parameter: Named trainable scalar
//   - Neuron, Layer: Fully connected units
//   - MLP: Stack of layers
//   - Loss functions: MSE, Hinge, L2 regularization
//
// Every parameter and activation is an engine.Value allocated in the
// Factory's arena, so a model must not outlive that arena's Lifetime.
package nn

import "github.com/born-ml/micrograd/internal/engine"

// Module is the base interface for all neural network components.
//
// Modules can be composed to build larger networks:
//
//	model := nn.NewMLP(vf, nn.MLPConfig{In: 2, Outs: []int{16, 16, 1}})
//	out := model.Forward(vf.Values(0.5, -1.0))
type Module interface {
	// Parameters returns all trainable parameters of this module,
	// including those of nested modules, in a stable order.
	Parameters() []*Parameter
}

// ZeroGrad resets the gradient of every parameter of m.
//
// Gradients accumulate across backward passes, so this should be called
// before each training iteration.
func ZeroGrad(m Module) {
	for _, p := range m.Parameters() {
		p.ZeroGrad()
	}
}

// Values returns the engine values behind params.
func Values(params []*Parameter) []engine.Value {
	out := make([]engine.Value, len(params))
	for i, p := range params {
		out[i] = p.Value()
	}
	return out
}

// NumParameters returns the number of scalar parameters of m.
func NumParameters(m Module) int {
	return len(m.Parameters())
}
