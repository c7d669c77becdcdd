package nn

import (
	"fmt"
	"strings"

	"github.com/born-ml/micrograd/internal/engine"
)

// MLPConfig describes a multi-layer perceptron.
type MLPConfig struct {
	In           int         // Number of inputs
	Outs         []int       // Output size of each layer
	Activation   Activation  // Hidden-layer activation (default Tanh)
	LinearOutput bool        // Skip the activation on the last layer
	Init         Initializer // Weight initializer (default Uniform)
	Seed         int64       // Seed for weight initialization
}

// MLP is a stack of fully connected layers.
//
// Each layer's output becomes the next layer's input:
//
//	mlp := nn.NewMLP(vf, nn.MLPConfig{In: 3, Outs: []int{4, 4, 1}, Seed: 42})
//	out := mlp.Forward(vf.Values(2.0, 3.0, -1.0))[0]
type MLP struct {
	layers []*Layer
}

// NewMLP creates an MLP with sizes [cfg.In, cfg.Outs...].
// Weights are reproducible for a given cfg.Seed.
func NewMLP(vf engine.Factory, cfg MLPConfig) *MLP {
	if cfg.In <= 0 || len(cfg.Outs) == 0 {
		panic(fmt.Sprintf("MLP: invalid sizes in=%d outs=%v", cfg.In, cfg.Outs))
	}
	initializer := cfg.Init
	if initializer == nil {
		initializer = Uniform
	}
	rng := newRand(cfg.Seed)

	sizes := append([]int{cfg.In}, cfg.Outs...)
	layers := make([]*Layer, len(cfg.Outs))
	for i := range layers {
		act := cfg.Activation
		if cfg.LinearOutput && i == len(layers)-1 {
			act = Linear
		}
		layers[i] = newLayer(vf, fmt.Sprintf("layer%d.", i), sizes[i], sizes[i+1], act, initializer, rng)
	}

	return &MLP{layers: layers}
}

// Forward applies all layers in sequence.
func (m *MLP) Forward(x []engine.Value) []engine.Value {
	out := x
	for _, l := range m.layers {
		out = l.Forward(out)
	}
	return out
}

// Parameters returns the parameters of every layer in order.
func (m *MLP) Parameters() []*Parameter {
	var params []*Parameter
	for _, l := range m.layers {
		params = append(params, l.Parameters()...)
	}
	return params
}

// CloneInto copies the MLP, with its current weights, into vf's arena.
//
// Training loops use this to carry weights across steps while releasing the
// arena that holds the previous step's graph.
func (m *MLP) CloneInto(vf engine.Factory) *MLP {
	layers := make([]*Layer, len(m.layers))
	for i, l := range m.layers {
		layers[i] = l.CloneInto(vf)
	}
	return &MLP{layers: layers}
}

// Layers returns the layers of the MLP.
func (m *MLP) Layers() []*Layer {
	return m.layers
}

// String describes the MLP layer by layer.
func (m *MLP) String() string {
	parts := make([]string, len(m.layers))
	for i, l := range m.layers {
		parts[i] = l.String()
	}
	return "MLP of [" + strings.Join(parts, ", ") + "]"
}
