package nn

import (
	"fmt"
	"math/rand"

	"github.com/born-ml/micrograd/internal/engine"
)

// Neuron computes act(w·x + b) for a single output.
type Neuron struct {
	w   []*Parameter
	b   *Parameter
	act Activation
}

// NewNeuron creates a neuron with nin weights drawn from initializer.
// The bias is drawn from the same initializer.
func NewNeuron(vf engine.Factory, nin int, act Activation, initializer Initializer, rng *rand.Rand) *Neuron {
	return newNeuron(vf, "", nin, 1, act, initializer, rng)
}

func newNeuron(vf engine.Factory, prefix string, nin, fanOut int, act Activation, initializer Initializer, rng *rand.Rand) *Neuron {
	w := make([]*Parameter, nin)
	for i := range w {
		w[i] = NewParameter(fmt.Sprintf("%sw%d", prefix, i), vf.Value(initializer(rng, nin, fanOut)))
	}
	return &Neuron{
		w:   w,
		b:   NewParameter(prefix+"b", vf.Value(initializer(rng, nin, fanOut))),
		act: act,
	}
}

// Forward computes act(b + Σ wᵢxᵢ).
// It panics if len(x) differs from the number of weights.
func (n *Neuron) Forward(x []engine.Value) engine.Value {
	if len(x) != len(n.w) {
		panic(fmt.Sprintf("Neuron: expected %d inputs, got %d", len(n.w), len(x)))
	}

	acc := n.b.Value()
	for i, wi := range n.w {
		acc = acc.Add(wi.Value().Mul(x[i]))
	}
	return n.act.Apply(acc)
}

// Parameters returns the weights followed by the bias.
func (n *Neuron) Parameters() []*Parameter {
	params := make([]*Parameter, 0, len(n.w)+1)
	params = append(params, n.w...)
	return append(params, n.b)
}

// CloneInto copies the neuron, with its current weights, into vf's arena.
// Gradients are not copied.
func (n *Neuron) CloneInto(vf engine.Factory) *Neuron {
	w := make([]*Parameter, len(n.w))
	for i, p := range n.w {
		w[i] = p.cloneInto(vf)
	}
	return &Neuron{w: w, b: n.b.cloneInto(vf), act: n.act}
}

// Activation returns the neuron's non-linearity.
func (n *Neuron) Activation() Activation {
	return n.act
}

// String describes the neuron, e.g. "TanhNeuron(3)".
func (n *Neuron) String() string {
	name := "Tanh"
	switch n.act {
	case ReLU:
		name = "ReLU"
	case Linear:
		name = "Linear"
	}
	return fmt.Sprintf("%sNeuron(%d)", name, len(n.w))
}

// Layer is a fully connected layer of independent neurons.
//
// Performs: yⱼ = act(bⱼ + Σᵢ wⱼᵢ xᵢ) for j in [0, nout).
type Layer struct {
	neurons []*Neuron
}

// NewLayer creates a layer with nout neurons of nin inputs each.
func NewLayer(vf engine.Factory, nin, nout int, act Activation, initializer Initializer, rng *rand.Rand) *Layer {
	return newLayer(vf, "", nin, nout, act, initializer, rng)
}

func newLayer(vf engine.Factory, prefix string, nin, nout int, act Activation, initializer Initializer, rng *rand.Rand) *Layer {
	neurons := make([]*Neuron, nout)
	for j := range neurons {
		neurons[j] = newNeuron(vf, fmt.Sprintf("%sneuron%d.", prefix, j), nin, nout, act, initializer, rng)
	}
	return &Layer{neurons: neurons}
}

// Forward applies every neuron to x.
func (l *Layer) Forward(x []engine.Value) []engine.Value {
	out := make([]engine.Value, len(l.neurons))
	for j, n := range l.neurons {
		out[j] = n.Forward(x)
	}
	return out
}

// Parameters returns the parameters of every neuron in order.
func (l *Layer) Parameters() []*Parameter {
	var params []*Parameter
	for _, n := range l.neurons {
		params = append(params, n.Parameters()...)
	}
	return params
}

// CloneInto copies the layer into vf's arena.
func (l *Layer) CloneInto(vf engine.Factory) *Layer {
	neurons := make([]*Neuron, len(l.neurons))
	for j, n := range l.neurons {
		neurons[j] = n.CloneInto(vf)
	}
	return &Layer{neurons: neurons}
}

// Neurons returns the layer's neurons.
func (l *Layer) Neurons() []*Neuron {
	return l.neurons
}

// String describes the layer, e.g. "Layer of [TanhNeuron(2), TanhNeuron(2)]".
func (l *Layer) String() string {
	s := "Layer of ["
	for j, n := range l.neurons {
		if j > 0 {
			s += ", "
		}
		s += n.String()
	}
	return s + "]"
}
