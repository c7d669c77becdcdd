package nn

import "github.com/born-ml/micrograd/internal/engine"

// Parameter represents a trainable scalar in a neural network.
//
// Example:
//
//	w := nn.NewParameter("layer0.neuron1.w2", vf.Value(0.3))
//
//	out := w.Value().Mul(x) // use in an expression
//	out.Backward()
//	fmt.Println(w.Grad())
type Parameter struct {
	name  string       // e.g. "layer0.neuron1.b"
	value engine.Value // Leaf node holding the weight
}

// NewParameter creates a new trainable parameter around a leaf value.
func NewParameter(name string, v engine.Value) *Parameter {
	return &Parameter{name: name, value: v}
}

// Name returns the parameter name.
func (p *Parameter) Name() string {
	return p.name
}

// Value returns the underlying engine value.
func (p *Parameter) Value() engine.Value {
	return p.value
}

// Data returns the current weight.
func (p *Parameter) Data() float64 {
	return p.value.Data()
}

// SetData overwrites the weight. Used by optimizers.
func (p *Parameter) SetData(x float64) {
	p.value.SetData(x)
}

// Grad returns the accumulated gradient.
func (p *Parameter) Grad() float64 {
	return p.value.Grad()
}

// ZeroGrad resets the gradient to 0.
func (p *Parameter) ZeroGrad() {
	p.value.SetGrad(0)
}

func (p *Parameter) cloneInto(vf engine.Factory) *Parameter {
	return NewParameter(p.name, vf.Value(p.Data()))
}
