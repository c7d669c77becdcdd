package nn_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/born-ml/micrograd/internal/engine"
	"github.com/born-ml/micrograd/internal/nn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFactory(t *testing.T) engine.Factory {
	t.Helper()
	life, vf := engine.Build()
	t.Cleanup(life.Release)
	return vf
}

func TestParameter(t *testing.T) {
	vf := newFactory(t)

	p := nn.NewParameter("w", vf.Value(0.5))
	assert.Equal(t, "w", p.Name())
	assert.Equal(t, 0.5, p.Data())

	p.Value().MulScalar(3).Backward()
	assert.Equal(t, 3.0, p.Grad())

	p.SetData(1.5)
	p.ZeroGrad()
	assert.Equal(t, 1.5, p.Data())
	assert.Equal(t, 0.0, p.Grad())
}

func TestNeuron_Forward(t *testing.T) {
	vf := newFactory(t)
	rng := rand.New(rand.NewSource(1))

	n := nn.NewNeuron(vf, 3, nn.Tanh, nn.Uniform, rng)
	params := n.Parameters()
	require.Len(t, params, 4)

	x := []float64{0.5, -1.0, 2.0}
	want := params[3].Data()
	for i, xi := range x {
		want += params[i].Data() * xi
	}

	out := n.Forward(vf.Values(x...))
	assert.InDelta(t, math.Tanh(want), out.Data(), 1e-12)
	assert.Equal(t, "TanhNeuron(3)", n.String())
}

func TestNeuron_Activations(t *testing.T) {
	vf := newFactory(t)
	constant := func(_ *rand.Rand, _, _ int) float64 { return -1 }

	x := vf.Values(1, 1)
	assert.Equal(t, -3.0, nn.NewNeuron(vf, 2, nn.Linear, constant, nil).Forward(x).Data())
	assert.Equal(t, 0.0, nn.NewNeuron(vf, 2, nn.ReLU, constant, nil).Forward(x).Data())
	assert.InDelta(t, math.Tanh(-3), nn.NewNeuron(vf, 2, nn.Tanh, constant, nil).Forward(x).Data(), 1e-12)
}

func TestNeuron_InputMismatchPanics(t *testing.T) {
	vf := newFactory(t)
	n := nn.NewNeuron(vf, 2, nn.Tanh, nn.Uniform, rand.New(rand.NewSource(1)))

	assert.Panics(t, func() { n.Forward(vf.Values(1)) })
}

func TestLayer(t *testing.T) {
	vf := newFactory(t)
	l := nn.NewLayer(vf, 2, 3, nn.ReLU, nn.Uniform, rand.New(rand.NewSource(7)))

	out := l.Forward(vf.Values(1, 2))
	assert.Len(t, out, 3)
	assert.Len(t, l.Parameters(), 9)
	assert.Len(t, l.Neurons(), 3)
	assert.Equal(t, "Layer of [ReLUNeuron(2), ReLUNeuron(2), ReLUNeuron(2)]", l.String())
	for _, o := range out {
		assert.GreaterOrEqual(t, o.Data(), 0.0)
	}
}

func TestMLP_Shape(t *testing.T) {
	vf := newFactory(t)
	mlp := nn.NewMLP(vf, nn.MLPConfig{In: 2, Outs: []int{16, 16, 1}, Seed: 42})

	// (2*16+16) + (16*16+16) + (16+1)
	assert.Equal(t, 337, nn.NumParameters(mlp))
	assert.Len(t, mlp.Layers(), 3)

	out := mlp.Forward(vf.Values(0.3, -0.8))
	require.Len(t, out, 1)
	assert.Greater(t, out[0].Data(), -1.0)
	assert.Less(t, out[0].Data(), 1.0)
}

func TestMLP_ParameterNames(t *testing.T) {
	vf := newFactory(t)
	mlp := nn.NewMLP(vf, nn.MLPConfig{In: 2, Outs: []int{2, 1}})

	params := mlp.Parameters()
	assert.Equal(t, "layer0.neuron0.w0", params[0].Name())
	assert.Equal(t, "layer0.neuron0.b", params[2].Name())
	assert.Equal(t, "layer1.neuron0.b", params[len(params)-1].Name())

	seen := make(map[string]bool)
	for _, p := range params {
		assert.False(t, seen[p.Name()], "duplicate name %s", p.Name())
		seen[p.Name()] = true
	}
}

func TestMLP_Deterministic(t *testing.T) {
	vf := newFactory(t)
	cfg := nn.MLPConfig{In: 3, Outs: []int{4, 4, 1}, Seed: 1337}

	a := nn.Values(nn.NewMLP(vf, cfg).Parameters())
	b := nn.Values(nn.NewMLP(vf, cfg).Parameters())
	require.Equal(t, len(a), len(b))
	for i := range a {
		assert.Equal(t, a[i].Data(), b[i].Data())
		assert.False(t, a[i] == b[i], "separate models own separate nodes")
	}

	cfg.Seed = 1338
	c := nn.Values(nn.NewMLP(vf, cfg).Parameters())
	assert.NotEqual(t, a[0].Data(), c[0].Data())
}

func TestMLP_LinearOutput(t *testing.T) {
	vf := newFactory(t)
	mlp := nn.NewMLP(vf, nn.MLPConfig{In: 1, Outs: []int{3, 1}, Activation: nn.ReLU, LinearOutput: true})

	layers := mlp.Layers()
	assert.Equal(t, nn.ReLU, layers[0].Neurons()[0].Activation())
	assert.Equal(t, nn.Linear, layers[1].Neurons()[0].Activation())
	assert.Equal(t, "MLP of [Layer of [ReLUNeuron(1), ReLUNeuron(1), ReLUNeuron(1)], Layer of [LinearNeuron(3)]]", mlp.String())
}

func TestMLP_InvalidConfigPanics(t *testing.T) {
	vf := newFactory(t)
	assert.Panics(t, func() { nn.NewMLP(vf, nn.MLPConfig{In: 0, Outs: []int{1}}) })
	assert.Panics(t, func() { nn.NewMLP(vf, nn.MLPConfig{In: 2}) })
}

func TestZeroGrad_ResetsGradNotData(t *testing.T) {
	vf := newFactory(t)
	mlp := nn.NewMLP(vf, nn.MLPConfig{In: 2, Outs: []int{3, 1}, Seed: 3})

	before := make([]float64, 0)
	for _, p := range mlp.Parameters() {
		before = append(before, p.Data())
	}

	mlp.Forward(vf.Values(1, -1))[0].Backward()
	nonZero := 0
	for _, p := range mlp.Parameters() {
		if p.Grad() != 0 {
			nonZero++
		}
	}
	require.Positive(t, nonZero)

	nn.ZeroGrad(mlp)
	for i, p := range mlp.Parameters() {
		assert.Equal(t, 0.0, p.Grad())
		assert.Equal(t, before[i], p.Data())
	}
}

func TestMLP_GradientMatchesFiniteDifference(t *testing.T) {
	vf := newFactory(t)
	mlp := nn.NewMLP(vf, nn.MLPConfig{In: 2, Outs: []int{3, 1}, Seed: 5})
	x := []float64{0.7, -0.2}

	loss := func() engine.Value {
		out := mlp.Forward(vf.Values(x...))[0]
		return out.SubScalar(0.5).Powi(2)
	}

	loss().Backward()

	const eps = 1e-6
	for _, p := range mlp.Parameters() {
		orig := p.Data()
		p.SetData(orig + eps)
		up := loss().Data()
		p.SetData(orig - eps)
		down := loss().Data()
		p.SetData(orig)

		assert.InDelta(t, (up-down)/(2*eps), p.Grad(), 1e-6, p.Name())
	}
}

func TestMLP_CloneInto(t *testing.T) {
	life, vf := engine.Build()
	mlp := nn.NewMLP(vf, nn.MLPConfig{In: 2, Outs: []int{3, 1}, Seed: 9})
	x := []float64{0.1, 0.2}
	want := mlp.Forward(vf.Values(x...))[0].Data()
	mlp.Parameters()[0].Value().SetGrad(5)

	vf2 := newFactory(t)
	clone := mlp.CloneInto(vf2)
	life.Release()

	params := clone.Parameters()
	require.Len(t, params, 13)
	assert.Equal(t, "layer0.neuron0.w0", params[0].Name())
	assert.Equal(t, 0.0, params[0].Grad(), "gradients are not copied")
	assert.Equal(t, want, clone.Forward(vf2.Values(x...))[0].Data())
	assert.Equal(t, mlp.String(), clone.String())
}
