package optim_test

import (
	"testing"

	"github.com/born-ml/micrograd/internal/engine"
	"github.com/born-ml/micrograd/internal/nn"
	"github.com/born-ml/micrograd/internal/optim"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newParam(t *testing.T, x float64) *nn.Parameter {
	t.Helper()
	life, vf := engine.Build()
	t.Cleanup(life.Release)
	return nn.NewParameter("x", vf.Value(x))
}

var (
	_ optim.Optimizer = (*optim.SGD)(nil)
	_ optim.Optimizer = (*optim.Adam)(nil)
)

// TestSGD_SimpleUpdate tests SGD without momentum.
func TestSGD_SimpleUpdate(t *testing.T) {
	param := newParam(t, 2.0)
	optimizer := optim.NewSGD([]*nn.Parameter{param}, optim.SGDConfig{LR: 0.1})

	param.Value().SetGrad(1.0)
	optimizer.Step()

	// x_new = x_old - lr * grad = 2.0 - 0.1 * 1.0 = 1.9
	assert.InDelta(t, 1.9, param.Data(), 1e-12)
}

// TestSGD_WithMomentum tests SGD with momentum.
func TestSGD_WithMomentum(t *testing.T) {
	param := newParam(t, 1.0)
	optimizer := optim.NewSGD([]*nn.Parameter{param}, optim.SGDConfig{LR: 0.1, Momentum: 0.9})

	param.Value().SetGrad(1.0)
	optimizer.Step()
	// v = 1, x = 1 - 0.1 = 0.9
	assert.InDelta(t, 0.9, param.Data(), 1e-12)

	optimizer.Step()
	// v = 0.9 + 1 = 1.9, x = 0.9 - 0.19 = 0.71
	assert.InDelta(t, 0.71, param.Data(), 1e-12)
}

func TestSGD_Defaults(t *testing.T) {
	optimizer := optim.NewSGD(nil, optim.SGDConfig{})
	assert.Equal(t, 0.01, optimizer.LR())

	optimizer.SetLR(0.5)
	assert.Equal(t, 0.5, optimizer.LR())
}

func TestSGD_ZeroGrad(t *testing.T) {
	param := newParam(t, 3.0)
	optimizer := optim.NewSGD([]*nn.Parameter{param}, optim.SGDConfig{LR: 0.1})

	param.Value().SetGrad(4.0)
	optimizer.ZeroGrad()
	assert.Equal(t, 0.0, param.Grad())
	assert.Equal(t, 3.0, param.Data())
}

// TestSGD_MinimizesQuadratic minimizes f(x) = (x - 3)² end to end.
func TestSGD_MinimizesQuadratic(t *testing.T) {
	life, vf := engine.Build()
	defer life.Release()

	param := nn.NewParameter("x", vf.Value(-5))
	optimizer := optim.NewSGD([]*nn.Parameter{param}, optim.SGDConfig{LR: 0.1})

	for range 200 {
		optimizer.ZeroGrad()
		loss := param.Value().SubScalar(3).Powi(2)
		loss.Backward()
		optimizer.Step()
	}

	assert.InDelta(t, 3.0, param.Data(), 1e-6)
}

func TestAdam_FirstStep(t *testing.T) {
	param := newParam(t, 1.0)
	optimizer := optim.NewAdam([]*nn.Parameter{param}, optim.AdamConfig{LR: 0.1})

	param.Value().SetGrad(0.5)
	optimizer.Step()

	// After bias correction the first step is lr * sign(grad).
	assert.InDelta(t, 0.9, param.Data(), 1e-6)
}

func TestAdam_MinimizesQuadratic(t *testing.T) {
	life, vf := engine.Build()
	defer life.Release()

	param := nn.NewParameter("x", vf.Value(0))
	optimizer := optim.NewAdam([]*nn.Parameter{param}, optim.AdamConfig{LR: 0.1})
	require.Equal(t, 0.1, optimizer.LR())

	for range 500 {
		optimizer.ZeroGrad()
		param.Value().AddScalar(2).Powi(2).Backward()
		optimizer.Step()
	}

	assert.InDelta(t, -2.0, param.Data(), 5e-2)
}

func TestLinearDecay(t *testing.T) {
	assert.Equal(t, 1.0, optim.LinearDecay(1.0, 0.1, 0, 100))
	assert.InDelta(t, 0.55, optim.LinearDecay(1.0, 0.1, 50, 100), 1e-12)
	assert.Equal(t, 0.3, optim.LinearDecay(0.3, 0.1, 5, 0))
}

func TestSGD_SetParametersKeepsState(t *testing.T) {
	param := newParam(t, 1.0)
	optimizer := optim.NewSGD([]*nn.Parameter{param}, optim.SGDConfig{LR: 0.1, Momentum: 0.9})
	param.Value().SetGrad(1.0)
	optimizer.Step()

	rebuilt := newParam(t, param.Data())
	rebuilt.Value().SetGrad(1.0)
	optimizer.SetParameters([]*nn.Parameter{rebuilt})
	optimizer.Step()

	// Velocity carried over: same result as TestSGD_WithMomentum.
	assert.InDelta(t, 0.71, rebuilt.Data(), 1e-12)
	assert.Panics(t, func() { optimizer.SetParameters(nil) })
}
