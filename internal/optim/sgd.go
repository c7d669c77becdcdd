package optim

import "github.com/born-ml/micrograd/internal/nn"

// SGD implements Stochastic Gradient Descent optimizer with optional momentum.
//
// Update rule without momentum:
//
//	param = param - lr * gradient
//
// Update rule with momentum:
//
//	velocity = momentum * velocity + gradient
//	param = param - lr * velocity
//
// Example:
//
//	optimizer := optim.NewSGD(model.Parameters(), optim.SGDConfig{
//	    LR:       0.01,
//	    Momentum: 0.9,
//	})
type SGD struct {
	params     []*nn.Parameter
	lr         float64
	momentum   float64
	velocities []float64 // Indexed like params; nil without momentum
}

// SGDConfig holds configuration for SGD optimizer.
type SGDConfig struct {
	LR       float64 // Learning rate (default: 0.01)
	Momentum float64 // Momentum factor (default: 0.0, range: [0, 1))
}

// NewSGD creates a new SGD optimizer.
func NewSGD(params []*nn.Parameter, config SGDConfig) *SGD {
	// Set defaults
	if config.LR == 0 {
		config.LR = 0.01
	}

	s := &SGD{
		params:   params,
		lr:       config.LR,
		momentum: config.Momentum,
	}
	if s.momentum != 0 {
		s.velocities = make([]float64, len(params))
	}
	return s
}

// Step performs a single optimization step.
func (s *SGD) Step() {
	for i, param := range s.params {
		grad := param.Grad()

		if s.momentum == 0 {
			param.SetData(param.Data() - s.lr*grad)
			continue
		}

		s.velocities[i] = s.momentum*s.velocities[i] + grad
		param.SetData(param.Data() - s.lr*s.velocities[i])
	}
}

// ZeroGrad clears gradients for all parameters.
func (s *SGD) ZeroGrad() {
	for _, param := range s.params {
		param.ZeroGrad()
	}
}

// LR returns the current learning rate.
func (s *SGD) LR() float64 {
	return s.lr
}

// SetLR updates the learning rate.
func (s *SGD) SetLR(lr float64) {
	s.lr = lr
}

// SetParameters rebinds the optimizer to params (see Optimizer).
func (s *SGD) SetParameters(params []*nn.Parameter) {
	checkRebind("SGD", len(s.params), len(params))
	s.params = params
}
