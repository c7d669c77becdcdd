// Package optim implements optimization algorithms for training scalar
// neural networks.
//
// This package provides:
//   - Optimizer interface: Base interface for all optimizers
//   - SGD: Stochastic Gradient Descent with momentum
//   - Adam: Adaptive Moment Estimation
//   - LinearDecay: simple learning rate schedule
//
// Gradients are read directly from each parameter's node, so Step must run
// after Backward and before the next ZeroGrad.
//
// Example usage:
//
//	optimizer := optim.NewSGD(model.Parameters(), optim.SGDConfig{LR: 0.05})
//
//	for epoch := range epochs {
//	    optimizer.ZeroGrad()
//	    loss := computeLoss(model, data)
//	    loss.Backward()
//	    optimizer.Step()
//	}
package optim

import (
	"fmt"

	"github.com/born-ml/micrograd/internal/nn"
)

// Optimizer is the base interface for all optimization algorithms.
type Optimizer interface {
	// Step applies one update to every parameter using its current gradient.
	Step()

	// ZeroGrad clears all parameter gradients.
	//
	// Gradients accumulate across backward passes, so this should be called
	// before each backward pass.
	ZeroGrad()

	// LR returns the current learning rate.
	LR() float64

	// SetLR updates the learning rate (for scheduling).
	SetLR(lr float64)

	// SetParameters rebinds the optimizer to the parameters of a rebuilt
	// model. Per-parameter state is kept by position, so params must line up
	// with the original list.
	SetParameters(params []*nn.Parameter)
}

// LinearDecay returns the learning rate for epoch in [0, epochs) when
// decaying linearly from start to end.
//
// With start=1.0, end=0.1 and epochs=100 this reproduces the classic
// 1.0 - 0.9*k/100 micrograd schedule.
func LinearDecay(start, end float64, epoch, epochs int) float64 {
	if epochs <= 0 {
		return start
	}
	return start - (start-end)*float64(epoch)/float64(epochs)
}

func checkRebind(name string, have, got int) {
	if have != got {
		panic(fmt.Sprintf("%s: expected %d parameters, got %d", name, have, got))
	}
}
