// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package optim provides optimization algorithms for scalar networks.
//
// # Overview
//
// This package contains:
//   - SGD: Stochastic Gradient Descent with optional momentum
//   - Adam: Adaptive Moment Estimation with bias correction
//   - LinearDecay: learning rate schedule
//
// # Basic Usage
//
//	optimizer := optim.NewSGD(model.Parameters(), optim.SGDConfig{LR: 1.0})
//
//	for epoch := range 100 {
//	    optimizer.SetLR(optim.LinearDecay(1.0, 0.1, epoch, 100))
//	    loss := nn.Hinge(scores(model), labels)
//
//	    optimizer.ZeroGrad()
//	    loss.Backward()
//	    optimizer.Step()
//	}
package optim
