// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package engine provides scalar reverse-mode automatic differentiation.
//
// Every arithmetic operation on a Value records a node in a graph owned by an
// arena. Calling Backward on any node computes the gradient of that node with
// respect to every value it depends on.
//
// Example:
//
//	import "github.com/born-ml/micrograd/engine"
//
//	func main() {
//	    life, vf := engine.Build()
//	    defer life.Release()
//
//	    a := vf.Value(-4.0)
//	    b := vf.Value(2.0)
//	    c := a.Add(b)
//	    d := a.Mul(b).Add(b.Powi(3))
//	    e := c.Sub(d).Tanh()
//
//	    e.Backward()
//	    fmt.Println(a.Grad(), b.Grad())
//	}
//
// # Lifetimes
//
// The arena is released as a whole by Lifetime.Release. Using a Value after
// its arena was released panics with an error wrapping ErrReleased.
// Combining values from two arenas panics with an error wrapping
// ErrArenaMismatch.
package engine
