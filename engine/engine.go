// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package engine

import (
	"github.com/born-ml/micrograd/internal/arena"
	"github.com/born-ml/micrograd/internal/engine"
)

// Value is a handle to one node in the graph.
type Value = engine.Value

// Factory creates leaf values in one arena.
type Factory = engine.Factory

// Lifetime owns an arena and releases it.
type Lifetime = engine.Lifetime

// Edge connects an operand to the value computed from it.
type Edge = engine.Edge

// Errors reported through panics.
var (
	ErrReleased      = arena.ErrReleased
	ErrDangling      = arena.ErrDangling
	ErrArenaMismatch = engine.ErrArenaMismatch
)

// Build creates a new arena and returns its lifetime guard and a factory.
func Build() (*Lifetime, Factory) {
	return engine.Build()
}

// Sum adds vs together. It panics if vs is empty.
func Sum(vs ...Value) Value {
	return engine.Sum(vs...)
}

// TopoSort returns every value reachable from root, operands first.
func TopoSort(root Value) []Value {
	return engine.TopoSort(root)
}

// ZeroGrad sets the gradient of each value to zero.
func ZeroGrad(vs ...Value) {
	engine.ZeroGrad(vs...)
}

// ZeroGradAll sets the gradient of root and every value below it to zero.
func ZeroGradAll(root Value) {
	engine.ZeroGradAll(root)
}

// Trace returns the nodes and edges reachable from root.
func Trace(root Value) ([]Value, []Edge) {
	return engine.Trace(root)
}
