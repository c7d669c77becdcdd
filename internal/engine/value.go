// Package engine implements reverse-mode automatic differentiation over
// scalar values.
//
// Architecture:
//   - Arena: every node of a session lives in one arena owned by a
//     Lifetime guard. Nothing else owns nodes.
//   - Value: a copyable, comparable handle (arena + slot index). Handles are
//     used everywhere a node is referenced: by callers, as children of other
//     nodes and inside backward closures.
//   - Operations: each constructor allocates one node and installs a closure
//     implementing the local chain-rule contribution.
//   - Backward: topological sort from a root, then reverse-order accumulation.
//
// Usage:
//
//	life, vf := engine.Build()
//	defer life.Release()
//
//	x := vf.Value(2.0)
//	y := x.Mul(x).AddScalar(1) // y = x² + 1
//
//	y.Backward()
//	fmt.Println(x.Grad()) // dy/dx = 2x = 4
//
// The engine is single-threaded. Using a Value after its Lifetime has been
// released panics with an error wrapping arena.ErrReleased.
package engine

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/born-ml/micrograd/internal/arena"
)

// ErrArenaMismatch is reported (via panic) when an operation combines values
// allocated in different arenas.
var ErrArenaMismatch = errors.New("values belong to different arenas")

// ValueData is a node of the computation graph.
//
// Only data and grad change after construction. op, prev and backward are
// fixed once the constructing operation returns.
type ValueData struct {
	data     float64
	grad     float64
	op       string  // Producing operation, empty for leaves
	prev     []Value // Operands, deduplicated by identity
	backward func()  // Local gradient rule, nil for leaves
}

// Lifetime owns the storage of every Value created from its Factory.
type Lifetime = arena.Lifetime[ValueData]

// Value is a non-owning handle to a node.
//
// Values are compared by identity: two handles are == iff they refer to the
// same node, so they can be used directly as map keys. Copying a Value does
// not copy the node.
type Value struct {
	id  int
	ref arena.Ref[ValueData]
}

// Factory creates leaf values in one arena.
type Factory struct {
	ref arena.Ref[ValueData]
}

// Build creates a new arena and a Factory bound to it.
// The caller must keep the Lifetime until it is done with every Value.
func Build() (*Lifetime, Factory) {
	life, ref := arena.Build[ValueData]()
	return life, Factory{ref: ref}
}

// Value creates a leaf node holding x.
func (f Factory) Value(x float64) Value {
	return leaf(f.ref, x)
}

// Values creates one leaf per element of xs.
func (f Factory) Values(xs ...float64) []Value {
	out := make([]Value, len(xs))
	for i, x := range xs {
		out[i] = leaf(f.ref, x)
	}
	return out
}

// Alive reports whether the factory's arena is still alive.
func (f Factory) Alive() bool {
	return f.ref.Alive()
}

func leaf(ref arena.Ref[ValueData], x float64) Value {
	return Value{id: ref.Alloc(ValueData{data: x}), ref: ref}
}

// Lift creates a leaf holding x in the same arena as v.
func (v Value) Lift(x float64) Value {
	return leaf(v.ref, x)
}

// node resolves the handle. It panics if the arena has been released.
func (v Value) node() *ValueData {
	return v.ref.At(v.id)
}

// Data returns the node's scalar value.
func (v Value) Data() float64 {
	return v.node().data
}

// Grad returns the gradient accumulated by the last backward passes.
func (v Value) Grad() float64 {
	return v.node().grad
}

// SetData overwrites the node's value. Derived nodes are not recomputed.
func (v Value) SetData(x float64) {
	v.node().data = x
}

// SetGrad overwrites the node's gradient.
func (v Value) SetGrad(g float64) {
	v.node().grad = g
}

func (v Value) addGrad(delta float64) {
	v.node().grad += delta
}

// Op returns the label of the producing operation, or "" for a leaf.
func (v Value) Op() string {
	return v.node().op
}

// IsLeaf reports whether v was created from a scalar rather than an operation.
func (v Value) IsLeaf() bool {
	return len(v.node().prev) == 0
}

// Children returns the operands that produced v.
func (v Value) Children() []Value {
	prev := v.node().prev
	out := make([]Value, len(prev))
	copy(out, prev)
	return out
}

// ID returns the node's slot in its arena. IDs are unique per arena.
func (v Value) ID() int {
	return v.id
}

// String formats v as "Value(data=…, grad=…)".
func (v Value) String() string {
	n := v.node()
	return "Value(data=" + formatFloat(n.data) + ", grad=" + formatFloat(n.grad) + ")"
}

func formatFloat(x float64) string {
	return strconv.FormatFloat(x, 'g', -1, 64)
}

// newValue allocates a derived node. The backward rule is installed
// separately because it needs the handle of the node being created.
func newValue(op string, data float64, children ...Value) Value {
	ref := children[0].ref
	prev := make([]Value, 0, len(children))
	for _, c := range children {
		if c.ref != ref {
			panic(fmt.Errorf("%w: %s(%s, %s)", ErrArenaMismatch, op, ref.ID(), c.ref.ID()))
		}
		if !contains(prev, c) {
			prev = append(prev, c)
		}
	}
	return Value{
		id:  ref.Alloc(ValueData{data: data, op: op, prev: prev}),
		ref: ref,
	}
}

func (v Value) setBackward(fn func()) {
	v.node().backward = fn
}

func contains(vs []Value, v Value) bool {
	for _, x := range vs {
		if x == v {
			return true
		}
	}
	return false
}
