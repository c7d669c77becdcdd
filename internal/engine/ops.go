package engine

import (
	"math"
	"strconv"
)

// Add returns v + other.
//
// Backward:
//   - d(a+b)/da = 1
//   - d(a+b)/db = 1
func (v Value) Add(other Value) Value {
	out := newValue("+", v.Data()+other.Data(), v, other)
	out.setBackward(func() {
		g := out.Grad()
		v.addGrad(g)
		other.addGrad(g)
	})
	return out
}

// Mul returns v * other.
//
// Backward:
//   - d(a*b)/da = b
//   - d(a*b)/db = a
//
// Operand values are read when the rule fires, not when the node is built.
func (v Value) Mul(other Value) Value {
	out := newValue("*", v.Data()*other.Data(), v, other)
	out.setBackward(func() {
		g := out.Grad()
		v.addGrad(other.Data() * g)
		other.addGrad(v.Data() * g)
	})
	return out
}

// Neg returns -v, built as v * (-1).
func (v Value) Neg() Value {
	return v.Mul(v.Lift(-1))
}

// Sub returns v - other, built as v + (-other).
func (v Value) Sub(other Value) Value {
	return v.Add(other.Neg())
}

// Div returns v / other, built as v * other^-1.
// Division by zero follows IEEE 754 (±Inf or NaN).
func (v Value) Div(other Value) Value {
	return v.Mul(other.Powi(-1))
}

// Powi returns v^n for an integer exponent n (negative allowed).
//
// Backward:
//
//	d(x^n)/dx = n * x^(n-1)
func (v Value) Powi(n int) Value {
	out := newValue("**"+strconv.Itoa(n), math.Pow(v.Data(), float64(n)), v)
	out.setBackward(func() {
		local := float64(n) * math.Pow(v.Data(), float64(n-1))
		v.addGrad(local * out.Grad())
	})
	return out
}

// Powf returns v^p for a real exponent p.
// A negative base with a non-integer exponent yields NaN.
//
// Backward:
//
//	d(x^p)/dx = p * x^(p-1)
func (v Value) Powf(p float64) Value {
	out := newValue("**"+formatFloat(p), math.Pow(v.Data(), p), v)
	out.setBackward(func() {
		local := p * math.Pow(v.Data(), p-1)
		v.addGrad(local * out.Grad())
	})
	return out
}

// ReLU returns max(0, v).
//
// NaN passes through unchanged.
//
// Backward: the gradient passes through iff the node's own value is > 0.
// At exactly zero the subgradient 0 is used.
func (v Value) ReLU() Value {
	y := v.Data()
	if y < 0 {
		y = 0
	}
	out := newValue("ReLU", y, v)
	out.setBackward(func() {
		if out.Data() > 0 {
			v.addGrad(out.Grad())
		}
	})
	return out
}

// Tanh returns tanh(v) = (e^2x - 1) / (e^2x + 1), computed with math.Tanh.
// For |x| beyond about 355 e^2x overflows and the quotient form is NaN;
// math.Tanh saturates to ±1 instead.
//
// Backward:
//
//	d(tanh(x))/dx = 1 - tanh²(x)
func (v Value) Tanh() Value {
	t := math.Tanh(v.Data())
	out := newValue("tanh", t, v)
	out.setBackward(func() {
		v.addGrad((1 - t*t) * out.Grad())
	})
	return out
}

// Exp returns e^v.
//
// Backward:
//
//	d(e^x)/dx = e^x, read from the output node
func (v Value) Exp() Value {
	out := newValue("exp", math.Exp(v.Data()), v)
	out.setBackward(func() {
		v.addGrad(out.Data() * out.Grad())
	})
	return out
}

// AddScalar returns v + x.
func (v Value) AddScalar(x float64) Value { return v.Add(v.Lift(x)) }

// SubScalar returns v - x.
func (v Value) SubScalar(x float64) Value { return v.Sub(v.Lift(x)) }

// MulScalar returns v * x.
func (v Value) MulScalar(x float64) Value { return v.Mul(v.Lift(x)) }

// DivScalar returns v / x.
func (v Value) DivScalar(x float64) Value { return v.Div(v.Lift(x)) }

// RAdd returns x + v.
func (v Value) RAdd(x float64) Value { return v.Lift(x).Add(v) }

// RSub returns x - v.
func (v Value) RSub(x float64) Value { return v.Lift(x).Sub(v) }

// RMul returns x * v.
func (v Value) RMul(x float64) Value { return v.Lift(x).Mul(v) }

// RDiv returns x / v.
func (v Value) RDiv(x float64) Value { return v.Lift(x).Div(v) }

// Sum returns vs[0] + vs[1] + … folded left to right.
// It panics if vs is empty, since there is no arena to allocate a zero in.
func Sum(vs ...Value) Value {
	if len(vs) == 0 {
		panic("engine: Sum of no values")
	}
	acc := vs[0]
	for _, x := range vs[1:] {
		acc = acc.Add(x)
	}
	return acc
}
