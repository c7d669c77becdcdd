package nn

import (
	"fmt"
	"strings"

	"github.com/born-ml/micrograd/internal/engine"
)

// Activation selects the non-linearity applied by a Neuron.
type Activation int

// Supported activations.
const (
	Tanh   Activation = iota // tanh(x), the default
	ReLU                     // max(0, x)
	Linear                   // identity
)

// String returns the activation name as used in configuration files.
func (a Activation) String() string {
	switch a {
	case Tanh:
		return "tanh"
	case ReLU:
		return "relu"
	case Linear:
		return "linear"
	default:
		return fmt.Sprintf("Activation(%d)", int(a))
	}
}

// ParseActivation converts a configuration name into an Activation.
func ParseActivation(name string) (Activation, error) {
	switch strings.ToLower(name) {
	case "", "tanh":
		return Tanh, nil
	case "relu":
		return ReLU, nil
	case "linear", "none":
		return Linear, nil
	default:
		return 0, fmt.Errorf("nn: unknown activation %q", name)
	}
}

// Apply applies the activation to v.
func (a Activation) Apply(v engine.Value) engine.Value {
	switch a {
	case Tanh:
		return v.Tanh()
	case ReLU:
		return v.ReLU()
	case Linear:
		return v
	default:
		panic(fmt.Sprintf("nn: unsupported activation %s", a))
	}
}
