package nn

import (
	"fmt"
	"math"
	"math/rand"
	"strings"
)

// Initializer draws one initial weight for a neuron with the given fan-in
// and fan-out.
type Initializer func(rng *rand.Rand, fanIn, fanOut int) float64

// Uniform draws weights from U(-1, 1).
func Uniform(rng *rand.Rand, _, _ int) float64 {
	return rng.Float64()*2.0 - 1.0
}

// Xavier (Glorot) initialization.
//
// Draws weights from U(-sqrt(6/(fan_in + fan_out)), sqrt(6/(fan_in + fan_out))).
// This keeps the variance of activations roughly constant across layers.
func Xavier(rng *rand.Rand, fanIn, fanOut int) float64 {
	bound := math.Sqrt(6.0 / float64(fanIn+fanOut))
	return (rng.Float64()*2.0 - 1.0) * bound
}

// ParseInitializer converts a configuration name into an Initializer.
func ParseInitializer(name string) (Initializer, error) {
	switch strings.ToLower(name) {
	case "", "uniform":
		return Uniform, nil
	case "xavier":
		return Xavier, nil
	default:
		return nil, fmt.Errorf("nn: unknown initializer %q", name)
	}
}

// newRand returns a deterministic source for seed.
func newRand(seed int64) *rand.Rand {
	//nolint:gosec // Using math/rand for weight initialization (not security-critical)
	return rand.New(rand.NewSource(seed))
}
