// Package data generates small deterministic classification datasets for
// exercising scalar networks.
//
// Labels are in {-1, +1} so they can be used directly with a max-margin
// (hinge) loss.
package data

import (
	"fmt"
	"math"
	"math/rand"
)

// Sample is one labelled input.
type Sample struct {
	X []float64
	Y float64
}

// Moons returns n points from two interleaving half circles with Gaussian
// noise of standard deviation noise, shuffled with rng.
//
// The upper moon is labelled -1 and the lower moon +1. For odd n the upper
// moon gets the extra point.
func Moons(n int, noise float64, rng *rand.Rand) []Sample {
	if n < 2 {
		panic(fmt.Sprintf("Moons: need at least 2 samples, got %d", n))
	}

	nOuter := (n + 1) / 2
	nInner := n - nOuter

	samples := make([]Sample, 0, n)
	for i := range nOuter {
		t := math.Pi * float64(i) / float64(max(nOuter-1, 1))
		samples = append(samples, Sample{X: []float64{math.Cos(t), math.Sin(t)}, Y: -1})
	}
	for i := range nInner {
		t := math.Pi * float64(i) / float64(max(nInner-1, 1))
		samples = append(samples, Sample{X: []float64{1 - math.Cos(t), 0.5 - math.Sin(t)}, Y: 1})
	}

	for i := range samples {
		for j := range samples[i].X {
			samples[i].X[j] += rng.NormFloat64() * noise
		}
	}
	rng.Shuffle(len(samples), func(i, j int) {
		samples[i], samples[j] = samples[j], samples[i]
	})

	return samples
}

// XOR returns the four corners of the unit square labelled by exclusive or.
func XOR() []Sample {
	return []Sample{
		{X: []float64{0, 0}, Y: -1},
		{X: []float64{0, 1}, Y: 1},
		{X: []float64{1, 0}, Y: 1},
		{X: []float64{1, 1}, Y: -1},
	}
}

// Labels returns the label of every sample.
func Labels(samples []Sample) []float64 {
	out := make([]float64, len(samples))
	for i, s := range samples {
		out[i] = s.Y
	}
	return out
}

// Batch returns size samples drawn without replacement. A size of 0 or at
// least len(samples) returns every sample in order.
func Batch(samples []Sample, size int, rng *rand.Rand) []Sample {
	if size <= 0 || size >= len(samples) {
		return samples
	}
	out := make([]Sample, size)
	for i, j := range rng.Perm(len(samples))[:size] {
		out[i] = samples[j]
	}
	return out
}
