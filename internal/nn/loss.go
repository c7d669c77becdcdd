package nn

import (
	"fmt"

	"github.com/born-ml/micrograd/internal/engine"
)

// MSE computes Mean Squared Error loss.
//
// Loss = mean((predictions - targets)²)
//
// It panics if the slices are empty or differ in length.
func MSE(predictions, targets []engine.Value) engine.Value {
	if len(predictions) != len(targets) || len(predictions) == 0 {
		panic(fmt.Sprintf("MSE: predictions (%d) and targets (%d) must have the same non-zero length",
			len(predictions), len(targets)))
	}

	terms := make([]engine.Value, len(predictions))
	for i, p := range predictions {
		terms[i] = p.Sub(targets[i]).Powi(2)
	}
	return engine.Sum(terms...).DivScalar(float64(len(terms)))
}

// Hinge computes the mean max-margin loss for labels in {-1, +1}.
//
// Loss = mean(max(0, 1 - yᵢ·scoreᵢ))
func Hinge(scores []engine.Value, labels []float64) engine.Value {
	if len(scores) != len(labels) || len(scores) == 0 {
		panic(fmt.Sprintf("Hinge: scores (%d) and labels (%d) must have the same non-zero length",
			len(scores), len(labels)))
	}

	terms := make([]engine.Value, len(scores))
	for i, s := range scores {
		terms[i] = s.MulScalar(-labels[i]).AddScalar(1).ReLU()
	}
	return engine.Sum(terms...).DivScalar(float64(len(terms)))
}

// L2 computes alpha * Σ p² over params.
func L2(params []*Parameter, alpha float64) engine.Value {
	if len(params) == 0 {
		panic("L2: no parameters")
	}

	terms := make([]engine.Value, len(params))
	for i, p := range params {
		terms[i] = p.Value().Powi(2)
	}
	return engine.Sum(terms...).MulScalar(alpha)
}

// Accuracy returns the fraction of scores whose sign matches the label.
// A score of exactly 0 counts as a negative prediction.
func Accuracy(scores []engine.Value, labels []float64) float64 {
	if len(scores) != len(labels) {
		panic(fmt.Sprintf("Accuracy: scores (%d) and labels (%d) must have the same length",
			len(scores), len(labels)))
	}
	if len(scores) == 0 {
		return 0
	}

	correct := 0
	for i, s := range scores {
		if (s.Data() > 0) == (labels[i] > 0) {
			correct++
		}
	}
	return float64(correct) / float64(len(scores))
}
