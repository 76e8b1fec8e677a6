// Package classifier implements the linear multi-class intent model, its
// offline training procedure, and the persisted bundle that keeps the model
// and its vocabulary together.
package classifier

import "math"

// Model is a fitted linear multi-class classifier: one weight row and bias
// per class over the vectorizer's feature space. Immutable after training and
// safe for concurrent readers.
type Model struct {
	Classes []string    `json:"classes"`
	Weights [][]float64 `json:"weights"`
	Bias    []float64   `json:"bias"`
}

// Predict returns the class with the highest linear score. Ties break toward
// the lower class index, so prediction is deterministic for identical input.
func (m *Model) Predict(x []float64) string {
	best := 0
	bestScore := math.Inf(-1)
	for c := range m.Classes {
		score := m.score(c, x)
		if score > bestScore {
			best = c
			bestScore = score
		}
	}
	return m.Classes[best]
}

func (m *Model) score(class int, x []float64) float64 {
	score := m.Bias[class]
	row := m.Weights[class]
	for j, v := range x {
		if v != 0 {
			score += row[j] * v
		}
	}
	return score
}

// softmax converts class scores into a probability distribution.
func softmax(scores []float64) []float64 {
	max := math.Inf(-1)
	for _, s := range scores {
		if s > max {
			max = s
		}
	}

	probs := make([]float64, len(scores))
	sum := 0.0
	for i, s := range scores {
		probs[i] = math.Exp(s - max)
		sum += probs[i]
	}
	for i := range probs {
		probs[i] /= sum
	}
	return probs
}
