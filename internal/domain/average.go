package domain

import "fmt"

// WeightedAverage computes the weighted average of scores:
// the sum of pairwise score*weight products divided by the sum of weights.
//
// Accumulation is single-precision and strictly left to right. The order is
// never rearranged for numerical stability, so results are bit-reproducible
// across runs for identical inputs.
//
// Two empty-input conventions apply, and neither is an error:
//   - empty (or nil) inputs yield 0.0
//   - a weight sum of exactly 0.0 yields 0.0
//
// Mismatched slice lengths are a contract violation and are rejected with
// ErrLengthMismatch rather than read out of bounds.
func WeightedAverage(scores, weights []float32) (float32, error) {
	if len(scores) != len(weights) {
		return 0, fmt.Errorf("%w: scores=%d, weights=%d",
			ErrLengthMismatch, len(scores), len(weights))
	}
	if len(scores) == 0 {
		return 0, nil
	}

	var sumProducts, sumWeights float32
	for i := range scores {
		sumProducts += scores[i] * weights[i]
		sumWeights += weights[i]
	}

	// Avoid division by zero.
	if sumWeights == 0 {
		return 0, nil
	}

	return sumProducts / sumWeights, nil
}
