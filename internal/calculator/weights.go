package calculator

import (
	"fmt"
	"math"
	"math/rand/v2"
)

const weightTolerance = 1e-9

// RandomWeights draws a uniform weight for each of n assets and
// normalizes them to sum to 1. The allocation is arbitrary, not optimized.
func RandomWeights(rng *rand.Rand, n int) ([]float64, error) {
	if n < 1 {
		return nil, fmt.Errorf("cannot assign weights to %d assets", n)
	}

	weights := make([]float64, n)
	sum := 0.0
	for i := range weights {
		weights[i] = rng.Float64()
		sum += weights[i]
	}
	if sum == 0 {
		return nil, fmt.Errorf("random weights summed to 0")
	}
	for i := range weights {
		weights[i] /= sum
	}

	if err := ValidateWeights(weights, n); err != nil {
		return nil, err
	}

	return weights, nil
}

func ValidateWeights(weights []float64, n int) error {
	if len(weights) != n {
		return fmt.Errorf("expected %d weights, got %d", n, len(weights))
	}
	sum := 0.0
	for i, w := range weights {
		if math.IsNaN(w) || math.IsInf(w, 0) {
			return fmt.Errorf("invalid weight %f at index %d", w, i)
		}
		if w < 0 {
			return fmt.Errorf("weight at index %d is negative: %f", i, w)
		}
		sum += w
	}
	if math.Abs(sum-1) > weightTolerance {
		return fmt.Errorf("weights should sum to 1, got %f", sum)
	}
	return nil
}
