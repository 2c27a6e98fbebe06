package estimator

import (
	"gonum.org/v1/gonum/floats"
)

// Distance measures how far apart two equal-length feature vectors are.
// Estimators that rank neighbors consume it as a pluggable strategy.
type Distance func(a, b []float64) float64

// Euclidean is the L2 distance.
func Euclidean(a, b []float64) float64 {
	return floats.Distance(a, b, 2)
}

// Manhattan is the L1 distance.
func Manhattan(a, b []float64) float64 {
	return floats.Distance(a, b, 1)
}
