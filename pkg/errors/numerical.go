package errors

import (
	"math"
)

// CheckValues returns a ValueError when values contain NaN or Inf. Fit
// routines call this before trusting a score comparison: a NaN propagating
// into the greedy search would poison every subsequent comparison silently.
func CheckValues(op string, values []float64) error {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return NewValueError(op, "non-finite value in input")
		}
	}
	return nil
}

// CheckScalar returns a ValueError when value is NaN or Inf.
func CheckScalar(op string, value float64) error {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return NewValueError(op, "non-finite value")
	}
	return nil
}

// SafeDivide performs division with protection against a zero denominator.
// Returns 0 when the denominator is zero or close to it.
func SafeDivide(numerator, denominator float64) float64 {
	if math.Abs(denominator) < 1e-10 {
		return 0
	}
	return numerator / denominator
}
