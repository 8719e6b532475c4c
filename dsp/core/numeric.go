package core

import (
	"fmt"
	"math"
)

const defaultEpsilon = 1e-12

// Clamp limits value to the inclusive range [min, max].
func Clamp(value, min, max float64) float64 {
	if min > max {
		min, max = max, min
	}

	if value < min {
		return min
	}

	if value > max {
		return max
	}

	return value
}

// NearlyEqual reports whether a and b are equal within eps.
func NearlyEqual(a, b, eps float64) bool {
	if eps <= 0 {
		eps = defaultEpsilon
	}

	diff := math.Abs(a - b)
	if diff <= eps {
		return true
	}

	largest := math.Max(math.Abs(a), math.Abs(b))
	if largest == 0 {
		return diff <= eps
	}

	return diff/largest <= eps
}

// IsFinite reports whether x is neither NaN nor Inf.
func IsFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// CheckFinite returns ErrNonFinite if any sample in signal is NaN or Inf.
// Extreme parameter combinations can push phase or integral accumulators
// past the float64 range; this is where that surfaces.
func CheckFinite(signal []float64) error {
	for i, v := range signal {
		if !IsFinite(v) {
			return fmt.Errorf("sample %d is %g: %w", i, v, ErrNonFinite)
		}
	}
	return nil
}
