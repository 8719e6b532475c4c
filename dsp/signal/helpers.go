package signal

import (
	"fmt"
	"math"

	"github.com/cwbudde/modscope/dsp/core"
)

// Normalize scales data to target peak amplitude and returns a new slice.
func Normalize(data []float64, targetPeak float64) ([]float64, error) {
	if targetPeak < 0 {
		return nil, fmt.Errorf("signal: normalize target peak must be >= 0: %g: %w", targetPeak, core.ErrInvalidParameter)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("signal: normalize input must not be empty: %w", core.ErrInvalidParameter)
	}

	maxAbs := 0.0
	for _, v := range data {
		av := math.Abs(v)
		if av > maxAbs {
			maxAbs = av
		}
	}

	out := make([]float64, len(data))
	if maxAbs == 0 || targetPeak == 0 {
		return out, nil
	}

	scale := targetPeak / maxAbs
	for i, v := range data {
		out[i] = v * scale
	}
	return out, nil
}

// Clip limits all samples to [lo, hi] and returns a new slice.
func Clip(data []float64, lo, hi float64) ([]float64, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("signal: clip input must not be empty: %w", core.ErrInvalidParameter)
	}
	out := make([]float64, len(data))
	for i, v := range data {
		out[i] = core.Clamp(v, lo, hi)
	}
	return out, nil
}

// RemoveDC subtracts the mean from data and returns a new slice.
func RemoveDC(data []float64) ([]float64, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("signal: remove DC input must not be empty: %w", core.ErrInvalidParameter)
	}

	mean := 0.0
	for _, v := range data {
		mean += v
	}
	mean /= float64(len(data))

	out := make([]float64, len(data))
	for i, v := range data {
		out[i] = v - mean
	}
	return out, nil
}

// Offset adds a constant DC offset to data and returns a new slice.
func Offset(data []float64, offset float64) ([]float64, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("signal: offset input must not be empty: %w", core.ErrInvalidParameter)
	}
	out := make([]float64, len(data))
	for i, v := range data {
		out[i] = v + offset
	}
	return out, nil
}
