// Package fidelity measures how well a recovered waveform tracks the
// original message: shape correlation for the analog schemes, bit
// slicing and error rate for the digital ones.
package fidelity

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/modscope/dsp/core"
)

// Correlation returns the Pearson correlation coefficient of a and b in
// [-1, 1]. Inputs longer than their counterpart are truncated to the
// shorter length. A constant input yields 0.
func Correlation(a, b []float64) (float64, error) {
	n := min(len(a), len(b))
	if n < 2 {
		return 0, fmt.Errorf("fidelity: correlation needs at least 2 samples, got %d: %w", n, core.ErrInvalidParameter)
	}

	ca := centered(a[:n])
	cb := centered(b[:n])

	normA := math.Sqrt(vecmath.DotProduct(ca, ca))
	normB := math.Sqrt(vecmath.DotProduct(cb, cb))
	if normA == 0 || normB == 0 {
		return 0, nil
	}

	return vecmath.DotProduct(ca, cb) / (normA * normB), nil
}

// SliceBits converts a rectangular pulse train back into its bit
// sequence: each interval of samplesPerBit samples becomes 1 when its
// mean exceeds half of the strongest interval mean. An all-low train
// yields all zero bits.
func SliceBits(waveform []float64, samplesPerBit int) ([]int, error) {
	if len(waveform) == 0 {
		return nil, fmt.Errorf("fidelity: slice input must not be empty: %w", core.ErrInvalidParameter)
	}
	if samplesPerBit < 1 {
		return nil, fmt.Errorf("fidelity: samples per bit must be >= 1: %d: %w", samplesPerBit, core.ErrInvalidParameter)
	}

	bitCount := (len(waveform) + samplesPerBit - 1) / samplesPerBit
	means := make([]float64, bitCount)
	maxMean := 0.0
	for k := range means {
		lo := k * samplesPerBit
		hi := min(lo+samplesPerBit, len(waveform))
		means[k] = vecmath.Sum(waveform[lo:hi]) / float64(hi-lo)
		if means[k] > maxMean {
			maxMean = means[k]
		}
	}

	bits := make([]int, bitCount)
	if maxMean <= 0 {
		return bits, nil
	}
	for k, m := range means {
		if m > maxMean/2 {
			bits[k] = 1
		}
	}
	return bits, nil
}

// BitErrorRate returns the fraction of differing bits. The sequences
// must have equal length.
func BitErrorRate(want, got []int) (float64, error) {
	if len(want) == 0 {
		return 0, fmt.Errorf("fidelity: bit error rate needs a non-empty reference: %w", core.ErrInvalidParameter)
	}
	if len(want) != len(got) {
		return 0, fmt.Errorf("fidelity: bit count mismatch: %d != %d: %w", len(want), len(got), core.ErrInvalidParameter)
	}

	errs := 0
	for i := range want {
		if want[i] != got[i] {
			errs++
		}
	}
	return float64(errs) / float64(len(want)), nil
}

func centered(x []float64) []float64 {
	mean := vecmath.Sum(x) / float64(len(x))
	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = v - mean
	}
	return out
}
