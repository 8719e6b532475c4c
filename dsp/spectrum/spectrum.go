// Package spectrum provides the frequency-domain helpers of the engine:
// magnitude and phase bins, phase unwrapping for the phase-based
// demodulators, and a one-shot magnitude spectrum for the UI's
// spectrum view.
package spectrum

import (
	"fmt"
	"math"
	"math/cmplx"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/modscope/dsp/core"
)

// Magnitude returns |X[k]| for each complex spectrum bin.
func Magnitude(in []complex128) []float64 {
	if len(in) == 0 {
		return nil
	}

	re := make([]float64, len(in))
	im := make([]float64, len(in))
	for i, c := range in {
		re[i] = real(c)
		im[i] = imag(c)
	}

	out := make([]float64, len(in))
	vecmath.Magnitude(out, re, im)
	return out
}

// Phase returns arg(X[k]) for each complex spectrum bin in radians.
func Phase(in []complex128) []float64 {
	if len(in) == 0 {
		return nil
	}
	out := make([]float64, len(in))
	for i, c := range in {
		out[i] = cmplx.Phase(c)
	}
	return out
}

// UnwrapPhase returns a new phase slice with +/-2*pi discontinuities removed.
func UnwrapPhase(phase []float64) []float64 {
	if len(phase) == 0 {
		return nil
	}
	out := make([]float64, len(phase))
	out[0] = phase[0]
	offset := 0.0
	for i := 1; i < len(phase); i++ {
		d := phase[i] - phase[i-1]
		switch {
		case d > math.Pi:
			offset -= 2 * math.Pi
		case d < -math.Pi:
			offset += 2 * math.Pi
		}
		out[i] = phase[i] + offset
	}
	return out
}

// MagnitudeSpectrum computes the single-sided magnitude spectrum of a
// real signal. The signal is zero-padded to the next power of two, so
// bin amplitudes are approximate for non-periodic blocks; the returned
// freqs slice gives the bin centers in Hz. Magnitudes are scaled so a
// full-block unit sine reads close to 1.
func MagnitudeSpectrum(signal []float64, sampleRate float64) (freqs, mags []float64, err error) {
	if len(signal) == 0 {
		return nil, nil, fmt.Errorf("spectrum: input must not be empty: %w", core.ErrInvalidParameter)
	}
	if sampleRate <= 0 {
		return nil, nil, fmt.Errorf("spectrum: sample rate must be > 0: %g: %w", sampleRate, core.ErrInvalidParameter)
	}

	fftSize := nextPowerOf2(len(signal))
	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, nil, fmt.Errorf("spectrum: failed to create FFT plan: %w", err)
	}

	in := make([]complex128, fftSize)
	for i, v := range signal {
		in[i] = complex(v, 0)
	}

	out := make([]complex128, fftSize)
	if err := plan.Forward(out, in); err != nil {
		return nil, nil, fmt.Errorf("spectrum: forward FFT failed: %w", err)
	}

	binCount := fftSize/2 + 1
	mags = Magnitude(out[:binCount])

	scale := 2 / float64(len(signal))
	vecmath.ScaleBlockInPlace(mags, scale)
	// DC and Nyquist have no mirrored bin; the single-sided doubling
	// does not apply to them.
	mags[0] /= 2
	mags[binCount-1] /= 2

	binHz := sampleRate / float64(fftSize)
	freqs = make([]float64, binCount)
	for i := range freqs {
		freqs[i] = float64(i) * binHz
	}
	return freqs, mags, nil
}

// PeakFrequency returns the frequency of the strongest bin above DC.
func PeakFrequency(freqs, mags []float64) float64 {
	best := 0.0
	bestMag := -1.0
	for i := 1; i < len(mags) && i < len(freqs); i++ {
		if mags[i] > bestMag {
			bestMag = mags[i]
			best = freqs[i]
		}
	}
	return best
}

func nextPowerOf2(n int) int {
	if n <= 1 {
		return 1
	}
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
