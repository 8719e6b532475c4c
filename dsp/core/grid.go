package core

import "fmt"

// TimeGrid is the sampling lattice shared by every waveform in a session:
// Len() equally spaced instants t[i] = i/SampleRate covering Duration().
// A TimeGrid is immutable once constructed.
type TimeGrid struct {
	sampleRate float64
	n          int
}

// NewTimeGrid builds a grid of round(durationSec * sampleRate) instants.
func NewTimeGrid(durationSec, sampleRate float64) (TimeGrid, error) {
	if durationSec <= 0 {
		return TimeGrid{}, fmt.Errorf("grid duration must be > 0: %g: %w", durationSec, ErrInvalidParameter)
	}
	if sampleRate <= 0 {
		return TimeGrid{}, fmt.Errorf("grid sample rate must be > 0: %g: %w", sampleRate, ErrInvalidParameter)
	}

	n := int(durationSec*sampleRate + 0.5)
	if n < 2 {
		return TimeGrid{}, fmt.Errorf("grid needs at least 2 samples, got %d: %w", n, ErrInvalidParameter)
	}

	return TimeGrid{sampleRate: sampleRate, n: n}, nil
}

// Len returns the number of sample instants.
func (g TimeGrid) Len() int { return g.n }

// SampleRate returns the sample rate in Hz.
func (g TimeGrid) SampleRate() float64 { return g.sampleRate }

// Dt returns the sample interval in seconds.
func (g TimeGrid) Dt() float64 {
	if g.sampleRate <= 0 {
		return 0
	}
	return 1 / g.sampleRate
}

// Duration returns the covered time span in seconds.
func (g TimeGrid) Duration() float64 { return float64(g.n) * g.Dt() }

// At returns the time of sample i in seconds.
func (g TimeGrid) At(i int) float64 { return float64(i) * g.Dt() }

// Times returns a freshly allocated slice of all sample instants.
func (g TimeGrid) Times() []float64 {
	out := make([]float64, g.n)
	dt := g.Dt()
	for i := range out {
		out[i] = float64(i) * dt
	}
	return out
}

// Valid reports whether the grid was built by NewTimeGrid.
func (g TimeGrid) Valid() bool { return g.sampleRate > 0 && g.n >= 2 }
