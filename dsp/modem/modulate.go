package modem

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/modscope/dsp/core"
)

// Modulator applies one of the six schemes to a message waveform.
type Modulator struct {
	carrier CarrierConfig
}

// NewModulator validates the carrier parameters and fills defaults.
func NewModulator(carrier CarrierConfig) (*Modulator, error) {
	if err := carrier.Validate(); err != nil {
		return nil, err
	}
	return &Modulator{carrier: carrier.normalized()}, nil
}

// Carrier returns the normalized carrier configuration.
func (m *Modulator) Carrier() CarrierConfig { return m.carrier }

// Modulate is a one-shot helper for a single transform.
func Modulate(message []float64, carrier CarrierConfig, scheme Scheme, grid core.TimeGrid) ([]float64, error) {
	mod, err := NewModulator(carrier)
	if err != nil {
		return nil, err
	}
	return mod.Modulate(message, scheme, grid)
}

// Modulate produces the modulated waveform for the given scheme. When the
// message and grid lengths disagree, the output is truncated to the
// shorter of the two; no resampling takes place. The result is a new
// slice, finite in every sample.
func (m *Modulator) Modulate(message []float64, scheme Scheme, grid core.TimeGrid) ([]float64, error) {
	if len(message) == 0 {
		return nil, fmt.Errorf("modem: modulate message must not be empty: %w", core.ErrInvalidParameter)
	}
	if !grid.Valid() {
		return nil, fmt.Errorf("modem: modulate needs a valid time grid: %w", core.ErrInvalidParameter)
	}

	n := min(len(message), grid.Len())
	msg := message[:n]

	var out []float64
	switch scheme {
	case SchemeAM:
		out = m.modulateAM(msg, grid)
	case SchemeFM:
		out = m.modulateFM(msg, grid)
	case SchemePM:
		out = m.modulatePM(msg, grid)
	case SchemeASK:
		out = m.modulateASK(msg, grid)
	case SchemePSK:
		out = m.modulatePSK(msg, grid)
	case SchemeFSK:
		out = m.modulateFSK(msg, grid)
	default:
		return nil, fmt.Errorf("modem: unknown scheme %d: %w", int(scheme), core.ErrInvalidParameter)
	}

	if err := core.CheckFinite(out); err != nil {
		return nil, fmt.Errorf("modem: modulate %s: %w", scheme, err)
	}
	return out, nil
}

// modulateAM computes (Ac + m(t)) * cos(2*pi*fc*t). The carrier amplitude
// is expected to exceed max|m(t)|; over-modulation is not rejected, it
// simply shows up as envelope folding in the recovered trace.
func (m *Modulator) modulateAM(msg []float64, grid core.TimeGrid) []float64 {
	n := len(msg)
	carr := make([]float64, n)
	env := make([]float64, n)
	step := 2 * math.Pi * m.carrier.FrequencyHz * grid.Dt()
	for i := range carr {
		carr[i] = math.Cos(step * float64(i))
		env[i] = m.carrier.Amplitude + msg[i]
	}

	out := make([]float64, n)
	vecmath.MulBlock(out, env, carr)
	return out
}

// modulateFM computes Ac * cos(2*pi*fc*t + k*integral(m)), with the
// integral approximated by a cumulative sum scaled by the sample interval.
func (m *Modulator) modulateFM(msg []float64, grid core.TimeGrid) []float64 {
	out := make([]float64, len(msg))
	wc := 2 * math.Pi * m.carrier.FrequencyHz
	dt := grid.Dt()
	integral := 0.0
	for i := range out {
		integral += msg[i] * dt
		out[i] = m.carrier.Amplitude * math.Cos(wc*grid.At(i)+m.carrier.Index*integral)
	}
	return out
}

// modulatePM computes Ac * cos(2*pi*fc*t + k*m(t)).
func (m *Modulator) modulatePM(msg []float64, grid core.TimeGrid) []float64 {
	out := make([]float64, len(msg))
	wc := 2 * math.Pi * m.carrier.FrequencyHz
	for i := range out {
		out[i] = m.carrier.Amplitude * math.Cos(wc*grid.At(i)+m.carrier.Index*msg[i])
	}
	return out
}

// modulateASK gates the carrier: message samples above zero pass the
// carrier at full amplitude, the rest mute it.
func (m *Modulator) modulateASK(msg []float64, grid core.TimeGrid) []float64 {
	out := make([]float64, len(msg))
	step := 2 * math.Pi * m.carrier.FrequencyHz * grid.Dt()
	for i := range out {
		if msg[i] > 0 {
			out[i] = m.carrier.Amplitude * math.Cos(step*float64(i))
		}
	}
	return out
}

// modulatePSK flips the carrier phase by pi for message samples at or
// below zero: bit 1 transmits cos, bit 0 transmits -cos.
func (m *Modulator) modulatePSK(msg []float64, grid core.TimeGrid) []float64 {
	out := make([]float64, len(msg))
	step := 2 * math.Pi * m.carrier.FrequencyHz * grid.Dt()
	for i := range out {
		c := m.carrier.Amplitude * math.Cos(step*float64(i))
		if msg[i] > 0 {
			out[i] = c
		} else {
			out[i] = -c
		}
	}
	return out
}

// modulateFSK switches between fc and fc+deviation on the shared absolute
// time axis. Phase is not accumulated across tone switches, matching the
// per-bit reference correlation used on the receive side.
func (m *Modulator) modulateFSK(msg []float64, grid core.TimeGrid) []float64 {
	out := make([]float64, len(msg))
	w0 := 2 * math.Pi * m.carrier.FrequencyHz
	w1 := 2 * math.Pi * (m.carrier.FrequencyHz + m.carrier.DeviationHz)
	for i := range out {
		w := w0
		if msg[i] > 0 {
			w = w1
		}
		out[i] = m.carrier.Amplitude * math.Cos(w*grid.At(i))
	}
	return out
}
