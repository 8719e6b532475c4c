package modem

import (
	"fmt"
	"math"

	"github.com/cwbudde/modscope/dsp/core"
)

// CarrierConfig holds the carrier parameters shared by modulation and
// demodulation. Index and DeviationHz are scheme-dependent: Index scales
// the FM integral and the PM phase offset, DeviationHz is the FSK tone
// spacing, BitRateHz frames the bit intervals of the digital schemes.
type CarrierConfig struct {
	FrequencyHz float64
	Amplitude   float64
	Index       float64
	DeviationHz float64
	BitRateHz   float64
}

// Validate checks the numeric ranges of the explicitly set fields.
func (c CarrierConfig) Validate() error {
	if c.FrequencyHz <= 0 {
		return fmt.Errorf("modem: carrier frequency must be > 0: %g: %w", c.FrequencyHz, core.ErrInvalidParameter)
	}
	if c.Amplitude <= 0 {
		return fmt.Errorf("modem: carrier amplitude must be > 0: %g: %w", c.Amplitude, core.ErrInvalidParameter)
	}
	if c.Index < 0 {
		return fmt.Errorf("modem: modulation index must be >= 0: %g: %w", c.Index, core.ErrInvalidParameter)
	}
	if c.DeviationHz < 0 {
		return fmt.Errorf("modem: frequency deviation must be >= 0: %g: %w", c.DeviationHz, core.ErrInvalidParameter)
	}
	if c.BitRateHz < 0 {
		return fmt.Errorf("modem: bit rate must be >= 0: %g: %w", c.BitRateHz, core.ErrInvalidParameter)
	}
	return nil
}

// normalized fills scheme-dependent defaults: unit modulation index and
// an FSK tone spacing of half the carrier frequency.
func (c CarrierConfig) normalized() CarrierConfig {
	if c.Index == 0 {
		c.Index = 1
	}
	if c.DeviationHz == 0 {
		c.DeviationHz = c.FrequencyHz / 2
	}
	return c
}

// Waveform renders the unmodulated carrier Ac*cos(2*pi*fc*t) over the
// grid, for display next to the message and modulated traces.
func (c CarrierConfig) Waveform(grid core.TimeGrid) ([]float64, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if !grid.Valid() {
		return nil, fmt.Errorf("modem: carrier waveform needs a valid time grid: %w", core.ErrInvalidParameter)
	}
	out := make([]float64, grid.Len())
	step := 2 * math.Pi * c.FrequencyHz * grid.Dt()
	for i := range out {
		out[i] = c.Amplitude * math.Cos(step*float64(i))
	}
	return out, nil
}
