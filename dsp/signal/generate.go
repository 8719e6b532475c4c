package signal

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/cwbudde/modscope/dsp/core"
)

// Type identifies a message waveform shape.
type Type int

// Supported message waveform shapes.
const (
	TypeSine Type = iota + 1
	TypeSquare
	TypeTriangle
	TypeClockPulse
	TypeBinary
)

// String returns the canonical lower-case name of the type.
func (t Type) String() string {
	switch t {
	case TypeSine:
		return "sine"
	case TypeSquare:
		return "square"
	case TypeTriangle:
		return "triangle"
	case TypeClockPulse:
		return "clock"
	case TypeBinary:
		return "binary"
	default:
		return fmt.Sprintf("Type(%d)", int(t))
	}
}

// ParseType resolves a waveform name as printed by String.
func ParseType(name string) (Type, error) {
	for _, t := range Types() {
		if t.String() == name {
			return t, nil
		}
	}
	return 0, fmt.Errorf("signal: unknown waveform type %q: %w", name, core.ErrInvalidParameter)
}

// Types lists all supported waveform types.
func Types() []Type {
	return []Type{TypeSine, TypeSquare, TypeTriangle, TypeClockPulse, TypeBinary}
}

// Generator creates deterministic message waveforms over a TimeGrid.
type Generator struct {
	seed int64
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeed sets the deterministic seed for binary patterns and noise.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.seed = seed
	}
}

// NewGenerator creates a configured signal generator.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{seed: 1}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	return g
}

// SetSeed replaces the deterministic seed.
func (g *Generator) SetSeed(seed int64) { g.seed = seed }

// Seed returns the current seed.
func (g *Generator) Seed() int64 { return g.seed }

// Generate produces the waveform of the given type. For TypeBinary the
// frequency is interpreted as the bit rate.
func (g *Generator) Generate(typ Type, freqHz, amplitude float64, grid core.TimeGrid) ([]float64, error) {
	switch typ {
	case TypeSine:
		return g.Sine(freqHz, amplitude, grid)
	case TypeSquare:
		return g.Square(freqHz, amplitude, grid)
	case TypeTriangle:
		return g.Triangle(freqHz, amplitude, grid)
	case TypeClockPulse:
		return g.ClockPulse(freqHz, amplitude, grid)
	case TypeBinary:
		return g.Binary(freqHz, amplitude, grid)
	default:
		return nil, fmt.Errorf("signal: unknown waveform type %d: %w", int(typ), core.ErrInvalidParameter)
	}
}

// Sine generates amplitude * sin(2*pi*freq*t).
func (g *Generator) Sine(freqHz, amplitude float64, grid core.TimeGrid) ([]float64, error) {
	if err := validateWave("sine", freqHz, amplitude, grid); err != nil {
		return nil, err
	}
	out := make([]float64, grid.Len())
	step := 2 * math.Pi * freqHz * grid.Dt()
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out, nil
}

// Square generates a bipolar square wave; sin(2*pi*freq*t) == 0 maps to +amplitude.
func (g *Generator) Square(freqHz, amplitude float64, grid core.TimeGrid) ([]float64, error) {
	if err := validateWave("square", freqHz, amplitude, grid); err != nil {
		return nil, err
	}
	out := make([]float64, grid.Len())
	step := 2 * math.Pi * freqHz * grid.Dt()
	for i := range out {
		if math.Sin(step*float64(i)) >= 0 {
			out[i] = amplitude
		} else {
			out[i] = -amplitude
		}
	}
	return out, nil
}

// Triangle generates a bipolar triangle wave with peaks at +/- amplitude.
func (g *Generator) Triangle(freqHz, amplitude float64, grid core.TimeGrid) ([]float64, error) {
	if err := validateWave("triangle", freqHz, amplitude, grid); err != nil {
		return nil, err
	}
	out := make([]float64, grid.Len())
	step := 2 * math.Pi * freqHz * grid.Dt()
	scale := 2 * amplitude / math.Pi
	for i := range out {
		out[i] = scale * math.Asin(math.Sin(step*float64(i)))
	}
	return out, nil
}

// ClockPulse generates a unipolar 50% duty pulse train in [0, amplitude].
func (g *Generator) ClockPulse(freqHz, amplitude float64, grid core.TimeGrid) ([]float64, error) {
	if err := validateWave("clock", freqHz, amplitude, grid); err != nil {
		return nil, err
	}
	out := make([]float64, grid.Len())
	step := 2 * math.Pi * freqHz * grid.Dt()
	for i := range out {
		if math.Sin(step*float64(i)) >= 0 {
			out[i] = amplitude
		}
	}
	return out, nil
}

// Binary expands a seeded pseudo-random bit pattern into a rectangular
// pulse train: one bit per round(sampleRate/bitRate) samples, bit 1 held
// at +amplitude and bit 0 at zero. Two calls with identical parameters
// and seed produce identical samples.
func (g *Generator) Binary(bitRateHz, amplitude float64, grid core.TimeGrid) ([]float64, error) {
	if err := validateWave("binary", bitRateHz, amplitude, grid); err != nil {
		return nil, err
	}

	spb := SamplesPerBit(bitRateHz, grid.SampleRate())
	bitCount := (grid.Len() + spb - 1) / spb
	bits := g.BitPattern(bitCount)

	out := make([]float64, grid.Len())
	for i := range out {
		if bits[i/spb] == 1 {
			out[i] = amplitude
		}
	}
	return out, nil
}

// BitPattern returns the first count bits of the seeded pattern used by Binary.
func (g *Generator) BitPattern(count int) []int {
	if count <= 0 {
		return nil
	}
	rng := rand.New(rand.NewSource(g.seed))
	bits := make([]int, count)
	for i := range bits {
		if rng.Float64() > 0.5 {
			bits[i] = 1
		}
	}
	return bits
}

// WhiteNoise generates deterministic white noise in [-amplitude, amplitude].
func (g *Generator) WhiteNoise(amplitude float64, grid core.TimeGrid) ([]float64, error) {
	if !grid.Valid() {
		return nil, fmt.Errorf("signal: noise needs a valid time grid: %w", core.ErrInvalidParameter)
	}
	if amplitude < 0 {
		return nil, fmt.Errorf("signal: noise amplitude must be >= 0: %g: %w", amplitude, core.ErrInvalidParameter)
	}
	out := make([]float64, grid.Len())
	rng := rand.New(rand.NewSource(g.seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out, nil
}

// SamplesPerBit returns the pulse width in samples for a bit rate, at least 1.
func SamplesPerBit(bitRateHz, sampleRate float64) int {
	spb := int(sampleRate/bitRateHz + 0.5)
	if spb < 1 {
		spb = 1
	}
	return spb
}

func validateWave(name string, freqHz, amplitude float64, grid core.TimeGrid) error {
	if amplitude <= 0 {
		return fmt.Errorf("signal: %s amplitude must be > 0: %g: %w", name, amplitude, core.ErrInvalidParameter)
	}
	if freqHz <= 0 {
		return fmt.Errorf("signal: %s frequency must be > 0: %g: %w", name, freqHz, core.ErrInvalidParameter)
	}
	if !grid.Valid() {
		return fmt.Errorf("signal: %s needs a time grid with at least 2 samples: %w", name, core.ErrInvalidParameter)
	}
	return nil
}
