// Package webdemo holds the per-user session driving the modulation
// oscilloscope demo: current parameters, the derived waveforms, and the
// generate/modulate/demodulate/reset action sequence. The engine
// packages underneath stay stateless; every browser tab gets its own
// Session.
package webdemo

import (
	"fmt"

	"github.com/cwbudde/modscope/dsp/core"
	"github.com/cwbudde/modscope/dsp/modem"
	"github.com/cwbudde/modscope/dsp/signal"
	"github.com/cwbudde/modscope/dsp/spectrum"
)

// State is the session position in the action sequence.
type State int

// Session states.
const (
	StateIdle State = iota
	StateGenerated
	StateModulated
	StateDemodulated
)

// String returns a display name for the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateGenerated:
		return "generated"
	case StateModulated:
		return "modulated"
	case StateDemodulated:
		return "demodulated"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// SignalParams describes the message waveform. For binary signals the
// frequency is the bit rate. OffsetV is added after generation.
type SignalParams struct {
	Type        signal.Type
	FrequencyHz float64
	Amplitude   float64
	OffsetV     float64
}

// Session owns one user's parameters and derived waveforms.
type Session struct {
	cfg  core.ProcessorConfig
	grid core.TimeGrid
	gen  *signal.Generator

	sig     SignalParams
	carrier modem.CarrierConfig
	scheme  modem.Scheme

	state     State
	message   []float64
	modulated []float64
	recovered []float64
}

// NewSession creates a session with visualization-friendly defaults:
// a 5 Hz unit sine message and a 50 Hz AM carrier of amplitude 2.
func NewSession(opts ...core.ProcessorOption) (*Session, error) {
	cfg := core.ApplyProcessorOptions(opts...)
	grid, err := cfg.Grid()
	if err != nil {
		return nil, err
	}
	return &Session{
		cfg:  cfg,
		grid: grid,
		gen:  signal.NewGenerator(signal.WithSeed(1)),
		sig: SignalParams{
			Type:        signal.TypeSine,
			FrequencyHz: 5,
			Amplitude:   1,
		},
		carrier: modem.CarrierConfig{
			FrequencyHz: 50,
			Amplitude:   2,
		},
		scheme: modem.SchemeAM,
	}, nil
}

// State returns the current session state.
func (s *Session) State() State { return s.state }

// Scheme returns the selected modulation scheme.
func (s *Session) Scheme() modem.Scheme { return s.scheme }

// Signal returns the current message parameters.
func (s *Session) Signal() SignalParams { return s.sig }

// Carrier returns the current carrier parameters.
func (s *Session) Carrier() modem.CarrierConfig { return s.carrier }

// Grid returns the session time grid.
func (s *Session) Grid() core.TimeGrid { return s.grid }

// SetSignal updates the message parameters and resets the session.
func (s *Session) SetSignal(p SignalParams) error {
	if p.FrequencyHz <= 0 {
		return fmt.Errorf("webdemo: signal frequency must be > 0: %g: %w", p.FrequencyHz, core.ErrInvalidParameter)
	}
	if p.Amplitude <= 0 {
		return fmt.Errorf("webdemo: signal amplitude must be > 0: %g: %w", p.Amplitude, core.ErrInvalidParameter)
	}
	if _, err := signal.ParseType(p.Type.String()); err != nil {
		return err
	}
	s.Reset()
	s.sig = p
	return nil
}

// SetCarrier updates the carrier parameters and resets the session.
func (s *Session) SetCarrier(c modem.CarrierConfig) error {
	if err := c.Validate(); err != nil {
		return err
	}
	s.Reset()
	s.carrier = c
	return nil
}

// SetScheme updates the modulation scheme and resets the session.
func (s *Session) SetScheme(scheme modem.Scheme) error {
	if _, err := modem.ParseScheme(scheme.String()); err != nil {
		return err
	}
	s.Reset()
	s.scheme = scheme
	return nil
}

// SetTimebase rebuilds the time grid and resets the session.
func (s *Session) SetTimebase(durationSec, sampleRate float64) error {
	grid, err := core.NewTimeGrid(durationSec, sampleRate)
	if err != nil {
		return err
	}
	s.Reset()
	s.cfg.DurationSec = durationSec
	s.cfg.SampleRate = sampleRate
	s.grid = grid
	return nil
}

// SetSeed replaces the binary-pattern seed and resets the session.
func (s *Session) SetSeed(seed int64) {
	s.Reset()
	s.gen.SetSeed(seed)
}

// Generate produces the message waveform. Valid from the idle state only.
func (s *Session) Generate() error {
	if s.state != StateIdle {
		return fmt.Errorf("webdemo: generate requires the idle state, session is %s: %w", s.state, core.ErrInvalidState)
	}

	msg, err := s.gen.Generate(s.sig.Type, s.sig.FrequencyHz, s.sig.Amplitude, s.grid)
	if err != nil {
		return err
	}
	if s.sig.OffsetV != 0 {
		msg, err = signal.Offset(msg, s.sig.OffsetV)
		if err != nil {
			return err
		}
	}

	s.message = msg
	s.state = StateGenerated
	return nil
}

// Modulate produces the modulated waveform from the generated message.
func (s *Session) Modulate() error {
	if s.state != StateGenerated {
		return fmt.Errorf("webdemo: modulate requires a generated message, session is %s: %w", s.state, core.ErrInvalidState)
	}

	out, err := modem.Modulate(s.message, s.effectiveCarrier(), s.scheme, s.grid)
	if err != nil {
		return err
	}

	s.modulated = out
	s.state = StateModulated
	return nil
}

// Demodulate recovers a message estimate from the modulated waveform.
func (s *Session) Demodulate() error {
	if s.state != StateModulated {
		return fmt.Errorf("webdemo: demodulate requires a modulated waveform, session is %s: %w", s.state, core.ErrInvalidState)
	}

	out, err := modem.Demodulate(s.modulated, s.effectiveCarrier(), s.scheme, s.grid)
	if err != nil {
		return err
	}

	s.recovered = out
	s.state = StateDemodulated
	return nil
}

// Reset returns to the idle state and drops all derived waveforms.
func (s *Session) Reset() {
	s.message = nil
	s.modulated = nil
	s.recovered = nil
	s.state = StateIdle
}

// effectiveCarrier defaults the bit rate of a digital scheme to the
// message frequency, which is the bit rate of a binary message.
func (s *Session) effectiveCarrier() modem.CarrierConfig {
	c := s.carrier
	if s.scheme.Digital() && c.BitRateHz == 0 {
		c.BitRateHz = s.sig.FrequencyHz
	}
	return c
}

// Times returns a copy of the time axis.
func (s *Session) Times() []float64 { return s.grid.Times() }

// Message returns a copy of the generated message waveform, or nil.
func (s *Session) Message() []float64 { return copyWaveform(s.message) }

// Modulated returns a copy of the modulated waveform, or nil.
func (s *Session) Modulated() []float64 { return copyWaveform(s.modulated) }

// Recovered returns a copy of the demodulated estimate, or nil.
func (s *Session) Recovered() []float64 { return copyWaveform(s.recovered) }

// CarrierPreview renders the unmodulated carrier for display.
func (s *Session) CarrierPreview() ([]float64, error) {
	return s.effectiveCarrier().Waveform(s.grid)
}

// ModulatedSpectrum returns the single-sided magnitude spectrum of the
// modulated waveform for the spectrum view.
func (s *Session) ModulatedSpectrum() (freqs, mags []float64, err error) {
	if s.state != StateModulated && s.state != StateDemodulated {
		return nil, nil, fmt.Errorf("webdemo: spectrum requires a modulated waveform, session is %s: %w", s.state, core.ErrInvalidState)
	}
	return spectrum.MagnitudeSpectrum(s.modulated, s.grid.SampleRate())
}

func copyWaveform(src []float64) []float64 {
	if src == nil {
		return nil
	}
	out := make([]float64, len(src))
	core.CopyInto(out, src)
	return out
}
