package webdemo

import (
	"errors"
	"testing"

	"github.com/cwbudde/modscope/dsp/core"
	"github.com/cwbudde/modscope/dsp/modem"
	"github.com/cwbudde/modscope/dsp/signal"
	"github.com/cwbudde/modscope/measure/fidelity"
)

func newTestSession(t *testing.T) *Session {
	t.Helper()
	s, err := NewSession()
	if err != nil {
		t.Fatalf("NewSession() error = %v", err)
	}
	return s
}

func TestSessionDefaults(t *testing.T) {
	s := newTestSession(t)

	if s.State() != StateIdle {
		t.Errorf("State() = %v, want idle", s.State())
	}
	if s.Scheme() != modem.SchemeAM {
		t.Errorf("Scheme() = %v, want am", s.Scheme())
	}
	if got := s.Signal(); got.Type != signal.TypeSine || got.FrequencyHz != 5 || got.Amplitude != 1 {
		t.Errorf("Signal() = %+v, want 5 Hz unit sine", got)
	}
	if got := s.Carrier(); got.FrequencyHz != 50 || got.Amplitude != 2 {
		t.Errorf("Carrier() = %+v, want 50 Hz amplitude 2", got)
	}
	if s.Grid().Len() != 1000 {
		t.Errorf("Grid().Len() = %d, want 1000", s.Grid().Len())
	}
}

func TestSessionActionSequence(t *testing.T) {
	s := newTestSession(t)

	if err := s.Generate(); err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if s.State() != StateGenerated {
		t.Fatalf("State() = %v after generate, want generated", s.State())
	}
	if len(s.Message()) != 1000 {
		t.Fatalf("Message() length = %d, want 1000", len(s.Message()))
	}

	if err := s.Modulate(); err != nil {
		t.Fatalf("Modulate() error = %v", err)
	}
	if s.State() != StateModulated {
		t.Fatalf("State() = %v after modulate, want modulated", s.State())
	}

	if err := s.Demodulate(); err != nil {
		t.Fatalf("Demodulate() error = %v", err)
	}
	if s.State() != StateDemodulated {
		t.Fatalf("State() = %v after demodulate, want demodulated", s.State())
	}

	corr, err := fidelity.Correlation(s.Message(), s.Recovered())
	if err != nil {
		t.Fatalf("Correlation() error = %v", err)
	}
	if corr < 0.95 {
		t.Errorf("envelope correlation = %v, want >= 0.95", corr)
	}
}

func TestSessionOrderEnforced(t *testing.T) {
	s := newTestSession(t)

	if err := s.Modulate(); !errors.Is(err, core.ErrInvalidState) {
		t.Errorf("Modulate() from idle error = %v, want ErrInvalidState", err)
	}
	if err := s.Demodulate(); !errors.Is(err, core.ErrInvalidState) {
		t.Errorf("Demodulate() from idle error = %v, want ErrInvalidState", err)
	}

	if err := s.Generate(); err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if err := s.Generate(); !errors.Is(err, core.ErrInvalidState) {
		t.Errorf("second Generate() error = %v, want ErrInvalidState", err)
	}
	if err := s.Demodulate(); !errors.Is(err, core.ErrInvalidState) {
		t.Errorf("Demodulate() before modulate error = %v, want ErrInvalidState", err)
	}
}

func TestSessionResetDropsWaveforms(t *testing.T) {
	s := newTestSession(t)

	if err := s.Generate(); err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if err := s.Modulate(); err != nil {
		t.Fatalf("Modulate() error = %v", err)
	}

	s.Reset()

	if s.State() != StateIdle {
		t.Errorf("State() = %v after reset, want idle", s.State())
	}
	if s.Message() != nil || s.Modulated() != nil || s.Recovered() != nil {
		t.Error("waveforms should be nil after reset")
	}

	// The sequence restarts from scratch after a reset.
	if err := s.Generate(); err != nil {
		t.Errorf("Generate() after reset error = %v", err)
	}
}

func TestSessionSettersReset(t *testing.T) {
	s := newTestSession(t)
	if err := s.Generate(); err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if err := s.SetScheme(modem.SchemeFM); err != nil {
		t.Fatalf("SetScheme() error = %v", err)
	}
	if s.State() != StateIdle {
		t.Errorf("State() = %v after SetScheme, want idle", s.State())
	}
	if s.Scheme() != modem.SchemeFM {
		t.Errorf("Scheme() = %v, want fm", s.Scheme())
	}

	if err := s.Generate(); err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if err := s.SetSignal(SignalParams{Type: signal.TypeSquare, FrequencyHz: 10, Amplitude: 2}); err != nil {
		t.Fatalf("SetSignal() error = %v", err)
	}
	if s.State() != StateIdle {
		t.Errorf("State() = %v after SetSignal, want idle", s.State())
	}
}

func TestSessionSetterValidation(t *testing.T) {
	s := newTestSession(t)

	if err := s.SetSignal(SignalParams{Type: signal.TypeSine, FrequencyHz: 0, Amplitude: 1}); !errors.Is(err, core.ErrInvalidParameter) {
		t.Errorf("SetSignal(zero freq) error = %v, want ErrInvalidParameter", err)
	}
	if err := s.SetSignal(SignalParams{Type: signal.TypeSine, FrequencyHz: 5, Amplitude: -1}); !errors.Is(err, core.ErrInvalidParameter) {
		t.Errorf("SetSignal(negative amp) error = %v, want ErrInvalidParameter", err)
	}
	if err := s.SetCarrier(modem.CarrierConfig{FrequencyHz: -1, Amplitude: 1}); !errors.Is(err, core.ErrInvalidParameter) {
		t.Errorf("SetCarrier(negative freq) error = %v, want ErrInvalidParameter", err)
	}
	if err := s.SetTimebase(0, 1000); !errors.Is(err, core.ErrInvalidParameter) {
		t.Errorf("SetTimebase(zero duration) error = %v, want ErrInvalidParameter", err)
	}
}

func TestSessionTimebase(t *testing.T) {
	s := newTestSession(t)

	if err := s.SetTimebase(2, 500); err != nil {
		t.Fatalf("SetTimebase() error = %v", err)
	}
	if s.Grid().Len() != 1000 {
		t.Errorf("Grid().Len() = %d, want 1000", s.Grid().Len())
	}
	if s.Grid().SampleRate() != 500 {
		t.Errorf("Grid().SampleRate() = %v, want 500", s.Grid().SampleRate())
	}
	if got := len(s.Times()); got != 1000 {
		t.Errorf("Times() length = %d, want 1000", got)
	}
}

func TestSessionOffsetApplied(t *testing.T) {
	s := newTestSession(t)
	if err := s.SetSignal(SignalParams{Type: signal.TypeSine, FrequencyHz: 5, Amplitude: 1, OffsetV: 2}); err != nil {
		t.Fatalf("SetSignal() error = %v", err)
	}
	if err := s.Generate(); err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	msg := s.Message()
	sum := 0.0
	for _, v := range msg {
		sum += v
	}
	mean := sum / float64(len(msg))
	if mean < 1.9 || mean > 2.1 {
		t.Errorf("message mean = %v, want ~2 with offset", mean)
	}
}

func TestSessionDigitalDefaultsBitRate(t *testing.T) {
	s := newTestSession(t)

	if err := s.SetSignal(SignalParams{Type: signal.TypeBinary, FrequencyHz: 5, Amplitude: 1}); err != nil {
		t.Fatalf("SetSignal() error = %v", err)
	}
	if err := s.SetScheme(modem.SchemePSK); err != nil {
		t.Fatalf("SetScheme() error = %v", err)
	}

	if err := s.Generate(); err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if err := s.Modulate(); err != nil {
		t.Fatalf("Modulate() error = %v", err)
	}
	if err := s.Demodulate(); err != nil {
		t.Fatalf("Demodulate() error = %v", err)
	}

	spb := signal.SamplesPerBit(5, s.Grid().SampleRate())
	wantBits, err := fidelity.SliceBits(s.Message(), spb)
	if err != nil {
		t.Fatalf("SliceBits(message) error = %v", err)
	}
	gotBits, err := fidelity.SliceBits(s.Recovered(), spb)
	if err != nil {
		t.Fatalf("SliceBits(recovered) error = %v", err)
	}
	ber, err := fidelity.BitErrorRate(wantBits, gotBits)
	if err != nil {
		t.Fatalf("BitErrorRate() error = %v", err)
	}
	if ber != 0 {
		t.Errorf("bit error rate = %v, want 0", ber)
	}
}

func TestSessionSeedDeterminism(t *testing.T) {
	a := newTestSession(t)
	b := newTestSession(t)
	for _, s := range []*Session{a, b} {
		if err := s.SetSignal(SignalParams{Type: signal.TypeBinary, FrequencyHz: 5, Amplitude: 1}); err != nil {
			t.Fatalf("SetSignal() error = %v", err)
		}
		s.SetSeed(42)
		if err := s.Generate(); err != nil {
			t.Fatalf("Generate() error = %v", err)
		}
	}

	ma, mb := a.Message(), b.Message()
	for i := range ma {
		if ma[i] != mb[i] {
			t.Fatalf("messages differ at %d with the same seed", i)
		}
	}
}

func TestSessionSpectrum(t *testing.T) {
	s := newTestSession(t)

	if _, _, err := s.ModulatedSpectrum(); !errors.Is(err, core.ErrInvalidState) {
		t.Fatalf("ModulatedSpectrum() from idle error = %v, want ErrInvalidState", err)
	}

	if err := s.Generate(); err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if err := s.Modulate(); err != nil {
		t.Fatalf("Modulate() error = %v", err)
	}

	freqs, mags, err := s.ModulatedSpectrum()
	if err != nil {
		t.Fatalf("ModulatedSpectrum() error = %v", err)
	}
	if len(freqs) == 0 || len(freqs) != len(mags) {
		t.Fatalf("spectrum lengths: freqs %d, mags %d", len(freqs), len(mags))
	}

	peak := 0
	for i := 1; i < len(mags); i++ {
		if mags[i] > mags[peak] {
			peak = i
		}
	}
	// AM concentrates energy at the 50 Hz carrier.
	if freqs[peak] < 45 || freqs[peak] > 55 {
		t.Errorf("spectrum peak at %v Hz, want near 50", freqs[peak])
	}
}

func TestSessionCarrierPreview(t *testing.T) {
	s := newTestSession(t)

	wave, err := s.CarrierPreview()
	if err != nil {
		t.Fatalf("CarrierPreview() error = %v", err)
	}
	if len(wave) != 1000 {
		t.Fatalf("preview length = %d, want 1000", len(wave))
	}
	if wave[0] != 2 {
		t.Errorf("preview[0] = %v, want carrier amplitude 2", wave[0])
	}
}
