package modem

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/modscope/dsp/core"
	"github.com/cwbudde/modscope/dsp/signal"
	"github.com/cwbudde/modscope/dsp/spectrum"
)

// Demodulator recovers an approximation of the message from a modulated
// waveform. Scratch buffers are reused across calls, so a Demodulator is
// not safe for concurrent use; outputs are always freshly allocated.
type Demodulator struct {
	carrier CarrierConfig
	inPhase []float64
	quadr   []float64
}

// NewDemodulator validates the carrier parameters and fills defaults.
func NewDemodulator(carrier CarrierConfig) (*Demodulator, error) {
	if err := carrier.Validate(); err != nil {
		return nil, err
	}
	return &Demodulator{carrier: carrier.normalized()}, nil
}

// Carrier returns the normalized carrier configuration.
func (d *Demodulator) Carrier() CarrierConfig { return d.carrier }

// Demodulate is a one-shot helper for a single recovery.
func Demodulate(modulated []float64, carrier CarrierConfig, scheme Scheme, grid core.TimeGrid) ([]float64, error) {
	dem, err := NewDemodulator(carrier)
	if err != nil {
		return nil, err
	}
	return dem.Demodulate(modulated, scheme, grid)
}

// Demodulate recovers a message estimate for the given scheme. Analog
// schemes return a zero-mean trace shaped like the message; digital
// schemes return a unit rectangular pulse train (bit 1 high, bit 0 low)
// framed by the carrier bit rate.
func (d *Demodulator) Demodulate(modulated []float64, scheme Scheme, grid core.TimeGrid) ([]float64, error) {
	if len(modulated) == 0 {
		return nil, fmt.Errorf("modem: demodulate input must not be empty: %w", core.ErrInvalidParameter)
	}
	if !grid.Valid() {
		return nil, fmt.Errorf("modem: demodulate needs a valid time grid: %w", core.ErrInvalidParameter)
	}

	n := min(len(modulated), grid.Len())
	s := modulated[:n]

	switch scheme {
	case SchemeAM:
		return d.demodulateAM(s, grid), nil
	case SchemeFM:
		return d.demodulateFM(s, grid), nil
	case SchemePM:
		return d.demodulatePM(s, grid), nil
	case SchemeASK, SchemePSK, SchemeFSK:
		bits, err := d.DetectBits(s, scheme, grid)
		if err != nil {
			return nil, err
		}
		return expandBits(bits, signal.SamplesPerBit(d.carrier.BitRateHz, grid.SampleRate()), n), nil
	default:
		return nil, fmt.Errorf("modem: unknown scheme %d: %w", int(scheme), core.ErrInvalidParameter)
	}
}

// demodulateAM performs envelope detection: rectify, smooth with a
// centered moving average spanning one carrier period, correct the
// rectification gain, and remove the DC contributed by the carrier.
func (d *Demodulator) demodulateAM(s []float64, grid core.TimeGrid) []float64 {
	d.inPhase = core.EnsureLen(d.inPhase, len(s))
	for i, v := range s {
		d.inPhase[i] = math.Abs(v)
	}

	win := d.smoothingWindow(grid)
	out := movingAverage(d.inPhase, win)

	// Mean of |cos| over a full period is 2/pi.
	for i := range out {
		out[i] *= math.Pi / 2
	}
	subtractMean(out)
	return out
}

// demodulateFM differentiates the unwrapped baseband phase and scales the
// instantaneous frequency offset back by the modulation index. The
// derivative amplifies the 2*fc mixing ripple that survives the first
// smoothing pass, so the discriminator output gets one more one-period
// average.
func (d *Demodulator) demodulateFM(s []float64, grid core.TimeGrid) []float64 {
	phase := d.basebandPhase(s, grid)

	out := make([]float64, len(phase))
	if len(out) < 2 {
		return out
	}

	scale := grid.SampleRate() / d.carrier.Index
	for i := 1; i < len(out)-1; i++ {
		out[i] = (phase[i+1] - phase[i-1]) / 2 * scale
	}
	out[0] = out[1]
	out[len(out)-1] = out[len(out)-2]
	return movingAverage(out, d.smoothingWindow(grid))
}

// demodulatePM reads the baseband phase directly, scaled back by the
// modulation index; the mean removes the unwrap ambiguity of 2*pi.
func (d *Demodulator) demodulatePM(s []float64, grid core.TimeGrid) []float64 {
	out := d.basebandPhase(s, grid)
	for i := range out {
		out[i] /= d.carrier.Index
	}
	subtractMean(out)
	return out
}

// basebandPhase mixes the signal against carrier quadrature references,
// low-passes the products over one carrier period, and returns the
// unwrapped phase of the resulting I/Q pair.
func (d *Demodulator) basebandPhase(s []float64, grid core.TimeGrid) []float64 {
	n := len(s)
	d.inPhase = core.EnsureLen(d.inPhase, n)
	d.quadr = core.EnsureLen(d.quadr, n)

	step := 2 * math.Pi * d.carrier.FrequencyHz * grid.Dt()
	for i, v := range s {
		ph := step * float64(i)
		d.inPhase[i] = v * math.Cos(ph)
		d.quadr[i] = -v * math.Sin(ph)
	}

	win := d.smoothingWindow(grid)
	iBar := movingAverage(d.inPhase, win)
	qBar := movingAverage(d.quadr, win)

	phase := make([]float64, n)
	for i := range phase {
		phase[i] = math.Atan2(qBar[i], iBar[i])
	}
	return spectrum.UnwrapPhase(phase)
}

// DetectBits recovers the transmitted bit sequence of a digital scheme by
// correlating each bit interval against reference carrier segments.
// Correlations are normalized per sample, so a trailing interval shorter
// than one full bit still decides like a whole one. On noiseless
// synthetic input the recovery is exact.
func (d *Demodulator) DetectBits(modulated []float64, scheme Scheme, grid core.TimeGrid) ([]int, error) {
	if !scheme.Digital() {
		return nil, fmt.Errorf("modem: bit detection needs a digital scheme, got %s: %w", scheme, core.ErrInvalidParameter)
	}
	if !grid.Valid() {
		return nil, fmt.Errorf("modem: bit detection needs a valid time grid: %w", core.ErrInvalidParameter)
	}
	if d.carrier.BitRateHz <= 0 {
		return nil, fmt.Errorf("modem: bit detection needs a bit rate > 0: %g: %w", d.carrier.BitRateHz, core.ErrInvalidParameter)
	}

	n := min(len(modulated), grid.Len())
	if n == 0 {
		return nil, fmt.Errorf("modem: bit detection input must not be empty: %w", core.ErrInvalidParameter)
	}
	s := modulated[:n]

	step := 2 * math.Pi * d.carrier.FrequencyHz * grid.Dt()
	ref0 := core.EnsureLen(d.inPhase, n)
	d.inPhase = ref0
	for i := range ref0 {
		ref0[i] = math.Cos(step * float64(i))
	}

	var ref1 []float64
	if scheme == SchemeFSK {
		step1 := 2 * math.Pi * (d.carrier.FrequencyHz + d.carrier.DeviationHz) * grid.Dt()
		ref1 = core.EnsureLen(d.quadr, n)
		d.quadr = ref1
		for i := range ref1 {
			ref1[i] = math.Cos(step1 * float64(i))
		}
	}

	spb := signal.SamplesPerBit(d.carrier.BitRateHz, grid.SampleRate())
	bitCount := (n + spb - 1) / spb
	bits := make([]int, bitCount)
	corr := make([]float64, bitCount)

	for k := range bits {
		lo := k * spb
		hi := min(lo+spb, n)
		seg := s[lo:hi]

		switch scheme {
		case SchemeASK:
			corr[k] = vecmath.DotProduct(seg, ref0[lo:hi]) / float64(len(seg))
		case SchemePSK:
			if vecmath.DotProduct(seg, ref0[lo:hi]) > 0 {
				bits[k] = 1
			}
		case SchemeFSK:
			c0 := math.Abs(vecmath.DotProduct(seg, ref0[lo:hi]))
			c1 := math.Abs(vecmath.DotProduct(seg, ref1[lo:hi]))
			if c1 > c0 {
				bits[k] = 1
			}
		}
	}

	if scheme == SchemeASK {
		maxCorr := 0.0
		for _, c := range corr {
			if c > maxCorr {
				maxCorr = c
			}
		}
		if maxCorr > 0 {
			for k, c := range corr {
				if c > maxCorr/2 {
					bits[k] = 1
				}
			}
		}
	}

	return bits, nil
}

// smoothingWindow sizes the moving average to one carrier period, which
// fully averages the rectification and mixing ripple at 2*fc.
func (d *Demodulator) smoothingWindow(grid core.TimeGrid) int {
	win := int(grid.SampleRate()/d.carrier.FrequencyHz + 0.5)
	if win < 1 {
		win = 1
	}
	if win > grid.Len() {
		win = grid.Len()
	}
	return win
}

// movingAverage applies a centered moving average with shrinking windows
// at the block edges, using a prefix sum for O(n) evaluation.
func movingAverage(x []float64, win int) []float64 {
	n := len(x)
	out := make([]float64, n)
	if n == 0 {
		return out
	}
	if win < 1 {
		win = 1
	}

	prefix := make([]float64, n+1)
	for i, v := range x {
		prefix[i+1] = prefix[i] + v
	}

	half := win / 2
	for i := range out {
		lo := max(i-half, 0)
		hi := min(i+half, n-1)
		out[i] = (prefix[hi+1] - prefix[lo]) / float64(hi-lo+1)
	}
	return out
}

func subtractMean(x []float64) {
	if len(x) == 0 {
		return
	}
	mean := 0.0
	for _, v := range x {
		mean += v
	}
	mean /= float64(len(x))
	for i := range x {
		x[i] -= mean
	}
}

// expandBits renders a recovered bit sequence back into a unit-amplitude
// rectangular pulse train of length n.
func expandBits(bits []int, spb, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		k := i / spb
		if k < len(bits) && bits[k] == 1 {
			out[i] = 1
		}
	}
	return out
}
