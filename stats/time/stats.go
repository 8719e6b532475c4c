// Package time computes the time-domain readouts shown in the
// oscilloscope measurement footer.
package time

import "math"

// Stats holds time-domain waveform statistics.
type Stats struct {
	Length        int
	DC            float64 // mean
	RMS           float64
	RMS_dB        float64
	Max           float64
	MaxPos        int
	Min           float64
	MinPos        int
	Peak          float64 // max(|max|, |min|)
	Peak_dB       float64
	Range         float64 // max - min
	CrestFactor   float64 // peak / RMS (linear)
	ZeroCrossings int
	FrequencyHz   float64 // zero-crossing frequency estimate
}

// ampTodB converts an amplitude value to decibels: 20 * log10(|value|).
// Returns -Inf for zero values.
func ampTodB(value float64) float64 {
	a := math.Abs(value)
	if a == 0 {
		return math.Inf(-1)
	}

	return 20 * math.Log10(a)
}

// emptyStats returns a zero-valued Stats with -Inf for all dB fields.
func emptyStats() Stats {
	return Stats{
		RMS_dB:  math.Inf(-1),
		Peak_dB: math.Inf(-1),
	}
}

// Calculate computes all statistics in a single pass. The sample rate is
// used only for the zero-crossing frequency estimate; pass 0 to skip it.
func Calculate(signal []float64, sampleRate float64) Stats {
	n := len(signal)
	if n == 0 {
		return emptyStats()
	}

	var (
		sum           float64
		sumSq         float64
		maxVal        = signal[0]
		maxPos        int
		minVal        = signal[0]
		minPos        int
		zeroCrossings int
	)

	for i, x := range signal {
		sum += x
		sumSq += x * x

		if x > maxVal {
			maxVal = x
			maxPos = i
		}

		if x < minVal {
			minVal = x
			minPos = i
		}

		if i > 0 && signal[i-1]*x < 0 {
			zeroCrossings++
		}
	}

	rms := math.Sqrt(sumSq / float64(n))
	peak := math.Max(math.Abs(maxVal), math.Abs(minVal))

	crest := 0.0
	if rms > 0 {
		crest = peak / rms
	}

	// A full signal period contains two zero crossings.
	freq := 0.0
	if sampleRate > 0 {
		freq = float64(zeroCrossings) * sampleRate / (2 * float64(n))
	}

	return Stats{
		Length:        n,
		DC:            sum / float64(n),
		RMS:           rms,
		RMS_dB:        ampTodB(rms),
		Max:           maxVal,
		MaxPos:        maxPos,
		Min:           minVal,
		MinPos:        minPos,
		Peak:          peak,
		Peak_dB:       ampTodB(peak),
		Range:         maxVal - minVal,
		CrestFactor:   crest,
		ZeroCrossings: zeroCrossings,
		FrequencyHz:   freq,
	}
}
