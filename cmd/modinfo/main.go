// Command modinfo runs a generate/modulate/demodulate pass over one or
// more modulation schemes and prints waveform statistics and recovery
// fidelity.
//
// Usage:
//
//	modinfo [flags] [scheme ...]
//
// Without arguments it runs all six schemes.
//
// Examples:
//
//	modinfo am
//	modinfo -signal square -freq 10 am fm
//	modinfo -carrier 100 -index 2 fm pm
//	modinfo -signal binary -freq 5 ask psk fsk
//	modinfo -list
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/cwbudde/modscope/dsp/core"
	"github.com/cwbudde/modscope/dsp/modem"
	"github.com/cwbudde/modscope/dsp/signal"
	"github.com/cwbudde/modscope/internal/webdemo"
	"github.com/cwbudde/modscope/measure/fidelity"
	statstime "github.com/cwbudde/modscope/stats/time"
)

func main() {
	sigName := flag.String("signal", "sine", "message waveform (sine, square, triangle, clock, binary)")
	freq := flag.Float64("freq", 5, "message frequency in Hz (bit rate for binary)")
	amp := flag.Float64("amp", 1, "message amplitude")
	offset := flag.Float64("offset", 0, "DC offset added to the message")
	rate := flag.Float64("rate", 1000, "sample rate in Hz")
	duration := flag.Float64("duration", 1, "capture duration in seconds")
	carrier := flag.Float64("carrier", 50, "carrier frequency in Hz")
	camp := flag.Float64("camp", 2, "carrier amplitude")
	index := flag.Float64("index", 0, "modulation index for FM/PM (0 uses the default)")
	deviation := flag.Float64("deviation", 0, "FSK frequency deviation in Hz (0 uses half the carrier)")
	bitrate := flag.Float64("bitrate", 0, "bit rate for digital schemes (0 uses the message frequency)")
	seed := flag.Int64("seed", 1, "seed for random binary patterns")
	list := flag.Bool("list", false, "list available schemes and signal types")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: modinfo [flags] [scheme ...]\n\n")
		fmt.Fprintf(os.Stderr, "Runs a generate/modulate/demodulate pass and prints statistics.\n")
		fmt.Fprintf(os.Stderr, "Without arguments, runs all schemes.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  modinfo am fm\n")
		fmt.Fprintf(os.Stderr, "  modinfo -signal binary -freq 5 ask psk fsk\n")
		fmt.Fprintf(os.Stderr, "  modinfo -carrier 100 -index 2 fm\n")
		fmt.Fprintf(os.Stderr, "  modinfo -list\n")
	}
	flag.Parse()

	if *list {
		printList()
		return
	}

	sigType, err := signal.ParseType(*sigName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	schemes := resolveSchemes(flag.Args())
	if len(schemes) == 0 {
		fmt.Fprintf(os.Stderr, "error: no matching schemes\n")
		os.Exit(1)
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Scheme\tSamples\tMsg RMS\tMod RMS\tMod Peak\tMod Freq [Hz]\tCorrelation\tBER\n")
	fmt.Fprintf(tw, "------\t-------\t-------\t-------\t--------\t-------------\t-----------\t---\n")

	for _, scheme := range schemes {
		row, err := runScheme(scheme, sigType, *freq, *amp, *offset, *rate, *duration,
			*carrier, *camp, *index, *deviation, *bitrate, *seed)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %s: %v\n", scheme, err)
			continue
		}
		fmt.Fprintln(tw, row)
	}
	if err := tw.Flush(); err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to flush output: %v\n", err)
	}
}

func printList() {
	fmt.Println("schemes:")
	for _, s := range modem.Schemes() {
		fmt.Printf("  %s\n", s)
	}
	fmt.Println("signal types:")
	for _, t := range signal.Types() {
		fmt.Printf("  %s\n", t)
	}
}

func resolveSchemes(names []string) []modem.Scheme {
	if len(names) == 0 {
		return modem.Schemes()
	}

	var result []modem.Scheme
	for _, name := range names {
		s, err := modem.ParseScheme(strings.ToLower(strings.TrimSpace(name)))
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: unknown scheme %q (use -list to see available)\n", name)
			continue
		}
		result = append(result, s)
	}
	return result
}

func runScheme(scheme modem.Scheme, sigType signal.Type,
	freq, amp, offset, rate, duration,
	carrier, camp, index, deviation, bitrate float64, seed int64,
) (string, error) {
	s, err := webdemo.NewSession(
		core.WithDuration(duration),
		core.WithSampleRate(rate),
	)
	if err != nil {
		return "", err
	}
	s.SetSeed(seed)

	if err := s.SetSignal(webdemo.SignalParams{
		Type:        sigType,
		FrequencyHz: freq,
		Amplitude:   amp,
		OffsetV:     offset,
	}); err != nil {
		return "", err
	}
	if err := s.SetCarrier(modem.CarrierConfig{
		FrequencyHz: carrier,
		Amplitude:   camp,
		Index:       index,
		DeviationHz: deviation,
		BitRateHz:   bitrate,
	}); err != nil {
		return "", err
	}
	if err := s.SetScheme(scheme); err != nil {
		return "", err
	}

	if err := s.Generate(); err != nil {
		return "", err
	}
	if err := s.Modulate(); err != nil {
		return "", err
	}
	if err := s.Demodulate(); err != nil {
		return "", err
	}

	msg := s.Message()
	mod := s.Modulated()
	rec := s.Recovered()

	msgStats := statstime.Calculate(msg, rate)
	modStats := statstime.Calculate(mod, rate)

	fid, err := fidelityColumns(scheme, msg, rec, freq, bitrate, rate)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%s\t%d\t%.4f\t%.4f\t%.4f\t%.2f\t%s",
		scheme,
		modStats.Length,
		msgStats.RMS,
		modStats.RMS,
		modStats.Peak,
		modStats.FrequencyHz,
		fid,
	), nil
}

// fidelityColumns renders the last two table cells: shape correlation
// for the analog schemes, correlation plus bit error rate for the
// digital ones.
func fidelityColumns(scheme modem.Scheme, msg, rec []float64, freq, bitrate, rate float64) (string, error) {
	corr, err := fidelity.Correlation(msg, rec)
	if err != nil {
		return "", err
	}

	if !scheme.Digital() {
		return fmt.Sprintf("%.4f\t-", corr), nil
	}

	if bitrate == 0 {
		bitrate = freq
	}
	spb := signal.SamplesPerBit(bitrate, rate)
	want, err := fidelity.SliceBits(msg, spb)
	if err != nil {
		return "", err
	}
	got, err := fidelity.SliceBits(rec, spb)
	if err != nil {
		return "", err
	}
	ber, err := fidelity.BitErrorRate(want, got)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%.4f\t%.4f", corr, ber), nil
}
