// Package modem implements the six modulation transform pairs of the
// oscilloscope engine: AM, FM and PM track the message continuously,
// ASK, PSK and FSK key a thresholded binary message onto the carrier.
//
// All transforms are pure functions over finite sample slices aligned
// with a [core.TimeGrid]; a call never retains references to its inputs
// or outputs. Demodulation is an approximate visualization aid, not a
// communications-grade receiver, but the digital schemes recover the
// exact bit sequence from noiseless synthetic input.
//
// # Usage
//
// Modulate a message and recover an estimate:
//
//	carrier := modem.CarrierConfig{FrequencyHz: 50, Amplitude: 2}
//	modulated, _ := modem.Modulate(message, carrier, modem.SchemeAM, grid)
//	estimate, _ := modem.Demodulate(modulated, carrier, modem.SchemeAM, grid)
//
// For repeated work with the same carrier, construct a Modulator or
// Demodulator once; the Demodulator reuses internal scratch buffers.
package modem
