package core

import "errors"

// Errors shared by all engine packages.
var (
	// ErrInvalidParameter marks non-positive or out-of-range numeric input.
	ErrInvalidParameter = errors.New("core: invalid parameter")

	// ErrInvalidState marks a session action requested out of sequence.
	ErrInvalidState = errors.New("core: invalid state")

	// ErrNonFinite marks a computed waveform containing NaN or Inf samples.
	ErrNonFinite = errors.New("core: non-finite sample")
)
