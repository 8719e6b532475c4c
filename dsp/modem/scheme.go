package modem

import (
	"fmt"

	"github.com/cwbudde/modscope/dsp/core"
)

// Scheme selects one of the six modulation transform pairs. The set is
// closed: every Scheme has exactly one modulator and one demodulator.
type Scheme int

// Supported modulation schemes.
const (
	SchemeAM Scheme = iota + 1
	SchemeFM
	SchemePM
	SchemeASK
	SchemePSK
	SchemeFSK
)

// String returns the canonical lower-case name of the scheme.
func (s Scheme) String() string {
	switch s {
	case SchemeAM:
		return "am"
	case SchemeFM:
		return "fm"
	case SchemePM:
		return "pm"
	case SchemeASK:
		return "ask"
	case SchemePSK:
		return "psk"
	case SchemeFSK:
		return "fsk"
	default:
		return fmt.Sprintf("Scheme(%d)", int(s))
	}
}

// Digital reports whether the scheme keys a binary message per bit
// rather than tracking the message continuously.
func (s Scheme) Digital() bool {
	switch s {
	case SchemeASK, SchemePSK, SchemeFSK:
		return true
	default:
		return false
	}
}

// ParseScheme resolves a scheme name as printed by String.
func ParseScheme(name string) (Scheme, error) {
	for _, s := range Schemes() {
		if s.String() == name {
			return s, nil
		}
	}
	return 0, fmt.Errorf("modem: unknown scheme %q: %w", name, core.ErrInvalidParameter)
}

// Schemes lists all supported schemes.
func Schemes() []Scheme {
	return []Scheme{SchemeAM, SchemeFM, SchemePM, SchemeASK, SchemePSK, SchemeFSK}
}
