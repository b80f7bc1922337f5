package simp

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-nmr/nmr"
)

// Format tags a file layout.
type Format int

const (
	// FID is a SIMP file holding a time-domain signal.
	FID Format = iota + 1
	// SPE is a SIMP file holding a spectrum.
	SPE
	// XREIM is the headerless time/real/imaginary triple layout.
	XREIM
	// CSV is the two-column export. It is write-only.
	CSV
)

func (f Format) String() string {
	switch f {
	case FID:
		return "fid"
	case SPE:
		return "spe"
	case XREIM:
		return "xreim"
	case CSV:
		return "csv"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// ParseFormat maps a case-insensitive tag ("fid", "spe", "xreim", "csv") to
// a Format.
func ParseFormat(tag string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(tag)) {
	case "fid":
		return FID, nil
	case "spe":
		return SPE, nil
	case "xreim":
		return XREIM, nil
	case "csv":
		return CSV, nil
	default:
		return 0, fmt.Errorf("simp: format %q: %w", tag, nmr.ErrUnsupportedFormat)
	}
}

// FormatFloat renders v with the fewest digits that parse back to v. Decimal
// exponents in [-4, 16) use plain notation with at least one fractional
// digit; others use exponent notation, e.g. "1e+16" or "2.5e-07".
func FormatFloat(v float64) string {
	switch {
	case math.IsNaN(v):
		return "nan"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	case v == 0:
		if math.Signbit(v) {
			return "-0.0"
		}
		return "0.0"
	}

	sci := strconv.FormatFloat(v, 'e', -1, 64)
	exp, err := strconv.Atoi(sci[strings.IndexByte(sci, 'e')+1:])
	if err != nil || exp < -4 || exp >= 16 {
		return sci
	}
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsRune(s, '.') {
		s += ".0"
	}
	return s
}
