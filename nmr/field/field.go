// Package field parses magnetic field strings such as "9.4T" or "400MHz".
//
// The grammar is
//
//	field     = [ws] magnitude [ws] unit [ws]
//	magnitude = [sign] digits [ "." [digits] ] | [sign] "." digits
//	unit      = "T" | "MHz"            (case-insensitive)
//
// A field given in MHz is the proton resonance frequency at that field.
package field

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/cwbudde/algo-nmr/nmr"
)

// Unit tags the meaning of a field magnitude.
type Unit int

const (
	// Tesla is the flux density B0.
	Tesla Unit = iota + 1
	// ProtonMHz is the 1H resonance frequency at B0.
	ProtonMHz
)

// String returns the canonical spelling of the unit.
func (u Unit) String() string {
	switch u {
	case Tesla:
		return "T"
	case ProtonMHz:
		return "MHz"
	default:
		return fmt.Sprintf("Unit(%d)", int(u))
	}
}

// Spec is a parsed magnetic field.
type Spec struct {
	Magnitude float64
	Unit      Unit
}

// String renders the field in the same notation Parse accepts.
func (s Spec) String() string {
	return strconv.FormatFloat(s.Magnitude, 'f', -1, 64) + s.Unit.String()
}

// InTesla returns a field of b tesla.
func InTesla(b float64) Spec {
	return Spec{Magnitude: b, Unit: Tesla}
}

// InProtonMHz returns a field given by its 1H frequency in MHz.
func InProtonMHz(mhz float64) Spec {
	return Spec{Magnitude: mhz, Unit: ProtonMHz}
}

// Parse parses a field string. It reports every problem found: a missing
// numeric prefix wraps [nmr.ErrInvalidFieldMagnitude], a suffix other than
// T or MHz wraps [nmr.ErrInvalidFieldUnit], and both are joined when both apply.
func Parse(text string) (Spec, error) {
	s := strings.TrimSpace(text)
	numEnd := scanMagnitude(s)

	var errs []error
	var magnitude float64
	if numEnd == 0 {
		errs = append(errs, fmt.Errorf("field: %q has no numeric magnitude: %w", text, nmr.ErrInvalidFieldMagnitude))
	} else {
		v, err := strconv.ParseFloat(s[:numEnd], 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("field: %q: %w", text, nmr.ErrInvalidFieldMagnitude))
		}
		magnitude = v
	}

	unit, err := parseUnit(strings.TrimSpace(s[numEnd:]))
	if err != nil {
		errs = append(errs, fmt.Errorf("field: %q: %w", text, err))
	}

	if len(errs) > 0 {
		return Spec{}, errors.Join(errs...)
	}
	return Spec{Magnitude: magnitude, Unit: unit}, nil
}

// MustParse is like Parse but panics on error. It is intended for constants
// in tests and examples.
func MustParse(text string) Spec {
	s, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return s
}

// scanMagnitude returns the length of the longest numeric prefix of s, or 0
// when s does not start with a number.
func scanMagnitude(s string) int {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	digits := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		j := i + 1
		frac := 0
		for j < len(s) && s[j] >= '0' && s[j] <= '9' {
			j++
			frac++
		}
		if digits+frac > 0 {
			i = j
			digits += frac
		}
	}
	if digits == 0 {
		return 0
	}
	return i
}

func parseUnit(suffix string) (Unit, error) {
	if suffix == "" {
		return 0, fmt.Errorf("missing unit: %w", nmr.ErrInvalidFieldUnit)
	}
	for _, r := range suffix {
		if !unicode.IsLetter(r) {
			return 0, fmt.Errorf("unit %q: %w", suffix, nmr.ErrInvalidFieldUnit)
		}
	}
	switch strings.ToLower(suffix) {
	case "t":
		return Tesla, nil
	case "mhz":
		return ProtonMHz, nil
	default:
		return 0, fmt.Errorf("unit %q must be T or MHz: %w", suffix, nmr.ErrInvalidFieldUnit)
	}
}
