package isotope

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/cwbudde/algo-nmr/nmr"
)

// ParseNucleus splits a nucleus designator such as "13C" into its element
// symbol and mass number. Letters are case-insensitive; "13c" and "C13" are
// both accepted and the element is returned in canonical case ("Cl", not "CL").
func ParseNucleus(s string) (element string, massNumber int, err error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", 0, fmt.Errorf("isotope: empty nucleus: %w", nmr.ErrNucleusNotFound)
	}

	var digits, letters string
	switch {
	case unicode.IsDigit(rune(s[0])):
		i := strings.IndexFunc(s, func(r rune) bool { return !unicode.IsDigit(r) })
		if i < 0 {
			return "", 0, fmt.Errorf("isotope: nucleus %q has no element: %w", s, nmr.ErrNucleusNotFound)
		}
		digits, letters = s[:i], s[i:]
	case unicode.IsLetter(rune(s[0])):
		i := strings.IndexFunc(s, func(r rune) bool { return !unicode.IsLetter(r) })
		if i < 0 {
			return "", 0, fmt.Errorf("isotope: nucleus %q has no mass number: %w", s, nmr.ErrNucleusNotFound)
		}
		letters, digits = s[:i], s[i:]
	default:
		return "", 0, fmt.Errorf("isotope: malformed nucleus %q: %w", s, nmr.ErrNucleusNotFound)
	}

	if !allOf(digits, unicode.IsDigit) || !allOf(letters, unicode.IsLetter) {
		return "", 0, fmt.Errorf("isotope: malformed nucleus %q: %w", s, nmr.ErrNucleusNotFound)
	}

	mass, err := strconv.Atoi(digits)
	if err != nil || mass <= 0 {
		return "", 0, fmt.Errorf("isotope: invalid mass number in %q: %w", s, nmr.ErrNucleusNotFound)
	}

	return CanonicalElement(letters), mass, nil
}

// CanonicalElement returns the element symbol with an upper-case first
// letter and lower-case remainder.
func CanonicalElement(symbol string) string {
	symbol = strings.TrimSpace(symbol)
	if symbol == "" {
		return ""
	}
	return strings.ToUpper(symbol[:1]) + strings.ToLower(symbol[1:])
}

func allOf(s string, pred func(rune) bool) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !pred(r) {
			return false
		}
	}
	return true
}
