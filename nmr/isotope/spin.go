package isotope

import (
	"fmt"
	"strconv"
	"strings"
)

// Spin is a nuclear spin quantum number stored as a fraction.
type Spin struct {
	Num int
	Den int
}

// ParseSpin parses "1/2", "3/2" or whole numbers such as "1".
func ParseSpin(s string) (Spin, error) {
	s = strings.TrimSpace(s)
	num, den, found := strings.Cut(s, "/")
	n, err := strconv.Atoi(strings.TrimSpace(num))
	if err != nil || n < 0 {
		return Spin{}, fmt.Errorf("isotope: invalid spin %q", s)
	}
	if !found {
		return Spin{Num: n, Den: 1}, nil
	}
	d, err := strconv.Atoi(strings.TrimSpace(den))
	if err != nil || d <= 0 {
		return Spin{}, fmt.Errorf("isotope: invalid spin %q", s)
	}
	return Spin{Num: n, Den: d}, nil
}

// Float returns the spin as a floating-point number.
func (s Spin) Float() float64 {
	if s.Den == 0 {
		return 0
	}
	return float64(s.Num) / float64(s.Den)
}

// Quadrupolar reports whether the spin is at least 1.
func (s Spin) Quadrupolar() bool {
	return s.Den > 0 && s.Num >= s.Den
}

// String formats the spin as "n/d", or "n" for whole spins.
func (s Spin) String() string {
	if s.Den == 1 {
		return strconv.Itoa(s.Num)
	}
	return fmt.Sprintf("%d/%d", s.Num, s.Den)
}
