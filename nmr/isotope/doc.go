// Package isotope provides the per-isotope magnetic constants used for
// Larmor frequency and coupling calculations.
//
// A [Table] is built once, either from the bundled resource with [Default] or
// from a caller-supplied JSON document with [Load], and is read-only afterwards.
// It is safe for concurrent use without locking.
//
// The JSON layout maps element symbols to mass numbers to constants:
//
//	{"C": {"13": {"Gamma": 6.728284, "QMoment": 0, "Spin": "1/2", "NatAbundance": 1.07}}}
//
// Gamma is the gyromagnetic ratio in units of 1e7 rad/(s*T), QMoment the
// quadrupole moment in fm^2 and NatAbundance the natural abundance in percent.
package isotope
