// Package nmr holds the error kinds shared by the NMR record packages.
//
// The sub-packages cover the isotope table ([github.com/cwbudde/algo-nmr/nmr/isotope]),
// magnetic field strings ([github.com/cwbudde/algo-nmr/nmr/field]), Larmor frequency
// and chemical-shift conversion ([github.com/cwbudde/algo-nmr/nmr/shift]), the lazily
// converting signal container ([github.com/cwbudde/algo-nmr/nmr/record]) and the
// summation of spectra ([github.com/cwbudde/algo-nmr/nmr/combine]).
//
// Every failure returned by those packages wraps one of the sentinels below, so
// callers classify errors with [errors.Is] or [Code].
package nmr
