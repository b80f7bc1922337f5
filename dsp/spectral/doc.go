// Package spectral implements the centered discrete Fourier transform used to
// move NMR signals between the time domain (FID) and the frequency domain (SPE),
// together with the matching sample axes and time-domain apodization.
//
// The forward transform is an FFT followed by a circular shift that puts the
// zero frequency in the middle of the output; the inverse undoes the shift and
// applies the normalized inverse FFT, so Inverse(Forward(x)) reproduces x up to
// rounding for every length N >= 1.
//
// Power-of-two sizes run through algo-fft plans. Sizes the planner rejects fall
// back to gonum's mixed-radix FFT.
package spectral
