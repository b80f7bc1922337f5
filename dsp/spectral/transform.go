package spectral

import (
	"fmt"
)

// Shift rotates x so that element 0 moves to index len(x)/2, mapping
// unshifted FFT bins to a centered spectrum. The result is a new slice.
func Shift(x []complex128) []complex128 {
	n := len(x)
	out := make([]complex128, n)
	h := n / 2
	for i, v := range x {
		out[(i+h)%n] = v
	}
	return out
}

// InverseShift undoes [Shift], also for odd lengths.
func InverseShift(x []complex128) []complex128 {
	n := len(x)
	out := make([]complex128, n)
	h := n / 2
	for i, v := range x {
		out[(i-h+n)%n] = v
	}
	return out
}

// Forward computes the centered spectrum of the complex signal re + i*im.
func Forward(re, im []float64) (outRe, outIm []float64, err error) {
	x, err := pack(re, im)
	if err != nil {
		return nil, nil, err
	}
	plan, err := newPlanner(len(x))
	if err != nil {
		return nil, nil, err
	}
	bins := make([]complex128, len(x))
	if err := plan.Forward(bins, x); err != nil {
		return nil, nil, fmt.Errorf("spectral: forward FFT failed: %w", err)
	}
	outRe, outIm = unpack(Shift(bins))
	return outRe, outIm, nil
}

// Inverse reconstructs the time signal from a centered spectrum produced by
// [Forward].
func Inverse(re, im []float64) (outRe, outIm []float64, err error) {
	x, err := pack(re, im)
	if err != nil {
		return nil, nil, err
	}
	plan, err := newPlanner(len(x))
	if err != nil {
		return nil, nil, err
	}
	signal := make([]complex128, len(x))
	if err := plan.Inverse(signal, InverseShift(x)); err != nil {
		return nil, nil, fmt.Errorf("spectral: inverse FFT failed: %w", err)
	}
	outRe, outIm = unpack(signal)
	return outRe, outIm, nil
}

func pack(re, im []float64) ([]complex128, error) {
	if len(re) == 0 {
		return nil, errEmptySignal
	}
	if len(re) != len(im) {
		return nil, fmt.Errorf("spectral: real/imaginary length mismatch: %d != %d", len(re), len(im))
	}
	out := make([]complex128, len(re))
	for i := range re {
		out[i] = complex(re[i], im[i])
	}
	return out, nil
}

func unpack(x []complex128) (re, im []float64) {
	re = make([]float64, len(x))
	im = make([]float64, len(x))
	for i, v := range x {
		re[i] = real(v)
		im[i] = imag(v)
	}
	return re, im
}
