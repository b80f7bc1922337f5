package spectral

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"
)

// BroadeningWindow returns the n-point line-broadening weights for a signal
// sampled at dt = 1/sw. lbHz is the added linewidth (FWHM) in Hz;
// gaussFraction in [0, 1] blends the exponential (Lorentzian) decay
// exp(-pi*lb*t) with the Gaussian decay exp(-(pi*lb*t)^2 / (4 ln 2)).
func BroadeningWindow(n int, sw, lbHz, gaussFraction float64) ([]float64, error) {
	if n <= 0 {
		return nil, fmt.Errorf("spectral: window size must be > 0: %d", n)
	}
	if sw <= 0 {
		return nil, fmt.Errorf("spectral: spectral width must be > 0: %f", sw)
	}
	if gaussFraction < 0 || gaussFraction > 1 {
		return nil, fmt.Errorf("spectral: gaussian fraction must be in [0,1]: %f", gaussFraction)
	}

	out := make([]float64, n)
	dt := 1 / sw
	for i := range out {
		x := math.Pi * lbHz * float64(i) * dt
		lorentz := math.Exp(-x)
		gauss := math.Exp(-x * x / (4 * math.Ln2))
		out[i] = (1-gaussFraction)*lorentz + gaussFraction*gauss
	}
	return out, nil
}

// Apodize multiplies re and im in place by window.
func Apodize(re, im, window []float64) error {
	if len(re) != len(window) || len(im) != len(window) {
		return fmt.Errorf("spectral: apodization length mismatch: %d/%d vs %d", len(re), len(im), len(window))
	}
	vecmath.MulBlockInPlace(re, window)
	vecmath.MulBlockInPlace(im, window)
	return nil
}

// ZeroFill returns copies of re and im extended with zeros to n samples.
// Signals already at least n samples long are copied unchanged.
func ZeroFill(re, im []float64, n int) (outRe, outIm []float64) {
	size := max(n, len(re))
	outRe = make([]float64, size)
	outIm = make([]float64, size)
	copy(outRe, re)
	copy(outIm, im)
	return outRe, outIm
}

// Magnitude returns sqrt(re^2 + im^2) per sample.
func Magnitude(re, im []float64) []float64 {
	if len(re) == 0 {
		return nil
	}
	out := make([]float64, len(re))
	vecmath.Magnitude(out, re, im)
	return out
}

// Power returns re^2 + im^2 per sample.
func Power(re, im []float64) []float64 {
	if len(re) == 0 {
		return nil
	}
	out := make([]float64, len(re))
	vecmath.Power(out, re, im)
	return out
}
