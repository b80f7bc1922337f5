package testutil

import (
	"math"
	"math/rand"
)

// DecayingCosine generates an n-point complex FID with a single line at
// offsetHz, sampled at dt = 1/sw and decaying with time constant t2 seconds.
// A non-positive t2 disables the decay.
func DecayingCosine(offsetHz, sw, t2 float64, n int) (re, im []float64) {
	re = make([]float64, n)
	im = make([]float64, n)
	dt := 1 / sw
	for i := range re {
		t := float64(i) * dt
		amp := 1.0
		if t2 > 0 {
			amp = math.Exp(-t / t2)
		}
		phase := 2 * math.Pi * offsetHz * t
		re[i] = amp * math.Cos(phase)
		im[i] = amp * math.Sin(phase)
	}
	return re, im
}

// DeterministicNoise generates white noise with a fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}
