package spectral

// Linspace returns n evenly spaced values from start to stop inclusive.
// For n == 1 it returns [start].
func Linspace(start, stop float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	out := make([]float64, n)
	if n == 1 {
		out[0] = start
		return out
	}
	step := (stop - start) / float64(n-1)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	out[n-1] = stop
	return out
}

// FrequencyAxis returns the n-point offset axis in Hz spanning
// [-sw/2, +sw/2].
func FrequencyAxis(n int, sw float64) []float64 {
	return Linspace(-sw/2, sw/2, n)
}

// TimeAxis returns the n-point sampling times in seconds: t[i] = i/sw.
func TimeAxis(n int, sw float64) []float64 {
	if n <= 0 {
		return nil
	}
	out := make([]float64, n)
	dt := 1 / sw
	for i := range out {
		out[i] = float64(i) * dt
	}
	return out
}
