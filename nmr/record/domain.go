package record

import "github.com/cwbudde/algo-nmr/dsp/spectral"

// TimeDomain is the FID view: complex samples on a time axis in seconds,
// t[i] = i / SW.
type TimeDomain struct {
	Real []float64
	Imag []float64
	Time []float64
	N    int
	SW   float64
}

// FrequencyDomain is the spectrum view: complex bins on a centered Hz axis
// spanning [-SW/2, +SW/2]. Ppm is nil unless a chemical-shift column has
// been derived.
type FrequencyDomain struct {
	Real []float64
	Imag []float64
	Hz   []float64
	Ppm  []float64
	N    int
	SW   float64
}

// HasShift reports whether the chemical-shift column is present.
func (f *FrequencyDomain) HasShift() bool {
	return f.Ppm != nil
}

// Magnitude returns |Real + i*Imag| per bin.
func (f *FrequencyDomain) Magnitude() []float64 {
	return spectral.Magnitude(f.Real, f.Imag)
}

// Peak describes the bin of largest magnitude.
type Peak struct {
	Index     int
	Hz        float64
	Ppm       float64
	HasPpm    bool
	Magnitude float64
}

// Peak returns the bin of largest magnitude. The first bin wins ties.
func (f *FrequencyDomain) Peak() Peak {
	mag := f.Magnitude()
	if len(mag) == 0 {
		return Peak{Index: -1}
	}
	best := 0
	for i, m := range mag {
		if m > mag[best] {
			best = i
		}
	}
	p := Peak{Index: best, Hz: f.Hz[best], Magnitude: mag[best]}
	if f.HasShift() {
		p.Ppm = f.Ppm[best]
		p.HasPpm = true
	}
	return p
}

// Raw is a capture with no domain interpretation beyond its three columns.
type Raw struct {
	Time []float64
	Real []float64
	Imag []float64
	N    int
}

func (t *TimeDomain) clone() *TimeDomain {
	if t == nil {
		return nil
	}
	c := *t
	c.Real = cloneFloats(t.Real)
	c.Imag = cloneFloats(t.Imag)
	c.Time = cloneFloats(t.Time)
	return &c
}

func (f *FrequencyDomain) clone() *FrequencyDomain {
	if f == nil {
		return nil
	}
	c := *f
	c.Real = cloneFloats(f.Real)
	c.Imag = cloneFloats(f.Imag)
	c.Hz = cloneFloats(f.Hz)
	c.Ppm = cloneFloats(f.Ppm)
	return &c
}

func (r *Raw) clone() *Raw {
	if r == nil {
		return nil
	}
	c := *r
	c.Time = cloneFloats(r.Time)
	c.Real = cloneFloats(r.Real)
	c.Imag = cloneFloats(r.Imag)
	return &c
}

func cloneFloats(x []float64) []float64 {
	if x == nil {
		return nil
	}
	out := make([]float64, len(x))
	copy(out, x)
	return out
}
