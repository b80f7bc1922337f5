package shift

import "github.com/cwbudde/algo-nmr/nmr/field"

// HzToPpm converts frequency offsets to chemical shifts: ppm[i] = hz[i] / |nu0|,
// with nu0 the nucleus reference frequency in MHz.
func (c *Converter) HzToPpm(hz []float64, b0 field.Spec, nucleus string) ([]float64, error) {
	ref, err := c.ReferenceMHz(b0, nucleus)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(hz))
	for i, v := range hz {
		out[i] = v / ref
	}
	return out, nil
}

// PpmToHz is the inverse of HzToPpm: hz[i] = ppm[i] * |nu0|.
func (c *Converter) PpmToHz(ppm []float64, b0 field.Spec, nucleus string) ([]float64, error) {
	ref, err := c.ReferenceMHz(b0, nucleus)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(ppm))
	for i, v := range ppm {
		out[i] = v * ref
	}
	return out, nil
}
