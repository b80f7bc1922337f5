// Package shift converts between frequencies in Hz and chemical shifts in ppm.
//
// Nucleus resonance frequencies follow from the proton frequency scaled by
// the ratio of gyromagnetic ratios, gamma_X / gamma_1H. One ppm is one Hz per
// MHz of the nucleus reference frequency.
package shift

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-nmr/nmr"
	"github.com/cwbudde/algo-nmr/nmr/field"
	"github.com/cwbudde/algo-nmr/nmr/isotope"
)

// Converter computes Larmor frequencies and shift scales from an isotope table.
// It holds no mutable state and is safe for concurrent use.
type Converter struct {
	table *isotope.Table
}

// NewConverter returns a converter backed by table.
func NewConverter(table *isotope.Table) *Converter {
	return &Converter{table: table}
}

// DefaultConverter returns a converter backed by [isotope.Default].
func DefaultConverter() (*Converter, error) {
	table, err := isotope.Default()
	if err != nil {
		return nil, err
	}
	return NewConverter(table), nil
}

// Table returns the isotope table backing c.
func (c *Converter) Table() *isotope.Table {
	return c.table
}

// ProtonMHz returns the 1H resonance frequency in MHz at the given field.
func (c *Converter) ProtonMHz(b0 field.Spec) (float64, error) {
	switch b0.Unit {
	case field.ProtonMHz:
		return b0.Magnitude, nil
	case field.Tesla:
		h, err := c.table.Lookup("H", 1)
		if err != nil {
			return 0, fmt.Errorf("shift: proton reference: %w", err)
		}
		return h.GammaSI() * b0.Magnitude / (2 * math.Pi) / 1e6, nil
	default:
		return 0, fmt.Errorf("shift: field %v: %w", b0, nmr.ErrInvalidFieldUnit)
	}
}

// LarmorMHz returns the resonance frequency of nucleus (e.g. "13C") in MHz.
// The sign follows the nucleus gyromagnetic ratio.
func (c *Converter) LarmorMHz(b0 field.Spec, nucleus string) (float64, error) {
	n, err := c.table.Resolve(nucleus)
	if err != nil {
		return 0, fmt.Errorf("shift: %w", err)
	}
	h, err := c.table.Lookup("H", 1)
	if err != nil {
		return 0, fmt.Errorf("shift: proton reference: %w", err)
	}
	proton, err := c.ProtonMHz(b0)
	if err != nil {
		return 0, err
	}
	return n.Gamma / h.Gamma * proton, nil
}

// ReferenceMHz returns |LarmorMHz|, the positive reference frequency used for
// the ppm scale. A zero reference wraps [nmr.ErrInvalidFieldMagnitude].
func (c *Converter) ReferenceMHz(b0 field.Spec, nucleus string) (float64, error) {
	f, err := c.LarmorMHz(b0, nucleus)
	if err != nil {
		return 0, err
	}
	ref := math.Abs(f)
	if ref == 0 || math.IsNaN(ref) || math.IsInf(ref, 0) {
		return 0, fmt.Errorf("shift: reference frequency %v MHz at %v: %w", f, b0, nmr.ErrInvalidFieldMagnitude)
	}
	return ref, nil
}
