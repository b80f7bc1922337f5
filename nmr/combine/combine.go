// Package combine sums frequency-domain records.
package combine

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-nmr/nmr"
	"github.com/cwbudde/algo-nmr/nmr/field"
	"github.com/cwbudde/algo-nmr/nmr/record"
)

// DefaultWidthTolerance is the relative spectral-width mismatch accepted
// between combined records.
const DefaultWidthTolerance = 1e-9

type config struct {
	field     *field.Spec
	nucleus   string
	tolerance float64
	recOpts   []record.Option
}

// Option configures [Combine].
type Option func(*config)

// WithField sets the field of the combined record instead of inheriting it
// from the first input.
func WithField(b0 field.Spec) Option {
	return func(c *config) {
		c.field = &b0
	}
}

// WithNucleus sets the nucleus of the combined record instead of inheriting
// it from the first input.
func WithNucleus(nucleus string) Option {
	return func(c *config) {
		c.nucleus = nucleus
	}
}

// WithWidthTolerance overrides [DefaultWidthTolerance].
func WithWidthTolerance(rel float64) Option {
	return func(c *config) {
		if rel >= 0 {
			c.tolerance = rel
		}
	}
}

// WithRecordOptions passes options to the combined record, e.g. a logger.
func WithRecordOptions(opts ...record.Option) Option {
	return func(c *config) {
		c.recOpts = append(c.recOpts, opts...)
	}
}

// Combine returns a new frequency-sourced record whose spectrum is the
// element-wise sum of the inputs' spectra. Every input must yield a
// frequency-domain view with the same sample count and spectral width.
// The inputs are not modified beyond caching their derived views. The shift
// column of the result is derived on first use, so an unresolvable nucleus
// is reported by FrequencyDomain or ChemicalShift rather than here.
func Combine(records []*record.Record, opts ...Option) (*record.Record, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("combine: no records: %w", nmr.ErrIncompatibleSpectra)
	}
	cfg := config{tolerance: DefaultWidthTolerance}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	first, err := spectrum(records, 0)
	if err != nil {
		return nil, err
	}
	re := make([]float64, first.N)
	im := make([]float64, first.N)
	copy(re, first.Real)
	copy(im, first.Imag)

	for i := 1; i < len(records); i++ {
		fd, err := spectrum(records, i)
		if err != nil {
			return nil, err
		}
		if fd.N != first.N {
			return nil, fmt.Errorf("combine: record %d has %d points, want %d: %w", i, fd.N, first.N, nmr.ErrIncompatibleSpectra)
		}
		if !sameWidth(fd.SW, first.SW, cfg.tolerance) {
			return nil, fmt.Errorf("combine: record %d has SW %v Hz, want %v Hz: %w", i, fd.SW, first.SW, nmr.ErrIncompatibleSpectra)
		}
		for k := range re {
			re[k] += fd.Real[k]
			im[k] += fd.Imag[k]
		}
	}

	recOpts := append([]record.Option(nil), cfg.recOpts...)
	if cfg.field != nil {
		recOpts = append(recOpts, record.WithField(*cfg.field))
	} else if b0, ok := records[0].Field(); ok {
		recOpts = append(recOpts, record.WithField(b0))
	}
	if cfg.nucleus != "" {
		recOpts = append(recOpts, record.WithNucleus(cfg.nucleus))
	} else if n := records[0].Nucleus(); n != "" {
		recOpts = append(recOpts, record.WithNucleus(n))
	}

	out := record.New(recOpts...)
	if err := out.FromFrequency(re, im, first.SW); err != nil {
		return nil, fmt.Errorf("combine: %w", err)
	}
	return out, nil
}

func spectrum(records []*record.Record, i int) (*record.FrequencyDomain, error) {
	if records[i] == nil {
		return nil, fmt.Errorf("combine: record %d is nil: %w", i, nmr.ErrIncompatibleSpectra)
	}
	fd, err := records[i].Spectrum()
	if err != nil {
		return nil, fmt.Errorf("combine: record %d: %w: %w", i, nmr.ErrIncompatibleSpectra, err)
	}
	return fd, nil
}

func sameWidth(a, b, rel float64) bool {
	return math.Abs(a-b) <= rel*math.Max(math.Abs(a), math.Abs(b))
}
