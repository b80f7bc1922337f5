package record

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/cwbudde/algo-nmr/dsp/spectral"
	"github.com/cwbudde/algo-nmr/nmr"
	"github.com/cwbudde/algo-nmr/nmr/field"
	"github.com/cwbudde/algo-nmr/nmr/shift"
)

// Record is one NMR signal with lazily derived views.
type Record struct {
	field   *field.Spec
	nucleus string
	conv    *shift.Converter
	log     logrus.FieldLogger

	source Kind
	time   *TimeDomain
	freq   *FrequencyDomain
	raw    *Raw
}

// New returns an empty record.
func New(opts ...Option) *Record {
	r := &Record{log: discard}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// FromTime replaces the record contents with a time-domain source sampled
// at sw Hz. The slices are copied; every cached view is discarded.
func (r *Record) FromTime(re, im []float64, sw float64) error {
	n, err := validate(re, im, sw)
	if err != nil {
		return err
	}
	r.reset()
	r.source = KindTime
	r.time = &TimeDomain{
		Real: cloneFloats(re),
		Imag: cloneFloats(im),
		Time: spectral.TimeAxis(n, sw),
		N:    n,
		SW:   sw,
	}
	r.log.WithFields(logrus.Fields{"kind": KindTime, "n": n, "sw": sw}).Debug("record loaded")
	return nil
}

// FromFrequency replaces the record contents with a centered spectrum of
// spectral width sw Hz. The slices are copied; every cached view is
// discarded.
func (r *Record) FromFrequency(re, im []float64, sw float64) error {
	n, err := validate(re, im, sw)
	if err != nil {
		return err
	}
	r.reset()
	r.source = KindFrequency
	r.freq = &FrequencyDomain{
		Real: cloneFloats(re),
		Imag: cloneFloats(im),
		Hz:   spectral.FrequencyAxis(n, sw),
		N:    n,
		SW:   sw,
	}
	r.log.WithFields(logrus.Fields{"kind": KindFrequency, "n": n, "sw": sw}).Debug("record loaded")
	return nil
}

// FromRaw replaces the record contents with an untransformed capture. Such a
// record yields neither a time-domain nor a frequency-domain view.
func (r *Record) FromRaw(t, re, im []float64) error {
	if len(t) != len(re) || len(re) != len(im) {
		return fmt.Errorf("record: raw column length mismatch: %d/%d/%d", len(t), len(re), len(im))
	}
	if len(t) == 0 {
		return fmt.Errorf("record: raw capture is empty")
	}
	r.reset()
	r.source = KindRaw
	r.raw = &Raw{
		Time: cloneFloats(t),
		Real: cloneFloats(re),
		Imag: cloneFloats(im),
		N:    len(t),
	}
	r.log.WithFields(logrus.Fields{"kind": KindRaw, "n": len(t)}).Debug("record loaded")
	return nil
}

func validate(re, im []float64, sw float64) (int, error) {
	if len(re) == 0 {
		return 0, fmt.Errorf("record: signal is empty")
	}
	if len(re) != len(im) {
		return 0, fmt.Errorf("record: real/imaginary length mismatch: %d != %d", len(re), len(im))
	}
	if !(sw > 0) || math.IsInf(sw, 0) {
		return 0, fmt.Errorf("record: spectral width must be positive and finite: %v", sw)
	}
	return len(re), nil
}

func (r *Record) reset() {
	r.source = KindNone
	r.time = nil
	r.freq = nil
	r.raw = nil
}

// Source returns the kind that is the source of truth, or [KindNone].
func (r *Record) Source() Kind {
	return r.source
}

// Has reports whether the view of kind k is currently present without
// deriving anything.
func (r *Record) Has(k Kind) bool {
	switch k {
	case KindTime:
		return r.time != nil
	case KindFrequency:
		return r.freq != nil
	case KindShift:
		return r.freq != nil && r.freq.Ppm != nil
	case KindRaw:
		return r.raw != nil
	default:
		return false
	}
}

// Len returns the sample count of the source, or 0 for an empty record.
func (r *Record) Len() int {
	switch r.source {
	case KindTime:
		return r.time.N
	case KindFrequency:
		return r.freq.N
	case KindRaw:
		return r.raw.N
	default:
		return 0
	}
}

// Invalidate drops the cached view of kind k. Dropping the frequency view
// also drops the shift column. The source of truth is never dropped.
func (r *Record) Invalidate(k Kind) {
	if k == r.source {
		if k == KindFrequency && r.freq.Ppm != nil {
			r.freq.Ppm = nil
			r.log.WithField("kind", KindShift).Debug("record view invalidated")
		}
		return
	}
	switch k {
	case KindTime:
		if r.time == nil {
			return
		}
		r.time = nil
	case KindFrequency:
		if r.freq == nil {
			return
		}
		r.freq = nil
	case KindShift:
		if r.freq == nil || r.freq.Ppm == nil {
			return
		}
		r.freq.Ppm = nil
	default:
		return
	}
	r.log.WithField("kind", k).Debug("record view invalidated")
}

// TimeDomain returns the time-domain view, deriving it from the spectrum by
// inverse transform when needed. It fails with [nmr.ErrNoSourceData] when
// the record holds no transformable data. The view is the cached one and its
// slices are read-only; load new samples with FromTime instead.
func (r *Record) TimeDomain() (*TimeDomain, error) {
	if r.time != nil {
		return r.time, nil
	}
	if r.freq == nil {
		return nil, r.noSource(KindTime)
	}

	re, im, err := spectral.Inverse(r.freq.Real, r.freq.Imag)
	if err != nil {
		return nil, fmt.Errorf("record: derive time domain: %w", err)
	}
	r.time = &TimeDomain{
		Real: re,
		Imag: im,
		Time: spectral.TimeAxis(r.freq.N, r.freq.SW),
		N:    r.freq.N,
		SW:   r.freq.SW,
	}
	r.log.WithFields(logrus.Fields{"kind": KindTime, "n": r.time.N, "sw": r.time.SW}).Debug("record view derived")
	return r.time, nil
}

// FrequencyDomain returns the spectrum view, deriving it from the FID by
// forward transform when needed. When both field and nucleus are set the
// shift column is derived too, and a failure to do so is returned rather
// than leaving the column silently absent. The view is the cached one and
// its slices are read-only; load new samples with FromFrequency instead.
func (r *Record) FrequencyDomain() (*FrequencyDomain, error) {
	f, err := r.Spectrum()
	if err != nil {
		return nil, err
	}
	if f.Ppm == nil && r.field != nil && r.nucleus != "" {
		if err := r.deriveShift(); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// Spectrum is FrequencyDomain without deriving the shift column. A shift
// column already cached is kept. The returned slices are read-only.
func (r *Record) Spectrum() (*FrequencyDomain, error) {
	if r.freq != nil {
		return r.freq, nil
	}
	if r.time == nil {
		return nil, r.noSource(KindFrequency)
	}
	re, im, err := spectral.Forward(r.time.Real, r.time.Imag)
	if err != nil {
		return nil, fmt.Errorf("record: derive frequency domain: %w", err)
	}
	r.freq = &FrequencyDomain{
		Real: re,
		Imag: im,
		Hz:   spectral.FrequencyAxis(r.time.N, r.time.SW),
		N:    r.time.N,
		SW:   r.time.SW,
	}
	r.log.WithFields(logrus.Fields{"kind": KindFrequency, "n": r.freq.N, "sw": r.freq.SW}).Debug("record view derived")
	return r.freq, nil
}

// ChemicalShift returns the ppm column. It requires a field and a nucleus.
func (r *Record) ChemicalShift() ([]float64, error) {
	if r.field == nil || r.nucleus == "" {
		return nil, fmt.Errorf("record: chemical shift needs field and nucleus: %w", nmr.ErrNoSourceData)
	}
	f, err := r.FrequencyDomain()
	if err != nil {
		return nil, err
	}
	return f.Ppm, nil
}

func (r *Record) deriveShift() error {
	conv, err := r.converter()
	if err != nil {
		return fmt.Errorf("record: chemical shift: %w", err)
	}
	ppm, err := conv.HzToPpm(r.freq.Hz, *r.field, r.nucleus)
	if err != nil {
		return fmt.Errorf("record: chemical shift for %s at %v: %w", r.nucleus, *r.field, err)
	}
	r.freq.Ppm = ppm
	r.log.WithFields(logrus.Fields{"kind": KindShift, "nucleus": r.nucleus, "field": r.field.String()}).Debug("record view derived")
	return nil
}

func (r *Record) converter() (*shift.Converter, error) {
	if r.conv == nil {
		c, err := shift.DefaultConverter()
		if err != nil {
			return nil, err
		}
		r.conv = c
	}
	return r.conv, nil
}

func (r *Record) noSource(want Kind) error {
	if r.source == KindRaw {
		return fmt.Errorf("record: %s view of a raw capture: %w", want, nmr.ErrNoSourceData)
	}
	return fmt.Errorf("record: %s view of an empty record: %w", want, nmr.ErrNoSourceData)
}

// Raw returns the untransformed capture.
func (r *Record) Raw() (*Raw, error) {
	if r.raw == nil {
		return nil, fmt.Errorf("record: no raw capture: %w", nmr.ErrNoSourceData)
	}
	return r.raw, nil
}

// Field returns the magnetic field and whether one is set.
func (r *Record) Field() (field.Spec, bool) {
	if r.field == nil {
		return field.Spec{}, false
	}
	return *r.field, true
}

// SetField assigns the field and drops any shift column.
func (r *Record) SetField(b0 field.Spec) {
	r.field = &b0
	r.Invalidate(KindShift)
}

// ClearField removes the field and drops any shift column.
func (r *Record) ClearField() {
	r.field = nil
	r.Invalidate(KindShift)
}

// Nucleus returns the observed nucleus, or "".
func (r *Record) Nucleus() string {
	return r.nucleus
}

// SetNucleus assigns the nucleus and drops any shift column.
func (r *Record) SetNucleus(nucleus string) {
	r.nucleus = nucleus
	r.Invalidate(KindShift)
}

// Clone returns a deep copy of every present view and the metadata.
func (r *Record) Clone() *Record {
	c := &Record{
		nucleus: r.nucleus,
		conv:    r.conv,
		log:     r.log,
		source:  r.source,
		time:    r.time.clone(),
		freq:    r.freq.clone(),
		raw:     r.raw.clone(),
	}
	if r.field != nil {
		b0 := *r.field
		c.field = &b0
	}
	return c
}
