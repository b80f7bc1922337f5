package record

import (
	"io"

	"github.com/sirupsen/logrus"

	"github.com/cwbudde/algo-nmr/nmr/field"
	"github.com/cwbudde/algo-nmr/nmr/shift"
)

// Option configures a Record.
type Option func(*Record)

// WithField sets the magnetic field used for the chemical-shift column.
func WithField(b0 field.Spec) Option {
	return func(r *Record) {
		r.field = &b0
	}
}

// WithNucleus sets the observed nucleus, e.g. "13C".
func WithNucleus(nucleus string) Option {
	return func(r *Record) {
		r.nucleus = nucleus
	}
}

// WithConverter sets the converter used for Hz to ppm conversion. By
// default [shift.DefaultConverter] is used.
func WithConverter(c *shift.Converter) Option {
	return func(r *Record) {
		r.conv = c
	}
}

// WithLogger routes derivation and invalidation events to log at debug
// level. By default they are discarded.
func WithLogger(log logrus.FieldLogger) Option {
	return func(r *Record) {
		if log != nil {
			r.log = log
		}
	}
}

var discard = func() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}()
