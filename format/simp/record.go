package simp

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/cwbudde/algo-nmr/nmr"
	"github.com/cwbudde/algo-nmr/nmr/record"
)

// Read parses r in format f into a new record built with opts. FID files
// become time-sourced records, SPE files frequency-sourced ones and XREIM
// files raw captures.
func Read(r io.Reader, f Format, opts ...record.Option) (*record.Record, error) {
	rec := record.New(opts...)
	switch f {
	case FID, SPE:
		d, err := Decode(r)
		if err != nil {
			return nil, err
		}
		if f == FID {
			err = rec.FromTime(d.Real, d.Imag, d.SW)
		} else {
			err = rec.FromFrequency(d.Real, d.Imag, d.SW)
		}
		if err != nil {
			return nil, fmt.Errorf("simp: %w: %w", nmr.ErrMalformedFile, err)
		}
	case XREIM:
		d, err := DecodeXREIM(r)
		if err != nil {
			return nil, err
		}
		if err := rec.FromRaw(d.Time, d.Real, d.Imag); err != nil {
			return nil, fmt.Errorf("simp: %w: %w", nmr.ErrMalformedFile, err)
		}
	default:
		return nil, fmt.Errorf("simp: cannot read %v: %w", f, nmr.ErrUnsupportedFormat)
	}
	return rec, nil
}

// Load reads the file at path; see [Read].
func Load(path string, f Format, opts ...record.Option) (*record.Record, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("simp: %w", err)
	}
	defer file.Close()

	rec, err := Read(file, f, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rec, nil
}

// Write renders the view of rec that f names, deriving it if necessary.
// SPE files carry no shift column, so writing one never derives it.
// XREIM writes the raw capture when present and the time domain otherwise.
func Write(w io.Writer, rec *record.Record, f Format) error {
	switch f {
	case FID:
		td, err := rec.TimeDomain()
		if err != nil {
			return fmt.Errorf("simp: write fid: %w", err)
		}
		return Encode(w, &Data{NP: td.N, SW: td.SW, Type: "FID", Real: td.Real, Imag: td.Imag})
	case SPE:
		fd, err := rec.Spectrum()
		if err != nil {
			return fmt.Errorf("simp: write spe: %w", err)
		}
		return Encode(w, &Data{NP: fd.N, SW: fd.SW, Type: "SPE", Real: fd.Real, Imag: fd.Imag})
	case XREIM:
		if raw, err := rec.Raw(); err == nil {
			return EncodeXREIM(w, &XREIMData{Time: raw.Time, Real: raw.Real, Imag: raw.Imag})
		}
		td, err := rec.TimeDomain()
		if err != nil {
			return fmt.Errorf("simp: write xreim: %w", err)
		}
		return EncodeXREIM(w, &XREIMData{Time: td.Time, Real: td.Real, Imag: td.Imag})
	case CSV:
		return WriteCSV(w, rec)
	default:
		return fmt.Errorf("simp: cannot write %v: %w", f, nmr.ErrUnsupportedFormat)
	}
}

// Save writes rec to path in format f, replacing any existing file.
func Save(path string, rec *record.Record, f Format) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("simp: %w", err)
	}
	defer func() {
		err = errors.Join(err, file.Close())
	}()
	return Write(file, rec, f)
}

// CSV axis labels.
const (
	LabelPpm  = "ppm"
	LabelHz   = "Hz"
	LabelTime = "Time"
)

// WriteCSV writes the real part of rec against one axis. The axis is the
// chemical shift if it can be derived, else Hz if the spectrum is present,
// else the time axis of the FID or raw capture.
func WriteCSV(w io.Writer, rec *record.Record) error {
	label, x, y, err := csvColumns(rec)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{label, "Real"}); err != nil {
		return fmt.Errorf("simp: write csv: %w", err)
	}
	row := make([]string, 2)
	for i := range x {
		row[0] = FormatFloat(x[i])
		row[1] = FormatFloat(y[i])
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("simp: write csv: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("simp: write csv: %w", err)
	}
	return nil
}

func csvColumns(rec *record.Record) (label string, x, y []float64, err error) {
	switch {
	case rec.Has(record.KindFrequency):
		fd, err := rec.FrequencyDomain()
		if err != nil {
			return "", nil, nil, fmt.Errorf("simp: write csv: %w", err)
		}
		if fd.HasShift() {
			return LabelPpm, fd.Ppm, fd.Real, nil
		}
		return LabelHz, fd.Hz, fd.Real, nil
	case rec.Has(record.KindTime):
		td, err := rec.TimeDomain()
		if err != nil {
			return "", nil, nil, fmt.Errorf("simp: write csv: %w", err)
		}
		return LabelTime, td.Time, td.Real, nil
	case rec.Has(record.KindRaw):
		raw, err := rec.Raw()
		if err != nil {
			return "", nil, nil, fmt.Errorf("simp: write csv: %w", err)
		}
		return LabelTime, raw.Time, raw.Real, nil
	default:
		return "", nil, nil, fmt.Errorf("simp: write csv: %w", nmr.ErrNoSourceData)
	}
}
