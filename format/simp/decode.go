package simp

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-nmr/nmr"
)

// maxLine bounds a single text line.
const maxLine = 1 << 20

// Data is the content of a SIMP file.
type Data struct {
	NP   int
	SW   float64
	Type string
	Real []float64
	Imag []float64
}

// XREIMData is the content of an XREIM file.
type XREIMData struct {
	Time []float64
	Real []float64
	Imag []float64
}

// Decode parses a SIMP file. Collection stops at END; a missing END is
// accepted when the sample count matches NP.
func Decode(r io.Reader) (*Data, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLine)

	var (
		d       Data
		haveNP  bool
		haveSW  bool
		inData  bool
		lineNum int
	)
	for sc.Scan() {
		lineNum++
		line := strings.TrimSpace(sc.Text())

		if inData {
			if strings.HasPrefix(line, "END") {
				break
			}
			if line == "" {
				continue
			}
			re, im, err := parsePair(line)
			if err != nil {
				return nil, fmt.Errorf("simp: line %d: %w", lineNum, err)
			}
			d.Real = append(d.Real, re)
			d.Imag = append(d.Imag, im)
			continue
		}

		key, value, _ := strings.Cut(line, "=")
		switch strings.ToUpper(strings.TrimSpace(key)) {
		case "NP":
			np, err := parseCount(value)
			if err != nil {
				return nil, fmt.Errorf("simp: line %d: %w", lineNum, err)
			}
			d.NP, haveNP = np, true
		case "SW":
			sw, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
			if err != nil {
				return nil, fmt.Errorf("simp: line %d: SW %q: %w", lineNum, value, nmr.ErrMalformedFile)
			}
			d.SW, haveSW = sw, true
		case "TYPE":
			d.Type = strings.ToUpper(strings.TrimSpace(value))
		case "DATA":
			inData = true
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("simp: read: %w", err)
	}

	switch {
	case !haveNP:
		return nil, fmt.Errorf("simp: missing NP: %w", nmr.ErrMalformedFile)
	case !haveSW:
		return nil, fmt.Errorf("simp: missing SW: %w", nmr.ErrMalformedFile)
	case !inData:
		return nil, fmt.Errorf("simp: missing DATA: %w", nmr.ErrMalformedFile)
	case len(d.Real) != d.NP:
		return nil, fmt.Errorf("simp: NP=%d but %d samples: %w", d.NP, len(d.Real), nmr.ErrMalformedFile)
	}
	return &d, nil
}

func parseCount(value string) (int, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || f < 1 || f != math.Trunc(f) || f > math.MaxInt32 {
		return 0, fmt.Errorf("NP %q: %w", value, nmr.ErrMalformedFile)
	}
	return int(f), nil
}

func parsePair(line string) (re, im float64, err error) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return 0, 0, fmt.Errorf("want 2 values, got %d: %w", len(fields), nmr.ErrMalformedFile)
	}
	vals, err := parseFields(fields)
	if err != nil {
		return 0, 0, err
	}
	return vals[0], vals[1], nil
}

func parseFields(fields []string) ([]float64, error) {
	out := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("value %q: %w", f, nmr.ErrMalformedFile)
		}
		out[i] = v
	}
	return out, nil
}

// DecodeXREIM parses an XREIM file. Blank lines are skipped.
func DecodeXREIM(r io.Reader) (*XREIMData, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLine)

	var d XREIMData
	lineNum := 0
	for sc.Scan() {
		lineNum++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) != 3 {
			return nil, fmt.Errorf("simp: xreim line %d: want 3 values, got %d: %w", lineNum, len(fields), nmr.ErrMalformedFile)
		}
		vals, err := parseFields(fields)
		if err != nil {
			return nil, fmt.Errorf("simp: xreim line %d: %w", lineNum, err)
		}
		d.Time = append(d.Time, vals[0])
		d.Real = append(d.Real, vals[1])
		d.Imag = append(d.Imag, vals[2])
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("simp: read: %w", err)
	}
	if len(d.Time) == 0 {
		return nil, fmt.Errorf("simp: xreim file has no samples: %w", nmr.ErrMalformedFile)
	}
	return &d, nil
}
