package simp

import (
	"errors"
	"strings"
	"testing"

	"github.com/cwbudde/algo-nmr/internal/testutil"
	"github.com/cwbudde/algo-nmr/nmr"
)

const fourPointSpectrum = "SIMP\nNP=4\nSW=1000\nTYPE=SPE\nDATA\n1.0 0.0\n0.0 0.0\n-1.0 0.0\n0.0 0.0\nEND\n"

func TestDecode(t *testing.T) {
	d, err := Decode(strings.NewReader(fourPointSpectrum))
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	if d.NP != 4 || d.SW != 1000 || d.Type != "SPE" {
		t.Fatalf("header = NP %d SW %v TYPE %q", d.NP, d.SW, d.Type)
	}
	testutil.RequireSliceEqual(t, d.Real, []float64{1, 0, -1, 0})
	testutil.RequireSliceEqual(t, d.Imag, []float64{0, 0, 0, 0})
}

func TestDecodeTolerantHeader(t *testing.T) {
	inputs := map[string]string{
		"reordered":  "SIMP\nTYPE=FID\nSW=250.5\nREF=0\nNP=2\nDATA\n1 2\n3 4\nEND",
		"float np":   "SIMP\nNP=2.0\nSW=250.5\nDATA\n1 2\n3 4\nEND\n",
		"crlf":       "SIMP\r\nNP=2\r\nSW=250.5\r\nDATA\r\n1 2\r\n3 4\r\nEND\r\n",
		"no end":     "SIMP\nNP=2\nSW=250.5\nDATA\n1 2\n3 4\n",
		"trailing":   "SIMP\nNP=2\nSW=250.5\nDATA\n1 2\n\n3 4\nEND\nignored garbage\n",
		"no marker":  "NP=2\nSW=250.5\nDATA\n1e0 2e0\n3 4\nEND\n",
		"no type":    "SIMP\nNP=2\nSW=250.5\nDATA\n  1\t2  \n3 4\nEND\n",
		"lower keys": "SIMP\nnp=2\nsw=250.5\ndata\n1 2\n3 4\nEND\n",
	}
	for name, in := range inputs {
		d, err := Decode(strings.NewReader(in))
		if err != nil {
			t.Fatalf("%s: Decode error: %v", name, err)
		}
		if d.NP != 2 || d.SW != 250.5 {
			t.Fatalf("%s: NP %d SW %v", name, d.NP, d.SW)
		}
		testutil.RequireSliceEqual(t, d.Real, []float64{1, 3})
		testutil.RequireSliceEqual(t, d.Imag, []float64{2, 4})
	}
}

func TestDecodeMalformed(t *testing.T) {
	inputs := map[string]string{
		"missing np":   "SIMP\nSW=1\nDATA\n1 2\nEND\n",
		"missing sw":   "SIMP\nNP=1\nDATA\n1 2\nEND\n",
		"missing data": "SIMP\nNP=1\nSW=1\n1 2\nEND\n",
		"bad np":       "SIMP\nNP=two\nSW=1\nDATA\n1 2\nEND\n",
		"fractional":   "SIMP\nNP=1.5\nSW=1\nDATA\n1 2\nEND\n",
		"zero np":      "SIMP\nNP=0\nSW=1\nDATA\nEND\n",
		"bad sw":       "SIMP\nNP=1\nSW=wide\nDATA\n1 2\nEND\n",
		"short":        "SIMP\nNP=3\nSW=1\nDATA\n1 2\nEND\n",
		"long":         "SIMP\nNP=1\nSW=1\nDATA\n1 2\n3 4\nEND\n",
		"one column":   "SIMP\nNP=1\nSW=1\nDATA\n1\nEND\n",
		"three column": "SIMP\nNP=1\nSW=1\nDATA\n1 2 3\nEND\n",
		"bad number":   "SIMP\nNP=1\nSW=1\nDATA\n1 x\nEND\n",
	}
	for name, in := range inputs {
		_, err := Decode(strings.NewReader(in))
		if !errors.Is(err, nmr.ErrMalformedFile) {
			t.Fatalf("%s: err = %v, want ErrMalformedFile", name, err)
		}
	}
}

func TestDecodeXREIM(t *testing.T) {
	d, err := DecodeXREIM(strings.NewReader("0 1 2\n0.5 3 4\n\n1.0 -5 6e-3\n"))
	if err != nil {
		t.Fatalf("DecodeXREIM error: %v", err)
	}
	testutil.RequireSliceEqual(t, d.Time, []float64{0, 0.5, 1})
	testutil.RequireSliceEqual(t, d.Real, []float64{1, 3, -5})
	testutil.RequireSliceEqual(t, d.Imag, []float64{2, 4, 0.006})

	for _, in := range []string{"", "1 2\n", "1 2 3 4\n", "1 2 z\n"} {
		if _, err := DecodeXREIM(strings.NewReader(in)); !errors.Is(err, nmr.ErrMalformedFile) {
			t.Fatalf("DecodeXREIM(%q) err = %v, want ErrMalformedFile", in, err)
		}
	}
}
