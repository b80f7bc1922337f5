package spectral

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-nmr/internal/testutil"
)

func TestBroadeningWindowIdentityAtZero(t *testing.T) {
	w, err := BroadeningWindow(8, 1000, 0, 0.3)
	if err != nil {
		t.Fatalf("BroadeningWindow error: %v", err)
	}
	for i, v := range w {
		if v != 1 {
			t.Fatalf("w[%d] = %v, want 1", i, v)
		}
	}
}

func TestBroadeningWindowExponential(t *testing.T) {
	const (
		sw = 2000.0
		lb = 50.0
	)
	w, err := BroadeningWindow(16, sw, lb, 0)
	if err != nil {
		t.Fatalf("BroadeningWindow error: %v", err)
	}
	for i, v := range w {
		want := math.Exp(-math.Pi * lb * float64(i) / sw)
		if math.Abs(v-want) > 1e-12 {
			t.Fatalf("w[%d] = %v, want %v", i, v, want)
		}
	}
	for i := 1; i < len(w); i++ {
		if w[i] >= w[i-1] {
			t.Fatalf("window not decreasing at %d: %v", i, w)
		}
	}
}

func TestBroadeningWindowValidation(t *testing.T) {
	cases := []struct {
		n     int
		sw, g float64
	}{
		{0, 1000, 0},
		{8, 0, 0},
		{8, 1000, -0.1},
		{8, 1000, 1.5},
	}
	for _, c := range cases {
		if _, err := BroadeningWindow(c.n, c.sw, 10, c.g); err == nil {
			t.Fatalf("BroadeningWindow(%d, %v, 10, %v) succeeded, want error", c.n, c.sw, c.g)
		}
	}
}

func TestApodize(t *testing.T) {
	re := []float64{1, 2, 3}
	im := []float64{-1, -2, -3}
	if err := Apodize(re, im, []float64{1, 0.5, 0}); err != nil {
		t.Fatalf("Apodize error: %v", err)
	}
	testutil.RequireSliceNearlyEqual(t, re, []float64{1, 1, 0}, 1e-15)
	testutil.RequireSliceNearlyEqual(t, im, []float64{-1, -1, 0}, 1e-15)

	if err := Apodize(re, im, []float64{1}); err == nil {
		t.Fatal("Apodize with short window succeeded, want error")
	}
}

func TestZeroFill(t *testing.T) {
	re, im := ZeroFill([]float64{1, 2}, []float64{3, 4}, 4)
	testutil.RequireSliceEqual(t, re, []float64{1, 2, 0, 0})
	testutil.RequireSliceEqual(t, im, []float64{3, 4, 0, 0})

	re, _ = ZeroFill([]float64{1, 2, 3}, []float64{0, 0, 0}, 2)
	testutil.RequireSliceEqual(t, re, []float64{1, 2, 3})
}

func TestMagnitudeAndPower(t *testing.T) {
	re := []float64{3, 0, -1}
	im := []float64{4, 2, 0}
	testutil.RequireSliceNearlyEqual(t, Magnitude(re, im), []float64{5, 2, 1}, 1e-12)
	testutil.RequireSliceNearlyEqual(t, Power(re, im), []float64{25, 4, 1}, 1e-12)
	if Magnitude(nil, nil) != nil {
		t.Fatal("Magnitude(empty) != nil")
	}
}
