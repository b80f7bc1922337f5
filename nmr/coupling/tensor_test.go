package coupling

import (
	"math"
	"testing"
)

func TestEigenvaluesOfRotatedTensor(t *testing.T) {
	// diag(1, 2, 4) rotated 45 degrees about z.
	c, s := math.Sqrt2/2, math.Sqrt2/2
	a, b := 1.0, 2.0
	tensor := Tensor{
		{a*c*c + b*s*s, (a - b) * c * s, 0},
		{(a - b) * c * s, a*s*s + b*c*c, 0},
		{0, 0, 4},
	}
	got, err := tensor.Eigenvalues()
	if err != nil {
		t.Fatalf("Eigenvalues error: %v", err)
	}
	want := [3]float64{1, 2, 4}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-12 {
			t.Fatalf("eigenvalues = %v, want %v", got, want)
		}
	}
}

func TestSymmetricDropsAntisymmetricPart(t *testing.T) {
	tensor := Tensor{
		{1, 3, 0},
		{1, 1, 0},
		{0, 0, 1},
	}
	s := tensor.Symmetric()
	if s[0][1] != 2 || s[1][0] != 2 {
		t.Fatalf("Symmetric off-diagonal = %v/%v, want 2", s[0][1], s[1][0])
	}
}

func TestAnalyzeShielding(t *testing.T) {
	sh, err := AnalyzeShielding(Tensor{
		{10, 0, 0},
		{0, 20, 0},
		{0, 0, 60},
	})
	if err != nil {
		t.Fatalf("AnalyzeShielding error: %v", err)
	}
	// iso = 30; yy = 20, xx = 10, zz = 60.
	checks := []struct {
		name      string
		got, want float64
	}{
		{"iso", sh.Isotropic, 30},
		{"aniso", sh.Anisotropy, 45},
		{"asym", sh.Asymmetry, 1.0 / 3},
		{"span", sh.Span, 50},
		{"skew", sh.Skew, -0.6},
	}
	for _, c := range checks {
		if math.Abs(c.got-c.want) > 1e-9 {
			t.Fatalf("%s = %v, want %v", c.name, c.got, c.want)
		}
	}
}

func TestAnalyzeShieldingIsotropic(t *testing.T) {
	sh, err := AnalyzeShielding(Tensor{{5, 0, 0}, {0, 5, 0}, {0, 0, 5}})
	if err != nil {
		t.Fatalf("AnalyzeShielding error: %v", err)
	}
	if math.Abs(sh.Isotropic-5) > 1e-12 || sh.Asymmetry != 0 || sh.Skew != 0 {
		t.Fatalf("isotropic tensor = %+v", sh)
	}
}

func TestAnalyzeEFG(t *testing.T) {
	g, err := AnalyzeEFG(Tensor{
		{-0.5, 0, 0},
		{0, -1.5, 0},
		{0, 0, 2},
	})
	if err != nil {
		t.Fatalf("AnalyzeEFG error: %v", err)
	}
	if math.Abs(g.Vzz-2) > 1e-12 {
		t.Fatalf("Vzz = %v, want 2", g.Vzz)
	}
	if math.Abs(g.Eta-0.5) > 1e-12 {
		t.Fatalf("eta = %v, want 0.5", g.Eta)
	}

	zero, err := AnalyzeEFG(Tensor{})
	if err != nil {
		t.Fatalf("AnalyzeEFG(zero) error: %v", err)
	}
	if zero.Eta != 0 {
		t.Fatalf("eta(zero) = %v, want 0", zero.Eta)
	}
}

func TestReferenced(t *testing.T) {
	if got := Referenced(30, 170, -1); got != 140 {
		t.Fatalf("Referenced = %v, want 140", got)
	}
}
