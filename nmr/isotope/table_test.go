package isotope

import (
	"errors"
	"strings"
	"testing"

	"github.com/cwbudde/algo-nmr/nmr"
)

func mustDefault(t *testing.T) *Table {
	t.Helper()
	table, err := Default()
	if err != nil {
		t.Fatalf("Default() error: %v", err)
	}
	return table
}

func TestLookup(t *testing.T) {
	table := mustDefault(t)

	e, err := table.Lookup("C", 13)
	if err != nil {
		t.Fatalf("Lookup(C, 13) error: %v", err)
	}
	if e.Gamma != 6.728284 {
		t.Fatalf("Gamma = %v, want 6.728284", e.Gamma)
	}
	if e.Spin != (Spin{Num: 1, Den: 2}) {
		t.Fatalf("Spin = %v, want 1/2", e.Spin)
	}
	if e.Name() != "13C" {
		t.Fatalf("Name() = %q, want 13C", e.Name())
	}

	if _, err := table.Lookup("cl", 35); err != nil {
		t.Fatalf("Lookup(cl, 35) error: %v", err)
	}
}

func TestLookupMissing(t *testing.T) {
	table := mustDefault(t)

	for _, tc := range []struct {
		element string
		mass    int
	}{{"Xx", 99}, {"C", 12}, {"", 1}} {
		_, err := table.Lookup(tc.element, tc.mass)
		if !errors.Is(err, nmr.ErrNucleusNotFound) {
			t.Fatalf("Lookup(%q, %d) err = %v, want ErrNucleusNotFound", tc.element, tc.mass, err)
		}
	}
}

func TestResolve(t *testing.T) {
	table := mustDefault(t)

	for _, s := range []string{"13C", "13c", "C13", " 13C "} {
		e, err := table.Resolve(s)
		if err != nil {
			t.Fatalf("Resolve(%q) error: %v", s, err)
		}
		if e.Element != "C" || e.MassNumber != 13 {
			t.Fatalf("Resolve(%q) = %s, want 13C", s, e.Name())
		}
	}

	for _, s := range []string{"99Xx", "", "13", "C", "13C5", "1-H", "0H"} {
		if _, err := table.Resolve(s); !errors.Is(err, nmr.ErrNucleusNotFound) {
			t.Fatalf("Resolve(%q) err = %v, want ErrNucleusNotFound", s, err)
		}
	}
}

func TestDefaultIsotope(t *testing.T) {
	table := mustDefault(t)

	tests := []struct {
		element   string
		quadOnly  bool
		wantMass  int
		wantError bool
	}{
		{"H", false, 1, false},
		{"H", true, 2, false},
		{"N", false, 14, false},
		{"N", true, 14, false},
		{"Cl", true, 35, false},
		// Single isotope elements are returned regardless of the spin filter.
		{"F", true, 19, false},
		{"P", false, 31, false},
		{"Si", true, 29, false},
		{"Xx", false, 0, true},
	}
	for _, tt := range tests {
		e, err := table.DefaultIsotope(tt.element, tt.quadOnly)
		if tt.wantError {
			if !errors.Is(err, nmr.ErrNucleusNotFound) {
				t.Fatalf("DefaultIsotope(%s, %v) err = %v, want ErrNucleusNotFound", tt.element, tt.quadOnly, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("DefaultIsotope(%s, %v) error: %v", tt.element, tt.quadOnly, err)
		}
		if e.MassNumber != tt.wantMass {
			t.Fatalf("DefaultIsotope(%s, %v) = %s, want mass %d", tt.element, tt.quadOnly, e.Name(), tt.wantMass)
		}
	}
}

func TestDefaultIsotopeWithoutQuadrupolarIsotope(t *testing.T) {
	doc := `{
		"C": {
			"12": {"Gamma": 0, "QMoment": 0, "Spin": "0", "NatAbundance": 98.9},
			"13": {"Gamma": 6.728, "QMoment": 0, "Spin": "1/2", "NatAbundance": 1.1}
		}
	}`
	table, err := Load(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if _, err := table.DefaultIsotope("C", true); !errors.Is(err, nmr.ErrNucleusNotFound) {
		t.Fatalf("DefaultIsotope(C, true) err = %v, want ErrNucleusNotFound", err)
	}
	e, err := table.DefaultIsotope("C", false)
	if err != nil {
		t.Fatalf("DefaultIsotope(C, false) error: %v", err)
	}
	if e.MassNumber != 12 {
		t.Fatalf("DefaultIsotope(C, false) = %s, want 12C", e.Name())
	}
}

func TestLoadCustomTable(t *testing.T) {
	doc := `{
		"h": {"1": {"Gamma": 26.75, "QMoment": 0, "Spin": "1/2", "NatAbudance": 99.9}},
		"Na": {"23": {"Gamma": 7.08, "QMoment": 10.4, "Spin": 1.5, "NatAbundance": 100}}
	}`
	table, err := Load(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	h, err := table.Lookup("H", 1)
	if err != nil {
		t.Fatalf("Lookup(H, 1) error: %v", err)
	}
	if h.NatAbundance != 99.9 {
		t.Fatalf("NatAbundance = %v, want 99.9 from legacy key", h.NatAbundance)
	}

	na, err := table.Lookup("Na", 23)
	if err != nil {
		t.Fatalf("Lookup(Na, 23) error: %v", err)
	}
	if na.Spin != (Spin{Num: 3, Den: 2}) {
		t.Fatalf("numeric spin = %v, want 3/2", na.Spin)
	}

	if got := table.Elements(); len(got) != 2 || got[0] != "H" || got[1] != "Na" {
		t.Fatalf("Elements() = %v, want [H Na]", got)
	}
}

func TestLoadRejectsBadInput(t *testing.T) {
	for _, doc := range []string{
		`not json`,
		`{"C": {"x": {"Gamma": 1, "Spin": "1/2"}}}`,
		`{"C": {"13": {"Gamma": 1, "Spin": "a/b"}}}`,
		`{"C": {"13": {"Gamma": 1}}}`,
	} {
		if _, err := Load(strings.NewReader(doc)); err == nil {
			t.Fatalf("Load(%s) succeeded, want error", doc)
		}
	}
}

func TestIsotopesSortedAndCopied(t *testing.T) {
	table := mustDefault(t)

	hs := table.Isotopes("H")
	if len(hs) != 3 {
		t.Fatalf("len(Isotopes(H)) = %d, want 3", len(hs))
	}
	for i := 1; i < len(hs); i++ {
		if hs[i].MassNumber <= hs[i-1].MassNumber {
			t.Fatalf("isotopes not sorted: %v", hs)
		}
	}

	hs[0].Gamma = 0
	if again := table.Isotopes("H"); again[0].Gamma == 0 {
		t.Fatal("Isotopes returned shared backing storage")
	}
}

func TestParseSpin(t *testing.T) {
	tests := []struct {
		in    string
		want  Spin
		float float64
		quad  bool
	}{
		{"1/2", Spin{1, 2}, 0.5, false},
		{"1", Spin{1, 1}, 1, true},
		{"5/2", Spin{5, 2}, 2.5, true},
		{" 9/2 ", Spin{9, 2}, 4.5, true},
	}
	for _, tt := range tests {
		got, err := ParseSpin(tt.in)
		if err != nil {
			t.Fatalf("ParseSpin(%q) error: %v", tt.in, err)
		}
		if got != tt.want || got.Float() != tt.float || got.Quadrupolar() != tt.quad {
			t.Fatalf("ParseSpin(%q) = %v (%v, quad=%v)", tt.in, got, got.Float(), got.Quadrupolar())
		}
	}

	for _, bad := range []string{"", "x", "1/0", "-1/2"} {
		if _, err := ParseSpin(bad); err == nil {
			t.Fatalf("ParseSpin(%q) succeeded, want error", bad)
		}
	}
}
