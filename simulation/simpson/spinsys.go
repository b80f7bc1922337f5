package simpson

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/samber/lo"

	"github.com/cwbudde/algo-nmr/nmr/coupling"
	"github.com/cwbudde/algo-nmr/nmr/isotope"
)

// Euler holds tensor orientation angles in degrees.
type Euler struct {
	Alpha, Beta, Gamma float64
}

// ShiftTerm is a chemical shift interaction; Iso and Aniso are in ppm.
type ShiftTerm struct {
	Spin      int
	Iso       float64
	Aniso     float64
	Asymmetry float64
	Euler     Euler
}

// QuadrupoleTerm is a quadrupolar interaction of the given order with Cq
// in Hz.
type QuadrupoleTerm struct {
	Spin  int
	Order int
	Cq    float64
	Eta   float64
	Euler Euler
}

// DipoleTerm is a dipolar coupling in Hz between spins I and J.
type DipoleTerm struct {
	I, J     int
	Coupling float64
	Euler    Euler
}

// JCouplingTerm is a scalar coupling in Hz between spins I and J.
type JCouplingTerm struct {
	I, J      int
	Iso       float64
	Aniso     float64
	Asymmetry float64
	Euler     Euler
}

// SpinSystem describes the spins of a simulation. Spins are numbered from 1
// in the order of Nuclei.
type SpinSystem struct {
	Nuclei []string
	// Channels defaults to the distinct nuclei in order of appearance.
	Channels []string

	Shifts      []ShiftTerm
	Quadrupoles []QuadrupoleTerm
	Dipoles     []DipoleTerm
	JCouplings  []JCouplingTerm
}

// AddDipole appends the dipolar coupling between spins i and j separated by
// rAngstrom, computed from the nuclei's gyromagnetic ratios.
func (s *SpinSystem) AddDipole(table *isotope.Table, i, j int, rAngstrom float64, e Euler) error {
	if err := s.checkPair(i, j); err != nil {
		return err
	}
	a, err := table.Resolve(s.Nuclei[i-1])
	if err != nil {
		return fmt.Errorf("simpson: spin %d: %w", i, err)
	}
	b, err := table.Resolve(s.Nuclei[j-1])
	if err != nil {
		return fmt.Errorf("simpson: spin %d: %w", j, err)
	}
	d, err := coupling.DipolarHz(a.Gamma, b.Gamma, rAngstrom)
	if err != nil {
		return fmt.Errorf("simpson: %w", err)
	}
	s.Dipoles = append(s.Dipoles, DipoleTerm{I: i, J: j, Coupling: d, Euler: e})
	return nil
}

// Render returns the spinsys block. Nucleus names are normalized to the
// "13C" form.
func (s *SpinSystem) Render() (string, error) {
	if len(s.Nuclei) == 0 {
		return "", fmt.Errorf("simpson: spin system has no nuclei")
	}
	nuclei, err := normalizeNuclei(s.Nuclei)
	if err != nil {
		return "", err
	}
	channels := lo.Uniq(nuclei)
	if len(s.Channels) > 0 {
		if channels, err = normalizeNuclei(s.Channels); err != nil {
			return "", err
		}
	}

	for _, t := range s.Shifts {
		if err := s.checkSpin(t.Spin); err != nil {
			return "", err
		}
	}
	for _, t := range s.Quadrupoles {
		if err := s.checkSpin(t.Spin); err != nil {
			return "", err
		}
		if t.Order != 1 && t.Order != 2 {
			return "", fmt.Errorf("simpson: quadrupole order must be 1 or 2: %d", t.Order)
		}
	}
	for _, t := range s.Dipoles {
		if err := s.checkPair(t.I, t.J); err != nil {
			return "", err
		}
	}
	for _, t := range s.JCouplings {
		if err := s.checkPair(t.I, t.J); err != nil {
			return "", err
		}
	}

	view := *s
	view.Nuclei = nuclei
	view.Channels = channels

	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, "spinsys.tmpl", &view); err != nil {
		return "", fmt.Errorf("simpson: render spin system: %w", err)
	}
	return buf.String(), nil
}

func normalizeNuclei(in []string) ([]string, error) {
	out := make([]string, len(in))
	for i, n := range in {
		element, mass, err := isotope.ParseNucleus(n)
		if err != nil {
			return nil, fmt.Errorf("simpson: %w", err)
		}
		out[i] = strconv.Itoa(mass) + element
	}
	return out, nil
}

func (s *SpinSystem) checkSpin(i int) error {
	if i < 1 || i > len(s.Nuclei) {
		return fmt.Errorf("simpson: spin %d out of range 1..%d", i, len(s.Nuclei))
	}
	return nil
}

func (s *SpinSystem) checkPair(i, j int) error {
	if err := s.checkSpin(i); err != nil {
		return err
	}
	if err := s.checkSpin(j); err != nil {
		return err
	}
	if i == j {
		return fmt.Errorf("simpson: coupling of spin %d with itself", i)
	}
	return nil
}
