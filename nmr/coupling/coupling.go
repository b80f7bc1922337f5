package coupling

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-nmr/nmr/isotope"
)

// DipolarHz returns the dipolar coupling constant in Hz between two spins
// with gyromagnetic ratios gammaI and gammaJ (in 1e7 rad/(s*T)) separated by
// rAngstrom:
//
//	D = -mu0 * hbar * gammaI * gammaJ / (8 * pi^2 * r^3)
func DipolarHz(gammaI, gammaJ, rAngstrom float64) (float64, error) {
	if rAngstrom <= 0 || math.IsNaN(rAngstrom) || math.IsInf(rAngstrom, 0) {
		return 0, fmt.Errorf("coupling: distance must be positive and finite: %v", rAngstrom)
	}
	r := rAngstrom * angstrom
	gi := gammaI * gammaToSI
	gj := gammaJ * gammaToSI
	return -VacuumPermeability * ReducedPlanck * gi * gj / (8 * math.Pi * math.Pi * r * r * r), nil
}

// QuadrupolarHz returns the quadrupolar coupling constant Cq = e*Vzz*Q/h in
// Hz for vzz in atomic units and a quadrupole moment in fm^2.
func QuadrupolarHz(vzz, qMoment float64) float64 {
	return ElementaryCharge * vzz * AtomicUnitEFG * qMoment * femtometer2 / Planck
}

// Calculator evaluates couplings for nuclei resolved from an isotope table.
type Calculator struct {
	table *isotope.Table

	// Explicit isotope choices per element symbol, e.g. {"O": 17}.
	overrides map[string]int
}

// NewCalculator returns a calculator backed by table. overrides picks the
// mass number for the listed elements and may be nil.
func NewCalculator(table *isotope.Table, overrides map[string]int) *Calculator {
	o := make(map[string]int, len(overrides))
	for element, mass := range overrides {
		o[isotope.CanonicalElement(element)] = mass
	}
	return &Calculator{table: table, overrides: o}
}

// Isotope resolves element to the isotope used for its couplings. Without an
// override the most abundant isotope is chosen, restricted to spin >= 1 when
// quadrupolar is set.
func (c *Calculator) Isotope(element string, quadrupolar bool) (isotope.Entry, error) {
	if mass, ok := c.overrides[isotope.CanonicalElement(element)]; ok {
		e, err := c.table.Lookup(element, mass)
		if err != nil {
			return isotope.Entry{}, fmt.Errorf("coupling: %w", err)
		}
		return e, nil
	}
	e, err := c.table.DefaultIsotope(element, quadrupolar)
	if err != nil {
		return isotope.Entry{}, fmt.Errorf("coupling: %w", err)
	}
	return e, nil
}

// Dipolar returns the dipolar coupling constant in Hz between atoms of
// elements i and j at distance rAngstrom.
func (c *Calculator) Dipolar(i, j string, rAngstrom float64) (float64, error) {
	a, err := c.Isotope(i, false)
	if err != nil {
		return 0, err
	}
	b, err := c.Isotope(j, false)
	if err != nil {
		return 0, err
	}
	return DipolarHz(a.Gamma, b.Gamma, rAngstrom)
}

// Quadrupolar returns Cq in Hz and eta for an atom of element whose field
// gradient tensor (atomic units) is efg.
func (c *Calculator) Quadrupolar(element string, efg Tensor) (cq, eta float64, err error) {
	e, err := c.Isotope(element, true)
	if err != nil {
		return 0, 0, err
	}
	g, err := AnalyzeEFG(efg)
	if err != nil {
		return 0, 0, err
	}
	return QuadrupolarHz(g.Vzz, e.QMoment), g.Eta, nil
}
