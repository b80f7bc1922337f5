package coupling

// CODATA 2018 values in SI units.
const (
	VacuumPermeability = 1.25663706212e-6 // N/A^2
	ReducedPlanck      = 1.054571817e-34  // J*s
	Planck             = 6.62607015e-34   // J*s
	ElementaryCharge   = 1.602176634e-19  // C

	// AtomicUnitEFG converts electric field gradients from atomic units to V/m^2.
	AtomicUnitEFG = 9.7173624292e21
)

const (
	angstrom    = 1e-10
	femtometer2 = 1e-30
	gammaToSI   = 1e7
)
