// Package coupling derives NMR interaction parameters from pre-computed
// tensors and geometry.
//
// Shielding tensors reduce to the Haeberlen (isotropic, anisotropy,
// asymmetry) and Herzfeld-Berger (span, skew) conventions. Electric field
// gradient tensors reduce to Vzz and eta, and combine with a nuclear
// quadrupole moment into the quadrupolar coupling constant Cq. The dipolar
// coupling constant follows from two gyromagnetic ratios and a distance.
//
// Isotopes are chosen with [isotope.Table.DefaultIsotope] unless the caller
// names one explicitly.
package coupling
