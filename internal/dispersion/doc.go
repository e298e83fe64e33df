// Package dispersion implements the quadruple-dipole dispersion energy of four
// identical point particles, after W. L. Bade, "Drude-model calculation of
// dispersion forces. III. The fourth-order contribution", J. Chem. Phys. 28
// (1957), equations (1) and (2) with N = 4.
//
// Two potentials are provided:
//
//   - [Potential]: the full expansion (pair, triplet and quadruplet terms)
//   - [QuadrupletPotential]: the quadruplet term alone, for use next to an
//     independently parameterised pair and three-body potential
//
// Both are built from the term formulas [Pair], [Triplet] and [Quadruplet],
// which act on [geom.Separation] values rather than raw points.
//
// # Sign convention
//
// Energies are attractive: a positive coefficient yields a negative energy.
//
// # Thread Safety
//
// Potentials are immutable after construction and may be shared between
// goroutines.
package dispersion
