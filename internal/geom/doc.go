// Package geom provides the geometric primitives used by the four-body
// potentials.
//
// Points are plain [r3.Vec] values from gonum. The package adds:
//
//   - [Separation]: the distance and unit direction between two points
//   - [Quadruplet]: an ordered configuration of exactly four points
//   - shape generators ([Tetrahedron], [Square], [Collinear]) used by scans
//     and regression tests
//
// # Conventions
//
// [NewSeparation] builds the separation of pi relative to pj: the direction
// points from pj towards pi. Coinciding points are not rejected; the
// magnitude is zero and the direction is NaN, so any energy built from it is
// non-finite.
package geom
