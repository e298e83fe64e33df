package geom

import "gonum.org/v1/gonum/spatial/r3"

// Separation describes the vector pi - pj as a magnitude and a unit direction.
type Separation struct {
	Magnitude float64
	Direction Point
}

// NewSeparation returns the separation of pi relative to pj.
func NewSeparation(pi, pj Point) Separation {
	d := r3.Sub(pi, pj)
	mag := r3.Norm(d)
	return Separation{
		Magnitude: mag,
		Direction: r3.Scale(1.0/mag, d),
	}
}

// Cosine returns the dot product of the two unit directions.
func (s Separation) Cosine(other Separation) float64 {
	return r3.Dot(s.Direction, other.Direction)
}

// Reversed returns the separation pointing the other way.
func (s Separation) Reversed() Separation {
	return Separation{Magnitude: s.Magnitude, Direction: r3.Scale(-1, s.Direction)}
}
