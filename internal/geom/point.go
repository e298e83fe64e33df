package geom

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

type Point = r3.Vec

// Distance returns the Euclidean distance between two points.
func Distance(p, q Point) float64 {
	return r3.Norm(r3.Sub(p, q))
}

// Centroid returns the arithmetic mean of the points.
func Centroid(points ...Point) Point {
	var sum Point
	for _, p := range points {
		sum = r3.Add(sum, p)
	}
	return r3.Scale(1.0/float64(len(points)), sum)
}

// IsFinite reports whether every component of p is neither NaN nor Inf.
func IsFinite(p Point) bool {
	for _, v := range [3]float64{p.X, p.Y, p.Z} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
