package geom

import (
	"fmt"
	"math"
	"sort"
)

// ShapeFunc builds a four-point configuration with the given side length.
type ShapeFunc func(side float64) Quadruplet

var shapes = map[string]ShapeFunc{
	"tetrahedron": Tetrahedron,
	"square":      Square,
	"collinear":   Collinear,
}

// Tetrahedron returns a regular tetrahedron with the given edge length.
func Tetrahedron(side float64) Quadruplet {
	q := Quadruplet{
		{X: -0.5, Y: 0, Z: 0},
		{X: 0.5, Y: 0, Z: 0},
		{X: 0, Y: math.Sqrt(3.0 / 4.0), Z: 0},
		{X: 0, Y: math.Sqrt(1.0 / 12.0), Z: math.Sqrt(2.0 / 3.0)},
	}
	return q.Scale(side)
}

// Square returns a square in the xy-plane, traversed 0-1-2-3.
func Square(side float64) Quadruplet {
	q := Quadruplet{
		{X: 0, Y: 0, Z: 0},
		{X: 1, Y: 0, Z: 0},
		{X: 1, Y: 1, Z: 0},
		{X: 0, Y: 1, Z: 0},
	}
	return q.Scale(side)
}

// Collinear returns four equally spaced points on the x-axis.
func Collinear(side float64) Quadruplet {
	q := Quadruplet{
		{X: 0, Y: 0, Z: 0},
		{X: 1, Y: 0, Z: 0},
		{X: 2, Y: 0, Z: 0},
		{X: 3, Y: 0, Z: 0},
	}
	return q.Scale(side)
}

func ShapeByName(name string) (ShapeFunc, error) {
	fn, ok := shapes[name]
	if !ok {
		return nil, fmt.Errorf("unknown shape: %s (available: %v)", name, ShapeNames())
	}
	return fn, nil
}

func ShapeNames() []string {
	names := make([]string, 0, len(shapes))
	for name := range shapes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
