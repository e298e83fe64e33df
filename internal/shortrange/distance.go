package shortrange

import (
	"fmt"

	"github.com/san-kum/disp4b/internal/geom"
)

// Reducer maps a four-point configuration to a single distance parameter.
type Reducer func(q geom.Quadruplet) float64

var reducers = map[string]Reducer{
	"side-lengths": SumOfSideLengths,
	"centroid":     SumOfCentroidDistances,
}

// SumOfSideLengths adds the six pairwise distances.
func SumOfSideLengths(q geom.Quadruplet) float64 {
	total := 0.0
	for _, d := range q.SideLengths() {
		total += d
	}
	return total
}

// SumOfCentroidDistances adds the distance from each point to the centroid.
func SumOfCentroidDistances(q geom.Quadruplet) float64 {
	com := geom.Centroid(q.Points()...)
	total := 0.0
	for _, p := range q {
		total += geom.Distance(p, com)
	}
	return total
}

func ReducerByName(name string) (Reducer, error) {
	if name == "" {
		name = "side-lengths"
	}
	r, ok := reducers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownReducer, name)
	}
	return r, nil
}

// DistanceParameterFunction evaluates Function at the distance parameter that
// Reduce computes from the points.
type DistanceParameterFunction struct {
	Function Scalar
	Reduce   Reducer
}

func (f DistanceParameterFunction) Eval(q geom.Quadruplet) float64 {
	return f.Function.At(f.Reduce(q))
}
