package dispersion

import "github.com/san-kum/disp4b/internal/geom"

// Indices into the six separations, named after the point labels: s10 is the
// separation of point 1 relative to point 0.
const (
	s10 = iota
	s20
	s30
	s21
	s31
	s32
	numSeparations
)

// separations builds the six pairwise separations, later point relative to
// earlier point.
func separations(p0, p1, p2, p3 geom.Point) [numSeparations]geom.Separation {
	return [numSeparations]geom.Separation{
		s10: geom.NewSeparation(p1, p0),
		s20: geom.NewSeparation(p2, p0),
		s30: geom.NewSeparation(p3, p0),
		s21: geom.NewSeparation(p2, p1),
		s31: geom.NewSeparation(p3, p1),
		s32: geom.NewSeparation(p3, p2),
	}
}

// chain is a pair of separations sharing exactly one point.
type chain [2]int

// cycle is four separations forming a closed loop through all four points.
type cycle [4]int

// chainedTriplets is one chain per triple of points: 0-1-2, 0-1-3, 0-2-3, 1-2-3.
var chainedTriplets = []chain{
	{s21, s10},
	{s31, s10},
	{s32, s20},
	{s32, s21},
}

// symmetricTriplets lists every chain: all 15 pairs of separations minus the
// three disjoint pairs (10|32, 20|31, 30|21).
var symmetricTriplets = []chain{
	{s10, s20}, {s10, s30}, {s10, s21}, {s10, s31},
	{s20, s30}, {s20, s21}, {s20, s32},
	{s30, s31}, {s30, s32},
	{s21, s31}, {s21, s32},
	{s31, s32},
}

// quadrupletCycles holds the three Hamiltonian cycles of four points:
// 0-3-2-1, 0-2-3-1 and 0-2-1-3. Each is counted twice, once per direction.
var quadrupletCycles = [3]cycle{
	{s30, s32, s21, s10},
	{s20, s32, s31, s10},
	{s20, s21, s31, s30},
}

const cycleWeight = 2.0

func pairSum(seps *[numSeparations]geom.Separation) float64 {
	total := 0.0
	for _, s := range seps {
		total += Pair(s)
	}
	return total
}

func tripletSum(seps *[numSeparations]geom.Separation, chains []chain, weight float64) float64 {
	total := 0.0
	for _, c := range chains {
		total += Triplet(seps[c[0]], seps[c[1]])
	}
	return weight * total
}

func quadrupletSum(seps *[numSeparations]geom.Separation) float64 {
	total := 0.0
	for _, c := range quadrupletCycles {
		total += Quadruplet(seps[c[0]], seps[c[1]], seps[c[2]], seps[c[3]])
	}
	return cycleWeight * total
}
