package geom

import "gonum.org/v1/gonum/spatial/r3"

// Quadruplet is an ordered set of four points. Energies computed from it are
// expected to be independent of the ordering.
type Quadruplet [4]Point

func (q Quadruplet) Points() []Point {
	return q[:]
}

// Permute returns the quadruplet relabelled so that result[i] == q[perm[i]].
func (q Quadruplet) Permute(perm [4]int) Quadruplet {
	var out Quadruplet
	for i, idx := range perm {
		out[i] = q[idx]
	}
	return out
}

// Scale multiplies every coordinate by k.
func (q Quadruplet) Scale(k float64) Quadruplet {
	var out Quadruplet
	for i, p := range q {
		out[i] = r3.Scale(k, p)
	}
	return out
}

// Translate shifts every point by offset.
func (q Quadruplet) Translate(offset Point) Quadruplet {
	var out Quadruplet
	for i, p := range q {
		out[i] = r3.Add(p, offset)
	}
	return out
}

// SideLengths returns the six pairwise distances in the order
// 10, 20, 30, 21, 31, 32.
func (q Quadruplet) SideLengths() [6]float64 {
	return [6]float64{
		Distance(q[1], q[0]),
		Distance(q[2], q[0]),
		Distance(q[3], q[0]),
		Distance(q[2], q[1]),
		Distance(q[3], q[1]),
		Distance(q[3], q[2]),
	}
}

// Permutations returns all 24 orderings of the indices 0..3.
func Permutations() [][4]int {
	perms := make([][4]int, 0, 24)
	for a := 0; a < 4; a++ {
		for b := 0; b < 4; b++ {
			if b == a {
				continue
			}
			for c := 0; c < 4; c++ {
				if c == a || c == b {
					continue
				}
				d := 6 - a - b - c
				perms = append(perms, [4]int{a, b, c, d})
			}
		}
	}
	return perms
}
