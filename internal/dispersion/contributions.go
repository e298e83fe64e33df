package dispersion

import (
	"math"

	"github.com/san-kum/disp4b/internal/geom"
)

// Pair is the two-particle term, 1 / r^12.
func Pair(ij geom.Separation) float64 {
	r6 := pow6(ij.Magnitude)
	return 1.0 / (r6 * r6)
}

// Triplet is the three-particle term for the chain i-j-k:
//
//	(1 + cos^2) / (r_ij^6 r_jk^6)
//
// Only the squared cosine enters, so either direction may be reversed.
func Triplet(ij, jk geom.Separation) float64 {
	cosine := ij.Cosine(jk)
	numer := 1.0 + cosine*cosine
	denom := pow6(ij.Magnitude * jk.Magnitude)
	return numer / denom
}

// Quadruplet is the four-particle term for the closed loop i-j-k-l-i.
func Quadruplet(ij, jk, kl, li geom.Separation) float64 {
	denom := ij.Magnitude * jk.Magnitude * kl.Magnitude * li.Magnitude
	denom = denom * denom * denom

	ijjk := ij.Cosine(jk)
	ijkl := ij.Cosine(kl)
	ijli := ij.Cosine(li)
	jkkl := jk.Cosine(kl)
	jkli := jk.Cosine(li)
	klli := kl.Cosine(li)

	numer := -1.0

	numer += ijjk*ijjk + ijkl*ijkl + ijli*ijli + jkkl*jkkl + jkli*jkli + klli*klli

	numer -= 3.0 * (ijjk*jkkl*ijkl +
		ijjk*jkli*ijli +
		ijkl*klli*ijli +
		jkkl*klli*jkli)

	numer += 9.0 * (ijjk * jkkl * klli * ijli)

	return numer / denom
}

func pow6(x float64) float64 {
	x3 := x * x * x
	return x3 * x3
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
