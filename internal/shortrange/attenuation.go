package shortrange

import (
	"fmt"
	"math"
)

// Scalar is a real function of one distance parameter.
type Scalar interface {
	At(x float64) float64
}

// SilveraGoldman is the short-long attenuation switch of the Silvera-Goldman
// potential: 1 at and beyond the cutoff, decaying smoothly to 0 below it.
type SilveraGoldman struct {
	rCutoff    float64
	exponCoeff float64
}

func NewSilveraGoldmanAttenuation(rCutoff, exponCoeff float64) (*SilveraGoldman, error) {
	if !(rCutoff > 0.0) {
		return nil, fmt.Errorf("%w: cutoff distance %.12f", ErrInvalidAttenuation, rCutoff)
	}
	if !(exponCoeff > 0.0) {
		return nil, fmt.Errorf("%w: exponent coefficient %.12f", ErrInvalidAttenuation, exponCoeff)
	}
	return &SilveraGoldman{rCutoff: rCutoff, exponCoeff: exponCoeff}, nil
}

func (a *SilveraGoldman) Cutoff() float64        { return a.rCutoff }
func (a *SilveraGoldman) ExponentCoeff() float64 { return a.exponCoeff }

// At returns exp(-c ((rc/r) - 1)^2) for r < rc, and 1 otherwise.
func (a *SilveraGoldman) At(r float64) float64 {
	if r >= a.rCutoff {
		return 1.0
	}
	x := (a.rCutoff / r) - 1.0
	return math.Exp(-a.exponCoeff * x * x)
}
