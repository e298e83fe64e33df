package shortrange

import (
	"fmt"
	"math"
)

// ExponentialDecay is coeff * exp(-expon * x).
type ExponentialDecay struct {
	coeff float64
	expon float64
}

func NewExponentialDecay(coeff, expon float64) (*ExponentialDecay, error) {
	if !(expon > 0.0) {
		return nil, fmt.Errorf("%w: %.12f", ErrInvalidExponent, expon)
	}
	return &ExponentialDecay{coeff: coeff, expon: expon}, nil
}

func (e *ExponentialDecay) At(x float64) float64 {
	return e.coeff * math.Exp(-e.expon*x)
}

// ExponentialDecayOrder2 is coeff * exp(-(exponLin x + exponSq x^2)).
//
// exponLin may take any sign: the squared term alone guarantees decay.
type ExponentialDecayOrder2 struct {
	coeff    float64
	exponLin float64
	exponSq  float64
}

func NewExponentialDecayOrder2(coeff, exponLin, exponSq float64) (*ExponentialDecayOrder2, error) {
	if !(exponSq > 0.0) {
		return nil, fmt.Errorf("%w: squared term %.12f", ErrInvalidExponent, exponSq)
	}
	return &ExponentialDecayOrder2{coeff: coeff, exponLin: exponLin, exponSq: exponSq}, nil
}

func (e *ExponentialDecayOrder2) At(x float64) float64 {
	exponent := e.exponLin*x + e.exponSq*x*x
	return e.coeff * math.Exp(-exponent)
}
