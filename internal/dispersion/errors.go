package dispersion

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidCoefficient indicates a non-positive or infinite interaction coefficient.
	ErrInvalidCoefficient = errors.New("dispersion: coefficient must be positive and finite")

	// ErrUnknownTripletScheme indicates an unrecognised triplet scheme name.
	ErrUnknownTripletScheme = errors.New("dispersion: unknown triplet scheme")
)

// CoefficientError reports the rejected coefficient value.
type CoefficientError struct {
	Value float64
}

func (e *CoefficientError) Error() string {
	return fmt.Sprintf("%s (entered: %g)", ErrInvalidCoefficient, e.Value)
}

func (e *CoefficientError) Unwrap() error {
	return ErrInvalidCoefficient
}

func checkCoefficient(coeff float64) error {
	// written so that NaN is rejected too
	if !(coeff > 0.0) || math.IsInf(coeff, 1) {
		return &CoefficientError{Value: coeff}
	}
	return nil
}
