package shortrange

import "errors"

var (
	// ErrInvalidAttenuation indicates a non-positive cutoff or exponent
	// coefficient for the attenuation function.
	ErrInvalidAttenuation = errors.New("shortrange: attenuation parameters must be positive")

	// ErrInvalidExponent indicates a decay exponent that would not converge.
	ErrInvalidExponent = errors.New("shortrange: exponent coefficient must be positive")

	// ErrUnknownReducer indicates an unrecognised distance parameter name.
	ErrUnknownReducer = errors.New("shortrange: unknown distance parameter")
)
