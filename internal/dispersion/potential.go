package dispersion

import (
	"fmt"

	"github.com/san-kum/disp4b/internal/geom"
)

// FourBody is any energy defined over four points.
type FourBody interface {
	Energy(p0, p1, p2, p3 geom.Point) float64
}

// Model is a FourBody that also reports its unscaled term sums.
type Model interface {
	FourBody
	Components(p0, p1, p2, p3 geom.Point) Components
	Coefficient() float64
}

// TripletScheme selects which three-particle chains enter the triplet sum.
type TripletScheme int

const (
	// ChainedTriplets sums one chain per triple of points, centred on the
	// middle label: 0-1-2, 0-1-3, 0-2-3 and 1-2-3. This is the form the
	// published reference values are computed with; it is relabelling
	// invariant only for geometries where all chains of a triple agree.
	ChainedTriplets TripletScheme = iota

	// SymmetricTriplets sums all twelve chains with weight 1/3, which keeps
	// the total weight of the chained form and is invariant under any
	// relabelling of the points.
	SymmetricTriplets
)

var tripletSchemeNames = map[TripletScheme]string{
	ChainedTriplets:   "chained",
	SymmetricTriplets: "symmetric",
}

func (s TripletScheme) String() string {
	if name, ok := tripletSchemeNames[s]; ok {
		return name
	}
	return fmt.Sprintf("TripletScheme(%d)", int(s))
}

// ParseTripletScheme maps "chained" or "symmetric" to a scheme. The empty
// string selects the default.
func ParseTripletScheme(name string) (TripletScheme, error) {
	if name == "" {
		return ChainedTriplets, nil
	}
	for scheme, n := range tripletSchemeNames {
		if n == name {
			return scheme, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownTripletScheme, name)
}

// Components holds the unscaled pair, triplet and quadruplet sums.
type Components struct {
	Pair       float64
	Triplet    float64
	Quadruplet float64
}

func (c Components) Sum() float64 {
	return c.Pair + c.Triplet + c.Quadruplet
}

// Finite reports whether all three sums are finite numbers.
func (c Components) Finite() bool {
	return isFinite(c.Pair) && isFinite(c.Triplet) && isFinite(c.Quadruplet)
}

// Potential is the full fourth-order dispersion energy of four particles.
//
// The pair and quadruplet sums do not depend on how the points are labelled.
// The triplet sum does under the default ChainedTriplets scheme: for a
// non-regular configuration, such as four collinear points, relabelling
// changes the energy (collinear at unit side and coefficient spans -7.28 to
// -3.28 over the 24 orderings). Only the regular tetrahedron is invariant
// there. Use WithTripletScheme(SymmetricTriplets) when the energy must be
// invariant under every relabelling.
type Potential struct {
	c12     float64
	scheme  TripletScheme
	chains  []chain
	tweight float64
}

type Option func(*Potential)

// WithTripletScheme overrides the default ChainedTriplets scheme.
func WithTripletScheme(s TripletScheme) Option {
	return func(p *Potential) {
		p.scheme = s
	}
}

// NewPotential returns a potential with interaction coefficient c12, in
// units of energy times length^12. c12 must be positive and finite.
func NewPotential(c12 float64, opts ...Option) (*Potential, error) {
	if err := checkCoefficient(c12); err != nil {
		return nil, err
	}

	p := &Potential{c12: c12, scheme: ChainedTriplets}
	for _, opt := range opts {
		opt(p)
	}

	switch p.scheme {
	case ChainedTriplets:
		p.chains, p.tweight = chainedTriplets, 1.0
	case SymmetricTriplets:
		p.chains, p.tweight = symmetricTriplets, 1.0/3.0
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownTripletScheme, p.scheme)
	}

	return p, nil
}

func (p *Potential) Coefficient() float64  { return p.c12 }
func (p *Potential) Scheme() TripletScheme { return p.scheme }

// Components returns the unscaled term sums for the four points.
func (p *Potential) Components(p0, p1, p2, p3 geom.Point) Components {
	seps := separations(p0, p1, p2, p3)
	return Components{
		Pair:       pairSum(&seps),
		Triplet:    tripletSum(&seps, p.chains, p.tweight),
		Quadruplet: quadrupletSum(&seps),
	}
}

// Energy returns -c12 * (pair + triplet + quadruplet).
func (p *Potential) Energy(p0, p1, p2, p3 geom.Point) float64 {
	return -p.c12 * p.Components(p0, p1, p2, p3).Sum()
}

// EnergyOf is Energy over a Quadruplet.
func (p *Potential) EnergyOf(q geom.Quadruplet) float64 {
	return p.Energy(q[0], q[1], q[2], q[3])
}
