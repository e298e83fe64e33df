// Package analytic assembles the full four-body interaction energy from a
// long-range dispersion potential, a short-range potential and a short-long
// attenuation switch:
//
//	E(q) = short(q) + dispersion(q) * attenuation(q)
//
// The dispersion potential is only meaningful at long range and grows without
// bound as the points approach each other; the attenuation switch is 1 at long
// range and suppresses the dispersion term at short range. Choosing a short
// range form that dies off before the dispersion takes over is left to the
// caller.
package analytic

import (
	"github.com/san-kum/disp4b/internal/dispersion"
	"github.com/san-kum/disp4b/internal/geom"
)

// FourPointFunc is any real function of a four-point configuration.
type FourPointFunc func(q geom.Quadruplet) float64

// Zero is a short-range form that contributes nothing.
func Zero(geom.Quadruplet) float64 { return 0.0 }

// Unattenuated is an attenuation that never switches the dispersion off.
func Unattenuated(geom.Quadruplet) float64 { return 1.0 }

// Breakdown holds the parts of one evaluation.
type Breakdown struct {
	ShortRange  float64
	Dispersion  float64
	Attenuation float64
	Total       float64
}

type Potential struct {
	dispersion  dispersion.FourBody
	shortRange  FourPointFunc
	attenuation FourPointFunc
}

func New(disp dispersion.FourBody, shortRange, attenuation FourPointFunc) *Potential {
	return &Potential{
		dispersion:  disp,
		shortRange:  shortRange,
		attenuation: attenuation,
	}
}

func (p *Potential) Dispersion() dispersion.FourBody { return p.dispersion }

func (p *Potential) Energy(q geom.Quadruplet) float64 {
	return p.Evaluate(q).Total
}

// Evaluate returns every part of the energy for q.
func (p *Potential) Evaluate(q geom.Quadruplet) Breakdown {
	short := p.shortRange(q)
	att := p.attenuation(q)
	disp := p.dispersion.Energy(q[0], q[1], q[2], q[3])

	return Breakdown{
		ShortRange:  short,
		Dispersion:  disp,
		Attenuation: att,
		Total:       short + disp*att,
	}
}
