package dispersion

import "github.com/san-kum/disp4b/internal/geom"

// QuadrupletPotential keeps only the four-particle term of the expansion.
// Use it when the pair and triplet dispersion are already provided by a
// separate two- and three-body potential.
type QuadrupletPotential struct {
	coeff float64
}

func NewQuadrupletPotential(coeff float64) (*QuadrupletPotential, error) {
	if err := checkCoefficient(coeff); err != nil {
		return nil, err
	}
	return &QuadrupletPotential{coeff: coeff}, nil
}

func (p *QuadrupletPotential) Coefficient() float64 { return p.coeff }

func (p *QuadrupletPotential) Components(p0, p1, p2, p3 geom.Point) Components {
	seps := separations(p0, p1, p2, p3)
	return Components{Quadruplet: quadrupletSum(&seps)}
}

func (p *QuadrupletPotential) Energy(p0, p1, p2, p3 geom.Point) float64 {
	seps := separations(p0, p1, p2, p3)
	return -p.coeff * quadrupletSum(&seps)
}

func (p *QuadrupletPotential) EnergyOf(q geom.Quadruplet) float64 {
	return p.Energy(q[0], q[1], q[2], q[3])
}
