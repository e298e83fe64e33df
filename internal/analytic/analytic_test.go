package analytic

import (
	"math"
	"testing"

	"github.com/san-kum/disp4b/internal/dispersion"
	"github.com/san-kum/disp4b/internal/geom"
	"github.com/san-kum/disp4b/internal/shortrange"
)

type constantEnergy float64

func (c constantEnergy) Energy(_, _, _, _ geom.Point) float64 { return float64(c) }

func TestPotential_Composition(t *testing.T) {
	tests := []struct {
		name  string
		disp  float64
		short float64
		att   float64
		want  float64
	}{
		{"long range", -2.0, 0.0, 1.0, -2.0},
		{"attenuated", -2.0, 0.5, 0.25, 0.0},
		{"fully switched off", -2.0, 3.0, 0.0, 3.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New(constantEnergy(tt.disp),
				func(geom.Quadruplet) float64 { return tt.short },
				func(geom.Quadruplet) float64 { return tt.att },
			)
			b := p.Evaluate(geom.Tetrahedron(1.0))
			if math.Abs(b.Total-tt.want) > 1e-15 {
				t.Errorf("Total = %v, want %v", b.Total, tt.want)
			}
			if b.Dispersion != tt.disp || b.ShortRange != tt.short || b.Attenuation != tt.att {
				t.Errorf("unexpected breakdown %+v", b)
			}
			if got := p.Energy(geom.Tetrahedron(1.0)); got != b.Total {
				t.Errorf("Energy = %v, want %v", got, b.Total)
			}
		})
	}
}

func TestPotential_PassesAllPointsInOrder(t *testing.T) {
	q := geom.Collinear(1.0)
	var seen geom.Quadruplet
	disp := recordingEnergy{seen: &seen}

	p := New(disp, Zero, Unattenuated)
	p.Energy(q)

	if seen != q {
		t.Errorf("dispersion received %v, want %v", seen, q)
	}
}

type recordingEnergy struct {
	seen *geom.Quadruplet
}

func (r recordingEnergy) Energy(p0, p1, p2, p3 geom.Point) float64 {
	*r.seen = geom.Quadruplet{p0, p1, p2, p3}
	return 0
}

func TestPotential_WithBadePotential(t *testing.T) {
	disp, err := dispersion.NewPotential(1.0)
	if err != nil {
		t.Fatalf("NewPotential failed: %v", err)
	}
	att, err := shortrange.NewSilveraGoldmanAttenuation(6.0, 1.0)
	if err != nil {
		t.Fatalf("attenuation failed: %v", err)
	}
	decay, err := shortrange.NewExponentialDecay(100.0, 1.0)
	if err != nil {
		t.Fatalf("decay failed: %v", err)
	}

	p := New(disp,
		shortrange.DistanceParameterFunction{Function: decay, Reduce: shortrange.SumOfSideLengths}.Eval,
		shortrange.DistanceParameterFunction{Function: att, Reduce: shortrange.SumOfSideLengths}.Eval,
	)

	far := geom.Tetrahedron(3.0)
	want := 100.0*math.Exp(-18.0) + disp.EnergyOf(far)
	if got := p.Energy(far); math.Abs(got-want) > 1e-12*math.Abs(want) {
		t.Errorf("far energy = %v, want %v", got, want)
	}

	// below the cutoff the dispersion is damped rather than diverging
	near := geom.Tetrahedron(0.3)
	b := p.Evaluate(near)
	if !(b.Attenuation < 1.0) {
		t.Errorf("attenuation = %v, want < 1", b.Attenuation)
	}
	if math.Abs(b.Dispersion*b.Attenuation) >= math.Abs(b.Dispersion) {
		t.Error("attenuated dispersion not smaller than raw dispersion")
	}
}

func TestZeroAndUnattenuated(t *testing.T) {
	q := geom.Square(2.0)
	if Zero(q) != 0 {
		t.Error("Zero should be 0")
	}
	if Unattenuated(q) != 1 {
		t.Error("Unattenuated should be 1")
	}
}
