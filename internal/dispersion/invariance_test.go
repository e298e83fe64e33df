package dispersion_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/disp4b/internal/dispersion"
	"github.com/san-kum/disp4b/internal/geom"
)

var irregular = geom.Quadruplet{
	{X: 0.1, Y: 0.2, Z: 0.3},
	{X: 1.3, Y: -0.4, Z: 0.2},
	{X: 0.7, Y: 1.5, Z: -0.6},
	{X: -0.9, Y: 0.8, Z: 1.1},
}

var configurations = []TableEntry{
	Entry("regular tetrahedron", geom.Tetrahedron(1.0)),
	Entry("unit square", geom.Square(1.0)),
	Entry("collinear chain", geom.Collinear(1.0)),
	Entry("irregular", irregular),
	Entry("stretched tetrahedron", geom.Quadruplet{
		{X: -0.5}, {X: 0.5}, {Y: 1.2}, {Y: 0.3, Z: 2.0},
	}),
}

func within(rel, want float64) OmegaMatcher {
	return BeNumerically("~", want, rel*math.Abs(want))
}

var _ = Describe("Potential", func() {
	var (
		chained   *dispersion.Potential
		symmetric *dispersion.Potential
		quadOnly  *dispersion.QuadrupletPotential
	)

	BeforeEach(func() {
		var err error
		chained, err = dispersion.NewPotential(1.0)
		Expect(err).NotTo(HaveOccurred())
		symmetric, err = dispersion.NewPotential(1.0, dispersion.WithTripletScheme(dispersion.SymmetricTriplets))
		Expect(err).NotTo(HaveOccurred())
		quadOnly, err = dispersion.NewQuadrupletPotential(1.0)
		Expect(err).NotTo(HaveOccurred())
	})

	Describe("relabelling the points", func() {
		DescribeTable("leaves the pair and quadruplet sums unchanged",
			func(q geom.Quadruplet) {
				ref := chained.Components(q[0], q[1], q[2], q[3])
				for _, perm := range geom.Permutations() {
					p := q.Permute(perm)
					c := chained.Components(p[0], p[1], p[2], p[3])
					Expect(c.Pair).To(within(1e-12, ref.Pair), "permutation %v", perm)
					Expect(c.Quadruplet).To(within(1e-10, ref.Quadruplet), "permutation %v", perm)
				}
			},
			configurations,
		)

		DescribeTable("leaves the symmetric-scheme energy unchanged",
			func(q geom.Quadruplet) {
				ref := symmetric.EnergyOf(q)
				for _, perm := range geom.Permutations() {
					Expect(symmetric.EnergyOf(q.Permute(perm))).To(within(1e-10, ref), "permutation %v", perm)
				}
			},
			configurations,
		)

		DescribeTable("leaves the quadruplet-only energy unchanged",
			func(q geom.Quadruplet) {
				ref := quadOnly.EnergyOf(q)
				for _, perm := range geom.Permutations() {
					Expect(quadOnly.EnergyOf(q.Permute(perm))).To(within(1e-10, ref), "permutation %v", perm)
				}
			},
			configurations,
		)

		It("leaves the chained-scheme energy of a regular tetrahedron unchanged", func() {
			q := geom.Tetrahedron(1.7)
			ref := chained.EnergyOf(q)
			for _, perm := range geom.Permutations() {
				Expect(chained.EnergyOf(q.Permute(perm))).To(within(1e-12, ref), "permutation %v", perm)
			}
		})
	})

	Describe("rigid motions", func() {
		DescribeTable("translation does not change the energy",
			func(q geom.Quadruplet) {
				moved := q.Translate(geom.Point{X: 3.5, Y: -12.0, Z: 0.25})
				Expect(chained.EnergyOf(moved)).To(within(1e-9, chained.EnergyOf(q)))
				Expect(symmetric.EnergyOf(moved)).To(within(1e-9, symmetric.EnergyOf(q)))
			},
			configurations,
		)

		DescribeTable("inversion through the origin does not change the energy",
			func(q geom.Quadruplet) {
				Expect(chained.EnergyOf(q.Scale(-1))).To(within(1e-12, chained.EnergyOf(q)))
			},
			configurations,
		)
	})

	Describe("scaling", func() {
		It("falls off as the inverse twelfth power for a regular tetrahedron", func() {
			sides := floats.Span(make([]float64, 128), 1.0, 5.0)
			scaled := make([]float64, len(sides))
			for i, l := range sides {
				scaled[i] = chained.EnergyOf(geom.Tetrahedron(l)) * math.Pow(l, 12)
			}

			mean := floats.Sum(scaled) / float64(len(scaled))
			for _, v := range scaled {
				Expect(v).To(within(1e-9, mean))
			}
		})

		DescribeTable("holds for every configuration",
			func(q geom.Quadruplet) {
				e1 := chained.EnergyOf(q)
				e2 := chained.EnergyOf(q.Scale(2.0))
				Expect(e2 * 4096.0).To(within(1e-10, e1))
			},
			configurations,
		)
	})

	Describe("sign", func() {
		DescribeTable("is attractive for well separated points",
			func(q geom.Quadruplet) {
				Expect(chained.EnergyOf(q)).To(BeNumerically("<", 0.0))
			},
			configurations,
		)
	})
})
