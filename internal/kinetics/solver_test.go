package kinetics_test

import (
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/rxnrate/internal/kinetics"
	"github.com/san-kum/rxnrate/internal/symbolic"
)

func at(e symbolic.Expr, t float64, params map[string]float64) float64 {
	GinkgoHelper()
	v, err := symbolic.EvaluateAt(e, params, "t", t)
	Expect(err).NotTo(HaveOccurred())
	return v
}

var _ = Describe("Solve", func() {
	opts := kinetics.DefaultOptions()

	It("solves first-order decay", func() {
		sol, err := kinetics.Solve(kinetics.Reaction{
			Reactants: []string{"A"},
			K:         kinetics.Num(1.0),
			Initial:   map[string]kinetics.Param{"A": kinetics.Num(1.0)},
		}, opts)
		Expect(err).NotTo(HaveOccurred())
		Expect(sol.Solutions["A"].String()).To(Equal("exp(-t)"))
		Expect(at(sol.Solutions["A"], 0, nil)).To(Equal(1.0))
		Expect(sol.Integrals).To(BeEmpty())
	})

	It("keeps the rate constant symbolic", func() {
		sol, err := kinetics.Solve(kinetics.Reaction{
			Reactants: []string{"A"},
			K:         kinetics.Sym("k"),
			Initial:   map[string]kinetics.Param{"A": kinetics.Sym("a_0")},
		}, opts)
		Expect(err).NotTo(HaveOccurred())
		want := symbolic.MulOf(symbolic.S("a_0"), symbolic.ExpOf(symbolic.Neg(symbolic.MulOf(symbolic.S("k"), symbolic.S("t")))))
		Expect(symbolic.IsZero(symbolic.Minus(sol.Solutions["A"], want))).To(BeTrue(), sol.Solutions["A"].String())
	})

	It("solves A + B -> C with equal initial concentrations", func() {
		sol, err := kinetics.Solve(kinetics.Reaction{
			Reactants: []string{"A", "B"},
			Products:  []string{"C"},
			K:         kinetics.Num(1.0),
			Initial: map[string]kinetics.Param{
				"A": kinetics.Num(1.0), "B": kinetics.Num(1.0), "C": kinetics.Num(0.0),
			},
		}, opts)
		Expect(err).NotTo(HaveOccurred())

		a, b, c := sol.Solutions["A"], sol.Solutions["B"], sol.Solutions["C"]
		Expect(a.String()).To(Equal("1/(t + 1)"))
		Expect(symbolic.IsZero(symbolic.Minus(symbolic.AddOf(a, c), symbolic.N(1)))).To(BeTrue())
		Expect(symbolic.IsZero(symbolic.Minus(symbolic.AddOf(b, c), symbolic.N(1)))).To(BeTrue())
		for _, x := range []float64{0, 0.5, 2, 10} {
			Expect(at(a, x, nil) + at(c, x, nil)).To(BeNumerically("~", 1.0, 1e-12))
			Expect(at(b, x, nil) + at(c, x, nil)).To(BeNumerically("~", 1.0, 1e-12))
		}
	})

	It("solves A + B -> C with distinct initial concentrations", func() {
		sol, err := kinetics.Solve(kinetics.Reaction{
			Reactants: []string{"A", "B"},
			Products:  []string{"C"},
			K:         kinetics.Num(1),
			Initial:   map[string]kinetics.Param{"A": kinetics.Num(1), "B": kinetics.Num(2)},
		}, opts)
		Expect(err).NotTo(HaveOccurred())
		// 1/A = 2*exp(t) - 1
		for _, x := range []float64{0, 0.3, 1.5} {
			Expect(at(sol.Solutions["A"], x, nil)).To(BeNumerically("~", 1/(2*math.Exp(x)-1), 1e-12))
		}
		Expect(sol.Integrals).To(HaveLen(3))
	})

	It("solves the symbolic flexible example and verifies it", func() {
		sol, err := kinetics.Solve(kinetics.Reaction{
			Reactants: []string{"A", "B"},
			Products:  []string{"C"},
			K:         kinetics.Sym("k1"),
			Initial: map[string]kinetics.Param{
				"A": kinetics.Sym("a_0"), "B": kinetics.Num(2.0), "C": kinetics.Num(0.0),
			},
		}, opts)
		Expect(err).NotTo(HaveOccurred())

		params := map[string]float64{"k1": 0.7, "a_0": 1.3}
		report, err := kinetics.Verify(sol.System, sol.Solutions, params, []float64{0.1, 0.5, 1, 2})
		Expect(err).NotTo(HaveOccurred())
		Expect(report.Max()).To(BeNumerically("<", 1e-8))
		Expect(sol.Integrals).To(HaveLen(3))
	})

	It("solves second order in a single reactant", func() {
		sol, err := kinetics.Solve(kinetics.Reaction{
			Reactants: []string{"A", "A"},
			Products:  []string{"D"},
			K:         kinetics.Num(1),
			Initial:   map[string]kinetics.Param{"A": kinetics.Num(1)},
		}, opts)
		Expect(err).NotTo(HaveOccurred())
		Expect(sol.Solutions["A"].String()).To(Equal("1/(t + 1)"))

		report, err := kinetics.Verify(sol.System, sol.Solutions, nil, []float64{0.2, 1, 4})
		Expect(err).NotTo(HaveOccurred())
		Expect(report.OK(1e-9)).To(BeTrue())
	})

	It("solves zero-order formation", func() {
		sol, err := kinetics.Solve(kinetics.Reaction{
			Products: []string{"C"},
			K:        kinetics.Num(2),
		}, opts)
		Expect(err).NotTo(HaveOccurred())
		Expect(at(sol.Solutions["C"], 3, nil)).To(BeNumerically("~", 6.0, 1e-12))
	})

	It("solves a catalysed reaction", func() {
		o := opts
		o.Overlap = kinetics.Catalytic
		sol, err := kinetics.Solve(kinetics.Reaction{
			Reactants: []string{"A", "B"},
			Products:  []string{"A", "C"},
			K:         kinetics.Num(1),
			Initial:   map[string]kinetics.Param{"A": kinetics.Num(2), "B": kinetics.Num(1)},
		}, o)
		Expect(err).NotTo(HaveOccurred())
		Expect(sol.Solutions["A"].String()).To(Equal("2"))
		Expect(sol.Solutions["B"].String()).To(Equal("exp(-2*t)"))
	})

	It("keeps everything constant when a reactant starts at zero", func() {
		sol, err := kinetics.Solve(kinetics.Reaction{
			Reactants: []string{"A", "B"},
			Products:  []string{"C"},
			K:         kinetics.Num(1),
			Initial:   map[string]kinetics.Param{"A": kinetics.Num(1)},
		}, opts)
		Expect(err).NotTo(HaveOccurred())
		Expect(sol.Solutions["A"].String()).To(Equal("1"))
		Expect(sol.Solutions["C"].String()).To(Equal("0"))
	})

	It("keeps spectators at their initial value", func() {
		sol, err := kinetics.Solve(kinetics.Reaction{
			Reactants: []string{"A", "B"},
			Products:  []string{"C", "D"},
			K:         kinetics.Num(4.0),
			Initial: map[string]kinetics.Param{
				"A": kinetics.Num(1), "B": kinetics.Num(1), "C": kinetics.Num(0), "D": kinetics.Num(0), "E": kinetics.Num(3),
			},
		}, opts)
		Expect(err).NotTo(HaveOccurred())
		Expect(sol.Solutions["E"].Equal(symbolic.N(3))).To(BeTrue())

		Expect(sol.Integrals).To(HaveLen(6))
		for _, p := range sol.Integrals.Pairs() {
			Expect(p.A < p.B).To(BeTrue(), p.String())
			Expect(p.A).NotTo(Equal("E"))
			Expect(p.B).NotTo(Equal("E"))
		}
	})

	It("computes the pairwise integral in closed form", func() {
		sol, err := kinetics.Solve(kinetics.Reaction{
			Reactants: []string{"A", "B"},
			Products:  []string{"C"},
			K:         kinetics.Num(1),
			Initial:   map[string]kinetics.Param{"A": kinetics.Num(1), "B": kinetics.Num(1)},
		}, opts)
		Expect(err).NotTo(HaveOccurred())

		ab := sol.Integrals[kinetics.MakePair("B", "A")]
		Expect(at(ab, 1, nil)).To(BeNumerically("~", 0.5, 1e-12))
		ac := sol.Integrals[kinetics.Pair{A: "A", B: "C"}]
		Expect(at(ac, 1, nil)).To(BeNumerically("~", math.Ln2-0.5, 1e-12))
	})

	It("fails on rate laws beyond bimolecular", func() {
		_, err := kinetics.Solve(kinetics.Reaction{
			Reactants: []string{"A", "B", "C"},
			Products:  []string{"D"},
			K:         kinetics.Num(1),
			Initial:   map[string]kinetics.Param{"A": kinetics.Num(1), "B": kinetics.Num(1), "C": kinetics.Num(1)},
		}, opts)
		Expect(err).To(MatchError(kinetics.ErrUnsolvable))

		var solveErr *kinetics.SolveError
		Expect(errors.As(err, &solveErr)).To(BeTrue())
		Expect(solveErr.Stage).To(Equal("solve"))
	})
})
