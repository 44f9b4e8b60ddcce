package kinetics_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/rxnrate/internal/kinetics"
	"github.com/san-kum/rxnrate/internal/symbolic"
)

var _ = Describe("Build", func() {
	opts := kinetics.DefaultOptions()

	It("builds first-order decay", func() {
		sys, err := kinetics.Build(kinetics.Reaction{
			Reactants: []string{"A"},
			K:         kinetics.Sym("k"),
			Initial:   map[string]kinetics.Param{"A": kinetics.Num(1)},
		}, opts)
		Expect(err).NotTo(HaveOccurred())

		want := symbolic.Neg(symbolic.MulOf(symbolic.S("k"), sys.Funcs["A"]))
		Expect(sys.ODEs["A"].Equal(want)).To(BeTrue(), sys.ODEs["A"].String())
		Expect(sys.Equations()[0].String()).To(Equal("Derivative(A(t), t) = -A(t)*k"))
		Expect(sys.Initial["A"].String()).To(Equal("1"))
	})

	It("orders species independently of input order", func() {
		sys, err := kinetics.Build(kinetics.Reaction{
			Reactants: []string{"B", "A"},
			Products:  []string{"C"},
			K:         kinetics.Num(1),
		}, opts)
		Expect(err).NotTo(HaveOccurred())
		Expect(sys.Species).To(Equal([]string{"A", "B", "C"}))
	})

	It("is idempotent", func() {
		r := kinetics.Reaction{
			Reactants: []string{"A", "B"},
			Products:  []string{"C"},
			K:         kinetics.Sym("k1"),
			Initial:   map[string]kinetics.Param{"A": kinetics.Sym("a_0"), "B": kinetics.Num(2)},
		}
		first, err := kinetics.Build(r, opts)
		Expect(err).NotTo(HaveOccurred())
		r.Reactants = []string{"B", "A"}
		second, err := kinetics.Build(r, opts)
		Expect(err).NotTo(HaveOccurred())

		Expect(second.Species).To(Equal(first.Species))
		for _, name := range first.Species {
			Expect(second.ODEs[name].Equal(first.ODEs[name])).To(BeTrue(), name)
			Expect(second.Initial[name].Equal(first.Initial[name])).To(BeTrue(), name)
		}
	})

	It("treats symbolic and numeric rate constants alike", func() {
		sym, err := kinetics.Resolve(kinetics.Sym("k1"))
		Expect(err).NotTo(HaveOccurred())
		Expect(sym).To(BeAssignableToTypeOf(&symbolic.Sym{}))
		Expect(sym.String()).To(Equal("k1"))

		num, err := kinetics.Resolve(kinetics.Num(2.5))
		Expect(err).NotTo(HaveOccurred())
		Expect(num.String()).To(Equal("2.5"))

		sys, err := kinetics.Build(kinetics.Reaction{
			Reactants: []string{"A", "B"},
			Products:  []string{"C"},
			K:         kinetics.Num(2.5),
		}, opts)
		Expect(err).NotTo(HaveOccurred())
		Expect(sys.Rate.String()).To(Equal("2.5*A(t)*B(t)"))

		sys, err = kinetics.Build(kinetics.Reaction{
			Reactants: []string{"A", "B"},
			Products:  []string{"C"},
			K:         kinetics.Sym("k1"),
		}, opts)
		Expect(err).NotTo(HaveOccurred())
		Expect(symbolic.FreeSymbols(sys.Rate)).To(ContainElement("k1"))
	})

	It("gives spectators a zero ODE", func() {
		sys, err := kinetics.Build(kinetics.Reaction{
			Reactants: []string{"A"},
			Products:  []string{"B"},
			K:         kinetics.Num(1),
			Initial:   map[string]kinetics.Param{"A": kinetics.Num(1), "E": kinetics.Num(3)},
		}, opts)
		Expect(err).NotTo(HaveOccurred())
		Expect(sys.Species).To(Equal([]string{"A", "B", "E"}))
		Expect(sys.ODEs["E"].Equal(symbolic.N(0))).To(BeTrue())
		Expect(sys.Active()).To(Equal([]string{"A", "B"}))
	})

	It("defaults missing initial values to zero", func() {
		sys, err := kinetics.Build(kinetics.Reaction{Reactants: []string{"A"}, K: kinetics.Num(1)}, opts)
		Expect(err).NotTo(HaveOccurred())
		Expect(sys.Initial["A"].Equal(symbolic.N(0))).To(BeTrue())
	})

	It("rejects missing initial values on request", func() {
		strict := opts
		strict.Missing = kinetics.RejectMissing
		_, err := kinetics.Build(kinetics.Reaction{Reactants: []string{"A"}, K: kinetics.Num(1)}, strict)
		Expect(err).To(MatchError(kinetics.ErrMissingInitial))
	})

	DescribeTable("overlap policies",
		func(policy kinetics.OverlapPolicy, sigma int) {
			o := opts
			o.Overlap = policy
			sys, err := kinetics.Build(kinetics.Reaction{
				Reactants: []string{"A", "B"},
				Products:  []string{"A", "C"},
				K:         kinetics.Num(1),
			}, o)
			Expect(err).NotTo(HaveOccurred())
			Expect(sys.Sigma["A"]).To(Equal(sigma))
			Expect(sys.Sigma["B"]).To(Equal(-1))
			Expect(sys.Sigma["C"]).To(Equal(1))
		},
		Entry("consumed first", kinetics.ConsumedFirst, -1),
		Entry("reformed last", kinetics.ReformedLast, 1),
		Entry("catalytic", kinetics.Catalytic, 0),
	)

	It("rejects overlapping species under the reject policy", func() {
		o := opts
		o.Overlap = kinetics.RejectOverlap
		_, err := kinetics.Build(kinetics.Reaction{
			Reactants: []string{"A"},
			Products:  []string{"A"},
			K:         kinetics.Num(1),
		}, o)
		Expect(err).To(MatchError(kinetics.ErrAmbiguousSpecies))
	})

	It("rejects malformed input", func() {
		_, err := kinetics.Build(kinetics.Reaction{Reactants: []string{""}, K: kinetics.Num(1)}, opts)
		Expect(err).To(MatchError(kinetics.ErrMalformedInput))

		_, err = kinetics.Build(kinetics.Reaction{Reactants: []string{"A"}, K: kinetics.Sym("t")}, opts)
		Expect(err).To(MatchError(kinetics.ErrMalformedInput))
	})

	It("uses the configured time variable", func() {
		o := opts
		o.TimeVar = "tau"
		sys, err := kinetics.Build(kinetics.Reaction{Reactants: []string{"A"}, K: kinetics.Num(1)}, o)
		Expect(err).NotTo(HaveOccurred())
		Expect(sys.Funcs["A"].String()).To(Equal("A(tau)"))
	})
})
