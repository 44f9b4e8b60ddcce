package kinetics_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/rxnrate/internal/kinetics"
	"github.com/san-kum/rxnrate/internal/symbolic"
)

var _ = Describe("Verify", func() {
	opts := kinetics.DefaultOptions()
	r := kinetics.Reaction{
		Reactants: []string{"A", "B"},
		Products:  []string{"C"},
		K:         kinetics.Num(1),
		Initial:   map[string]kinetics.Param{"A": kinetics.Num(1), "B": kinetics.Num(1), "E": kinetics.Num(5)},
	}

	It("derives conserved quantities from stoichiometric signs", func() {
		sys, err := kinetics.Build(r, opts)
		Expect(err).NotTo(HaveOccurred())

		var names []string
		for _, inv := range kinetics.ConservedQuantities(sys) {
			names = append(names, inv.Name)
		}
		Expect(names).To(Equal([]string{"E", "A - B", "A + C", "B + C"}))
	})

	It("accepts the canonical solution", func() {
		sol, err := kinetics.Solve(r, opts)
		Expect(err).NotTo(HaveOccurred())

		report, err := kinetics.Verify(sol.System, sol.Solutions, nil, []float64{0.5, 1, 3})
		Expect(err).NotTo(HaveOccurred())
		Expect(report.OK(1e-12)).To(BeTrue())
		Expect(report.Drift).To(HaveLen(4))
	})

	It("flags the heuristic solution", func() {
		sys, err := kinetics.Build(r, opts)
		Expect(err).NotTo(HaveOccurred())
		sols, err := kinetics.DirectFirstOrderHeuristic{}.Trajectories(r, opts)
		Expect(err).NotTo(HaveOccurred())
		sols["E"] = symbolic.N(5)

		report, err := kinetics.Verify(sys, sols, nil, []float64{0.5, 1, 3})
		Expect(err).NotTo(HaveOccurred())
		Expect(report.OK(1e-3)).To(BeFalse())
	})

	It("reports unbound parameters", func() {
		sol, err := kinetics.Solve(kinetics.Reaction{
			Reactants: []string{"A"},
			K:         kinetics.Sym("k"),
			Initial:   map[string]kinetics.Param{"A": kinetics.Num(1)},
		}, opts)
		Expect(err).NotTo(HaveOccurred())

		_, err = kinetics.Verify(sol.System, sol.Solutions, nil, []float64{1})
		Expect(err).To(MatchError(symbolic.ErrUnevaluated))
	})
})
