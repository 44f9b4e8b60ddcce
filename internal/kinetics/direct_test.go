package kinetics_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/rxnrate/internal/kinetics"
	"github.com/san-kum/rxnrate/internal/symbolic"
)

var _ = Describe("Direct transforms", func() {
	opts := kinetics.DefaultOptions()

	It("computes transforms for A + B + E -> C + D", func() {
		tr, err := kinetics.CalculateLaplaceTransforms(kinetics.Reaction{
			Reactants: []string{"A", "B", "E"},
			Products:  []string{"C", "D"},
			K:         kinetics.Num(4.0),
			Initial: map[string]kinetics.Param{
				"A": kinetics.Num(1), "B": kinetics.Num(1), "C": kinetics.Num(0), "D": kinetics.Num(0), "E": kinetics.Num(3),
			},
		}, opts)
		Expect(err).NotTo(HaveOccurred())
		Expect(tr.Domain).To(HaveLen(5))
		Expect(tr.Domain["A"].String()).To(Equal("1/(s + 4)"))
		Expect(tr.Domain["E"].String()).To(Equal("3/(s + 4)"))
		Expect(tr.Domain["C"].Equal(tr.Domain["D"])).To(BeTrue())
		Expect(tr.Skipped).To(BeEmpty())

		sols, err := kinetics.InverseLaplaceTransforms(tr, opts)
		Expect(err).NotTo(HaveOccurred())
		Expect(sols["A"].String()).To(Equal("exp(-4*t)"))

		// L^-1[1/(s (s+4)^2)] = (1 - exp(-4t) - 4t exp(-4t)) / 16
		c := sols["C"]
		for _, x := range []float64{0.1, 1} {
			want := (1 - math.Exp(-4*x) - 4*x*math.Exp(-4*x)) / 16
			Expect(at(c, x, nil)).To(BeNumerically("~", want, 1e-12))
		}
	})

	It("reports products beyond the second as skipped", func() {
		tr, err := kinetics.CalculateLaplaceTransforms(kinetics.Reaction{
			Reactants: []string{"A"},
			Products:  []string{"C", "D", "F"},
			K:         kinetics.Sym("k"),
			Initial:   map[string]kinetics.Param{"A": kinetics.Sym("a_0")},
		}, opts)
		Expect(err).NotTo(HaveOccurred())
		Expect(tr.Skipped).To(Equal([]string{"F"}))
		Expect(tr.Domain).NotTo(HaveKey("F"))

		sols, err := kinetics.InverseLaplaceTransforms(tr, opts)
		Expect(err).NotTo(HaveOccurred())
		Expect(sols).To(HaveLen(3))
		Expect(sols).NotTo(HaveKey("F"))
	})

	DescribeTable("overlap policies",
		func(policy kinetics.OverlapPolicy, formed bool) {
			o := opts
			o.Overlap = policy
			tr, err := kinetics.CalculateLaplaceTransforms(kinetics.Reaction{
				Reactants: []string{"A", "B"},
				Products:  []string{"B", "C"},
				K:         kinetics.Num(1),
				Initial:   map[string]kinetics.Param{"A": kinetics.Num(1), "B": kinetics.Num(2), "C": kinetics.Num(0)},
			}, o)
			Expect(err).NotTo(HaveOccurred())
			Expect(tr.Domain).To(HaveLen(3))
			if formed {
				Expect(tr.Domain["B"].Equal(tr.Domain["C"])).To(BeTrue())
				return
			}
			Expect(tr.Domain["B"].String()).To(Equal("2/(s + 1)"))
			Expect(tr.Domain["B"].Equal(tr.Domain["C"])).To(BeFalse())
		},
		Entry("consumed first keeps the decay", kinetics.ConsumedFirst, false),
		Entry("reformed last takes the formation", kinetics.ReformedLast, true),
		Entry("catalytic keeps the decay", kinetics.Catalytic, false),
	)

	It("rejects overlapping species under the reject policy", func() {
		o := opts
		o.Overlap = kinetics.RejectOverlap
		_, err := kinetics.CalculateLaplaceTransforms(kinetics.Reaction{
			Reactants: []string{"A", "B"},
			Products:  []string{"B", "C"},
			K:         kinetics.Num(1),
		}, o)
		Expect(err).To(MatchError(kinetics.ErrAmbiguousSpecies))
	})

	It("needs at least one reactant", func() {
		_, err := kinetics.CalculateLaplaceTransforms(kinetics.Reaction{Products: []string{"C"}, K: kinetics.Num(1)}, opts)
		Expect(err).To(MatchError(kinetics.ErrMalformedInput))
	})

	It("uses the configured frequency variable", func() {
		o := opts
		o.FreqVar = "p"
		tr, err := kinetics.CalculateLaplaceTransforms(kinetics.Reaction{
			Reactants: []string{"A"},
			K:         kinetics.Num(1),
			Initial:   map[string]kinetics.Param{"A": kinetics.Num(2)},
		}, o)
		Expect(err).NotTo(HaveOccurred())
		Expect(symbolic.FreeSymbols(tr.Domain["A"])).To(Equal([]string{"p"}))
	})
})

var _ = Describe("Strategies", func() {
	opts := kinetics.DefaultOptions()
	registry := kinetics.NewRegistry()
	times := []float64{0, 0.25, 0.5, 1, 2, 4}

	It("lists the registered strategies", func() {
		Expect(registry.List()).To(Equal([]string{"direct", "mass-action"}))
		_, err := registry.Get("euler")
		Expect(err).To(MatchError(kinetics.ErrUnknownStrategy))
	})

	It("agrees for unit-rate decay into an empty product", func() {
		canonical, err := registry.Get("mass-action")
		Expect(err).NotTo(HaveOccurred())
		heuristic, err := registry.Get("direct")
		Expect(err).NotTo(HaveOccurred())
		Expect(canonical.Exact()).To(BeTrue())
		Expect(heuristic.Exact()).To(BeFalse())

		devs, err := kinetics.Compare(kinetics.Reaction{
			Reactants: []string{"A"},
			Products:  []string{"B"},
			K:         kinetics.Num(1),
			Initial:   map[string]kinetics.Param{"A": kinetics.Num(1)},
		}, canonical, heuristic, nil, times, opts)
		Expect(err).NotTo(HaveOccurred())
		Expect(devs).To(HaveLen(2))
		for _, d := range devs {
			Expect(d.Missing).To(BeFalse())
			Expect(d.MaxAbs).To(BeNumerically("<", 1e-12), d.Species)
		}
	})

	It("diverges for a bimolecular reaction", func() {
		devs, err := kinetics.Compare(kinetics.Reaction{
			Reactants: []string{"A", "B"},
			Products:  []string{"C"},
			K:         kinetics.Num(1),
			Initial:   map[string]kinetics.Param{"A": kinetics.Num(1), "B": kinetics.Num(1)},
		}, kinetics.MassActionLaplace{}, kinetics.DirectFirstOrderHeuristic{}, nil, times, opts)
		Expect(err).NotTo(HaveOccurred())

		worst := 0.0
		for _, d := range devs {
			worst = math.Max(worst, d.MaxAbs)
		}
		Expect(worst).To(BeNumerically(">", 0.1))
	})

	It("flags species only one strategy produces", func() {
		devs, err := kinetics.Compare(kinetics.Reaction{
			Reactants: []string{"A"},
			Products:  []string{"C", "D", "F"},
			K:         kinetics.Num(1),
			Initial:   map[string]kinetics.Param{"A": kinetics.Num(1)},
		}, kinetics.MassActionLaplace{}, kinetics.DirectFirstOrderHeuristic{}, nil, times, opts)
		Expect(err).NotTo(HaveOccurred())
		Expect(devs[len(devs)-1].Species).To(Equal("F"))
		Expect(devs[len(devs)-1].Missing).To(BeTrue())
	})
})
