package kinetics_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/rxnrate/internal/kinetics"
)

var _ = Describe("Param", func() {
	It("parses numbers and names from flags", func() {
		Expect(kinetics.ParseParam("2.5")).To(Equal(kinetics.Num(2.5)))
		Expect(kinetics.ParseParam("k1")).To(Equal(kinetics.Sym("k1")))
	})

	It("decodes YAML scalars by type", func() {
		var doc struct {
			K kinetics.Param `yaml:"k"`
			V kinetics.Param `yaml:"v"`
			Q kinetics.Param `yaml:"q"`
		}
		Expect(yaml.Unmarshal([]byte("k: k1\nv: 2.5\nq: '3'\n"), &doc)).To(Succeed())
		Expect(doc.K).To(Equal(kinetics.Sym("k1")))
		Expect(doc.V).To(Equal(kinetics.Num(2.5)))
		Expect(doc.Q).To(Equal(kinetics.Sym("3")))
	})

	It("rejects non-scalar YAML values", func() {
		var doc struct {
			K kinetics.Param `yaml:"k"`
		}
		Expect(yaml.Unmarshal([]byte("k: true\n"), &doc)).To(MatchError(kinetics.ErrMalformedInput))
		Expect(yaml.Unmarshal([]byte("k: [1, 2]\n"), &doc)).To(MatchError(kinetics.ErrMalformedInput))
	})

	It("encodes back to YAML", func() {
		out, err := yaml.Marshal(map[string]kinetics.Param{"a": kinetics.Sym("a_0"), "b": kinetics.Num(2)})
		Expect(err).NotTo(HaveOccurred())
		Expect(string(out)).To(Equal("a: a_0\nb: 2\n"))
	})

	It("rejects non-finite numbers", func() {
		_, err := kinetics.Resolve(kinetics.Num(math.Inf(1)))
		Expect(err).To(MatchError(kinetics.ErrMalformedInput))
	})

	It("accepts negative and zero values", func() {
		v, err := kinetics.Resolve(kinetics.Num(-0.5))
		Expect(err).NotTo(HaveOccurred())
		Expect(v.String()).To(Equal("-0.5"))
	})
})

var _ = Describe("Policies", func() {
	It("parses overlap policies", func() {
		p, err := kinetics.ParseOverlapPolicy("Catalytic")
		Expect(err).NotTo(HaveOccurred())
		Expect(p).To(Equal(kinetics.Catalytic))

		p, err = kinetics.ParseOverlapPolicy("")
		Expect(err).NotTo(HaveOccurred())
		Expect(p).To(Equal(kinetics.ConsumedFirst))

		_, err = kinetics.ParseOverlapPolicy("sometimes")
		Expect(err).To(HaveOccurred())
	})

	It("parses missing-value policies", func() {
		p, err := kinetics.ParseMissingPolicy("reject")
		Expect(err).NotTo(HaveOccurred())
		Expect(p).To(Equal(kinetics.RejectMissing))

		_, err = kinetics.ParseMissingPolicy("guess")
		Expect(err).To(HaveOccurred())
	})
})
