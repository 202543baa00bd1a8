package shoot_test

import (
	"fmt"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/pvaldi/mshoot"
	"github.com/pvaldi/mshoot/horizon"
	"github.com/pvaldi/mshoot/schema"
	"github.com/pvaldi/mshoot/shoot"
	"github.com/pvaldi/mshoot/shoot/shoottest"
)

// End-to-end transcription: schema declaration through expansion,
// backend instantiation, flattening, and dynamics wiring.
var _ = Describe("Transcriber", func() {
	var be *shoottest.Backend

	BeforeEach(func() {
		be = &shoottest.Backend{}
	})

	pipeline := func(fields []schema.Field, opts ...horizon.Option) *horizon.Table {
		obj, err := schema.New(fields...)
		Expect(err).NotTo(HaveOccurred())
		expanded, err := horizon.Expand(obj, opts...)
		Expect(err).NotTo(HaveOccurred())
		inst, err := be.Instantiate(expanded)
		Expect(err).NotTo(HaveOccurred())
		tbl, err := horizon.Flatten(inst)
		Expect(err).NotTo(HaveOccurred())
		return tbl
	}

	Context("with a scalar state over four knots", func() {
		It("emits one shifted equality per transition", func() {
			tbl := pipeline(
				[]schema.Field{schema.Var("x", mshoot.Scalar(0))},
				horizon.WithFieldHorizon("x", 4),
			)
			Expect(be.Symbols).To(Equal([]string{"x[0]", "x[1]", "x[2]", "x[3]"}))

			e, ok := tbl.Lookup("x")
			Expect(ok).To(BeTrue())
			Expect(e.N).To(Equal(4))

			tr := shoot.New(be, tbl, shoot.WithDefaultIntegrator(shiftIntegrator{}))
			Expect(tr.AddDynamics(testDynamics{states: []string{"x"}}, shoot.FixedStep(1))).To(Succeed())

			Expect(be.Relations).To(HaveLen(3))
			for i, rec := range be.Relations {
				Expect(rec.Mode).To(Equal(shoot.ModeConstraint))
				Expect(rec.Rel.Op).To(Equal(shoot.OpEq))
				Expect(fmt.Sprintf("%v", rec.Rel.Lhs)).To(Equal(fmt.Sprintf("(x[%d] + 1)", i)))
				Expect(fmt.Sprintf("%v", rec.Rel.Rhs)).To(Equal(fmt.Sprintf("x[%d]", i+1)))
			}
		})
	})

	Context("with a nested time-dependent composite", func() {
		It("flattens dotted paths carrying the horizon and wires them", func() {
			inner, err := schema.New(schema.Var("b", mshoot.Scalar(0)))
			Expect(err).NotTo(HaveOccurred())

			tbl := pipeline(
				[]schema.Field{schema.Group("a", inner, schema.TimeVarying())},
				horizon.WithHorizon(3),
			)
			Expect(tbl.Names()).To(Equal([]string{"a.b"}))
			Expect(be.Symbols).To(Equal([]string{"a[0].b", "a[1].b", "a[2].b"}))

			e, _ := tbl.Lookup("a.b")
			Expect(e.N).To(Equal(3))

			tr := shoot.New(be, tbl, shoot.WithDefaultIntegrator(shiftIntegrator{}))
			Expect(tr.AddDynamics(testDynamics{states: []string{"a.b"}}, shoot.FixedStep(0.5))).To(Succeed())

			Expect(be.Relations).To(HaveLen(2))
			Expect(fmt.Sprintf("%v", be.Relations[0].Rel.Lhs)).To(Equal("(a[0].b + 0.5)"))
			Expect(fmt.Sprintf("%v", be.Relations[0].Rel.Rhs)).To(Equal("a[1].b"))
			Expect(be.Relations[1].Name).To(Equal("dynamics[a.b][1]"))
		})
	})

	Context("with a missing step path", func() {
		It("fails before any relation reaches the backend", func() {
			tbl := pipeline(
				[]schema.Field{schema.Var("x", mshoot.Scalar(0))},
				horizon.WithFieldHorizon("x", 4),
			)
			tr := shoot.New(be, tbl, shoot.WithDefaultIntegrator(shiftIntegrator{}))

			err := tr.AddDynamics(testDynamics{states: []string{"x"}}, shoot.NamedStep("dt"))
			Expect(err).To(MatchError(mshoot.ErrConfiguration))
			Expect(be.Relations).To(BeEmpty())
		})
	})

	Context("with states and inputs mixed", func() {
		It("broadcasts constant inputs across the horizon", func() {
			tbl := pipeline(
				[]schema.Field{
					schema.Var("x", mshoot.Scalar(0)),
					schema.Par("u", mshoot.Scalar(0)),
				},
				horizon.WithFieldHorizon("x", 3),
			)
			u, _ := tbl.Lookup("u")
			Expect(u.N).To(Equal(1))

			tr := shoot.New(be, tbl, shoot.WithDefaultIntegrator(shiftIntegrator{}))
			dyn := testDynamics{states: []string{"x"}, inputs: []string{"u"}}
			Expect(tr.AddDynamics(dyn, shoot.FixedStep(1))).To(Succeed())
			Expect(be.Relations).To(HaveLen(2))
		})
	})
})
