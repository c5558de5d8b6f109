package conformance_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/hdlsim/behavior"
	"github.com/sarchlab/hdlsim/behavior/expr"
	"github.com/sarchlab/hdlsim/components"
	"github.com/sarchlab/hdlsim/conformance"
	"github.com/sarchlab/hdlsim/lower"
)

func combinationalHarness(c *behavior.Combinational) *conformance.Harness {
	ir, err := lower.FromCombinational(c, lower.Options{})
	Expect(err).NotTo(HaveOccurred())
	rt := behavior.NewRuntime()
	rt.AddCombinational(c)
	return conformance.NewHarness(ir, c, rt)
}

func sequentialHarness(s *behavior.Sequential) *conformance.Harness {
	ir, err := lower.FromSequential(s, lower.Options{})
	Expect(err).NotTo(HaveOccurred())
	rt := behavior.NewRuntime()
	rt.AddSequential(s)
	return conformance.NewHarness(ir, s, rt)
}

var _ = Describe("Harness", func() {
	It("proves the half adder behaviorally and structurally equivalent", func() {
		ha, err := components.HalfAdder("ha")
		Expect(err).NotTo(HaveOccurred())
		h := combinationalHarness(ha)

		stim := conformance.NewStimulus().
			WithPokeScalar("a", 1).WithPokeScalar("b", 1).WithCycle().
			WithPokeScalar("a", 1).WithPokeScalar("b", 0).WithCycle().
			WithPokeScalar("a", 0).WithPokeScalar("b", 0).WithCycle()

		report, err := h.Run(stim)
		Expect(err).NotTo(HaveOccurred())
		Expect(report.Passed()).To(BeTrue(), report.Table)
		Expect(report.CyclesExecuted).To(Equal(3))
		Expect(report.RunID).NotTo(BeEmpty())

		sum, _ := ha.GetOutput("sum")
		cout, _ := ha.GetOutput("cout")
		Expect(sum).To(Equal(uint64(0)))
		Expect(cout).To(Equal(uint64(0)))
	})

	It("proves the 8-bit ripple-carry adder equivalent, carry and overflow included", func() {
		adder, err := components.RippleCarryAdder("rca8", 8)
		Expect(err).NotTo(HaveOccurred())
		h := combinationalHarness(adder)

		stim := conformance.NewStimulus().
			WithPokeScalar("a", 0xFF).WithPokeScalar("b", 0x01).WithPokeScalar("cin", 0).WithCycle().
			WithPokeScalar("a", 0x7F).WithPokeScalar("b", 0x01).WithCycle().
			WithPokeScalar("a", 0x55).WithPokeScalar("b", 0xAA).WithPokeScalar("cin", 1).WithCycle()

		report, err := h.Run(stim)
		Expect(err).NotTo(HaveOccurred())
		Expect(report.Passed()).To(BeTrue(), report.Table)
	})

	It("proves the 8-bit ALU equivalent across its operation table", func() {
		alu, err := components.Alu8("alu")
		Expect(err).NotTo(HaveOccurred())
		h := combinationalHarness(alu)

		stim := conformance.NewStimulus().
			WithPokeScalar("opsel", uint64(components.AluAdd)).
			WithPokeScalar("a", 10).WithPokeScalar("b", 5).WithCycle().
			WithPokeScalar("opsel", uint64(components.AluSub)).
			WithPokeScalar("a", 10).WithPokeScalar("b", 10).WithCycle().
			WithPokeScalar("opsel", uint64(components.AluAnd)).
			WithPokeScalar("a", 0xF0).WithPokeScalar("b", 0x0F).WithCycle().
			WithPokeScalar("opsel", uint64(components.AluXor)).
			WithPokeScalar("a", 0x3C).WithPokeScalar("b", 0xFF).WithCycle().
			WithPokeScalar("opsel", uint64(components.AluNot)).
			WithPokeScalar("a", 0x00).WithCycle()

		report, err := h.Run(stim)
		Expect(err).NotTo(HaveOccurred())
		Expect(report.Passed()).To(BeTrue(), report.Table)

		result, _ := alu.GetOutput("result")
		zero, _ := alu.GetOutput("zero")
		Expect(result).To(Equal(uint64(0xFF)))
		Expect(zero).To(Equal(uint64(0)))
	})

	It("proves the restoring divider equivalent, zero divisor included", func() {
		div, err := components.RestoringDivider("div8", 8)
		Expect(err).NotTo(HaveOccurred())
		h := combinationalHarness(div)

		stim := conformance.NewStimulus().
			WithPokeScalar("d", 100).WithPokeScalar("v", 7).WithCycle().
			WithPokeScalar("d", 255).WithPokeScalar("v", 16).WithCycle().
			WithPokeScalar("d", 42).WithPokeScalar("v", 0).WithCycle()

		report, err := h.Run(stim)
		Expect(err).NotTo(HaveOccurred())
		Expect(report.Passed()).To(BeTrue(), report.Table)
	})

	It("proves the 4-bit counter equivalent across reset, wrap, and overflow", func() {
		ctr, err := components.Counter("ctr", 4)
		Expect(err).NotTo(HaveOccurred())
		h := sequentialHarness(ctr)

		stim := conformance.NewStimulus().
			WithPokeScalar("rst", 1).WithPokeScalar("en", 1).WithClockEdge()
		stim.WithPokeScalar("rst", 0)
		for i := 0; i < 18; i++ {
			stim.WithClockEdge()
		}

		report, err := h.Run(stim)
		Expect(err).NotTo(HaveOccurred())
		Expect(report.Passed()).To(BeTrue(), report.Table)
		Expect(report.CyclesExecuted).To(Equal(19))

		q, _ := ctr.GetOutput("q")
		Expect(q).To(Equal(uint64(2))) // 18 enabled edges past reset, mod 16
	})

	It("proves two cross-wired registers swap rather than collapse", func() {
		swap, err := behavior.NewSequential("swap",
			[]behavior.Port{{Name: "clk", Width: 1}, {Name: "rst", Width: 1}},
			[]behavior.Port{{Name: "q1", Width: 1}, {Name: "q2", Width: 1}},
			nil, "clk", "",
			behavior.ResetSpec{Signal: "rst", ResetValues: map[string]uint64{"q1": 0, "q2": 1}},
			[]behavior.Assignment{
				{Target: "q1", TargetWidth: 1, Expr: expr.Ref("q2", 1)},
				{Target: "q2", TargetWidth: 1, Expr: expr.Ref("q1", 1)},
			},
		)
		Expect(err).NotTo(HaveOccurred())
		h := sequentialHarness(swap)

		stim := conformance.NewStimulus().
			WithPokeScalar("rst", 1).WithClockEdge().
			WithPokeScalar("rst", 0).WithClockEdge().
			WithClockEdge()

		report, err := h.Run(stim)
		Expect(err).NotTo(HaveOccurred())
		Expect(report.Passed()).To(BeTrue(), report.Table)

		// Two ticks past the (0,1) reset state lands back on (0,1); a
		// sample-after-commit bug would have collapsed both to the same bit.
		q1, _ := swap.GetOutput("q1")
		q2, _ := swap.GetOutput("q2")
		Expect(q1).To(Equal(uint64(0)))
		Expect(q2).To(Equal(uint64(1)))
	})

	It("reports the first mismatch with cycle, port, and both values", func() {
		ha, err := components.HalfAdder("ha")
		Expect(err).NotTo(HaveOccurred())
		ir, err := lower.FromCombinational(ha, lower.Options{})
		Expect(err).NotTo(HaveOccurred())

		// Cross the output port maps so the gate-level sum reads cout's net.
		ir.Outputs["sum"], ir.Outputs["cout"] = ir.Outputs["cout"], ir.Outputs["sum"]

		rt := behavior.NewRuntime()
		rt.AddCombinational(ha)
		h := conformance.NewHarness(ir, ha, rt)

		stim := conformance.NewStimulus().
			WithPokeScalar("a", 1).WithPokeScalar("b", 0).WithCycle()
		report, err := h.Run(stim)
		Expect(err).NotTo(HaveOccurred())
		Expect(report.Passed()).To(BeFalse())
		Expect(report.FirstMismatch).NotTo(BeNil())
		Expect(report.FirstMismatch.Cycle).To(Equal(0))
		Expect(report.FirstMismatch.Port).To(Equal("cout"))
		Expect(report.FirstMismatch.Expected).To(Equal(uint64(0)))
		Expect(report.FirstMismatch.Actual).To(Equal(uint64(1)))
		Expect(report.Table).To(ContainSubstring("MISMATCH"))
	})
})
