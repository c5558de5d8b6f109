package components_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/hdlsim/behavior"
	"github.com/sarchlab/hdlsim/components"
)

var _ = Describe("HalfAdder", func() {
	It("matches the truth table", func() {
		ha, err := components.HalfAdder("ha")
		Expect(err).NotTo(HaveOccurred())
		rt := behavior.NewRuntime()
		rt.AddCombinational(ha)

		Expect(ha.SetInput("a", 1)).To(Succeed())
		Expect(ha.SetInput("b", 1)).To(Succeed())
		Expect(rt.Propagate()).To(Succeed())
		sum, _ := ha.GetOutput("sum")
		cout, _ := ha.GetOutput("cout")
		Expect(sum).To(Equal(uint64(0)))
		Expect(cout).To(Equal(uint64(1)))
	})
})

var _ = Describe("FullAdder", func() {
	It("carries correctly on 1+1+1", func() {
		fa, err := components.FullAdder("fa")
		Expect(err).NotTo(HaveOccurred())
		rt := behavior.NewRuntime()
		rt.AddCombinational(fa)

		Expect(fa.SetInput("a", 1)).To(Succeed())
		Expect(fa.SetInput("b", 1)).To(Succeed())
		Expect(fa.SetInput("cin", 1)).To(Succeed())
		Expect(rt.Propagate()).To(Succeed())
		sum, _ := fa.GetOutput("sum")
		cout, _ := fa.GetOutput("cout")
		Expect(sum).To(Equal(uint64(1)))
		Expect(cout).To(Equal(uint64(1)))
	})
})

var _ = Describe("RippleCarryAdder", func() {
	drive := func(adder *behavior.Combinational, rt *behavior.Runtime, a, b, cin uint64) (sum, cout, overflow uint64) {
		Expect(adder.SetInput("a", a)).To(Succeed())
		Expect(adder.SetInput("b", b)).To(Succeed())
		Expect(adder.SetInput("cin", cin)).To(Succeed())
		Expect(rt.Propagate()).To(Succeed())
		sum, _ = adder.GetOutput("sum")
		cout, _ = adder.GetOutput("cout")
		overflow, _ = adder.GetOutput("overflow")
		return sum, cout, overflow
	}

	It("adds 8-bit operands and carries out of the top bit", func() {
		adder, err := components.RippleCarryAdder("rca8", 8)
		Expect(err).NotTo(HaveOccurred())
		rt := behavior.NewRuntime()
		rt.AddCombinational(adder)

		sum, cout, overflow := drive(adder, rt, 250, 10, 0)
		Expect(sum).To(Equal(uint64(4))) // 260 mod 256
		Expect(cout).To(Equal(uint64(1)))
		Expect(overflow).To(Equal(uint64(0)))
	})

	It("distinguishes unsigned carry from signed overflow", func() {
		adder, err := components.RippleCarryAdder("rca8", 8)
		Expect(err).NotTo(HaveOccurred())
		rt := behavior.NewRuntime()
		rt.AddCombinational(adder)

		sum, cout, overflow := drive(adder, rt, 0xFF, 0x01, 0)
		Expect(sum).To(Equal(uint64(0x00)))
		Expect(cout).To(Equal(uint64(1)))
		Expect(overflow).To(Equal(uint64(0)))

		sum, cout, overflow = drive(adder, rt, 0x7F, 0x01, 0)
		Expect(sum).To(Equal(uint64(0x80)))
		Expect(cout).To(Equal(uint64(0)))
		Expect(overflow).To(Equal(uint64(1)))
	})
})

var _ = Describe("RippleCarrySubtractor", func() {
	It("reports borrow on underflow", func() {
		sub, err := components.RippleCarrySubtractor("rcs8", 8)
		Expect(err).NotTo(HaveOccurred())
		rt := behavior.NewRuntime()
		rt.AddCombinational(sub)

		Expect(sub.SetInput("a", 3)).To(Succeed())
		Expect(sub.SetInput("b", 5)).To(Succeed())
		Expect(sub.SetInput("bin", 0)).To(Succeed())
		Expect(rt.Propagate()).To(Succeed())

		diff, _ := sub.GetOutput("diff")
		borrow, _ := sub.GetOutput("borrow")
		Expect(diff).To(Equal(uint64(254))) // 3-5 mod 256
		Expect(borrow).To(Equal(uint64(1)))
	})
})

var _ = Describe("Alu8", func() {
	It("selects among ops and raises zero on a null result", func() {
		alu, err := components.Alu8("alu")
		Expect(err).NotTo(HaveOccurred())
		rt := behavior.NewRuntime()
		rt.AddCombinational(alu)

		Expect(alu.SetInput("a", 5)).To(Succeed())
		Expect(alu.SetInput("b", 5)).To(Succeed())
		Expect(alu.SetInput("opsel", uint64(components.AluSub))).To(Succeed())
		Expect(rt.Propagate()).To(Succeed())

		result, _ := alu.GetOutput("result")
		zero, _ := alu.GetOutput("zero")
		Expect(result).To(Equal(uint64(0)))
		Expect(zero).To(Equal(uint64(1)))
	})

	It("computes bitwise AND", func() {
		alu, err := components.Alu8("alu")
		Expect(err).NotTo(HaveOccurred())
		rt := behavior.NewRuntime()
		rt.AddCombinational(alu)

		Expect(alu.SetInput("a", 0b1100)).To(Succeed())
		Expect(alu.SetInput("b", 0b1010)).To(Succeed())
		Expect(alu.SetInput("opsel", uint64(components.AluAnd))).To(Succeed())
		Expect(rt.Propagate()).To(Succeed())

		result, _ := alu.GetOutput("result")
		Expect(result).To(Equal(uint64(0b1000)))
	})
})

var _ = Describe("Mux2", func() {
	It("selects b when sel is 1", func() {
		mux, err := components.Mux2("mux2", 4)
		Expect(err).NotTo(HaveOccurred())
		rt := behavior.NewRuntime()
		rt.AddCombinational(mux)

		Expect(mux.SetInput("a", 3)).To(Succeed())
		Expect(mux.SetInput("b", 9)).To(Succeed())
		Expect(mux.SetInput("sel", 1)).To(Succeed())
		Expect(rt.Propagate()).To(Succeed())
		y, _ := mux.GetOutput("y")
		Expect(y).To(Equal(uint64(9)))
	})
})

var _ = Describe("MuxN", func() {
	It("routes the input addressed by sel", func() {
		mux, err := components.MuxN("mux4", 4, 4)
		Expect(err).NotTo(HaveOccurred())
		rt := behavior.NewRuntime()
		rt.AddCombinational(mux)

		Expect(mux.SetInput("in0", 1)).To(Succeed())
		Expect(mux.SetInput("in1", 2)).To(Succeed())
		Expect(mux.SetInput("in2", 3)).To(Succeed())
		Expect(mux.SetInput("in3", 4)).To(Succeed())
		Expect(mux.SetInput("sel", 2)).To(Succeed())
		Expect(rt.Propagate()).To(Succeed())
		y, _ := mux.GetOutput("y")
		Expect(y).To(Equal(uint64(3)))
	})
})

var _ = Describe("DFlipFlop", func() {
	It("holds d from the pre-tick snapshot and applies sync reset", func() {
		dff, err := components.DFlipFlop("dff", 4, true, false, false, 0b1010)
		Expect(err).NotTo(HaveOccurred())
		rt := behavior.NewRuntime()
		rt.AddSequential(dff)

		Expect(dff.SetInput("d", 0b0110)).To(Succeed())
		Expect(dff.SetInput("rst", 0)).To(Succeed())
		Expect(rt.Tick(true)).To(Succeed())
		q, _ := dff.GetOutput("q")
		Expect(q).To(Equal(uint64(0b0110)))

		Expect(dff.SetInput("rst", 1)).To(Succeed())
		Expect(rt.Tick(true)).To(Succeed())
		q, _ = dff.GetOutput("q")
		Expect(q).To(Equal(uint64(0b1010)))
	})
})

var _ = Describe("Counter", func() {
	It("increments while enabled and resets synchronously", func() {
		ctr, err := components.Counter("ctr", 4)
		Expect(err).NotTo(HaveOccurred())
		rt := behavior.NewRuntime()
		rt.AddSequential(ctr)

		Expect(ctr.SetInput("rst", 1)).To(Succeed())
		Expect(ctr.SetInput("en", 0)).To(Succeed())
		Expect(rt.Tick(true)).To(Succeed())
		q, _ := ctr.GetOutput("q")
		Expect(q).To(Equal(uint64(0)))

		Expect(ctr.SetInput("rst", 0)).To(Succeed())
		Expect(ctr.SetInput("en", 1)).To(Succeed())
		Expect(rt.Tick(true)).To(Succeed())
		Expect(rt.Tick(true)).To(Succeed())
		Expect(rt.Tick(true)).To(Succeed())
		q, _ = ctr.GetOutput("q")
		Expect(q).To(Equal(uint64(3)))
	})

	It("flags overflow on the terminal count and wraps to zero", func() {
		ctr, err := components.Counter("ctr", 4)
		Expect(err).NotTo(HaveOccurred())
		rt := behavior.NewRuntime()
		rt.AddSequential(ctr)

		Expect(ctr.SetInput("rst", 1)).To(Succeed())
		Expect(ctr.SetInput("en", 1)).To(Succeed())
		Expect(rt.Tick(true)).To(Succeed())
		Expect(ctr.SetInput("rst", 0)).To(Succeed())

		for i := 1; i <= 18; i++ {
			Expect(rt.Tick(true)).To(Succeed())
			q, _ := ctr.GetOutput("q")
			overflow, _ := ctr.GetOutput("overflow")
			Expect(q).To(Equal(uint64(i%16)), "after edge %d", i)
			if i%16 == 15 {
				Expect(overflow).To(Equal(uint64(1)), "after edge %d", i)
			} else {
				Expect(overflow).To(Equal(uint64(0)), "after edge %d", i)
			}
		}
	})
})

var _ = Describe("RestoringDivider", func() {
	It("divides matching the gate-level algorithm", func() {
		div, err := components.RestoringDivider("div8", 8)
		Expect(err).NotTo(HaveOccurred())
		rt := behavior.NewRuntime()
		rt.AddCombinational(div)

		Expect(div.SetInput("d", 23)).To(Succeed())
		Expect(div.SetInput("v", 3)).To(Succeed())
		Expect(rt.Propagate()).To(Succeed())
		q, _ := div.GetOutput("q")
		r, _ := div.GetOutput("r")
		Expect(q).To(Equal(uint64(7)))
		Expect(r).To(Equal(uint64(2)))
	})

	It("treats division by zero as all-ones quotient, dividend remainder", func() {
		div, err := components.RestoringDivider("div8", 8)
		Expect(err).NotTo(HaveOccurred())
		rt := behavior.NewRuntime()
		rt.AddCombinational(div)

		Expect(div.SetInput("d", 23)).To(Succeed())
		Expect(div.SetInput("v", 0)).To(Succeed())
		Expect(rt.Propagate()).To(Succeed())
		q, _ := div.GetOutput("q")
		r, _ := div.GetOutput("r")
		Expect(q).To(Equal(uint64(255)))
		Expect(r).To(Equal(uint64(23)))
	})
})
