package gatesim_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/hdlsim/gatesim"
	"github.com/sarchlab/hdlsim/netlist"
)

func halfAdderIR() *netlist.IR {
	ir := netlist.New("half_adder", 4)
	ir.Inputs["a"] = []int{0}
	ir.Inputs["b"] = []int{1}
	ir.Outputs["sum"] = []int{2}
	ir.Outputs["cout"] = []int{3}
	ir.Gates = []netlist.Gate{
		{Type: netlist.XOR, Inputs: []int{0, 1}, Output: 2},
		{Type: netlist.AND, Inputs: []int{0, 1}, Output: 3},
	}
	return ir
}

var _ = Describe("Simulator", func() {
	It("evaluates a half adder's truth table in lane 0", func() {
		sim, err := gatesim.New(halfAdderIR(), gatesim.Options{Lanes: 1})
		Expect(err).NotTo(HaveOccurred())

		cases := []struct{ a, b, sum, cout uint64 }{
			{0, 0, 0, 0}, {1, 0, 1, 0}, {0, 1, 1, 0}, {1, 1, 0, 1},
		}
		for _, c := range cases {
			Expect(sim.PokeScalar("a", 0, c.a)).To(Succeed())
			Expect(sim.PokeScalar("b", 0, c.b)).To(Succeed())
			Expect(sim.Evaluate()).To(Succeed())

			sum, err := sim.PeekScalar("sum", 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(sum).To(Equal(c.sum))

			cout, err := sim.PeekScalar("cout", 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(cout).To(Equal(c.cout))
		}
	})

	It("packs independent lanes: XOR with lanes=64", func() {
		sim, err := gatesim.New(halfAdderIR(), gatesim.Options{Lanes: 64})
		Expect(err).NotTo(HaveOccurred())

		Expect(sim.Poke("a", []gatesim.Word{0xAAAAAAAAAAAAAAAA})).To(Succeed())
		Expect(sim.Poke("b", []gatesim.Word{0x5555555555555555})).To(Succeed())
		Expect(sim.Evaluate()).To(Succeed())

		sum, err := sim.Peek("sum")
		Expect(err).NotTo(HaveOccurred())
		Expect(sum).To(Equal([]gatesim.Word{0xFFFFFFFFFFFFFFFF}))
	})

	It("rejects pokes to unknown ports", func() {
		sim, err := gatesim.New(halfAdderIR(), gatesim.Options{Lanes: 1})
		Expect(err).NotTo(HaveOccurred())
		err = sim.PokeScalar("nope", 0, 1)
		Expect(err).To(HaveOccurred())
	})

	It("rejects a non-power-of-two lane count", func() {
		_, err := gatesim.New(halfAdderIR(), gatesim.Options{Lanes: 3})
		Expect(err).To(HaveOccurred())
	})

	Describe("Tick", func() {
		// Two DFFs whose d inputs are each other's q: a classic swap, used
		// to prove the two-phase sample/commit contract:
		// neither DFF may observe the other's freshly committed value
		// within the same Tick.
		swapIR := func() *netlist.IR {
			ir := netlist.New("swap", 2)
			ir.Outputs["q0"] = []int{0}
			ir.Outputs["q1"] = []int{1}
			ir.Dffs = []netlist.Dff{
				{D: 1, Q: 0, ResetValue: 1},
				{D: 0, Q: 1, ResetValue: 0},
			}
			return ir
		}

		It("swaps cleanly across one tick instead of corrupting state", func() {
			sim, err := gatesim.New(swapIR(), gatesim.Options{Lanes: 8})
			Expect(err).NotTo(HaveOccurred())
			Expect(sim.Reset()).To(Succeed())

			q0, err := sim.PeekScalar("q0", 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(q0).To(Equal(uint64(1)))
			q1, err := sim.PeekScalar("q1", 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(q1).To(Equal(uint64(0)))

			Expect(sim.Tick()).To(Succeed())

			q0, err = sim.PeekScalar("q0", 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(q0).To(Equal(uint64(0)))
			q1, err = sim.PeekScalar("q1", 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(q1).To(Equal(uint64(1)))
		})
	})

	It("zeroes nets and applies each dff's reset_value on Reset", func() {
		ir := netlist.New("counter_bit", 2)
		ir.Dffs = []netlist.Dff{{D: 0, Q: 1, ResetValue: 1}}
		ir.Outputs["d"] = []int{0}
		ir.Outputs["q"] = []int{1}
		// ResetValue: 1 seeds every net high, so Reset's zeroing is observable.
		sim, err := gatesim.New(ir, gatesim.Options{Lanes: 4, ResetValue: 1})
		Expect(err).NotTo(HaveOccurred())

		Expect(sim.Reset()).To(Succeed())

		d, err := sim.Peek("d")
		Expect(err).NotTo(HaveOccurred())
		Expect(d).To(Equal([]gatesim.Word{0}))
		q, err := sim.Peek("q")
		Expect(err).NotTo(HaveOccurred())
		Expect(q).To(Equal([]gatesim.Word{0xF}))
	})
})
