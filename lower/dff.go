package lower

import "github.com/sarchlab/hdlsim/netlist"

// RegisterSpec configures one bit lane of a register emitted by AddRegister.
type RegisterSpec struct {
	Clock      int  // unused structurally; registers are advanced by the evaluator's tick, not wired to a clock net
	Reset      *int // 1-bit net, nil disables reset
	AsyncReset bool
	ResetValue uint64
	Enable     *int // 1-bit net, nil means always enabled
}

// AddRegister emits one DFF per bit of d, allocating fresh q nets, wiring
// synchronous reset directly into the D-input (muxed ahead of the
// flip-flop) and passing asynchronous reset straight through to netlist.Dff
// so the evaluator applies it at sample time. Enable is passed through to
// netlist.Dff rather than muxed into D, since the evaluator's
// hold-on-disable semantics already implement that. Returns the q nets,
// LSB-first.
func (b *Builder) AddRegister(d []int, spec RegisterSpec) []int {
	q := make([]int, len(d))
	for i := range q {
		q[i] = b.allocNet()
	}
	b.AddRegisterAt(d, q, spec)
	return q
}

// AddRegisterAt emits one DFF per bit of d onto caller-supplied q nets. This
// is the form FromSequential needs: a sequential assignment's D expression
// may reference its own output's current value (e.g. a counter's "q+1"), so
// the Q nets must be allocated and bound into the lowering Env *before* the
// D expression is lowered.
func (b *Builder) AddRegisterAt(d, q []int, spec RegisterSpec) {
	enable := spec.Enable
	if spec.Reset != nil && !spec.AsyncReset && spec.Enable != nil {
		// Reset overrides a deasserted enable: force the update through
		// whenever reset is asserted, so the reset-value mux on D takes
		// effect even with enable low.
		en := b.binBit(netlist.OR, *spec.Enable, *spec.Reset)
		enable = &en
	}
	for i, dBit := range d {
		dIn := dBit
		if spec.Reset != nil && !spec.AsyncReset {
			resetBit := int((spec.ResetValue >> uint(i)) & 1)
			dIn = b.muxBit(*spec.Reset, b.constBit(resetBit), dIn)
		}
		dff := netlist.Dff{D: dIn, Q: q[i], AsyncReset: spec.AsyncReset, ResetValue: int((spec.ResetValue >> uint(i)) & 1)}
		if spec.Reset != nil && spec.AsyncReset {
			rst := *spec.Reset
			dff.Rst = &rst
		}
		if enable != nil {
			en := *enable
			dff.En = &en
		}
		b.ir.Dffs = append(b.ir.Dffs, dff)
	}
}
