// Package components ships the minimal behavioral fixtures needed to
// exercise Lowering, the Scheduler, the Evaluator, and the Conformance
// harness end-to-end: half/full adders, a parametric ripple-carry
// adder/subtractor, a small ALU, muxes, a D flip-flop family, a counter, and
// a restoring divider. This is not the out-of-scope component *library*
// (gates, memories, sample CPUs), just enough real circuits to run
// scenarios against.
package components

import (
	"fmt"

	"github.com/sarchlab/hdlsim/behavior"
	"github.com/sarchlab/hdlsim/behavior/expr"
)

// HalfAdder builds sum = a ^ b, cout = a & b.
func HalfAdder(name string) (*behavior.Combinational, error) {
	return behavior.NewCombinational(name,
		[]behavior.Port{{Name: "a", Width: 1}, {Name: "b", Width: 1}},
		[]behavior.Port{{Name: "sum", Width: 1}, {Name: "cout", Width: 1}},
		nil,
		[]behavior.Assignment{
			{Target: "sum", TargetWidth: 1, Expr: expr.Xor(expr.Ref("a", 1), expr.Ref("b", 1))},
			{Target: "cout", TargetWidth: 1, Expr: expr.And(expr.Ref("a", 1), expr.Ref("b", 1))},
		},
	)
}

// FullAdder builds sum = a ^ b ^ cin, cout = (a&b) | ((a^b)&cin).
func FullAdder(name string) (*behavior.Combinational, error) {
	a, b, cin := expr.Ref("a", 1), expr.Ref("b", 1), expr.Ref("cin", 1)
	axb := expr.Xor(a, b)
	return behavior.NewCombinational(name,
		[]behavior.Port{{Name: "a", Width: 1}, {Name: "b", Width: 1}, {Name: "cin", Width: 1}},
		[]behavior.Port{{Name: "sum", Width: 1}, {Name: "cout", Width: 1}},
		nil,
		[]behavior.Assignment{
			{Target: "sum", TargetWidth: 1, Expr: expr.Xor(axb, cin)},
			{Target: "cout", TargetWidth: 1, Expr: expr.Or(expr.And(a, b), expr.And(axb, cin))},
		},
	)
}

// RippleCarryAdder builds a width-bit adder with carry-in, carry-out, and a
// signed-overflow flag: sum = a + b + cin truncated to width, cout the carry
// out of bit width-1, overflow = (a_msb XNOR b_msb) AND (sum_msb XOR a_msb).
// Behaviorally this is one wide addition rather than a literal per-bit
// ripple chain; Lowering's lower.Builder.addBits is what actually chains
// carries bit by bit in LSB-first order, and the Conformance harness
// is what proves the two agree.
func RippleCarryAdder(name string, width int) (*behavior.Combinational, error) {
	wide := width + 1
	a := expr.ZeroExtend(expr.Ref("a", width), wide)
	b := expr.ZeroExtend(expr.Ref("b", width), wide)
	cin := expr.ZeroExtend(expr.Ref("cin", 1), wide)
	full := expr.Add(expr.Add(a, b), cin)

	aMsb := expr.Index(expr.Ref("a", width), width-1)
	bMsb := expr.Index(expr.Ref("b", width), width-1)
	sumMsb := expr.Index(expr.Ref("sum", width), width-1)
	overflow := expr.And(expr.Not(expr.Xor(aMsb, bMsb)), expr.Xor(sumMsb, aMsb))

	return behavior.NewCombinational(name,
		[]behavior.Port{{Name: "a", Width: width}, {Name: "b", Width: width}, {Name: "cin", Width: 1}},
		[]behavior.Port{{Name: "sum", Width: width}, {Name: "cout", Width: 1}, {Name: "overflow", Width: 1}},
		nil,
		[]behavior.Assignment{
			{Target: "sum", TargetWidth: width, Expr: expr.Slice(full, width-1, 0)},
			{Target: "cout", TargetWidth: 1, Expr: expr.Index(full, width)},
			{Target: "overflow", TargetWidth: 1, Expr: overflow},
		},
	)
}

// RippleCarrySubtractor builds diff = a - b - bin, borrow = 1 iff a < b+bin
// (unsigned).
func RippleCarrySubtractor(name string, width int) (*behavior.Combinational, error) {
	a := expr.Ref("a", width)
	b := expr.Ref("b", width)
	bin := expr.Ref("bin", 1)
	bWithBorrow := expr.Add(b, expr.ZeroExtend(bin, width))
	return behavior.NewCombinational(name,
		[]behavior.Port{{Name: "a", Width: width}, {Name: "b", Width: width}, {Name: "bin", Width: 1}},
		[]behavior.Port{{Name: "diff", Width: width}, {Name: "borrow", Width: 1}},
		nil,
		[]behavior.Assignment{
			{Target: "diff", TargetWidth: width, Expr: expr.Sub(a, bWithBorrow)},
			{Target: "borrow", TargetWidth: 1, Expr: expr.Lt(a, bWithBorrow)},
		},
	)
}

// AluOp is a closed tag for Alu8's operation select encoding.
type AluOp uint64

const (
	AluAdd AluOp = iota
	AluSub
	AluAnd
	AluOr
	AluXor
	AluNot
)

// Alu8 builds an 8-bit ALU selecting among AluAdd/Sub/And/Or/Xor/Not via a
// 3-bit opsel port, plus a zero flag over the result.
func Alu8(name string) (*behavior.Combinational, error) {
	a, b, opsel := expr.Ref("a", 8), expr.Ref("b", 8), expr.Ref("opsel", 3)
	result := expr.Select(opsel, []expr.Case{
		{When: uint64(AluAdd), Then: expr.Add(a, b)},
		{When: uint64(AluSub), Then: expr.Sub(a, b)},
		{When: uint64(AluAnd), Then: expr.And(a, b)},
		{When: uint64(AluOr), Then: expr.Or(a, b)},
		{When: uint64(AluXor), Then: expr.Xor(a, b)},
		{When: uint64(AluNot), Then: expr.Not(a)},
	}, expr.Const(0, 8))
	return behavior.NewCombinational(name,
		[]behavior.Port{{Name: "a", Width: 8}, {Name: "b", Width: 8}, {Name: "opsel", Width: 3}},
		[]behavior.Port{{Name: "result", Width: 8}, {Name: "zero", Width: 1}},
		nil,
		[]behavior.Assignment{
			{Target: "result", TargetWidth: 8, Expr: result},
			{Target: "zero", TargetWidth: 1, Expr: expr.Eq(expr.Ref("result", 8), expr.Const(0, 8))},
		},
	)
}

// Mux2 builds y = sel ? b : a over width-bit operands.
func Mux2(name string, width int) (*behavior.Combinational, error) {
	sel := expr.Ref("sel", 1)
	a, b := expr.Ref("a", width), expr.Ref("b", width)
	y := expr.Select(sel, []expr.Case{{When: 1, Then: b}}, a)
	return behavior.NewCombinational(name,
		[]behavior.Port{{Name: "sel", Width: 1}, {Name: "a", Width: width}, {Name: "b", Width: width}},
		[]behavior.Port{{Name: "y", Width: width}},
		nil,
		[]behavior.Assignment{{Target: "y", TargetWidth: width, Expr: y}},
	)
}

// MuxN builds a numInputs-way, width-bit multiplexer over ports in0..in{N-1},
// selected by a bitLength(numInputs)-wide sel port.
func MuxN(name string, width, numInputs int) (*behavior.Combinational, error) {
	selWidth := bitLength(numInputs)
	sel := expr.Ref("sel", selWidth)

	inputs := make([]behavior.Port, numInputs)
	cases := make([]expr.Case, numInputs)
	for i := 0; i < numInputs; i++ {
		portName := fmt.Sprintf("in%d", i)
		inputs[i] = behavior.Port{Name: portName, Width: width}
		cases[i] = expr.Case{When: uint64(i), Then: expr.Ref(portName, width)}
	}
	y := expr.Select(sel, cases[1:], cases[0].Then)

	ports := append([]behavior.Port{{Name: "sel", Width: selWidth}}, inputs...)
	return behavior.NewCombinational(name, ports,
		[]behavior.Port{{Name: "y", Width: width}},
		nil,
		[]behavior.Assignment{{Target: "y", TargetWidth: width, Expr: y}},
	)
}

func bitLength(n int) int {
	w := 1
	for (1 << uint(w)) < n {
		w++
	}
	return w
}
