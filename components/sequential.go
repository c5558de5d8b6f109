package components

import (
	"github.com/sarchlab/hdlsim/behavior"
	"github.com/sarchlab/hdlsim/behavior/expr"
)

// DFlipFlop builds a width-bit register: q <- d on the clock edge, with an
// optional synchronous or asynchronous reset to resetValue and an optional
// enable. async selects asynchronous reset semantics (only meaningful when
// reset is true).
func DFlipFlop(name string, width int, reset, async, enable bool, resetValue uint64) (*behavior.Sequential, error) {
	inputs := []behavior.Port{{Name: "d", Width: width}, {Name: "clk", Width: 1}}
	if reset {
		inputs = append(inputs, behavior.Port{Name: "rst", Width: 1})
	}
	if enable {
		inputs = append(inputs, behavior.Port{Name: "en", Width: 1})
	}
	outputs := []behavior.Port{{Name: "q", Width: width}}

	spec := behavior.ResetSpec{}
	if reset {
		spec.Signal = "rst"
		spec.Async = async
		spec.ResetValues = map[string]uint64{"q": resetValue}
	}
	enableName := ""
	if enable {
		enableName = "en"
	}

	return behavior.NewSequential(name, inputs, outputs, nil, "clk", enableName, spec,
		[]behavior.Assignment{{Target: "q", TargetWidth: width, Expr: expr.Ref("d", width)}},
	)
}

// TFlipFlop builds a toggle flip-flop: q <- q ^ t on the clock edge, gated
// by an optional enable (the "t" input doubles as an explicit toggle-enable
// on top of the structural enable).
func TFlipFlop(name string, enable bool) (*behavior.Sequential, error) {
	inputs := []behavior.Port{{Name: "t", Width: 1}, {Name: "clk", Width: 1}}
	enableName := ""
	if enable {
		inputs = append(inputs, behavior.Port{Name: "en", Width: 1})
		enableName = "en"
	}
	return behavior.NewSequential(name, inputs,
		[]behavior.Port{{Name: "q", Width: 1}}, nil, "clk", enableName, behavior.ResetSpec{},
		[]behavior.Assignment{{Target: "q", TargetWidth: 1, Expr: expr.Xor(expr.Ref("q", 1), expr.Ref("t", 1))}},
	)
}

// JKFlipFlop builds the classic JK behavior: hold (j=0,k=0), reset (k=1),
// set (j=1), toggle (j=k=1).
func JKFlipFlop(name string) (*behavior.Sequential, error) {
	j, k, q := expr.Ref("j", 1), expr.Ref("k", 1), expr.Ref("q", 1)
	next := expr.Select(expr.Concat(j, k), []expr.Case{
		{When: 0b01, Then: expr.Const(0, 1)},
		{When: 0b10, Then: expr.Const(1, 1)},
		{When: 0b11, Then: expr.Not(q)},
	}, q)
	return behavior.NewSequential(name,
		[]behavior.Port{{Name: "j", Width: 1}, {Name: "k", Width: 1}, {Name: "clk", Width: 1}},
		[]behavior.Port{{Name: "q", Width: 1}}, nil, "clk", "", behavior.ResetSpec{},
		[]behavior.Assignment{{Target: "q", TargetWidth: 1, Expr: next}},
	)
}

// SRFlipFlop builds set/reset behavior: s=1 sets q, r=1 resets q, s=r=1 is
// treated as reset-dominant (documented, not a fault).
func SRFlipFlop(name string) (*behavior.Sequential, error) {
	s, r, q := expr.Ref("s", 1), expr.Ref("r", 1), expr.Ref("q", 1)
	next := expr.Select(expr.Concat(s, r), []expr.Case{
		{When: 0b01, Then: expr.Const(0, 1)},
		{When: 0b10, Then: expr.Const(1, 1)},
		{When: 0b11, Then: expr.Const(0, 1)},
	}, q)
	return behavior.NewSequential(name,
		[]behavior.Port{{Name: "s", Width: 1}, {Name: "r", Width: 1}, {Name: "clk", Width: 1}},
		[]behavior.Port{{Name: "q", Width: 1}}, nil, "clk", "", behavior.ResetSpec{},
		[]behavior.Assignment{{Target: "q", TargetWidth: 1, Expr: next}},
	)
}

// Counter builds a width-bit up-counter with synchronous reset and enable:
// q <- (rst ? 0 : en ? q+1 : q) on the clock edge. overflow is registered
// alongside the count and flags the cycle where q sits at its terminal
// all-ones value; the next enabled edge wraps q back to zero.
func Counter(name string, width int) (*behavior.Sequential, error) {
	q := expr.Ref("q", width)
	next := expr.Add(q, expr.Const(1, width))
	terminal := expr.Const((uint64(1)<<uint(width))-1, width)
	spec := behavior.ResetSpec{
		Signal:      "rst",
		Async:       false,
		ResetValues: map[string]uint64{"q": 0, "overflow": 0},
	}
	return behavior.NewSequential(name,
		[]behavior.Port{{Name: "clk", Width: 1}, {Name: "rst", Width: 1}, {Name: "en", Width: 1}},
		[]behavior.Port{{Name: "q", Width: width}, {Name: "overflow", Width: 1}}, nil, "clk", "en", spec,
		[]behavior.Assignment{
			{Target: "q", TargetWidth: width, Expr: next},
			{Target: "overflow", TargetWidth: 1, Expr: expr.Eq(next, terminal)},
		},
	)
}
