// Package netlist defines the flat primitive-gate + flip-flop Intermediate
// Representation that Lowering emits and the Scheduler/Evaluator
// consume. IR values are plain data: built once, then treated as immutable.
package netlist

import "github.com/sarchlab/hdlsim/errs"

// GateType is the closed enumeration of primitive combinational elements.
type GateType string

const (
	AND   GateType = "AND"
	OR    GateType = "OR"
	XOR   GateType = "XOR"
	NOT   GateType = "NOT"
	MUX   GateType = "MUX"
	BUF   GateType = "BUF"
	CONST GateType = "CONST"
)

// Arity returns the fixed input count for t, or -1 for an unknown tag.
func (t GateType) Arity() int {
	switch t {
	case AND, OR, XOR:
		return 2
	case MUX:
		return 3
	case NOT, BUF:
		return 1
	case CONST:
		return 0
	default:
		return -1
	}
}

// Gate is a primitive combinational element: a tag, its ordered input net
// indices (MUX order is sel, when_true, when_false), its single output net
// index, and (CONST only) its 0/1 value.
type Gate struct {
	Type    GateType
	Inputs  []int
	Output  int
	Value   int // only meaningful when Type == CONST
}

// Dff is a D flip-flop: D input net, Q output net, optional reset/enable
// nets, whether reset is asynchronous, and the value Q takes on reset.
type Dff struct {
	D, Q        int
	Rst, En     *int // nil means "not present"
	AsyncReset  bool
	ResetValue  int // 0 or 1
}

// IR is the flat netlist: a plain record built once by Lowering and shared
// by reference thereafter.
type IR struct {
	Name     string
	NetCount int
	Inputs   map[string][]int
	Outputs  map[string][]int
	Gates    []Gate
	Dffs     []Dff

	// Schedule is derived by the scheduler; it is never part of the
	// serialized wire format (which carries name/net_count/inputs/outputs/
	// gates/dffs and, when non-empty, metadata) and is not compared by
	// round-trip equality.
	Schedule []int

	// Metadata is a supplementary, non-semantic field (build/source info);
	// serialized only when non-empty, after dffs.
	Metadata map[string]string

	// Tracer, if set, receives lowering diagnostics (e.g. X/Z -> 0
	// coercions). Not part of the serialized form or of structural equality.
	Tracer Tracer
}

// New builds an empty IR with the given name and reserves netCount nets.
func New(name string, netCount int) *IR {
	return &IR{
		Name:     name,
		NetCount: netCount,
		Inputs:   make(map[string][]int),
		Outputs:  make(map[string][]int),
	}
}

// InRange reports whether net index n addresses a net of this IR.
func (ir *IR) InRange(n int) bool { return n >= 0 && n < ir.NetCount }

// Validate checks the structural invariants Lowering must guarantee:
// no net has more than one driver, gate arities match their tag, and all
// nets referenced by gates and DFFs are in range. Nets with no driver at
// all are not rejected. It does not check acyclicity of the
// combinational subgraph -- that is the Scheduler's job, since
// detecting it requires the dependency graph the scheduler already builds.
func (ir *IR) Validate() error {
	if err := ir.validateRanges(); err != nil {
		return err
	}
	return ir.validateSingleDriver()
}

func (ir *IR) validateRanges() error {
	check := func(n int, ctx string) error {
		if !ir.InRange(n) {
			return errs.AtNet(errs.UnsupportedPrimitive, n, "%s references out-of-range net %d (net_count=%d)", ctx, n, ir.NetCount)
		}
		return nil
	}
	for gi, g := range ir.Gates {
		if g.Type.Arity() < 0 {
			return errs.AtGate(errs.UnsupportedPrimitive, gi, "unknown gate type %q", g.Type)
		}
		if len(g.Inputs) != g.Type.Arity() {
			return errs.AtGate(errs.UnsupportedPrimitive, gi, "gate type %s expects %d inputs, got %d", g.Type, g.Type.Arity(), len(g.Inputs))
		}
		for _, in := range g.Inputs {
			if err := check(in, "gate input"); err != nil {
				return err
			}
		}
		if err := check(g.Output, "gate output"); err != nil {
			return err
		}
	}
	for di, d := range ir.Dffs {
		for _, n := range []int{d.D, d.Q} {
			if !ir.InRange(n) {
				return errs.AtNet(errs.UnsupportedPrimitive, n, "dff[%d] references out-of-range net %d", di, n)
			}
		}
		if d.Rst != nil && !ir.InRange(*d.Rst) {
			return errs.AtNet(errs.UnsupportedPrimitive, *d.Rst, "dff[%d] rst net out of range", di)
		}
		if d.En != nil && !ir.InRange(*d.En) {
			return errs.AtNet(errs.UnsupportedPrimitive, *d.En, "dff[%d] en net out of range", di)
		}
	}
	return nil
}

func (ir *IR) validateSingleDriver() error {
	driver := make([]int, ir.NetCount) // 0 = undriven, else count
	for _, g := range ir.Gates {
		driver[g.Output]++
	}
	for _, d := range ir.Dffs {
		driver[d.Q]++
	}
	for _, nets := range ir.Inputs {
		for _, n := range nets {
			driver[n]++
		}
	}
	for n, count := range driver {
		if count > 1 {
			return errs.AtNet(errs.MultiDriver, n, "net %d has %d drivers", n, count)
		}
	}
	return nil
}
