// Package lower implements the lowering pass: it compiles a
// behavioral expression tree (package behavior/expr) into a flat
// primitive-gate + flip-flop netlist.IR by bit-blasting every value into
// individual 1-bit nets and recursive-descending the expression tree,
// emitting one gate (or a small fixed-depth network of gates) per node.
//
// Bits within a multi-bit value are always indexed LSB-first: bits[0] is
// bit 0.
package lower

import (
	"github.com/sarchlab/hdlsim/behavior/expr"
	"github.com/sarchlab/hdlsim/errs"
	"github.com/sarchlab/hdlsim/netlist"
)

// Options configures a Builder. The zero value is usable.
type Options struct {
	// Tracer, if set, is stored on the Builder and on the built IR's
	// netlist.IR.Tracer. Lowering itself never calls it (see Builder.Tracer).
	Tracer netlist.Tracer
}

// Env maps a declared signal or local intermediate name to its bit nets,
// LSB-first. Lowering's equivalent of behavior's wireEnv.
type Env map[string][]int

// Builder accumulates gates and nets for one netlist.IR under construction.
// It is not safe for concurrent use; build one IR per Builder.
type Builder struct {
	ir     *netlist.IR
	tracer netlist.Tracer

	const0, const1 int
	haveConst0     bool
	haveConst1     bool
}

// NewBuilder starts a new IR named name.
func NewBuilder(name string, opts Options) *Builder {
	ir := netlist.New(name, 0)
	ir.Tracer = opts.Tracer
	return &Builder{ir: ir, tracer: opts.Tracer}
}

// IR returns the netlist under construction. Callers normally call Build
// instead, which also validates.
func (b *Builder) IR() *netlist.IR { return b.ir }

// Tracer returns the diagnostics sink this Builder was configured with, or
// nil. Signal values in this implementation are always two-valued (no X/Z
// sentinel is modeled on signal.Wire), so Lowering itself never has
// occasion to call it; it is exposed so a behavioral front-end that does
// carry X/Z at its own layer can route its coercion diagnostics through the
// same sink the IR declares in netlist.IR.Tracer.
func (b *Builder) Tracer() netlist.Tracer { return b.tracer }

// Build validates the accumulated IR and returns it.
func (b *Builder) Build() (*netlist.IR, error) {
	if err := b.ir.Validate(); err != nil {
		return nil, err
	}
	return b.ir, nil
}

func (b *Builder) allocNet() int {
	n := b.ir.NetCount
	b.ir.NetCount++
	return n
}

func (b *Builder) addGate(g netlist.Gate) int {
	b.ir.Gates = append(b.ir.Gates, g)
	return g.Output
}

// constBit returns the cached 1-bit net driven to value, allocating its
// CONST gate on first use. Every subsequent constant 0 or 1 bit anywhere in
// the design reuses the same net, per the "single cached const" convention.
func (b *Builder) constBit(value int) int {
	if value == 0 {
		if !b.haveConst0 {
			b.const0 = b.allocNet()
			b.addGate(netlist.Gate{Type: netlist.CONST, Output: b.const0, Value: 0})
			b.haveConst0 = true
		}
		return b.const0
	}
	if !b.haveConst1 {
		b.const1 = b.allocNet()
		b.addGate(netlist.Gate{Type: netlist.CONST, Output: b.const1, Value: 1})
		b.haveConst1 = true
	}
	return b.const1
}

func (b *Builder) constBits(value uint64, width int) []int {
	bits := make([]int, width)
	for i := 0; i < width; i++ {
		bits[i] = b.constBit(int((value >> uint(i)) & 1))
	}
	return bits
}

func (b *Builder) notBit(x int) int {
	n := b.allocNet()
	b.addGate(netlist.Gate{Type: netlist.NOT, Inputs: []int{x}, Output: n})
	return n
}

func (b *Builder) binBit(t netlist.GateType, x, y int) int {
	n := b.allocNet()
	b.addGate(netlist.Gate{Type: t, Inputs: []int{x, y}, Output: n})
	return n
}

func (b *Builder) muxBit(sel, onTrue, onFalse int) int {
	n := b.allocNet()
	b.addGate(netlist.Gate{Type: netlist.MUX, Inputs: []int{sel, onTrue, onFalse}, Output: n})
	return n
}

func (b *Builder) bufBit(x int) int {
	n := b.allocNet()
	b.addGate(netlist.Gate{Type: netlist.BUF, Inputs: []int{x}, Output: n})
	return n
}

// DeclareInput allocates width fresh nets for an external input port and
// registers them in ir.Inputs.
func (b *Builder) DeclareInput(name string, width int) []int {
	bits := make([]int, width)
	for i := range bits {
		bits[i] = b.allocNet()
	}
	b.ir.Inputs[name] = bits
	return bits
}

// DeclareOutput registers bits as the named external output port.
func (b *Builder) DeclareOutput(name string, bits []int) {
	b.ir.Outputs[name] = append([]int(nil), bits...)
}

// Lower recursive-descends e and returns its result bits, LSB-first.
func (b *Builder) Lower(e expr.Expr, env Env) ([]int, error) {
	switch e.Kind() {
	case expr.KindConst:
		v, _ := expr.ConstValue(e)
		return b.constBits(v, e.Width()), nil
	case expr.KindRef:
		name, _ := expr.RefName(e)
		bits, ok := env[name]
		if !ok {
			return nil, errs.AtPath(errs.UnknownPort, name, "lowering: unresolved reference %q", name)
		}
		return bits, nil
	case expr.KindNot:
		return b.lowerNot(e, env)
	case expr.KindBin:
		return b.lowerBin(e, env)
	case expr.KindIndex:
		return b.lowerIndex(e, env)
	case expr.KindSlice:
		return b.lowerSlice(e, env)
	case expr.KindConcat:
		return b.lowerConcat(e, env)
	case expr.KindRepeat:
		return b.lowerRepeat(e, env)
	case expr.KindExtend:
		return b.lowerExtend(e, env)
	case expr.KindSelect:
		return b.lowerSelect(e, env)
	default:
		return nil, errs.AtPath(errs.UnsupportedPrimitive, "", "lowering: unknown expression kind %d", e.Kind())
	}
}

type xNode interface{ X() expr.Expr }

func (b *Builder) lowerNot(e expr.Expr, env Env) ([]int, error) {
	x, err := b.Lower(e.(xNode).X(), env)
	if err != nil {
		return nil, err
	}
	out := make([]int, len(x))
	for i, bit := range x {
		out[i] = b.notBit(bit)
	}
	return out, nil
}

type indexNode interface {
	X() expr.Expr
	Bit() int
}

func (b *Builder) lowerIndex(e expr.Expr, env Env) ([]int, error) {
	n := e.(indexNode)
	x, err := b.Lower(n.X(), env)
	if err != nil {
		return nil, err
	}
	return []int{x[n.Bit()]}, nil
}

type sliceNode interface {
	X() expr.Expr
	Hi() int
	Lo() int
}

func (b *Builder) lowerSlice(e expr.Expr, env Env) ([]int, error) {
	n := e.(sliceNode)
	x, err := b.Lower(n.X(), env)
	if err != nil {
		return nil, err
	}
	return append([]int(nil), x[n.Lo():n.Hi()+1]...), nil
}

type concatNode interface{ Parts() []expr.Expr }

func (b *Builder) lowerConcat(e expr.Expr, env Env) ([]int, error) {
	parts := e.(concatNode).Parts()
	var out []int
	// Parts()[0] is the most-significant part; bits accumulate LSB-first,
	// so emit from the last (least-significant) part forward.
	for i := len(parts) - 1; i >= 0; i-- {
		bits, err := b.Lower(parts[i], env)
		if err != nil {
			return nil, err
		}
		out = append(out, bits...)
	}
	return out, nil
}

type repeatNode interface {
	X() expr.Expr
	N() int
}

func (b *Builder) lowerRepeat(e expr.Expr, env Env) ([]int, error) {
	n := e.(repeatNode)
	x, err := b.Lower(n.X(), env)
	if err != nil {
		return nil, err
	}
	out := make([]int, 0, len(x)*n.N())
	for i := 0; i < n.N(); i++ {
		out = append(out, x...)
	}
	return out, nil
}

type extendNode interface {
	X() expr.Expr
	Signed() bool
}

func (b *Builder) lowerExtend(e expr.Expr, env Env) ([]int, error) {
	n := e.(extendNode)
	x, err := b.Lower(n.X(), env)
	if err != nil {
		return nil, err
	}
	width := e.Width()
	out := make([]int, width)
	copy(out, x)
	for i := len(x); i < width; i++ {
		if n.Signed() {
			// Every extension bit gets its own BUF net fanned out from the
			// sign bit, so each position of the result is a distinct net.
			out[i] = b.bufBit(x[len(x)-1])
		} else {
			out[i] = b.constBit(0)
		}
	}
	return out, nil
}
