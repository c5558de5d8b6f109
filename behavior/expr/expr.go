// Package expr implements the small, width-typed expression tree that backs
// the behavioral component DSL (combinational and sequential assignments).
// There is no textual parser here by design: trees are built with
// constructor functions, and the same tree is walked twice downstream: once
// by the behavioral simulator (Eval) and once by Lowering (recursive-descent
// gate emission).
package expr

import (
	"fmt"

	"github.com/sarchlab/hdlsim/errs"
)

// Env resolves named references (signals or local intermediates) to their
// current value and declared width.
type Env interface {
	// Lookup returns the value and width of a named reference. An unknown
	// name is a construction-time error where statically decidable,
	// otherwise surfaces here at first Eval.
	Lookup(name string) (value uint64, width int, err error)
}

// Expr is a node in the expression tree. Every node knows its own width
// without evaluating (so Lowering can allocate nets before emission) and can
// evaluate itself against an Env.
type Expr interface {
	Width() int
	Eval(env Env) (uint64, error)

	// Kind tags the concrete node type so Lowering's recursive descent can
	// dispatch without type-asserting on this package's unexported types.
	Kind() Kind
}

// Kind is a closed tag identifying an Expr node's concrete shape.
type Kind int

const (
	KindConst Kind = iota
	KindRef
	KindNot
	KindBin
	KindIndex
	KindSlice
	KindConcat
	KindRepeat
	KindExtend
	KindSelect
)

func mask(width int) uint64 {
	if width >= 64 {
		return ^uint64(0)
	}
	return (uint64(1) << uint(width)) - 1
}

func truncate(v uint64, width int) uint64 { return v & mask(width) }

// ---- leaves ----

type constExpr struct {
	value uint64
	width int
}

// Const builds a width-typed literal.
func Const(value uint64, width int) Expr {
	return &constExpr{value: truncate(value, width), width: width}
}

func (c *constExpr) Width() int { return c.width }
func (c *constExpr) Eval(Env) (uint64, error) { return c.value, nil }
func (c *constExpr) Kind() Kind              { return KindConst }

type refExpr struct {
	name  string
	width int
}

// Ref builds a reference to a named signal or local intermediate, declared
// at its known width (signals and locals are always declared with an
// explicit width per the DSL contract).
func Ref(name string, width int) Expr { return &refExpr{name: name, width: width} }

func (r *refExpr) Width() int { return r.width }
func (r *refExpr) Kind() Kind  { return KindRef }

func (r *refExpr) Eval(env Env) (uint64, error) {
	v, _, err := env.Lookup(r.name)
	return v, err
}

// Name returns the referenced identifier, for callers (Lowering) that need
// to resolve it through their own environment rather than generic Eval.
func (r *refExpr) Name() string { return r.name }

// RefName extracts the identifier from an Expr built by Ref, for Lowering's
// recursive descent. Returns "" if e is not a Ref.
func RefName(e Expr) (string, bool) {
	r, ok := e.(*refExpr)
	if !ok {
		return "", false
	}
	return r.name, true
}

// ConstValue extracts the literal value from an Expr built by Const, for
// Lowering's recursive descent. ok is false if e is not a Const.
func ConstValue(e Expr) (value uint64, ok bool) {
	c, ok := e.(*constExpr)
	if !ok {
		return 0, false
	}
	return c.value, true
}

// ---- unary ----

type notExpr struct{ x Expr }

// Not builds a bitwise NOT, masked to its operand's width.
func Not(x Expr) Expr { return &notExpr{x: x} }

func (n *notExpr) Width() int { return n.x.Width() }
func (n *notExpr) Kind() Kind  { return KindNot }
func (n *notExpr) Eval(env Env) (uint64, error) {
	v, err := n.x.Eval(env)
	if err != nil {
		return 0, err
	}
	return truncate(^v, n.Width()), nil
}

// X returns the operand, for Lowering's recursive descent.
func (n *notExpr) X() Expr { return n.x }

// ---- binary bitwise / arithmetic / shift / compare ----

// BinOp is a closed tag for the binary operators, used by Lowering to
// dispatch without type-asserting every concrete node type.
type BinOp int

const (
	OpAnd BinOp = iota
	OpOr
	OpXor
	OpAdd
	OpSub
	OpShl
	OpShr
	OpSar
	OpEq
	OpNe
	OpLt
	OpLe
	OpGt
	OpGe
)

type binExpr struct {
	op       BinOp
	a, b     Expr
	resWidth int
}

func newBin(op BinOp, a, b Expr, resWidth int) Expr {
	return &binExpr{op: op, a: a, b: b, resWidth: resWidth}
}

// And, Or, Xor, Add, Sub build same-width binary operators; the result
// width is the (equal) operand width. Shl/Shr/Sar take a width-typed amount
// but the result width is the value operand's width. Comparisons always
// produce a 1-bit result.
func And(a, b Expr) Expr { return newBin(OpAnd, a, b, a.Width()) }
func Or(a, b Expr) Expr  { return newBin(OpOr, a, b, a.Width()) }
func Xor(a, b Expr) Expr { return newBin(OpXor, a, b, a.Width()) }
func Add(a, b Expr) Expr { return newBin(OpAdd, a, b, a.Width()) }
func Sub(a, b Expr) Expr { return newBin(OpSub, a, b, a.Width()) }
func Shl(a, amount Expr) Expr { return newBin(OpShl, a, amount, a.Width()) }
func Shr(a, amount Expr) Expr { return newBin(OpShr, a, amount, a.Width()) }
func Sar(a, amount Expr) Expr { return newBin(OpSar, a, amount, a.Width()) }
func Eq(a, b Expr) Expr { return newBin(OpEq, a, b, 1) }
func Ne(a, b Expr) Expr { return newBin(OpNe, a, b, 1) }
func Lt(a, b Expr) Expr { return newBin(OpLt, a, b, 1) }
func Le(a, b Expr) Expr { return newBin(OpLe, a, b, 1) }
func Gt(a, b Expr) Expr { return newBin(OpGt, a, b, 1) }
func Ge(a, b Expr) Expr { return newBin(OpGe, a, b, 1) }

func (e *binExpr) Width() int { return e.resWidth }
func (e *binExpr) Kind() Kind  { return KindBin }

// Op, A, B expose the operator tag and operands for Lowering's recursive
// descent and for the behavioral simulator's dispatch.
func (e *binExpr) Op() BinOp { return e.op }
func (e *binExpr) A() Expr   { return e.a }
func (e *binExpr) B() Expr   { return e.b }

func (e *binExpr) Eval(env Env) (uint64, error) {
	a, err := e.a.Eval(env)
	if err != nil {
		return 0, err
	}
	b, err := e.b.Eval(env)
	if err != nil {
		return 0, err
	}
	aw := e.a.Width()
	switch e.op {
	case OpAnd:
		return truncate(a&b, e.resWidth), nil
	case OpOr:
		return truncate(a|b, e.resWidth), nil
	case OpXor:
		return truncate(a^b, e.resWidth), nil
	case OpAdd:
		return truncate(a+b, e.resWidth), nil
	case OpSub:
		return truncate(a-b, e.resWidth), nil
	case OpShl:
		return truncate(a<<uint(b), e.resWidth), nil
	case OpShr:
		return truncate(a>>uint(b), e.resWidth), nil
	case OpSar:
		signBit := (a >> uint(aw-1)) & 1
		shifted := a >> uint(b)
		if signBit == 1 {
			fill := mask(aw) &^ mask(aw - int(minInt(b, uint64(aw))))
			shifted |= fill
		}
		return truncate(shifted, e.resWidth), nil
	case OpEq:
		if a == b {
			return 1, nil
		}
		return 0, nil
	case OpNe:
		if a != b {
			return 1, nil
		}
		return 0, nil
	case OpLt:
		if a < b {
			return 1, nil
		}
		return 0, nil
	case OpLe:
		if a <= b {
			return 1, nil
		}
		return 0, nil
	case OpGt:
		if a > b {
			return 1, nil
		}
		return 0, nil
	case OpGe:
		if a >= b {
			return 1, nil
		}
		return 0, nil
	}
	return 0, errs.AtPath(errs.UnsupportedPrimitive, "", "unknown binary op %d", e.op)
}

func minInt(a, b uint64) uint64 {
	if a < b {
		return a
	}
	return b
}

// ---- bit indexing, slicing, concat, replicate ----

type indexExpr struct {
	x   Expr
	bit int
}

// Index builds a 1-bit read of x's bit position i.
func Index(x Expr, i int) Expr { return &indexExpr{x: x, bit: i} }

func (e *indexExpr) Width() int { return 1 }
func (e *indexExpr) Kind() Kind  { return KindIndex }
func (e *indexExpr) X() Expr    { return e.x }
func (e *indexExpr) Bit() int   { return e.bit }
func (e *indexExpr) Eval(env Env) (uint64, error) {
	v, err := e.x.Eval(env)
	if err != nil {
		return 0, err
	}
	return (v >> uint(e.bit)) & 1, nil
}

type sliceExpr struct {
	x        Expr
	hi, lo   int
}

// Slice builds a [hi:lo] inclusive bit-range read of x (hi >= lo).
func Slice(x Expr, hi, lo int) Expr { return &sliceExpr{x: x, hi: hi, lo: lo} }

func (e *sliceExpr) Width() int { return e.hi - e.lo + 1 }
func (e *sliceExpr) Kind() Kind  { return KindSlice }
func (e *sliceExpr) X() Expr    { return e.x }
func (e *sliceExpr) Hi() int    { return e.hi }
func (e *sliceExpr) Lo() int    { return e.lo }
func (e *sliceExpr) Eval(env Env) (uint64, error) {
	v, err := e.x.Eval(env)
	if err != nil {
		return 0, err
	}
	return truncate(v>>uint(e.lo), e.Width()), nil
}

type concatExpr struct {
	parts []Expr // parts[0] is the most-significant part
	width int
}

// Concat joins parts MSB-first into a single wider value.
func Concat(parts ...Expr) Expr {
	w := 0
	for _, p := range parts {
		w += p.Width()
	}
	return &concatExpr{parts: parts, width: w}
}

func (e *concatExpr) Width() int   { return e.width }
func (e *concatExpr) Kind() Kind    { return KindConcat }
func (e *concatExpr) Parts() []Expr { return e.parts }
func (e *concatExpr) Eval(env Env) (uint64, error) {
	var out uint64
	shift := 0
	for i := len(e.parts) - 1; i >= 0; i-- {
		v, err := e.parts[i].Eval(env)
		if err != nil {
			return 0, err
		}
		out |= truncate(v, e.parts[i].Width()) << uint(shift)
		shift += e.parts[i].Width()
	}
	return truncate(out, e.width), nil
}

type repeatExpr struct {
	x Expr
	n int
}

// Repeat tiles x n times (n >= 1), widening the result to n*x.Width().
func Repeat(x Expr, n int) Expr { return &repeatExpr{x: x, n: n} }

func (e *repeatExpr) Width() int { return e.x.Width() * e.n }
func (e *repeatExpr) Kind() Kind  { return KindRepeat }
func (e *repeatExpr) X() Expr    { return e.x }
func (e *repeatExpr) N() int     { return e.n }
func (e *repeatExpr) Eval(env Env) (uint64, error) {
	v, err := e.x.Eval(env)
	if err != nil {
		return 0, err
	}
	v = truncate(v, e.x.Width())
	var out uint64
	for i := 0; i < e.n; i++ {
		out |= v << uint(i*e.x.Width())
	}
	return truncate(out, e.Width()), nil
}

// ---- extension ----

type extendExpr struct {
	x      Expr
	width  int
	signed bool
}

// SignExtend widens x to width, replicating its sign bit.
func SignExtend(x Expr, width int) Expr {
	return &extendExpr{x: x, width: width, signed: true}
}

// ZeroExtend widens x to width with zero fill.
func ZeroExtend(x Expr, width int) Expr {
	return &extendExpr{x: x, width: width, signed: false}
}

func (e *extendExpr) Width() int   { return e.width }
func (e *extendExpr) Kind() Kind    { return KindExtend }
func (e *extendExpr) X() Expr      { return e.x }
func (e *extendExpr) Signed() bool { return e.signed }
func (e *extendExpr) Eval(env Env) (uint64, error) {
	v, err := e.x.Eval(env)
	if err != nil {
		return 0, err
	}
	v = truncate(v, e.x.Width())
	if e.signed {
		signBit := (v >> uint(e.x.Width()-1)) & 1
		if signBit == 1 {
			v |= mask(e.width) &^ mask(e.x.Width())
		}
	}
	return truncate(v, e.width), nil
}

// ---- selection (case table) ----

// Case pairs a selector value with the expression chosen when the selector
// equals that value.
type Case struct {
	When    uint64
	Then    Expr
}

type selectExpr struct {
	sel     Expr
	cases   []Case
	def     Expr
	width   int
}

// Select builds a case-table selection keyed by sel's value, falling back
// to def when no case matches. All Then/def expressions must share def's
// width; this is not checked here, by Lowering, or by the behavioral
// runtime (Assignment.Validate compares only the Select's own width, which
// is def's).
func Select(sel Expr, cases []Case, def Expr) Expr {
	return &selectExpr{sel: sel, cases: cases, def: def, width: def.Width()}
}

func (e *selectExpr) Width() int      { return e.width }
func (e *selectExpr) Kind() Kind       { return KindSelect }
func (e *selectExpr) Sel() Expr       { return e.sel }
func (e *selectExpr) Cases() []Case   { return e.cases }
func (e *selectExpr) Default() Expr   { return e.def }
func (e *selectExpr) Eval(env Env) (uint64, error) {
	sv, err := e.sel.Eval(env)
	if err != nil {
		return 0, err
	}
	for _, c := range e.cases {
		if c.When == sv {
			return c.Then.Eval(env)
		}
	}
	return e.def.Eval(env)
}

// Describe renders e as a short debug string (used by diagnostics and
// tests); it is not part of the evaluation contract.
func Describe(e Expr) string {
	return fmt.Sprintf("%T(width=%d)", e, e.Width())
}
