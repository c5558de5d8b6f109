package lower

import "github.com/sarchlab/hdlsim/behavior/expr"

type selectNode interface {
	Sel() expr.Expr
	Cases() []expr.Case
	Default() expr.Expr
}

// lowerSelect builds a mux tree choosing among Cases() by equality against
// Sel(), falling back to Default(). Cases are folded from last to first so
// the first matching case (expr.Eval's match order) ends up as the
// outermost, highest-priority mux.
func (b *Builder) lowerSelect(e expr.Expr, env Env) ([]int, error) {
	n := e.(selectNode)
	sel, err := b.Lower(n.Sel(), env)
	if err != nil {
		return nil, err
	}
	acc, err := b.Lower(n.Default(), env)
	if err != nil {
		return nil, err
	}

	cases := n.Cases()
	for i := len(cases) - 1; i >= 0; i-- {
		then, err := b.Lower(cases[i].Then, env)
		if err != nil {
			return nil, err
		}
		want := b.constBits(cases[i].When, len(sel))
		eq := b.equalBits(sel, want)
		acc = b.muxWords(eq, then, acc)
	}
	return acc, nil
}

// muxWords applies a single-bit select across every bit position of two
// equal-width values.
func (b *Builder) muxWords(sel int, onTrue, onFalse []int) []int {
	out := make([]int, len(onTrue))
	for i := range onTrue {
		out[i] = b.muxBit(sel, onTrue[i], onFalse[i])
	}
	return out
}
