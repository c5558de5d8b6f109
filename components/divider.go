package components

import (
	"github.com/sarchlab/hdlsim/behavior"
	"github.com/sarchlab/hdlsim/behavior/expr"
)

// RestoringDivider builds the behavioral/reference restoring-division
// oracle for width-bit unsigned operands, unrolled at build time the same
// way lower.Builder.RestoringDivider unrolls it at the gate level: each of
// the width iterations shifts the running remainder left, feeding in the
// next dividend bit, tests it against the divisor, and conditionally
// subtracts. The two implementations are independent expressions of the
// same algorithm; Conformance is what proves they agree on every input. A
// zero divisor yields an all-ones quotient and a remainder equal to the
// dividend, matching the gate-level non-fault behavior.
func RestoringDivider(name string, width int) (*behavior.Combinational, error) {
	d := expr.Ref("d", width)
	v := expr.Ref("v", width)

	rem := expr.Const(0, width)
	quotientBits := make([]expr.Expr, width) // index i holds quotient bit i (LSB-first)
	for i := width - 1; i >= 0; i-- {
		feed := expr.Index(d, i)
		if width == 1 {
			rem = feed
		} else {
			rem = expr.Concat(expr.Slice(rem, width-2, 0), feed)
		}
		geq := expr.Ge(rem, v)
		diff := expr.Sub(rem, v)
		rem = expr.Select(geq, []expr.Case{{When: 1, Then: diff}}, rem)
		quotientBits[i] = geq
	}

	msbFirst := make([]expr.Expr, width)
	for i := 0; i < width; i++ {
		msbFirst[width-1-i] = quotientBits[i]
	}
	computedQuotient := expr.Concat(msbFirst...)

	divisorIsZero := expr.Eq(v, expr.Const(0, width))
	allOnes := expr.Const(uint64(1)<<uint(width)-1, width)
	quotient := expr.Select(divisorIsZero, []expr.Case{{When: 1, Then: allOnes}}, computedQuotient)
	remainder := expr.Select(divisorIsZero, []expr.Case{{When: 1, Then: d}}, rem)

	return behavior.NewCombinational(name,
		[]behavior.Port{{Name: "d", Width: width}, {Name: "v", Width: width}},
		[]behavior.Port{{Name: "q", Width: width}, {Name: "r", Width: width}},
		nil,
		[]behavior.Assignment{
			{Target: "q", TargetWidth: width, Expr: quotient},
			{Target: "r", TargetWidth: width, Expr: remainder},
		},
	)
}
