package behavior

import (
	"github.com/sarchlab/hdlsim/behavior/expr"
	"github.com/sarchlab/hdlsim/errs"
)

// Assignment is the declarative "target <- expression" contract: every
// behavior (combinational or sequential) is a list of these.
type Assignment struct {
	Target      string
	TargetWidth int
	Expr        expr.Expr
}

// Validate checks what is statically decidable: that the expression's width
// matches the declared target width. Unknown-signal and divide-by-zero
// failures are not decidable here; they surface at first Propagate/Sample.
func (a Assignment) Validate(path string) error {
	if a.Expr.Width() != a.TargetWidth {
		return errs.AtPath(errs.WidthMismatch, path,
			"assignment to %q: expression width %d != target width %d",
			a.Target, a.Expr.Width(), a.TargetWidth)
	}
	return nil
}
