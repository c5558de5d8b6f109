package behavior

import "github.com/sarchlab/hdlsim/errs"

// Combinational is a pure function of current inputs and internal signals
// producing outputs. Propagate is idempotent: calling it twice without an
// intervening input change computes the same outputs.
type Combinational struct {
	*baseComponent
	assignments []Assignment
}

// NewCombinational builds a combinational component from its port
// declarations and its declarative assignment list. Width-mismatched
// assignments fail here, at construction time.
func NewCombinational(
	name string,
	inputs, outputs, internals []Port,
	assignments []Assignment,
) (*Combinational, error) {
	base, err := newBase(name, inputs, outputs, internals)
	if err != nil {
		return nil, err
	}
	if err := validateAssignments(name, assignments); err != nil {
		return nil, err
	}
	return &Combinational{baseComponent: base, assignments: assignments}, nil
}

// Assignments returns the component's declarative target<-expression list,
// for Lowering to bit-blast.
func (c *Combinational) Assignments() []Assignment { return c.assignments }

// Propagate evaluates every assignment against the component's current
// signal state and writes results to their target wires. It returns true if
// any target wire's observable value changed.
func (c *Combinational) Propagate() (changed bool, err error) {
	env := c.env()
	for _, a := range c.assignments {
		w, ok := c.wires[a.Target]
		if !ok {
			return false, errs.AtPath(errs.UnknownPort, c.name, "assignment targets unknown signal %q", a.Target)
		}
		before := w.Get()
		v, err := a.Expr.Eval(env)
		if err != nil {
			return false, err
		}
		w.Set(v)
		if w.Get() != before {
			changed = true
		}
	}
	return changed, nil
}
