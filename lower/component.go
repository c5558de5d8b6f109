package lower

import (
	"github.com/sarchlab/hdlsim/behavior"
	"github.com/sarchlab/hdlsim/netlist"
)

// assignable is satisfied by both behavior.Combinational and
// behavior.Sequential: a named port surface plus a declarative
// target<-expression list.
type assignable interface {
	behavior.Block
	Assignments() []behavior.Assignment
}

// FromCombinational bit-blasts a behavioral combinational component into a
// netlist.IR: every input port becomes IR input nets, every assignment is
// lowered in list order (so an assignment may reference an earlier target
// in the same list, exactly as behavior.Combinational.Propagate evaluates
// them in order against live wires), and every output port's lowered bits
// become IR output nets.
func FromCombinational(c *behavior.Combinational, opts Options) (*netlist.IR, error) {
	return fromAssignable(c, opts)
}

// FromSequential bit-blasts a behavioral sequential component into a
// netlist.IR: every non-clock input port becomes IR input nets (the clock
// port itself carries no net; ticking is the Evaluator's external control
// flow of the evaluator, not a sampled signal), every output and internal port
// becomes one DFF per bit, and self-referencing assignments (e.g. a
// counter's "q+1") resolve correctly because the Q nets are allocated
// before their driving D expressions are lowered.
func FromSequential(s *behavior.Sequential, opts Options) (*netlist.IR, error) {
	return fromAssignable(s, opts)
}

func fromAssignable(c assignable, opts Options) (*netlist.IR, error) {
	b := NewBuilder(c.Name(), opts)
	env := make(Env)

	seq, isSequential := c.(*behavior.Sequential)

	for _, p := range c.Inputs() {
		if isSequential && p.Name == seq.ClockName() {
			continue
		}
		env[p.Name] = b.DeclareInput(p.Name, p.Width)
	}

	if !isSequential {
		return lowerCombinational(b, c, env)
	}
	return lowerSequential(b, seq, env)
}

func lowerCombinational(b *Builder, c assignable, env Env) (*netlist.IR, error) {
	outputNames := make(map[string]bool, len(c.Outputs()))
	for _, p := range c.Outputs() {
		outputNames[p.Name] = true
	}

	for _, a := range c.Assignments() {
		bits, err := b.Lower(a.Expr, env)
		if err != nil {
			return nil, err
		}
		env[a.Target] = bits
		if outputNames[a.Target] {
			b.DeclareOutput(a.Target, bits)
		}
	}
	return b.Build()
}

func lowerSequential(b *Builder, s *behavior.Sequential, env Env) (*netlist.IR, error) {
	reset := s.ResetSpec()
	var resetNet *int
	if reset.Signal != "" {
		bits := env[reset.Signal]
		resetNet = &bits[0]
	}
	var enableNet *int
	if s.EnableName() != "" {
		bits := env[s.EnableName()]
		enableNet = &bits[0]
	}

	outputNames := make(map[string]bool, len(s.Outputs()))
	for _, p := range s.Outputs() {
		outputNames[p.Name] = true
	}

	stateful := append(append([]behavior.Port{}, s.Outputs()...), s.Internals()...)
	qNets := make(map[string][]int, len(stateful))
	for _, p := range stateful {
		bits := make([]int, p.Width)
		for i := range bits {
			bits[i] = b.allocNet()
		}
		qNets[p.Name] = bits
		env[p.Name] = bits
	}

	assignmentFor := make(map[string]behavior.Assignment, len(s.Assignments()))
	for _, a := range s.Assignments() {
		assignmentFor[a.Target] = a
	}

	for _, p := range stateful {
		q := qNets[p.Name]
		a, hasAssignment := assignmentFor[p.Name]

		var d []int
		if hasAssignment {
			bits, err := b.Lower(a.Expr, env)
			if err != nil {
				return nil, err
			}
			d = bits
		} else {
			d = q // no assignment: hold (D tied back to Q).
		}

		spec := RegisterSpec{Enable: enableNet}
		if resetValue, ok := reset.ResetValues[p.Name]; resetNet != nil && ok {
			spec.Reset = resetNet
			spec.AsyncReset = reset.Async
			spec.ResetValue = resetValue
		}
		b.AddRegisterAt(d, q, spec)

		if outputNames[p.Name] {
			b.DeclareOutput(p.Name, q)
		}
	}
	return b.Build()
}
