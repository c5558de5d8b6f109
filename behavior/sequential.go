package behavior

import "github.com/sarchlab/hdlsim/errs"

// ResetSpec configures a sequential component's reset behavior: which
// signal gates it, whether it is sampled synchronously with the clock edge
// or commits asynchronously whenever asserted, and the reset value each
// declared output takes.
type ResetSpec struct {
	Signal      string // name of the 1-bit reset port; "" disables reset.
	Async       bool
	ResetValues map[string]uint64 // per output name
}

// Sequential uses strict two-phase (sample/commit) semantics: Sample reads
// inputs and computes pending values without writing; Commit writes all
// pending values atomically. This is what makes DFF "q" outputs in the same
// cycle mutually invisible to each other.
type Sequential struct {
	*baseComponent
	clockName  string
	enableName string // "" means always enabled
	reset      ResetSpec
	assignments []Assignment

	pending      map[string]uint64
	pendingValid bool

	// Warn receives a non-fatal ResetViolation diagnostic when an
	// asynchronous reset is asserted at the same time as a conflicting
	// enable signal. May be nil.
	Warn func(err error)
}

// NewSequential builds a sequential component. clockName must name a 1-bit
// input port; enableName, if non-empty, must also name a 1-bit input port.
func NewSequential(
	name string,
	inputs, outputs, internals []Port,
	clockName string,
	enableName string,
	reset ResetSpec,
	assignments []Assignment,
) (*Sequential, error) {
	base, err := newBase(name, inputs, outputs, internals)
	if err != nil {
		return nil, err
	}
	if _, ok := base.wires[clockName]; !ok {
		return nil, errs.AtPath(errs.UnknownPort, name, "unknown clock signal %q", clockName)
	}
	if err := validateAssignments(name, assignments); err != nil {
		return nil, err
	}
	return &Sequential{
		baseComponent: base,
		clockName:     clockName,
		enableName:    enableName,
		reset:         reset,
		assignments:   assignments,
		pending:       make(map[string]uint64),
	}, nil
}

// Assignments returns the component's declarative target<-expression list,
// for Lowering to bit-blast into per-bit DFFs.
func (s *Sequential) Assignments() []Assignment { return s.assignments }

// ClockName returns the name of the 1-bit input port gating this
// component's clock edge.
func (s *Sequential) ClockName() string { return s.clockName }

// EnableName returns the name of the 1-bit enable input port, or "" if this
// component is always enabled.
func (s *Sequential) EnableName() string { return s.enableName }

// ResetSpec returns the component's reset configuration.
func (s *Sequential) ResetSpec() ResetSpec { return s.reset }

func (s *Sequential) resetAsserted() bool {
	if s.reset.Signal == "" {
		return false
	}
	w, ok := s.wires[s.reset.Signal]
	return ok && w.Get() == 1
}

func (s *Sequential) enableAsserted() bool {
	if s.enableName == "" {
		return true
	}
	w, ok := s.wires[s.enableName]
	return ok && w.Get() == 1
}

// Sample reads the current (pre-commit) state into a pending snapshot.
// rising indicates whether the clock has just risen since the previous
// Sample call; it is passed down by Runtime.Tick, whose caller decides it.
func (s *Sequential) Sample(rising bool) error {
	resetNow := s.resetAsserted()

	if s.reset.Async && resetNow {
		if s.enableName != "" && s.enableAsserted() {
			if s.Warn != nil {
				s.Warn(errs.AtPath(errs.ResetViolation, s.name,
					"async reset asserted concurrently with enable; reset wins"))
			}
		}
		s.applyResetValues()
		s.pendingValid = true
		return nil
	}

	if !rising {
		return nil
	}

	if !s.reset.Async && resetNow {
		s.applyResetValues()
		s.pendingValid = true
		return nil
	}

	if !s.enableAsserted() {
		// Not enabled: no new sample: pending remains unset so Commit is a
		// no-op and the held value persists.
		return nil
	}

	env := s.env()
	next := make(map[string]uint64, len(s.assignments))
	for _, a := range s.assignments {
		v, err := a.Expr.Eval(env)
		if err != nil {
			return err
		}
		next[a.Target] = v
	}
	s.pending = next
	s.pendingValid = true
	return nil
}

func (s *Sequential) applyResetValues() {
	next := make(map[string]uint64, len(s.reset.ResetValues))
	for name, v := range s.reset.ResetValues {
		next[name] = v
	}
	s.pending = next
}

// Commit writes the pending snapshot (if any) to the component's output
// wires atomically, then clears it. Called by the Runtime strictly after
// every component's Sample has run for the current cycle.
func (s *Sequential) Commit() {
	if !s.pendingValid {
		return
	}
	for name, v := range s.pending {
		if w, ok := s.wires[name]; ok {
			w.Set(v)
		}
	}
	s.pendingValid = false
}
