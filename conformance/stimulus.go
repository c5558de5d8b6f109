// Package conformance implements the correctness oracle: it drives
// a behavioral component (package behavior) and its Lowered netlist.IR
// (running under package gatesim) from an identical stimulus sequence and
// asserts their externally visible outputs agree after every cycle.
package conformance

// pendingCycle accumulates the pokes staged for one not-yet-closed cycle,
// plus whether that cycle ends in a clock edge.
type pendingCycle struct {
	pokes     map[string]uint64
	clockEdge bool
}

// Stimulus is a chained builder for a stimulus sequence: a list of per-cycle
// input assignments and clock edges. Call WithPokeScalar zero or more times to stage input
// values for the cycle under construction, then close it with either
// WithClockEdge (a rising clock edge: drives both the behavioral Runtime's
// Tick and the gate-level Simulator's Tick) or WithCycle (a combinational
// settle only: Propagate/Evaluate, no clock edge).
type Stimulus struct {
	cycles  []pendingCycle
	current pendingCycle
}

// NewStimulus starts an empty stimulus sequence.
func NewStimulus() *Stimulus {
	return &Stimulus{current: freshCycle()}
}

func freshCycle() pendingCycle {
	return pendingCycle{pokes: make(map[string]uint64)}
}

// WithPokeScalar stages value on port for the cycle currently under
// construction. Repeated calls for the same port within one cycle
// overwrite; the last value staged wins.
func (s *Stimulus) WithPokeScalar(port string, value uint64) *Stimulus {
	s.current.pokes[port] = value
	return s
}

// WithClockEdge closes the current cycle as a rising clock edge and starts
// a new one.
func (s *Stimulus) WithClockEdge() *Stimulus {
	s.current.clockEdge = true
	return s.closeCycle()
}

// WithCycle closes the current cycle as a combinational-only settle (no
// clock edge) and starts a new one.
func (s *Stimulus) WithCycle() *Stimulus {
	return s.closeCycle()
}

func (s *Stimulus) closeCycle() *Stimulus {
	s.cycles = append(s.cycles, s.current)
	s.current = freshCycle()
	return s
}
