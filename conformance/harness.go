package conformance

import (
	"sort"

	"github.com/rs/xid"

	"github.com/sarchlab/hdlsim/behavior"
	"github.com/sarchlab/hdlsim/gatesim"
	"github.com/sarchlab/hdlsim/netlist"
)

// behavioralComponent is the surface Harness needs from the behavioral side
// of a conformance run: both behavior.Combinational and behavior.Sequential
// satisfy it via their embedded baseComponent.
type behavioralComponent interface {
	behavior.Block
	SetInput(name string, v uint64) error
	GetOutput(name string) (uint64, error)
}

// Harness drives a behavioral component and its Lowered netlist.IR from one
// Stimulus and compares their externally visible outputs after
// every cycle. rt must already have the component registered (AddCombinational
// or AddSequential, as appropriate) so Harness can drive its settle/tick;
// Harness never constructs a Runtime itself since only the caller knows
// which kind of component it built.
type Harness struct {
	IR     *netlist.IR
	Source behavioralComponent
	RT     *behavior.Runtime
}

// NewHarness builds a Harness over a lowered IR and the behavioral
// component it was lowered from.
func NewHarness(ir *netlist.IR, source behavioralComponent, rt *behavior.Runtime) *Harness {
	return &Harness{IR: ir, Source: source, RT: rt}
}

// Run replays stim against both the behavioral component and a fresh
// scalar (single-lane) gate-level Simulator over h.IR, comparing every
// externally visible output after each cycle. It runs the full stimulus
// regardless of mismatches so Report.CyclesExecuted always reflects the
// whole sequence; only the first mismatch is retained.
func (h *Harness) Run(stim *Stimulus) (*Report, error) {
	sim, err := gatesim.New(h.IR, gatesim.Options{Lanes: 1})
	if err != nil {
		return nil, err
	}

	ports := make([]string, 0, len(h.IR.Outputs))
	for name := range h.IR.Outputs {
		ports = append(ports, name)
	}
	sort.Strings(ports)

	var rows []comparisonRow
	var first *Mismatch

	for cycle, cyc := range stim.cycles {
		for port, v := range cyc.pokes {
			if err := h.Source.SetInput(port, v); err != nil {
				return nil, err
			}
			if err := sim.PokeScalar(port, 0, v); err != nil {
				return nil, err
			}
		}

		if cyc.clockEdge {
			if err := h.RT.Tick(true); err != nil {
				return nil, err
			}
			if err := sim.Tick(); err != nil {
				return nil, err
			}
		} else {
			if err := h.RT.Propagate(); err != nil {
				return nil, err
			}
			if err := sim.Evaluate(); err != nil {
				return nil, err
			}
		}

		for _, port := range ports {
			expected, err := h.Source.GetOutput(port)
			if err != nil {
				return nil, err
			}
			actual, err := sim.PeekScalar(port, 0)
			if err != nil {
				return nil, err
			}
			rows = append(rows, comparisonRow{cycle: cycle, port: port, expected: expected, actual: actual})
			if expected != actual && first == nil {
				first = &Mismatch{Cycle: cycle, Port: port, Expected: expected, Actual: actual}
			}
		}
	}

	return &Report{
		RunID:          xid.New().String(),
		CyclesExecuted: len(stim.cycles),
		FirstMismatch:  first,
		Table:          renderTable(rows),
	}, nil
}
