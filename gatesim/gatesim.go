// Package gatesim implements the bit-parallel simulation kernel: a
// lane-packed evaluator that runs K test vectors simultaneously by packing
// each 1-bit net into one machine word, one bit per lane.
//
// This is the scalar backend: K is a power of two up to 64, one net per
// machine Word. A SIMD backend (K up to 512, multiple words per net) is an
// out-of-scope extension point; BackendName distinguishes them in reports.
package gatesim

import (
	"math/bits"

	"github.com/sarchlab/hdlsim/errs"
	"github.com/sarchlab/hdlsim/netlist"
	"github.com/sarchlab/hdlsim/schedule"
)

// Word holds one bit per lane; bit i is the value of the net under
// test-vector i.
type Word = uint64

// MaxLanes is the scalar backend's lane ceiling: one net, one machine word.
const MaxLanes = 64

// Options configures a Simulator at construction time.
type Options struct {
	// Lanes is K, the number of test vectors evaluated in parallel. Must be
	// a power of two in [1, MaxLanes].
	Lanes int
	// ResetValue seeds nets[*] at construction, before the first evaluate.
	// Reset does not re-apply it: Reset zeroes every net. Only 0 and 1 are
	// meaningful (applied to all lanes uniformly).
	ResetValue int
}

// WithLanes returns opts with Lanes set, chainable for the rare caller
// that wants to tweak one field fluently.
func (o Options) WithLanes(lanes int) Options {
	o.Lanes = lanes
	return o
}

// Simulator is the lane-packed evaluator over one IR. It is side-effect-free
// on the IR: distinct Simulators may share an *netlist.IR by reference and
// evaluate it concurrently, each owning its own nets array.
type Simulator struct {
	ir    *netlist.IR
	lanes int
	mask  Word

	nets []Word

	// dSnapshot holds each DFF's sampled d-value between Sample and Commit,
	// indexed the same as ir.Dffs.
	dSnapshot []Word
}

// New builds a Simulator for ir with the given options. It computes and
// attaches ir.Schedule if not already present, and validates ir first.
func New(ir *netlist.IR, opts Options) (*Simulator, error) {
	if opts.Lanes <= 0 || opts.Lanes > MaxLanes || bits.OnesCount(uint(opts.Lanes)) != 1 {
		return nil, errs.AtPath(errs.InvalidWidth, ir.Name,
			"lanes must be a power of two in [1, %d], got %d", MaxLanes, opts.Lanes)
	}
	if err := ir.Validate(); err != nil {
		return nil, err
	}
	if ir.Schedule == nil {
		if err := schedule.Attach(ir); err != nil {
			return nil, err
		}
	}

	s := &Simulator{
		ir:        ir,
		lanes:     opts.Lanes,
		mask:      laneMask(opts.Lanes),
		nets:      make([]Word, ir.NetCount),
		dSnapshot: make([]Word, len(ir.Dffs)),
	}
	if opts.ResetValue != 0 {
		for i := range s.nets {
			s.nets[i] = s.mask
		}
	}
	return s, nil
}

func laneMask(lanes int) Word {
	if lanes >= 64 {
		return ^Word(0)
	}
	return (Word(1) << uint(lanes)) - 1
}

// BackendName identifies this evaluator implementation, distinguishing it
// from alternative (e.g. SIMD) backends in reports.
func (s *Simulator) BackendName() string { return "gatesim-scalar" }

// Lanes returns K, the active lane count.
func (s *Simulator) Lanes() int { return s.lanes }

func (s *Simulator) portNets(port string, table map[string][]int) ([]int, error) {
	nets, ok := table[port]
	if !ok {
		return nil, errs.AtPath(errs.UnknownPort, port, "unknown port %q", port)
	}
	return nets, nil
}

// Poke writes one lane-word per constituent net of the named input port.
// laneValues must have exactly one entry per net the port declares.
func (s *Simulator) Poke(port string, laneValues []Word) error {
	nets, err := s.portNets(port, s.ir.Inputs)
	if err != nil {
		return err
	}
	if len(laneValues) != len(nets) {
		return errs.AtPath(errs.WidthMismatch, port,
			"port %q has %d nets, got %d lane words", port, len(nets), len(laneValues))
	}
	for i, n := range nets {
		s.nets[n] = laneValues[i] & s.mask
	}
	return nil
}

// PokeScalar sets a single lane's bit across every net of a (possibly
// multi-bit) input port, encoding value's low len(nets) bits LSB-first.
func (s *Simulator) PokeScalar(port string, lane int, value uint64) error {
	if lane < 0 || lane >= s.lanes {
		return errs.AtPath(errs.UnknownPort, port, "lane %d out of range [0,%d)", lane, s.lanes)
	}
	nets, err := s.portNets(port, s.ir.Inputs)
	if err != nil {
		return err
	}
	bit := Word(1) << uint(lane)
	for i, n := range nets {
		if (value>>uint(i))&1 == 1 {
			s.nets[n] |= bit
		} else {
			s.nets[n] &^= bit
		}
	}
	return nil
}

// Peek reads one lane-word per constituent net of the named output port.
func (s *Simulator) Peek(port string) ([]Word, error) {
	nets, err := s.portNets(port, s.ir.Outputs)
	if err != nil {
		return nil, err
	}
	out := make([]Word, len(nets))
	for i, n := range nets {
		out[i] = s.nets[n] & s.mask
	}
	return out, nil
}

// PeekScalar reads a single lane's value across every net of an output
// port, packed LSB-first.
func (s *Simulator) PeekScalar(port string, lane int) (uint64, error) {
	if lane < 0 || lane >= s.lanes {
		return 0, errs.AtPath(errs.UnknownPort, port, "lane %d out of range [0,%d)", lane, s.lanes)
	}
	nets, err := s.portNets(port, s.ir.Outputs)
	if err != nil {
		return 0, err
	}
	bit := Word(1) << uint(lane)
	var value uint64
	for i, n := range nets {
		if s.nets[n]&bit != 0 {
			value |= 1 << uint(i)
		}
	}
	return value, nil
}

// Evaluate recomputes every gate's output word, in schedule order, from its
// current input words. No DFF state changes here.
func (s *Simulator) Evaluate() error {
	for _, gi := range s.ir.Schedule {
		g := s.ir.Gates[gi]
		var out Word
		switch g.Type {
		case netlist.AND:
			out = s.nets[g.Inputs[0]] & s.nets[g.Inputs[1]]
		case netlist.OR:
			out = s.nets[g.Inputs[0]] | s.nets[g.Inputs[1]]
		case netlist.XOR:
			out = s.nets[g.Inputs[0]] ^ s.nets[g.Inputs[1]]
		case netlist.NOT:
			out = ^s.nets[g.Inputs[0]] & s.mask
		case netlist.BUF:
			out = s.nets[g.Inputs[0]]
		case netlist.MUX:
			sel, t, f := s.nets[g.Inputs[0]], s.nets[g.Inputs[1]], s.nets[g.Inputs[2]]
			out = (sel & t) | (^sel & f)
		case netlist.CONST:
			if g.Value != 0 {
				out = s.mask
			}
		default:
			return errs.AtGate(errs.UnsupportedPrimitive, gi, "unsupported gate type %q", g.Type)
		}
		s.nets[g.Output] = out & s.mask
	}
	return nil
}

// Tick advances sequential state by one clock cycle using strict two-phase
// semantics: every DFF samples its d-input before any DFF
// commits its q-output, so no DFF in this cycle ever
// observes another's newly-committed value. Combinational outputs are then
// re-settled by Evaluate.
//
// Tick first settles the combinational network, so pokes staged since the
// last Evaluate are visible to the sample phase. Evaluate is idempotent, so
// an already-settled network is unchanged.
func (s *Simulator) Tick() error {
	if err := s.Evaluate(); err != nil {
		return err
	}
	for i, d := range s.ir.Dffs {
		enMask := s.mask
		if d.En != nil {
			enMask = s.nets[*d.En]
		}
		held := (enMask & s.nets[d.D]) | (^enMask & s.nets[d.Q])

		dVal := held
		if d.Rst != nil {
			rstMask := s.nets[*d.Rst]
			reset := resetWord(d.ResetValue, s.mask)
			dVal = (rstMask & reset) | (^rstMask & held)
		}
		s.dSnapshot[i] = dVal & s.mask
	}
	for i, d := range s.ir.Dffs {
		s.nets[d.Q] = s.dSnapshot[i]
	}
	return s.Evaluate()
}

func resetWord(resetValue int, mask Word) Word {
	if resetValue != 0 {
		return mask
	}
	return 0
}

// Reset zeroes every net, applies each DFF's reset_value to its q net
// (across all lanes), then settles combinational outputs via Evaluate.
func (s *Simulator) Reset() error {
	for i := range s.nets {
		s.nets[i] = 0
	}
	for _, d := range s.ir.Dffs {
		s.nets[d.Q] = resetWord(d.ResetValue, s.mask)
	}
	return s.Evaluate()
}
