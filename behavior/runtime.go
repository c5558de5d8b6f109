package behavior

import (
	"fmt"

	"github.com/sarchlab/hdlsim/errs"
	"github.com/sarchlab/hdlsim/signal"
)

// MaxIterations bounds the combinational fixed-point loop; exceeding it
// signals CombinationalLoop rather than looping forever.
const MaxIterations = 1000

// Runtime owns a flat arena of components and drives the global fixed-point
// (combinational) and two-phase sample/commit (sequential) semantics
// semantics. Ordering between components within one iteration is
// unspecified but reproducible: components are always visited in
// registration order.
type Runtime struct {
	combinational []*Combinational
	sequential    []*Sequential
	clocks        []*signal.Clock

	maxIterations int
}

// NewRuntime creates an empty runtime.
func NewRuntime() *Runtime {
	return &Runtime{maxIterations: MaxIterations}
}

// WithMaxIterations overrides the fixed-point iteration cap (for tests that
// want to observe CombinationalLoop quickly). Returns the runtime for
// chaining.
func (r *Runtime) WithMaxIterations(n int) *Runtime {
	r.maxIterations = n
	return r
}

// AddCombinational registers a combinational component.
func (r *Runtime) AddCombinational(c *Combinational) {
	r.combinational = append(r.combinational, c)
}

// AddSequential registers a sequential component.
func (r *Runtime) AddSequential(s *Sequential) {
	r.sequential = append(r.sequential, s)
}

// AddClock registers a clock that Run drives: it rises and falls once per
// cycle, with its edge-detection state kept current.
func (r *Runtime) AddClock(c *signal.Clock) {
	r.clocks = append(r.clocks, c)
}

// Run advances the simulation by whole clock cycles: each cycle raises every
// registered clock (sequential components sample and commit on the rising
// edge), settles, then lowers the clocks and settles again. With no
// registered clock, Run still ticks once per cycle, for designs whose clock
// is implicit.
func (r *Runtime) Run(cycles int) error {
	for i := 0; i < cycles; i++ {
		for _, c := range r.clocks {
			c.RecordEdge(1)
		}
		if err := r.Tick(true); err != nil {
			return err
		}
		for _, c := range r.clocks {
			c.RecordEdge(0)
		}
		if err := r.Tick(false); err != nil {
			return err
		}
	}
	return nil
}

// Propagate drives every combinational component to a fixed point: all
// components evaluate; if any observed output changed, the whole set
// re-evaluates, up to maxIterations. Exceeding the bound reports
// CombinationalLoop naming the components that were still changing.
func (r *Runtime) Propagate() error {
	for iter := 0; iter < r.maxIterations; iter++ {
		changedAny := false
		var offenders []string
		for _, c := range r.combinational {
			changed, err := c.Propagate()
			if err != nil {
				return err
			}
			if changed {
				changedAny = true
				offenders = append(offenders, c.Name())
			}
		}
		if !changedAny {
			return nil
		}
		if iter == r.maxIterations-1 {
			return errs.AtPath(errs.CombinationalLoop, "",
				"fixed point not reached after %d iterations; still changing: %v",
				r.maxIterations, offenders)
		}
	}
	return nil
}

// Tick advances sequential state by one clock cycle using strict two-phase
// semantics: every sequential component samples its pending value from the
// pre-tick state (so two DFFs that reference each other's output see only
// the pre-tick value), then every component commits
// atomically, then combinational logic settles via Propagate. rising
// reports whether this tick corresponds to a rising clock edge; sequential
// components configured with a synchronous reset only act on rising edges,
// while an asserted asynchronous reset acts regardless of rising.
func (r *Runtime) Tick(rising bool) error {
	for _, s := range r.sequential {
		if err := s.Sample(rising); err != nil {
			return fmt.Errorf("sample %s: %w", s.Name(), err)
		}
	}
	for _, s := range r.sequential {
		s.Commit()
	}
	return r.Propagate()
}
