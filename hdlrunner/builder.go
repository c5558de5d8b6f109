package hdlrunner

import "github.com/sarchlab/akita/v4/sim"

// Builder can create new Runners.
type Builder struct {
	engine  sim.Engine
	freq    sim.Freq
	hdl     ClockedSim
	cycles  int
	onCycle func(cycle int)
}

// MakeBuilder returns a Builder with a 1 GHz default frequency.
func MakeBuilder() Builder {
	return Builder{freq: 1 * sim.GHz, cycles: 1}
}

// WithEngine sets the engine that drives the runner.
func (b Builder) WithEngine(engine sim.Engine) Builder {
	b.engine = engine
	return b
}

// WithFreq sets the frequency the runner ticks at.
func (b Builder) WithFreq(freq sim.Freq) Builder {
	b.freq = freq
	return b
}

// WithSim sets the simulation to drive.
func (b Builder) WithSim(hdl ClockedSim) Builder {
	b.hdl = hdl
	return b
}

// WithCycles sets the hardware-cycle budget.
func (b Builder) WithCycles(cycles int) Builder {
	if cycles < 1 {
		panic("need at least 1 cycle")
	}
	b.cycles = cycles
	return b
}

// WithOnCycle installs a callback invoked after every completed hardware
// cycle, for sampling outputs mid-run.
func (b Builder) WithOnCycle(f func(cycle int)) Builder {
	b.onCycle = f
	return b
}

// Build creates a Runner.
func (b Builder) Build(name string) *Runner {
	if b.engine == nil {
		panic("runner needs an engine")
	}
	if b.hdl == nil {
		panic("runner needs a simulation to drive")
	}

	r := &Runner{
		hdl:     b.hdl,
		engine:  b.engine,
		cycles:  b.cycles,
		onCycle: b.onCycle,
	}
	r.TickingComponent = sim.NewTickingComponent(name, b.engine, b.freq, r)
	return r
}
