// Package hdlrunner embeds a gate-level simulation inside an akita event
// loop: a Runner is a sim.TickingComponent that advances one hardware clock
// cycle per engine tick, so a lowered netlist can be scheduled on a shared
// sim.Engine alongside other akita components.
package hdlrunner

import (
	"log/slog"

	"github.com/sarchlab/akita/v4/sim"
)

// ClockedSim is the surface Runner needs from the simulation it drives.
// *gatesim.Simulator satisfies it directly; a behavioral front-end can
// satisfy it with a thin adapter over Runtime.Tick.
type ClockedSim interface {
	Tick() error
	BackendName() string
}

// Runner ticks a ClockedSim once per engine cycle until its cycle budget is
// spent, then stops making progress so the engine can drain.
type Runner struct {
	*sim.TickingComponent

	hdl     ClockedSim
	engine  sim.Engine
	cycles  int
	onCycle func(cycle int)

	cyclesRun int
	failed    error
}

// Tick advances the wrapped simulation by one hardware clock cycle. A
// simulation error stops the run and is reported by Err.
func (r *Runner) Tick() bool {
	if r.failed != nil || r.cyclesRun >= r.cycles {
		return false
	}

	if err := r.hdl.Tick(); err != nil {
		slog.Error("hdl tick failed",
			"runner", r.Name(), "cycle", r.cyclesRun, "err", err)
		r.failed = err
		return false
	}

	if r.onCycle != nil {
		r.onCycle(r.cyclesRun)
	}
	r.cyclesRun++
	return true
}

// Run schedules the first tick and drives the engine until every scheduled
// event has drained, which for a lone Runner means the cycle budget is
// spent. It returns the first simulation error, if any.
func (r *Runner) Run() error {
	r.TickLater()
	if err := r.engine.Run(); err != nil {
		return err
	}
	return r.failed
}

// CyclesRun reports how many hardware cycles have completed.
func (r *Runner) CyclesRun() int { return r.cyclesRun }

// Err returns the error that stopped the run, or nil.
func (r *Runner) Err() error { return r.failed }
