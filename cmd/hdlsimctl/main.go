// hdlsimctl is a smoke-test front end for the simulation core: it lowers a
// couple of stock components, proves the ALU conformant against the
// behavioral reference, and drives the counter on an akita engine. It honors two
// environment knobs: HDLSIM_LANES (evaluator lane count) and HDLSIM_CYCLES
// (clock cycles to run).
package main

import (
	"flag"
	"fmt"

	"github.com/sarchlab/akita/v4/sim"
	"github.com/tebeka/atexit"

	"github.com/sarchlab/hdlsim/behavior"
	"github.com/sarchlab/hdlsim/components"
	"github.com/sarchlab/hdlsim/conformance"
	"github.com/sarchlab/hdlsim/gatesim"
	"github.com/sarchlab/hdlsim/hdlrunner"
	"github.com/sarchlab/hdlsim/lower"
	"github.com/sarchlab/hdlsim/netlist"
)

var (
	dumpIR       = flag.Bool("dump-ir", false, "print the lowered netlist tables")
	stimulusFile = flag.String("stimulus", "", "YAML stimulus file for the ALU conformance run")
)

func fatal(err error) {
	fmt.Println("Error:", err)
	atexit.Exit(1)
}

func aluConformance() {
	alu, err := components.Alu8("alu")
	if err != nil {
		fatal(err)
	}
	ir, err := lower.FromCombinational(alu, lower.Options{})
	if err != nil {
		fatal(err)
	}
	fmt.Printf("Lowered %q: %d nets, %d gates\n", ir.Name, ir.NetCount, len(ir.Gates))
	if *dumpIR {
		fmt.Println(netlist.Dump(ir))
	}

	stim := conformance.NewStimulus().
		WithPokeScalar("opsel", uint64(components.AluAdd)).
		WithPokeScalar("a", 10).WithPokeScalar("b", 5).WithCycle().
		WithPokeScalar("opsel", uint64(components.AluSub)).
		WithPokeScalar("a", 10).WithPokeScalar("b", 10).WithCycle().
		WithPokeScalar("opsel", uint64(components.AluAnd)).
		WithPokeScalar("a", 0xF0).WithPokeScalar("b", 0x0F).WithCycle()
	if *stimulusFile != "" {
		stim, err = conformance.LoadStimulusFile(*stimulusFile)
		if err != nil {
			fatal(err)
		}
	}

	rt := behavior.NewRuntime()
	rt.AddCombinational(alu)
	report, err := conformance.NewHarness(ir, alu, rt).Run(stim)
	if err != nil {
		fatal(err)
	}
	fmt.Printf("Conformance run %s: %d cycles, passed=%v\n",
		report.RunID, report.CyclesExecuted, report.Passed())
	if !report.Passed() {
		fmt.Println(report.Table)
		atexit.Exit(1)
	}
}

func counterRun(lanes, cycles int) {
	ctr, err := components.Counter("ctr", 4)
	if err != nil {
		fatal(err)
	}
	ir, err := lower.FromSequential(ctr, lower.Options{})
	if err != nil {
		fatal(err)
	}
	hdl, err := gatesim.New(ir, gatesim.Options{Lanes: lanes})
	if err != nil {
		fatal(err)
	}
	if err := hdl.Reset(); err != nil {
		fatal(err)
	}
	for lane := 0; lane < lanes; lane++ {
		if err := hdl.PokeScalar("en", lane, 1); err != nil {
			fatal(err)
		}
	}

	engine := sim.NewSerialEngine()
	runner := hdlrunner.MakeBuilder().
		WithEngine(engine).
		WithFreq(1 * sim.GHz).
		WithSim(hdl).
		WithCycles(cycles).
		Build("CounterRunner")

	if err := runner.Run(); err != nil {
		fatal(err)
	}
	q, err := hdl.PeekScalar("q", 0)
	if err != nil {
		fatal(err)
	}
	fmt.Printf("Counter on %s: %d cycles at %d lanes, q=%d\n",
		hdl.BackendName(), runner.CyclesRun(), lanes, q)
}

func main() {
	flag.Parse()

	lanes := hdlrunner.LanesFromEnv(1)
	cycles := hdlrunner.CyclesFromEnv(16)

	aluConformance()
	counterRun(lanes, cycles)

	atexit.Exit(0)
}
