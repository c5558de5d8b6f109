package hdlrunner_test

import (
	"errors"
	"os"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/akita/v4/sim"

	"github.com/sarchlab/hdlsim/components"
	"github.com/sarchlab/hdlsim/gatesim"
	"github.com/sarchlab/hdlsim/hdlrunner"
	"github.com/sarchlab/hdlsim/lower"
)

func counterSim() *gatesim.Simulator {
	ctr, err := components.Counter("ctr", 4)
	Expect(err).NotTo(HaveOccurred())
	ir, err := lower.FromSequential(ctr, lower.Options{})
	Expect(err).NotTo(HaveOccurred())
	s, err := gatesim.New(ir, gatesim.Options{Lanes: 1})
	Expect(err).NotTo(HaveOccurred())
	Expect(s.Reset()).To(Succeed())
	Expect(s.PokeScalar("rst", 0, 0)).To(Succeed())
	Expect(s.PokeScalar("en", 0, 1)).To(Succeed())
	return s
}

var _ = Describe("Runner", func() {
	It("drives a counter for its whole cycle budget on a serial engine", func() {
		s := counterSim()
		engine := sim.NewSerialEngine()

		var sampled []uint64
		runner := hdlrunner.MakeBuilder().
			WithEngine(engine).
			WithFreq(1 * sim.GHz).
			WithSim(s).
			WithCycles(5).
			WithOnCycle(func(cycle int) {
				q, err := s.PeekScalar("q", 0)
				Expect(err).NotTo(HaveOccurred())
				sampled = append(sampled, q)
			}).
			Build("Runner")

		Expect(runner.Run()).To(Succeed())
		Expect(runner.CyclesRun()).To(Equal(5))
		Expect(sampled).To(Equal([]uint64{1, 2, 3, 4, 5}))
	})

	It("stops the run and surfaces the first simulation error", func() {
		engine := sim.NewSerialEngine()
		boom := errors.New("tick failed")
		runner := hdlrunner.MakeBuilder().
			WithEngine(engine).
			WithSim(failingSim{err: boom}).
			WithCycles(100).
			Build("Runner")

		Expect(runner.Run()).To(MatchError(boom))
		Expect(runner.CyclesRun()).To(Equal(0))
		Expect(runner.Err()).To(MatchError(boom))
	})
})

type failingSim struct{ err error }

func (f failingSim) Tick() error         { return f.err }
func (f failingSim) BackendName() string { return "failing" }

var _ = Describe("environment knobs", func() {
	It("falls back when unset and honors integer overrides", func() {
		os.Unsetenv(hdlrunner.LanesEnvVar)
		Expect(hdlrunner.LanesFromEnv(8)).To(Equal(8))

		os.Setenv(hdlrunner.LanesEnvVar, "64")
		defer os.Unsetenv(hdlrunner.LanesEnvVar)
		Expect(hdlrunner.LanesFromEnv(8)).To(Equal(64))

		os.Setenv(hdlrunner.CyclesEnvVar, "0")
		defer os.Unsetenv(hdlrunner.CyclesEnvVar)
		Expect(hdlrunner.CyclesFromEnv(16)).To(Equal(16))
	})
})
