package conformance_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/hdlsim/components"
	"github.com/sarchlab/hdlsim/conformance"
)

var _ = Describe("LoadStimulusFile", func() {
	It("replays a file-backed stimulus through the harness", func() {
		path := filepath.Join(GinkgoT().TempDir(), "stim.yaml")
		content := `cycles:
  - pokes: {a: 1, b: 1}
  - pokes: {a: 1, b: 0}
  - pokes: {a: 0, b: 0}
`
		Expect(os.WriteFile(path, []byte(content), 0644)).To(Succeed())

		stim, err := conformance.LoadStimulusFile(path)
		Expect(err).NotTo(HaveOccurred())

		ha, err := components.HalfAdder("ha")
		Expect(err).NotTo(HaveOccurred())
		h := combinationalHarness(ha)

		report, err := h.Run(stim)
		Expect(err).NotTo(HaveOccurred())
		Expect(report.Passed()).To(BeTrue(), report.Table)
		Expect(report.CyclesExecuted).To(Equal(3))
	})

	It("rejects a missing file", func() {
		_, err := conformance.LoadStimulusFile("no/such/stimulus.yaml")
		Expect(err).To(HaveOccurred())
	})
})
