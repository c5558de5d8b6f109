package conformance

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
)

// Mismatch names the first cycle where the behavioral reference and the
// gate-level netlist disagreed on an externally visible output.
type Mismatch struct {
	Cycle    int
	Port     string
	Expected uint64 // behavioral (reference) value
	Actual   uint64 // gate-level (netlist.IR under gatesim) value
}

// Report is what Harness.Run returns: a run identity, how many cycles ran,
// the first mismatch (if any), and a rendered table of every per-cycle,
// per-port comparison for human inspection.
type Report struct {
	RunID          string
	CyclesExecuted int
	FirstMismatch  *Mismatch
	Table          string
}

// Passed reports whether every comparison across the run agreed.
func (r Report) Passed() bool { return r.FirstMismatch == nil }

func renderTable(rows []comparisonRow) string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"cycle", "port", "behavioral", "gate-level", "match"})
	for _, r := range rows {
		match := "ok"
		if r.expected != r.actual {
			match = "MISMATCH"
		}
		t.AppendRow(table.Row{r.cycle, r.port, r.expected, r.actual, match})
	}
	return fmt.Sprintf("conformance run: %d comparisons\n%s", len(rows), t.Render())
}

type comparisonRow struct {
	cycle            int
	port             string
	expected, actual uint64
}
