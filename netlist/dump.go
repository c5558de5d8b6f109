package netlist

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
)

// Dump renders the IR's gate and DFF tables as aligned text, for debugging
// (hdlsimctl prints it under -dump-ir). It is a textual
// diagnostic, not a diagram: diagram emission is out of scope for this
// module.
func Dump(ir *IR) string {
	out := fmt.Sprintf("netlist %q: %d nets, %d gates, %d dffs\n", ir.Name, ir.NetCount, len(ir.Gates), len(ir.Dffs))

	gt := table.NewWriter()
	gt.AppendHeader(table.Row{"#", "type", "inputs", "output", "value"})
	for i, g := range ir.Gates {
		value := ""
		if g.Type == CONST {
			value = fmt.Sprintf("%d", g.Value)
		}
		gt.AppendRow(table.Row{i, g.Type, fmt.Sprint(g.Inputs), g.Output, value})
	}
	out += gt.Render() + "\n"

	dt := table.NewWriter()
	dt.AppendHeader(table.Row{"#", "d", "q", "rst", "en", "async", "reset_value"})
	for i, d := range ir.Dffs {
		rst, en := "-", "-"
		if d.Rst != nil {
			rst = fmt.Sprintf("%d", *d.Rst)
		}
		if d.En != nil {
			en = fmt.Sprintf("%d", *d.En)
		}
		dt.AppendRow(table.Row{i, d.D, d.Q, rst, en, d.AsyncReset, d.ResetValue})
	}
	out += dt.Render()

	return out
}
