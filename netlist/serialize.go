package netlist

import (
	"bytes"
	"encoding/json"
)

// Deterministic means byte-identical output for identical in-memory IR
// across runs and platforms. json.Marshal already sorts map[string]T keys
// alphabetically, which gives us the "sorted keys" half of that contract for
// free; the jsonIR/jsonGate/jsonDff mirror structs below fix the object key
// *order* and numeric formatting (plain decimal, no exponents) for the rest.

type jsonGate struct {
	Type   GateType `json:"type"`
	Inputs []int    `json:"inputs"`
	Output int      `json:"output"`
	Value  *int     `json:"value,omitempty"`
}

type jsonDff struct {
	D          int  `json:"d"`
	Q          int  `json:"q"`
	Rst        *int `json:"rst"`
	En         *int `json:"en"`
	AsyncReset bool `json:"async_reset"`
	ResetValue int  `json:"reset_value"`
}

type jsonIR struct {
	Name     string            `json:"name"`
	NetCount int               `json:"net_count"`
	Inputs   map[string][]int  `json:"inputs"`
	Outputs  map[string][]int  `json:"outputs"`
	Gates    []jsonGate        `json:"gates"`
	Dffs     []jsonDff         `json:"dffs"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

func (g Gate) toJSON() jsonGate {
	j := jsonGate{Type: g.Type, Inputs: g.Inputs, Output: g.Output}
	if g.Inputs == nil {
		j.Inputs = []int{}
	}
	if g.Type == CONST {
		v := g.Value
		j.Value = &v
	}
	return j
}

func (j jsonGate) toGate() Gate {
	g := Gate{Type: j.Type, Inputs: j.Inputs, Output: j.Output}
	if j.Value != nil {
		g.Value = *j.Value
	}
	return g
}

func (d Dff) toJSON() jsonDff {
	return jsonDff{D: d.D, Q: d.Q, Rst: d.Rst, En: d.En, AsyncReset: d.AsyncReset, ResetValue: d.ResetValue}
}

func (j jsonDff) toDff() Dff {
	return Dff{D: j.D, Q: j.Q, Rst: j.Rst, En: j.En, AsyncReset: j.AsyncReset, ResetValue: j.ResetValue}
}

// MarshalJSON serializes the IR with a fixed grammar and key order. Schedule and
// Tracer are not part of the wire contract: Schedule is derived by the
// Scheduler on demand, and Tracer is a runtime hook, not data.
func (ir *IR) MarshalJSON() ([]byte, error) {
	j := jsonIR{
		Name:     ir.Name,
		NetCount: ir.NetCount,
		Inputs:   ir.Inputs,
		Outputs:  ir.Outputs,
		Metadata: ir.Metadata,
	}
	if j.Inputs == nil {
		j.Inputs = map[string][]int{}
	}
	if j.Outputs == nil {
		j.Outputs = map[string][]int{}
	}
	j.Gates = make([]jsonGate, len(ir.Gates))
	for i, g := range ir.Gates {
		j.Gates[i] = g.toJSON()
	}
	j.Dffs = make([]jsonDff, len(ir.Dffs))
	for i, d := range ir.Dffs {
		j.Dffs[i] = d.toJSON()
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(j); err != nil {
		return nil, err
	}
	out := buf.Bytes()
	// encoding/json's Encoder appends a trailing newline; Marshal callers
	// expect none, matching json.Marshal's own contract.
	if len(out) > 0 && out[len(out)-1] == '\n' {
		out = out[:len(out)-1]
	}
	return out, nil
}

// UnmarshalJSON accepts fields in any order (only producers are bound to
// the fixed emission order).
func (ir *IR) UnmarshalJSON(data []byte) error {
	var j jsonIR
	if err := json.Unmarshal(data, &j); err != nil {
		return err
	}
	ir.Name = j.Name
	ir.NetCount = j.NetCount
	ir.Inputs = j.Inputs
	ir.Outputs = j.Outputs
	ir.Gates = make([]Gate, len(j.Gates))
	for i, g := range j.Gates {
		ir.Gates[i] = g.toGate()
	}
	ir.Dffs = make([]Dff, len(j.Dffs))
	for i, d := range j.Dffs {
		ir.Dffs[i] = d.toDff()
	}
	ir.Metadata = j.Metadata
	ir.Schedule = nil
	ir.Tracer = nil
	return nil
}

// Serialize renders ir in the wire format. It is a thin, named wrapper over MarshalJSON
// for callers that prefer a verb-named entry point over the json.Marshaler
// interface.
func Serialize(ir *IR) ([]byte, error) { return ir.MarshalJSON() }

// Deserialize is the inverse of Serialize.
func Deserialize(data []byte) (*IR, error) {
	ir := &IR{}
	if err := ir.UnmarshalJSON(data); err != nil {
		return nil, err
	}
	return ir, nil
}
