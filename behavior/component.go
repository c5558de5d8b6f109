// Package behavior implements the two-phase behavioral component runtime
// combinational blocks driven to a global fixed point, and
// sequential blocks using strict sample/commit semantics so same-cycle
// updates never race.
package behavior

import (
	"fmt"

	"github.com/sarchlab/hdlsim/errs"
	"github.com/sarchlab/hdlsim/signal"
)

// Port declares a named, width-typed input, output, or internal signal of a
// Component.
type Port struct {
	Name  string
	Width int
}

// Block is the common surface every Component (combinational or sequential)
// exposes to the Runtime and to Lowering.
type Block interface {
	Name() string
	Wire(name string) (*signal.Wire, bool)
	Inputs() []Port
	Outputs() []Port
	Internals() []Port
}

type baseComponent struct {
	name      string
	inputs    []Port
	outputs   []Port
	internals []Port
	wires     map[string]*signal.Wire
}

func newBase(name string, inputs, outputs, internals []Port) (*baseComponent, error) {
	b := &baseComponent{
		name:      name,
		inputs:    inputs,
		outputs:   outputs,
		internals: internals,
		wires:     make(map[string]*signal.Wire),
	}
	for _, group := range [][]Port{inputs, outputs, internals} {
		for _, p := range group {
			w, err := signal.NewWire(fmt.Sprintf("%s.%s", name, p.Name), p.Width)
			if err != nil {
				return nil, err
			}
			b.wires[p.Name] = w
		}
	}
	return b, nil
}

func (b *baseComponent) Name() string { return b.name }
func (b *baseComponent) Wire(name string) (*signal.Wire, bool) {
	w, ok := b.wires[name]
	return w, ok
}
func (b *baseComponent) Inputs() []Port    { return b.inputs }
func (b *baseComponent) Outputs() []Port   { return b.outputs }
func (b *baseComponent) Internals() []Port { return b.internals }

func (b *baseComponent) env() wireEnv { return wireEnv{path: b.name, wires: b.wires} }

// validateAssignments runs Assignment.Validate for every assignment and
// wraps the first failure with the component's path.
func validateAssignments(path string, assigns []Assignment) error {
	for _, a := range assigns {
		if err := a.Validate(path); err != nil {
			return err
		}
	}
	return nil
}

// SetInput writes an external input port. Unknown port names are an
// UnknownPort error.
func (b *baseComponent) SetInput(name string, v uint64) error {
	w, ok := b.wires[name]
	if !ok {
		return errs.AtPath(errs.UnknownPort, b.name, "unknown input %q", name)
	}
	w.Set(v)
	return nil
}

// GetOutput reads an external output port.
func (b *baseComponent) GetOutput(name string) (uint64, error) {
	w, ok := b.wires[name]
	if !ok {
		return 0, errs.AtPath(errs.UnknownPort, b.name, "unknown output %q", name)
	}
	return w.Get(), nil
}
