package behavior

import (
	"github.com/sarchlab/hdlsim/behavior/expr"
	"github.com/sarchlab/hdlsim/errs"
	"github.com/sarchlab/hdlsim/signal"
)

// wireEnv adapts a name -> *signal.Wire map to expr.Env, resolving both
// ports and local intermediates by name.
type wireEnv struct {
	path  string
	wires map[string]*signal.Wire
}

func (e wireEnv) Lookup(name string) (uint64, int, error) {
	w, ok := e.wires[name]
	if !ok {
		return 0, 0, errs.AtPath(errs.UnknownPort, e.path, "unknown signal %q", name)
	}
	return w.Get(), w.Width(), nil
}

var _ expr.Env = wireEnv{}
