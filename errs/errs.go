// Package errs defines the structured error kinds shared across the
// lowering, scheduling, and simulation packages.
package errs

import "fmt"

// Kind is a closed set of error categories a caller can switch on.
type Kind string

const (
	InvalidWidth           Kind = "InvalidWidth"
	WidthMismatch          Kind = "WidthMismatch"
	MultiDriver            Kind = "MultiDriver"
	UnknownPort            Kind = "UnknownPort"
	CombinationalLoop      Kind = "CombinationalLoop"
	UnsupportedPrimitive   Kind = "UnsupportedPrimitive"
	ScheduleNotProgressing Kind = "ScheduleNotProgressing"
	ResetViolation         Kind = "ResetViolation"
)

// Error is the structured, user-visible failure record: a kind, a
// human-readable message, and a path-or-index locator.
type Error struct {
	Kind    Kind
	Message string

	// Path is the component/connection path, set when the failure is
	// located at construction or lowering time.
	Path string

	// GateIndex and NetIndex locate a simulation-time or scheduling-time
	// failure. -1 means "not applicable".
	GateIndex int
	NetIndex  int
}

func (e *Error) Error() string {
	loc := e.Path
	if loc == "" {
		switch {
		case e.GateIndex >= 0:
			loc = fmt.Sprintf("gate[%d]", e.GateIndex)
		case e.NetIndex >= 0:
			loc = fmt.Sprintf("net[%d]", e.NetIndex)
		}
	}
	if loc == "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("%s: %s (%s)", e.Kind, e.Message, loc)
}

// AtPath builds a construction/lowering-time error located at a component path.
func AtPath(kind Kind, path, format string, args ...interface{}) *Error {
	return &Error{
		Kind:      kind,
		Message:   fmt.Sprintf(format, args...),
		Path:      path,
		GateIndex: -1,
		NetIndex:  -1,
	}
}

// AtGate builds a scheduling/simulation-time error located at a gate index.
func AtGate(kind Kind, gate int, format string, args ...interface{}) *Error {
	return &Error{
		Kind:      kind,
		Message:   fmt.Sprintf(format, args...),
		GateIndex: gate,
		NetIndex:  -1,
	}
}

// AtNet builds a scheduling/simulation-time error located at a net index.
func AtNet(kind Kind, net int, format string, args ...interface{}) *Error {
	return &Error{
		Kind:      kind,
		Message:   fmt.Sprintf(format, args...),
		GateIndex: -1,
		NetIndex:  net,
	}
}
