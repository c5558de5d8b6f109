// Package signal provides the bit-vector wire and clock primitives that sit
// beneath the behavioral component runtime.
package signal

import (
	"fmt"

	"github.com/sarchlab/hdlsim/errs"
)

// MaxWidth is the widest value a single Wire may carry.
const MaxWidth = 64

// Wire is a named, width-typed signal cell. Width is fixed at construction;
// writes wider than the declared width are truncated modulo 2^width.
type Wire struct {
	path  string
	width int
	value uint64

	subscribers []func(old, new uint64)
	driver      *Wire
	sinks       []*Wire
}

// NewWire allocates a wire at the given component-scoped dotted path with the
// given width. Width must be in [1, MaxWidth].
func NewWire(path string, width int) (*Wire, error) {
	if width <= 0 || width > MaxWidth {
		return nil, errs.AtPath(errs.InvalidWidth, path,
			"wire width %d out of range [1, %d]", width, MaxWidth)
	}
	return &Wire{path: path, width: width}, nil
}

// MustNewWire is NewWire, panicking on error. Intended for fixtures and
// tests where the width is a compile-time constant.
func MustNewWire(path string, width int) *Wire {
	w, err := NewWire(path, width)
	if err != nil {
		panic(err)
	}
	return w
}

// Path returns the wire's component-scoped dotted path.
func (w *Wire) Path() string { return w.path }

// Width returns the wire's declared bit width.
func (w *Wire) Width() int { return w.width }

func (w *Wire) mask() uint64 {
	if w.width == 64 {
		return ^uint64(0)
	}
	return (uint64(1) << uint(w.width)) - 1
}

// Set truncates v to the wire's width and, only if the truncated value
// differs from the current value, stores it and fires subscribers.
func (w *Wire) Set(v uint64) {
	v &= w.mask()
	if v == w.value {
		return
	}
	old := w.value
	w.value = v
	for _, cb := range w.subscribers {
		cb(old, v)
	}
	for _, sink := range w.sinks {
		sink.Set(v)
	}
}

// Get returns the current value. An uninitialized wire reads as 0.
func (w *Wire) Get() uint64 { return w.value }

// Bit returns bit i of the current value (0 or 1). Indices outside the
// wire's width always read 0.
func (w *Wire) Bit(i int) uint64 {
	if i < 0 || i >= w.width {
		return 0
	}
	return (w.value >> uint(i)) & 1
}

// OnChange registers a subscriber invoked with (old, new) on every
// observable change, i.e. only when Set actually alters the stored value.
func (w *Wire) OnChange(cb func(old, new uint64)) {
	w.subscribers = append(w.subscribers, cb)
}

// AddSink records w2 as a downstream wire whose value mirrors w's. Used by
// Connect; exposed directly for callers building their own forwarding.
func (w *Wire) AddSink(w2 *Wire) {
	w.sinks = append(w.sinks, w2)
}

// Connect installs dest as a sink of source: every change to source's value
// is copied onto dest. Width mismatch is a construction-time error.
func Connect(source, dest *Wire) error {
	if source.width != dest.width {
		return errs.AtPath(errs.WidthMismatch, dest.path,
			"cannot connect %s (width %d) to %s (width %d)",
			source.path, source.width, dest.path, dest.width)
	}
	dest.driver = source
	source.AddSink(dest)
	dest.Set(source.value)
	return nil
}

// Driver returns the wire driving this one via Connect, or nil if this wire
// is undriven (an external input or a component output).
func (w *Wire) Driver() *Wire { return w.driver }

func (w *Wire) String() string {
	return fmt.Sprintf("%s[%d]=0x%x", w.path, w.width, w.value)
}
