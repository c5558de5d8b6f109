package netlist

// Tracer receives non-fatal lowering diagnostics, such as the X/Z -> 0
// coercion applied at the behavioral/netlist boundary. A nil Tracer
// (the default) silently drops diagnostics: callers that care install one.
type Tracer interface {
	// Note records a diagnostic: kind is a short tag ("x-to-zero",
	// "z-to-zero"), path is the offending component path, detail is a
	// human-readable elaboration.
	Note(kind, path, detail string)
}

// NopTracer discards every diagnostic. Useful as an explicit no-op when a
// caller wants to be clear it is not tracing, as opposed to leaving Tracer
// nil by omission.
type NopTracer struct{}

func (NopTracer) Note(string, string, string) {}

// CollectingTracer accumulates diagnostics in memory, in call order.
type CollectingTracer struct {
	Notes []Note
}

// Note is one recorded diagnostic.
type Note struct {
	Kind, Path, Detail string
}

func (t *CollectingTracer) Note(kind, path, detail string) {
	t.Notes = append(t.Notes, Note{Kind: kind, Path: path, Detail: detail})
}
