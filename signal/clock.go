package signal

// Clock is a named 1-bit wire annotated with a toggle period and a rising
// edge counter. Edge queries are stateful: Tick records the prior value so
// Rising/Falling can be queried repeatedly during the same propagation pass
// without re-deriving it from timing.
type Clock struct {
	*Wire

	Domain string // label only; the core never runs more than one domain.

	period int // ticks per half-period; informational, not enforced here.
	cycles int
	prev   uint64
}

// NewClock builds a 1-bit clock wire starting low.
func NewClock(path string, period int) *Clock {
	w := MustNewWire(path, 1)
	return &Clock{Wire: w, period: period}
}

// Cycles returns the number of rising edges observed so far.
func (c *Clock) Cycles() int { return c.cycles }

// Period returns the configured half-period in ticks.
func (c *Clock) Period() int { return c.period }

// Tick advances the clock by one half-period: it flips the wire's value and
// updates the rising-edge counter and edge-detection state. Callers that
// drive their own clock wire directly (bypassing Tick) should call
// RecordEdge instead.
func (c *Clock) Tick() {
	next := c.Get() ^ 1
	c.RecordEdge(next)
}

// RecordEdge sets the clock wire to v and records the previous value for
// Rising/Falling queries, incrementing the cycle counter on a 0->1 edge.
func (c *Clock) RecordEdge(v uint64) {
	c.prev = c.Get()
	c.Set(v)
	if c.prev == 0 && v == 1 {
		c.cycles++
	}
}

// Rising reports whether the most recent RecordEdge/Tick was a 0->1 edge.
func (c *Clock) Rising() bool { return c.prev == 0 && c.Get() == 1 }

// Falling reports whether the most recent RecordEdge/Tick was a 1->0 edge.
func (c *Clock) Falling() bool { return c.prev == 1 && c.Get() == 0 }
