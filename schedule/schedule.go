// Package schedule implements the topological scheduler: Kahn's
// algorithm over the netlist IR's gate dependency graph, seeded from
// external inputs, CONST gates, and DFF Q outputs (all scheduling sources
// rather than dependency edges), with an ascending-gate-index tie-break for
// determinism across runs.
package schedule

import (
	"container/heap"
	"sort"

	"github.com/sarchlab/hdlsim/errs"
	"github.com/sarchlab/hdlsim/netlist"
)

// intHeap is a min-heap of gate indices, used to guarantee the ascending
// tie-break Kahn's algorithm needs for reproducibility.
type intHeap []int

func (h intHeap) Len() int            { return len(h) }
func (h intHeap) Less(i, j int) bool  { return h[i] < h[j] }
func (h intHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *intHeap) Push(x interface{}) { *h = append(*h, x.(int)) }
func (h *intHeap) Pop() interface{} {
	old := *h
	n := len(old)
	v := old[n-1]
	*h = old[:n-1]
	return v
}

// Schedule computes a permutation of gate indices such that every gate
// appears after all gates that produce its inputs. DFF Q outputs and
// external inputs are scheduling sources, not dependency edges. Complexity
// is O(V + E) where V = |gates| + |dffs| and E = sum of gate fan-ins.
//
// It does not mutate ir; callers that want the result attached call
// Attach, mirroring the IR's "derived, not stored by default" contract.
func Schedule(ir *netlist.IR) ([]int, error) {
	n := len(ir.Gates)

	producer := make([]int, ir.NetCount)
	for i := range producer {
		producer[i] = -1
	}
	for gi, g := range ir.Gates {
		producer[g.Output] = gi
	}

	indegree := make([]int, n)
	consumers := make([][]int, ir.NetCount)
	for gi, g := range ir.Gates {
		for _, in := range g.Inputs {
			if producer[in] != -1 {
				indegree[gi]++
				consumers[in] = append(consumers[in], gi)
			}
		}
	}

	ready := &intHeap{}
	heap.Init(ready)
	for gi := 0; gi < n; gi++ {
		if indegree[gi] == 0 {
			heap.Push(ready, gi)
		}
	}

	schedule := make([]int, 0, n)
	scheduled := make([]bool, n)
	for ready.Len() > 0 {
		if len(schedule) == n {
			return nil, errs.AtGate(errs.ScheduleNotProgressing, (*ready)[0],
				"scheduler emitted %d gates but the ready set is not empty; dependency bookkeeping is inconsistent", n)
		}
		gi := heap.Pop(ready).(int)
		schedule = append(schedule, gi)
		scheduled[gi] = true

		out := ir.Gates[gi].Output
		for _, consumer := range consumers[out] {
			indegree[consumer]--
			if indegree[consumer] == 0 {
				heap.Push(ready, consumer)
			}
		}
	}

	if len(schedule) < n {
		var residual []int
		for gi := 0; gi < n; gi++ {
			if !scheduled[gi] {
				residual = append(residual, gi)
			}
		}
		sort.Ints(residual)
		return nil, errs.AtGate(errs.CombinationalLoop, residual[0],
			"combinational loop: %d gate(s) unscheduled: %v", len(residual), residual)
	}

	return schedule, nil
}

// Attach computes Schedule(ir) and stores it on ir.Schedule, returning any
// error.
func Attach(ir *netlist.IR) error {
	s, err := Schedule(ir)
	if err != nil {
		return err
	}
	ir.Schedule = s
	return nil
}
