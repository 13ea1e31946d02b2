package decimate

import "container/heap"

// entry is one (cost, edge) pair living in the heap. seq is a monotonically
// increasing insertion counter used as a deterministic tiebreak alongside
// edge index, so two runs over identical input always pop in the same
// order even when costs tie exactly.
type entry struct {
	cost  float64
	edge  int
	seq   int
	index int // position in the heap slice, maintained by heap.Interface
}

type entryHeap []*entry

func (h entryHeap) Len() int { return len(h) }

func (h entryHeap) Less(i, j int) bool {
	if h[i].cost != h[j].cost {
		return h[i].cost < h[j].cost
	}
	if h[i].edge != h[j].edge {
		return h[i].edge < h[j].edge
	}
	return h[i].seq < h[j].seq
}

func (h entryHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *entryHeap) Push(x any) {
	e := x.(*entry)
	e.index = len(*h)
	*h = append(*h, e)
}

func (h *entryHeap) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	e.index = -1
	*h = old[:n-1]
	return e
}

// Queue is the ordered multimap from cost to edge index described by the
// priority queue component: an O(log n) binary heap plus an O(1)
// edge-index -> heap-entry back-reference (Qit in the specification's
// terms) so a cost change can be applied as erase-then-insert without a
// linear scan.
type Queue struct {
	h    entryHeap
	byEd map[int]*entry
	next int
}

// NewQueue returns an empty priority queue.
func NewQueue() *Queue {
	return &Queue{byEd: make(map[int]*entry)}
}

// Len reports how many edges are currently queued.
func (q *Queue) Len() int { return len(q.h) }

// Insert adds edge ei at the given cost. It is an error to Insert an edge
// already present; callers must Remove (or use Rekey) first.
func (q *Queue) Insert(ei int, cost float64) {
	e := &entry{cost: cost, edge: ei, seq: q.next}
	q.next++
	q.byEd[ei] = e
	heap.Push(&q.h, e)
}

// Remove erases edge ei's current entry, if any.
func (q *Queue) Remove(ei int) {
	e, ok := q.byEd[ei]
	if !ok {
		return
	}
	heap.Remove(&q.h, e.index)
	delete(q.byEd, ei)
}

// Rekey is the mandatory erase-then-insert re-keying discipline: it drops
// edge ei's current entry (if any) and inserts it fresh at the new cost.
func (q *Queue) Rekey(ei int, cost float64) {
	q.Remove(ei)
	q.Insert(ei, cost)
}

// Contains reports whether edge ei currently has a queue entry.
func (q *Queue) Contains(ei int) bool {
	_, ok := q.byEd[ei]
	return ok
}

// Cost returns edge ei's currently queued cost, if present.
func (q *Queue) Cost(ei int) (float64, bool) {
	e, ok := q.byEd[ei]
	if !ok {
		return 0, false
	}
	return e.cost, true
}

// Peek returns the cheapest queued (edge, cost) without removing it.
func (q *Queue) Peek() (ei int, cost float64, ok bool) {
	if len(q.h) == 0 {
		return 0, 0, false
	}
	top := q.h[0]
	return top.edge, top.cost, true
}

// Pop removes and returns the cheapest queued (edge, cost).
func (q *Queue) Pop() (ei int, cost float64, ok bool) {
	if len(q.h) == 0 {
		return 0, 0, false
	}
	top := heap.Pop(&q.h).(*entry)
	delete(q.byEd, top.edge)
	return top.edge, top.cost, true
}
