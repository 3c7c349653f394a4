package search

import (
	"container/heap"
	"sort"
)

// entry is one queued node with its ordering key.
// seq breaks ties so that equal keys pop in insertion order.
type entry struct {
	node     Node
	priority int
	g        int
	seq      uint64
}

func (e entry) less(o entry) bool {
	if e.priority != o.priority {
		return e.priority < o.priority
	}
	return e.seq < o.seq
}

// entryHeap implements heap.Interface as a min-heap on (priority, seq).
type entryHeap []entry

func (h entryHeap) Len() int           { return len(h) }
func (h entryHeap) Less(i, j int) bool { return h[i].less(h[j]) }
func (h entryHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *entryHeap) Push(x any) {
	*h = append(*h, x.(entry))
}

func (h *entryHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = entry{}
	*h = old[:n-1]
	return item
}

// queue is a deterministic min-priority queue of nodes.
type queue struct {
	items entryHeap
	next  uint64
}

func (q *queue) push(n Node, priority, g int) {
	heap.Push(&q.items, entry{node: n, priority: priority, g: g, seq: q.next})
	q.next++
}

func (q *queue) pop() entry {
	return heap.Pop(&q.items).(entry)
}

func (q *queue) len() int {
	return len(q.items)
}

// ordered returns the queued entries in pop order without modifying q.
func (q *queue) ordered() []entry {
	out := make([]entry, len(q.items))
	copy(out, q.items)
	sort.Slice(out, func(i, j int) bool { return out[i].less(out[j]) })
	return out
}

func (q *queue) clone() queue {
	items := make(entryHeap, len(q.items))
	copy(items, q.items)
	return queue{items: items, next: q.next}
}
