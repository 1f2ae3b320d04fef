package mtree

import "container/heap"

// pendingItem is a candidate subtree in the best-first search of
// spec.md §4.6: node, its distance to the query object, and the
// optimistic lower bound (min_possible) on the distance of anything
// still undiscovered in its subtree.
type pendingItem[D comparable] struct {
	node        *node[D]
	dist        float64
	minPossible float64
}

// pendingQueue is a min-heap on minPossible, implementing container/heap
// the same way the standard library's own heap examples do — no example
// in this pack ships a priority queue generic over an arbitrary
// comparable payload type (see DESIGN.md), so this uses the stdlib
// directly rather than adapting a monomorphic one.
type pendingQueue[D comparable] []pendingItem[D]

func (q pendingQueue[D]) Len() int            { return len(q) }
func (q pendingQueue[D]) Less(i, j int) bool  { return q[i].minPossible < q[j].minPossible }
func (q pendingQueue[D]) Swap(i, j int)       { q[i], q[j] = q[j], q[i] }
func (q *pendingQueue[D]) Push(x interface{}) { *q = append(*q, x.(pendingItem[D])) }
func (q *pendingQueue[D]) Pop() interface{} {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}

// nearestItem is a candidate result entry: a leaf entry together with
// its known (not just bounded) distance to the query object.
type nearestItem[D comparable] struct {
	data D
	dist float64
}

// nearestQueue is a min-heap on dist.
type nearestQueue[D comparable] []nearestItem[D]

func (q nearestQueue[D]) Len() int            { return len(q) }
func (q nearestQueue[D]) Less(i, j int) bool  { return q[i].dist < q[j].dist }
func (q nearestQueue[D]) Swap(i, j int)       { q[i], q[j] = q[j], q[i] }
func (q *nearestQueue[D]) Push(x interface{}) { *q = append(*q, x.(nearestItem[D])) }
func (q *nearestQueue[D]) Pop() interface{} {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}

var (
	_ heap.Interface = (*pendingQueue[int])(nil)
	_ heap.Interface = (*nearestQueue[int])(nil)
)
