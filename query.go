package mtree

import (
	"container/heap"
	"math"
)

// Query is the lazy, restartable, ordered kNN/range search from
// spec.md §4.6. Results are produced on demand by Next; dropping a Query
// before exhausting it discards its remaining work (spec.md §5).
type Query[D comparable] struct {
	t    *Tree[D]
	data D

	rangeLimit float64
	limit      int
	yielded    int

	pending pendingQueue[D]
	nearest nearestQueue[D]

	nextPendingMin float64
	exhausted      bool
}

func newQuery[D comparable](t *Tree[D], data D, r Range, limit int) *Query[D] {
	q := &Query[D]{
		t:          t,
		data:       data,
		rangeLimit: r,
		limit:      limit,
	}
	if t.root == nil {
		q.exhausted = true
		q.nextPendingMin = math.Inf(1)
		return q
	}
	d := t.distanceFn(data, t.root.data)
	m := math.Max(0, d-t.root.radius)
	heap.Push(&q.pending, pendingItem[D]{node: t.root, dist: d, minPossible: m})
	q.nextPendingMin = m
	return q
}

// Next returns the next result in non-decreasing distance order, or
// (Result{}, false) once the query is exhausted (limit reached, range
// exceeded, or the tree has no more candidates) — spec.md §4.6's "Yield
// step", repeated until it can either yield or prove it's done.
func (q *Query[D]) Next() (Result[D], bool) {
	if q.exhausted || q.yielded >= q.limit {
		return Result[D]{}, false
	}

	for {
		if q.nearest.Len() > 0 && q.nearest[0].dist <= q.nextPendingMin {
			item := heap.Pop(&q.nearest).(nearestItem[D])
			if item.dist > q.rangeLimit {
				// Non-decreasing order means everything else, pending or
				// already queued, is at least this far away too.
				q.exhausted = true
				return Result[D]{}, false
			}
			q.yielded++
			return Result[D]{Data: item.data, Distance: item.dist}, true
		}

		if q.pending.Len() == 0 {
			if q.nearest.Len() == 0 {
				q.exhausted = true
				return Result[D]{}, false
			}
			// No more subtrees to expand: everything queued in nearest is
			// now safe to yield in order.
			q.nextPendingMin = math.Inf(1)
			continue
		}

		popped := heap.Pop(&q.pending).(pendingItem[D])
		q.expand(popped)
	}
}

// expand processes the children of a popped pending node, pushing each
// surviving candidate onto the appropriate queue (spec.md §4.6 step 2),
// then refreshes nextPendingMin.
func (q *Query[D]) expand(popped pendingItem[D]) {
	n := popped.node
	for _, k := range n.orderedKeys() {
		var childRadius, childDistToParent float64
		var isLeafChild bool
		var childData D

		if n.kind.isLeaf() {
			e := n.entries[k]
			childData, childDistToParent, childRadius, isLeafChild = e.data, e.distanceToParent, 0, true
		} else {
			c := n.children[k]
			childData, childDistToParent, childRadius, isLeafChild = c.data, c.distanceToParent, c.radius, false
		}

		if math.Abs(popped.dist-childDistToParent)-childRadius > q.rangeLimit {
			continue
		}
		delta := q.t.distanceFn(q.data, childData)
		m := math.Max(0, delta-childRadius)
		if m > q.rangeLimit {
			continue
		}

		if isLeafChild {
			heap.Push(&q.nearest, nearestItem[D]{data: childData, dist: delta})
		} else {
			heap.Push(&q.pending, pendingItem[D]{node: n.children[k], dist: delta, minPossible: m})
		}
	}

	if q.pending.Len() > 0 {
		q.nextPendingMin = q.pending[0].minPossible
	} else {
		q.nextPendingMin = math.Inf(1)
	}
}

// All drains the query, returning every remaining result in order. Use
// with a bounded limit; an unbounded range/kNN query over a large tree
// should generally be stepped with Next instead.
func (q *Query[D]) All() []Result[D] {
	var out []Result[D]
	for {
		r, ok := q.Next()
		if !ok {
			return out
		}
		out = append(out, r)
	}
}
