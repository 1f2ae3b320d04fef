package mtree

import "math"

// addData implements the insertion descent from spec.md §4.4. dist is the
// distance from data to n's routing object; for leaf nodes it becomes the
// new entry's distance-to-parent, for internal nodes it is otherwise
// unused (the node was already selected as the insertion target by its
// own parent). It returns n's split replacement if n overflows as a
// result.
func (n *node[D]) addData(t *Tree[D], data D, dist float64) *splitOutcome[D] {
	if n.kind.isLeaf() {
		n.attachEntryRaw(data, dist)
		return n.checkOverflow(t)
	}

	chosen, delta := n.chooseChildForInsert(t, data)
	out := chosen.addData(t, data, delta)
	if out == nil {
		if r := chosen.distanceToParent + chosen.radius; r > n.radius {
			n.radius = r
		}
		return nil
	}

	n.removeChildRaw(chosen.data)
	return n.addChildren(t, out.nodes[0], out.nodes[1])
}

// chooseChildForInsert applies the two-phase rule from spec.md §4.4: a
// child that already covers data (delta <= child.radius) is preferred
// over one that would have to grow, and ties within each phase are
// broken by minimizing delta (covering) or the radius increase
// (growing).
func (n *node[D]) chooseChildForInsert(t *Tree[D], data D) (chosen *node[D], delta float64) {
	var (
		coverChild *node[D]
		coverDist  = math.Inf(1)
		growChild  *node[D]
		growDist   float64
		growIncr   = math.Inf(1)
	)

	for _, k := range n.childOrder {
		c := n.children[k]
		d := t.distanceFn(data, c.data)
		if d <= c.radius {
			if d < coverDist {
				coverChild, coverDist = c, d
			}
			continue
		}
		if incr := d - c.radius; incr < growIncr {
			growChild, growDist, growIncr = c, d, incr
		}
	}

	if coverChild != nil {
		return coverChild, coverDist
	}
	return growChild, growDist
}
