package mtree

import "math"

// removeStatus is the recursive-removal control signal from spec.md §4.5
// and §9's Design Notes: a sum-typed result that replaces the source's
// DataNotFound / NodeUnderCapacity exceptions. It never leaks across the
// public API — Tree.Remove translates it into a plain bool.
type removeStatus int

const (
	removeOK removeStatus = iota
	removeNotFound
	removeUnderCapacity
)

// removeData implements the deletion descent from spec.md §4.5.
// distToSelf is the distance from data to n's own routing object; it is
// used only by internal nodes, to prune children via the triangle
// inequality before computing a real distance to each.
func (n *node[D]) removeData(t *Tree[D], data D, distToSelf float64) removeStatus {
	if n.kind.isLeaf() {
		if _, ok := n.entries[data]; !ok {
			return removeNotFound
		}
		n.removeEntryRaw(data)
		if n.count() < n.minCapacity(t) {
			return removeUnderCapacity
		}
		return removeOK
	}

	for _, k := range append([]D(nil), n.childOrder...) {
		c, ok := n.children[k]
		if !ok {
			continue // removed by an earlier rebalance this loop
		}
		if math.Abs(distToSelf-c.distanceToParent) > c.radius {
			continue
		}
		delta := t.distanceFn(data, c.data)
		if delta > c.radius {
			continue
		}

		switch status := c.removeData(t, data, delta); status {
		case removeNotFound:
			continue
		case removeOK:
			if r := c.distanceToParent + c.radius; r > n.radius {
				n.radius = r
			}
			return removeOK
		case removeUnderCapacity:
			survivor := n.rebalanceChild(t, c)
			if r := survivor.distanceToParent + survivor.radius; r > n.radius {
				n.radius = r
			}
			if n.count() < n.minCapacity(t) {
				return removeUnderCapacity
			}
			return removeOK
		}
	}
	return removeNotFound
}

// rebalanceChild implements balance_children from spec.md §4.5: donate a
// grandchild from the nearest sibling with spare capacity, or merge
// theChild's contents into the nearest sibling and drop theChild. It
// returns the node whose radius the caller should fold into its own
// (theChild after a donation, or the merge candidate after a merge).
func (n *node[D]) rebalanceChild(t *Tree[D], theChild *node[D]) *node[D] {
	var (
		donor        *node[D]
		donorDist    = math.Inf(1)
		mergeCand    *node[D]
		mergeCandDst = math.Inf(1)
	)

	for _, k := range n.childOrder {
		if k == theChild.data {
			continue
		}
		sib := n.children[k]
		d := t.distanceFn(theChild.data, sib.data)
		if sib.count() > sib.minCapacity(t) {
			if d < donorDist {
				donor, donorDist = sib, d
			}
		} else if d < mergeCandDst {
			mergeCand, mergeCandDst = sib, d
		}
	}

	if donor != nil {
		donateNearestGrandchild(t, donor, theChild)
		return theChild
	}

	mergeInto(t, theChild, mergeCand)
	n.removeChildRaw(theChild.data)

	if out := mergeCand.checkOverflow(t); out != nil {
		// mergeCand can exceed max_capacity once theChild's contents land
		// on top of its own (see DESIGN.md): remove it and re-attach its
		// split halves the same way an overflowing insert would. The net
		// child count of n is unchanged (theChild and mergeCand both
		// leave, two new siblings arrive), so this can never make n
		// itself overflow.
		n.removeChildRaw(mergeCand.data)
		n.addChildren(t, out.nodes[0], out.nodes[1])
		// Either split half is a legitimate node to report the radius
		// of; the caller only uses it to grow n.radius, and both halves
		// already have correct distanceToParent relative to n.
		return out.nodes[0]
	}
	return mergeCand
}

// donateNearestGrandchild moves the grandchild of donor nearest to
// theChild.data from donor into theChild, recomputing distances fresh.
func donateNearestGrandchild[D comparable](t *Tree[D], donor, theChild *node[D]) {
	if donor.kind.isLeaf() {
		var best D
		bestDist := math.Inf(1)
		for _, k := range donor.entryOrder {
			d := t.distanceFn(k, theChild.data)
			if d < bestDist {
				best, bestDist = k, d
			}
		}
		e := donor.entries[best]
		donor.removeEntryRaw(best)
		theChild.attachEntryRaw(e.data, t.distanceFn(e.data, theChild.data))
		return
	}

	var best D
	bestDist := math.Inf(1)
	for _, k := range donor.childOrder {
		d := t.distanceFn(k, theChild.data)
		if d < bestDist {
			best, bestDist = k, d
		}
	}
	gc := donor.children[best]
	donor.removeChildRaw(best)
	gc.distanceToParent = t.distanceFn(gc.data, theChild.data)
	theChild.attachChildRaw(gc)
}

// mergeInto transfers every grandchild of theChild into dst, recomputing
// distances fresh relative to dst's routing object.
func mergeInto[D comparable](t *Tree[D], theChild, dst *node[D]) {
	for _, k := range theChild.orderedKeys() {
		if theChild.kind.isLeaf() {
			e := theChild.entries[k]
			dst.attachEntryRaw(e.data, t.distanceFn(e.data, dst.data))
		} else {
			gc := theChild.children[k]
			gc.distanceToParent = t.distanceFn(gc.data, dst.data)
			dst.attachChildRaw(gc)
		}
	}
}
