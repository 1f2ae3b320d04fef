package mtree

// kind discriminates the four node variants named in the spec's data
// model: RootLeaf, RootInternal, Internal, Leaf. A single struct backs
// all four; the tag decides which of the two children collections
// (entries or nodes) is live and what the minimum capacity is.
type kind uint8

const (
	rootLeafKind kind = iota
	rootInternalKind
	internalKind
	leafKind
)

func (k kind) isLeaf() bool {
	return k == rootLeafKind || k == leafKind
}

func (k kind) isRoot() bool {
	return k == rootLeafKind || k == rootInternalKind
}

// entry is the terminal, leaf-level payload of the tree: an indexed
// object together with its distance to its parent's routing object.
// Entries always have radius 0.
type entry[D comparable] struct {
	data             D
	distanceToParent float64
}

// node is the tagged-sum node representation described in the spec's
// Design Notes (§9): rather than the source's diamond-inherited C++
// classes, a single struct carries a kind tag and dispatches explicitly.
// Only one of (entries, children) is populated, chosen by kind.isLeaf().
type node[D comparable] struct {
	kind kind

	data             D       // routing object
	radius           float64 // covering radius
	distanceToParent float64 // meaningless (left zero) when kind.isRoot()

	// entryOrder / childOrder hold insertion order for entries / children so
	// that split and Check() iterate deterministically despite Go's
	// randomized map iteration order (see SPEC_FULL.md §3).
	entryOrder []D
	entries    map[D]*entry[D]

	childOrder []D
	children   map[D]*node[D]
}

func newRootLeaf[D comparable](data D) *node[D] {
	return &node[D]{
		kind:    rootLeafKind,
		data:    data,
		entries: make(map[D]*entry[D]),
	}
}

func newRootInternal[D comparable](data D) *node[D] {
	return &node[D]{
		kind:     rootInternalKind,
		data:     data,
		children: make(map[D]*node[D]),
	}
}

func newLeafNode[D comparable](data D) *node[D] {
	return &node[D]{
		kind:    leafKind,
		data:    data,
		entries: make(map[D]*entry[D]),
	}
}

func newInternalNode[D comparable](data D) *node[D] {
	return &node[D]{
		kind:     internalKind,
		data:     data,
		children: make(map[D]*node[D]),
	}
}

// newSplitReplacement builds a fresh non-root sibling with the same
// child kind (leaf children stay leaf, node children stay internal) —
// the node model's new_split_replacement operation from spec.md §4.3.
func newSplitReplacement[D comparable](k kind, data D) *node[D] {
	if k.isLeaf() {
		return newLeafNode[D](data)
	}
	return newInternalNode[D](data)
}

// minCapacity returns the lower bound on this node's child/entry count,
// per the variant table in spec.md §3.
func (n *node[D]) minCapacity(t *Tree[D]) int {
	switch n.kind {
	case rootLeafKind:
		return 1
	case rootInternalKind:
		return 2
	default:
		return t.minCapacity
	}
}

func (n *node[D]) count() int {
	if n.kind.isLeaf() {
		return len(n.entryOrder)
	}
	return len(n.childOrder)
}

// orderedKeys returns the routing-object/data keys of this node's
// children (entries for a leaf, child nodes for an internal node) in
// insertion order.
func (n *node[D]) orderedKeys() []D {
	if n.kind.isLeaf() {
		return n.entryOrder
	}
	return n.childOrder
}

// attachEntryRaw attaches a new entry without checking capacity; the
// caller is responsible for calling checkOverflow afterward.
func (n *node[D]) attachEntryRaw(data D, distanceToParent float64) {
	n.entries[data] = &entry[D]{data: data, distanceToParent: distanceToParent}
	n.entryOrder = append(n.entryOrder, data)
	if distanceToParent > n.radius {
		n.radius = distanceToParent
	}
}

func (n *node[D]) removeEntryRaw(data D) {
	delete(n.entries, data)
	n.entryOrder = removeKey(n.entryOrder, data)
}

// attachChildRaw attaches an already-built subtree without checking
// capacity; the caller is responsible for calling checkOverflow
// afterward. child.distanceToParent must already be set.
func (n *node[D]) attachChildRaw(child *node[D]) {
	n.children[child.data] = child
	n.childOrder = append(n.childOrder, child.data)
	if r := child.distanceToParent + child.radius; r > n.radius {
		n.radius = r
	}
}

func (n *node[D]) removeChildRaw(data D) {
	delete(n.children, data)
	n.childOrder = removeKey(n.childOrder, data)
}

func removeKey[D comparable](order []D, key D) []D {
	for i, k := range order {
		if k == key {
			return append(order[:i], order[i+1:]...)
		}
	}
	return order
}

// splitOutcome is the "split replacement" control signal from
// spec.md §4.4: the node that produced it must be discarded by its
// caller and replaced with these two new siblings.
type splitOutcome[D comparable] struct {
	nodes [2]*node[D]
}

// checkOverflow performs the split described in spec.md §4.4 if this
// node's child/entry count exceeds the tree's max capacity, otherwise
// it is a no-op.
func (n *node[D]) checkOverflow(t *Tree[D]) *splitOutcome[D] {
	if n.count() <= t.maxCapacity {
		return nil
	}
	return n.split(t)
}

// split builds two fresh non-root siblings from n's contents using the
// tree's split function and a cached distance scoped to this split
// (spec.md §4.1, §4.4).
func (n *node[D]) split(t *Tree[D]) *splitOutcome[D] {
	keys := append([]D(nil), n.orderedKeys()...)
	cd := newCachedDistance(t.distanceFn)

	p1, p2, _, part2 := t.splitFn(cd, keys)

	n1 := newSplitReplacement(n.kind, p1)
	n2 := newSplitReplacement(n.kind, p2)

	for _, k := range keys {
		target := n1
		if part2[k] {
			target = n2
		}
		if n.kind.isLeaf() {
			e := n.entries[k]
			target.attachEntryRaw(e.data, cd.dist(target.data, e.data))
		} else {
			c := n.children[k]
			c.distanceToParent = cd.dist(target.data, c.data)
			target.attachChildRaw(c)
		}
	}

	return &splitOutcome[D]{nodes: [2]*node[D]{n1, n2}}
}

// addChildren attaches one or more already-built subtrees to n,
// applying the merge-on-duplicate rule from spec.md §4.4: a new child
// whose routing object already keys an existing child has its
// grandchildren transferred into that existing sibling instead of
// being attached itself, cascading if the sibling then overflows.
// It returns n's own split replacement if n itself overflows once all
// of newChildren (and any cascaded siblings) have settled.
func (n *node[D]) addChildren(t *Tree[D], newChildren ...*node[D]) *splitOutcome[D] {
	pending := append([]*node[D](nil), newChildren...)
	for len(pending) > 0 {
		c := pending[len(pending)-1]
		pending = pending[:len(pending)-1]
		c.distanceToParent = t.distanceFn(c.data, n.data)

		existing, dup := n.children[c.data]
		if !dup {
			n.attachChildRaw(c)
			continue
		}

		for _, k := range c.orderedKeys() {
			if c.kind.isLeaf() {
				e := c.entries[k]
				existing.attachEntryRaw(e.data, t.distanceFn(e.data, existing.data))
			} else {
				gc := c.children[k]
				gc.distanceToParent = t.distanceFn(gc.data, existing.data)
				existing.attachChildRaw(gc)
			}
		}
		if out := existing.checkOverflow(t); out != nil {
			n.removeChildRaw(existing.data)
			pending = append(pending, out.nodes[0], out.nodes[1])
		} else if r := existing.distanceToParent + existing.radius; r > n.radius {
			n.radius = r
		}
	}
	return n.checkOverflow(t)
}
