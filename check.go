package mtree

import (
	"fmt"
	"math"
)

const checkEpsilon = 1e-9

// Check performs the debug-only self-verification named in spec.md §6:
// it walks the whole tree and reports the first violated invariant from
// §3, or nil if the tree is well-formed. It is not called anywhere in
// the mutation path — call it from tests or from a caller's own
// diagnostics after a suspicious sequence of operations.
func (t *Tree[D]) Check() error {
	if t.root == nil {
		return nil
	}
	_, err := t.checkNode(t.root, -1)
	return err
}

// checkNode returns this subtree's leaf depth (for the equal-depth
// invariant) and the first error found beneath n.
func (t *Tree[D]) checkNode(n *node[D], depth int) (leafDepth int, err error) {
	if err := t.checkCapacity(n); err != nil {
		return -1, err
	}

	if n.kind.isLeaf() {
		for _, k := range n.entryOrder {
			e := n.entries[k]
			if math.Abs(t.distanceFn(e.data, n.data)-e.distanceToParent) >= checkEpsilon {
				return -1, fmt.Errorf("mtree: entry %v distance_to_parent %v disagrees with distance %v", e.data, e.distanceToParent, t.distanceFn(e.data, n.data))
			}
			if e.distanceToParent > n.radius+checkEpsilon {
				return -1, fmt.Errorf("mtree: entry %v distance_to_parent %v exceeds node radius %v", e.data, e.distanceToParent, n.radius)
			}
		}
		return depth + 1, nil
	}

	leafDepth = -1
	for _, k := range n.childOrder {
		c := n.children[k]
		if math.Abs(t.distanceFn(c.data, n.data)-c.distanceToParent) >= checkEpsilon {
			return -1, fmt.Errorf("mtree: child %v distance_to_parent %v disagrees with distance %v", c.data, c.distanceToParent, t.distanceFn(c.data, n.data))
		}
		if c.distanceToParent+c.radius > n.radius+checkEpsilon {
			return -1, fmt.Errorf("mtree: child %v (dtp=%v, radius=%v) exceeds parent radius %v", c.data, c.distanceToParent, c.radius, n.radius)
		}
		d, err := t.checkNode(c, depth+1)
		if err != nil {
			return -1, err
		}
		if leafDepth == -1 {
			leafDepth = d
		} else if leafDepth != d {
			return -1, fmt.Errorf("mtree: unequal leaf depth: %d vs %d beneath child %v", leafDepth, d, c.data)
		}
	}
	return leafDepth, nil
}

func (t *Tree[D]) checkCapacity(n *node[D]) error {
	count := n.count()
	min := n.minCapacity(t)
	if count < min {
		return fmt.Errorf("mtree: node %v has %d children, below minimum %d", n.data, count, min)
	}
	if count > t.maxCapacity {
		return fmt.Errorf("mtree: node %v has %d children, above maximum %d", n.data, count, t.maxCapacity)
	}
	return nil
}
