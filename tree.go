package mtree

import (
	"math"
	"math/rand"
)

// DefaultMinCapacity is the min_capacity many callers reach for absent a
// more specific tuning (spec.md §6); New still requires min_capacity to be
// passed explicitly since it governs the overflow/underflow thresholds for
// every node in the tree.
const DefaultMinCapacity = 50

// Tree is an in-memory M-Tree index over objects of type D (spec.md §3).
// D must be comparable so it can key the per-node children maps; the
// original C++ source instead required a strict weak order because it
// backs each node with std::map — see SPEC_FULL.md §3 for why comparable
// is sufficient here.
type Tree[D comparable] struct {
	root *node[D]

	minCapacity int
	maxCapacity int

	distanceFn DistanceFunc[D]
	splitFn    SplitFunc[D]
	rng        *rand.Rand

	count int
}

// Option configures a Tree at construction time.
type Option[D comparable] func(*treeConfig[D])

type treeConfig[D comparable] struct {
	maxCapacity   int
	hasMax        bool
	distanceFn    DistanceFunc[D]
	splitFn       SplitFunc[D]
	hasSplitFn    bool
	randSource    rand.Source
	hasRandSource bool
}

// WithMaxCapacity overrides the default max_capacity of 2*min_capacity - 1
// (spec.md §3, invariant 6).
func WithMaxCapacity[D comparable](max int) Option[D] {
	return func(c *treeConfig[D]) {
		c.maxCapacity = max
		c.hasMax = true
	}
}

// WithDistanceFunc supplies the distance function (spec.md §4.1). There is
// no default: without this option the tree's distance function is nil, and
// the first operation that needs a distance panics.
func WithDistanceFunc[D comparable](fn DistanceFunc[D]) Option[D] {
	return func(c *treeConfig[D]) { c.distanceFn = fn }
}

// WithSplitFunc overrides the default (random promotion, balanced
// partition) split policy (spec.md §4.2).
func WithSplitFunc[D comparable](fn SplitFunc[D]) Option[D] {
	return func(c *treeConfig[D]) {
		c.splitFn = fn
		c.hasSplitFn = true
	}
}

// WithRandSource pins the random source used by the default promotion
// policy. Tests rely on this to make split outcomes reproducible
// (spec.md §4.2: "tests pin the source to make outcomes reproducible").
// It has no effect if WithSplitFunc is also supplied.
func WithRandSource[D comparable](src rand.Source) Option[D] {
	return func(c *treeConfig[D]) {
		c.randSource = src
		c.hasRandSource = true
	}
}

// New constructs an empty Tree. minCapacity must be >= 2
// (ErrInvalidCapacity); maxCapacity, if supplied via WithMaxCapacity, must
// be >= minCapacity (ErrInvalidMaxCapacity). Both are PreconditionViolation
// errors per spec.md §7: detectable from the constructor's own arguments,
// so they're returned rather than deferred to a later panic.
func New[D comparable](minCapacity int, opts ...Option[D]) (*Tree[D], error) {
	if minCapacity < 2 {
		return nil, ErrInvalidCapacity
	}

	cfg := treeConfig[D]{}
	for _, opt := range opts {
		opt(&cfg)
	}

	maxCapacity := 2*minCapacity - 1
	if cfg.hasMax {
		maxCapacity = cfg.maxCapacity
	}
	if maxCapacity < minCapacity {
		return nil, ErrInvalidMaxCapacity
	}

	t := &Tree[D]{
		minCapacity: minCapacity,
		maxCapacity: maxCapacity,
		distanceFn:  cfg.distanceFn,
	}

	src := cfg.randSource
	if !cfg.hasRandSource {
		src = rand.NewSource(1)
	}
	t.rng = rand.New(src)

	if cfg.hasSplitFn {
		t.splitFn = cfg.splitFn
	} else {
		t.splitFn = defaultSplitFunc[D](t.rng)
	}

	return t, nil
}

// Len returns the number of indexed objects currently in the tree.
func (t *Tree[D]) Len() int { return t.count }

// Add inserts data into the tree (spec.md §4.4). The caller must not
// insert an object already indexed by this tree; behavior in that case is
// unspecified (spec.md §6).
func (t *Tree[D]) Add(data D) error {
	if t.root == nil {
		t.root = newRootLeaf[D](data)
		t.root.attachEntryRaw(data, 0)
		t.count = 1
		return nil
	}

	d0 := t.distanceFn(data, t.root.data)
	if out := t.root.addData(t, data, d0); out != nil {
		oldRootData := t.root.data
		newRoot := newRootInternal[D](oldRootData)
		newRoot.addChildren(t, out.nodes[0], out.nodes[1])
		t.root = newRoot
	}
	t.count++
	return nil
}

// Remove deletes data from the tree, reporting whether it was present
// (spec.md §4.5, §6, §7).
func (t *Tree[D]) Remove(data D) bool {
	if t.root == nil {
		return false
	}

	d0 := t.distanceFn(data, t.root.data)
	switch status := t.root.removeData(t, data, d0); status {
	case removeNotFound:
		return false
	case removeUnderCapacity:
		t.collapseRoot()
		fallthrough
	case removeOK:
		t.count--
		return true
	default:
		return false
	}
}

// collapseRoot implements the root-collapse rule from spec.md §4.5: a
// RootLeaf with zero entries becomes an empty tree; a RootInternal with
// one remaining child gets replaced by a new root built from that
// child's own contents, with distances recomputed to the new root.
func (t *Tree[D]) collapseRoot() {
	root := t.root
	if root.kind == rootLeafKind {
		t.root = nil
		return
	}

	child := root.children[root.childOrder[0]]
	newRoot := newRootInternalOrLeaf[D](child.kind, child.data)
	for _, k := range child.orderedKeys() {
		if child.kind.isLeaf() {
			e := child.entries[k]
			newRoot.attachEntryRaw(e.data, t.distanceFn(e.data, newRoot.data))
		} else {
			gc := child.children[k]
			gc.distanceToParent = t.distanceFn(gc.data, newRoot.data)
			newRoot.attachChildRaw(gc)
		}
	}
	t.root = newRoot
}

func newRootInternalOrLeaf[D comparable](childKind kind, data D) *node[D] {
	if childKind.isLeaf() {
		return newRootLeaf[D](data)
	}
	return newRootInternal[D](data)
}

// Range is a distance bound for a query; use math.Inf(1) for "no bound"
// (spec.md §6).
type Range = float64

// Result is one item yielded by a Query: an indexed object together with
// its distance to the query object.
type Result[D comparable] struct {
	Data     D
	Distance float64
}

// GetNearest returns a combined range/kNN query: at most limit results,
// each within distance range of data, in non-decreasing distance order
// (spec.md §4.6, §6).
func (t *Tree[D]) GetNearest(data D, r Range, limit int) *Query[D] {
	return newQuery(t, data, r, limit)
}

// GetNearestByRange returns a pure range query: every indexed object
// within radius of data.
func (t *Tree[D]) GetNearestByRange(data D, radius float64) *Query[D] {
	return newQuery(t, data, radius, math.MaxInt)
}

// GetKNearest returns a pure kNN query: the k objects nearest to data.
func (t *Tree[D]) GetKNearest(data D, k int) *Query[D] {
	return newQuery(t, data, math.Inf(1), k)
}
