// Package mtree implements an in-memory M-Tree: a dynamic, balanced,
// metric-space index that supports insertion, deletion, and k-nearest
// neighbor (kNN) queries for objects drawn from an arbitrary metric space.
//
// An M-Tree partitions indexed objects into hierarchically nested balls,
// each identified by a routing object and a covering radius, so that range
// and nearest-neighbor queries can prune large subtrees using only the
// triangle inequality. The index never assumes coordinates, dimensionality,
// or differentiability — only a distance function satisfying symmetry,
// non-negativity, identity of indiscernibles, and the triangle inequality.
//
// Basic usage:
//
//	tree, err := mtree.New[[2]float64](2,
//		mtree.WithMaxCapacity[[2]float64](3),
//		mtree.WithDistanceFunc(func(a, b [2]float64) float64 {
//			return metric.Euclidean(a[:], b[:])
//		}),
//	)
//	tree.Add([2]float64{0, 0})
//	tree.Add([2]float64{1, 0})
//	q := tree.GetNearest([2]float64{0, 0}, math.Inf(1), 2)
//	for r, ok := q.Next(); ok; r, ok = q.Next() {
//		fmt.Println(r.Data, r.Distance)
//	}
//
// Persistence, serialization, concurrency control, and approximate search
// are explicitly out of scope: this is a single-threaded, in-process data
// structure.
package mtree
