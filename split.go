package mtree

import (
	"math/rand"
	"sort"
)

// SplitFunc is the composition (promotion, partition) from spec.md §4.2:
// given the data objects of an overflowing node's children (or a leaf's
// entries) and a cached distance scoped to the split, it returns two
// distinct routing objects and a partition of keys between them. Any
// implementation must preserve p1 != p2, p1 in part1, p2 in part2,
// part1 union part2 == keys, and part1 intersect part2 == empty.
type SplitFunc[D comparable] func(cd *cachedDistance[D], keys []D) (p1, p2 D, part1, part2 map[D]bool)

// defaultSplitFunc composes randomPromotion with balancedPartition, the
// defaults named in spec.md §4.2. It closes over a *rand.Rand so that
// New can give every tree a reproducible, pinnable source (WithRandSource)
// without SplitFunc itself needing to thread randomness through its signature.
func defaultSplitFunc[D comparable](rng *rand.Rand) SplitFunc[D] {
	return func(cd *cachedDistance[D], keys []D) (D, D, map[D]bool, map[D]bool) {
		p1, p2 := randomPromotion(keys, rng)
		part1, part2 := balancedPartition(cd, keys, p1, p2)
		return p1, p2, part1, part2
	}
}

// randomPromotion chooses two distinct elements of keys uniformly at
// random, sampling without replacement (spec.md §4.2). keys is assumed
// to have at least two elements, which always holds at split time since
// a node only splits once it has more than max_capacity (>= 2) children.
func randomPromotion[D comparable](keys []D, rng *rand.Rand) (p1, p2 D) {
	i := rng.Intn(len(keys))
	j := rng.Intn(len(keys) - 1)
	if j >= i {
		j++
	}
	return keys[i], keys[j]
}

// balancedPartition implements the alternating-queue partition from
// spec.md §4.2: sort keys by distance to p1 into Q1 and by distance to
// p2 into Q2, then alternately pop the head of Q1 (unassigned) into
// part1 and the head of Q2 (unassigned) into part2 until both queues
// are exhausted. Since d(p1,p1) = 0 is the minimum of Q1 and d(p2,p2) =
// 0 is the minimum of Q2, and each promoted object sorts ahead of any
// other key at the same distance, p1 lands in part1 and p2 in part2 on
// the first pass.
func balancedPartition[D comparable](cd *cachedDistance[D], keys []D, p1, p2 D) (part1, part2 map[D]bool) {
	q1 := append([]D(nil), keys...)
	sort.Slice(q1, func(i, j int) bool {
		di, dj := cd.dist(q1[i], p1), cd.dist(q1[j], p1)
		return di < dj || (di == dj && q1[i] == p1 && q1[j] != p1)
	})
	q2 := append([]D(nil), keys...)
	sort.Slice(q2, func(i, j int) bool {
		di, dj := cd.dist(q2[i], p2), cd.dist(q2[j], p2)
		return di < dj || (di == dj && q2[i] == p2 && q2[j] != p2)
	})

	part1, part2 = make(map[D]bool), make(map[D]bool)
	assigned := make(map[D]bool, len(keys))
	i1, i2 := 0, 0
	for len(assigned) < len(keys) {
		for i1 < len(q1) && assigned[q1[i1]] {
			i1++
		}
		if i1 < len(q1) {
			part1[q1[i1]] = true
			assigned[q1[i1]] = true
			i1++
		}
		for i2 < len(q2) && assigned[q2[i2]] {
			i2++
		}
		if i2 < len(q2) {
			part2[q2[i2]] = true
			assigned[q2[i2]] = true
			i2++
		}
	}
	return part1, part2
}

// MaxSpreadSplitFunc is an alternative split policy (spec.md §4.2 allows
// plugging in alternatives such as minimum-maximum-radius promotion): it
// promotes the pair with the greatest pairwise distance among keys,
// a cheap approximation of the mM_RAD family of M-tree promotion
// heuristics, then applies the same balanced partition as the default.
func MaxSpreadSplitFunc[D comparable]() SplitFunc[D] {
	return func(cd *cachedDistance[D], keys []D) (D, D, map[D]bool, map[D]bool) {
		p1, p2 := maxSpreadPromotion(keys, cd)
		part1, part2 := balancedPartition(cd, keys, p1, p2)
		return p1, p2, part1, part2
	}
}

func maxSpreadPromotion[D comparable](keys []D, cd *cachedDistance[D]) (p1, p2 D) {
	best := -1.0
	p1, p2 = keys[0], keys[1]
	for i := 0; i < len(keys); i++ {
		for j := i + 1; j < len(keys); j++ {
			if d := cd.dist(keys[i], keys[j]); d > best {
				best = d
				p1, p2 = keys[i], keys[j]
			}
		}
	}
	return p1, p2
}
