package mtree

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intDist(a, b int) float64 {
	if a > b {
		return float64(a - b)
	}
	return float64(b - a)
}

func checkPartition(t *testing.T, keys []int, p1, p2 int, part1, part2 map[int]bool) {
	t.Helper()
	require.NotEqual(t, p1, p2)
	assert.True(t, part1[p1])
	assert.True(t, part2[p2])

	seen := map[int]bool{}
	for _, k := range keys {
		in1, in2 := part1[k], part2[k]
		assert.True(t, in1 || in2, "key %d assigned to neither partition", k)
		assert.False(t, in1 && in2, "key %d assigned to both partitions", k)
		seen[k] = true
	}
	assert.Len(t, part1, len(keys)-len(part2))
	for k := range part1 {
		assert.True(t, seen[k])
	}
	for k := range part2 {
		assert.True(t, seen[k])
	}
}

func TestDefaultSplitFuncPartitionsCompletely(t *testing.T) {
	keys := []int{1, 2, 3, 4, 5, 6, 7}
	rng := rand.New(rand.NewSource(1))
	split := defaultSplitFunc[int](rng)
	cd := newCachedDistance[int](intDist)

	p1, p2, part1, part2 := split(cd, keys)
	checkPartition(t, keys, p1, p2, part1, part2)
}

func TestMaxSpreadSplitFuncPromotesFarthestPair(t *testing.T) {
	keys := []int{10, 11, 12, 0, 13}
	cd := newCachedDistance[int](intDist)

	split := MaxSpreadSplitFunc[int]()
	p1, p2, part1, part2 := split(cd, keys)

	assert.True(t, (p1 == 0 && p2 == 13) || (p1 == 13 && p2 == 0))
	checkPartition(t, keys, p1, p2, part1, part2)
}

func TestBalancedPartitionAssignsPromotedObjectsToOwnSide(t *testing.T) {
	keys := []int{0, 1, 2, 3, 4, 100}
	cd := newCachedDistance[int](intDist)

	part1, part2 := balancedPartition(cd, keys, 0, 100)
	assert.True(t, part1[0])
	assert.True(t, part2[100])
	assert.Len(t, part1, 3)
	assert.Len(t, part2, 3)
}
