package mtree

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCachedDistanceMemoizesAndIsSymmetric(t *testing.T) {
	calls := map[pairKey[int]]int{}
	fn := func(a, b int) float64 {
		calls[pairKey[int]{a, b}]++
		return float64(abs(a - b))
	}
	cd := newCachedDistance[int](fn)

	assert.Equal(t, 3.0, cd.dist(5, 2))
	assert.Equal(t, 3.0, cd.dist(2, 5))
	assert.Equal(t, 3.0, cd.dist(5, 2))

	total := 0
	for _, n := range calls {
		total += n
	}
	assert.Equal(t, 1, total, "distance function should be invoked exactly once for an unordered pair")
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
