package metric_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/go-mtree/mtree/metric"
)

func TestEuclidean(t *testing.T) {
	assert.InDelta(t, 5.0, metric.Euclidean([]float64{0, 0}, []float64{3, 4}), 1e-9)
	assert.Equal(t, 0.0, metric.Euclidean([]float64{1, 2, 3}, []float64{1, 2, 3}))
}

func TestSquaredEuclidean(t *testing.T) {
	assert.InDelta(t, 25.0, metric.SquaredEuclidean([]float64{0, 0}, []float64{3, 4}), 1e-9)
}

func TestManhattan(t *testing.T) {
	assert.InDelta(t, 7.0, metric.Manhattan([]float64{0, 0}, []float64{3, 4}), 1e-9)
}

func TestChebyshev(t *testing.T) {
	assert.InDelta(t, 4.0, metric.Chebyshev([]float64{0, 0}, []float64{3, 4}), 1e-9)
}

func TestCosine(t *testing.T) {
	assert.InDelta(t, 0.0, metric.Cosine([]float64{1, 0}, []float64{2, 0}), 1e-9)
	assert.InDelta(t, 1.0, metric.Cosine([]float64{1, 0}, []float64{0, 1}), 1e-9)
	assert.True(t, math.IsNaN(metric.Cosine([]float64{0, 0}, []float64{0, 0})))
}

func TestFuncAdapter(t *testing.T) {
	var f metric.Func = metric.Manhattan
	assert.InDelta(t, 7.0, f([]float64{0, 0}, []float64{3, 4}), 1e-9)
}
