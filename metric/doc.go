// Package metric provides ready-made distance functions over []float64
// vectors, grounded on the same shape of metric functions used by
// hdbscan's DistanceMetric family, for callers of mtree who don't want
// to write their own. It mirrors the euclidean_distance default from
// the M-Tree's original functions.h. mtree itself never imports this
// package: the core index is distance-function-agnostic (spec.md §4.1).
package metric
