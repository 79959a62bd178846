package dataprocessing

import (
	"math"
	"sort"
)

// quantile returns the p-th quantile (0..1) of xs using linear
// interpolation between closest ranks (h = (n-1)*p), the convention
// spreadsheet tools and dataframe libraries default to. xs need not be
// sorted; a copy is sorted internally. Returns 0 for an empty slice.
func quantile(xs []float64, p float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sorted := append([]float64(nil), xs...)
	sort.Float64s(sorted)

	h := float64(len(sorted)-1) * p
	lo := int(math.Floor(h))
	hi := int(math.Ceil(h))
	if lo == hi {
		return sorted[lo]
	}
	return sorted[lo] + (h-float64(lo))*(sorted[hi]-sorted[lo])
}

// median returns the 0.5 quantile of xs
func median(xs []float64) float64 {
	return quantile(xs, 0.5)
}

// iqrBounds computes the [Q1 - 1.5*IQR, Q3 + 1.5*IQR] outlier fence over xs
func iqrBounds(xs []float64) (lo, hi float64) {
	q1 := quantile(xs, 0.25)
	q3 := quantile(xs, 0.75)
	iqr := q3 - q1
	return q1 - 1.5*iqr, q3 + 1.5*iqr
}
