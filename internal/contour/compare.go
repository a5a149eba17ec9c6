package contour

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Comparison holds symmetric distance metrics between two polylines, used
// when checking generated contours against reference annotations.
type Comparison struct {
	// MeanDistance is the average over both directions of each vertex's
	// distance to the nearest vertex of the other polyline.
	MeanDistance float64
	// HausdorffDistance is the largest such nearest-vertex distance in
	// either direction.
	HausdorffDistance float64
}

// Compare computes symmetric vertex-to-vertex distance metrics between two
// non-empty polylines. Returns the zero value if either input is empty.
func Compare(a, b []Point) Comparison {
	if len(a) == 0 || len(b) == 0 {
		return Comparison{}
	}
	da := nearestDistances(a, b)
	db := nearestDistances(b, a)
	all := append(da, db...)
	return Comparison{
		MeanDistance:      floats.Sum(all) / float64(len(all)),
		HausdorffDistance: math.Max(floats.Max(da), floats.Max(db)),
	}
}

// nearestDistances returns, for each point of src, the distance to the
// closest point of dst.
func nearestDistances(src, dst []Point) []float64 {
	out := make([]float64, len(src))
	for i, p := range src {
		best := math.Inf(1)
		for _, q := range dst {
			if d := sqDist(p, q); d < best {
				best = d
			}
		}
		out[i] = math.Sqrt(best)
	}
	return out
}
