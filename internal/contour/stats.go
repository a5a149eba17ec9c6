package contour

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// PathStats summarises a traced polyline for run records and reports.
type PathStats struct {
	Vertices  int
	Perimeter float64
	Centroid  Point
}

// Stats computes vertex count, closed-polyline perimeter, and the vertex
// centroid of a path. An empty path yields the zero value.
func Stats(path []Point) PathStats {
	if len(path) == 0 {
		return PathStats{}
	}
	xs := make([]float64, len(path))
	ys := make([]float64, len(path))
	segs := make([]float64, len(path))
	for i, p := range path {
		xs[i] = p.X
		ys[i] = p.Y
		segs[i] = p.DistanceTo(path[(i+1)%len(path)])
	}
	return PathStats{
		Vertices:  len(path),
		Perimeter: floats.Sum(segs),
		Centroid:  Point{X: stat.Mean(xs, nil), Y: stat.Mean(ys, nil)},
	}
}
