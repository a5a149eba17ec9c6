// Package contour turns a cleaned binary mask into an ordered, closed,
// sub-pixel-interpolated boundary polyline. Boundary pixels are found by
// an erosion/XOR pass; ordering uses a bounded greedy nearest-neighbour
// tour with a configurable gap limit.
package contour

import "math"

// Point is a real-valued 2D coordinate. Lattice points promoted from the
// mask carry integer values; interpolated points lie between them.
type Point struct {
	X, Y float64
}

// DistanceTo returns the Euclidean distance to q.
func (p Point) DistanceTo(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

func sqDist(p, q Point) float64 {
	dx := p.X - q.X
	dy := p.Y - q.Y
	return dx*dx + dy*dy
}
