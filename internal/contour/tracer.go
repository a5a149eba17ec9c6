package contour

import (
	"errors"
	"image"
	"math"
)

// ErrEmptyBoundary is returned when there are no boundary pixels to trace.
// Callers treat it as "skip this slice", not as a fatal condition.
var ErrEmptyBoundary = errors.New("contour: empty boundary")

// Tracing defaults. GapLimit is the diagonal across two pixel widths, the
// largest hop that can still connect pixels of a single-pixel-wide rim.
const (
	DefaultGapLimit = 2 * math.Sqrt2
	DefaultDivider  = 2
)

// Params control tour construction. The zero value selects the defaults.
type Params struct {
	// GapLimit is the maximum Euclidean distance between consecutive
	// original points; hops beyond it end the tour rather than bridge
	// disconnected fragments.
	GapLimit float64
	// Divider is the number of evenly spaced interpolated points emitted
	// per hop, destination-inclusive, origin-exclusive.
	Divider int
}

// DefaultParams returns the standard gap limit and interpolation density.
func DefaultParams() Params {
	return Params{GapLimit: DefaultGapLimit, Divider: DefaultDivider}
}

func (p Params) normalised() Params {
	if p.GapLimit <= 0 {
		p.GapLimit = DefaultGapLimit
	}
	if p.Divider < 1 {
		p.Divider = DefaultDivider
	}
	return p
}

// Trace orders boundary pixels into a closed, interpolated polyline using
// a greedy nearest-neighbour tour. Starting from boundary[0], the tour
// repeatedly extends to the closest unvisited pixel (ties broken by lowest
// index) until none remains within GapLimit, then force-closes back to
// boundary[0] with no distance check. Each hop contributes Divider
// interpolated points, the last being exactly the destination.
//
// Pixels in fragments unreachable from boundary[0] within GapLimit are
// silently dropped; the upstream morphology keeps a single connected
// component, so a ring around that component is normally traced whole.
// Output is deterministic for a given input order.
func Trace(boundary []image.Point, p Params) ([]Point, error) {
	if len(boundary) == 0 {
		return nil, ErrEmptyBoundary
	}
	p = p.normalised()

	pts := make([]Point, len(boundary))
	for i, b := range boundary {
		pts[i] = Point{X: float64(b.X), Y: float64(b.Y)}
	}

	visited := make([]bool, len(pts))
	visited[0] = true
	cur := 0
	path := make([]Point, 0, (len(pts)+1)*p.Divider)

	for {
		next := nearestUnvisited(pts, visited, cur, p.GapLimit)
		if next < 0 {
			break
		}
		path = interpolate(path, pts[cur], pts[next], p.Divider)
		visited[next] = true
		cur = next
	}

	// Closing segment back to the start, never distance-checked.
	path = interpolate(path, pts[cur], pts[0], p.Divider)
	return path, nil
}

// nearestUnvisited returns the index of the unvisited point closest to
// pts[cur], or -1 if none exists within gapLimit. Distances compare on
// their squares; ties keep the lowest index because only a strictly
// smaller distance replaces the candidate.
func nearestUnvisited(pts []Point, visited []bool, cur int, gapLimit float64) int {
	best := -1
	bestSq := math.Inf(1)
	for i, p := range pts {
		if visited[i] {
			continue
		}
		if d := sqDist(pts[cur], p); d < bestSq {
			best = i
			bestSq = d
		}
	}
	if best < 0 || bestSq > gapLimit*gapLimit {
		return -1
	}
	return best
}

// interpolate appends n evenly spaced points along the segment from a to
// b, excluding a and including b. The final point is written as exactly b
// so original coordinates survive float accumulation untouched.
func interpolate(path []Point, a, b Point, n int) []Point {
	for i := 1; i < n; i++ {
		t := float64(i) / float64(n)
		path = append(path, Point{
			X: a.X + (b.X-a.X)*t,
			Y: a.Y + (b.Y-a.Y)*t,
		})
	}
	return append(path, b)
}
