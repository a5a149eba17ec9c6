package contour

import (
	"math"
	"testing"
)

func TestStats_Empty(t *testing.T) {
	s := Stats(nil)
	if s.Vertices != 0 || s.Perimeter != 0 {
		t.Errorf("zero value expected for empty path, got %+v", s)
	}
}

func TestStats_UnitSquare(t *testing.T) {
	path := []Point{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
	s := Stats(path)
	if s.Vertices != 4 {
		t.Errorf("vertices = %d, want 4", s.Vertices)
	}
	if math.Abs(s.Perimeter-4) > 1e-12 {
		t.Errorf("perimeter = %v, want 4", s.Perimeter)
	}
	if math.Abs(s.Centroid.X-0.5) > 1e-12 || math.Abs(s.Centroid.Y-0.5) > 1e-12 {
		t.Errorf("centroid = %+v, want (0.5, 0.5)", s.Centroid)
	}
}

func TestCompare_Identical(t *testing.T) {
	path := []Point{{0, 0}, {1, 0}, {1, 1}}
	c := Compare(path, path)
	if c.MeanDistance != 0 || c.HausdorffDistance != 0 {
		t.Errorf("identical polylines should compare at zero, got %+v", c)
	}
}

func TestCompare_Shifted(t *testing.T) {
	a := []Point{{0, 0}, {1, 0}}
	b := []Point{{0, 3}, {1, 3}}
	c := Compare(a, b)
	if math.Abs(c.MeanDistance-3) > 1e-12 {
		t.Errorf("mean distance = %v, want 3", c.MeanDistance)
	}
	if math.Abs(c.HausdorffDistance-3) > 1e-12 {
		t.Errorf("hausdorff distance = %v, want 3", c.HausdorffDistance)
	}
}

func TestCompare_Asymmetric(t *testing.T) {
	// One far outlier in b dominates the Hausdorff metric in both orders.
	a := []Point{{0, 0}}
	b := []Point{{0, 0}, {10, 0}}
	ab := Compare(a, b)
	ba := Compare(b, a)
	if ab.HausdorffDistance != 10 || ba.HausdorffDistance != 10 {
		t.Errorf("hausdorff should be symmetric: %v vs %v", ab.HausdorffDistance, ba.HausdorffDistance)
	}
}

func TestCompare_EmptyInput(t *testing.T) {
	if c := Compare(nil, []Point{{0, 0}}); c != (Comparison{}) {
		t.Errorf("empty input should yield zero comparison, got %+v", c)
	}
}
