package volume

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestDim(t *testing.T) {
	v := New(3, 4, 5)
	for d, want := range []int{3, 4, 5} {
		got, err := v.Dim(d)
		if err != nil {
			t.Fatalf("Dim(%d): %v", d, err)
		}
		if got != want {
			t.Errorf("Dim(%d) = %d, want %d", d, got, want)
		}
	}
	if _, err := v.Dim(3); err == nil {
		t.Error("Dim(3) should fail")
	}
}

func TestAtSet_OutOfRange(t *testing.T) {
	v := New(2, 2, 2)
	if v.At(-1, 0, 0) || v.At(0, 0, 2) {
		t.Error("out-of-range At should be false")
	}
	v.Set(5, 0, 0, true)
	if v.At(5, 0, 0) {
		t.Error("out-of-range Set must be ignored")
	}
}

func TestSlice_AllAxes(t *testing.T) {
	v := New(2, 3, 4)
	v.Set(1, 2, 3, true)

	mz, err := v.Slice(2, 3)
	if err != nil {
		t.Fatalf("Slice(2,3): %v", err)
	}
	if mz.W != 2 || mz.H != 3 || !mz.At(1, 2) {
		t.Errorf("z-slice wrong: %dx%d, cell = %v", mz.W, mz.H, mz.At(1, 2))
	}

	my, err := v.Slice(1, 2)
	if err != nil {
		t.Fatalf("Slice(1,2): %v", err)
	}
	if my.W != 2 || my.H != 4 || !my.At(1, 3) {
		t.Errorf("y-slice wrong: %dx%d, cell = %v", my.W, my.H, my.At(1, 3))
	}

	mx, err := v.Slice(0, 1)
	if err != nil {
		t.Fatalf("Slice(0,1): %v", err)
	}
	if mx.W != 3 || mx.H != 4 || !mx.At(2, 3) {
		t.Errorf("x-slice wrong: %dx%d, cell = %v", mx.W, mx.H, mx.At(2, 3))
	}
}

func TestSlice_OutOfRange(t *testing.T) {
	v := New(2, 2, 2)
	if _, err := v.Slice(2, 2); err == nil {
		t.Error("out-of-range slice index should fail")
	}
	if _, err := v.Slice(5, 0); err == nil {
		t.Error("invalid dimension should fail")
	}
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	// Two 3x2 slices; the second has one foreground pixel at (2,1).
	writeSlicePNG(t, filepath.Join(dir, "slice_000.png"), 3, 2, nil)
	writeSlicePNG(t, filepath.Join(dir, "slice_001.png"), 3, 2, []image.Point{{2, 1}})

	v, err := LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir: %v", err)
	}
	if v.NX != 3 || v.NY != 2 || v.NZ != 2 {
		t.Fatalf("volume dims = %dx%dx%d, want 3x2x2", v.NX, v.NY, v.NZ)
	}
	if v.At(2, 1, 0) {
		t.Error("first slice should be empty")
	}
	if !v.At(2, 1, 1) {
		t.Error("foreground pixel missing from second slice")
	}
}

func TestLoadDir_MismatchedSizes(t *testing.T) {
	dir := t.TempDir()
	writeSlicePNG(t, filepath.Join(dir, "a.png"), 3, 2, nil)
	writeSlicePNG(t, filepath.Join(dir, "b.png"), 4, 2, nil)
	if _, err := LoadDir(dir); err == nil {
		t.Error("mismatched slice sizes should fail")
	}
}

func TestLoadDir_NoImages(t *testing.T) {
	if _, err := LoadDir(t.TempDir()); err == nil {
		t.Error("empty directory should fail")
	}
}

func writeSlicePNG(t *testing.T, path string, w, h int, fg []image.Point) {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, w, h))
	for _, p := range fg {
		img.SetGray(p.X, p.Y, color.Gray{Y: 255})
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode %s: %v", path, err)
	}
}
