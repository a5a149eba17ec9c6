package contour

import (
	"image"

	"github.com/banshee-data/contour.report/internal/mask"
)

// ExtractBoundary returns the rim pixels of m in raster order (top to
// bottom, left to right). A rim pixel is a foreground cell removed by a
// 4-connected erosion in which the image border counts as foreground, so
// objects touching the border still produce rim pixels there. The result
// is empty when the mask has no foreground.
func ExtractBoundary(m *mask.Mask) []image.Point {
	eroded := mask.Erode(m, mask.Cross, true)
	var pts []image.Point
	for y := 0; y < m.H; y++ {
		for x := 0; x < m.W; x++ {
			// The eroded mask is a subset, so AND NOT equals XOR here.
			if m.At(x, y) && !eroded.At(x, y) {
				pts = append(pts, image.Point{X: x, Y: y})
			}
		}
	}
	return pts
}
