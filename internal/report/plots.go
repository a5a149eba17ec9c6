package report

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/banshee-data/contour.report/internal/contour"
)

// SaveSlicePlot writes a PNG rendering of a contour polyline, closing the
// path back to its first point. Y grows downward in image coordinates, so
// the axis is inverted to match the source mask orientation.
func SaveSlicePlot(file, title string, path []contour.Point) error {
	if len(path) == 0 {
		return fmt.Errorf("report: empty contour")
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "X (px)"
	p.Y.Label.Text = "Y (px)"

	xys := make(plotter.XYs, 0, len(path)+1)
	for _, pt := range path {
		xys = append(xys, plotter.XY{X: pt.X, Y: -pt.Y})
	}
	xys = append(xys, plotter.XY{X: path[0].X, Y: -path[0].Y})

	line, err := plotter.NewLine(xys)
	if err != nil {
		return fmt.Errorf("build polyline: %w", err)
	}
	line.Width = vg.Points(1)
	p.Add(line)

	if err := p.Save(8*vg.Inch, 8*vg.Inch, file); err != nil {
		return fmt.Errorf("save plot: %w", err)
	}
	return nil
}
