// Package report renders traced contours as HTML charts and PNG plots and
// serves batch results for inspection.
package report

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/banshee-data/contour.report/internal/contour"
)

// RenderSliceChart writes an HTML scatter chart of a contour polyline.
// Axis ranges are symmetric around the contour with a small padding so the
// silhouette keeps its aspect ratio.
func RenderSliceChart(w io.Writer, title string, path []contour.Point) error {
	if len(path) == 0 {
		return fmt.Errorf("report: empty contour")
	}

	minX, maxX := path[0].X, path[0].X
	minY, maxY := path[0].Y, path[0].Y
	data := make([]opts.ScatterData, 0, len(path))
	for i, p := range path {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
		data = append(data, opts.ScatterData{Value: []interface{}{p.X, p.Y, i}})
	}

	pad := (maxX - minX + maxY - minY) * 0.05
	if pad == 0 {
		pad = 1.0
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: title, Width: "900px", Height: "900px"}),
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: fmt.Sprintf("points=%d", len(data))}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Min: minX - pad, Max: maxX + pad, Name: "X (px)"}),
		charts.WithYAxisOpts(opts.YAxis{Min: minY - pad, Max: maxY + pad, Name: "Y (px)"}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Show:       opts.Bool(true),
			Calculable: opts.Bool(true),
			Min:        0,
			Max:        float32(len(data) - 1),
			Dimension:  "2",
			InRange:    &opts.VisualMapInRange{Color: []string{"#440154", "#31688e", "#35b779", "#fde725"}},
		}),
	)

	scatter.AddSeries("contour", data, charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 4}))

	return scatter.Render(w)
}
