package render

import (
	"io"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/KaramelBytes/happydash/internal/chartspec"
)

func scatterPNG(w io.Writer, c *chartspec.Chart, opts Options) error {
	var xs, ys, sizes []float64
	var colors []drawing.Color
	for _, p := range c.Points {
		if !p.X.Valid() || !p.Y.Valid() {
			continue
		}
		xs = append(xs, float64(p.X))
		ys = append(ys, float64(p.Y))
		colors = append(colors, parseColor(p.Color))
		size := float64(p.Size)
		if !p.Size.Valid() || size < 2 {
			size = 2
		}
		sizes = append(sizes, size)
	}
	if len(xs) == 0 {
		return ErrEmptyChart
	}

	ch := chart.Chart{
		Title:      c.Title,
		Width:      opts.Width,
		Height:     opts.Height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis:      chart.XAxis{Name: c.XAxis.Title, Range: padded(xs, false)},
		YAxis:      chart.YAxis{Name: c.YAxis.Title, Range: padded(ys, false)},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    c.YAxis.Title,
				XValues: xs,
				YValues: ys,
				Style: chart.Style{
					StrokeWidth: chart.Disabled,
					DotWidth:    4,
					DotColorProvider: func(_, _ chart.Range, i int, _, _ float64) drawing.Color {
						return colors[i]
					},
					// marker sizes are diameters; go-chart draws radii
					DotWidthProvider: func(_, _ chart.Range, i int, _, _ float64) float64 {
						return sizes[i] / 2
					},
				},
			},
		},
	}
	return ch.Render(chart.PNG, w)
}
