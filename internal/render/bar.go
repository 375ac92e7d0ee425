package render

import (
	"io"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/KaramelBytes/happydash/internal/chartspec"
)

func barPNG(w io.Writer, c *chartspec.Chart, opts Options) error {
	vals := make([]float64, 0, len(c.Bars))
	bars := make([]chart.Value, 0, len(c.Bars))
	for _, b := range c.Bars {
		v := float64(b.Value)
		if !b.Value.Valid() {
			v = 0
		}
		vals = append(vals, v)
		col := parseColor(b.Color)
		bars = append(bars, chart.Value{
			Label: b.Label,
			Value: v,
			Style: chart.Style{FillColor: col, StrokeColor: col},
		})
	}

	barWidth, spacing := barLayout(opts.Width, len(bars))

	bc := chart.BarChart{
		Title:      c.Title,
		Width:      opts.Width,
		Height:     opts.Height,
		BarWidth:   barWidth,
		BarSpacing: spacing,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 90}},
		XAxis:      chart.Style{TextRotationDegrees: 45, FontSize: 8},
		YAxis: chart.YAxis{
			Name:  c.YAxis.Title,
			Range: padded(vals, true),
		},
		Bars: bars,
	}
	return bc.Render(chart.PNG, w)
}

// barLayout shrinks bars so up to twenty fit on the canvas. Both results
// are non-negative and the bar is at least one pixel wide.
func barLayout(width, n int) (barWidth, spacing int) {
	if n < 1 {
		n = 1
	}
	slot := (width - 80) / n
	if slot < 1 {
		slot = 1
	}
	barWidth = slot * 3 / 4
	if barWidth < 1 {
		barWidth = 1
	}
	return barWidth, slot - barWidth
}
