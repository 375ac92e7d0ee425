package views

import (
	"fmt"

	"github.com/KaramelBytes/happydash/internal/analysis"
	"github.com/KaramelBytes/happydash/internal/chartspec"
	"github.com/KaramelBytes/happydash/internal/colorscale"
	"github.com/KaramelBytes/happydash/internal/dataset"
)

// HeatmapScale is the heatmap's color scale. The color-scale control does
// not apply to it.
const HeatmapScale = colorscale.Plasma

// Heatmap correlates the seven metrics over the countries of region.
// Undefined coefficients (fewer than two complete pairs, or a constant
// column) are NaN and encode as null cells.
func Heatmap(t *dataset.Table, region string) (*chartspec.Chart, error) {
	if err := checkRegion(t, region); err != nil {
		return nil, err
	}
	m := analysis.MetricCorrelations(t.InRegion(region))
	sc := colorscale.MustGet(HeatmapScale)
	grid := &chartspec.Grid{
		X: m.Columns,
		Y: m.Columns,
		Z: make([][]chartspec.Number, len(m.Values)),
	}
	for i, row := range m.Values {
		grid.Z[i] = make([]chartspec.Number, len(row))
		for j, v := range row {
			grid.Z[i][j] = chartspec.Number(v)
		}
	}
	return &chartspec.Chart{
		View:       chartspec.Heatmap,
		Title:      fmt.Sprintf("Correlation Matrix of Happiness Factors in %s", region),
		XAxis:      chartspec.Axis{Title: "Metrics", Categories: m.Columns},
		YAxis:      chartspec.Axis{Title: "Metrics", Categories: m.Columns},
		ColorScale: sc.Name(),
		ColorStops: sc.Stops(),
		ColorRange: &colorscale.Range{Min: -1, Max: 1},
		ShowScale:  true,
		Grid:       grid,
	}, nil
}
