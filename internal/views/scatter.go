package views

import (
	"fmt"
	"math"

	"github.com/KaramelBytes/happydash/internal/chartspec"
	"github.com/KaramelBytes/happydash/internal/colorscale"
	"github.com/KaramelBytes/happydash/internal/dataset"
)

// MaxMarkerSize is the diameter of the happiest country's marker.
const MaxMarkerSize = 20

// Scatter plots GDP against metric for every country of region. Color and
// marker area follow Happiness. When metric is GDP both axes carry GDP.
func Scatter(t *dataset.Table, region string, metric dataset.Metric, scale colorscale.Name) (*chartspec.Chart, error) {
	if err := checkRegion(t, region); err != nil {
		return nil, err
	}
	if err := checkMetric(metric); err != nil {
		return nil, err
	}
	sc, err := lookupScale(scale)
	if err != nil {
		return nil, err
	}

	rs := t.InRegion(region)
	happy := dataset.Column(rs, dataset.Happiness)
	rng, ok := colorscale.RangeOf(happy)
	c := &chartspec.Chart{
		View:       chartspec.Scatter,
		Title:      fmt.Sprintf("GDP vs %s in %s (Colored by Happiness)", metric, region),
		XAxis:      chartspec.Axis{Title: "GDP per Capita"},
		YAxis:      chartspec.Axis{Title: string(metric)},
		ColorScale: sc.Name(),
		ColorStops: sc.Stops(),
		ColorRange: rangePtr(rng, ok),
		ShowScale:  true,
		Points:     make([]chartspec.Point, len(rs)),
	}
	for i, r := range rs {
		y, _ := r.Value(metric)
		c.Points[i] = chartspec.Point{
			Label:      r.Country,
			X:          chartspec.Number(r.GDP),
			Y:          chartspec.Number(y),
			ColorValue: chartspec.Number(happy[i]),
			Color:      colorFor(sc, rng, happy[i]),
			Size:       chartspec.Number(markerSize(happy[i], rng.Max)),
		}
	}
	return c, nil
}

// markerSize scales marker area linearly with v.
func markerSize(v, peak float64) float64 {
	if math.IsNaN(v) || peak <= 0 || v <= 0 {
		return math.NaN()
	}
	return MaxMarkerSize * math.Sqrt(v/peak)
}
