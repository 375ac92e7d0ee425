package views

import (
	"fmt"

	"github.com/KaramelBytes/happydash/internal/chartspec"
	"github.com/KaramelBytes/happydash/internal/colorscale"
	"github.com/KaramelBytes/happydash/internal/dataset"
)

// LocationMode tells the map renderer to resolve locations by country name.
const LocationMode = "country names"

// Choropleth colors every country of the table by metric. Region is not a
// filter here. Matching names to geography is left to the renderer.
func Choropleth(t *dataset.Table, metric dataset.Metric, scale colorscale.Name) (*chartspec.Chart, error) {
	if err := checkMetric(metric); err != nil {
		return nil, err
	}
	sc, err := lookupScale(scale)
	if err != nil {
		return nil, err
	}

	rs := t.Records()
	vals := dataset.Column(rs, metric)
	rng, ok := colorscale.RangeOf(vals)
	c := &chartspec.Chart{
		View:         chartspec.Choropleth,
		Title:        fmt.Sprintf("World Map of %s", metric),
		ColorScale:   sc.Name(),
		ColorStops:   sc.Stops(),
		ColorRange:   rangePtr(rng, ok),
		ShowScale:    true,
		LocationMode: LocationMode,
		Locations:    make([]chartspec.Location, len(rs)),
	}
	for i, r := range rs {
		c.Locations[i] = chartspec.Location{
			Name:  r.Country,
			Value: chartspec.Number(vals[i]),
			Color: colorFor(sc, rng, vals[i]),
		}
	}
	return c, nil
}
