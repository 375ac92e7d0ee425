package views

import (
	"fmt"
	"math"
	"sort"

	"github.com/KaramelBytes/happydash/internal/chartspec"
	"github.com/KaramelBytes/happydash/internal/colorscale"
	"github.com/KaramelBytes/happydash/internal/dataset"
)

// Bar ranks the countries of region by metric and keeps the top count.
// Ties keep load order; missing values sort last.
func Bar(t *dataset.Table, region string, metric dataset.Metric, count int, scale colorscale.Name) (*chartspec.Chart, error) {
	if err := checkRegion(t, region); err != nil {
		return nil, err
	}
	if err := checkMetric(metric); err != nil {
		return nil, err
	}
	if err := checkCount(count); err != nil {
		return nil, err
	}
	sc, err := lookupScale(scale)
	if err != nil {
		return nil, err
	}

	rs := t.InRegion(region)
	sort.SliceStable(rs, func(i, j int) bool {
		a, _ := rs[i].Value(metric)
		b, _ := rs[j].Value(metric)
		if math.IsNaN(b) {
			return !math.IsNaN(a)
		}
		if math.IsNaN(a) {
			return false
		}
		return a > b
	})
	if len(rs) > count {
		rs = rs[:count]
	}

	vals := dataset.Column(rs, metric)
	rng, ok := colorscale.RangeOf(vals)
	c := &chartspec.Chart{
		View:       chartspec.Bar,
		Title:      fmt.Sprintf("Top %d Countries in %s by %s", count, region, metric),
		XAxis:      chartspec.Axis{Title: "Country"},
		YAxis:      chartspec.Axis{Title: string(metric)},
		ColorScale: sc.Name(),
		ColorStops: sc.Stops(),
		ColorRange: rangePtr(rng, ok),
		Bars:       make([]chartspec.BarItem, len(rs)),
	}
	for i, r := range rs {
		c.Bars[i] = chartspec.BarItem{
			Label: r.Country,
			Value: chartspec.Number(vals[i]),
			Color: colorFor(sc, rng, vals[i]),
		}
		c.XAxis.Categories = append(c.XAxis.Categories, r.Country)
	}
	return c, nil
}
