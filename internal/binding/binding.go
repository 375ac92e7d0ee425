// Package binding wires control changes to view recomputation.
package binding

import (
	"github.com/KaramelBytes/happydash/internal/chartspec"
	"github.com/KaramelBytes/happydash/internal/controls"
	"github.com/KaramelBytes/happydash/internal/dataset"
	"github.com/KaramelBytes/happydash/internal/views"
)

// ViewFunc computes one chart from the table and the current controls.
type ViewFunc func(t *dataset.Table, s controls.State) (*chartspec.Chart, error)

// Binding declares which controls a view reads.
type Binding struct {
	View    chartspec.ViewID
	Deps    []controls.Field
	Compute ViewFunc
}

// DependsOn reports whether any of fields is a dependency of b.
func (b Binding) DependsOn(fields []controls.Field) bool {
	for _, f := range fields {
		for _, d := range b.Deps {
			if f == d {
				return true
			}
		}
	}
	return false
}

// Default is the dashboard's binding table.
var Default = []Binding{
	{
		View: chartspec.Bar,
		Deps: []controls.Field{controls.Region, controls.Metric, controls.CountryCount, controls.ColorScale},
		Compute: func(t *dataset.Table, s controls.State) (*chartspec.Chart, error) {
			return views.Bar(t, s.Region, s.Metric, s.CountryCount, s.ColorScale)
		},
	},
	{
		View: chartspec.Scatter,
		Deps: []controls.Field{controls.Region, controls.Metric, controls.ColorScale},
		Compute: func(t *dataset.Table, s controls.State) (*chartspec.Chart, error) {
			return views.Scatter(t, s.Region, s.Metric, s.ColorScale)
		},
	},
	{
		View: chartspec.Choropleth,
		Deps: []controls.Field{controls.Metric, controls.ColorScale},
		Compute: func(t *dataset.Table, s controls.State) (*chartspec.Chart, error) {
			return views.Choropleth(t, s.Metric, s.ColorScale)
		},
	},
	{
		View: chartspec.Heatmap,
		Deps: []controls.Field{controls.Region},
		Compute: func(t *dataset.Table, s controls.State) (*chartspec.Chart, error) {
			return views.Heatmap(t, s.Region)
		},
	},
}

// Lookup finds the binding for view in bindings.
func Lookup(bindings []Binding, view chartspec.ViewID) (Binding, bool) {
	for _, b := range bindings {
		if b.View == view {
			return b, true
		}
	}
	return Binding{}, false
}
