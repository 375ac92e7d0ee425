package controls

import (
	"github.com/KaramelBytes/happydash/internal/colorscale"
	"github.com/KaramelBytes/happydash/internal/dataset"
)

// Choice is one selector entry.
type Choice struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Slider describes the country-count control.
type Slider struct {
	Min   int   `json:"min"`
	Max   int   `json:"max"`
	Step  int   `json:"step"`
	Marks []int `json:"marks"`
}

// Catalog is everything a UI needs to draw the controls.
type Catalog struct {
	Regions     []Choice `json:"regions"`
	Metrics     []Choice `json:"metrics"`
	Countries   Slider   `json:"countries"`
	ColorScales []Choice `json:"colorScales"`
	Defaults    State    `json:"defaults"`
}

// NewCatalog lists the region choices from the table and the fixed metric
// and color scale choices.
func NewCatalog(t *dataset.Table, defaults State) Catalog {
	c := Catalog{
		Countries: Slider{Min: MinCountries, Max: MaxCountries, Step: CountryStep},
		Defaults:  defaults,
	}
	for i := MinCountries; i <= MaxCountries; i += 5 {
		c.Countries.Marks = append(c.Countries.Marks, i)
	}
	for _, r := range t.Regions() {
		c.Regions = append(c.Regions, Choice{Value: r, Label: r})
	}
	for _, m := range dataset.Metrics {
		c.Metrics = append(c.Metrics, Choice{Value: string(m), Label: m.Label()})
	}
	for _, n := range colorscale.Names {
		c.ColorScales = append(c.ColorScales, Choice{Value: string(n), Label: string(n)})
	}
	return c
}
