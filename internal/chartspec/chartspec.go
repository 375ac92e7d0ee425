// Package chartspec defines the renderer-independent chart descriptions
// produced by the dashboard views.
package chartspec

import (
	"encoding/json"
	"math"
	"strings"

	"github.com/KaramelBytes/happydash/internal/colorscale"
)

// ViewID names one of the dashboard's chart regions.
type ViewID string

const (
	Bar        ViewID = "bar"
	Scatter    ViewID = "scatter"
	Choropleth ViewID = "choropleth"
	Heatmap    ViewID = "heatmap"
)

// Views lists every view in page order.
var Views = []ViewID{Bar, Scatter, Choropleth, Heatmap}

// ParseView resolves a view id case-insensitively.
func ParseView(s string) (ViewID, bool) {
	for _, v := range Views {
		if strings.EqualFold(string(v), strings.TrimSpace(s)) {
			return v, true
		}
	}
	return "", false
}

// Number is a float64 that encodes NaN and ±Inf as JSON null.
type Number float64

func (n Number) MarshalJSON() ([]byte, error) {
	f := float64(n)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return []byte("null"), nil
	}
	return json.Marshal(f)
}

func (n *Number) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*n = Number(math.NaN())
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	*n = Number(f)
	return nil
}

// Valid reports whether n is a finite number.
func (n Number) Valid() bool {
	f := float64(n)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

type Axis struct {
	Title      string   `json:"title"`
	Categories []string `json:"categories,omitempty"`
}

// BarItem is one bar of a bar chart.
type BarItem struct {
	Label string `json:"label"`
	Value Number `json:"value"`
	Color string `json:"color,omitempty"`
}

// Point is one marker of a scatter plot.
type Point struct {
	Label      string `json:"label"`
	X          Number `json:"x"`
	Y          Number `json:"y"`
	ColorValue Number `json:"colorValue"`
	Color      string `json:"color,omitempty"`
	Size       Number `json:"size"`
}

// Location is one area of a choropleth. Color is empty when Value is missing.
type Location struct {
	Name  string `json:"name"`
	Value Number `json:"value"`
	Color string `json:"color,omitempty"`
}

// Grid is a heatmap matrix; Z[row][col] pairs with Y[row] and X[col].
type Grid struct {
	X []string   `json:"x"`
	Y []string   `json:"y"`
	Z [][]Number `json:"z"`
}

// Chart is a complete chart description. Exactly one of Bars, Points,
// Locations or Grid is populated unless Empty is set.
type Chart struct {
	View         ViewID            `json:"view"`
	Title        string            `json:"title"`
	XAxis        Axis              `json:"xAxis"`
	YAxis        Axis              `json:"yAxis"`
	ColorScale   colorscale.Name   `json:"colorScale,omitempty"`
	ColorStops   []string          `json:"colorStops,omitempty"`
	ColorRange   *colorscale.Range `json:"colorRange,omitempty"`
	ShowScale    bool              `json:"showScale"`
	LocationMode string            `json:"locationMode,omitempty"`

	Bars      []BarItem  `json:"bars,omitempty"`
	Points    []Point    `json:"points,omitempty"`
	Locations []Location `json:"locations,omitempty"`
	Grid      *Grid      `json:"grid,omitempty"`

	Empty  bool   `json:"empty"`
	Notice string `json:"notice,omitempty"`
}

// EmptyChart is the empty-result state shown in place of a failed view.
func EmptyChart(view ViewID, notice string) *Chart {
	return &Chart{View: view, Empty: true, Notice: notice}
}

// Len counts the chart's marks: bars, points, locations or grid rows.
func (c *Chart) Len() int {
	switch {
	case c == nil:
		return 0
	case c.Grid != nil:
		return len(c.Grid.Z)
	case len(c.Bars) > 0:
		return len(c.Bars)
	case len(c.Points) > 0:
		return len(c.Points)
	}
	return len(c.Locations)
}
