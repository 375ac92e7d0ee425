package views

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"

	"github.com/KaramelBytes/happydash/internal/colorscale"
	"github.com/KaramelBytes/happydash/internal/controls"
	"github.com/KaramelBytes/happydash/internal/dataset"
)

func loadSample(t *testing.T) *dataset.Table {
	t.Helper()
	tbl, err := dataset.Load(filepath.Join("..", "dataset", "testdata", "happiness_sample.csv"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	return tbl
}

func TestBarCountAndOrder(t *testing.T) {
	tbl := loadSample(t)
	for _, region := range tbl.Regions() {
		for _, metric := range dataset.Metrics {
			for n := controls.MinCountries; n <= controls.MaxCountries; n++ {
				c, err := Bar(tbl, region, metric, n, colorscale.Plasma)
				if err != nil {
					t.Fatalf("bar %s/%s/%d: %v", region, metric, n, err)
				}
				want := len(tbl.InRegion(region))
				if n < want {
					want = n
				}
				if len(c.Bars) != want {
					t.Fatalf("bar %s/%s/%d: %d bars, want %d", region, metric, n, len(c.Bars), want)
				}
				for i := 1; i < len(c.Bars); i++ {
					if c.Bars[i-1].Value < c.Bars[i].Value {
						t.Fatalf("bar %s/%s not descending at %d: %v < %v", region, metric, i, c.Bars[i-1].Value, c.Bars[i].Value)
					}
				}
			}
		}
	}
}

func TestBarWesternEuropeTopGDP(t *testing.T) {
	tbl := loadSample(t)
	c, err := Bar(tbl, "Western Europe", dataset.GDP, 5, colorscale.Viridis)
	if err != nil {
		t.Fatalf("bar: %v", err)
	}
	want := []string{"Luxembourg", "Ireland", "Switzerland", "Norway", "Denmark"}
	if len(c.Bars) != len(want) {
		t.Fatalf("got %d bars", len(c.Bars))
	}
	for i, b := range c.Bars {
		if b.Label != want[i] {
			t.Fatalf("bar %d = %s, want %s", i, b.Label, want[i])
		}
		if i > 0 && !(c.Bars[i-1].Value > b.Value) {
			t.Fatalf("not strictly descending at %d", i)
		}
	}
	if c.Title != "Top 5 Countries in Western Europe by GDP" {
		t.Fatalf("title = %q", c.Title)
	}
	if c.ColorScale != colorscale.Viridis || c.ShowScale {
		t.Fatalf("bar should use viridis with the scale hidden: %s %v", c.ColorScale, c.ShowScale)
	}
	if c.Bars[0].Color != colorscale.MustGet(colorscale.Viridis).Hex(1) {
		t.Fatalf("top bar should take the high end of the scale, got %s", c.Bars[0].Color)
	}
}

func TestBarStableTies(t *testing.T) {
	tbl, err := dataset.New([]dataset.Record{
		{Country: "A", Region: "R", Happiness: 5},
		{Country: "B", Region: "R", Happiness: 6},
		{Country: "C", Region: "R", Happiness: 5},
		{Country: "D", Region: "R", Happiness: math.NaN()},
		{Country: "E", Region: "R", Happiness: 5},
	})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	c, err := Bar(tbl, "R", dataset.Happiness, 5, colorscale.Plasma)
	if err != nil {
		t.Fatalf("bar: %v", err)
	}
	got := ""
	for _, b := range c.Bars {
		got += b.Label
	}
	if got != "BACED" {
		t.Fatalf("order = %s, want BACED", got)
	}
	if c.Bars[4].Color != "" {
		t.Fatalf("missing value should be uncolored")
	}
}

func TestBarRejectsBadInput(t *testing.T) {
	tbl := loadSample(t)
	cases := []struct {
		region string
		metric dataset.Metric
		count  int
		scale  colorscale.Name
		want   error
	}{
		{"Atlantis", dataset.GDP, 10, colorscale.Plasma, ErrUnknownRegion},
		{"Western Europe", "Population", 10, colorscale.Plasma, ErrUnknownMetric},
		{"Western Europe", dataset.GDP, 4, colorscale.Plasma, ErrCountOutOfRange},
		{"Western Europe", dataset.GDP, 21, colorscale.Plasma, ErrCountOutOfRange},
		{"Western Europe", dataset.GDP, 10, "Jet", ErrUnknownColorScale},
	}
	for _, tc := range cases {
		if _, err := Bar(tbl, tc.region, tc.metric, tc.count, tc.scale); !errors.Is(err, tc.want) {
			t.Fatalf("%+v: expected %v, got %v", tc, tc.want, err)
		}
	}
}

func TestScatterPointsPerRegion(t *testing.T) {
	tbl := loadSample(t)
	for _, region := range tbl.Regions() {
		c, err := Scatter(tbl, region, dataset.Social, colorscale.Inferno)
		if err != nil {
			t.Fatalf("scatter %s: %v", region, err)
		}
		if len(c.Points) != len(tbl.InRegion(region)) {
			t.Fatalf("scatter %s: %d points, want %d", region, len(c.Points), len(tbl.InRegion(region)))
		}
	}
}

func TestScatterEncodings(t *testing.T) {
	tbl := loadSample(t)
	c, err := Scatter(tbl, "North America and ANZ", dataset.Freedom, colorscale.Plasma)
	if err != nil {
		t.Fatalf("scatter: %v", err)
	}
	if c.XAxis.Title != "GDP per Capita" || c.YAxis.Title != "Freedom" {
		t.Fatalf("axes = %+v %+v", c.XAxis, c.YAxis)
	}
	if c.Title != "GDP vs Freedom in North America and ANZ (Colored by Happiness)" {
		t.Fatalf("title = %q", c.Title)
	}
	nz := c.Points[0]
	if nz.Label != "New Zealand" || nz.X != 10.643 || nz.Y != 0.929 || nz.ColorValue != 7.277 {
		t.Fatalf("unexpected point %+v", nz)
	}
	if nz.Size != MaxMarkerSize {
		t.Fatalf("happiest country gets the largest marker, got %v", nz.Size)
	}
	for _, p := range c.Points[1:] {
		if !(p.Size < nz.Size) || !(p.Size > 0) {
			t.Fatalf("marker size out of order: %+v", p)
		}
	}
}

func TestScatterGDPOnBothAxes(t *testing.T) {
	tbl := loadSample(t)
	c, err := Scatter(tbl, "Western Europe", dataset.GDP, colorscale.Plasma)
	if err != nil {
		t.Fatalf("scatter: %v", err)
	}
	for _, p := range c.Points {
		if p.X != p.Y {
			t.Fatalf("GDP vs GDP should lie on the diagonal: %+v", p)
		}
	}
}

func TestChoroplethIgnoresRegion(t *testing.T) {
	tbl := loadSample(t)
	c, err := Choropleth(tbl, dataset.Corruption, colorscale.Viridis)
	if err != nil {
		t.Fatalf("choropleth: %v", err)
	}
	if len(c.Locations) != tbl.Len() {
		t.Fatalf("%d locations, want %d", len(c.Locations), tbl.Len())
	}
	if c.LocationMode != LocationMode || c.Title != "World Map of Corruption" {
		t.Fatalf("unexpected chart header %+v", c)
	}
	sc := colorscale.MustGet(colorscale.Viridis)
	for _, loc := range c.Locations {
		r, _ := tbl.Lookup(loc.Name)
		if float64(loc.Value) != r.Corruption {
			t.Fatalf("%s: value %v, want %v", loc.Name, loc.Value, r.Corruption)
		}
		if loc.Color != sc.Hex(c.ColorRange.Normalize(r.Corruption)) {
			t.Fatalf("%s: color %s", loc.Name, loc.Color)
		}
	}
}

func TestHeatmapMatrix(t *testing.T) {
	tbl := loadSample(t)
	for _, region := range tbl.Regions() {
		c, err := Heatmap(tbl, region)
		if err != nil {
			t.Fatalf("heatmap %s: %v", region, err)
		}
		g := c.Grid
		if len(g.Z) != 7 || len(g.X) != 7 || len(g.Y) != 7 {
			t.Fatalf("heatmap %s: want 7x7", region)
		}
		if c.ColorRange.Min != -1 || c.ColorRange.Max != 1 {
			t.Fatalf("heatmap %s: range %+v", region, c.ColorRange)
		}
		if len(tbl.InRegion(region)) < 2 {
			continue
		}
		for i := range g.Z {
			if g.Z[i][i] != 1 {
				t.Fatalf("heatmap %s: diagonal %d = %v", region, i, g.Z[i][i])
			}
			for j := range g.Z[i] {
				a, b := g.Z[i][j], g.Z[j][i]
				if a != b && (a.Valid() || b.Valid()) {
					t.Fatalf("heatmap %s: asymmetric at %d,%d", region, i, j)
				}
			}
		}
	}
}

func TestHeatmapSingleRecordRegion(t *testing.T) {
	tbl := loadSample(t)
	c, err := Heatmap(tbl, "East Asia")
	if err != nil {
		t.Fatalf("heatmap: %v", err)
	}
	for i, row := range c.Grid.Z {
		for j, v := range row {
			if v.Valid() {
				t.Fatalf("cell %d,%d should be undefined, got %v", i, j, v)
			}
		}
	}
}

func TestColorScaleOnlyAffectsThreeViews(t *testing.T) {
	tbl := loadSample(t)
	region := "Western Europe"
	for _, pair := range [][2]colorscale.Name{{colorscale.Plasma, colorscale.Viridis}, {colorscale.Viridis, colorscale.Inferno}} {
		b1, _ := Bar(tbl, region, dataset.Happiness, 10, pair[0])
		b2, _ := Bar(tbl, region, dataset.Happiness, 10, pair[1])
		if b1.Bars[0].Color == b2.Bars[0].Color {
			t.Fatalf("bar color unchanged between %s and %s", pair[0], pair[1])
		}
		s1, _ := Scatter(tbl, region, dataset.Happiness, pair[0])
		s2, _ := Scatter(tbl, region, dataset.Happiness, pair[1])
		if s1.Points[0].Color == s2.Points[0].Color {
			t.Fatalf("scatter color unchanged between %s and %s", pair[0], pair[1])
		}
		c1, _ := Choropleth(tbl, dataset.Happiness, pair[0])
		c2, _ := Choropleth(tbl, dataset.Happiness, pair[1])
		if c1.Locations[0].Color == c2.Locations[0].Color {
			t.Fatalf("choropleth color unchanged between %s and %s", pair[0], pair[1])
		}
	}
	h, _ := Heatmap(tbl, region)
	if h.ColorScale != colorscale.Plasma {
		t.Fatalf("heatmap scale must stay Plasma, got %s", h.ColorScale)
	}
}
