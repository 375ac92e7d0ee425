package controls

import (
	"path/filepath"
	"testing"

	"github.com/KaramelBytes/happydash/internal/colorscale"
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

func TestDefaults(t *testing.T) {
	tbl := loadSample(t)
	s := Defaults(tbl)
	want := State{Region: "Western Europe", Metric: dataset.Happiness, CountryCount: 10, ColorScale: colorscale.Plasma}
	if s != want {
		t.Fatalf("defaults = %+v, want %+v", s, want)
	}
	s = Defaults(tbl, WithColorScale("inferno"), WithCountryCount(15))
	if s.ColorScale != colorscale.Inferno || s.CountryCount != 15 {
		t.Fatalf("options not applied: %+v", s)
	}
	s = Defaults(tbl, WithColorScale("Jet"), WithCountryCount(99))
	if s.ColorScale != colorscale.Plasma || s.CountryCount != 10 {
		t.Fatalf("invalid options should be ignored: %+v", s)
	}
}

func TestApplyAndDiff(t *testing.T) {
	base := State{Region: "Western Europe", Metric: dataset.Happiness, CountryCount: 10, ColorScale: colorscale.Plasma}
	region := "South Asia"
	same := dataset.Happiness
	next := base.Apply(Patch{Region: &region, Metric: &same})
	diff := base.Diff(next)
	if len(diff) != 1 || diff[0] != Region {
		t.Fatalf("only region changed, diff = %v", diff)
	}
	if len(base.Diff(base)) != 0 {
		t.Fatalf("state differs from itself")
	}
	if !(Patch{}).IsEmpty() {
		t.Fatalf("zero patch should be empty")
	}
}

func TestParsePatch(t *testing.T) {
	vals := map[Field]string{Metric: "gdp", CountryCount: "7", ColorScale: "VIRIDIS"}
	p, err := ParsePatch(func(f Field) (string, bool) { v, ok := vals[f]; return v, ok })
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if p.Region != nil {
		t.Fatalf("region was not supplied")
	}
	if *p.Metric != dataset.GDP || *p.CountryCount != 7 || *p.ColorScale != colorscale.Viridis {
		t.Fatalf("unexpected patch %+v", p)
	}
	vals[CountryCount] = "many"
	if _, err := ParsePatch(func(f Field) (string, bool) { v, ok := vals[f]; return v, ok }); err == nil {
		t.Fatalf("non-numeric count accepted")
	}
}

func TestCatalog(t *testing.T) {
	tbl := loadSample(t)
	c := NewCatalog(tbl, Defaults(tbl))
	if len(c.Regions) != 7 || c.Regions[0].Value != "Western Europe" {
		t.Fatalf("regions = %+v", c.Regions)
	}
	if len(c.Metrics) != 7 || c.Metrics[1].Label != "GDP per Capita" {
		t.Fatalf("metrics = %+v", c.Metrics)
	}
	if c.Countries.Min != 5 || c.Countries.Max != 20 || len(c.Countries.Marks) != 4 {
		t.Fatalf("slider = %+v", c.Countries)
	}
	if len(c.ColorScales) != 3 {
		t.Fatalf("color scales = %+v", c.ColorScales)
	}
}
