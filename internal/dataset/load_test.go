package dataset

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
)

const sampleHeader = "Country name,Regional indicator,Ladder score,Logged GDP per capita,Social support,Healthy life expectancy,Freedom to make life choices,Generosity,Perceptions of corruption\n"

func TestLoadSample(t *testing.T) {
	tbl, err := Load(filepath.Join("testdata", "happiness_sample.csv"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if tbl.Len() != 24 {
		t.Fatalf("expected 24 records, got %d", tbl.Len())
	}
	if got := tbl.DefaultRegion(); got != "Western Europe" {
		t.Fatalf("default region should be first in load order, got %q", got)
	}
	regions := tbl.Regions()
	want := []string{
		"Western Europe", "North America and ANZ", "Middle East and North Africa",
		"Latin America and Caribbean", "East Asia", "Sub-Saharan Africa", "South Asia",
	}
	if strings.Join(regions, "|") != strings.Join(want, "|") {
		t.Fatalf("regions out of load order: %v", regions)
	}
	fin, ok := tbl.Lookup("Finland")
	if !ok {
		t.Fatalf("Finland missing")
	}
	if fin.Happiness != 7.842 || fin.GDP != 10.775 || fin.Corruption != 0.186 {
		t.Fatalf("columns mapped incorrectly: %+v", fin)
	}
	congo, ok := tbl.Lookup("Congo (Brazzaville)")
	if !ok || congo.Region != "Sub-Saharan Africa" {
		t.Fatalf("quoted country name not parsed: %+v", congo)
	}
	if n := len(tbl.InRegion("Western Europe")); n != 11 {
		t.Fatalf("expected 11 Western Europe records, got %d", n)
	}
}

func TestReadMissingColumn(t *testing.T) {
	in := "Country name,Regional indicator,Ladder score\nFinland,Western Europe,7.8\n"
	_, err := Read(strings.NewReader(in))
	if !errors.Is(err, ErrMissingColumn) {
		t.Fatalf("expected ErrMissingColumn, got %v", err)
	}
	if !strings.Contains(err.Error(), "Logged GDP per capita") {
		t.Fatalf("error should name the column: %v", err)
	}
}

func TestReadMalformedRows(t *testing.T) {
	cases := map[string]string{
		"non-numeric": sampleHeader + "Finland,Western Europe,high,10.7,0.9,72,0.9,0.1,0.2\n",
		"short row":   sampleHeader + "Finland,Western Europe,7.8,10.7\n",
		"infinite":    sampleHeader + "Finland,Western Europe,Inf,10.7,0.9,72,0.9,0.1,0.2\n",
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Read(strings.NewReader(in))
			if !errors.Is(err, ErrMalformedRow) {
				t.Fatalf("expected ErrMalformedRow, got %v", err)
			}
		})
	}
}

func TestReadDuplicateCountry(t *testing.T) {
	in := sampleHeader +
		"Finland,Western Europe,7.8,10.7,0.9,72,0.9,0.1,0.2\n" +
		"Finland,Western Europe,7.1,10.1,0.8,70,0.8,0.0,0.3\n"
	_, err := Read(strings.NewReader(in))
	if !errors.Is(err, ErrDuplicateCountry) {
		t.Fatalf("expected ErrDuplicateCountry, got %v", err)
	}
}

func TestReadEmptyCellIsMissing(t *testing.T) {
	in := sampleHeader + "Finland,Western Europe,7.8,,0.9,72,0.9,0.1,0.2\n"
	tbl, err := Read(strings.NewReader(in))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	r, _ := tbl.Lookup("Finland")
	if !math.IsNaN(r.GDP) {
		t.Fatalf("empty GDP should load as NaN, got %v", r.GDP)
	}
}

func TestReadSemicolonDelimited(t *testing.T) {
	in := strings.ReplaceAll(sampleHeader, ",", ";") + "Finland;Western Europe;7.8;10.7;0.9;72;0.9;0.1;0.2\n"
	tbl, err := Read(strings.NewReader(in))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if tbl.Len() != 1 {
		t.Fatalf("expected 1 record, got %d", tbl.Len())
	}
}

func TestReadHeaderOnly(t *testing.T) {
	_, err := Read(strings.NewReader(sampleHeader))
	if !errors.Is(err, ErrNoRecords) {
		t.Fatalf("expected ErrNoRecords, got %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.csv"))
	if err == nil || !os.IsNotExist(errors.Cause(err)) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestTableIsolation(t *testing.T) {
	tbl, err := New([]Record{{Country: "A", Region: "R", Happiness: 1}})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	recs := tbl.Records()
	recs[0].Happiness = 99
	if r, _ := tbl.Lookup("A"); r.Happiness != 1 {
		t.Fatalf("table mutated through Records copy")
	}
}

func TestParseMetric(t *testing.T) {
	if m, ok := ParseMetric("corruption"); !ok || m != Corruption {
		t.Fatalf("case-insensitive parse failed: %v %v", m, ok)
	}
	if _, ok := ParseMetric("Population"); ok {
		t.Fatalf("unknown metric accepted")
	}
	if GDP.Label() != "GDP per Capita" {
		t.Fatalf("unexpected label %q", GDP.Label())
	}
}
