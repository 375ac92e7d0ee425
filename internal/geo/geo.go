// Package geo resolves country names to map geometry for the choropleth.
package geo

import (
	"os"
	"strings"

	geojson "github.com/paulmach/go.geojson"
	"github.com/pkg/errors"

	"github.com/KaramelBytes/happydash/internal/chartspec"
)

// ErrNotChoropleth is returned by Fill for charts without locations.
var ErrNotChoropleth = errors.New("chart is not a choropleth")

// nameProperties are the feature properties tried, in order, for a name.
var nameProperties = []string{"name", "ADMIN", "admin", "name_long", "NAME", "NAME_LONG", "formal_en"}

// aliases maps dataset spellings to common map spellings.
var aliases = map[string]string{
	"united states":             "united states of america",
	"congo (brazzaville)":       "republic of the congo",
	"congo (kinshasa)":          "democratic republic of the congo",
	"taiwan province of china":  "taiwan",
	"hong kong s.a.r. of china": "hong kong s.a.r.",
	"palestinian territories":   "palestine",
	"north cyprus":              "northern cyprus",
	"czech republic":            "czechia",
	"tanzania":                  "united republic of tanzania",
	"swaziland":                 "eswatini",
	"serbia":                    "republic of serbia",
}

// World is an immutable set of country features indexed by name.
type World struct {
	features []*geojson.Feature
	index    map[string]int
}

// LoadWorld reads a GeoJSON FeatureCollection from path.
func LoadWorld(path string) (*World, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read geojson")
	}
	w, err := ParseWorld(b)
	if err != nil {
		return nil, errors.Wrapf(err, "parse %s", path)
	}
	return w, nil
}

// ParseWorld indexes the features of a GeoJSON FeatureCollection.
func ParseWorld(data []byte) (*World, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, errors.Wrap(err, "unmarshal feature collection")
	}
	w := &World{features: fc.Features, index: make(map[string]int, len(fc.Features)*2)}
	for i, f := range fc.Features {
		for _, p := range nameProperties {
			name, err := f.PropertyString(p)
			if err != nil || name == "" {
				continue
			}
			key := normalize(name)
			if _, taken := w.index[key]; !taken {
				w.index[key] = i
			}
		}
	}
	return w, nil
}

// Len is the number of features.
func (w *World) Len() int { return len(w.features) }

// Resolve finds the feature for a dataset country name.
func (w *World) Resolve(country string) (*geojson.Feature, bool) {
	key := normalize(country)
	if i, ok := w.index[key]; ok {
		return w.features[i], true
	}
	if alt, ok := aliases[key]; ok {
		if i, ok := w.index[alt]; ok {
			return w.features[i], true
		}
	}
	return nil, false
}

// Fill returns a copy of every world feature; features matched by a
// chart location carry "country", "value" and "fill" properties, all
// others stay unfilled. Locations that match no feature are returned in
// unresolved and are not an error.
func (w *World) Fill(c *chartspec.Chart) (fc *geojson.FeatureCollection, unresolved []string, err error) {
	if c == nil || c.View != chartspec.Choropleth {
		return nil, nil, ErrNotChoropleth
	}
	matched := make(map[*geojson.Feature]chartspec.Location, len(c.Locations))
	for _, loc := range c.Locations {
		f, ok := w.Resolve(loc.Name)
		if !ok {
			unresolved = append(unresolved, loc.Name)
			continue
		}
		matched[f] = loc
	}
	fc = geojson.NewFeatureCollection()
	for _, f := range w.features {
		out := geojson.NewFeature(f.Geometry)
		out.ID = f.ID
		for k, v := range f.Properties {
			out.SetProperty(k, v)
		}
		if loc, ok := matched[f]; ok {
			out.SetProperty("country", loc.Name)
			if loc.Value.Valid() {
				out.SetProperty("value", float64(loc.Value))
			}
			if loc.Color != "" {
				out.SetProperty("fill", loc.Color)
			}
		}
		fc.AddFeature(out)
	}
	return fc, unresolved, nil
}

func normalize(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
