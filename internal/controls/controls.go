// Package controls holds the user-adjustable dashboard inputs.
package controls

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/KaramelBytes/happydash/internal/colorscale"
	"github.com/KaramelBytes/happydash/internal/dataset"
)

// Field names one control.
type Field string

const (
	Region       Field = "region"
	Metric       Field = "metric"
	CountryCount Field = "country_count"
	ColorScale   Field = "color_scale"
)

// Fields lists every control in page order.
var Fields = []Field{Region, Metric, CountryCount, ColorScale}

// Country-count slider bounds.
const (
	MinCountries     = 5
	MaxCountries     = 20
	CountryStep      = 1
	DefaultCountries = 10
)

// State is the current value of every control. Values are kept as given;
// each view validates the fields it reads.
type State struct {
	Region       string          `json:"region"`
	Metric       dataset.Metric  `json:"metric"`
	CountryCount int             `json:"country_count"`
	ColorScale   colorscale.Name `json:"color_scale"`
}

// Option adjusts the defaults returned by Defaults.
type Option func(*State)

// WithColorScale overrides the default color scale. Unknown names are ignored.
func WithColorScale(name string) Option {
	return func(s *State) {
		if n, ok := colorscale.Parse(name); ok {
			s.ColorScale = n
		}
	}
}

// WithCountryCount overrides the default country count when within bounds.
func WithCountryCount(n int) Option {
	return func(s *State) {
		if ValidCount(n) {
			s.CountryCount = n
		}
	}
}

// Defaults returns the initial state: first region in load order,
// Happiness, 10 countries, Plasma.
func Defaults(t *dataset.Table, opts ...Option) State {
	s := State{
		Region:       t.DefaultRegion(),
		Metric:       dataset.Happiness,
		CountryCount: DefaultCountries,
		ColorScale:   colorscale.Plasma,
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// ValidCount reports whether n is a slider position.
func ValidCount(n int) bool { return n >= MinCountries && n <= MaxCountries }

// Patch is a batch of control changes; nil fields are left unchanged.
type Patch struct {
	Region       *string          `json:"region,omitempty"`
	Metric       *dataset.Metric  `json:"metric,omitempty"`
	CountryCount *int             `json:"country_count,omitempty"`
	ColorScale   *colorscale.Name `json:"color_scale,omitempty"`
}

// IsEmpty reports whether the patch changes nothing.
func (p Patch) IsEmpty() bool {
	return p.Region == nil && p.Metric == nil && p.CountryCount == nil && p.ColorScale == nil
}

// Apply returns s with p's fields applied.
func (s State) Apply(p Patch) State {
	if p.Region != nil {
		s.Region = *p.Region
	}
	if p.Metric != nil {
		s.Metric = *p.Metric
	}
	if p.CountryCount != nil {
		s.CountryCount = *p.CountryCount
	}
	if p.ColorScale != nil {
		s.ColorScale = *p.ColorScale
	}
	return s
}

// Diff lists the fields whose values differ between s and o, in Fields order.
func (s State) Diff(o State) []Field {
	var out []Field
	if s.Region != o.Region {
		out = append(out, Region)
	}
	if s.Metric != o.Metric {
		out = append(out, Metric)
	}
	if s.CountryCount != o.CountryCount {
		out = append(out, CountryCount)
	}
	if s.ColorScale != o.ColorScale {
		out = append(out, ColorScale)
	}
	return out
}

// ParsePatch builds a patch from raw string values keyed by field name,
// as delivered by query strings or form posts. Names are normalized to
// their canonical spelling when recognized and passed through otherwise.
func ParsePatch(get func(Field) (string, bool)) (Patch, error) {
	var p Patch
	if v, ok := get(Region); ok {
		v = strings.TrimSpace(v)
		p.Region = &v
	}
	if v, ok := get(Metric); ok {
		m := dataset.Metric(strings.TrimSpace(v))
		if parsed, ok := dataset.ParseMetric(v); ok {
			m = parsed
		}
		p.Metric = &m
	}
	if v, ok := get(CountryCount); ok {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return Patch{}, errors.Errorf("invalid %s %q", CountryCount, v)
		}
		p.CountryCount = &n
	}
	if v, ok := get(ColorScale); ok {
		n := colorscale.Name(strings.TrimSpace(v))
		if parsed, ok := colorscale.Parse(v); ok {
			n = parsed
		}
		p.ColorScale = &n
	}
	return p, nil
}
