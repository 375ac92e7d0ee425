// Package views computes the four dashboard charts. Every function is pure:
// it reads the table and its arguments and returns a fresh chart.
package views

import (
	"math"

	"github.com/pkg/errors"

	"github.com/KaramelBytes/happydash/internal/colorscale"
	"github.com/KaramelBytes/happydash/internal/controls"
	"github.com/KaramelBytes/happydash/internal/dataset"
)

var (
	ErrUnknownRegion     = errors.New("unknown region")
	ErrUnknownMetric     = errors.New("unknown metric")
	ErrUnknownColorScale = errors.New("unknown color scale")
	ErrCountOutOfRange   = errors.New("country count out of range")
)

func checkRegion(t *dataset.Table, region string) error {
	if !t.HasRegion(region) {
		return errors.Wrapf(ErrUnknownRegion, "%q", region)
	}
	return nil
}

func checkMetric(m dataset.Metric) error {
	if parsed, ok := dataset.ParseMetric(string(m)); !ok || parsed != m {
		return errors.Wrapf(ErrUnknownMetric, "%q", m)
	}
	return nil
}

func checkCount(n int) error {
	if !controls.ValidCount(n) {
		return errors.Wrapf(ErrCountOutOfRange, "%d not in [%d,%d]", n, controls.MinCountries, controls.MaxCountries)
	}
	return nil
}

func lookupScale(n colorscale.Name) (colorscale.Scale, error) {
	s, ok := colorscale.Get(n)
	if !ok {
		return colorscale.Scale{}, errors.Wrapf(ErrUnknownColorScale, "%q", n)
	}
	return s, nil
}

// colorFor maps v through scale over r; missing values get no color.
func colorFor(scale colorscale.Scale, r colorscale.Range, v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return scale.Hex(r.Normalize(v))
}

func rangePtr(r colorscale.Range, ok bool) *colorscale.Range {
	if !ok {
		return nil
	}
	return &r
}
