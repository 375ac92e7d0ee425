// Package render draws chart specifications as PNG images.
package render

import (
	"io"
	"math"
	"strings"

	"github.com/pkg/errors"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/KaramelBytes/happydash/internal/chartspec"
)

var (
	ErrUnsupportedView = errors.New("view cannot be rendered as PNG")
	ErrEmptyChart      = errors.New("chart has no data to draw")
)

// Options sizes the output image in pixels.
type Options struct {
	Width  int
	Height int
}

// DefaultOptions matches the configured defaults.
var DefaultOptions = Options{Width: 900, Height: 500}

func (o Options) orDefault() Options {
	if o.Width <= 0 {
		o.Width = DefaultOptions.Width
	}
	if o.Height <= 0 {
		o.Height = DefaultOptions.Height
	}
	return o
}

// PNG writes c to w. Choropleths are served as GeoJSON instead.
func PNG(w io.Writer, c *chartspec.Chart, opts Options) error {
	if c == nil || c.Empty || c.Len() == 0 {
		return ErrEmptyChart
	}
	opts = opts.orDefault()
	switch c.View {
	case chartspec.Bar:
		return errors.Wrap(barPNG(w, c, opts), "render bar")
	case chartspec.Scatter:
		return errors.Wrap(scatterPNG(w, c, opts), "render scatter")
	case chartspec.Heatmap:
		return errors.Wrap(heatmapPNG(w, c, opts), "render heatmap")
	default:
		return errors.Wrapf(ErrUnsupportedView, "%s", c.View)
	}
}

var missingColor = drawing.ColorFromHex("bbbbbb")

func parseColor(hex string) drawing.Color {
	if hex == "" {
		return missingColor
	}
	return drawing.ColorFromHex(strings.TrimPrefix(hex, "#"))
}

// padded returns [min,max] of finite vals widened by 5% so a single value
// or a constant series still has a drawable range.
func padded(vals []float64, includeZero bool) *chart.ContinuousRange {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if math.IsInf(lo, 1) {
		return &chart.ContinuousRange{Min: 0, Max: 1}
	}
	if includeZero {
		lo = math.Min(lo, 0)
		hi = math.Max(hi, 0)
	}
	span := hi - lo
	if span == 0 {
		span = math.Max(math.Abs(hi), 1)
	}
	pad := span * 0.05
	if includeZero && lo == 0 {
		return &chart.ContinuousRange{Min: 0, Max: hi + pad}
	}
	return &chart.ContinuousRange{Min: lo - pad, Max: hi + pad}
}
