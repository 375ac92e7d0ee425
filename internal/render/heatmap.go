package render

import (
	"image/color"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/KaramelBytes/happydash/internal/chartspec"
	"github.com/KaramelBytes/happydash/internal/colorscale"
)

// paletteSize is the number of discrete colors sampled from a scale.
const paletteSize = 64

// scalePalette adapts a colorscale to gonum's palette.Palette.
type scalePalette []color.Color

func (p scalePalette) Colors() []color.Color { return p }

func newPalette(name colorscale.Name) scalePalette {
	sc, ok := colorscale.Get(name)
	if !ok {
		sc = colorscale.MustGet(colorscale.Plasma)
	}
	p := make(scalePalette, paletteSize)
	for i := range p {
		p[i] = sc.At(float64(i) / float64(paletteSize-1))
	}
	return p
}

// gridXYZ exposes a chart grid as plotter.GridXYZ with unit-spaced cells.
type gridXYZ struct {
	g        *chartspec.Grid
	min, max float64
}

func (g gridXYZ) Dims() (c, r int)   { return len(g.g.X), len(g.g.Y) }
func (g gridXYZ) Z(c, r int) float64 { return float64(g.g.Z[r][c]) }
func (g gridXYZ) X(c int) float64    { return float64(c) }
func (g gridXYZ) Y(r int) float64    { return float64(r) }
func (g gridXYZ) Min() float64       { return g.min }
func (g gridXYZ) Max() float64       { return g.max }

func heatmapPNG(w io.Writer, c *chartspec.Chart, opts Options) error {
	if c.Grid == nil || len(c.Grid.X) == 0 || len(c.Grid.Y) == 0 {
		return ErrEmptyChart
	}
	lo, hi := -1.0, 1.0
	if c.ColorRange != nil {
		lo, hi = c.ColorRange.Min, c.ColorRange.Max
	}

	p := plot.New()
	p.Title.Text = c.Title
	p.X.Label.Text = c.XAxis.Title
	p.Y.Label.Text = c.YAxis.Title

	hm := plotter.NewHeatMap(gridXYZ{g: c.Grid, min: lo, max: hi}, newPalette(c.ColorScale))
	hm.Min, hm.Max = lo, hi
	hm.NaN = color.Transparent
	p.Add(hm)
	p.NominalX(c.Grid.X...)
	p.NominalY(c.Grid.Y...)

	// go-chart renders at 96 DPI; keep PNG sizes consistent across views
	wt, err := p.WriterTo(vg.Length(opts.Width)*vg.Inch/96, vg.Length(opts.Height)*vg.Inch/96, "png")
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}
