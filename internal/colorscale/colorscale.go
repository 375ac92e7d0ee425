// Package colorscale maps normalized values onto the continuous color
// scales offered by the dashboard.
package colorscale

import (
	"fmt"
	"math"
	"strings"

	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Name identifies a continuous color scale.
type Name string

const (
	Plasma  Name = "Plasma"
	Viridis Name = "Viridis"
	Inferno Name = "Inferno"
)

// Names lists the selectable scales in selector order.
var Names = []Name{Plasma, Viridis, Inferno}

// Ten evenly spaced stops per scale, low to high.
var stops = map[Name][]string{
	Plasma: {
		"0d0887", "46039f", "7201a8", "9c179e", "bd3786",
		"d8576b", "ed7953", "fb9f3a", "fdca26", "f0f921",
	},
	Viridis: {
		"440154", "482878", "3e4989", "31688e", "26828e",
		"1f9e89", "35b779", "6ece58", "b5de2b", "fde725",
	},
	Inferno: {
		"000004", "1b0c41", "4a0c6b", "781c6d", "a52c60",
		"cf4446", "ed6925", "fb9b06", "f7d13d", "fcffa4",
	},
}

// Parse resolves a scale name case-insensitively.
func Parse(s string) (Name, bool) {
	for _, n := range Names {
		if strings.EqualFold(string(n), strings.TrimSpace(s)) {
			return n, true
		}
	}
	return "", false
}

// Scale interpolates linearly between its stops.
type Scale struct {
	name   Name
	colors []drawing.Color
}

// Get returns the named scale.
func Get(n Name) (Scale, bool) {
	hex, ok := stops[n]
	if !ok {
		return Scale{}, false
	}
	s := Scale{name: n, colors: make([]drawing.Color, len(hex))}
	for i, h := range hex {
		s.colors[i] = drawing.ColorFromHex(h)
	}
	return s, true
}

// MustGet is Get for names known at compile time.
func MustGet(n Name) Scale {
	s, ok := Get(n)
	if !ok {
		panic(fmt.Sprintf("colorscale: unknown scale %q", n))
	}
	return s
}

func (s Scale) Name() Name { return s.name }

// At returns the color at position t, clamped to [0,1].
func (s Scale) At(t float64) drawing.Color {
	if math.IsNaN(t) || t <= 0 {
		return s.colors[0]
	}
	if t >= 1 {
		return s.colors[len(s.colors)-1]
	}
	pos := t * float64(len(s.colors)-1)
	lo := int(math.Floor(pos))
	w := pos - float64(lo)
	a, b := s.colors[lo], s.colors[lo+1]
	return drawing.Color{
		R: lerp(a.R, b.R, w),
		G: lerp(a.G, b.G, w),
		B: lerp(a.B, b.B, w),
		A: 255,
	}
}

// Hex is At formatted as a CSS color.
func (s Scale) Hex(t float64) string { return Hex(s.At(t)) }

// Stops returns the scale's stops as CSS colors.
func (s Scale) Stops() []string {
	out := make([]string, len(s.colors))
	for i, c := range s.colors {
		out[i] = Hex(c)
	}
	return out
}

// Hex formats c as #rrggbb.
func Hex(c drawing.Color) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func lerp(a, b uint8, w float64) uint8 {
	return uint8(math.Round(float64(a) + (float64(b)-float64(a))*w))
}

// Range is the data domain a scale is stretched over.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// RangeOf spans the finite values of vals. ok is false when none are finite.
func RangeOf(vals []float64) (r Range, ok bool) {
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		if !ok {
			r = Range{Min: v, Max: v}
			ok = true
			continue
		}
		r.Min = math.Min(r.Min, v)
		r.Max = math.Max(r.Max, v)
	}
	return r, ok
}

// Normalize maps v into [0,1]; a zero-width range maps to the midpoint.
func (r Range) Normalize(v float64) float64 {
	if math.IsNaN(v) {
		return math.NaN()
	}
	if r.Max == r.Min {
		return 0.5
	}
	return (v - r.Min) / (r.Max - r.Min)
}
