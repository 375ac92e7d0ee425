package analysis

import "math"

// Matrix holds a symmetric Pearson correlation matrix. Values[i][j] is NaN
// when the pair has fewer than two complete observations or either column
// is constant over them.
type Matrix struct {
	Columns []string
	Values  [][]float64 // row-major
	N       [][]int     // pairwise complete observations
}

// Correlate computes pairwise Pearson correlations. cols[i] holds the values
// of column names[i]; NaN marks a missing value and drops only the pairs
// that include it. All columns must have the same length.
func Correlate(names []string, cols [][]float64) *Matrix {
	k := len(names)
	m := &Matrix{
		Columns: append([]string(nil), names...),
		Values:  make([][]float64, k),
		N:       make([][]int, k),
	}
	for i := range m.Values {
		m.Values[i] = make([]float64, k)
		m.N[i] = make([]int, k)
	}
	for a := 0; a < k; a++ {
		for b := a; b < k; b++ {
			r, n := pearson(cols[a], cols[b])
			if a == b && !math.IsNaN(r) {
				r = 1
			}
			m.Values[a][b], m.Values[b][a] = r, r
			m.N[a][b], m.N[b][a] = n, n
		}
	}
	return m
}

// At returns the coefficient for the named pair.
func (m *Matrix) At(a, b string) (float64, bool) {
	i, j := m.index(a), m.index(b)
	if i < 0 || j < 0 {
		return math.NaN(), false
	}
	return m.Values[i][j], true
}

func (m *Matrix) index(name string) int {
	for i, c := range m.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// pearson uses centered sums over the complete pairs.
func pearson(xs, ys []float64) (float64, int) {
	var n int
	var sumX, sumY float64
	for i := range xs {
		if math.IsNaN(xs[i]) || math.IsNaN(ys[i]) {
			continue
		}
		n++
		sumX += xs[i]
		sumY += ys[i]
	}
	if n < 2 {
		return math.NaN(), n
	}
	mx, my := sumX/float64(n), sumY/float64(n)
	var sxx, syy, sxy float64
	for i := range xs {
		if math.IsNaN(xs[i]) || math.IsNaN(ys[i]) {
			continue
		}
		dx, dy := xs[i]-mx, ys[i]-my
		sxx += dx * dx
		syy += dy * dy
		sxy += dx * dy
	}
	if sxx == 0 || syy == 0 {
		return math.NaN(), n
	}
	r := sxy / math.Sqrt(sxx*syy)
	if r > 1 {
		r = 1
	} else if r < -1 {
		r = -1
	}
	return r, n
}
