package analysis

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/KaramelBytes/happydash/internal/dataset"
)

// Options controls Summarize.
type Options struct {
	// Region restricts the summary to one region when set.
	Region string
	// Correlations adds the Pearson matrix across all metrics.
	Correlations bool
}

// Report is a markdown-friendly summary of the dataset.
type Report struct {
	Name    string
	Rows    int
	Metrics []MetricSummary
	Groups  []RegionSummary
	Corr    *Matrix
}

// MetricSummary holds descriptive statistics for one metric.
type MetricSummary struct {
	Metric  dataset.Metric
	Count   int
	Missing int
	Min     float64
	Max     float64
	Mean    float64
	Std     float64
}

// RegionSummary holds per-region record counts and metric means.
type RegionSummary struct {
	Region string
	Size   int
	Means  map[dataset.Metric]float64
}

// Summarize computes descriptive statistics over the table.
func Summarize(name string, t *dataset.Table, opt Options) *Report {
	records := t.Records()
	if opt.Region != "" {
		records = t.InRegion(opt.Region)
	}
	rep := &Report{Name: name, Rows: len(records)}
	for _, m := range dataset.Metrics {
		rep.Metrics = append(rep.Metrics, describe(m, dataset.Column(records, m)))
	}

	regions := t.Regions()
	if opt.Region != "" {
		regions = []string{opt.Region}
	}
	for _, region := range regions {
		rs := t.InRegion(region)
		if len(rs) == 0 {
			continue
		}
		g := RegionSummary{Region: region, Size: len(rs), Means: map[dataset.Metric]float64{}}
		for _, m := range dataset.Metrics {
			g.Means[m] = describe(m, dataset.Column(rs, m)).Mean
		}
		rep.Groups = append(rep.Groups, g)
	}
	sort.SliceStable(rep.Groups, func(i, j int) bool {
		return rep.Groups[i].Size > rep.Groups[j].Size
	})

	if opt.Correlations {
		rep.Corr = MetricCorrelations(records)
	}
	return rep
}

// MetricCorrelations correlates every metric against every other over
// records, in dataset.Metrics order.
func MetricCorrelations(records []dataset.Record) *Matrix {
	names := make([]string, len(dataset.Metrics))
	cols := make([][]float64, len(dataset.Metrics))
	for i, m := range dataset.Metrics {
		names[i] = string(m)
		cols[i] = dataset.Column(records, m)
	}
	return Correlate(names, cols)
}

// describe runs a Welford pass; NaN values count as missing.
func describe(m dataset.Metric, vals []float64) MetricSummary {
	s := MetricSummary{Metric: m, Min: math.NaN(), Max: math.NaN(), Mean: math.NaN(), Std: math.NaN()}
	var mean, m2 float64
	for _, x := range vals {
		if math.IsNaN(x) {
			s.Missing++
			continue
		}
		s.Count++
		if s.Count == 1 || x < s.Min {
			s.Min = x
		}
		if s.Count == 1 || x > s.Max {
			s.Max = x
		}
		delta := x - mean
		mean += delta / float64(s.Count)
		m2 += delta * (x - mean)
	}
	if s.Count > 0 {
		s.Mean = mean
	}
	if s.Count > 1 {
		s.Std = math.Sqrt(m2 / float64(s.Count-1))
	}
	return s
}

// Markdown renders a compact report for terminals or docs.
func (r *Report) Markdown() string {
	var b strings.Builder
	b.WriteString("[DATASET SUMMARY]\n")
	if r.Name != "" {
		b.WriteString(fmt.Sprintf("File: %s\n", r.Name))
	}
	b.WriteString(fmt.Sprintf("Rows: %d\n", r.Rows))
	b.WriteString(fmt.Sprintf("Regions: %d\n\n", len(r.Groups)))

	b.WriteString("[METRICS]\n")
	for _, m := range r.Metrics {
		b.WriteString(fmt.Sprintf("- %s: n=%d", m.Metric, m.Count))
		if m.Missing > 0 {
			b.WriteString(fmt.Sprintf(" (missing %d)", m.Missing))
		}
		if m.Count > 0 {
			b.WriteString(fmt.Sprintf("; min %.4g, max %.4g, mean %.4g", m.Min, m.Max, m.Mean))
			if !math.IsNaN(m.Std) {
				b.WriteString(fmt.Sprintf(", std %.4g", m.Std))
			}
		}
		b.WriteString("\n")
	}

	if len(r.Groups) > 0 {
		b.WriteString("\n[REGIONS]\n")
		for _, g := range r.Groups {
			b.WriteString(fmt.Sprintf("- %s (n=%d)\n", g.Region, g.Size))
			for _, m := range dataset.Metrics {
				v := g.Means[m]
				if math.IsNaN(v) {
					continue
				}
				b.WriteString(fmt.Sprintf("  • %s: mean %.4g\n", m, v))
			}
		}
	}

	if r.Corr != nil {
		pairs := r.Corr.TopPairs(10)
		if len(pairs) > 0 {
			b.WriteString("\n[CORRELATIONS]\n")
			for _, p := range pairs {
				b.WriteString(fmt.Sprintf("- %s ~ %s: r=%.3f\n", p.A, p.B, p.R))
			}
		}
	}
	return b.String()
}

// PairCorr is one off-diagonal correlation.
type PairCorr struct {
	A, B string
	R    float64
	N    int
}

// TopPairs lists up to limit defined off-diagonal pairs ordered by |r|.
func (m *Matrix) TopPairs(limit int) []PairCorr {
	var pairs []PairCorr
	for i := range m.Columns {
		for j := i + 1; j < len(m.Columns); j++ {
			r := m.Values[i][j]
			if math.IsNaN(r) {
				continue
			}
			pairs = append(pairs, PairCorr{A: m.Columns[i], B: m.Columns[j], R: r, N: m.N[i][j]})
		}
	}
	sort.Slice(pairs, func(i, j int) bool {
		ai, aj := math.Abs(pairs[i].R), math.Abs(pairs[j].R)
		if ai == aj {
			return pairs[i].A+pairs[i].B < pairs[j].A+pairs[j].B
		}
		return ai > aj
	})
	if limit > 0 && len(pairs) > limit {
		pairs = pairs[:limit]
	}
	return pairs
}
