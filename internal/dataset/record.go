package dataset

import "math"

// Record is one country row. Missing metric values are NaN.
type Record struct {
	Country    string  `json:"country"`
	Region     string  `json:"region"`
	Happiness  float64 `json:"happiness"`
	GDP        float64 `json:"gdp"`
	Social     float64 `json:"social"`
	Health     float64 `json:"health"`
	Freedom    float64 `json:"freedom"`
	Generosity float64 `json:"generosity"`
	Corruption float64 `json:"corruption"`
}

// Value returns the record's value for m. ok is false for an unknown
// metric; a known metric with a missing value returns NaN and true.
func (r Record) Value(m Metric) (v float64, ok bool) {
	switch m {
	case Happiness:
		return r.Happiness, true
	case GDP:
		return r.GDP, true
	case Social:
		return r.Social, true
	case Health:
		return r.Health, true
	case Freedom:
		return r.Freedom, true
	case Generosity:
		return r.Generosity, true
	case Corruption:
		return r.Corruption, true
	}
	return math.NaN(), false
}

func (r *Record) set(m Metric, v float64) {
	switch m {
	case Happiness:
		r.Happiness = v
	case GDP:
		r.GDP = v
	case Social:
		r.Social = v
	case Health:
		r.Health = v
	case Freedom:
		r.Freedom = v
	case Generosity:
		r.Generosity = v
	case Corruption:
		r.Corruption = v
	}
}

// Column extracts the values of m from records, in order.
func Column(records []Record, m Metric) []float64 {
	out := make([]float64, len(records))
	for i, r := range records {
		out[i], _ = r.Value(m)
	}
	return out
}
