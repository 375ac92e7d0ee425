package dataset

import "strings"

// Metric names one of the seven numeric columns of the table.
type Metric string

const (
	Happiness  Metric = "Happiness"
	GDP        Metric = "GDP"
	Social     Metric = "Social"
	Health     Metric = "Health"
	Freedom    Metric = "Freedom"
	Generosity Metric = "Generosity"
	Corruption Metric = "Corruption"
)

// Metrics lists every metric in column order. Callers must not modify it.
var Metrics = []Metric{Happiness, GDP, Social, Health, Freedom, Generosity, Corruption}

var metricLabels = map[Metric]string{
	Happiness:  "Happiness Score",
	GDP:        "GDP per Capita",
	Social:     "Social Support",
	Health:     "Healthy Life Expectancy",
	Freedom:    "Freedom",
	Generosity: "Generosity",
	Corruption: "Corruption",
}

// ParseMetric resolves a metric name. Matching is exact first, then
// case-insensitive.
func ParseMetric(s string) (Metric, bool) {
	m := Metric(strings.TrimSpace(s))
	if _, ok := metricLabels[m]; ok {
		return m, true
	}
	for _, cand := range Metrics {
		if strings.EqualFold(string(cand), string(m)) {
			return cand, true
		}
	}
	return "", false
}

// Label is the human-readable selector label for the metric.
func (m Metric) Label() string {
	if l, ok := metricLabels[m]; ok {
		return l
	}
	return string(m)
}

func (m Metric) String() string { return string(m) }
