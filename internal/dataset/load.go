package dataset

import (
	"encoding/csv"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Source column headers of the World Happiness Report export.
const (
	ColCountry = "Country name"
	ColRegion  = "Regional indicator"
)

// MetricColumns maps each metric to its source column header.
var MetricColumns = map[Metric]string{
	Happiness:  "Ladder score",
	GDP:        "Logged GDP per capita",
	Social:     "Social support",
	Health:     "Healthy life expectancy",
	Freedom:    "Freedom to make life choices",
	Generosity: "Generosity",
	Corruption: "Perceptions of corruption",
}

// Load reads the dataset file at path. Any error is fatal for startup.
func Load(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open dataset")
	}
	defer f.Close()
	t, err := Read(f)
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", path)
	}
	return t, nil
}

// Read parses a delimited table. The delimiter is taken from the header
// line: tab or semicolon when present there, comma otherwise. Columns not
// in the required set are ignored. Empty metric cells load as NaN.
func Read(r io.Reader) (*Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "read dataset")
	}
	cr := csv.NewReader(strings.NewReader(string(data)))
	cr.Comma = sniffDelimiter(data)
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrNoRecords
		}
		return nil, errors.Wrap(err, "read header")
	}
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))] = i
	}
	col := func(name string) (int, error) {
		i, ok := idx[name]
		if !ok {
			return 0, errors.Wrapf(ErrMissingColumn, "%q", name)
		}
		return i, nil
	}
	countryIdx, err := col(ColCountry)
	if err != nil {
		return nil, err
	}
	regionIdx, err := col(ColRegion)
	if err != nil {
		return nil, err
	}
	metricIdx := make(map[Metric]int, len(Metrics))
	for _, m := range Metrics {
		i, err := col(MetricColumns[m])
		if err != nil {
			return nil, err
		}
		metricIdx[m] = i
	}

	var records []Record
	for line := 2; ; line++ {
		row, err := cr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, errors.Wrapf(ErrMalformedRow, "line %d: %v", line, err)
		}
		rec := Record{
			Country: strings.TrimSpace(row[countryIdx]),
			Region:  strings.TrimSpace(row[regionIdx]),
		}
		for _, m := range Metrics {
			v, err := parseMetric(row[metricIdx[m]])
			if err != nil {
				return nil, errors.Wrapf(ErrMalformedRow, "line %d, column %q: %v", line, MetricColumns[m], err)
			}
			rec.set(m, v)
		}
		records = append(records, rec)
	}
	return New(records)
}

func parseMetric(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return math.NaN(), nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, errors.Errorf("not a number: %q", s)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errors.Errorf("not a finite number: %q", s)
	}
	return v, nil
}

func sniffDelimiter(data []byte) rune {
	first := string(data)
	if i := strings.IndexByte(first, '\n'); i >= 0 {
		first = first[:i]
	}
	switch {
	case strings.Contains(first, "\t"):
		return '\t'
	case strings.Contains(first, ";") && !strings.Contains(first, ","):
		return ';'
	}
	return ','
}
