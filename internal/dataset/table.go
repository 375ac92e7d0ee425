package dataset

import (
	"strings"

	"github.com/pkg/errors"
)

var (
	ErrNoRecords         = errors.New("dataset has no records")
	ErrDuplicateCountry  = errors.New("duplicate country")
	ErrMissingColumn     = errors.New("missing required column")
	ErrMalformedRow      = errors.New("malformed row")
	ErrMissingIdentifier = errors.New("missing country or region")
)

// Table is the immutable in-memory dataset. All accessors return copies,
// so a *Table can be shared across goroutines without locking.
type Table struct {
	records   []Record
	byCountry map[string]int
	regions   []string
	byRegion  map[string][]int
}

// New validates records and builds a Table. Records keep their order;
// regions are listed in order of first appearance.
func New(records []Record) (*Table, error) {
	if len(records) == 0 {
		return nil, ErrNoRecords
	}
	t := &Table{
		records:   make([]Record, len(records)),
		byCountry: make(map[string]int, len(records)),
		byRegion:  make(map[string][]int),
	}
	copy(t.records, records)
	for i, r := range t.records {
		if strings.TrimSpace(r.Country) == "" || strings.TrimSpace(r.Region) == "" {
			return nil, errors.Wrapf(ErrMissingIdentifier, "record %d", i+1)
		}
		if prev, dup := t.byCountry[r.Country]; dup {
			return nil, errors.Wrapf(ErrDuplicateCountry, "%q at records %d and %d", r.Country, prev+1, i+1)
		}
		t.byCountry[r.Country] = i
		if _, seen := t.byRegion[r.Region]; !seen {
			t.regions = append(t.regions, r.Region)
		}
		t.byRegion[r.Region] = append(t.byRegion[r.Region], i)
	}
	return t, nil
}

// Len is the number of records.
func (t *Table) Len() int { return len(t.records) }

// Records returns all records in load order.
func (t *Table) Records() []Record {
	out := make([]Record, len(t.records))
	copy(out, t.records)
	return out
}

// Regions returns the distinct regions in load order.
func (t *Table) Regions() []string {
	out := make([]string, len(t.regions))
	copy(out, t.regions)
	return out
}

// DefaultRegion is the first region in load order.
func (t *Table) DefaultRegion() string { return t.regions[0] }

// HasRegion reports whether any record belongs to region.
func (t *Table) HasRegion(region string) bool {
	_, ok := t.byRegion[region]
	return ok
}

// InRegion returns the records of region in load order, or nil.
func (t *Table) InRegion(region string) []Record {
	idx := t.byRegion[region]
	if len(idx) == 0 {
		return nil
	}
	out := make([]Record, len(idx))
	for i, j := range idx {
		out[i] = t.records[j]
	}
	return out
}

// Lookup finds a record by country name.
func (t *Table) Lookup(country string) (Record, bool) {
	i, ok := t.byCountry[country]
	if !ok {
		return Record{}, false
	}
	return t.records[i], true
}
