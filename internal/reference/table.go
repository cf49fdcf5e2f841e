// Package reference holds the immutable per-100g food reference table.
package reference

import (
	"fmt"
	"sort"

	"nutristat/internal/models"
)

// Table maps food names to their per-100g reference rows. It is built
// once and never mutated, so it is safe to share across analyses.
type Table struct {
	records []models.FoodRecord // sorted by name
	index   map[string]int
}

// New builds a table from the given rows, sorted by food name.
// Duplicate names are rejected.
func New(records []models.FoodRecord) (*Table, error) {
	sorted := make([]models.FoodRecord, len(records))
	copy(sorted, records)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	index := make(map[string]int, len(sorted))
	for i, rec := range sorted {
		if _, dup := index[rec.Name]; dup {
			return nil, fmt.Errorf("duplicate food %q in reference data", rec.Name)
		}
		index[rec.Name] = i
	}

	return &Table{records: sorted, index: index}, nil
}

// Lookup returns the record for name. Matching is exact and
// case-sensitive.
func (t *Table) Lookup(name string) (models.FoodRecord, bool) {
	i, ok := t.index[name]
	if !ok {
		return models.FoodRecord{}, false
	}
	return t.records[i], true
}

// Names returns all food names in alphabetical order.
func (t *Table) Names() []string {
	names := make([]string, len(t.records))
	for i, rec := range t.records {
		names[i] = rec.Name
	}
	return names
}

// Records returns a copy of all rows in alphabetical order.
func (t *Table) Records() []models.FoodRecord {
	records := make([]models.FoodRecord, len(t.records))
	copy(records, t.records)
	return records
}

// Len returns the number of foods in the table.
func (t *Table) Len() int {
	return len(t.records)
}
