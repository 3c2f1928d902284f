// Package catalog loads the titles workbook into an in-memory table.
package catalog

import (
	"strconv"
	"strings"
)

// Canonical column names after normalization. Every package downstream of
// the normalizer refers to columns through these.
const (
	ColTitle           = "title"
	ColType            = "type"
	ColRating          = "rating"
	ColReleaseYear     = "release_year"
	ColDuration        = "duration"
	ColDurationMinutes = "duration_minutes"
	ColDurationSeasons = "duration_seasons"
)

// Record is one row of the catalog table, keyed by column name. Values are
// strings as read from the sheet or float64 for derived numeric fields;
// an absent column is simply a missing key.
type Record map[string]any

// Text returns the value of a column coerced to text.
func (r Record) Text(col string) (string, bool) {
	v, ok := r[col]
	if !ok {
		return "", false
	}
	switch t := v.(type) {
	case string:
		return t, true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	default:
		return "", false
	}
}

// Number returns the value of a column coerced to a number. String values
// are parsed; unparseable or absent values report false.
func (r Record) Number(col string) (float64, bool) {
	v, ok := r[col]
	if !ok {
		return 0, false
	}
	switch t := v.(type) {
	case float64:
		return t, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// Table is the full loaded record set, one Record per catalog entry.
// Columns preserves the column order of the source sheet so derived
// columns and exports stay deterministic.
type Table struct {
	Sheet   string
	Columns []string
	Rows    []Record
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// HasColumn reports whether the table carries the named column.
func (t *Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// AddColumn appends a column name unless it is already present.
func (t *Table) AddColumn(name string) {
	if t.HasColumn(name) {
		return
	}
	t.Columns = append(t.Columns, name)
}
