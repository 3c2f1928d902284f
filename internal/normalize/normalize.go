// Package normalize rewrites a loaded table into the canonical shape the
// aggregations expect: snake_case column names, trimmed category values and
// numeric duration columns split out of the free-form duration text.
package normalize

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/verte-zerg/titlestats/internal/catalog"
)

var (
	digitsRe = regexp.MustCompile(`\d+`)
	alphaRe  = regexp.MustCompile(`[A-Za-z]+`)
)

// Apply normalizes the table in place. Column names are lowercased, trimmed
// and spaces become underscores; the type column is trimmed per row; duration
// text is split into duration_minutes and duration_seasons unless the table
// already carries either parsed column.
func Apply(t *catalog.Table) {
	renameColumns(t)
	trimType(t)
	deriveDurations(t)
	t.AddColumn(catalog.ColDurationMinutes)
	t.AddColumn(catalog.ColDurationSeasons)
}

// ColumnName maps a raw header cell to its canonical form.
func ColumnName(raw string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(raw)), " ", "_")
}

func renameColumns(t *catalog.Table) {
	renamed := make([]string, 0, len(t.Columns))
	mapping := make(map[string]string, len(t.Columns))
	seen := make(map[string]bool, len(t.Columns))
	for _, col := range t.Columns {
		name := ColumnName(col)
		if seen[name] {
			// Two headers collapsing onto one name: the first one wins.
			continue
		}
		seen[name] = true
		renamed = append(renamed, name)
		mapping[col] = name
	}
	for i, row := range t.Rows {
		next := make(catalog.Record, len(row))
		for _, col := range t.Columns {
			name, ok := mapping[col]
			if !ok {
				continue
			}
			if v, present := row[col]; present {
				next[name] = v
			}
		}
		t.Rows[i] = next
	}
	t.Columns = renamed
}

func trimType(t *catalog.Table) {
	if !t.HasColumn(catalog.ColType) {
		return
	}
	for _, row := range t.Rows {
		if v, ok := row.Text(catalog.ColType); ok {
			row[catalog.ColType] = strings.TrimSpace(v)
		}
	}
}

func deriveDurations(t *catalog.Table) {
	if t.HasColumn(catalog.ColDurationMinutes) || t.HasColumn(catalog.ColDurationSeasons) {
		return
	}
	if !t.HasColumn(catalog.ColDuration) {
		return
	}
	for _, row := range t.Rows {
		text, ok := row.Text(catalog.ColDuration)
		if !ok {
			continue
		}
		qty, unit, ok := splitDuration(text)
		if !ok {
			continue
		}
		switch {
		case strings.Contains(unit, "min"):
			row[catalog.ColDurationMinutes] = qty
		case strings.Contains(unit, "season"):
			row[catalog.ColDurationSeasons] = qty
		}
	}
}

// splitDuration pulls the first digit run and the first letter run out of a
// duration cell. "90 min" yields (90, "min"); strings without digits yield
// ok=false.
func splitDuration(text string) (float64, string, bool) {
	digits := digitsRe.FindString(text)
	if digits == "" {
		return 0, "", false
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0, "", false
	}
	unit := strings.ToLower(alphaRe.FindString(text))
	return float64(n), unit, true
}
