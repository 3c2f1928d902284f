// Package stats contains the aggregate calculations over a normalized
// catalog table. Everything in here is pure computation; rendering and
// persistence live in internal/report and internal/reportui.
package stats

import (
	"math"
	"sort"
	"strings"

	"github.com/verte-zerg/titlestats/internal/catalog"
)

// MissingLabel is the bucket name for records without a category value.
const MissingLabel = "(missing)"

const sparkChars = " .:-=+*#%@"

// CategoryCount is one label with its frequency.
type CategoryCount struct {
	Name  string
	Count int
}

// CountCategories tallies the type column, bucketing absent or blank values
// under MissingLabel. Order is count descending, ties by first appearance.
// Returns nil when the table has no type column; the counts of a non-nil
// result always sum to the row count.
func CountCategories(t *catalog.Table) []CategoryCount {
	if !t.HasColumn(catalog.ColType) {
		return nil
	}
	counts := make([]CategoryCount, 0, 4)
	index := make(map[string]int, 4)
	for _, row := range t.Rows {
		label := MissingLabel
		if v, ok := row.Text(catalog.ColType); ok && strings.TrimSpace(v) != "" {
			label = v
		}
		i, seen := index[label]
		if !seen {
			i = len(counts)
			index[label] = i
			counts = append(counts, CategoryCount{Name: label})
		}
		counts[i].Count++
	}
	sortByCountDesc(counts)
	return counts
}

// sortByCountDesc orders counts highest first, keeping the original
// (first-seen) order among equal counts.
func sortByCountDesc(counts []CategoryCount) {
	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})
}

// Summary is the headline numbers of a run.
type Summary struct {
	Rows         int
	UniqueTitles int
	HasTitles    bool
	Categories   []CategoryCount
}

// BuildSummary computes the run summary: total rows, distinct titles when a
// title column exists, and the full category breakdown when type exists.
func BuildSummary(t *catalog.Table) Summary {
	s := Summary{
		Rows:       t.Len(),
		Categories: CountCategories(t),
	}
	if !t.HasColumn(catalog.ColTitle) {
		return s
	}
	s.HasTitles = true
	seen := make(map[string]struct{}, t.Len())
	for _, row := range t.Rows {
		if v, ok := row.Text(catalog.ColTitle); ok {
			seen[v] = struct{}{}
		}
	}
	s.UniqueTitles = len(seen)
	return s
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal := values[0]
	maxVal := values[0]
	for _, v := range values[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkChars) {
			idx = len(sparkChars) - 1
		}
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}
