package stats

import (
	"github.com/verte-zerg/titlestats/internal/catalog"
)

// TopRatings returns the n most frequent rating labels. Absent cells and
// the literal text "nan" count as missing and are excluded. Order is count
// descending with first-seen ties; nil when the table has no rating column.
func TopRatings(t *catalog.Table, n int) []CategoryCount {
	if n <= 0 || !t.HasColumn(catalog.ColRating) {
		return nil
	}
	counts := make([]CategoryCount, 0, 16)
	index := make(map[string]int, 16)
	for _, row := range t.Rows {
		v, ok := row.Text(catalog.ColRating)
		if !ok || v == "nan" {
			continue
		}
		i, seen := index[v]
		if !seen {
			i = len(counts)
			index[v] = i
			counts = append(counts, CategoryCount{Name: v})
		}
		counts[i].Count++
	}
	sortByCountDesc(counts)
	if n > len(counts) {
		n = len(counts)
	}
	return counts[:n]
}
