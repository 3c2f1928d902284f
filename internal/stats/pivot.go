package stats

import (
	"sort"
	"strings"

	"github.com/verte-zerg/titlestats/internal/catalog"
)

// YearPivot is the count of titles per release year, broken down by
// category when the table carries a type column.
//
// Years is ascending and holds exactly the distinct years that parsed as
// numbers. Categories holds the distinct category labels of those rows in
// first-seen order, or is empty when there is no type column. Counts is
// indexed [year][category]; without categories each row is a single total.
// Gaps are zero-filled, never negative.
type YearPivot struct {
	Years      []int
	Categories []string
	Counts     [][]int
}

// Series returns one category's counts aligned with Years as float64,
// ready for plotting. For a pivot without categories pass 0.
func (p *YearPivot) Series(category int) []float64 {
	out := make([]float64, len(p.Counts))
	for i, row := range p.Counts {
		if category >= 0 && category < len(row) {
			out[i] = float64(row[category])
		}
	}
	return out
}

// Totals returns the per-year counts summed across categories.
func (p *YearPivot) Totals() []float64 {
	out := make([]float64, len(p.Counts))
	for i, row := range p.Counts {
		sum := 0
		for _, c := range row {
			sum += c
		}
		out[i] = float64(sum)
	}
	return out
}

// BuildYearPivot computes the release-year pivot. Rows whose release_year
// does not parse as a number are dropped; parsed years are truncated to
// integers. Returns nil when the table has no release_year column.
func BuildYearPivot(t *catalog.Table) *YearPivot {
	if !t.HasColumn(catalog.ColReleaseYear) {
		return nil
	}
	hasType := t.HasColumn(catalog.ColType)

	var categories []string
	catIndex := make(map[string]int)
	counts := make(map[int][]int)
	var years []int

	for _, row := range t.Rows {
		f, ok := row.Number(catalog.ColReleaseYear)
		if !ok {
			continue
		}
		year := int(f)

		cat := 0
		if hasType {
			label := MissingLabel
			if v, ok := row.Text(catalog.ColType); ok && strings.TrimSpace(v) != "" {
				label = v
			}
			i, seen := catIndex[label]
			if !seen {
				i = len(categories)
				catIndex[label] = i
				categories = append(categories, label)
			}
			cat = i
		}

		perYear, seen := counts[year]
		if !seen {
			years = append(years, year)
		}
		for len(perYear) <= cat {
			perYear = append(perYear, 0)
		}
		perYear[cat]++
		counts[year] = perYear
	}

	sort.Ints(years)
	width := 1
	if hasType {
		width = len(categories)
	}
	matrix := make([][]int, len(years))
	for i, year := range years {
		row := make([]int, width)
		copy(row, counts[year])
		matrix[i] = row
	}
	return &YearPivot{Years: years, Categories: categories, Counts: matrix}
}
