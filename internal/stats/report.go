package stats

import (
	"github.com/verte-zerg/titlestats/internal/catalog"
)

// Report contains every precomputed aggregate the renderers need, so the
// file reporter and the interactive viewer work from identical data.
type Report struct {
	Sheet     string
	Summary   Summary
	Years     *YearPivot
	Ratings   []CategoryCount
	Durations []float64
}

// BuildReport runs all aggregations over a normalized table. topRatings
// bounds the ratings list (the chart shows that many bars).
func BuildReport(t *catalog.Table, topRatings int) Report {
	return Report{
		Sheet:     t.Sheet,
		Summary:   BuildSummary(t),
		Years:     BuildYearPivot(t),
		Ratings:   TopRatings(t, topRatings),
		Durations: MinuteDurations(t),
	}
}
