package stats

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/verte-zerg/titlestats/internal/catalog"
)

// DefaultBins is the bin count of the duration histogram.
const DefaultBins = 25

// Bin is one bucket of a histogram. Low is inclusive; High is exclusive
// except for the last bin, which includes the maximum value.
type Bin struct {
	Low   float64
	High  float64
	Count int
}

// MinuteDurations collects the numeric duration_minutes values, dropping
// rows where the value is absent or unparseable.
func MinuteDurations(t *catalog.Table) []float64 {
	if !t.HasColumn(catalog.ColDurationMinutes) {
		return nil
	}
	var out []float64
	for _, row := range t.Rows {
		if v, ok := row.Number(catalog.ColDurationMinutes); ok {
			out = append(out, v)
		}
	}
	return out
}

// HistogramBins buckets values into the given number of equal-width bins
// spanning [min, max]. Returns nil for an empty input; identical values
// collapse into a single bin.
func HistogramBins(values []float64, bins int) []Bin {
	if len(values) == 0 {
		return nil
	}
	if bins <= 0 {
		bins = DefaultBins
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
	if minVal == maxVal {
		return []Bin{{Low: minVal, High: maxVal, Count: len(values)}}
	}
	width := (maxVal - minVal) / float64(bins)
	out := make([]Bin, bins)
	for i := range out {
		out[i].Low = minVal + float64(i)*width
		out[i].High = minVal + float64(i+1)*width
	}
	out[bins-1].High = maxVal
	for _, v := range values {
		i := int((v - minVal) / width)
		if i >= bins {
			i = bins - 1
		}
		if i < 0 {
			i = 0
		}
		out[i].Count++
	}
	return out
}

// RenderHistogram writes a text histogram of the values, one bin per line
// with a # bar scaled against the fullest bin.
func RenderHistogram(w io.Writer, values []float64, bins, width int) error {
	buckets := HistogramBins(values, bins)
	if len(buckets) == 0 {
		_, err := fmt.Fprintln(w, "No duration data.")
		return err
	}
	maxCount := 0
	for _, b := range buckets {
		if b.Count > maxCount {
			maxCount = b.Count
		}
	}
	if width <= 0 {
		width = terminalWidthBackup
	}
	barWidth := width - 24
	if barWidth < 10 {
		barWidth = 10
	}
	rows := make([][]string, 0, len(buckets))
	for _, b := range buckets {
		bar := 0
		if maxCount > 0 {
			bar = int(math.Round(float64(b.Count) / float64(maxCount) * float64(barWidth)))
		}
		if b.Count > 0 && bar == 0 {
			bar = 1
		}
		rows = append(rows, []string{
			fmt.Sprintf("%.0f-%.0f", b.Low, b.High),
			strconv.Itoa(b.Count),
			strings.Repeat("#", bar),
		})
	}
	for _, line := range formatTable(nil, rows, map[int]bool{1: true}) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
