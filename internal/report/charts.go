package report

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/verte-zerg/titlestats/internal/stats"
)

const (
	chartWidth  = 10 * vg.Inch
	chartHeight = 5 * vg.Inch
)

// saveYearChart renders the release-year time series. With categories it
// draws one line per category plus a legend; otherwise a single line.
func saveYearChart(path string, pivot *stats.YearPivot) error {
	p := plot.New()
	p.X.Label.Text = "Release year"
	p.Y.Label.Text = "Number of titles"
	if len(pivot.Categories) > 0 {
		p.Title.Text = "Netflix titles by release year (by type)"
		p.Legend.Top = true
		args := make([]interface{}, 0, 2*len(pivot.Categories))
		for i, cat := range pivot.Categories {
			args = append(args, cat, yearXYs(pivot, i))
		}
		if err := plotutil.AddLines(p, args...); err != nil {
			return fmt.Errorf("failed to build year chart: %w", err)
		}
	} else {
		p.Title.Text = "Netflix titles by release year"
		if err := plotutil.AddLines(p, yearXYs(pivot, 0)); err != nil {
			return fmt.Errorf("failed to build year chart: %w", err)
		}
	}
	if err := p.Save(chartWidth, chartHeight, path); err != nil {
		return fmt.Errorf("failed to save year chart: %w", err)
	}
	return nil
}

func yearXYs(pivot *stats.YearPivot, category int) plotter.XYs {
	series := pivot.Series(category)
	out := make(plotter.XYs, len(pivot.Years))
	for i, year := range pivot.Years {
		out[i].X = float64(year)
		out[i].Y = series[i]
	}
	return out
}

// saveRatingsChart renders horizontal bars, most frequent rating on top.
// requested is the asked-for chart size and goes into the title even when
// fewer ratings exist.
func saveRatingsChart(path string, ratings []stats.CategoryCount, requested int) error {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Top %d Netflix ratings (by count)", requested)
	p.X.Label.Text = "Number of titles"

	// NominalY places the first name at the bottom, so reverse the
	// count-descending list.
	values := make(plotter.Values, len(ratings))
	names := make([]string, len(ratings))
	for i, r := range ratings {
		j := len(ratings) - 1 - i
		values[j] = float64(r.Count)
		names[j] = r.Name
	}
	bars, err := plotter.NewBarChart(values, vg.Points(18))
	if err != nil {
		return fmt.Errorf("failed to build ratings chart: %w", err)
	}
	bars.Horizontal = true
	bars.Color = plotutil.Color(0)
	p.Add(bars)
	p.NominalY(names...)

	if err := p.Save(chartWidth, chartHeight, path); err != nil {
		return fmt.Errorf("failed to save ratings chart: %w", err)
	}
	return nil
}

// saveDurationHist renders the minute-duration histogram.
func saveDurationHist(path string, minutes []float64, bins int) error {
	p := plot.New()
	p.Title.Text = "Distribution of movie durations (minutes)"
	p.X.Label.Text = "Duration (minutes)"
	p.Y.Label.Text = "Number of movies"

	h, err := plotter.NewHist(plotter.Values(minutes), bins)
	if err != nil {
		return fmt.Errorf("failed to build duration histogram: %w", err)
	}
	h.FillColor = plotutil.Color(0)
	p.Add(h)

	if err := p.Save(chartWidth, chartHeight, path); err != nil {
		return fmt.Errorf("failed to save duration histogram: %w", err)
	}
	return nil
}
