package stats

import (
	"bytes"
	"strings"
	"testing"
)

func TestPlotSeries(t *testing.T) {
	var buf bytes.Buffer
	err := PlotSeries(&buf, "Titles by year", []Series{
		{Name: "Movie", Values: []float64{1, 2, 3, 2, 1}},
		{Name: "TV Show", Values: []float64{0, 1, 2, 3, 4}},
	}, 10, 4)
	if err != nil {
		t.Fatalf("PlotSeries failed: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Titles by year") {
		t.Fatalf("expected title in output")
	}
	if !strings.Contains(out, "Legend:") {
		t.Fatalf("expected legend for multiple series")
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	expectedMin := 1 + 4 + 1
	if len(lines) < expectedMin {
		t.Fatalf("expected at least %d lines of output, got %d", expectedMin, len(lines))
	}
}

func TestPlotSeriesSingleSkipsLegend(t *testing.T) {
	var buf bytes.Buffer
	err := PlotSeries(&buf, "", []Series{
		{Name: "Titles", Values: []float64{2, 4, 6}},
	}, 10, 4)
	if err != nil {
		t.Fatalf("PlotSeries failed: %v", err)
	}
	if strings.Contains(buf.String(), "Legend:") {
		t.Fatalf("single series should not print a legend")
	}
}

func TestPlotSeriesSpanAxis(t *testing.T) {
	var buf bytes.Buffer
	err := PlotSeriesSpan(&buf, "", "1997", "2021", []Series{
		{Name: "Titles", Values: []float64{1, 5, 9}},
	}, 20, 4, false)
	if err != nil {
		t.Fatalf("PlotSeriesSpan failed: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "1997") || !strings.Contains(out, "2021") {
		t.Fatalf("expected year span in output: %q", out)
	}
}

func TestPlotSeriesAxisScale(t *testing.T) {
	var buf bytes.Buffer
	err := PlotSeries(&buf, "", []Series{
		{Name: "Titles", Values: []float64{10, 40}},
	}, 10, 4)
	if err != nil {
		t.Fatalf("PlotSeries failed: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "40") {
		t.Fatalf("expected max value on the axis: %q", out)
	}
	if !strings.Contains(out, "0 ") && !strings.Contains(out, "0 │") && !strings.Contains(out, " 0") {
		t.Fatalf("expected zero baseline on the axis: %q", out)
	}
}

func TestPlotSeriesEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := PlotSeries(&buf, "x", nil, 10, 4); err != nil {
		t.Fatalf("PlotSeries failed: %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("expected no output for empty input, got %q", buf.String())
	}
}
