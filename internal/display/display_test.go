package display

import (
	"bytes"
	"strings"
	"testing"

	"github.com/verte-zerg/titlestats/internal/report"
	"github.com/verte-zerg/titlestats/internal/stats"
)

func TestCompletionPlain(t *testing.T) {
	res := &report.Result{
		Report: stats.Report{
			Summary: stats.Summary{
				Rows:         3,
				UniqueTitles: 3,
				HasTitles:    true,
			},
			Years: &stats.YearPivot{
				Years:  []int{2017, 2018},
				Counts: [][]int{{2}, {1}},
			},
		},
		OutDir:  "outputs",
		Written: []string{"count_by_type.csv", "summary.txt"},
		Skipped: []string{"movie_duration_hist.png"},
	}

	var buf bytes.Buffer
	Completion(&buf, res)
	out := buf.String()

	for _, want := range []string{
		"Rows: 3\n",
		"Unique titles: 3\n",
		"By year: ",
		"  count_by_type.csv\n",
		"  summary.txt\n",
		"  movie_duration_hist.png (skipped)\n",
		"Done! Outputs saved to: outputs\n",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected output to contain %q, got:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\x1b[") {
		t.Fatalf("expected plain output for a non-terminal writer, got:\n%s", out)
	}
}

func TestCompletionWithoutOptionalSections(t *testing.T) {
	res := &report.Result{
		Report:  stats.Report{Summary: stats.Summary{Rows: 2}},
		OutDir:  "outputs",
		Written: []string{"summary.txt"},
	}

	var buf bytes.Buffer
	Completion(&buf, res)
	out := buf.String()

	if strings.Contains(out, "Unique titles") {
		t.Fatalf("expected no unique-titles line, got:\n%s", out)
	}
	if strings.Contains(out, "By year") {
		t.Fatalf("expected no sparkline line, got:\n%s", out)
	}
	if !strings.Contains(out, "Done! Outputs saved to: outputs\n") {
		t.Fatalf("expected closing line, got:\n%s", out)
	}
}
