// Package display prints the end-of-run console summary.
package display

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/verte-zerg/titlestats/internal/report"
	"github.com/verte-zerg/titlestats/internal/stats"
)

var (
	doneStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	labelStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	valueStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	artifactStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	skippedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
)

// Completion prints headline counts, the artifact list and the closing
// line. Styles apply only when w is a terminal and NO_COLOR is unset, so
// piped output stays plain.
func Completion(w io.Writer, res *report.Result) {
	styled := useStyles(w)

	countLine(w, styled, "Rows", res.Report.Summary.Rows)
	if res.Report.Summary.HasTitles {
		countLine(w, styled, "Unique titles", res.Report.Summary.UniqueTitles)
	}
	if res.Report.Years != nil && len(res.Report.Years.Years) > 0 {
		spark := stats.Sparkline(res.Report.Years.Totals())
		if styled {
			fmt.Fprintf(w, "%s %s\n", labelStyle.Render("By year:"), spark)
		} else {
			fmt.Fprintf(w, "By year: %s\n", spark)
		}
	}
	for _, name := range res.Written {
		if styled {
			fmt.Fprintf(w, "  %s\n", artifactStyle.Render(name))
		} else {
			fmt.Fprintf(w, "  %s\n", name)
		}
	}
	for _, name := range res.Skipped {
		if styled {
			fmt.Fprintf(w, "  %s\n", skippedStyle.Render(name+" (skipped)"))
		} else {
			fmt.Fprintf(w, "  %s (skipped)\n", name)
		}
	}
	done := fmt.Sprintf("Done! Outputs saved to: %s", res.OutDir)
	if styled {
		done = doneStyle.Render(done)
	}
	fmt.Fprintln(w, done)
}

func countLine(w io.Writer, styled bool, label string, value int) {
	if styled {
		fmt.Fprintf(w, "%s %s\n", labelStyle.Render(label+":"), valueStyle.Render(strconv.Itoa(value)))
		return
	}
	fmt.Fprintf(w, "%s: %d\n", label, value)
}

func useStyles(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}
