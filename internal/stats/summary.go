package stats

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// RenderSummary writes the plain-text run summary: heading, row count,
// unique-title count when known and the category breakdown. Identical
// input yields identical bytes.
func RenderSummary(w io.Writer, s Summary) error {
	if _, err := fmt.Fprintln(w, "Netflix Titles – Quick Summary"); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, strings.Repeat("=", 32)); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, ""); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Rows: %d\n", s.Rows); err != nil {
		return err
	}
	if s.HasTitles {
		if _, err := fmt.Fprintf(w, "Unique titles: %d\n", s.UniqueTitles); err != nil {
			return err
		}
	}
	if len(s.Categories) == 0 {
		return nil
	}
	rows := make([][]string, 0, len(s.Categories))
	for _, c := range s.Categories {
		rows = append(rows, []string{c.Name, strconv.Itoa(c.Count)})
	}
	for _, line := range formatTable(nil, rows, map[int]bool{1: true}) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
