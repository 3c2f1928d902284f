package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/verte-zerg/titlestats/internal/stats"
)

// writeCountCSV writes the category frequency table with a type,count header.
func writeCountCSV(path string, counts []stats.CategoryCount) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	records := make([][]string, 0, len(counts)+1)
	records = append(records, []string{"type", "count"})
	for _, c := range counts {
		records = append(records, []string{c.Name, strconv.Itoa(c.Count)})
	}
	w := csv.NewWriter(f)
	if err := w.WriteAll(records); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	return nil
}
