package catalog

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"
)

// preferredSheets is the fixed priority order for picking the title-level
// sheet. Case variants are deliberate: exports from different tools disagree
// on capitalization.
var preferredSheets = []string{"netflix_titles", "titles", "sheet1", "Sheet1"}

// MissingFileError reports that the source workbook does not exist.
type MissingFileError struct {
	Name string
	Dir  string
}

func (e *MissingFileError) Error() string {
	return fmt.Sprintf("could not find %s in %s: put %s next to the binary or pass --input", e.Name, e.Dir, e.Name)
}

// Load opens the workbook at path and returns the title-level sheet as a
// Table. Sheet selection follows preferredSheets, falling back to the first
// sheet in the file. Header cells name the columns; empty cells become
// absent values.
func Load(path string) (*Table, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	if _, err := os.Stat(abs); err != nil {
		if os.IsNotExist(err) {
			return nil, &MissingFileError{Name: filepath.Base(abs), Dir: filepath.Dir(abs)}
		}
		return nil, fmt.Errorf("failed to stat workbook: %w", err)
	}

	f, err := excelize.OpenFile(abs)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			// Best-effort close for a read-only workbook.
			_ = cerr
		}
	}()

	sheet := pickSheet(f.GetSheetList())
	if sheet == "" {
		return nil, fmt.Errorf("workbook %s has no sheets", filepath.Base(abs))
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	return tableFromRows(sheet, rows), nil
}

// pickSheet returns the first preferred sheet name present in names, or the
// first sheet in the file when none match.
func pickSheet(names []string) string {
	if len(names) == 0 {
		return ""
	}
	present := make(map[string]struct{}, len(names))
	for _, n := range names {
		present[n] = struct{}{}
	}
	for _, want := range preferredSheets {
		if _, ok := present[want]; ok {
			return want
		}
	}
	return names[0]
}

func tableFromRows(sheet string, rows [][]string) *Table {
	t := &Table{Sheet: sheet}
	if len(rows) == 0 {
		return t
	}

	header := rows[0]
	cols := make([]string, len(header))
	for i, name := range header {
		if name == "" {
			continue
		}
		cols[i] = name
		t.AddColumn(name)
	}

	for _, row := range rows[1:] {
		rec := make(Record, len(t.Columns))
		for i, cell := range row {
			if i >= len(cols) || cols[i] == "" || cell == "" {
				continue
			}
			if _, ok := rec[cols[i]]; ok {
				// Duplicate header cells: the first one wins.
				continue
			}
			rec[cols[i]] = cell
		}
		t.Rows = append(t.Rows, rec)
	}
	return t
}
