package catalog

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

type sheetData struct {
	name string
	rows [][]any
}

func writeWorkbook(t *testing.T, path string, sheets []sheetData) {
	t.Helper()
	f := excelize.NewFile()
	for i, s := range sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", s.name); err != nil {
				t.Fatalf("rename sheet: %v", err)
			}
		} else {
			if _, err := f.NewSheet(s.name); err != nil {
				t.Fatalf("new sheet: %v", err)
			}
		}
		for r, row := range s.rows {
			cell, err := excelize.CoordinatesToCellName(1, r+1)
			if err != nil {
				t.Fatalf("cell name: %v", err)
			}
			if err := f.SetSheetRow(s.name, cell, &row); err != nil {
				t.Fatalf("set row: %v", err)
			}
		}
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save workbook: %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "netflix_titles.xlsx")

	_, err := Load(path)
	if err == nil {
		t.Fatalf("expected error for missing file")
	}
	var missing *MissingFileError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingFileError, got %T: %v", err, err)
	}
	if missing.Name != "netflix_titles.xlsx" {
		t.Fatalf("unexpected file name: %q", missing.Name)
	}
	if !strings.Contains(err.Error(), "netflix_titles.xlsx") || !strings.Contains(err.Error(), dir) {
		t.Fatalf("message should name file and directory: %q", err.Error())
	}
}

func TestLoadPrefersNamedSheet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.xlsx")
	writeWorkbook(t, path, []sheetData{
		{name: "scratch", rows: [][]any{{"ignored"}, {"x"}}},
		{name: "titles", rows: [][]any{
			{"title", "type"},
			{"A", "Movie"},
			{"B", "TV Show"},
		}},
	})

	table, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if table.Sheet != "titles" {
		t.Fatalf("expected sheet titles, got %q", table.Sheet)
	}
	if table.Len() != 2 {
		t.Fatalf("expected 2 rows, got %d", table.Len())
	}
}

func TestLoadFallsBackToFirstSheet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.xlsx")
	writeWorkbook(t, path, []sheetData{
		{name: "Export 2021", rows: [][]any{
			{"title"},
			{"Only"},
		}},
		{name: "Metadata", rows: [][]any{{"key"}}},
	})

	table, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if table.Sheet != "Export 2021" {
		t.Fatalf("expected first sheet fallback, got %q", table.Sheet)
	}
}

func TestTableFromRows(t *testing.T) {
	table := tableFromRows("titles", [][]string{
		{"Title", "Release Year", "Duration"},
		{"A", "2020", "90 min"},
		{"B", ""},
		{"C", "2021", "2 Seasons", "spill"},
	})

	if got := len(table.Columns); got != 3 {
		t.Fatalf("expected 3 columns, got %d", got)
	}
	if table.Len() != 3 {
		t.Fatalf("expected 3 rows, got %d", table.Len())
	}
	if _, ok := table.Rows[1]["Release Year"]; ok {
		t.Fatalf("empty cell should be absent")
	}
	if _, ok := table.Rows[1]["Duration"]; ok {
		t.Fatalf("short row should leave trailing columns absent")
	}
	if v, _ := table.Rows[2].Text("Duration"); v != "2 Seasons" {
		t.Fatalf("unexpected duration: %q", v)
	}
}

func TestRecordCoercion(t *testing.T) {
	rec := Record{"duration_minutes": 90.0, "release_year": "2016", "title": "A"}

	if v, ok := rec.Text("duration_minutes"); !ok || v != "90" {
		t.Fatalf("expected text 90, got %q (%v)", v, ok)
	}
	if v, ok := rec.Number("release_year"); !ok || v != 2016 {
		t.Fatalf("expected 2016, got %v (%v)", v, ok)
	}
	if _, ok := rec.Number("title"); ok {
		t.Fatalf("title should not parse as number")
	}
	if _, ok := rec.Number("absent"); ok {
		t.Fatalf("absent column should not report a number")
	}
}
