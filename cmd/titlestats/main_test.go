package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/xuri/excelize/v2"

	"github.com/verte-zerg/titlestats/internal/catalog"
)

func writeWorkbook(t *testing.T, path string, rows [][]any) {
	t.Helper()
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			t.Fatalf("failed to close workbook: %v", err)
		}
	}()
	if err := f.SetSheetName("Sheet1", "netflix_titles"); err != nil {
		t.Fatalf("failed to rename sheet: %v", err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("failed to build cell name: %v", err)
		}
		if err := f.SetSheetRow("netflix_titles", cell, &row); err != nil {
			t.Fatalf("failed to write row: %v", err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("failed to save workbook: %v", err)
	}
}

func sampleRows() [][]any {
	return [][]any{
		{"show_id", "type", "title", "release year", "rating", "duration"},
		{"s1", "Movie", "Dark Waters", 2019, "PG-13", "98 min"},
		{"s2", "TV Show", "The Crown", 2016, "TV-MA", "4 Seasons"},
		{"s3", "Movie", "Klaus", 2019, "PG", "96 min"},
	}
}

func TestRootCmdWritesArtifacts(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	input := filepath.Join(t.TempDir(), "netflix_titles.xlsx")
	writeWorkbook(t, input, sampleRows())
	outDir := filepath.Join(t.TempDir(), "outputs")

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--input", input, "--out-dir", outDir})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("failed to run root command: %v", err)
	}

	for _, name := range []string{
		"count_by_type.csv",
		"titles_by_year_by_type.png",
		"top_10_ratings.png",
		"movie_duration_hist.png",
		"summary.txt",
		"titles_cleaned.sqlite",
	} {
		if _, err := os.Stat(filepath.Join(outDir, name)); err != nil {
			t.Fatalf("missing artifact %s: %v", name, err)
		}
	}

	data, err := os.ReadFile(filepath.Join(outDir, "count_by_type.csv"))
	if err != nil {
		t.Fatalf("failed to read csv: %v", err)
	}
	wantCSV := "type,count\nMovie,2\nTV Show,1\n"
	if string(data) != wantCSV {
		t.Fatalf("expected csv %q, got %q", wantCSV, string(data))
	}
	if !strings.Contains(out.String(), "Done! Outputs saved to: "+outDir) {
		t.Fatalf("expected completion line, got:\n%s", out.String())
	}
}

func TestRootCmdMissingInput(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	input := filepath.Join(t.TempDir(), "missing.xlsx")
	outDir := filepath.Join(t.TempDir(), "outputs")

	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--input", input, "--out-dir", outDir})
	err := cmd.Execute()
	if err == nil {
		t.Fatalf("expected error for missing input")
	}
	var missing *catalog.MissingFileError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingFileError, got %T: %v", err, err)
	}
	if !strings.Contains(err.Error(), "missing.xlsx") {
		t.Fatalf("expected message to name the file, got %q", err.Error())
	}
	if _, err := os.Stat(outDir); !os.IsNotExist(err) {
		t.Fatalf("expected no output directory, got err %v", err)
	}
}

func TestRootCmdUsesConfigFile(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)
	input := filepath.Join(t.TempDir(), "netflix_titles.xlsx")
	writeWorkbook(t, input, sampleRows())
	cfgOut := filepath.Join(t.TempDir(), "from-config")

	cfgDir := filepath.Join(xdg, "titlestats")
	if err := os.MkdirAll(cfgDir, 0o755); err != nil {
		t.Fatalf("failed to create config dir: %v", err)
	}
	content := "[report]\nout-dir = \"" + cfgOut + "\"\ntop = 3\n"
	if err := os.WriteFile(filepath.Join(cfgDir, "config.toml"), []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"--input", input})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("failed to run root command: %v", err)
	}
	if _, err := os.Stat(filepath.Join(cfgOut, "summary.txt")); err != nil {
		t.Fatalf("expected artifacts in configured out-dir: %v", err)
	}
	if _, err := os.Stat(filepath.Join(cfgOut, "top_3_ratings.png")); err != nil {
		t.Fatalf("expected configured ratings size: %v", err)
	}

	// An explicit flag wins over the config value.
	flagOut := filepath.Join(t.TempDir(), "from-flag")
	cmd = newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"--input", input, "--out-dir", flagOut, "--top", "2"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("failed to run root command: %v", err)
	}
	if _, err := os.Stat(filepath.Join(flagOut, "top_2_ratings.png")); err != nil {
		t.Fatalf("expected flag ratings size: %v", err)
	}
}

func TestApplyConfigPrecedence(t *testing.T) {
	cmd := &cobra.Command{Use: "test"}
	var input string
	var top int
	cmd.Flags().StringVar(&input, "input", "default.xlsx", "")
	cmd.Flags().IntVar(&top, "top", 10, "")

	cfgInput := "config.xlsx"
	cfgTop := 5
	applyStringConfig(cmd, "input", &input, &cfgInput)
	applyIntConfig(cmd, "top", &top, &cfgTop)
	if input != "config.xlsx" || top != 5 {
		t.Fatalf("expected config values, got input=%q top=%d", input, top)
	}

	if err := cmd.Flags().Set("input", "flag.xlsx"); err != nil {
		t.Fatalf("failed to set flag: %v", err)
	}
	applyStringConfig(cmd, "input", &input, &cfgInput)
	if input != "flag.xlsx" {
		t.Fatalf("expected flag value to win, got %q", input)
	}

	applyIntConfig(cmd, "top", &top, nil)
	if top != 5 {
		t.Fatalf("expected top unchanged for nil config, got %d", top)
	}
}

func TestValidateReportFlags(t *testing.T) {
	if err := validateReportFlags(10, 25); err != nil {
		t.Fatalf("expected valid flags, got %v", err)
	}
	if err := validateReportFlags(0, 25); err == nil {
		t.Fatalf("expected error for non-positive top")
	}
	if err := validateReportFlags(10, 0); err == nil {
		t.Fatalf("expected error for non-positive bins")
	}
}

func TestDefaultConfigTemplateMentionsSettings(t *testing.T) {
	tpl := defaultConfigTemplate()
	for _, want := range []string{"[report]", "input", "out-dir", "top", "bins", "log-file"} {
		if !strings.Contains(tpl, want) {
			t.Fatalf("expected template to mention %q:\n%s", want, tpl)
		}
	}
}
