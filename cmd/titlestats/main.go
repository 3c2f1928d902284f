// Package main provides the CLI entrypoint for titlestats.
package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/titlestats/internal/catalog"
	"github.com/verte-zerg/titlestats/internal/config"
	"github.com/verte-zerg/titlestats/internal/display"
	"github.com/verte-zerg/titlestats/internal/logging"
	"github.com/verte-zerg/titlestats/internal/normalize"
	"github.com/verte-zerg/titlestats/internal/report"
	"github.com/verte-zerg/titlestats/internal/reportui"
	"github.com/verte-zerg/titlestats/internal/stats"
)

const (
	defaultInput  = "netflix_titles.xlsx"
	defaultOutDir = "outputs"
)

var (
	reportInput   string
	reportOutDir  string
	reportTop     int
	reportBins    int
	reportLogFile string
	reportVerbose bool

	viewInput string
	viewTop   int
	viewBins  int
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "titlestats",
		Short:         "Summarize a titles spreadsheet",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runReportCmd,
	}

	rootCmd.Flags().StringVar(&reportInput, "input", defaultInput, "source workbook path")
	rootCmd.Flags().StringVar(&reportOutDir, "out-dir", defaultOutDir, "output directory for artifacts")
	rootCmd.Flags().IntVar(&reportTop, "top", report.DefaultTopRatings, "ratings chart size")
	rootCmd.Flags().IntVar(&reportBins, "bins", stats.DefaultBins, "duration histogram bins")
	rootCmd.Flags().StringVar(&reportLogFile, "log-file", "", "rotating log file path")
	rootCmd.Flags().BoolVar(&reportVerbose, "verbose", false, "debug logging")

	rootCmd.AddCommand(newViewCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func runReportCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "input", &reportInput, fileCfg.Report.Input)
	applyStringConfig(cmd, "out-dir", &reportOutDir, fileCfg.Report.OutDir)
	applyIntConfig(cmd, "top", &reportTop, fileCfg.Report.Top)
	applyIntConfig(cmd, "bins", &reportBins, fileCfg.Report.Bins)
	applyStringConfig(cmd, "log-file", &reportLogFile, fileCfg.Report.LogFile)

	if err := validateReportFlags(reportTop, reportBins); err != nil {
		return err
	}
	logging.Setup(logging.Options{Verbose: reportVerbose, File: reportLogFile})

	table, err := loadTable(reportInput)
	if err != nil {
		return err
	}
	res, err := report.Run(context.Background(), table, report.Options{
		OutDir:     reportOutDir,
		TopRatings: reportTop,
		Bins:       reportBins,
	})
	if err != nil {
		return err
	}
	display.Completion(cmd.OutOrStdout(), res)
	return nil
}

func newViewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view",
		Short: "Browse the report interactively",
		Args:  cobra.NoArgs,
		RunE:  runViewCmd,
	}
	cmd.Flags().StringVar(&viewInput, "input", defaultInput, "source workbook path")
	cmd.Flags().IntVar(&viewTop, "top", report.DefaultTopRatings, "ratings table size")
	cmd.Flags().IntVar(&viewBins, "bins", stats.DefaultBins, "duration histogram bins")
	return cmd
}

func runViewCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "input", &viewInput, fileCfg.Report.Input)
	applyIntConfig(cmd, "top", &viewTop, fileCfg.Report.Top)
	applyIntConfig(cmd, "bins", &viewBins, fileCfg.Report.Bins)

	if err := validateReportFlags(viewTop, viewBins); err != nil {
		return err
	}

	table, err := loadTable(viewInput)
	if err != nil {
		return err
	}
	rep := stats.BuildReport(table, viewTop)
	model := reportui.NewModel(rep, viewInput, viewBins)
	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run report TUI: %w", err)
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func loadTable(path string) (*catalog.Table, error) {
	table, err := catalog.Load(path)
	if err != nil {
		return nil, err
	}
	normalize.Apply(table)
	return table, nil
}

func validateReportFlags(top, bins int) error {
	if top <= 0 {
		return fmt.Errorf("--top must be > 0")
	}
	if bins <= 0 {
		return fmt.Errorf("--bins must be > 0")
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# titlestats configuration
# Uncomment a value to enable it. CLI flags override config values.

[report]
# input = %q     # Source workbook path
# out-dir = %q              # Output directory for artifacts
# top = %d                         # Ratings chart size
# bins = %d                        # Duration histogram bins
# log-file = "titlestats.log"      # Rotating log file path
`,
		defaultInput,
		defaultOutDir,
		report.DefaultTopRatings,
		stats.DefaultBins,
	)
}
