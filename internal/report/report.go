// Package report computes the aggregates over a normalized table and writes
// the artifact set: category CSV, PNG charts, text summary and the cleaned
// SQLite export.
package report

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/verte-zerg/titlestats/internal/catalog"
	"github.com/verte-zerg/titlestats/internal/stats"
	"github.com/verte-zerg/titlestats/internal/store"
)

// DefaultTopRatings is the ratings chart size when no override is given.
const DefaultTopRatings = 10

// Artifact file names inside the output directory.
const (
	FileCountByType   = "count_by_type.csv"
	FileYearsByType   = "titles_by_year_by_type.png"
	FileYears         = "titles_by_year.png"
	FileDurationHist  = "movie_duration_hist.png"
	FileSummary       = "summary.txt"
	FileCleanedSQLite = "titles_cleaned.sqlite"
)

// RatingsFile is the ratings chart name for a given chart size;
// top_10_ratings.png with the default.
func RatingsFile(top int) string {
	return fmt.Sprintf("top_%d_ratings.png", top)
}

// Options configures a report run.
type Options struct {
	OutDir     string
	TopRatings int
	Bins       int
}

// Result lists what a run produced.
type Result struct {
	Report  stats.Report
	OutDir  string
	Written []string
	Skipped []string
}

// Run aggregates the table and writes every artifact into OutDir, creating
// it if needed. Artifacts are independent: a missing input column skips
// that file and nothing else. Write failures stop the run.
func Run(ctx context.Context, table *catalog.Table, opts Options) (*Result, error) {
	if opts.TopRatings <= 0 {
		opts.TopRatings = DefaultTopRatings
	}
	if opts.Bins <= 0 {
		opts.Bins = stats.DefaultBins
	}
	rep := stats.BuildReport(table, opts.TopRatings)
	res := &Result{Report: rep, OutDir: opts.OutDir}

	if err := os.MkdirAll(opts.OutDir, 0o755); err != nil {
		return res, fmt.Errorf("failed to create output directory: %w", err)
	}

	if len(rep.Summary.Categories) > 0 {
		if err := writeCountCSV(filepath.Join(opts.OutDir, FileCountByType), rep.Summary.Categories); err != nil {
			return res, err
		}
		res.wrote(FileCountByType)
	} else {
		res.skip(FileCountByType, "no type column")
	}

	switch {
	case rep.Years == nil:
		res.skip(FileYears, "no release_year column")
	case len(rep.Years.Years) == 0:
		res.skip(FileYears, "no parseable years")
	case len(rep.Years.Categories) > 0:
		if err := saveYearChart(filepath.Join(opts.OutDir, FileYearsByType), rep.Years); err != nil {
			return res, err
		}
		res.wrote(FileYearsByType)
	default:
		if err := saveYearChart(filepath.Join(opts.OutDir, FileYears), rep.Years); err != nil {
			return res, err
		}
		res.wrote(FileYears)
	}

	ratingsFile := RatingsFile(opts.TopRatings)
	if len(rep.Ratings) > 0 {
		if err := saveRatingsChart(filepath.Join(opts.OutDir, ratingsFile), rep.Ratings, opts.TopRatings); err != nil {
			return res, err
		}
		res.wrote(ratingsFile)
	} else {
		res.skip(ratingsFile, "no rating values")
	}

	if len(rep.Durations) > 0 {
		if err := saveDurationHist(filepath.Join(opts.OutDir, FileDurationHist), rep.Durations, opts.Bins); err != nil {
			return res, err
		}
		res.wrote(FileDurationHist)
	} else {
		res.skip(FileDurationHist, "no duration_minutes values")
	}

	if err := writeSummary(filepath.Join(opts.OutDir, FileSummary), rep.Summary); err != nil {
		return res, err
	}
	res.wrote(FileSummary)

	if len(table.Columns) > 0 {
		if err := store.Export(ctx, filepath.Join(opts.OutDir, FileCleanedSQLite), table); err != nil {
			return res, err
		}
		res.wrote(FileCleanedSQLite)
	} else {
		res.skip(FileCleanedSQLite, "no columns")
	}

	return res, nil
}

func (r *Result) wrote(name string) {
	r.Written = append(r.Written, name)
	logrus.WithField("artifact", name).Info("wrote artifact")
}

func (r *Result) skip(name, reason string) {
	r.Skipped = append(r.Skipped, name)
	logrus.WithField("artifact", name).Debugf("skipped: %s", reason)
}
