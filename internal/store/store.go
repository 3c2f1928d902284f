// Package store persists the normalized catalog table as a SQLite file.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"

	"github.com/verte-zerg/titlestats/internal/catalog"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Export writes the table into a fresh SQLite database at path: a titles
// table with one column per catalog column (TEXT except the REAL duration
// fields), one row per record, and indexes on type and release_year. Any
// existing file is removed first so reruns rebuild the artifact.
func Export(ctx context.Context, path string, t *catalog.Table) error {
	if len(t.Columns) == 0 {
		return fmt.Errorf("cannot export a table with no columns")
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove %s: %w", path, err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close.
			_ = cerr
		}
	}()
	if err := export(ctx, db, t); err != nil {
		return fmt.Errorf("failed to export %s: %w", path, err)
	}
	return nil
}

func export(ctx context.Context, db *sql.DB, t *catalog.Table) error {
	if _, err := db.ExecContext(ctx, createTableSQL(t.Columns)); err != nil {
		return err
	}
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := insertRows(ctx, tx, t); err != nil {
		if rerr := tx.Rollback(); rerr != nil {
			// Best-effort rollback.
			_ = rerr
		}
		return err
	}
	return tx.Commit()
}

func insertRows(ctx context.Context, tx *sql.Tx, t *catalog.Table) error {
	stmt, err := tx.PrepareContext(ctx, insertSQL(t.Columns))
	if err != nil {
		return err
	}
	defer func() {
		if cerr := stmt.Close(); cerr != nil {
			// Best-effort statement close.
			_ = cerr
		}
	}()
	for _, row := range t.Rows {
		args := make([]any, len(t.Columns))
		for i, col := range t.Columns {
			if v, ok := row[col]; ok {
				args[i] = v
			}
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return err
		}
	}
	for _, idx := range indexSQL(t.Columns) {
		if _, err := tx.ExecContext(ctx, idx); err != nil {
			return err
		}
	}
	return nil
}

func createTableSQL(columns []string) string {
	defs := make([]string, 0, len(columns))
	for _, col := range columns {
		defs = append(defs, quoteIdent(col)+" "+columnType(col))
	}
	return fmt.Sprintf("CREATE TABLE titles (%s);", strings.Join(defs, ", "))
}

func columnType(col string) string {
	switch col {
	case catalog.ColDurationMinutes, catalog.ColDurationSeasons:
		return "REAL"
	default:
		return "TEXT"
	}
}

func insertSQL(columns []string) string {
	quoted := make([]string, len(columns))
	placeholders := make([]string, len(columns))
	for i, col := range columns {
		quoted[i] = quoteIdent(col)
		placeholders[i] = "?"
	}
	return fmt.Sprintf("INSERT INTO titles (%s) VALUES (%s)",
		strings.Join(quoted, ", "), strings.Join(placeholders, ", "))
}

func indexSQL(columns []string) []string {
	var out []string
	for _, col := range columns {
		switch col {
		case catalog.ColType:
			out = append(out, `CREATE INDEX idx_titles_type ON titles("type");`)
		case catalog.ColReleaseYear:
			out = append(out, `CREATE INDEX idx_titles_release_year ON titles("release_year");`)
		}
	}
	return out
}

// quoteIdent quotes a column name; catalog columns can collide with SQL
// keywords ("cast", "type").
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
