// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package tabledb loads converted CSV tables into a SQLite database, one
// table per file with every column stored as TEXT.
package tabledb

import (
	"context"
	"database/sql"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/json2csv/internal/apperr"
	"github.com/pdiddy/json2csv/internal/table"
	"github.com/pdiddy/json2csv/pkg/types"
)

// DB is an open SQLite database receiving CSV tables.
type DB struct {
	db *sql.DB
}

// Open opens or creates the SQLite database at path, creating its parent
// directory if needed.
func Open(path string) (*DB, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, apperr.IO("creating database directory", dir, err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, apperr.IO("opening database", path, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, apperr.IO("opening database", path, err)
	}
	return &DB{db: db}, nil
}

// Close releases the database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

// TableName derives a SQL table name from a CSV path: the base name without
// its extension, with every character outside [A-Za-z0-9_] replaced by '_'.
func TableName(path string) string {
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	name := sanitize(base)
	if name == "" || (name[0] >= '0' && name[0] <= '9') {
		name = "t_" + name
	}
	return name
}

// ColumnNames turns a CSV header into distinct SQL column names. Empty names
// become column_N (1-based position) and repeats get a _N suffix.
func ColumnNames(header []string) []string {
	out := make([]string, len(header))
	used := make(map[string]bool, len(header))
	for i, h := range header {
		name := sanitize(h)
		if name == "" {
			name = fmt.Sprintf("column_%d", i+1)
		}
		candidate := name
		for n := 2; used[strings.ToLower(candidate)]; n++ {
			candidate = fmt.Sprintf("%s_%d", name, n)
		}
		used[strings.ToLower(candidate)] = true
		out[i] = candidate
	}
	return out
}

func sanitize(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}

func quoteIdent(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// LoadCSV replaces the table derived from path with the contents of the CSV
// file, inside a single transaction.
func (d *DB) LoadCSV(ctx context.Context, path string) (types.TableLoad, error) {
	tbl, err := table.ReadFile(path)
	if err != nil {
		var perr *csv.ParseError
		if errors.As(err, &perr) {
			return types.TableLoad{}, apperr.Parse(path, perr.Line, perr.Err)
		}
		return types.TableLoad{}, apperr.IO("reading", path, err)
	}
	name := TableName(path)
	if err := d.load(ctx, name, tbl); err != nil {
		return types.TableLoad{}, apperr.IO("loading", path, err)
	}
	return types.TableLoad{Source: path, Table: name, Rows: len(tbl.Rows)}, nil
}

func (d *DB) load(ctx context.Context, name string, tbl *table.Table) error {
	if len(tbl.Columns) == 0 {
		return fmt.Errorf("table %s has no columns", name)
	}
	cols := ColumnNames(tbl.Columns)

	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS `+quoteIdent(name)); err != nil {
		return fmt.Errorf("dropping table: %w", err)
	}

	defs := make([]string, len(cols))
	quoted := make([]string, len(cols))
	marks := make([]string, len(cols))
	for i, c := range cols {
		quoted[i] = quoteIdent(c)
		defs[i] = quoted[i] + " TEXT"
		marks[i] = "?"
	}
	create := fmt.Sprintf(`CREATE TABLE %s (%s)`, quoteIdent(name), strings.Join(defs, ", "))
	if _, err := tx.ExecContext(ctx, create); err != nil {
		return fmt.Errorf("creating table: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s)`,
		quoteIdent(name), strings.Join(quoted, ", "), strings.Join(marks, ", ")))
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	args := make([]any, len(cols))
	for r, row := range tbl.Rows {
		for i, v := range row {
			args[i] = v
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("inserting row %d: %w", r+1, err)
		}
	}

	return tx.Commit()
}

// LoadSummary holds the tables loaded by LoadGlob.
type LoadSummary struct {
	Tables []types.TableLoad
}

// Rows returns the total number of rows loaded.
func (s LoadSummary) Rows() int {
	n := 0
	for _, t := range s.Tables {
		n += t.Rows
	}
	return n
}

// LoadGlob loads every CSV matched by pattern, printing one line per table to
// w. It stops at the first failure or when ctx is cancelled.
func (d *DB) LoadGlob(ctx context.Context, pattern string, w io.Writer) (LoadSummary, error) {
	var summary LoadSummary

	files, err := filepath.Glob(pattern)
	if err != nil {
		return summary, apperr.Usage("invalid glob pattern %q: %v", pattern, err)
	}

	for _, path := range files {
		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		default:
		}

		res, err := d.LoadCSV(ctx, path)
		if err != nil {
			fmt.Fprintf(w, "failed: %s (%v)\n", path, err)
			return summary, err
		}
		fmt.Fprintf(w, "loaded: %s (%d rows)\n", res.Table, res.Rows)
		summary.Tables = append(summary.Tables, res)
	}

	fmt.Fprintf(w, "\nLoad summary: %d tables, %d rows\n", len(summary.Tables), summary.Rows())
	return summary, nil
}
