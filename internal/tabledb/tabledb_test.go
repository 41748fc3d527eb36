// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tabledb

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/json2csv/internal/apperr"
)

func testDB(t *testing.T) (*DB, string) {
	t.Helper()
	dir := t.TempDir()
	db, err := Open(filepath.Join(dir, "db", "tables.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, dir
}

func writeCSV(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestTableName(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"out/links.csv", "links"},
		{"drugs-products-join.csv", "drugs_products_join"},
		{"atc_codes.csv", "atc_codes"},
		{"2024 report.csv", "t_2024_report"},
		{".csv", "t_"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, TableName(tt.path))
		})
	}
}

func TestColumnNames(t *testing.T) {
	got := ColumnNames([]string{"drugbank-id", "", "name", "Name", "name_2", "a b"})
	assert.Equal(t, []string{"drugbank_id", "column_2", "name", "Name_2", "name_2_2", "a_b"}, got)
}

func TestLoadCSV(t *testing.T) {
	db, dir := testDB(t)
	path := writeCSV(t, dir, "drugs-products-join.csv", "drugbank-id,name\nDB01,Aspirin\nDB02,\"Comma, Inc\"\n")

	res, err := db.LoadCSV(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "drugs_products_join", res.Table)
	assert.Equal(t, 2, res.Rows)

	rows, err := db.db.Query(`SELECT drugbank_id, name FROM drugs_products_join ORDER BY rowid`)
	require.NoError(t, err)
	defer rows.Close()

	var got [][2]string
	for rows.Next() {
		var id, name string
		require.NoError(t, rows.Scan(&id, &name))
		got = append(got, [2]string{id, name})
	}
	require.NoError(t, rows.Err())
	assert.Equal(t, [][2]string{{"DB01", "Aspirin"}, {"DB02", "Comma, Inc"}}, got)
}

func TestLoadCSVReplacesTable(t *testing.T) {
	db, dir := testDB(t)
	path := writeCSV(t, dir, "categories.csv", "drugbank-id,name\nDB01,approved\nDB02,approved\n")
	_, err := db.LoadCSV(context.Background(), path)
	require.NoError(t, err)

	writeCSV(t, dir, "categories.csv", "drugbank-id,name,extra\nDB03,withdrawn,x\n")
	_, err = db.LoadCSV(context.Background(), path)
	require.NoError(t, err)

	var count int
	require.NoError(t, db.db.QueryRow(`SELECT count(*) FROM categories`).Scan(&count))
	assert.Equal(t, 1, count)

	var extra string
	require.NoError(t, db.db.QueryRow(`SELECT extra FROM categories`).Scan(&extra))
	assert.Equal(t, "x", extra)
}

func TestLoadCSVErrors(t *testing.T) {
	db, dir := testDB(t)

	_, err := db.LoadCSV(context.Background(), filepath.Join(dir, "missing.csv"))
	assert.Equal(t, apperr.KindIO, apperr.KindOf(err))

	bad := writeCSV(t, dir, "bad.csv", "a\n\"open\n")
	_, err = db.LoadCSV(context.Background(), bad)
	assert.Equal(t, apperr.KindParse, apperr.KindOf(err))

	empty := writeCSV(t, dir, "empty.csv", "")
	_, err = db.LoadCSV(context.Background(), empty)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no columns")
}

func TestLoadGlob(t *testing.T) {
	db, dir := testDB(t)
	writeCSV(t, dir, "a.csv", "x\n1\n2\n")
	writeCSV(t, dir, "b.csv", "y\n3\n")

	var log bytes.Buffer
	summary, err := db.LoadGlob(context.Background(), filepath.Join(dir, "*.csv"), &log)
	require.NoError(t, err)
	assert.Len(t, summary.Tables, 2)
	assert.Equal(t, 3, summary.Rows())
	assert.Contains(t, log.String(), "loaded: a (2 rows)")
	assert.Contains(t, log.String(), "Load summary: 2 tables, 3 rows")
}

func TestLoadGlobCancelled(t *testing.T) {
	db, dir := testDB(t)
	writeCSV(t, dir, "a.csv", "x\n1\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := db.LoadGlob(ctx, filepath.Join(dir, "*.csv"), &bytes.Buffer{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLoadGlobBadPattern(t *testing.T) {
	db, _ := testDB(t)
	_, err := db.LoadGlob(context.Background(), "[", &bytes.Buffer{})
	assert.Equal(t, apperr.KindUsage, apperr.KindOf(err))
}
