// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package table holds the in-memory rectangular table shared by conversion and
// post-processing, along with its CSV codec and column operations.
package table

import "fmt"

// Table is a header plus rows. Every row has exactly len(Columns) cells.
type Table struct {
	Columns []string
	Rows    [][]string
}

// Index returns the position of column name, or -1 if absent.
func (t *Table) Index(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Project returns a new table holding only cols, in the order given.
func (t *Table) Project(cols ...string) (*Table, error) {
	idx := make([]int, len(cols))
	for i, c := range cols {
		j := t.Index(c)
		if j < 0 {
			return nil, fmt.Errorf("column %q not found", c)
		}
		idx[i] = j
	}

	out := &Table{
		Columns: append([]string(nil), cols...),
		Rows:    make([][]string, len(t.Rows)),
	}
	for r, row := range t.Rows {
		cells := make([]string, len(idx))
		for i, j := range idx {
			cells[i] = row[j]
		}
		out.Rows[r] = cells
	}
	return out, nil
}

// MapColumn replaces every cell of column col with fn(cell).
func (t *Table) MapColumn(col string, fn func(string) string) error {
	j := t.Index(col)
	if j < 0 {
		return fmt.Errorf("column %q not found", col)
	}
	for _, row := range t.Rows {
		row[j] = fn(row[j])
	}
	return nil
}

// DedupeBy drops every row whose value in col was already seen, keeping the
// first occurrence and the order of the survivors. Empty values compare equal
// to each other like any other value.
func (t *Table) DedupeBy(col string) error {
	j := t.Index(col)
	if j < 0 {
		return fmt.Errorf("column %q not found", col)
	}
	seen := make(map[string]struct{}, len(t.Rows))
	kept := t.Rows[:0]
	for _, row := range t.Rows {
		if _, ok := seen[row[j]]; ok {
			continue
		}
		seen[row[j]] = struct{}{}
		kept = append(kept, row)
	}
	t.Rows = kept
	return nil
}
