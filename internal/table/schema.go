// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package table

// Empty is the cell value written for a column a record does not have.
const Empty = ""

// Schema is an ordered set of column names. Names keep the position of their
// first appearance.
type Schema struct {
	names []string
	index map[string]int
}

// NewSchema returns an empty schema.
func NewSchema() *Schema {
	return &Schema{index: make(map[string]int)}
}

// Add returns the index of name, appending it if it has not been seen.
func (s *Schema) Add(name string) int {
	if i, ok := s.index[name]; ok {
		return i
	}
	i := len(s.names)
	s.names = append(s.names, name)
	s.index[name] = i
	return i
}

// Len returns the number of columns.
func (s *Schema) Len() int {
	return len(s.names)
}

// Columns returns a copy of the column names in first-seen order.
func (s *Schema) Columns() []string {
	return append([]string(nil), s.names...)
}

// Field is one named cell of a record.
type Field struct {
	Column string
	Value  string
}

// Builder accumulates heterogeneous records into a table whose columns are
// the union of all record fields.
type Builder struct {
	schema *Schema
	rows   [][]string
}

// NewBuilder returns a builder with an empty schema.
func NewBuilder() *Builder {
	return &Builder{schema: NewSchema()}
}

// Append adds one row. Fields naming new columns extend the schema. A later
// field for the same column overwrites an earlier one.
func (b *Builder) Append(fields []Field) {
	row := make([]string, b.schema.Len(), b.schema.Len()+len(fields))
	for _, f := range fields {
		i := b.schema.Add(f.Column)
		for len(row) <= i {
			row = append(row, Empty)
		}
		row[i] = f.Value
	}
	b.rows = append(b.rows, row)
}

// Len returns the number of rows appended so far.
func (b *Builder) Len() int {
	return len(b.rows)
}

// Table pads every row to the final schema width and returns the result.
func (b *Builder) Table() *Table {
	width := b.schema.Len()
	for i, row := range b.rows {
		for len(row) < width {
			row = append(row, Empty)
		}
		b.rows[i] = row
	}
	return &Table{Columns: b.schema.Columns(), Rows: b.rows}
}
