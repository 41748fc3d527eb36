// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// FileResult describes one converted input file.
type FileResult struct {
	// Source is the matched JSONL path.
	Source string `json:"source" yaml:"source"`

	// Output is the CSV path written.
	Output string `json:"output" yaml:"output"`

	// Rows is the number of data rows written, one per non-empty input line.
	Rows int `json:"rows" yaml:"rows"`

	// Columns is the number of columns in the union schema.
	Columns int `json:"columns" yaml:"columns"`
}

// BatchResult holds the outcome of a glob conversion run.
type BatchResult struct {
	Files []FileResult `json:"files" yaml:"files"`
}

// Converted returns the number of files written.
func (r BatchResult) Converted() int {
	return len(r.Files)
}

// Rows returns the total number of data rows written across all files.
func (r BatchResult) Rows() int {
	n := 0
	for _, f := range r.Files {
		n += f.Rows
	}
	return n
}

// StepResult describes one post-processing step.
type StepResult struct {
	Source string `json:"source" yaml:"source"`
	Output string `json:"output" yaml:"output"`
	Rows   int    `json:"rows" yaml:"rows"`
}

// TableLoad describes one CSV file loaded into the database.
type TableLoad struct {
	Source string `json:"source" yaml:"source"`
	Table  string `json:"table" yaml:"table"`
	Rows   int    `json:"rows" yaml:"rows"`
}

// TableCount describes one JSONL table written by the DrugBank parser.
type TableCount struct {
	Name string `json:"name" yaml:"name"`
	Path string `json:"path" yaml:"path"`
	Rows int    `json:"rows" yaml:"rows"`
}

// ParseResult holds the outcome of parsing a DrugBank export.
type ParseResult struct {
	Source string       `json:"source" yaml:"source"`
	Drugs  int          `json:"drugs" yaml:"drugs"`
	Tables []TableCount `json:"tables" yaml:"tables"`
}

// Rows returns the total number of records written across all tables.
func (r ParseResult) Rows() int {
	n := 0
	for _, t := range r.Tables {
		n += t.Rows
	}
	return n
}
