// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"github.com/pdiddy/json2csv/internal/apperr"
	"github.com/pdiddy/json2csv/internal/table"
)

// ScalarColumn is the unnamed column that holds lines whose value is not a
// JSON object.
const ScalarColumn = ""

// DecodeRecord parses one line holding exactly one JSON value. An object
// yields one field per key in the order the keys appear. Any other value
// yields a single field in ScalarColumn.
func DecodeRecord(line []byte) ([]table.Field, error) {
	line = bytes.TrimSpace(line)
	if len(line) == 0 || line[0] != '{' {
		var raw json.RawMessage
		if err := json.Unmarshal(line, &raw); err != nil {
			return nil, err
		}
		cell, err := renderCell(raw)
		if err != nil {
			return nil, err
		}
		return []table.Field{{Column: ScalarColumn, Value: cell}}, nil
	}

	dec := json.NewDecoder(bytes.NewReader(line))
	if _, err := dec.Token(); err != nil {
		return nil, err
	}

	var fields []table.Field
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected object key %v", tok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, err
		}
		cell, err := renderCell(raw)
		if err != nil {
			return nil, err
		}
		fields = append(fields, table.Field{Column: key, Value: cell})
	}

	// Closing brace, then nothing else may follow.
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	if tok, err := dec.Token(); !errors.Is(err, io.EOF) {
		if err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("unexpected %v after top-level value", tok)
	}
	return fields, nil
}

// renderCell converts one JSON value to its CSV cell text. Strings are
// unquoted, numbers keep their literal text, booleans become True/False,
// null becomes empty, and objects and arrays are compacted JSON.
func renderCell(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return table.Empty, nil
	}
	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", err
		}
		return s, nil
	case 'n':
		return table.Empty, nil
	case 't':
		return "True", nil
	case 'f':
		return "False", nil
	case '{', '[':
		var buf bytes.Buffer
		if err := json.Compact(&buf, raw); err != nil {
			return "", err
		}
		return buf.String(), nil
	default:
		return string(raw), nil
	}
}

// ReadTable reads a line-delimited JSON file into a table whose columns are
// the union of the keys of every record. Blank lines are skipped. The first
// malformed line aborts the read with a parse error naming the line.
func ReadTable(path string) (*table.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, apperr.IO("opening", path, err)
	}
	defer f.Close()

	b := table.NewBuilder()
	r := bufio.NewReader(f)
	for lineNo := 1; ; lineNo++ {
		line, err := r.ReadBytes('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, apperr.IO("reading", path, err)
		}
		if len(bytes.TrimSpace(line)) > 0 {
			if !utf8.Valid(line) {
				return nil, apperr.Parse(path, lineNo, errors.New("invalid UTF-8"))
			}
			fields, perr := DecodeRecord(line)
			if perr != nil {
				return nil, apperr.Parse(path, lineNo, perr)
			}
			b.Append(fields)
		}
		if err != nil {
			break
		}
	}
	return b.Table(), nil
}
