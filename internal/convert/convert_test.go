// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/json2csv/internal/apperr"
	"github.com/pdiddy/json2csv/internal/table"
	"github.com/pdiddy/json2csv/pkg/types"
)

// writeInput creates a JSONL file in dir and returns its path.
func writeInput(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func readOutput(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestDecodeRecord(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []table.Field
	}{
		{
			name: "object keeps key order",
			line: `{"b":1,"a":"x"}`,
			want: []table.Field{{Column: "b", Value: "1"}, {Column: "a", Value: "x"}},
		},
		{
			name: "number literal text is preserved",
			line: `{"i":10,"f":1.50,"e":1e3}`,
			want: []table.Field{{Column: "i", Value: "10"}, {Column: "f", Value: "1.50"}, {Column: "e", Value: "1e3"}},
		},
		{
			name: "null booleans and nesting",
			line: `{"n":null,"t":true,"f":false,"o":{"z": 1, "a": [1, 2]}}`,
			want: []table.Field{{Column: "n", Value: ""}, {Column: "t", Value: "True"}, {Column: "f", Value: "False"}, {Column: "o", Value: `{"z":1,"a":[1,2]}`}},
		},
		{
			name: "string escapes are decoded",
			line: `{"s":"line\nbreak é"}`,
			want: []table.Field{{Column: "s", Value: "line\nbreak é"}},
		},
		{
			name: "empty object",
			line: `{}`,
			want: nil,
		},
		{
			name: "scalar line goes to unnamed column",
			line: `42`,
			want: []table.Field{{Column: ScalarColumn, Value: "42"}},
		},
		{
			name: "array line goes to unnamed column",
			line: ` [1, "a"] `,
			want: []table.Field{{Column: ScalarColumn, Value: `[1,"a"]`}},
		},
		{
			name: "crlf line ending",
			line: "{\"x\":1}\r\n",
			want: []table.Field{{Column: "x", Value: "1"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeRecord([]byte(tt.line))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeRecordErrors(t *testing.T) {
	for _, line := range []string{
		`{"x":1`,
		`{"x":1} {"y":2}`,
		`{"x":1} trailing`,
		`{"x":1,}`,
		`not json`,
		`1 2`,
	} {
		t.Run(line, func(t *testing.T) {
			_, err := DecodeRecord([]byte(line))
			assert.Error(t, err)
		})
	}
}

func TestOutputName(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"data/a.json", "a.csv"},
		{"links.json", "links.csv"},
		{"/abs/dir.json/b.json", "b.csv"},
		{"a.json.bak", "a.csv.bak"},
		{"a.jsonl", "a.csvl"},
		{"x.json.json", "x.csv.csv"},
		{"notes.txt", "notes.txt"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, OutputName(tt.path))
		})
	}
}

func TestConvertFile(t *testing.T) {
	in := t.TempDir()
	out := t.TempDir()
	path := writeInput(t, in, "a.json", "{\"x\":1,\"y\":2}\n{\"x\":3}\n")

	res, err := ConvertFile(path, out)
	require.NoError(t, err)
	assert.Equal(t, types.FileResult{
		Source:  path,
		Output:  filepath.Join(out, "a.csv"),
		Rows:    2,
		Columns: 2,
	}, res)
	assert.Equal(t, "x,y\n1,2\n3,\n", readOutput(t, res.Output))
}

func TestConvertFileRowsMatchNonEmptyLines(t *testing.T) {
	in := t.TempDir()
	out := t.TempDir()
	content := "{\"a\":1}\n\n   \n{\"b\":\"two\"}\r\n\"scalar\"\n{\"a\":null}"
	path := writeInput(t, in, "mixed.json", content)

	res, err := ConvertFile(path, out)
	require.NoError(t, err)
	assert.Equal(t, 4, res.Rows)
	assert.Equal(t, "a,b,\n1,,\n,two,\n,,scalar\n,,\n", readOutput(t, res.Output))
}

func TestConvertFileEmptyInput(t *testing.T) {
	in := t.TempDir()
	out := t.TempDir()
	path := writeInput(t, in, "empty.json", "")

	res, err := ConvertFile(path, out)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Rows)
	assert.Equal(t, "\n", readOutput(t, res.Output))
}

func TestConvertFileParseError(t *testing.T) {
	in := t.TempDir()
	out := t.TempDir()
	path := writeInput(t, in, "bad.json", "{\"x\":1}\n{broken\n")

	_, err := ConvertFile(path, out)
	require.Error(t, err)
	assert.Equal(t, apperr.KindParse, apperr.KindOf(err))
	assert.Contains(t, err.Error(), "bad.json:2")

	_, statErr := os.Stat(filepath.Join(out, "bad.csv"))
	assert.True(t, os.IsNotExist(statErr), "no output for a file that failed to parse")
}

func TestConvertFileInvalidUTF8(t *testing.T) {
	in := t.TempDir()
	path := writeInput(t, in, "bin.json", "{\"x\":\"\xff\"}\n")

	_, err := ConvertFile(path, t.TempDir())
	require.Error(t, err)
	assert.Equal(t, apperr.KindParse, apperr.KindOf(err))
}

func TestConvertFileMissingInput(t *testing.T) {
	_, err := ConvertFile(filepath.Join(t.TempDir(), "nope.json"), t.TempDir())
	require.Error(t, err)
	assert.Equal(t, apperr.KindIO, apperr.KindOf(err))
}

func TestConvertGlob(t *testing.T) {
	in := t.TempDir()
	writeInput(t, in, "a.json", "{\"x\":1}\n")
	writeInput(t, in, "b.json", "{\"y\":2}\n{\"y\":3}\n")
	writeInput(t, in, "skip.txt", "not matched")

	out := filepath.Join(t.TempDir(), "nested", "out")
	var progress bytes.Buffer
	res, err := ConvertGlob(types.ConvertConfig{
		Pattern:   filepath.Join(in, "*.json"),
		OutputDir: out,
	}, &progress)
	require.NoError(t, err)

	assert.Equal(t, 2, res.Converted())
	assert.Equal(t, 3, res.Rows())
	assert.Equal(t, "x\n1\n", readOutput(t, filepath.Join(out, "a.csv")))
	assert.Equal(t, "y\n2\n3\n", readOutput(t, filepath.Join(out, "b.csv")))
	assert.NotEmpty(t, progress.String(), "progress bar should render")

	entries, err := os.ReadDir(out)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestConvertGlobQuiet(t *testing.T) {
	in := t.TempDir()
	writeInput(t, in, "a.json", "{\"x\":1}\n")

	var progress bytes.Buffer
	_, err := ConvertGlob(types.ConvertConfig{
		Pattern:   filepath.Join(in, "*.json"),
		OutputDir: t.TempDir(),
		Quiet:     true,
	}, &progress)
	require.NoError(t, err)
	assert.Empty(t, progress.String())
}

func TestConvertGlobNoMatches(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out")
	res, err := ConvertGlob(types.ConvertConfig{
		Pattern:   filepath.Join(t.TempDir(), "*.json"),
		OutputDir: out,
	}, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Converted())

	info, err := os.Stat(out)
	require.NoError(t, err, "output directory is created even with no matches")
	assert.True(t, info.IsDir())
}

func TestConvertGlobKeepsExistingOutput(t *testing.T) {
	in := t.TempDir()
	writeInput(t, in, "a.json", "{\"x\":1}\n")
	out := t.TempDir()
	writeInput(t, out, "keep.me", "existing")

	_, err := ConvertGlob(types.ConvertConfig{Pattern: filepath.Join(in, "*.json"), OutputDir: out}, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, "existing", readOutput(t, filepath.Join(out, "keep.me")))
}

func TestConvertGlobIdempotent(t *testing.T) {
	in := t.TempDir()
	writeInput(t, in, "a.json", "{\"b\":1,\"a\":[1,2]}\n{\"c\":\"x,y\"}\n")
	out := t.TempDir()
	cfg := types.ConvertConfig{Pattern: filepath.Join(in, "*.json"), OutputDir: out}

	_, err := ConvertGlob(cfg, io.Discard)
	require.NoError(t, err)
	first := readOutput(t, filepath.Join(out, "a.csv"))

	_, err = ConvertGlob(cfg, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, first, readOutput(t, filepath.Join(out, "a.csv")))
}

func TestConvertGlobStopsAtFirstFailure(t *testing.T) {
	in := t.TempDir()
	writeInput(t, in, "a.json", "{\"x\":1}\n")
	writeInput(t, in, "b.json", "oops\n")
	writeInput(t, in, "c.json", "{\"x\":3}\n")
	out := t.TempDir()

	res, err := ConvertGlob(types.ConvertConfig{Pattern: filepath.Join(in, "*.json"), OutputDir: out}, io.Discard)
	require.Error(t, err)
	assert.Equal(t, apperr.KindParse, apperr.KindOf(err))
	assert.True(t, strings.HasPrefix(err.Error(), "converting "))
	assert.Equal(t, 1, res.Converted())

	_, err = os.Stat(filepath.Join(out, "a.csv"))
	assert.NoError(t, err, "files converted before the failure remain")
	_, err = os.Stat(filepath.Join(out, "c.csv"))
	assert.True(t, os.IsNotExist(err), "files after the failure are not converted")
}

func TestConvertGlobBadPattern(t *testing.T) {
	_, err := ConvertGlob(types.ConvertConfig{Pattern: "[", OutputDir: t.TempDir()}, io.Discard)
	require.Error(t, err)
	assert.Equal(t, apperr.KindUsage, apperr.KindOf(err))
}

func TestConvertGlobOutputDirIsFile(t *testing.T) {
	dir := t.TempDir()
	blocker := writeInput(t, dir, "blocker", "file")

	_, err := ConvertGlob(types.ConvertConfig{Pattern: filepath.Join(dir, "*.json"), OutputDir: filepath.Join(blocker, "out")}, io.Discard)
	require.Error(t, err)
	assert.Equal(t, apperr.KindIO, apperr.KindOf(err))
}
