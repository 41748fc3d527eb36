// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert turns line-delimited JSON files into CSV files, one output
// per input, with the column set taken from the union of the record keys.
package convert

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/json2csv/internal/apperr"
	"github.com/pdiddy/json2csv/pkg/types"
)

// OutputName returns the CSV file name for a JSONL input path: the base name
// with every ".json" substring replaced by ".csv". The replacement is not
// anchored to the suffix, so "a.json.bak" becomes "a.csv.bak".
func OutputName(path string) string {
	return strings.ReplaceAll(filepath.Base(path), ".json", ".csv")
}

// ConvertFile converts the JSONL file at path into outputDir/OutputName(path).
// It does not create outputDir.
func ConvertFile(path, outputDir string) (types.FileResult, error) {
	tbl, err := ReadTable(path)
	if err != nil {
		return types.FileResult{}, err
	}

	out := filepath.Join(outputDir, OutputName(path))
	if err := tbl.WriteFile(out); err != nil {
		return types.FileResult{}, apperr.IO("writing", out, err)
	}

	return types.FileResult{
		Source:  path,
		Output:  out,
		Rows:    len(tbl.Rows),
		Columns: len(tbl.Columns),
	}, nil
}

// ConvertGlob converts every file matched by cfg.Pattern into cfg.OutputDir,
// creating the directory if needed. Zero matches is not an error. The run
// stops at the first failing file; files written before it stay on disk.
// Progress is drawn on w unless cfg.Quiet is set.
func ConvertGlob(cfg types.ConvertConfig, w io.Writer) (types.BatchResult, error) {
	var result types.BatchResult

	files, err := filepath.Glob(cfg.Pattern)
	if err != nil {
		return result, apperr.Usage("invalid glob pattern %q: %v", cfg.Pattern, err)
	}

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return result, apperr.IO("creating output directory", cfg.OutputDir, err)
	}

	if len(files) == 0 {
		return result, nil
	}

	if cfg.Quiet {
		w = io.Discard
	}
	bar := newProgress(len(files), w)

	for _, path := range files {
		bar.Describe("converting " + filepath.Base(path))
		fr, err := ConvertFile(path, cfg.OutputDir)
		if err != nil {
			bar.Exit()
			return result, fmt.Errorf("converting %s: %w", path, err)
		}
		result.Files = append(result.Files, fr)
		bar.Add(1)
	}
	bar.Finish()

	return result, nil
}
