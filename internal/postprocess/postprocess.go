// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package postprocess reshapes converted CSV tables: it projects columns,
// reduces URLs to their host, trims names, and deduplicates rows by a key.
// The files it reads and writes are named by a Manifest.
package postprocess

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/pdiddy/json2csv/internal/apperr"
	"github.com/pdiddy/json2csv/internal/table"
	"github.com/pdiddy/json2csv/pkg/types"
)

// Apply runs the transformations of s on tbl and returns the resulting table.
func (s Step) Apply(tbl *table.Table) (*table.Table, error) {
	out, err := tbl.Project(s.Columns...)
	if err != nil {
		return nil, err
	}
	for _, c := range s.URLColumns {
		if err := out.MapColumn(c, Netloc); err != nil {
			return nil, err
		}
	}
	for _, c := range s.TrimColumns {
		if err := out.MapColumn(c, strings.TrimSpace); err != nil {
			return nil, err
		}
	}
	if err := out.DedupeBy(s.KeyColumn()); err != nil {
		return nil, err
	}
	return out, nil
}

// RunStep reads dir/s.Source, applies s, and writes dir/s.Output.
func RunStep(s Step, dir string) (types.StepResult, error) {
	src := filepath.Join(dir, s.Source)
	tbl, err := table.ReadFile(src)
	if err != nil {
		var perr *csv.ParseError
		if errors.As(err, &perr) {
			return types.StepResult{}, apperr.Parse(src, perr.Line, perr.Err)
		}
		return types.StepResult{}, apperr.IO("reading", src, err)
	}

	out, err := s.Apply(tbl)
	if err != nil {
		return types.StepResult{}, apperr.Parse(src, 0, err)
	}

	dst := filepath.Join(dir, s.Output)
	if err := out.WriteFile(dst); err != nil {
		return types.StepResult{}, apperr.IO("writing", dst, err)
	}

	return types.StepResult{Source: src, Output: dst, Rows: len(out.Rows)}, nil
}

// Run executes the manifest steps in order against dir, printing one status
// line per step to w. The first failing step aborts the remaining ones.
func Run(m Manifest, dir string, w io.Writer) ([]types.StepResult, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}

	var results []types.StepResult
	for _, s := range m.Steps {
		res, err := RunStep(s, dir)
		if err != nil {
			fmt.Fprintf(w, "failed:    %s (%v)\n", s.Source, err)
			return results, fmt.Errorf("post-processing %s: %w", s.Source, err)
		}
		fmt.Fprintf(w, "processed: %s -> %s (%d rows)\n", s.Source, s.Output, res.Rows)
		results = append(results, res)
	}
	return results, nil
}
