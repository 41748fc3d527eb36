// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package postprocess

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/json2csv/internal/apperr"
)

// Step reshapes one converted CSV into a new file in the same directory.
type Step struct {
	// Source is the CSV file name to read, relative to the output directory.
	Source string `yaml:"source"`

	// Columns is the projection, in output order.
	Columns []string `yaml:"columns"`

	// URLColumns are reduced to their network location (host[:port]).
	URLColumns []string `yaml:"url_columns,omitempty"`

	// TrimColumns have surrounding whitespace removed.
	TrimColumns []string `yaml:"trim_columns,omitempty"`

	// Key is the column rows are deduplicated on. Defaults to Columns[0].
	Key string `yaml:"key,omitempty"`

	// Output is the CSV file name to write, relative to the output directory.
	Output string `yaml:"output"`
}

// KeyColumn returns the deduplication column.
func (s Step) KeyColumn() string {
	if s.Key != "" {
		return s.Key
	}
	if len(s.Columns) > 0 {
		return s.Columns[0]
	}
	return ""
}

// Manifest lists the post-processing steps and the files they expect.
type Manifest struct {
	Steps []Step `yaml:"steps"`
}

// Sources returns the file names the manifest expects the converter to have
// produced, in step order.
func (m Manifest) Sources() []string {
	out := make([]string, len(m.Steps))
	for i, s := range m.Steps {
		out[i] = s.Source
	}
	return out
}

// DrugBankManifest returns the steps for the CSV tables produced from the
// DrugBank JSONL export: external link, link, external identifier, organism,
// and packager resources.
func DrugBankManifest() Manifest {
	return Manifest{Steps: []Step{
		{
			Source:     "external_links.csv",
			Columns:    []string{"resource", "url"},
			URLColumns: []string{"url"},
			Output:     "external_links_resources.csv",
		},
		{
			Source:     "links.csv",
			Columns:    []string{"title", "url"},
			URLColumns: []string{"url"},
			Output:     "links_resources.csv",
		},
		{
			Source:  "external_identifiers.csv",
			Columns: []string{"resource"},
			Output:  "external_identifiers_resources.csv",
		},
		{
			Source:      "organisms.csv",
			Columns:     []string{"organism"},
			TrimColumns: []string{"organism"},
			Output:      "organisms_unique.csv",
		},
		{
			Source:     "packagers.csv",
			Columns:    []string{"name", "url"},
			URLColumns: []string{"url"},
			Output:     "packagers_resources.csv",
		},
	}}
}

// LoadManifest reads a YAML manifest from path and validates it.
func LoadManifest(path string) (Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, apperr.IO("reading manifest", path, err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return Manifest{}, apperr.Parse(path, 0, err)
	}
	if err := m.Validate(); err != nil {
		return Manifest{}, fmt.Errorf("manifest %s: %w", path, err)
	}
	return m, nil
}

// Validate checks that every step is complete and self-consistent, and that
// no step writes a file another step reads or writes.
func (m Manifest) Validate() error {
	if len(m.Steps) == 0 {
		return apperr.Usage("manifest has no steps")
	}

	sources := m.Sources()
	outputs := make(map[string]int, len(m.Steps))
	var errs []error
	for i, s := range m.Steps {
		n := i + 1
		if s.Source == "" {
			errs = append(errs, fmt.Errorf("step %d: source is required", n))
		}
		if s.Output == "" {
			errs = append(errs, fmt.Errorf("step %d: output is required", n))
		}
		if len(s.Columns) == 0 {
			errs = append(errs, fmt.Errorf("step %d: at least one column is required", n))
		}
		for _, c := range s.URLColumns {
			if !slices.Contains(s.Columns, c) {
				errs = append(errs, fmt.Errorf("step %d: url column %q is not projected", n, c))
			}
		}
		for _, c := range s.TrimColumns {
			if !slices.Contains(s.Columns, c) {
				errs = append(errs, fmt.Errorf("step %d: trim column %q is not projected", n, c))
			}
		}
		if s.Key != "" && !slices.Contains(s.Columns, s.Key) {
			errs = append(errs, fmt.Errorf("step %d: key %q is not projected", n, s.Key))
		}
		if s.Output == "" {
			continue
		}
		if prev, ok := outputs[s.Output]; ok {
			errs = append(errs, fmt.Errorf("step %d: output %q already written by step %d", n, s.Output, prev))
		}
		outputs[s.Output] = n
		if slices.Contains(sources, s.Output) {
			errs = append(errs, fmt.Errorf("step %d: output %q overwrites a source", n, s.Output))
		}
	}

	if len(errs) > 0 {
		return &apperr.Error{Kind: apperr.KindUsage, Op: "invalid manifest", Err: errors.Join(errs...)}
	}
	return nil
}
