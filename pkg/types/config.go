package types

// ConvertConfig holds settings for a conversion run.
type ConvertConfig struct {
	// Pattern is the glob matching the JSONL input files (non-recursive).
	Pattern string `json:"pattern" yaml:"pattern"`

	// OutputDir receives one CSV per input file. It is created if missing
	// and reused without clearing if present.
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// Quiet disables the progress bar.
	Quiet bool `json:"quiet" yaml:"quiet"`

	// PostProcess runs the post-processing manifest after conversion.
	PostProcess PostProcessConfig `json:"postprocess" yaml:"postprocess"`
}

// PostProcessConfig controls the optional step that reshapes converted CSVs.
type PostProcessConfig struct {
	// Enabled turns post-processing on.
	Enabled bool `json:"enabled" yaml:"enabled"`

	// ManifestPath is an optional YAML manifest. When empty the built-in
	// DrugBank manifest is used.
	ManifestPath string `json:"manifest" yaml:"manifest"`
}

// LoadConfig holds settings for loading CSV tables into SQLite.
type LoadConfig struct {
	// Pattern is the glob matching the CSV files to load.
	Pattern string `json:"pattern" yaml:"pattern"`

	// DatabasePath is the SQLite file to create or update.
	DatabasePath string `json:"database" yaml:"database"`
}

// ParseConfig holds settings for splitting a DrugBank XML export into JSONL
// tables.
type ParseConfig struct {
	// Path is the DrugBank XML file.
	Path string `json:"path" yaml:"path"`

	// OutputDir receives one <table>.json file per table. It is created if
	// missing, and existing table files are replaced.
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// Quiet disables the progress bar.
	Quiet bool `json:"quiet" yaml:"quiet"`
}
