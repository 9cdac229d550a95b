package labelclean

// RawRecord is a single input row.
type RawRecord struct {
	Index int    `json:"index"`
	Text  string `json:"rawText"`
}

// ResultRecord pairs the fingerprint key of a row with its canonical value.
// Resolved is false when the key is not present in the canonical table, in
// which case Cleaned is empty.
type ResultRecord struct {
	Key      string `json:"key"`
	Cleaned  string `json:"cleanedText,omitempty"`
	Resolved bool   `json:"resolved"`
}

// Value returns the canonical value and whether it was found.
func (r ResultRecord) Value() (string, bool) {
	return r.Cleaned, r.Resolved
}

// LogConfig selects logger level and output format. File, when set, also
// receives every log line.
type LogConfig struct {
	Level  string `json:"level" toml:"level" yaml:"level"`
	Format string `json:"format" toml:"format" yaml:"format"`
	File   string `json:"file,omitempty" toml:"file,omitempty" yaml:"file,omitempty"`
}

// Config aggregates runtime settings persisted to config.json (or a TOML or
// YAML file).
type Config struct {
	InputPath         string    `json:"inputPath" toml:"input_path" yaml:"input_path"`
	KeyOutputPath     string    `json:"keyOutputPath" toml:"key_output_path" yaml:"key_output_path"`
	CleanedOutputPath string    `json:"cleanedOutputPath" toml:"cleaned_output_path" yaml:"cleaned_output_path"`
	TextColumn        string    `json:"textColumn" toml:"text_column" yaml:"text_column"`
	Encoding          string    `json:"encoding" toml:"encoding" yaml:"encoding"`
	Workers           int       `json:"workers" toml:"workers" yaml:"workers"`
	Log               LogConfig `json:"log" toml:"log" yaml:"log"`

	// ColumnCandidates replaces the header names tried when TextColumn is
	// empty. Nil keeps the built-in list.
	ColumnCandidates []string `json:"columnCandidates,omitempty" toml:"column_candidates,omitempty" yaml:"column_candidates,omitempty"`
}

const (
	// DefaultInputPath is the input file read when none is configured.
	DefaultInputPath = "files/input.txt"
	// DefaultKeyOutputPath receives the "key" column.
	DefaultKeyOutputPath = "files/test.csv"
	// DefaultCleanedOutputPath receives the "cleaned_text" column.
	DefaultCleanedOutputPath = "files/output.txt"
	// DefaultWorkers bounds the goroutines used by Service.CleanAll.
	DefaultWorkers = 4
)

// DefaultConfig returns a configuration with every default applied.
func DefaultConfig() Config {
	var cfg Config
	cfg.ApplyDefaults()
	return cfg
}

// ApplyDefaults populates zero values with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.InputPath == "" {
		c.InputPath = DefaultInputPath
	}
	if c.KeyOutputPath == "" {
		c.KeyOutputPath = DefaultKeyOutputPath
	}
	if c.CleanedOutputPath == "" {
		c.CleanedOutputPath = DefaultCleanedOutputPath
	}
	if c.Encoding == "" {
		c.Encoding = "utf-8"
	}
	if c.Workers <= 0 {
		c.Workers = DefaultWorkers
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "console"
	}
}
