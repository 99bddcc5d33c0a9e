package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/pelletier/go-toml/v2"
)

// Thresholds holds the per-algorithm acceptance cutoffs. Each value is a
// similarity in [0, 1]; the regex threshold is vacuous for a boolean score.
type Thresholds struct {
	Levenshtein float64 `toml:"levenshtein"`
	Jaccard     float64 `toml:"jaccard"`
	Dice        float64 `toml:"dice"`
	Ngram       float64 `toml:"ngram"`
	Regex       float64 `toml:"regex"`
	Tfidf       float64 `toml:"tfidf"`
}

// DefaultThresholds returns the standard cutoffs.
func DefaultThresholds() Thresholds {
	return Thresholds{
		Levenshtein: 0.8,
		Jaccard:     0.5,
		Dice:        0.5,
		Ngram:       0.5,
		Regex:       0.5,
		Tfidf:       0.5,
	}
}

// For returns the threshold for the named algorithm, falling back to 0.5.
func (t Thresholds) For(name string) float64 {
	switch name {
	case "levenshtein":
		return t.Levenshtein
	case "jaccard":
		return t.Jaccard
	case "dice":
		return t.Dice
	case "ngram":
		return t.Ngram
	case "regex":
		return t.Regex
	case "tfidf":
		return t.Tfidf
	default:
		return 0.5
	}
}

// Unit is one (file, columns) unit of matching work.
type Unit struct {
	File    string   `toml:"file"`
	Columns []string `toml:"columns"`
}

// Config is the process-wide configuration, loaded from an optional TOML
// file with environment overrides on top.
type Config struct {
	DataDir          string     `toml:"data_dir"`
	Workers          int        `toml:"workers"`
	Debug            bool       `toml:"debug"`
	ReferenceTable   string     `toml:"reference_table"`
	ReferenceColumns []string   `toml:"reference_columns"`
	Thresholds       Thresholds `toml:"thresholds"`
	Match            []Unit     `toml:"match"`
}

// DefaultWorkers is min(32, available parallelism + 4).
func DefaultWorkers() int {
	workers := runtime.NumCPU() + 4
	if workers > 32 {
		workers = 32
	}
	return workers
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		DataDir:          "data",
		Workers:          DefaultWorkers(),
		ReferenceTable:   "reference_records",
		ReferenceColumns: []string{"STREET_NAME", "STREET_NO", "FIRSTNAME", "LASTNAME"},
		Thresholds:       DefaultThresholds(),
	}
}

// Load reads the TOML configuration at path (missing file is not an error)
// and applies MATCHER_* environment overrides.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := toml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing config %s: %w", path, err)
			}
		case !os.IsNotExist(err):
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	cfg.DataDir = GetEnv("MATCHER_DATA_DIR", cfg.DataDir)
	cfg.Workers = GetEnvInt("MATCHER_WORKERS", cfg.Workers)
	cfg.Debug = GetEnvBool("MATCHER_DEBUG", cfg.Debug)
	cfg.ReferenceTable = GetEnv("MATCHER_REFERENCE_TABLE", cfg.ReferenceTable)

	if cfg.Workers <= 0 {
		cfg.Workers = DefaultWorkers()
	}
	return cfg, nil
}

// RawDir is where query input files live.
func (c *Config) RawDir() string { return filepath.Join(c.DataDir, "input", "raw") }

// ValidationDir is where result tables await human validation.
func (c *Config) ValidationDir() string { return filepath.Join(c.DataDir, "await_validation") }

// StoreDir is where the run store keeps its database.
func (c *Config) StoreDir() string { return filepath.Join(c.DataDir, "store") }

// ConfusionMatrixDir is where evaluation confusion matrices are written.
func (c *Config) ConfusionMatrixDir() string { return filepath.Join(c.DataDir, "confusion_matrices") }
