// Package config provides configuration loading for the featurize tool.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the complete featurize configuration.
type Config struct {
	Log      LogConfig      `yaml:"log"`
	Extract  ExtractConfig  `yaml:"extract"`
	Evaluate EvaluateConfig `yaml:"evaluate"`
	Cache    CacheConfig    `yaml:"cache"`
	Metrics  MetricsConfig  `yaml:"metrics"`
}

// LogConfig configures logging.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level"`
}

// ExtractConfig configures position extraction.
type ExtractConfig struct {
	// MinRating is the lowest rating of either player kept from club exports.
	MinRating int `yaml:"min_rating"`
	// MinTimeControl is the lowest base clock in seconds kept from club exports.
	MinTimeControl int `yaml:"min_time_control"`
	// MinMoveNumber drops earlier positions of club games.
	MinMoveNumber int `yaml:"min_move_number"`
	// MaxGames limits the games read (0 = all).
	MaxGames int `yaml:"max_games"`
	// Format is csv or parquet; empty infers it from the output path.
	Format string `yaml:"format"`
}

// EvaluateConfig configures feature evaluation of a positions file.
type EvaluateConfig struct {
	FENColumn    string `yaml:"fen_column"`
	SideColumn   string `yaml:"side_column"`
	ResultColumn string `yaml:"result_column"`
	// MaxRows limits the rows read (0 = all).
	MaxRows int `yaml:"max_rows"`
	// Workers is the number of feature goroutines (0 = GOMAXPROCS).
	Workers int    `yaml:"workers"`
	Format  string `yaml:"format"`
}

// CacheConfig configures the persistent feature cache.
type CacheConfig struct {
	Enabled bool   `yaml:"enabled"`
	Dir     string `yaml:"dir"`
}

// MetricsConfig configures the metrics textfile.
type MetricsConfig struct {
	// Textfile is written at the end of a run when set.
	Textfile string `yaml:"textfile"`
}

// DefaultConfig returns a Config with the stock filters and columns.
func DefaultConfig() *Config {
	return &Config{
		Log: LogConfig{Level: "info"},
		Extract: ExtractConfig{
			MinRating:      1700,
			MinTimeControl: 600,
			MinMoveNumber:  11,
		},
		Evaluate: EvaluateConfig{
			FENColumn:    "fen",
			SideColumn:   "side_to_move",
			ResultColumn: "result",
		},
		Cache: CacheConfig{
			Enabled: false,
			Dir:     ".featurize-cache",
		},
	}
}

var logLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

var formats = map[string]bool{"": true, "csv": true, "parquet": true}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if !logLevels[strings.ToLower(c.Log.Level)] {
		return fmt.Errorf("log.level must be one of debug, info, warn, error; got %q", c.Log.Level)
	}
	if c.Extract.MinRating < 0 || c.Extract.MinTimeControl < 0 || c.Extract.MinMoveNumber < 0 {
		return fmt.Errorf("extract filters must not be negative")
	}
	if c.Extract.MaxGames < 0 {
		return fmt.Errorf("extract.max_games must not be negative")
	}
	if !formats[strings.ToLower(c.Extract.Format)] {
		return fmt.Errorf("extract.format must be csv or parquet; got %q", c.Extract.Format)
	}
	if !formats[strings.ToLower(c.Evaluate.Format)] {
		return fmt.Errorf("evaluate.format must be csv or parquet; got %q", c.Evaluate.Format)
	}
	if c.Evaluate.FENColumn == "" || c.Evaluate.SideColumn == "" {
		return fmt.Errorf("evaluate.fen_column and evaluate.side_column are required")
	}
	if c.Evaluate.MaxRows < 0 || c.Evaluate.Workers < 0 {
		return fmt.Errorf("evaluate.max_rows and evaluate.workers must not be negative")
	}
	if c.Cache.Enabled && c.Cache.Dir == "" {
		return fmt.Errorf("cache.dir is required when the cache is enabled")
	}
	return nil
}

// Load returns the defaults overlaid with the file at path, if any, validated.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		var err error
		if cfg, err = LoadFromFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadFromFile loads configuration from a YAML file over the defaults.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg, nil
}

// SaveToFile writes the configuration as YAML.
func (c *Config) SaveToFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
