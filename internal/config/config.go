// Package config loads brigade configuration from a YAML file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/brigadehq/brigade/internal/chunker"
	"github.com/brigadehq/brigade/internal/executor"
)

// Analyzer selection values.
const (
	AnalyzerHeuristic = "heuristic"
	AnalyzerAI        = "ai"
)

// Config is the on-disk configuration for an analysis run.
type Config struct {
	// ChunkSizeBudget is the byte-size budget per chunk.
	ChunkSizeBudget int64 `yaml:"chunk_size_budget"`

	// ChunkFileBudget is the file-count budget per chunk.
	ChunkFileBudget int `yaml:"chunk_file_budget"`

	// Workers is the chunk worker pool size.
	Workers int `yaml:"workers"`

	// Analyzer selects the file analyzer: "heuristic" or "ai".
	Analyzer string `yaml:"analyzer"`

	// Model overrides the AI analyzer's model.
	Model string `yaml:"model,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		ChunkSizeBudget: chunker.DefaultSizeBudget,
		ChunkFileBudget: chunker.DefaultFileBudget,
		Workers:         executor.DefaultWorkers,
		Analyzer:        AnalyzerHeuristic,
	}
}

// LoadConfig reads and validates a YAML config file. Omitted fields
// keep their defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks the configuration for out-of-range values.
func (c *Config) Validate() error {
	if c.ChunkSizeBudget <= 0 {
		return fmt.Errorf("chunk_size_budget must be positive, got %d", c.ChunkSizeBudget)
	}
	if c.ChunkFileBudget <= 0 {
		return fmt.Errorf("chunk_file_budget must be positive, got %d", c.ChunkFileBudget)
	}
	if c.Workers <= 0 {
		return fmt.Errorf("workers must be positive, got %d", c.Workers)
	}
	if c.Analyzer != AnalyzerHeuristic && c.Analyzer != AnalyzerAI {
		return fmt.Errorf("unknown analyzer %q (want %q or %q)", c.Analyzer, AnalyzerHeuristic, AnalyzerAI)
	}
	return nil
}

// SaveDefaultConfig writes the default configuration to a file.
func SaveDefaultConfig(path string) error {
	data, err := yaml.Marshal(DefaultConfig())
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
