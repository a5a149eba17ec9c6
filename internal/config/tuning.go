// Package config loads optional JSON tuning files for the extraction
// pipeline. Fields omitted from the file keep their defaults, so partial
// configs are safe.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// TuningConfig holds the tunable policy parameters of the pipeline.
// Pointer fields distinguish "not set" from an explicit zero.
type TuningConfig struct {
	// Tracing params
	GapLimit *float64 `json:"gap_limit,omitempty"`
	Divider  *int     `json:"divider,omitempty"`

	// Morphology params
	CloseIterations *int `json:"close_iterations,omitempty"`

	// Execution params
	Workers *int `json:"workers,omitempty"`
}

// EmptyTuningConfig returns a TuningConfig with all fields unset.
func EmptyTuningConfig() *TuningConfig {
	return &TuningConfig{}
}

// LoadTuningConfig loads a TuningConfig from a JSON file. The file must
// have a .json extension and stay under the size cap.
func LoadTuningConfig(path string) (*TuningConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := EmptyTuningConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that the configured values are usable.
func (c *TuningConfig) Validate() error {
	if c.GapLimit != nil && *c.GapLimit <= 0 {
		return fmt.Errorf("gap_limit must be positive, got %f", *c.GapLimit)
	}
	if c.Divider != nil && *c.Divider < 1 {
		return fmt.Errorf("divider must be at least 1, got %d", *c.Divider)
	}
	if c.CloseIterations != nil && *c.CloseIterations < 0 {
		return fmt.Errorf("close_iterations must not be negative, got %d", *c.CloseIterations)
	}
	if c.Workers != nil && *c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", *c.Workers)
	}
	return nil
}
