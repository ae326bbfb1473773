package config

import (
	"context"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ccollicutt/chronolog/pkg/evidence"
	"github.com/ccollicutt/chronolog/pkg/export"
)

// Load reads and validates a configuration file. Values not present in the
// file keep their defaults.
func Load(_ context.Context, path string) (*Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided config path is expected
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.applyEnvironmentOverrides()

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// Validate checks a configuration for errors.
func Validate(cfg *Config) error {
	if cfg.Limits.MaxFileSize <= 0 {
		return errors.New("limits: max_file_size must be positive")
	}
	if cfg.Limits.MaxTextFileSize <= 0 {
		return errors.New("limits: max_text_file_size must be positive")
	}
	if cfg.Limits.MaxTextFileSize > cfg.Limits.MaxFileSize {
		return fmt.Errorf("limits: max_text_file_size (%d) exceeds max_file_size (%d)",
			cfg.Limits.MaxTextFileSize, cfg.Limits.MaxFileSize)
	}

	if cfg.Timeouts.File <= 0 {
		return errors.New("timeouts: file must be positive")
	}
	if cfg.Timeouts.Batch <= 0 {
		return errors.New("timeouts: batch must be positive")
	}

	if cfg.Report.Title == "" {
		return errors.New("report: title is required")
	}

	return nil
}

// EvidenceLimits converts the configured ceilings for the validator.
func (c *Config) EvidenceLimits() evidence.Limits {
	return evidence.Limits{
		MaxFileSize:     c.Limits.MaxFileSize,
		MaxTextFileSize: c.Limits.MaxTextFileSize,
	}
}

// ExportOptions converts the report settings for the formatters.
func (c *Config) ExportOptions() export.Options {
	return export.Options{
		IncludeMetadata:     c.Report.IncludeMetadata,
		IncludeDescriptions: c.Report.IncludeDescriptions,
		IncludeTimestamps:   c.Report.IncludeTimestamps,
		IncludeCategories:   c.Report.IncludeCategories,
		Title:               c.Report.Title,
		Description:         c.Report.Description,
	}
}
