// Package config provides configuration loading and validation for ChronoLog.
package config

import "time"

// Config is the root configuration structure loaded from YAML.
type Config struct {
	Limits   LimitsConfig   `yaml:"limits"`
	Timeouts TimeoutsConfig `yaml:"timeouts"`
	Report   ReportConfig   `yaml:"report"`
}

// LimitsConfig holds the admission size ceilings in bytes.
type LimitsConfig struct {
	// MaxFileSize is the absolute per-file ceiling.
	MaxFileSize int64 `yaml:"max_file_size"`

	// MaxTextFileSize is the ceiling for text formats (txt, log, csv,
	// json, eml, msg). Must not exceed MaxFileSize.
	MaxTextFileSize int64 `yaml:"max_text_file_size"`
}

// TimeoutsConfig holds the two processing deadlines.
type TimeoutsConfig struct {
	// File is the per-file processing ceiling.
	File time.Duration `yaml:"file"`

	// Batch is the whole-batch ceiling.
	Batch time.Duration `yaml:"batch"`
}

// ReportConfig controls export rendering.
type ReportConfig struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`

	IncludeMetadata     bool `yaml:"include_metadata"`
	IncludeDescriptions bool `yaml:"include_descriptions"`
	IncludeTimestamps   bool `yaml:"include_timestamps"`
	IncludeCategories   bool `yaml:"include_categories"`
}
