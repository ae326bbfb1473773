package config

import (
	"os"
	"time"
)

// Default values for configuration.
const (
	DefaultMaxFileSize     = 100 * 1024 * 1024
	DefaultMaxTextFileSize = 50 * 1024 * 1024
	DefaultFileTimeout     = 30 * time.Second
	DefaultBatchTimeout    = 60 * time.Second

	DefaultReportTitle       = "Evidence Timeline Report"
	DefaultReportDescription = "Generated timeline analysis of evidence events"
)

// Environment variable names.
const (
	EnvFileTimeout  = "CHRONOLOG_FILE_TIMEOUT"
	EnvBatchTimeout = "CHRONOLOG_BATCH_TIMEOUT"
)

// DefaultConfig returns a configuration with the standard limits and
// timeouts.
func DefaultConfig() *Config {
	return &Config{
		Limits: LimitsConfig{
			MaxFileSize:     DefaultMaxFileSize,
			MaxTextFileSize: DefaultMaxTextFileSize,
		},
		Timeouts: TimeoutsConfig{
			File:  DefaultFileTimeout,
			Batch: DefaultBatchTimeout,
		},
		Report: ReportConfig{
			Title:               DefaultReportTitle,
			Description:         DefaultReportDescription,
			IncludeMetadata:     true,
			IncludeDescriptions: true,
			IncludeTimestamps:   true,
			IncludeCategories:   true,
		},
	}
}

// applyEnvironmentOverrides applies environment variable overrides.
func (c *Config) applyEnvironmentOverrides() {
	if v := os.Getenv(EnvFileTimeout); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			c.Timeouts.File = d
		}
	}
	if v := os.Getenv(EnvBatchTimeout); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			c.Timeouts.Batch = d
		}
	}
}
