// Package export renders merged timelines as JSON, CSV, or HTML reports.
package export

import (
	"context"
	"fmt"
	"io"
)

// Formatter renders a timeline report in a specific format.
type Formatter interface {
	// Format renders the report to the given writer.
	Format(ctx context.Context, report *Report, w io.Writer) error

	// Name returns the format name (json, csv, html).
	Name() string
}

// Options controls what each event projection includes.
type Options struct {
	// IncludeMetadata adds the open metadata mapping to each event.
	IncludeMetadata bool

	// IncludeDescriptions adds the free-text description.
	IncludeDescriptions bool

	// IncludeTimestamps adds the date/time columns (CSV only; JSON and
	// HTML always carry the timestamp).
	IncludeTimestamps bool

	// IncludeCategories adds the category column (CSV only).
	IncludeCategories bool

	// Title and Description head the report.
	Title       string
	Description string
}

// DefaultOptions returns the standard report options.
func DefaultOptions() Options {
	return Options{
		IncludeMetadata:     true,
		IncludeDescriptions: true,
		IncludeTimestamps:   true,
		IncludeCategories:   true,
		Title:               "Evidence Timeline Report",
		Description:         "Generated timeline analysis of evidence events",
	}
}

// New creates a formatter by name. The HTML report is print-styled, so PDF
// output is a matter of printing it.
func New(format string, opts Options) (Formatter, error) {
	switch format {
	case "json":
		return NewJSONFormatter(opts), nil
	case "csv":
		return NewCSVFormatter(opts), nil
	case "html":
		return NewHTMLFormatter(opts), nil
	default:
		return nil, fmt.Errorf("unknown export format %q (use json, csv, or html)", format)
	}
}
