package export

import (
	"context"
	"encoding/json"
	"io"
	"time"

	"github.com/ccollicutt/chronolog/pkg/event"
)

// JSONFormatter renders the report as indented JSON: a metadata header
// followed by the projected events.
type JSONFormatter struct {
	opts Options
}

// NewJSONFormatter creates a JSON formatter with the given options.
func NewJSONFormatter(opts Options) *JSONFormatter {
	return &JSONFormatter{opts: opts}
}

// Name returns the format name.
func (f *JSONFormatter) Name() string {
	return "json"
}

type jsonMetadata struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	ExportDate  string `json:"exportDate"`
	TotalEvents int    `json:"totalEvents"`
	Filter      string `json:"filter"`
	TimeRange   string `json:"timeRange"`
}

type jsonPayload struct {
	Metadata jsonMetadata     `json:"metadata"`
	Events   []map[string]any `json:"events"`
}

// Format renders the report as JSON.
func (f *JSONFormatter) Format(ctx context.Context, report *Report, w io.Writer) error {
	payload := jsonPayload{
		Metadata: jsonMetadata{
			Title:       f.opts.Title,
			Description: f.opts.Description,
			ExportDate:  report.ExportedAt.UTC().Format(time.RFC3339),
			TotalEvents: len(report.Events),
			Filter:      report.Filter,
			TimeRange:   report.TimeRange,
		},
		Events: make([]map[string]any, 0, len(report.Events)),
	}

	for i := range report.Events {
		payload.Events = append(payload.Events, f.projectEvent(&report.Events[i]))
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(payload)
}

// projectEvent applies the include options to one event.
func (f *JSONFormatter) projectEvent(e *event.Event) map[string]any {
	projected := map[string]any{
		"id":        e.ID,
		"title":     e.Title,
		"timestamp": e.Timestamp,
		"category":  e.Category,
	}
	if f.opts.IncludeDescriptions {
		projected["description"] = e.Description
	}
	if f.opts.IncludeMetadata {
		projected["metadata"] = e.Metadata
	}
	return projected
}
