package parsers

import (
	"context"
	"fmt"
	"strings"

	"github.com/jonboulle/clockwork"

	"github.com/ccollicutt/chronolog/pkg/event"
	"github.com/ccollicutt/chronolog/pkg/evidence"
)

// CSVParser extracts one event per data row from a CSV file.
//
// The parsing is deliberately naive for compatibility: lines split on
// newlines, fields split on commas with a single surrounding quote stripped,
// no quoted-comma handling. Rows shorter than the header are skipped.
type CSVParser struct {
	clock clockwork.Clock
}

// NewCSV creates a CSV parser.
func NewCSV(clock clockwork.Clock) *CSVParser {
	return &CSVParser{clock: clock}
}

// Name returns the parser name.
func (p *CSVParser) Name() string { return "csv" }

// Parse produces one document event per data row. The first non-blank line
// is the header; timestamp and title columns are located by the ordered
// substring tables.
func (p *CSVParser) Parse(ctx context.Context, f evidence.File) ([]event.Event, error) {
	data, err := f.ReadAll(ctx)
	if err != nil {
		return nil, readError(ctx, f, err)
	}

	lines := nonBlankLines(string(data))
	if len(lines) == 0 {
		return nil, evidence.NewProcessError(evidence.KindParseFailure, f.Name,
			fmt.Sprintf("empty CSV file: %s", f.Name))
	}

	headers := splitFields(lines[0])
	for i, h := range headers {
		headers[i] = strings.ToLower(h)
	}

	timestampIndex := findColumn(headers, csvTimestampColumns)
	titleIndex := findColumn(headers, csvTitleColumns)

	var events []event.Event
	for i := 1; i < len(lines); i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		values := splitFields(lines[i])
		if len(values) < len(headers) {
			continue
		}

		timestamp := p.clock.Now()
		if timestampIndex >= 0 && values[timestampIndex] != "" {
			if parsed, ok := parseLoose(values[timestampIndex]); ok {
				timestamp = parsed
			}
		}

		title := fmt.Sprintf("CSV Row %d", i)
		if titleIndex >= 0 {
			title = values[titleIndex]
		}
		if title == "" {
			title = fmt.Sprintf("CSV Entry %d", i)
		}

		metadata := make(map[string]any, len(headers)+2)
		for idx, header := range headers {
			if idx < len(values) && values[idx] != "" {
				metadata[header] = values[idx]
			}
		}
		metadata["source"] = f.Name
		metadata["row"] = i

		events = append(events, event.Event{
			ID:          fmt.Sprintf("csv-%s-%d", f.Name, i),
			Title:       event.TruncateTitle(title),
			Timestamp:   millis(timestamp),
			Category:    event.CategoryDocument,
			Description: fmt.Sprintf("Imported from CSV: %s", f.Name),
			Metadata:    metadata,
		})
	}

	return events, nil
}

// splitFields splits a CSV line on commas, trimming whitespace and one
// leading and trailing quote per field.
func splitFields(line string) []string {
	fields := strings.Split(line, ",")
	for i, field := range fields {
		field = strings.TrimSpace(field)
		field = strings.TrimPrefix(field, `"`)
		field = strings.TrimSuffix(field, `"`)
		fields[i] = field
	}
	return fields
}
