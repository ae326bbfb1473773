package export

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"
)

// CSVFormatter renders the report as quoted CSV rows, one per event.
type CSVFormatter struct {
	opts Options
}

// NewCSVFormatter creates a CSV formatter with the given options.
func NewCSVFormatter(opts Options) *CSVFormatter {
	return &CSVFormatter{opts: opts}
}

// Name returns the format name.
func (f *CSVFormatter) Name() string {
	return "csv"
}

// Format renders the report as CSV.
func (f *CSVFormatter) Format(ctx context.Context, report *Report, w io.Writer) error {
	writer := csv.NewWriter(w)

	headers := []string{"ID", "Title"}
	if f.opts.IncludeTimestamps {
		headers = append(headers, "Timestamp", "Date", "Time")
	}
	if f.opts.IncludeCategories {
		headers = append(headers, "Category")
	}
	if f.opts.IncludeDescriptions {
		headers = append(headers, "Description")
	}
	if f.opts.IncludeMetadata {
		headers = append(headers, "Metadata")
	}

	if err := writer.Write(headers); err != nil {
		return err
	}

	for i := range report.Events {
		if err := ctx.Err(); err != nil {
			return err
		}

		e := &report.Events[i]
		row := []string{e.ID, e.Title}
		if f.opts.IncludeTimestamps {
			ts := e.Time().UTC()
			row = append(row,
				strconv.FormatInt(e.Timestamp, 10),
				ts.Format("2006-01-02"),
				ts.Format("15:04:05"),
			)
		}
		if f.opts.IncludeCategories {
			row = append(row, string(e.Category))
		}
		if f.opts.IncludeDescriptions {
			row = append(row, e.Description)
		}
		if f.opts.IncludeMetadata {
			metadata, err := json.Marshal(e.Metadata)
			if err != nil {
				return err
			}
			row = append(row, string(metadata))
		}

		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}
