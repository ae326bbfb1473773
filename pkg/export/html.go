package export

import (
	"context"
	"fmt"
	"html/template"
	"io"
	"sort"

	"github.com/ccollicutt/chronolog/pkg/event"
)

// sortedKeys returns the metadata keys in stable order for rendering.
func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// HTMLFormatter renders the report as a standalone HTML document with print
// styling, suitable for printing to PDF.
type HTMLFormatter struct {
	opts Options
	tmpl *template.Template
}

// NewHTMLFormatter creates an HTML formatter with the given options.
func NewHTMLFormatter(opts Options) *HTMLFormatter {
	return &HTMLFormatter{
		opts: opts,
		tmpl: template.Must(template.New("report").Parse(reportTemplate)),
	}
}

// Name returns the format name.
func (f *HTMLFormatter) Name() string {
	return "html"
}

type htmlEvent struct {
	Title       string
	Category    event.Category
	Timestamp   string
	Description string
	Metadata    []htmlMetadataPair
}

type htmlMetadataPair struct {
	Key   string
	Value string
}

type htmlReport struct {
	Title       string
	Description string
	TotalEvents int
	ExportDate  string
	Filter      string
	TimeRange   string
	Events      []htmlEvent
}

// Format renders the report as HTML.
func (f *HTMLFormatter) Format(ctx context.Context, report *Report, w io.Writer) error {
	data := htmlReport{
		Title:       f.opts.Title,
		Description: f.opts.Description,
		TotalEvents: len(report.Events),
		ExportDate:  report.ExportedAt.UTC().Format("2006-01-02 15:04:05"),
		Filter:      report.FilterLabel(),
		TimeRange:   report.TimeRangeLabel(),
	}

	for i := range report.Events {
		if err := ctx.Err(); err != nil {
			return err
		}
		data.Events = append(data.Events, f.projectEvent(&report.Events[i]))
	}

	return f.tmpl.Execute(w, data)
}

func (f *HTMLFormatter) projectEvent(e *event.Event) htmlEvent {
	he := htmlEvent{
		Title:     e.Title,
		Category:  e.Category,
		Timestamp: e.Time().UTC().Format("2006-01-02 15:04:05"),
	}
	if f.opts.IncludeDescriptions {
		he.Description = e.Description
	}
	if f.opts.IncludeMetadata {
		for _, k := range sortedKeys(e.Metadata) {
			he.Metadata = append(he.Metadata, htmlMetadataPair{
				Key:   k,
				Value: fmt.Sprintf("%v", e.Metadata[k]),
			})
		}
	}
	return he
}

const reportTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{.Title}}</title>
    <style>
        body {
            font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif;
            line-height: 1.6;
            color: #333;
            max-width: 1200px;
            margin: 0 auto;
            padding: 20px;
            background: #f8f9fa;
        }
        .header {
            background: #fff;
            padding: 30px;
            border-radius: 8px;
            box-shadow: 0 2px 4px rgba(0,0,0,0.1);
            margin-bottom: 30px;
        }
        .header h1 { color: #1e40af; margin: 0 0 10px 0; font-size: 2.5em; }
        .header p { color: #6b7280; margin: 0; font-size: 1.1em; }
        .metadata {
            background: #fff;
            padding: 20px;
            border-radius: 8px;
            box-shadow: 0 2px 4px rgba(0,0,0,0.1);
            margin-bottom: 30px;
            display: grid;
            grid-template-columns: repeat(auto-fit, minmax(200px, 1fr));
            gap: 15px;
        }
        .metadata-item { display: flex; flex-direction: column; }
        .metadata-label {
            font-weight: 600;
            color: #374151;
            font-size: 0.9em;
            text-transform: uppercase;
            letter-spacing: 0.5px;
        }
        .metadata-value { color: #1f2937; font-size: 1.1em; margin-top: 5px; }
        .timeline {
            background: #fff;
            border-radius: 8px;
            box-shadow: 0 2px 4px rgba(0,0,0,0.1);
            overflow: hidden;
        }
        .timeline-header {
            background: #1e40af;
            color: white;
            padding: 20px;
            font-size: 1.3em;
            font-weight: 600;
        }
        .event { border-bottom: 1px solid #e5e7eb; padding: 25px; }
        .event:last-child { border-bottom: none; }
        .event-header {
            display: flex;
            justify-content: space-between;
            align-items: flex-start;
            margin-bottom: 15px;
        }
        .event-title { font-size: 1.3em; font-weight: 600; color: #1f2937; margin: 0; }
        .event-category {
            background: #3b82f6;
            color: white;
            padding: 4px 12px;
            border-radius: 20px;
            font-size: 0.8em;
            font-weight: 500;
            text-transform: uppercase;
            letter-spacing: 0.5px;
        }
        .event-category.communication { background: #ec4899; }
        .event-category.document { background: #10b981; }
        .event-category.system { background: #f59e0b; }
        .event-category.media { background: #8b5cf6; }
        .event-timestamp {
            color: #6b7280;
            font-size: 1em;
            margin-bottom: 10px;
            font-family: 'Courier New', monospace;
        }
        .event-description { color: #4b5563; margin-bottom: 15px; line-height: 1.6; }
        .event-metadata {
            background: #f9fafb;
            border-radius: 6px;
            padding: 15px;
            font-size: 0.9em;
        }
        .metadata-grid {
            display: grid;
            grid-template-columns: repeat(auto-fit, minmax(150px, 1fr));
            gap: 10px;
        }
        .metadata-pair { display: flex; flex-direction: column; }
        .metadata-key { font-weight: 600; color: #374151; text-transform: capitalize; }
        .metadata-val {
            color: #6b7280;
            font-family: 'Courier New', monospace;
            word-break: break-all;
        }
        @media print {
            body { background: white; }
            .header, .metadata, .timeline { box-shadow: none; }
        }
    </style>
</head>
<body>
    <div class="header">
        <h1>{{.Title}}</h1>
        <p>{{.Description}}</p>
    </div>

    <div class="metadata">
        <div class="metadata-item">
            <span class="metadata-label">Total Events</span>
            <span class="metadata-value">{{.TotalEvents}}</span>
        </div>
        <div class="metadata-item">
            <span class="metadata-label">Export Date</span>
            <span class="metadata-value">{{.ExportDate}}</span>
        </div>
        <div class="metadata-item">
            <span class="metadata-label">Filter Applied</span>
            <span class="metadata-value">{{.Filter}}</span>
        </div>
        <div class="metadata-item">
            <span class="metadata-label">Time Range</span>
            <span class="metadata-value">{{.TimeRange}}</span>
        </div>
    </div>

    <div class="timeline">
        <div class="timeline-header">Timeline Events</div>
        {{range .Events}}
        <div class="event">
            <div class="event-header">
                <h3 class="event-title">{{.Title}}</h3>
                <span class="event-category {{.Category}}">{{.Category}}</span>
            </div>
            <div class="event-timestamp">{{.Timestamp}}</div>
            {{if .Description}}<div class="event-description">{{.Description}}</div>{{end}}
            {{if .Metadata}}
            <div class="event-metadata">
                <div class="metadata-grid">
                    {{range .Metadata}}
                    <div class="metadata-pair">
                        <span class="metadata-key">{{.Key}}</span>
                        <span class="metadata-val">{{.Value}}</span>
                    </div>
                    {{end}}
                </div>
            </div>
            {{end}}
        </div>
        {{end}}
    </div>
</body>
</html>
`
