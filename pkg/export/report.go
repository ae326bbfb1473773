package export

import (
	"sort"
	"time"

	"github.com/ccollicutt/chronolog/pkg/event"
)

// Report is a filtered, chronologically sorted view of the timeline plus
// the context needed to label the export.
type Report struct {
	// Options are the projection settings used by the formatters.
	Options Options

	// Filter is the category filter that produced this view ("all" when
	// none was applied).
	Filter string

	// TimeRange is the relative window that produced this view.
	TimeRange string

	// ExportedAt is when the report was generated.
	ExportedAt time.Time

	// Events are sorted by timestamp ascending.
	Events []event.Event
}

// NewReport builds a report from an already-filtered event view. The events
// are copied and sorted; the input slice is left untouched.
func NewReport(events []event.Event, filter string, timeRange event.TimeRange, opts Options, exportedAt time.Time) *Report {
	if filter == "" {
		filter = "all"
	}
	if timeRange == "" {
		timeRange = event.TimeRangeAll
	}

	sorted := make([]event.Event, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp < sorted[j].Timestamp
	})

	return &Report{
		Options:    opts,
		Filter:     filter,
		TimeRange:  string(timeRange),
		ExportedAt: exportedAt,
		Events:     sorted,
	}
}

// FilterLabel is the human-readable filter description.
func (r *Report) FilterLabel() string {
	if r.Filter == "all" {
		return "All Categories"
	}
	return r.Filter
}

// TimeRangeLabel is the human-readable time-range description.
func (r *Report) TimeRangeLabel() string {
	if r.TimeRange == "all" {
		return "All Time"
	}
	return r.TimeRange
}
