// Package event defines the timeline event model produced by the ingestion
// pipeline and the in-memory timeline that accumulates events for a session.
package event

import "time"

// Category classifies a timeline event. The set is fixed; parsers assign
// categories by heuristic, never from user input.
type Category string

const (
	CategoryCommunication Category = "communication"
	CategoryDocument      Category = "document"
	CategorySystem        Category = "system"
	CategoryMedia         Category = "media"
	CategoryOther         Category = "other"
)

// Categories returns all valid categories in display order.
func Categories() []Category {
	return []Category{
		CategoryCommunication,
		CategoryDocument,
		CategorySystem,
		CategoryMedia,
		CategoryOther,
	}
}

// Valid reports whether c is one of the fixed categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryCommunication, CategoryDocument, CategorySystem, CategoryMedia, CategoryOther:
		return true
	}
	return false
}

// MaxTitleLength caps titles derived from untrusted file content.
const MaxTitleLength = 100

// TruncateTitle limits a title to MaxTitleLength characters.
func TruncateTitle(s string) string {
	runes := []rune(s)
	if len(runes) <= MaxTitleLength {
		return s
	}
	return string(runes[:MaxTitleLength])
}

// Event is a single entry on the evidence timeline. Events are immutable once
// produced by the pipeline; later mutation (retiming, deletion) is the
// timeline's responsibility.
type Event struct {
	// ID is unique within a session and deterministically derived from the
	// source kind, filename, and record index or timestamp.
	ID string `json:"id"`

	// Title is a human-readable label.
	Title string `json:"title"`

	// Timestamp is milliseconds since the Unix epoch. Always concrete:
	// parsers fall back to the file modification time or the current time.
	Timestamp int64 `json:"timestamp"`

	// Category is one of the fixed categories.
	Category Category `json:"category"`

	// Description is free text and may be empty.
	Description string `json:"description"`

	// Metadata is an open mapping. It always carries provenance (source
	// filename, and a row or index for multi-record files); consumers must
	// not assume any further shape.
	Metadata map[string]any `json:"metadata,omitempty"`
}

// Time returns the event timestamp as a time.Time.
func (e *Event) Time() time.Time {
	return time.UnixMilli(e.Timestamp)
}

// IsError reports whether this is a synthetic error event produced in place
// of a failed file.
func (e *Event) IsError() bool {
	_, ok := e.Metadata["error"]
	return ok
}

// FileError records a file that could not be dispatched at all.
type FileError struct {
	File  string `json:"file"`
	Error string `json:"error"`
}

// ProcessingResult is the outcome of one batch. Per-file failures surface as
// synthetic error events inside Events; Errors is reserved for files whose
// dispatch itself failed.
type ProcessingResult struct {
	// BatchID identifies the batch run for status reporting.
	BatchID string `json:"batchId"`

	// Events holds all produced events in input file order, and within a
	// file, record order.
	Events []Event `json:"events"`

	// Errors lists files that could not be dispatched.
	Errors []FileError `json:"errors"`
}

// ErrorEventCount returns the number of synthetic error events in the result.
func (r *ProcessingResult) ErrorEventCount() int {
	n := 0
	for i := range r.Events {
		if r.Events[i].IsError() {
			n++
		}
	}
	return n
}
