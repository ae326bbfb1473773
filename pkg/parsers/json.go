package parsers

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/ccollicutt/chronolog/pkg/event"
	"github.com/ccollicutt/chronolog/pkg/evidence"
)

// JSONParser extracts events from a JSON document. Three shapes are
// recognized: a top-level array of records, an object with an "events"
// array, or a single object. Records that are not objects are skipped
// silently.
type JSONParser struct {
	clock clockwork.Clock
}

// NewJSON creates a JSON parser.
func NewJSON(clock clockwork.Clock) *JSONParser {
	return &JSONParser{clock: clock}
}

// Name returns the parser name.
func (p *JSONParser) Name() string { return "json" }

// Parse produces one event per object record.
func (p *JSONParser) Parse(ctx context.Context, f evidence.File) ([]event.Event, error) {
	data, err := f.ReadAll(ctx)
	if err != nil {
		return nil, readError(ctx, f, err)
	}

	var root any
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, evidence.WrapProcessError(evidence.KindParseFailure, f.Name,
			fmt.Sprintf("parsing JSON in %s: %v", f.Name, err), err)
	}

	records := recordsOf(root)

	var events []event.Event
	for i, record := range records {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if e, ok := p.eventFromRecord(record, f.Name, i); ok {
			events = append(events, e)
		}
	}

	return events, nil
}

// recordsOf selects the candidate records from the parsed root value.
func recordsOf(root any) []any {
	switch v := root.(type) {
	case []any:
		return v
	case map[string]any:
		if events, ok := v["events"].([]any); ok {
			return events
		}
		return []any{v}
	default:
		return []any{root}
	}
}

// eventFromRecord extracts one event from a record. Non-object records
// yield no event.
func (p *JSONParser) eventFromRecord(record any, filename string, index int) (event.Event, bool) {
	obj, ok := record.(map[string]any)
	if !ok {
		return event.Event{}, false
	}

	timestamp := p.clock.Now()
	for _, field := range jsonTimestampFields {
		val, present := obj[field]
		if !present {
			continue
		}
		if parsed, ok := timestampValue(val); ok {
			timestamp = parsed
			break
		}
	}

	title := fmt.Sprintf("JSON Entry %d", index+1)
	for _, field := range jsonTitleFields {
		if s, ok := obj[field].(string); ok && s != "" {
			title = s
			break
		}
	}

	// Category comes from substring rules over the serialized record.
	serialized, _ := json.Marshal(obj)
	category := event.CategorizeContent(string(serialized))

	metadata := make(map[string]any, len(obj)+2)
	for k, v := range obj {
		metadata[k] = v
	}
	metadata["source"] = filename
	metadata["index"] = index

	return event.Event{
		ID:          fmt.Sprintf("json-%s-%d", filename, index),
		Title:       event.TruncateTitle(title),
		Timestamp:   millis(timestamp),
		Category:    category,
		Description: fmt.Sprintf("Imported from JSON: %s", filename),
		Metadata:    metadata,
	}, true
}

// timestampValue interprets a JSON field value as a timestamp: strings go
// through loose date parsing, numbers are epoch milliseconds.
func timestampValue(val any) (time.Time, bool) {
	switch v := val.(type) {
	case string:
		return parseLoose(v)
	case float64:
		return parseEpochMillis(v)
	default:
		return time.Time{}, false
	}
}
