package parsers

import (
	"context"
	"fmt"

	"github.com/jonboulle/clockwork"

	"github.com/ccollicutt/chronolog/pkg/event"
	"github.com/ccollicutt/chronolog/pkg/evidence"
)

// GenericParser is the fallback for unrecognized extensions. It never
// inspects content: one event, categorized by MIME type prefix.
type GenericParser struct {
	clock clockwork.Clock
}

// NewGeneric creates the generic fallback parser.
func NewGeneric(clock clockwork.Clock) *GenericParser {
	return &GenericParser{clock: clock}
}

// Name returns the parser name.
func (p *GenericParser) Name() string { return "generic" }

// Parse produces exactly one event from file metadata alone.
func (p *GenericParser) Parse(ctx context.Context, f evidence.File) ([]event.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	timestamp := fallbackTime(f, p.clock)

	e := event.Event{
		ID:          fmt.Sprintf("file-%s-%d", f.Name, millis(timestamp)),
		Title:       fmt.Sprintf("File: %s", f.Name),
		Timestamp:   millis(timestamp),
		Category:    event.CategorizeMIME(f.MIMEType),
		Description: fmt.Sprintf("Imported file: %s", f.Name),
		Metadata: map[string]any{
			"filename":     f.Name,
			"size":         f.Size,
			"type":         f.MIMEType,
			"lastModified": f.LastModified.UnixMilli(),
		},
	}

	return []event.Event{e}, nil
}
