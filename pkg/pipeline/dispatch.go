// Package pipeline drives evidence files through validation, parsing, and
// batch orchestration.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/ccollicutt/chronolog/pkg/event"
	"github.com/ccollicutt/chronolog/pkg/evidence"
	"github.com/ccollicutt/chronolog/pkg/parsers"
)

// DefaultFileTimeout is the per-file processing ceiling.
const DefaultFileTimeout = 30 * time.Second

// Dispatcher processes a single file: admission check, parser selection by
// extension, parse under a per-file deadline. Its contract is total: any
// failure is converted into exactly one synthetic error event, so every
// input file contributes at least one event.
type Dispatcher struct {
	clock       clockwork.Clock
	limits      evidence.Limits
	fileTimeout time.Duration
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithClock sets the clock used for timestamp fallbacks.
func WithClock(clock clockwork.Clock) DispatcherOption {
	return func(d *Dispatcher) {
		d.clock = clock
	}
}

// WithLimits overrides the admission size ceilings.
func WithLimits(limits evidence.Limits) DispatcherOption {
	return func(d *Dispatcher) {
		d.limits = limits
	}
}

// WithFileTimeout overrides the per-file processing ceiling.
func WithFileTimeout(timeout time.Duration) DispatcherOption {
	return func(d *Dispatcher) {
		if timeout > 0 {
			d.fileTimeout = timeout
		}
	}
}

// NewDispatcher creates a dispatcher with default limits and timeout.
func NewDispatcher(opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		clock:       clockwork.NewRealClock(),
		limits:      evidence.DefaultLimits(),
		fileTimeout: DefaultFileTimeout,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Dispatch processes one file and always returns at least one event.
// Failures of any per-file kind become a single synthetic error event
// instead of propagating.
func (d *Dispatcher) Dispatch(ctx context.Context, f evidence.File) []event.Event {
	events, err := d.process(ctx, f)
	if err != nil {
		return []event.Event{d.errorEvent(f, err)}
	}
	return events
}

// process runs the fallible part: validate, select, parse under deadline.
func (d *Dispatcher) process(ctx context.Context, f evidence.File) ([]event.Event, error) {
	if err := evidence.Validate(f, d.limits); err != nil {
		return nil, err
	}

	parser := parsers.ForExtension(f.Extension(), d.clock)

	fileCtx, cancel := context.WithTimeout(ctx, d.fileTimeout)
	defer cancel()

	events, err := parser.Parse(fileCtx, f)
	if err != nil {
		// The per-file deadline takes precedence over whatever the parser
		// reported, unless the caller's own context fired first.
		if errors.Is(fileCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil {
			return nil, evidence.WrapProcessError(evidence.KindProcessingTimeout, f.Name,
				fmt.Sprintf("file processing timeout: %s took longer than %d seconds to process",
					f.Name, int(d.fileTimeout.Seconds())), err)
		}
		return nil, err
	}
	return events, nil
}

// errorEvent converts a per-file failure into a visible timeline entry so
// evidence of the failed import is preserved on the timeline.
func (d *Dispatcher) errorEvent(f evidence.File, err error) event.Event {
	kind := evidence.KindOf(err)
	message := err.Error()

	timestamp := d.clock.Now()
	if !f.LastModified.IsZero() {
		timestamp = f.LastModified
	}

	return event.Event{
		ID:          fmt.Sprintf("error-%s-%d", f.Name, timestamp.UnixMilli()),
		Title:       fmt.Sprintf("Error: %s", f.Name),
		Timestamp:   timestamp.UnixMilli(),
		Category:    event.CategoryOther,
		Description: fmt.Sprintf("Failed to process file: %s", message),
		Metadata: map[string]any{
			"filename": f.Name,
			"size":     f.Size,
			"type":     f.MIMEType,
			"error":    message,
			"kind":     string(kind),
		},
	}
}
