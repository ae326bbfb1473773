// Package parsers implements the per-format heuristic parsers that turn
// loosely structured evidence files into timeline events.
package parsers

import (
	"context"
	"fmt"

	"github.com/jonboulle/clockwork"

	"github.com/ccollicutt/chronolog/pkg/event"
	"github.com/ccollicutt/chronolog/pkg/evidence"
)

// Parser turns one evidence file into zero or more timeline events.
// Implementations read the file through its content accessor, observe the
// context at each suspension point, and fail only for truly unreadable
// content. Unexpected but well-formed input yields events via fallbacks,
// never an error.
type Parser interface {
	// Name returns the parser name for diagnostics.
	Name() string

	// Parse produces events from the file. Errors are *evidence.ProcessError
	// values so the dispatcher can convert them by kind.
	Parse(ctx context.Context, f evidence.File) ([]event.Event, error)
}

// ForExtension selects a parser by lower-cased filename extension.
// Extension alone decides: txt and log always get the log parser, and
// anything unrecognized gets the generic fallback.
func ForExtension(ext string, clock clockwork.Clock) Parser {
	switch ext {
	case "csv":
		return NewCSV(clock)
	case "json":
		return NewJSON(clock)
	case "eml", "msg":
		return NewEmail(clock)
	case "log", "txt":
		return NewLog(clock)
	case "jpg", "jpeg", "png", "gif", "bmp", "webp":
		return NewImage(clock)
	default:
		return NewGeneric(clock)
	}
}

// readError classifies a content-read failure. Context errors pass through
// untouched so the dispatcher can tell a timeout from unreadable content.
func readError(ctx context.Context, f evidence.File, err error) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	return evidence.WrapProcessError(evidence.KindParseFailure, f.Name,
		fmt.Sprintf("failed to read file: %s", f.Name), err)
}
