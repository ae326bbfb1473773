package parsers

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/ccollicutt/chronolog/pkg/event"
	"github.com/ccollicutt/chronolog/pkg/evidence"
)

// logTimestampPattern matches the common YYYY-MM-DD HH:MM:SS stamp with a
// space or T separator, anywhere in the line.
var logTimestampPattern = regexp.MustCompile(`(\d{4}-\d{2}-\d{2}[ T]\d{2}:\d{2}:\d{2})`)

const logTimestampLayout = "2006-01-02 15:04:05"

// logLevelPattern extracts a severity level, case-insensitively.
var logLevelPattern = regexp.MustCompile(`(?i)(ERROR|WARN|INFO|DEBUG|TRACE)`)

// maxLogDescription caps the per-line description length.
const maxLogDescription = 200

// LogParser turns each non-blank line of a log or plain-text file into one
// system event. There is no aggregation or sampling: a large file yields
// proportionally many events.
type LogParser struct {
	clock clockwork.Clock
}

// NewLog creates a log parser.
func NewLog(clock clockwork.Clock) *LogParser {
	return &LogParser{clock: clock}
}

// Name returns the parser name.
func (p *LogParser) Name() string { return "log" }

// Parse produces one event per non-blank line. Lines without a recognizable
// timestamp fall back to the file modification time or now.
func (p *LogParser) Parse(ctx context.Context, f evidence.File) ([]event.Event, error) {
	data, err := f.ReadAll(ctx)
	if err != nil {
		return nil, readError(ctx, f, err)
	}

	lines := nonBlankLines(string(data))
	fallback := fallbackTime(f, p.clock)

	events := make([]event.Event, 0, len(lines))
	for index, line := range lines {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		timestamp := fallback
		if match := logTimestampPattern.FindStringSubmatch(line); match != nil {
			stamp := strings.Replace(match[1], "T", " ", 1)
			if parsed, err := time.Parse(logTimestampLayout, stamp); err == nil {
				timestamp = parsed
			}
		}

		level := "INFO"
		if match := logLevelPattern.FindStringSubmatch(line); match != nil {
			level = strings.ToUpper(match[1])
		}

		events = append(events, event.Event{
			ID:          fmt.Sprintf("log-%s-%d", f.Name, index),
			Title:       fmt.Sprintf("Log Entry: %s", level),
			Timestamp:   millis(timestamp),
			Category:    event.CategorySystem,
			Description: truncate(line, maxLogDescription),
			Metadata: map[string]any{
				"level":       level,
				"fullMessage": line,
				"lineNumber":  index + 1,
				"filename":    f.Name,
				"source":      "log",
			},
		})
	}

	return events, nil
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
