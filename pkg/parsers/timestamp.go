package parsers

import (
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/jonboulle/clockwork"

	"github.com/ccollicutt/chronolog/pkg/evidence"
)

// parseLoose parses a timestamp string permissively, accepting the wide
// range of date spellings that show up in evidence files (ISO 8601, RFC
// 1123, US dates, epoch strings).
func parseLoose(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	t, err := dateparse.ParseAny(s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// epochMillisValid bounds numeric timestamps to a sane range (1970-2100),
// matching what a date constructor would accept as a real instant.
const maxEpochMillis = 4102444800000

// parseEpochMillis interprets a numeric field as milliseconds since epoch.
func parseEpochMillis(millis float64) (time.Time, bool) {
	if millis < 0 || millis > maxEpochMillis {
		return time.Time{}, false
	}
	return time.UnixMilli(int64(millis)), true
}

// fallbackTime is the timestamp used when a file yields no usable
// timestamp: the file modification time when known, otherwise now.
func fallbackTime(f evidence.File, clock clockwork.Clock) time.Time {
	if !f.LastModified.IsZero() {
		return f.LastModified
	}
	return clock.Now()
}

// millis converts a time to the event timestamp representation.
func millis(t time.Time) int64 {
	return t.UnixMilli()
}
