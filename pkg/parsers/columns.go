package parsers

import "strings"

// Ordered lookup tables for heuristic column and field matching. Each table
// is evaluated in the listed order and the first match wins, keeping the
// precedence auditable.

// csvTimestampColumns locates the timestamp column by substring match
// against lower-cased CSV headers.
var csvTimestampColumns = []string{"timestamp", "date", "time", "datetime", "created", "modified"}

// csvTitleColumns locates the title column the same way.
var csvTitleColumns = []string{"title", "name", "subject", "description", "event"}

// jsonTimestampFields are checked as exact field names, in order, taking the
// first value that parses as a date.
var jsonTimestampFields = []string{"timestamp", "date", "time", "datetime", "created_at", "updated_at", "modified"}

// jsonTitleFields are checked in order, taking the first string value.
var jsonTitleFields = []string{"title", "name", "subject", "description", "event", "message"}

// findColumn returns the index of the first header containing any of the
// keys as a substring, or -1. Headers are expected lower-cased.
func findColumn(headers []string, keys []string) int {
	for i, h := range headers {
		for _, key := range keys {
			if strings.Contains(h, key) {
				return i
			}
		}
	}
	return -1
}

// nonBlankLines splits text on newlines and drops lines that are blank
// after trimming, preserving the original line content.
func nonBlankLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
