package event

import (
	"sort"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// TimeRange selects a relative time window for filtering.
type TimeRange string

const (
	TimeRangeAll   TimeRange = "all"
	TimeRangeToday TimeRange = "today"
	TimeRangeWeek  TimeRange = "week"
	TimeRangeMonth TimeRange = "month"
	TimeRangeYear  TimeRange = "year"
)

// Valid reports whether r is a known time range.
func (r TimeRange) Valid() bool {
	switch r {
	case TimeRangeAll, TimeRangeToday, TimeRangeWeek, TimeRangeMonth, TimeRangeYear:
		return true
	}
	return false
}

// Timeline is the in-memory event sink for a session. Batches are merged
// with a single atomic append; a cancelled batch never touches it.
type Timeline struct {
	mu     sync.Mutex
	clock  clockwork.Clock
	events []Event
}

// NewTimeline creates an empty timeline using the given clock for relative
// time-range filtering.
func NewTimeline(clock clockwork.Clock) *Timeline {
	return &Timeline{clock: clock}
}

// Append merges a batch of events into the timeline as one operation.
func (t *Timeline) Append(events []Event) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.events = append(t.events, events...)
}

// Len returns the number of events on the timeline.
func (t *Timeline) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.events)
}

// Events returns a chronologically sorted copy of all events.
func (t *Timeline) Events() []Event {
	return t.Filter(FilterOptions{})
}

// Delete removes the event with the given id. Returns false if no such
// event exists.
func (t *Timeline) Delete(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i := range t.events {
		if t.events[i].ID == id {
			t.events = append(t.events[:i], t.events[i+1:]...)
			return true
		}
	}
	return false
}

// FilterOptions narrows the timeline view. Zero values select everything.
type FilterOptions struct {
	// Category keeps only events of one category when set.
	Category Category

	// Range keeps only events inside a relative time window.
	Range TimeRange
}

// Filter returns a chronologically sorted copy of the events matching opts.
func (t *Timeline) Filter(opts FilterOptions) []Event {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.clock.Now()
	out := make([]Event, 0, len(t.events))
	for _, e := range t.events {
		if opts.Category != "" && e.Category != opts.Category {
			continue
		}
		if !inRange(e.Time(), now, opts.Range) {
			continue
		}
		out = append(out, e)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp < out[j].Timestamp
	})
	return out
}

// Counts returns the number of events per category.
func (t *Timeline) Counts() map[Category]int {
	t.mu.Lock()
	defer t.mu.Unlock()
	counts := make(map[Category]int, len(Categories()))
	for i := range t.events {
		counts[t.events[i].Category]++
	}
	return counts
}

func inRange(ts, now time.Time, r TimeRange) bool {
	switch r {
	case TimeRangeToday:
		y1, m1, d1 := ts.Date()
		y2, m2, d2 := now.Date()
		return y1 == y2 && m1 == m2 && d1 == d2
	case TimeRangeWeek:
		return !ts.Before(now.Add(-7 * 24 * time.Hour))
	case TimeRangeMonth:
		return !ts.Before(now.Add(-30 * 24 * time.Hour))
	case TimeRangeYear:
		return !ts.Before(now.Add(-365 * 24 * time.Hour))
	default:
		return true
	}
}
