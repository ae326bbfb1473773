package parsers

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/ccollicutt/chronolog/pkg/event"
	"github.com/ccollicutt/chronolog/pkg/evidence"
)

var testNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func testClock() clockwork.Clock {
	return clockwork.NewFakeClockAt(testNow)
}

func textFile(name, content string) evidence.File {
	return evidence.FromBytes(name, time.Time{}, "text/plain", []byte(content))
}

func TestCSVParse(t *testing.T) {
	content := "Timestamp,Title,Notes\n" +
		"2024-01-15T10:00:00Z,Login attempt,ok\n" +
		"2024-01-16T11:30:00Z,File deleted,suspicious\n" +
		"2024-01-17T09:15:00Z,Account locked,escalated\n"

	p := NewCSV(testClock())
	events, err := p.Parse(context.Background(), textFile("audit.csv", content))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("Parse() returned %d events, want 3", len(events))
	}

	first := events[0]
	if first.ID != "csv-audit.csv-1" {
		t.Errorf("ID = %q, want csv-audit.csv-1", first.ID)
	}
	if first.Title != "Login attempt" {
		t.Errorf("Title = %q, want Login attempt", first.Title)
	}
	want := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC).UnixMilli()
	if first.Timestamp != want {
		t.Errorf("Timestamp = %d, want %d", first.Timestamp, want)
	}
	if first.Category != event.CategoryDocument {
		t.Errorf("Category = %q, want document", first.Category)
	}
	if first.Description != "Imported from CSV: audit.csv" {
		t.Errorf("Description = %q", first.Description)
	}
	if first.Metadata["notes"] != "ok" {
		t.Errorf("Metadata[notes] = %v, want ok", first.Metadata["notes"])
	}
	if first.Metadata["source"] != "audit.csv" {
		t.Errorf("Metadata[source] = %v, want audit.csv", first.Metadata["source"])
	}
	if first.Metadata["row"] != 1 {
		t.Errorf("Metadata[row] = %v, want 1", first.Metadata["row"])
	}

	// Events come out in row order with deterministic row-indexed IDs.
	if events[1].ID != "csv-audit.csv-2" || events[2].ID != "csv-audit.csv-3" {
		t.Errorf("row IDs = %q, %q", events[1].ID, events[2].ID)
	}
}

func TestCSVParse_QuotedFields(t *testing.T) {
	content := "date,name\n" +
		"\"2024-02-01\",\"Quarterly report\"\n"

	p := NewCSV(testClock())
	events, err := p.Parse(context.Background(), textFile("q.csv", content))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("Parse() returned %d events, want 1", len(events))
	}
	if events[0].Title != "Quarterly report" {
		t.Errorf("Title = %q, quotes should be stripped", events[0].Title)
	}
}

func TestCSVParse_ColumnDetection(t *testing.T) {
	tests := []struct {
		name      string
		header    string
		row       string
		wantTitle string
	}{
		{
			name:      "substring match on created",
			header:    "created_at,event_name",
			row:       "2024-01-01,Disk swap",
			wantTitle: "Disk swap",
		},
		{
			name:      "title column located by exact name",
			header:    "date,timestamp,title",
			row:       "1999-01-01,2024-06-01,Ordered",
			wantTitle: "Ordered",
		},
		{
			name:      "no title column falls back to row label",
			header:    "when,notes",
			row:       "x,y",
			wantTitle: "CSV Row 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewCSV(testClock())
			events, err := p.Parse(context.Background(),
				textFile("t.csv", tt.header+"\n"+tt.row+"\n"))
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if len(events) != 1 {
				t.Fatalf("got %d events, want 1", len(events))
			}
			if events[0].Title != tt.wantTitle {
				t.Errorf("Title = %q, want %q", events[0].Title, tt.wantTitle)
			}
		})
	}
}

func TestCSVParse_TimestampPrecedence(t *testing.T) {
	// The leftmost header containing any timestamp key is the timestamp
	// column, so a lone "date" header is picked up.
	content := "date,title\n2024-06-15,Event A\n"

	p := NewCSV(testClock())
	events, err := p.Parse(context.Background(), textFile("d.csv", content))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	want := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC).UnixMilli()
	if events[0].Timestamp != want {
		t.Errorf("Timestamp = %d, want %d", events[0].Timestamp, want)
	}
}

func TestCSVParse_UnparseableTimestampFallsBack(t *testing.T) {
	content := "timestamp,title\nnot-a-date,Event A\n"

	p := NewCSV(testClock())
	events, err := p.Parse(context.Background(), textFile("bad.csv", content))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if events[0].Timestamp != testNow.UnixMilli() {
		t.Errorf("Timestamp = %d, want clock now %d", events[0].Timestamp, testNow.UnixMilli())
	}
}

func TestCSVParse_ShortRowsSkipped(t *testing.T) {
	content := "timestamp,title,extra\n2024-01-01,only-two\n2024-01-02,full,row\n"

	p := NewCSV(testClock())
	events, err := p.Parse(context.Background(), textFile("short.csv", content))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1 (short row skipped)", len(events))
	}
	if events[0].Title != "full" {
		t.Errorf("Title = %q, want full", events[0].Title)
	}
}

func TestCSVParse_EmptyTitleCell(t *testing.T) {
	content := "timestamp,title\n2024-01-01,\n"

	p := NewCSV(testClock())
	events, err := p.Parse(context.Background(), textFile("blank.csv", content))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if events[0].Title != "CSV Entry 1" {
		t.Errorf("Title = %q, want CSV Entry 1", events[0].Title)
	}
}

func TestCSVParse_BlankFile(t *testing.T) {
	p := NewCSV(testClock())
	_, err := p.Parse(context.Background(), textFile("blank.csv", "\n\n  \n"))
	if err == nil {
		t.Fatal("Parse() should fail for a file with no non-blank lines")
	}
	if got := evidence.KindOf(err); got != evidence.KindParseFailure {
		t.Errorf("KindOf(err) = %v, want parse_failure", got)
	}
}

func TestCSVParse_HeaderOnly(t *testing.T) {
	p := NewCSV(testClock())
	events, err := p.Parse(context.Background(), textFile("h.csv", "timestamp,title\n"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(events) != 0 {
		t.Errorf("got %d events, want 0 for header-only file", len(events))
	}
}

func TestCSVParse_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := NewCSV(testClock())
	if _, err := p.Parse(ctx, textFile("c.csv", "a,b\n1,2\n")); err == nil {
		t.Error("Parse() should fail when the context is already cancelled")
	}
}
