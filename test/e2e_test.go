package test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/ccollicutt/chronolog/pkg/config"
	"github.com/ccollicutt/chronolog/pkg/event"
	"github.com/ccollicutt/chronolog/pkg/evidence"
	"github.com/ccollicutt/chronolog/pkg/export"
	"github.com/ccollicutt/chronolog/pkg/parsers"
	"github.com/ccollicutt/chronolog/pkg/pipeline"
)

var e2eNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
	return path
}

func mustDescriptor(t *testing.T, path string) evidence.File {
	t.Helper()
	f, err := evidence.FromPath(path)
	if err != nil {
		t.Fatalf("Failed to build descriptor for %s: %v", path, err)
	}
	return f
}

// TestE2E_MixedBatch runs a heterogeneous batch through the full pipeline:
// descriptors from disk, sequential batch processing, timeline merge,
// filtering, and export.
func TestE2E_MixedBatch(t *testing.T) {
	dir := t.TempDir()
	clock := clockwork.NewFakeClockAt(e2eNow)

	logPath := writeFile(t, dir, "server.log",
		"2024-01-15 10:30:00 ERROR disk full\n"+
			"2024-01-15 10:31:00 INFO recovered\n")
	csvPath := writeFile(t, dir, "audit.csv",
		"timestamp,title\n"+
			"2024-01-10T08:00:00Z,Login\n"+
			"2024-01-11T08:00:00Z,Logout\n")
	emlPath := writeFile(t, dir, "mail.eml",
		"From: alice@example.com\n"+
			"To: bob@example.com\n"+
			"Subject: Evidence attached\n"+
			"Date: 2024-01-12T14:00:00Z\n")
	emptyPath := writeFile(t, dir, "empty.json", "")

	files := []evidence.File{
		mustDescriptor(t, logPath),
		mustDescriptor(t, csvPath),
		mustDescriptor(t, emlPath),
		mustDescriptor(t, emptyPath),
	}

	orchestrator := pipeline.NewOrchestrator(
		pipeline.NewDispatcher(pipeline.WithClock(clock)),
	)
	result, err := orchestrator.Process(context.Background(), files)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	// 2 log + 2 csv + 1 email + 1 error event for the empty file.
	if len(result.Events) != 6 {
		t.Fatalf("got %d events, want 6", len(result.Events))
	}
	if result.ErrorEventCount() != 1 {
		t.Errorf("ErrorEventCount() = %d, want 1", result.ErrorEventCount())
	}
	if len(result.Errors) != 0 {
		t.Errorf("Errors = %v, want none", result.Errors)
	}

	// Events preserve input order: log events first, then csv, email, error.
	if !strings.HasPrefix(result.Events[0].ID, "log-server.log-") {
		t.Errorf("Events[0].ID = %q", result.Events[0].ID)
	}
	if !strings.HasPrefix(result.Events[5].ID, "error-empty.json-") {
		t.Errorf("Events[5].ID = %q", result.Events[5].ID)
	}

	timeline := event.NewTimeline(clock)
	timeline.Append(result.Events)
	if timeline.Len() != 6 {
		t.Fatalf("timeline has %d events, want 6", timeline.Len())
	}

	// Category filter narrows the view.
	comms := timeline.Filter(event.FilterOptions{Category: event.CategoryCommunication})
	if len(comms) != 1 || comms[0].Title != "Evidence attached" {
		t.Errorf("communication view = %v", comms)
	}

	counts := timeline.Counts()
	if counts[event.CategorySystem] != 2 {
		t.Errorf("system count = %d, want 2", counts[event.CategorySystem])
	}
	if counts[event.CategoryDocument] != 2 {
		t.Errorf("document count = %d, want 2", counts[event.CategoryDocument])
	}

	// Export the full timeline as CSV and make sure every event made it.
	formatter, err := export.New("csv", export.DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	report := export.NewReport(timeline.Events(), "", "", export.DefaultOptions(), clock.Now())

	var buf bytes.Buffer
	if err := formatter.Format(context.Background(), report, &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 7 {
		t.Errorf("CSV export has %d lines, want header + 6", len(lines))
	}
}

// TestE2E_Deterministic processes the same batch twice and expects
// identical events, timestamps included, when the clock is fixed.
func TestE2E_Deterministic(t *testing.T) {
	dir := t.TempDir()
	csvPath := writeFile(t, dir, "audit.csv",
		"timestamp,title\n2024-01-10T08:00:00Z,Login\n")
	logPath := writeFile(t, dir, "app.log",
		"2024-01-15 10:30:00 WARN low memory\n")

	run := func() []event.Event {
		clock := clockwork.NewFakeClockAt(e2eNow)
		o := pipeline.NewOrchestrator(pipeline.NewDispatcher(pipeline.WithClock(clock)))
		result, err := o.Process(context.Background(), []evidence.File{
			mustDescriptor(t, csvPath),
			mustDescriptor(t, logPath),
		})
		if err != nil {
			t.Fatalf("Process() error = %v", err)
		}
		return result.Events
	}

	first := run()
	second := run()

	if len(first) != len(second) {
		t.Fatalf("runs differ in length: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].ID != second[i].ID {
			t.Errorf("IDs differ at %d: %q vs %q", i, first[i].ID, second[i].ID)
		}
		if first[i].Timestamp != second[i].Timestamp {
			t.Errorf("timestamps differ at %d", i)
		}
		if first[i].Title != second[i].Title {
			t.Errorf("titles differ at %d", i)
		}
	}
}

// TestE2E_JSONRoundTrip exports a timeline as JSON and feeds the export
// back through the JSON parser. The export uses an "events" field, which is
// one of the shapes the parser recognizes, so titles and timestamps must
// survive the round trip.
func TestE2E_JSONRoundTrip(t *testing.T) {
	clock := clockwork.NewFakeClockAt(e2eNow)

	original := []event.Event{
		{
			ID:        "log-a.log-0",
			Title:     "Log Entry: ERROR",
			Timestamp: time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC).UnixMilli(),
			Category:  event.CategorySystem,
		},
		{
			ID:        "csv-b.csv-1",
			Title:     "Login",
			Timestamp: time.Date(2024, 1, 10, 8, 0, 0, 0, time.UTC).UnixMilli(),
			Category:  event.CategoryDocument,
		},
	}

	formatter, err := export.New("json", export.DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	report := export.NewReport(original, "", "", export.DefaultOptions(), clock.Now())

	var buf bytes.Buffer
	if err := formatter.Format(context.Background(), report, &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	exported := evidence.FromBytes("export.json", time.Time{}, "application/json", buf.Bytes())
	parser := parsers.NewJSON(clock)
	reparsed, err := parser.Parse(context.Background(), exported)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if len(reparsed) != len(original) {
		t.Fatalf("round trip produced %d events, want %d", len(reparsed), len(original))
	}

	wantTitles := make([]string, len(original))
	for i, e := range original {
		wantTitles[i] = e.Title
	}
	sort.Strings(wantTitles)

	gotTitles := make([]string, len(reparsed))
	for i, e := range reparsed {
		gotTitles[i] = e.Title
	}
	sort.Strings(gotTitles)

	for i := range wantTitles {
		if gotTitles[i] != wantTitles[i] {
			t.Errorf("titles differ after round trip: %v vs %v", gotTitles, wantTitles)
			break
		}
	}

	// Timestamps are carried as epoch milliseconds in the export, so they
	// survive exactly.
	gotStamps := map[int64]bool{}
	for _, e := range reparsed {
		gotStamps[e.Timestamp] = true
	}
	for _, e := range original {
		if !gotStamps[e.Timestamp] {
			t.Errorf("timestamp %d missing after round trip", e.Timestamp)
		}
	}
}

// TestE2E_ConfigDrivenLimits wires a config file's ceilings into the
// dispatcher and expects the tighter limit to reject a file.
func TestE2E_ConfigDrivenLimits(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "config.yaml",
		"limits:\n  max_file_size: 64\n  max_text_file_size: 32\n")

	cfg, err := config.Load(context.Background(), cfgPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	logPath := writeFile(t, dir, "big.log", strings.Repeat("2024-01-01 00:00:00 INFO x\n", 2))

	clock := clockwork.NewFakeClockAt(e2eNow)
	d := pipeline.NewDispatcher(
		pipeline.WithClock(clock),
		pipeline.WithLimits(cfg.EvidenceLimits()),
	)

	events := d.Dispatch(context.Background(), mustDescriptor(t, logPath))
	if len(events) != 1 || !events[0].IsError() {
		t.Fatalf("expected one error event, got %v", events)
	}
	if !strings.Contains(events[0].Description, "text file too large") {
		t.Errorf("Description = %q", events[0].Description)
	}
}
