package parsers

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"testing"
	"time"

	"github.com/ccollicutt/chronolog/pkg/event"
	"github.com/ccollicutt/chronolog/pkg/evidence"
)

func pngBytes(t *testing.T, width, height int) []byte {
	t.Helper()
	var buf bytes.Buffer
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestImageParse(t *testing.T) {
	modified := time.Date(2024, 2, 14, 16, 45, 0, 0, time.UTC)
	data := pngBytes(t, 64, 48)
	f := evidence.FromBytes("photo.png", modified, "image/png", data)

	p := NewImage(testClock())
	events, err := p.Parse(context.Background(), f)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}

	e := events[0]
	if e.ID != fmt.Sprintf("image-photo.png-%d", modified.UnixMilli()) {
		t.Errorf("ID = %q", e.ID)
	}
	if e.Title != "Image: photo.png" {
		t.Errorf("Title = %q", e.Title)
	}
	if e.Timestamp != modified.UnixMilli() {
		t.Errorf("Timestamp = %d, want mod time", e.Timestamp)
	}
	if e.Category != event.CategoryMedia {
		t.Errorf("Category = %q, want media", e.Category)
	}
	if e.Description != "Image file (64x48)" {
		t.Errorf("Description = %q, want Image file (64x48)", e.Description)
	}
	if e.Metadata["width"] != 64 || e.Metadata["height"] != 48 {
		t.Errorf("dimensions = %vx%v, want 64x48", e.Metadata["width"], e.Metadata["height"])
	}
}

func TestImageParse_NoModTimeUsesClock(t *testing.T) {
	f := evidence.FromBytes("p.png", time.Time{}, "image/png", pngBytes(t, 1, 1))

	p := NewImage(testClock())
	events, err := p.Parse(context.Background(), f)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if events[0].Timestamp != testNow.UnixMilli() {
		t.Errorf("Timestamp = %d, want clock now", events[0].Timestamp)
	}
}

func TestImageParse_Corrupt(t *testing.T) {
	f := evidence.FromBytes("broken.png", time.Time{}, "image/png", []byte("not an image"))

	p := NewImage(testClock())
	_, err := p.Parse(context.Background(), f)
	if err == nil {
		t.Fatal("Parse() should fail for corrupt image data")
	}
	if got := evidence.KindOf(err); got != evidence.KindImageDecode {
		t.Errorf("KindOf(err) = %v, want image_decode_error", got)
	}
}

func TestImageParse_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f := evidence.FromBytes("p.png", time.Time{}, "image/png", pngBytes(t, 1, 1))
	p := NewImage(testClock())
	if _, err := p.Parse(ctx, f); err == nil {
		t.Error("Parse() should fail when the context is already cancelled")
	}
}
