package parsers

import (
	"context"
	"fmt"
	"image"

	// Register the supported image formats for DecodeConfig.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"github.com/jonboulle/clockwork"

	"github.com/ccollicutt/chronolog/pkg/event"
	"github.com/ccollicutt/chronolog/pkg/evidence"
)

// ImageParser produces one media event per image file. Only enough of the
// image is decoded to obtain pixel dimensions; there is no EXIF or color
// analysis, so the timestamp is always the file modification time or now.
type ImageParser struct {
	clock clockwork.Clock
}

// NewImage creates an image parser.
func NewImage(clock clockwork.Clock) *ImageParser {
	return &ImageParser{clock: clock}
}

// Name returns the parser name.
func (p *ImageParser) Name() string { return "image" }

// Parse decodes the image header and produces a single event. Corrupt image
// data fails with an image decode error.
func (p *ImageParser) Parse(ctx context.Context, f evidence.File) ([]event.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rc, err := f.Open()
	if err != nil {
		return nil, readError(ctx, f, err)
	}
	defer rc.Close()

	cfg, _, err := image.DecodeConfig(rc)
	if err != nil {
		return nil, evidence.WrapProcessError(evidence.KindImageDecode, f.Name,
			fmt.Sprintf("failed to load image: %s", f.Name), err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	timestamp := fallbackTime(f, p.clock)

	e := event.Event{
		ID:          fmt.Sprintf("image-%s-%d", f.Name, millis(timestamp)),
		Title:       fmt.Sprintf("Image: %s", f.Name),
		Timestamp:   millis(timestamp),
		Category:    event.CategoryMedia,
		Description: fmt.Sprintf("Image file (%dx%d)", cfg.Width, cfg.Height),
		Metadata: map[string]any{
			"filename":     f.Name,
			"size":         f.Size,
			"type":         f.MIMEType,
			"width":        cfg.Width,
			"height":       cfg.Height,
			"lastModified": f.LastModified.UnixMilli(),
		},
	}

	return []event.Event{e}, nil
}
