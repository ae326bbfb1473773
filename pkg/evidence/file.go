// Package evidence provides evidence file descriptors, the admission
// validator, and the processing error taxonomy.
package evidence

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
)

// File describes one evidence file submitted for ingestion. The descriptor
// carries metadata plus a content accessor; parsers only ever read through
// the accessor and never mutate the underlying file.
type File struct {
	// Name is the filename including extension.
	Name string

	// Size is the content length in bytes.
	Size int64

	// LastModified is the file modification time, zero when unknown.
	LastModified time.Time

	// MIMEType is the declared or sniffed media type, may be empty.
	MIMEType string

	open func() (io.ReadCloser, error)
}

// NewFile builds a descriptor with an explicit content accessor.
func NewFile(name string, size int64, modified time.Time, mimeType string, open func() (io.ReadCloser, error)) File {
	return File{
		Name:         name,
		Size:         size,
		LastModified: modified,
		MIMEType:     mimeType,
		open:         open,
	}
}

// FromBytes builds an in-memory descriptor, mainly for tests and previews.
func FromBytes(name string, modified time.Time, mimeType string, data []byte) File {
	return NewFile(name, int64(len(data)), modified, mimeType, func() (io.ReadCloser, error) {
		return io.NopCloser(bytes.NewReader(data)), nil
	})
}

// FromPath builds a descriptor for a file on disk, sniffing the MIME type
// from content.
func FromPath(path string) (File, error) {
	info, err := os.Stat(path)
	if err != nil {
		return File{}, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return File{}, fmt.Errorf("%s is a directory", path)
	}

	mimeType := ""
	if mt, err := mimetype.DetectFile(path); err == nil {
		mimeType = mt.String()
	}

	return NewFile(filepath.Base(path), info.Size(), info.ModTime(), mimeType, func() (io.ReadCloser, error) {
		return os.Open(path) // #nosec G304 -- user-provided paths are expected
	}), nil
}

// Open returns a reader over the file content.
func (f File) Open() (io.ReadCloser, error) {
	if f.open == nil {
		return nil, fmt.Errorf("no content accessor for %s", f.Name)
	}
	return f.open()
}

// ReadAll reads the whole content. The context is observed before and after
// the read so callers get prompt cancellation at this suspension point.
func (f File) ReadAll(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", f.Name, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", f.Name, err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return data, nil
}

// Extension returns the lower-cased filename extension without the dot.
// Extension alone decides parser selection.
func (f File) Extension() string {
	ext := filepath.Ext(f.Name)
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}
