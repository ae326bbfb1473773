package evidence

import "fmt"

// Size ceilings for admission.
const (
	// MaxFileSize is the absolute per-file ceiling (100 MiB).
	MaxFileSize = 100 * 1024 * 1024

	// MaxTextFileSize is the ceiling for text formats (50 MiB).
	MaxTextFileSize = 50 * 1024 * 1024
)

// textExtensions are the formats subject to the tighter text ceiling.
var textExtensions = map[string]bool{
	"txt":  true,
	"log":  true,
	"csv":  true,
	"json": true,
	"eml":  true,
	"msg":  true,
}

// Limits holds the admission size ceilings.
type Limits struct {
	MaxFileSize     int64
	MaxTextFileSize int64
}

// DefaultLimits returns the standard ceilings.
func DefaultLimits() Limits {
	return Limits{
		MaxFileSize:     MaxFileSize,
		MaxTextFileSize: MaxTextFileSize,
	}
}

// Validate applies the admission policy to a descriptor. It is a pure
// predicate over metadata; content is never read. Checks run in a fixed
// order: name, emptiness, absolute ceiling, text ceiling.
func Validate(f File, limits Limits) error {
	if f.Name == "" {
		return NewProcessError(KindInvalidInput, f.Name,
			"invalid file: file is missing or has no name")
	}

	if f.Size == 0 {
		return NewProcessError(KindEmptyFile, f.Name,
			fmt.Sprintf("empty file: %s has no content", f.Name))
	}

	if f.Size > limits.MaxFileSize {
		return NewProcessError(KindFileTooLarge, f.Name,
			fmt.Sprintf("file too large: %s (%.1fMB) exceeds maximum size of %dMB",
				f.Name, megabytes(f.Size), limits.MaxFileSize/1024/1024))
	}

	if textExtensions[f.Extension()] && f.Size > limits.MaxTextFileSize {
		return NewProcessError(KindTextFileTooLarge, f.Name,
			fmt.Sprintf("text file too large: %s (%.1fMB) exceeds maximum size of %dMB for text files",
				f.Name, megabytes(f.Size), limits.MaxTextFileSize/1024/1024))
	}

	return nil
}

func megabytes(size int64) float64 {
	return float64(size) / 1024 / 1024
}
