package evidence

import "errors"

// Kind categorizes a processing failure.
type Kind string

const (
	// KindInvalidInput indicates a descriptor with no name.
	KindInvalidInput Kind = "invalid_input"

	// KindEmptyFile indicates a zero-byte file.
	KindEmptyFile Kind = "empty_file"

	// KindFileTooLarge indicates the absolute size ceiling was exceeded.
	KindFileTooLarge Kind = "file_too_large"

	// KindTextFileTooLarge indicates the text-file ceiling was exceeded.
	KindTextFileTooLarge Kind = "text_file_too_large"

	// KindProcessingTimeout indicates the per-file deadline fired.
	KindProcessingTimeout Kind = "processing_timeout"

	// KindParseFailure indicates unreadable or unparseable content.
	KindParseFailure Kind = "parse_failure"

	// KindImageDecode indicates a corrupt image.
	KindImageDecode Kind = "image_decode_error"

	// KindBatchCancelled indicates the caller cancelled the batch.
	KindBatchCancelled Kind = "batch_cancelled"

	// KindBatchTimeout indicates the whole-batch deadline fired.
	KindBatchTimeout Kind = "batch_timeout"
)

// ProcessError is a typed processing failure. All per-file kinds are
// recovered by the dispatcher and converted into synthetic error events;
// only the batch-level kinds surface to the caller.
type ProcessError struct {
	Kind    Kind
	File    string
	Message string
	Err     error
}

// Error returns the human-readable message.
func (e *ProcessError) Error() string {
	return e.Message
}

// Unwrap returns the underlying cause, if any.
func (e *ProcessError) Unwrap() error {
	return e.Err
}

// NewProcessError builds a ProcessError without an underlying cause.
func NewProcessError(kind Kind, file, message string) *ProcessError {
	return &ProcessError{Kind: kind, File: file, Message: message}
}

// WrapProcessError builds a ProcessError around an underlying cause.
func WrapProcessError(kind Kind, file, message string, err error) *ProcessError {
	return &ProcessError{Kind: kind, File: file, Message: message, Err: err}
}

// KindOf extracts the failure kind from an error chain. Errors that are not
// ProcessErrors are classified as parse failures.
func KindOf(err error) Kind {
	var pe *ProcessError
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return KindParseFailure
}

// IsBatchLevel reports whether the kind aborts a whole batch rather than a
// single file.
func (k Kind) IsBatchLevel() bool {
	return k == KindBatchCancelled || k == KindBatchTimeout
}
