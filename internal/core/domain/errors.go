package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested document does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedFormat indicates the declared format has no
	// extraction strategy. Non-fatal: the file is skipped.
	ErrUnsupportedFormat = errors.New("unsupported format")

	// ErrExtractionFailed indicates an extraction strategy ran but
	// produced no usable text. Non-fatal: the file is skipped.
	ErrExtractionFailed = errors.New("extraction failed")

	// ErrInsufficientContent indicates the extracted text is below the
	// indexing floor. Non-fatal: the file is skipped.
	ErrInsufficientContent = errors.New("insufficient text content")

	// ErrUnauthorized indicates a delete was requested by a user who
	// does not own the document. The operation performs no mutation.
	ErrUnauthorized = errors.New("unauthorized: you can only delete your own documents")
)

// UnsupportedFormatError carries the actionable conversion hint for a
// recognized-but-unsupported format. It unwraps to ErrUnsupportedFormat
// so callers can branch with errors.Is.
type UnsupportedFormatError struct {
	// Extension is the offending file extension.
	Extension string

	// Hint names the expected substitute format, e.g.
	// "convert to .txt or .docx for automatic processing".
	Hint string
}

func (e *UnsupportedFormatError) Error() string {
	if e.Hint == "" {
		return fmt.Sprintf("unsupported file format %s", e.Extension)
	}
	return fmt.Sprintf("unsupported file format %s: %s", e.Extension, e.Hint)
}

func (e *UnsupportedFormatError) Unwrap() error {
	return ErrUnsupportedFormat
}
