package driven

import "github.com/calypso-labs/contexta/internal/core/domain"

// Extractor converts one file format into plain text.
// Each extractor handles a fixed set of file extensions.
type Extractor interface {
	// Extensions returns the file extensions this extractor handles,
	// lowercase with the leading dot (".txt").
	Extensions() []string

	// Extract produces plain text from the raw file bytes. It returns
	// domain.ErrExtractionFailed (wrapped) when the strategy ran but
	// yielded no usable text.
	Extract(data []byte, filename string) (string, error)
}

// ExtractorRegistry dispatches extraction by declared format.
type ExtractorRegistry interface {
	// Extract runs the extractor registered for ext. Unsupported
	// formats yield a *domain.UnsupportedFormatError; they never panic
	// or abort a batch.
	Extract(data []byte, filename, ext string) (string, error)

	// Supported reports whether an extraction strategy exists for ext.
	Supported(ext string) bool

	// Formats lists every recognized extension with support status.
	Formats() []domain.FormatInfo
}
