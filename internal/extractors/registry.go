package extractors

import (
	"fmt"
	"sort"
	"strings"

	"github.com/calypso-labs/contexta/internal/core/domain"
	"github.com/calypso-labs/contexta/internal/core/ports/driven"

	"github.com/calypso-labs/contexta/internal/extractors/csv"
	"github.com/calypso-labs/contexta/internal/extractors/docx"
	"github.com/calypso-labs/contexta/internal/extractors/plaintext"
)

// Ensure Registry implements the interface.
var _ driven.ExtractorRegistry = (*Registry)(nil)

// unsupportedHints maps recognized-but-unsupported extensions to the
// substitute format a user should convert to. These hints are passed
// through to callers verbatim because they are actionable.
var unsupportedHints = map[string]string{
	".pdf":  "convert to .txt or .docx format for automatic processing",
	".rtf":  "convert to .txt format for automatic processing",
	".pptx": "convert to .txt format for automatic processing",
	".ppt":  "convert to .txt format for automatic processing",
	".xlsx": "convert to .csv format for automatic processing",
	".xls":  "convert to .csv format for automatic processing",
}

// Registry dispatches extraction by file extension.
type Registry struct {
	byExt map[string]driven.Extractor
}

// NewRegistry creates a registry with the default strategies
// registered: plain text, OOXML word processing, and delimited data.
func NewRegistry() *Registry {
	r := &Registry{byExt: make(map[string]driven.Extractor)}
	r.Register(plaintext.New())
	r.Register(docx.New())
	r.Register(csv.New())
	return r
}

// Register adds an extractor for every extension it declares.
func (r *Registry) Register(e driven.Extractor) {
	for _, ext := range e.Extensions() {
		r.byExt[strings.ToLower(ext)] = e
	}
}

// Extract runs the strategy registered for ext against the file bytes.
func (r *Registry) Extract(data []byte, filename, ext string) (string, error) {
	ext = strings.ToLower(ext)

	e, ok := r.byExt[ext]
	if !ok {
		hint, recognized := unsupportedHints[ext]
		if !recognized {
			hint = "convert to a supported format (.txt, .docx, .csv)"
		}
		return "", &domain.UnsupportedFormatError{Extension: ext, Hint: hint}
	}

	text, err := e.Extract(data, filename)
	if err != nil {
		return "", fmt.Errorf("extracting %s: %w", filename, err)
	}
	return text, nil
}

// Supported reports whether an extraction strategy exists for ext.
func (r *Registry) Supported(ext string) bool {
	_, ok := r.byExt[strings.ToLower(ext)]
	return ok
}

// Formats lists every recognized extension, supported first, each
// group sorted alphabetically.
func (r *Registry) Formats() []domain.FormatInfo {
	var formats []domain.FormatInfo
	for ext := range r.byExt {
		formats = append(formats, domain.FormatInfo{Extension: ext, Supported: true})
	}
	for ext, hint := range unsupportedHints {
		formats = append(formats, domain.FormatInfo{Extension: ext, Hint: hint})
	}

	sort.Slice(formats, func(i, j int) bool {
		if formats[i].Supported != formats[j].Supported {
			return formats[i].Supported
		}
		return formats[i].Extension < formats[j].Extension
	})
	return formats
}
