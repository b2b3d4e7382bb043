// Package plaintext passes UTF-8 text files through unchanged.
package plaintext

import (
	"strings"

	"github.com/calypso-labs/contexta/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Extractor handles plain text files.
type Extractor struct{}

// New creates a plain text extractor.
func New() *Extractor {
	return &Extractor{}
}

// Extensions returns the extensions this extractor handles.
func (e *Extractor) Extensions() []string {
	return []string{".txt"}
}

// Extract returns the file contents as-is, normalising Windows line
// endings so downstream chunking sees uniform text.
func (e *Extractor) Extract(data []byte, _ string) (string, error) {
	return strings.ReplaceAll(string(data), "\r\n", "\n"), nil
}
