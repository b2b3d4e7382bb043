// Package mcp provides an MCP (Model Context Protocol) server adapter
// for Contexta. It lets AI assistants retrieve relevance-ranked
// document chunks as contextual augmentation for their answers.
package mcp

import "errors"

// ErrMissingLibraryService is returned when the library service is not provided.
var ErrMissingLibraryService = errors.New("mcp: library service is required")
