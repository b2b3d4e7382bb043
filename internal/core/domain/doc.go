// Package domain defines the core business entities for Contexta.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: an ingested document with extracted text and metadata
//   - Chunk: a bounded slice of a document's text, the unit of retrieval
//   - SearchResult: a scored chunk produced by a query
//   - IngestReport: the per-batch outcome of an ingest run
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
