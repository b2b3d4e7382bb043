package domain

import (
	"strings"
	"time"
)

// Document origins. A document either came from a file dropped into the
// documents directory or from an upload persisted in the durable store.
const (
	OriginFilesystem = "filesystem"
	OriginStore      = "store"
)

// Document represents an ingested document after text extraction.
type Document struct {
	// ID is the unique identifier for the document.
	ID string

	// Filename is the original file name, unique within the library.
	Filename string

	// Format is the declared file extension (".txt", ".docx", ...).
	Format string

	// Content is the full extracted text before chunking.
	Content string

	// Origin records where the document was loaded from:
	// OriginFilesystem or OriginStore.
	Origin string

	// Metadata holds classification and size information.
	Metadata Metadata

	// CreatedAt is when the document was first ingested.
	CreatedAt time.Time

	// UpdatedAt is when the document record was last written.
	UpdatedAt time.Time
}

// Metadata carries derived document attributes.
type Metadata struct {
	// Category is the single best-fit label from the fixed taxonomy.
	Category string `json:"category"`

	// Tags are non-exclusive keyword-membership labels.
	Tags []string `json:"tags"`

	// Size is the extracted text length in characters.
	Size int `json:"size"`

	// WordCount is the whitespace-separated word count of the text.
	WordCount int `json:"word_count"`

	// UploadedBy is the owning user id, empty for filesystem documents.
	UploadedBy string `json:"uploaded_by,omitempty"`
}

// Chunk is the unit of indexing and retrieval: a bounded contiguous
// slice of a document's extracted text. Chunks are owned by their
// document; deleting the document deletes its chunks.
type Chunk struct {
	// ID is the unique identifier for the chunk.
	ID string

	// DocumentID links to the parent Document.
	DocumentID string

	// Source is the parent document's filename, carried for display.
	Source string

	// Content is the text content of this chunk, including any
	// overlap prefix borrowed from the previous chunk.
	Content string

	// Position is the ordinal position within the document (0-based).
	Position int

	// Category is copied from the parent document at index time.
	Category string
}

// DocumentSummary is the listing view of a document: metadata without
// the full extracted text.
type DocumentSummary struct {
	ID         string
	Filename   string
	Format     string
	ChunkCount int
	Metadata   Metadata
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// MinContentLength is the floor below which extracted text carries too
// little signal to index. Shorter extractions are dropped, never
// partially indexed.
const MinContentLength = 50

// CountWords returns the number of whitespace-separated words in text.
func CountWords(text string) int {
	return len(strings.Fields(text))
}
