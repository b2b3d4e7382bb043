package driven

import (
	"context"

	"github.com/calypso-labs/contexta/internal/core/domain"
)

// StoredDocument pairs a document with its position-ordered chunks as
// read back from the durable store.
type StoredDocument struct {
	Document domain.Document
	Chunks   []domain.Chunk
}

// DocumentStore persists documents and their chunks in the durable
// relational store. The store is the single source of truth; the
// filesystem mirror is a best-effort cache on top of it.
type DocumentStore interface {
	// SaveDocument inserts the document and all of its chunks in a
	// single transaction. On any failure nothing is written.
	SaveDocument(ctx context.Context, doc *domain.Document, chunks []domain.Chunk) error

	// LoadAll returns every stored document joined with its chunks,
	// chunks ordered by position, documents newest first.
	LoadAll(ctx context.Context) ([]StoredDocument, error)

	// GetDocument retrieves a document by ID without its chunks.
	GetDocument(ctx context.Context, id string) (*domain.Document, error)

	// ListDocuments returns summaries, newest first. An empty ownerID
	// lists all documents; otherwise only that owner's.
	ListDocuments(ctx context.Context, ownerID string) ([]domain.DocumentSummary, error)

	// DeleteDocument removes a document's chunks then the document
	// itself, transactionally, and returns the stored filename.
	// When requestingUserID is non-empty and does not match the owner,
	// it fails with domain.ErrUnauthorized and performs no mutation.
	DeleteDocument(ctx context.Context, id, requestingUserID string) (string, error)

	// Ping verifies the store is reachable.
	Ping(ctx context.Context) error
}
