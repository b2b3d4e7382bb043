// Package memory provides in-memory implementations of the driven
// storage ports for tests and ephemeral use.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/calypso-labs/contexta/internal/core/domain"
	"github.com/calypso-labs/contexta/internal/core/ports/driven"
)

// Ensure DocumentStore implements the interface.
var _ driven.DocumentStore = (*DocumentStore)(nil)

// DocumentStore is an in-memory implementation of driven.DocumentStore.
type DocumentStore struct {
	mu        sync.RWMutex
	documents map[string]domain.Document
	chunks    map[string][]domain.Chunk
	order     []string

	// FailSave makes the next SaveDocument fail; used to exercise the
	// rollback and batch-continuation paths in tests.
	FailSave error
}

// NewDocumentStore creates a new in-memory document store.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{
		documents: make(map[string]domain.Document),
		chunks:    make(map[string][]domain.Chunk),
	}
}

// SaveDocument stores the document and its chunks atomically.
func (s *DocumentStore) SaveDocument(_ context.Context, doc *domain.Document, chunks []domain.Chunk) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailSave != nil {
		err := s.FailSave
		s.FailSave = nil
		return err
	}
	s.documents[doc.ID] = *doc
	s.chunks[doc.ID] = append([]domain.Chunk(nil), chunks...)
	s.order = append(s.order, doc.ID)
	return nil
}

// LoadAll returns every stored document with its chunks, newest first.
func (s *DocumentStore) LoadAll(_ context.Context) ([]driven.StoredDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var docs []driven.StoredDocument
	for i := len(s.order) - 1; i >= 0; i-- {
		id := s.order[i]
		doc, ok := s.documents[id]
		if !ok {
			continue
		}
		docs = append(docs, driven.StoredDocument{
			Document: doc,
			Chunks:   append([]domain.Chunk(nil), s.chunks[id]...),
		})
	}
	return docs, nil
}

// GetDocument retrieves a document by ID.
func (s *DocumentStore) GetDocument(_ context.Context, id string) (*domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.documents[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &doc, nil
}

// ListDocuments returns summaries, newest first.
func (s *DocumentStore) ListDocuments(_ context.Context, ownerID string) ([]domain.DocumentSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var summaries []domain.DocumentSummary
	for _, doc := range s.documents {
		if ownerID != "" && doc.Metadata.UploadedBy != ownerID {
			continue
		}
		summaries = append(summaries, domain.DocumentSummary{
			ID:         doc.ID,
			Filename:   doc.Filename,
			Format:     doc.Format,
			ChunkCount: len(s.chunks[doc.ID]),
			Metadata:   doc.Metadata,
			CreatedAt:  doc.CreatedAt,
			UpdatedAt:  doc.UpdatedAt,
		})
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].UpdatedAt.After(summaries[j].UpdatedAt)
	})
	return summaries, nil
}

// DeleteDocument removes a document and its chunks.
func (s *DocumentStore) DeleteDocument(_ context.Context, id, requestingUserID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.documents[id]
	if !ok {
		return "", domain.ErrNotFound
	}
	if requestingUserID != "" && doc.Metadata.UploadedBy != requestingUserID {
		return "", domain.ErrUnauthorized
	}

	delete(s.documents, id)
	delete(s.chunks, id)
	return doc.Filename, nil
}

// Ping always succeeds for the in-memory store.
func (s *DocumentStore) Ping(_ context.Context) error {
	return nil
}
