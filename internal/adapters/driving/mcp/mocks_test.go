package mcp

import (
	"context"

	"github.com/calypso-labs/contexta/internal/core/domain"
	"github.com/calypso-labs/contexta/internal/core/ports/driving"
)

// mockLibraryService implements driving.LibraryService for testing.
type mockLibraryService struct {
	results   []domain.SearchResult
	summaries []domain.DocumentSummary
	stats     domain.Stats
	err       error

	// lastLimit records the limit passed to Search.
	lastLimit int
}

var _ driving.LibraryService = (*mockLibraryService)(nil)

func (m *mockLibraryService) StageUpload(name string, _ []byte) (driving.StagedFile, error) {
	return driving.StagedFile{Name: name}, m.err
}

func (m *mockLibraryService) Ingest(_ context.Context, _ []driving.StagedFile, _ string) (*domain.IngestReport, error) {
	return &domain.IngestReport{}, m.err
}

func (m *mockLibraryService) Search(_ context.Context, _ string, limit int) ([]domain.SearchResult, error) {
	m.lastLimit = limit
	if m.err != nil {
		return nil, m.err
	}
	if limit < len(m.results) {
		return m.results[:limit], nil
	}
	return m.results, nil
}

func (m *mockLibraryService) DeleteDocument(_ context.Context, _, _ string) (string, error) {
	return "", m.err
}

func (m *mockLibraryService) ListDocuments(_ context.Context, ownerID string) ([]domain.DocumentSummary, error) {
	if m.err != nil {
		return nil, m.err
	}
	if ownerID == "" {
		return m.summaries, nil
	}
	var filtered []domain.DocumentSummary
	for _, sum := range m.summaries {
		if sum.Metadata.UploadedBy == ownerID {
			filtered = append(filtered, sum)
		}
	}
	return filtered, nil
}

func (m *mockLibraryService) Stats() domain.Stats {
	return m.stats
}

func (m *mockLibraryService) Reload(_ context.Context) error {
	return m.err
}

func (m *mockLibraryService) Formats() []domain.FormatInfo {
	return nil
}

func (m *mockLibraryService) Health(_ context.Context) domain.Health {
	return domain.Health{Healthy: m.err == nil}
}
