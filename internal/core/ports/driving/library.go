package driving

import (
	"context"

	"github.com/calypso-labs/contexta/internal/core/domain"
)

// StagedFile is one upload staged in the temp directory, ready for
// ingestion. Path points at the temp artifact; Name is the original
// file name the document will keep.
type StagedFile struct {
	// Name is the original file name, e.g. "risk-plan.docx".
	Name string

	// Path is the location of the staged temp file.
	Path string

	// Format is the declared extension; derived from Name when empty.
	Format string
}

// LibraryService is the contract the document library exposes to
// callers. It owns the ingest/delete lifecycle and the in-memory index.
type LibraryService interface {
	// StageUpload writes raw upload bytes into the temp directory and
	// returns the staged file for a later Ingest call.
	StageUpload(name string, data []byte) (StagedFile, error)

	// Ingest processes each staged file independently: extract, chunk,
	// classify, persist, then move the temp artifact into permanent
	// storage. Per-file failures are reported, never fatal. The index
	// is rebuilt exactly once after the whole batch.
	Ingest(ctx context.Context, files []StagedFile, ownerID string) (*domain.IngestReport, error)

	// Search ranks indexed chunks against the query and returns at
	// most limit results, highest relevance first.
	Search(ctx context.Context, query string, limit int) ([]domain.SearchResult, error)

	// DeleteDocument removes the document from the durable store and
	// the filesystem mirror, then rebuilds the index. It returns the
	// deleted filename.
	DeleteDocument(ctx context.Context, id, requestingUserID string) (string, error)

	// ListDocuments returns document summaries, newest first,
	// optionally filtered to one owner.
	ListDocuments(ctx context.Context, ownerID string) ([]domain.DocumentSummary, error)

	// Stats derives corpus statistics from the current index snapshot.
	Stats() domain.Stats

	// Reload forces a full load from both backing stores followed by
	// an index rebuild. Used when the backing store changed out-of-band.
	Reload(ctx context.Context) error

	// Formats lists recognized file formats with conversion hints.
	Formats() []domain.FormatInfo

	// Health checks the durable store and directories.
	Health(ctx context.Context) domain.Health
}
