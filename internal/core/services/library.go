package services

import (
	"context"
	"fmt"
	"math"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/calypso-labs/contexta/internal/chunker"
	"github.com/calypso-labs/contexta/internal/classifier"
	"github.com/calypso-labs/contexta/internal/core/domain"
	"github.com/calypso-labs/contexta/internal/core/ports/driven"
	"github.com/calypso-labs/contexta/internal/core/ports/driving"
	"github.com/calypso-labs/contexta/internal/logger"
)

// Ensure Library implements the interface.
var _ driving.LibraryService = (*Library)(nil)

// Library orchestrates the document lifecycle: ingest (extract, chunk,
// classify, persist, reindex) and delete (remove from both stores,
// reindex). It owns the in-memory index and is safe for concurrent use.
type Library struct {
	store      driven.DocumentStore
	files      driven.FileStore
	extractors driven.ExtractorRegistry
	chunker    *chunker.Chunker

	documentsDir string
	tempDir      string

	index *Index
}

// NewLibrary creates a library rooted at documentsDir with uploads
// staged in tempDir. Both directories are created if missing. The
// index starts empty; call Reload to populate it.
func NewLibrary(
	store driven.DocumentStore,
	files driven.FileStore,
	extractors driven.ExtractorRegistry,
	ch *chunker.Chunker,
	documentsDir, tempDir string,
) (*Library, error) {
	if err := files.EnsureDir(documentsDir); err != nil {
		return nil, fmt.Errorf("preparing documents directory: %w", err)
	}
	if err := files.EnsureDir(tempDir); err != nil {
		return nil, fmt.Errorf("preparing temp directory: %w", err)
	}

	l := &Library{
		store:        store,
		files:        files,
		extractors:   extractors,
		chunker:      ch,
		documentsDir: documentsDir,
		tempDir:      tempDir,
	}
	l.index = NewIndex(l.loadAll)
	return l, nil
}

// StageUpload writes raw upload bytes into the temp directory under a
// unique name and returns the staged file for a later Ingest call.
func (l *Library) StageUpload(name string, data []byte) (driving.StagedFile, error) {
	ext := strings.ToLower(filepath.Ext(name))
	staged := filepath.Join(l.tempDir, uuid.New().String()+ext)

	if err := l.files.Write(staged, data); err != nil {
		return driving.StagedFile{}, fmt.Errorf("staging upload %s: %w", name, err)
	}
	return driving.StagedFile{Name: name, Path: staged, Format: ext}, nil
}

// Ingest processes each staged file independently and rebuilds the
// index exactly once for the whole batch. A failing file contributes
// an error message to the report and never aborts its siblings.
func (l *Library) Ingest(ctx context.Context, files []driving.StagedFile, ownerID string) (*domain.IngestReport, error) {
	logger.Section("Batch Ingest")
	report := &domain.IngestReport{}

	for _, file := range files {
		doc, chunkCount, err := l.ingestOne(ctx, file, ownerID)
		if err != nil {
			logger.Warn("Failed to process %s: %v", file.Name, err)
			report.Errors = append(report.Errors, fmt.Sprintf("%s: %v", file.Name, err))

			// The staged artifact is useless after a failure.
			if rmErr := l.files.Remove(file.Path); rmErr != nil {
				logger.Warn("Could not clean up temp file %s: %v", file.Path, rmErr)
			}
			continue
		}

		report.Successful = append(report.Successful, *doc)
		report.Summary.TotalChunks += chunkCount
		logger.Info("Processed %s (%d chunks)", file.Name, chunkCount)
	}

	report.Summary.TotalProcessed = len(report.Successful)
	report.Summary.TotalErrors = len(report.Errors)

	if err := l.index.Rebuild(ctx); err != nil {
		return report, err
	}
	return report, nil
}

// ingestOne runs the extract, chunk, classify, persist pipeline for a
// single staged file, then moves the artifact into permanent storage.
func (l *Library) ingestOne(ctx context.Context, file driving.StagedFile, ownerID string) (*domain.Document, int, error) {
	format := file.Format
	if format == "" {
		format = strings.ToLower(filepath.Ext(file.Name))
	}

	data, err := l.files.Read(file.Path)
	if err != nil {
		return nil, 0, err
	}

	doc, chunks, err := l.buildDocument(file.Name, format, data, ownerID, domain.OriginStore)
	if err != nil {
		return nil, 0, err
	}

	if err := l.store.SaveDocument(ctx, doc, chunks); err != nil {
		return nil, 0, fmt.Errorf("persisting document: %w", err)
	}

	// The durable store committed; the filesystem copy is a
	// best-effort mirror from here on.
	permanent := filepath.Join(l.documentsDir, file.Name)
	if err := l.files.Move(file.Path, permanent); err != nil {
		logger.Warn("Could not move %s to permanent storage: %v", file.Name, err)
	}

	return doc, len(chunks), nil
}

// buildDocument extracts, validates, chunks, and classifies a file
// into a document with its chunks. Nothing is persisted here.
func (l *Library) buildDocument(name, format string, data []byte, ownerID, origin string) (*domain.Document, []domain.Chunk, error) {
	text, err := l.extractors.Extract(data, name, format)
	if err != nil {
		return nil, nil, err
	}

	if len(strings.TrimSpace(text)) < domain.MinContentLength {
		return nil, nil, domain.ErrInsufficientContent
	}

	category, tags := classifier.Classify(name, text)
	now := time.Now().UTC()

	doc := &domain.Document{
		ID:       uuid.New().String(),
		Filename: name,
		Format:   format,
		Content:  text,
		Origin:   origin,
		Metadata: domain.Metadata{
			Category:   category,
			Tags:       tags,
			Size:       len(text),
			WordCount:  domain.CountWords(text),
			UploadedBy: ownerID,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	pieces := l.chunker.Chunk(text)
	chunks := make([]domain.Chunk, len(pieces))
	for i, piece := range pieces {
		chunks[i] = domain.Chunk{
			ID:         uuid.New().String(),
			DocumentID: doc.ID,
			Source:     doc.Filename,
			Content:    piece,
			Position:   i,
			Category:   category,
		}
	}

	return doc, chunks, nil
}

// Search ranks indexed chunks against the query.
func (l *Library) Search(_ context.Context, query string, limit int) ([]domain.SearchResult, error) {
	return l.index.Search(query, limit), nil
}

// DeleteDocument removes the document from the durable store, removes
// the filesystem mirror best-effort, and rebuilds the index.
func (l *Library) DeleteDocument(ctx context.Context, id, requestingUserID string) (string, error) {
	filename, err := l.store.DeleteDocument(ctx, id, requestingUserID)
	if err != nil {
		return "", err
	}

	// The store deletion is the source of truth; a stale file copy is
	// only worth a warning.
	if err := l.files.Remove(filepath.Join(l.documentsDir, filename)); err != nil {
		logger.Warn("Could not delete file from filesystem: %s", filename)
	}

	if err := l.index.Rebuild(ctx); err != nil {
		return filename, err
	}

	logger.Info("Deleted document: %s", filename)
	return filename, nil
}

// ListDocuments returns document summaries from the durable store.
func (l *Library) ListDocuments(ctx context.Context, ownerID string) ([]domain.DocumentSummary, error) {
	return l.store.ListDocuments(ctx, ownerID)
}

// Stats derives corpus statistics from the current index snapshot.
func (l *Library) Stats() domain.Stats {
	docs := l.index.Documents()
	chunks := l.index.Chunks()

	stats := domain.Stats{
		TotalDocuments: len(docs),
		TotalChunks:    len(chunks),
	}

	seen := make(map[string]bool)
	for _, doc := range docs {
		if cat := doc.Metadata.Category; !seen[cat] {
			seen[cat] = true
			stats.Categories = append(stats.Categories, cat)
		}
		stats.TotalWordCount += doc.Metadata.WordCount
	}

	if len(docs) > 0 {
		stats.AvgChunksPerDoc = math.Round(float64(len(chunks))/float64(len(docs))*10) / 10
		stats.AvgWordsPerDoc = int(math.Round(float64(stats.TotalWordCount) / float64(len(docs))))
	}
	return stats
}

// Reload forces a full load from both backing stores followed by an
// index rebuild.
func (l *Library) Reload(ctx context.Context) error {
	return l.index.Rebuild(ctx)
}

// Formats lists recognized file formats with conversion hints.
func (l *Library) Formats() []domain.FormatInfo {
	return l.extractors.Formats()
}

// Health checks the durable store and both directories.
func (l *Library) Health(ctx context.Context) domain.Health {
	h := domain.Health{
		DocumentsLoaded: len(l.index.Documents()),
		ChunksAvailable: len(l.index.Chunks()),
	}

	if err := l.store.Ping(ctx); err != nil {
		h.Detail = fmt.Sprintf("store unreachable: %v", err)
		return h
	}
	h.StoreReachable = true

	for _, dir := range []string{l.documentsDir, l.tempDir} {
		if _, err := l.files.List(dir); err != nil {
			h.Detail = fmt.Sprintf("directory inaccessible: %v", err)
			return h
		}
	}
	h.DirectoriesExist = true
	h.Healthy = true
	return h
}

// loadAll assembles the full corpus for an index rebuild: documents
// from the durable store plus supported files in the documents
// directory that the store does not know about yet.
func (l *Library) loadAll(ctx context.Context) ([]domain.Document, []domain.Chunk, error) {
	logger.Section("Loading Documents")

	stored, err := l.store.LoadAll(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("loading from store: %w", err)
	}

	var docs []domain.Document
	var chunks []domain.Chunk
	known := make(map[string]bool)

	for _, sd := range stored {
		known[sd.Document.Filename] = true
		docs = append(docs, sd.Document)
		for _, chunk := range sd.Chunks {
			chunk.Source = sd.Document.Filename
			chunk.Category = sd.Document.Metadata.Category
			chunks = append(chunks, chunk)
		}
	}
	logger.Debug("Loaded %d documents from store", len(stored))

	fsDocs, fsChunks := l.loadFromFilesystem(known)
	docs = append(docs, fsDocs...)
	chunks = append(chunks, fsChunks...)

	logger.Info("Loaded %d documents with %d total chunks", len(docs), len(chunks))
	return docs, chunks, nil
}

// loadFromFilesystem scans the documents directory for supported files
// whose names the store does not already track. Per-file failures are
// logged and skipped so one bad file never hides the rest.
func (l *Library) loadFromFilesystem(known map[string]bool) ([]domain.Document, []domain.Chunk) {
	names, err := l.files.List(l.documentsDir)
	if err != nil {
		logger.Warn("Could not scan documents directory: %v", err)
		return nil, nil
	}

	var docs []domain.Document
	var chunks []domain.Chunk

	for _, name := range names {
		ext := strings.ToLower(filepath.Ext(name))
		if known[name] || !l.extractors.Supported(ext) {
			continue
		}

		data, err := l.files.Read(filepath.Join(l.documentsDir, name))
		if err != nil {
			logger.Warn("Failed to read %s: %v", name, err)
			continue
		}

		doc, docChunks, err := l.buildDocument(name, ext, data, "", domain.OriginFilesystem)
		if err != nil {
			logger.Warn("Skipping %s: %v", name, err)
			continue
		}

		docs = append(docs, *doc)
		chunks = append(chunks, docChunks...)
		logger.Debug("Processed %s (%d chunks)", name, len(docChunks))
	}

	return docs, chunks
}
