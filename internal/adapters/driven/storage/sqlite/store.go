package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/calypso-labs/contexta/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/calypso-labs/contexta/internal/core/domain"
	"github.com/calypso-labs/contexta/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.DocumentStore = (*Store)(nil)

// Store is the SQLite-backed document store. It is the single source
// of truth for uploaded documents and their chunks.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a SQLite store inside dataDir, creating the
// directory and running pending migrations as needed.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".contexta", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "library.db")

	// WAL mode so searches keep working while an ingest writes
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &Store{db: db, path: dbPath}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Ping verifies the store is reachable.
func (s *Store) Ping(ctx context.Context) error {
	var one int
	return s.db.QueryRowContext(ctx, "SELECT 1").Scan(&one)
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".up.sql") {
			upFiles = append(upFiles, entry.Name())
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// SaveDocument inserts the document and all of its chunks in a single
// transaction. On any failure the transaction rolls back and no
// partial document exists.
func (s *Store) SaveDocument(ctx context.Context, doc *domain.Document, chunks []domain.Chunk) error {
	metadataJSON, err := json.Marshal(doc.Metadata.Tags)
	if err != nil {
		return fmt.Errorf("marshalling tags: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	_, err = tx.ExecContext(ctx, `
		INSERT INTO documents (id, owner_id, filename, format, content, category, tags,
			size, word_count, chunk_count, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, doc.ID, doc.Metadata.UploadedBy, doc.Filename, doc.Format, doc.Content,
		doc.Metadata.Category, string(metadataJSON), doc.Metadata.Size,
		doc.Metadata.WordCount, len(chunks), doc.CreatedAt, doc.UpdatedAt)
	if err != nil {
		return fmt.Errorf("inserting document: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO chunks (id, document_id, position, content)
		VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing chunk insert: %w", err)
	}
	defer stmt.Close()

	for _, chunk := range chunks {
		if _, err := stmt.ExecContext(ctx, chunk.ID, doc.ID, chunk.Position, chunk.Content); err != nil {
			return fmt.Errorf("inserting chunk %d: %w", chunk.Position, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// LoadAll returns every stored document joined with its chunks.
func (s *Store) LoadAll(ctx context.Context) ([]driven.StoredDocument, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, owner_id, filename, format, content, category, tags,
			size, word_count, created_at, updated_at
		FROM documents
		ORDER BY updated_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("querying documents: %w", err)
	}
	defer rows.Close()

	var docs []driven.StoredDocument
	byID := make(map[string]int)

	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		byID[doc.ID] = len(docs)
		docs = append(docs, driven.StoredDocument{Document: *doc})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating documents: %w", err)
	}

	chunkRows, err := s.db.QueryContext(ctx, `
		SELECT id, document_id, position, content
		FROM chunks
		ORDER BY document_id, position
	`)
	if err != nil {
		return nil, fmt.Errorf("querying chunks: %w", err)
	}
	defer chunkRows.Close()

	for chunkRows.Next() {
		var chunk domain.Chunk
		if err := chunkRows.Scan(&chunk.ID, &chunk.DocumentID, &chunk.Position, &chunk.Content); err != nil {
			return nil, fmt.Errorf("scanning chunk: %w", err)
		}
		if i, ok := byID[chunk.DocumentID]; ok {
			chunk.Source = docs[i].Document.Filename
			chunk.Category = docs[i].Document.Metadata.Category
			docs[i].Chunks = append(docs[i].Chunks, chunk)
		}
	}
	if err := chunkRows.Err(); err != nil {
		return nil, fmt.Errorf("iterating chunks: %w", err)
	}

	return docs, nil
}

// GetDocument retrieves a document by ID without its chunks.
func (s *Store) GetDocument(ctx context.Context, id string) (*domain.Document, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, owner_id, filename, format, content, category, tags,
			size, word_count, created_at, updated_at
		FROM documents WHERE id = ?
	`, id)
	if err != nil {
		return nil, fmt.Errorf("querying document: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("querying document: %w", err)
		}
		return nil, domain.ErrNotFound
	}
	return scanDocument(rows)
}

// ListDocuments returns summaries, newest first, optionally filtered
// by owner.
func (s *Store) ListDocuments(ctx context.Context, ownerID string) ([]domain.DocumentSummary, error) {
	query := `
		SELECT id, owner_id, filename, format, category, tags,
			size, word_count, chunk_count, created_at, updated_at
		FROM documents
	`
	var args []any
	if ownerID != "" {
		query += " WHERE owner_id = ?"
		args = append(args, ownerID)
	}
	query += " ORDER BY updated_at DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying documents: %w", err)
	}
	defer rows.Close()

	var summaries []domain.DocumentSummary
	for rows.Next() {
		var sum domain.DocumentSummary
		var tagsJSON string
		err := rows.Scan(&sum.ID, &sum.Metadata.UploadedBy, &sum.Filename, &sum.Format,
			&sum.Metadata.Category, &tagsJSON, &sum.Metadata.Size,
			&sum.Metadata.WordCount, &sum.ChunkCount, &sum.CreatedAt, &sum.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("scanning summary: %w", err)
		}
		if err := json.Unmarshal([]byte(tagsJSON), &sum.Metadata.Tags); err != nil {
			sum.Metadata.Tags = nil
		}
		summaries = append(summaries, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating summaries: %w", err)
	}
	return summaries, nil
}

// DeleteDocument removes a document's chunks then the document itself.
// When requestingUserID is supplied, ownership is verified first and a
// mismatch aborts without mutating anything.
func (s *Store) DeleteDocument(ctx context.Context, id, requestingUserID string) (string, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	var filename, ownerID string
	row := tx.QueryRowContext(ctx, "SELECT filename, owner_id FROM documents WHERE id = ?", id)
	if err := row.Scan(&filename, &ownerID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", domain.ErrNotFound
		}
		return "", fmt.Errorf("looking up document: %w", err)
	}

	if requestingUserID != "" && ownerID != requestingUserID {
		return "", domain.ErrUnauthorized
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM chunks WHERE document_id = ?", id); err != nil {
		return "", fmt.Errorf("deleting chunks: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM documents WHERE id = ?", id); err != nil {
		return "", fmt.Errorf("deleting document: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("committing transaction: %w", err)
	}
	return filename, nil
}

// scanDocument reads one full document row. The caller positions rows
// with Next before calling.
func scanDocument(rows *sql.Rows) (*domain.Document, error) {
	var doc domain.Document
	var tagsJSON string
	err := rows.Scan(&doc.ID, &doc.Metadata.UploadedBy, &doc.Filename, &doc.Format,
		&doc.Content, &doc.Metadata.Category, &tagsJSON, &doc.Metadata.Size,
		&doc.Metadata.WordCount, &doc.CreatedAt, &doc.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("scanning document: %w", err)
	}
	if err := json.Unmarshal([]byte(tagsJSON), &doc.Metadata.Tags); err != nil {
		doc.Metadata.Tags = nil
	}
	doc.Origin = domain.OriginStore
	return &doc, nil
}
