package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calypso-labs/contexta/internal/core/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() }) //nolint:errcheck
	return store
}

func testDocument(id, owner string) (*domain.Document, []domain.Chunk) {
	now := time.Now().UTC().Truncate(time.Second)
	doc := &domain.Document{
		ID:       id,
		Filename: id + ".txt",
		Format:   ".txt",
		Content:  "The project plan covers scope, schedule, and budget in detail.",
		Origin:   domain.OriginStore,
		Metadata: domain.Metadata{
			Category:   "project_management",
			Tags:       []string{"planning", "budget"},
			Size:       62,
			WordCount:  10,
			UploadedBy: owner,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	chunks := []domain.Chunk{
		{ID: id + "-c0", DocumentID: id, Position: 0, Content: "The project plan covers scope."},
		{ID: id + "-c1", DocumentID: id, Position: 1, Content: "Schedule and budget in detail."},
	}
	return doc, chunks
}

func TestNewStore(t *testing.T) {
	dir := t.TempDir()

	store, err := NewStore(dir)
	require.NoError(t, err)
	defer store.Close()

	assert.Equal(t, filepath.Join(dir, "library.db"), store.Path())
	_, err = os.Stat(store.Path())
	assert.NoError(t, err, "database file should exist")

	assert.NoError(t, store.Ping(context.Background()))
}

func TestStore_MigrationsIdempotent(t *testing.T) {
	dir := t.TempDir()

	store, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	// Reopening must not rerun applied migrations.
	store, err = NewStore(dir)
	require.NoError(t, err)
	defer store.Close()
	assert.NoError(t, store.Ping(context.Background()))
}

func TestStore_SaveAndGetDocument(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	doc, chunks := testDocument("doc1", "alice")
	require.NoError(t, store.SaveDocument(ctx, doc, chunks))

	got, err := store.GetDocument(ctx, "doc1")
	require.NoError(t, err)

	assert.Equal(t, doc.Filename, got.Filename)
	assert.Equal(t, doc.Content, got.Content)
	assert.Equal(t, doc.Metadata.Category, got.Metadata.Category)
	assert.Equal(t, doc.Metadata.Tags, got.Metadata.Tags)
	assert.Equal(t, "alice", got.Metadata.UploadedBy)
	assert.Equal(t, domain.OriginStore, got.Origin)
}

func TestStore_GetDocument_NotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.GetDocument(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStore_LoadAll(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	doc1, chunks1 := testDocument("doc1", "alice")
	doc2, chunks2 := testDocument("doc2", "bob")
	doc2.UpdatedAt = doc2.UpdatedAt.Add(time.Minute)
	require.NoError(t, store.SaveDocument(ctx, doc1, chunks1))
	require.NoError(t, store.SaveDocument(ctx, doc2, chunks2))

	stored, err := store.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, stored, 2)

	// Newest first.
	assert.Equal(t, "doc2", stored[0].Document.ID)
	assert.Equal(t, "doc1", stored[1].Document.ID)

	for _, sd := range stored {
		require.Len(t, sd.Chunks, 2)
		for i, chunk := range sd.Chunks {
			assert.Equal(t, i, chunk.Position, "chunks must come back in position order")
			assert.Equal(t, sd.Document.Filename, chunk.Source)
			assert.Equal(t, sd.Document.Metadata.Category, chunk.Category)
		}
	}
}

func TestStore_LoadAll_Empty(t *testing.T) {
	store := newTestStore(t)

	stored, err := store.LoadAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestStore_ListDocuments(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	doc1, chunks1 := testDocument("doc1", "alice")
	doc2, chunks2 := testDocument("doc2", "bob")
	require.NoError(t, store.SaveDocument(ctx, doc1, chunks1))
	require.NoError(t, store.SaveDocument(ctx, doc2, chunks2))

	t.Run("all documents", func(t *testing.T) {
		summaries, err := store.ListDocuments(ctx, "")
		require.NoError(t, err)
		require.Len(t, summaries, 2)

		for _, sum := range summaries {
			assert.Equal(t, 2, sum.ChunkCount)
			assert.NotEmpty(t, sum.Metadata.Tags)
			assert.NotEmpty(t, sum.Metadata.Category)
		}
	})

	t.Run("owner filter", func(t *testing.T) {
		summaries, err := store.ListDocuments(ctx, "alice")
		require.NoError(t, err)
		require.Len(t, summaries, 1)
		assert.Equal(t, "doc1", summaries[0].ID)
	})

	t.Run("unknown owner", func(t *testing.T) {
		summaries, err := store.ListDocuments(ctx, "nobody")
		require.NoError(t, err)
		assert.Empty(t, summaries)
	})
}

func TestStore_DeleteDocument(t *testing.T) {
	ctx := context.Background()

	t.Run("owner deletes document and chunks", func(t *testing.T) {
		store := newTestStore(t)
		doc, chunks := testDocument("doc1", "alice")
		require.NoError(t, store.SaveDocument(ctx, doc, chunks))

		filename, err := store.DeleteDocument(ctx, "doc1", "alice")
		require.NoError(t, err)
		assert.Equal(t, "doc1.txt", filename)

		_, err = store.GetDocument(ctx, "doc1")
		assert.ErrorIs(t, err, domain.ErrNotFound)

		stored, err := store.LoadAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, stored, "chunks must not survive their document")
	})

	t.Run("empty requester skips ownership check", func(t *testing.T) {
		store := newTestStore(t)
		doc, chunks := testDocument("doc1", "alice")
		require.NoError(t, store.SaveDocument(ctx, doc, chunks))

		_, err := store.DeleteDocument(ctx, "doc1", "")
		assert.NoError(t, err)
	})

	t.Run("non owner rejected without mutation", func(t *testing.T) {
		store := newTestStore(t)
		doc, chunks := testDocument("doc1", "alice")
		require.NoError(t, store.SaveDocument(ctx, doc, chunks))

		_, err := store.DeleteDocument(ctx, "doc1", "bob")
		assert.ErrorIs(t, err, domain.ErrUnauthorized)

		got, err := store.GetDocument(ctx, "doc1")
		require.NoError(t, err)
		assert.Equal(t, "doc1", got.ID)
	})

	t.Run("unknown id", func(t *testing.T) {
		store := newTestStore(t)

		_, err := store.DeleteDocument(ctx, "missing", "alice")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestStore_SaveDocument_DuplicateID(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	doc, chunks := testDocument("doc1", "alice")
	require.NoError(t, store.SaveDocument(ctx, doc, chunks))

	err := store.SaveDocument(ctx, doc, chunks)
	require.Error(t, err)

	// The failed insert must not leave orphan chunks behind.
	stored, err := store.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Len(t, stored[0].Chunks, 2)
}
