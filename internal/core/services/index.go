package services

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/calypso-labs/contexta/internal/core/domain"
	"github.com/calypso-labs/contexta/internal/logger"
)

// Scoring weights for the lexical ranker.
const (
	exactMatchWeight    = 3
	partialMatchWeight  = 1
	categoryMatchBonus  = 2
	minQueryTokenLength = 3
)

// LoadFunc produces the full corpus for an index rebuild: every
// currently known document and the flattened chunks across all of them.
type LoadFunc func(ctx context.Context) ([]domain.Document, []domain.Chunk, error)

// snapshot is one immutable generation of the index. It is built off
// to the side during a rebuild and swapped in atomically, so a search
// always observes a complete generation, never a partial mixture.
type snapshot struct {
	documents []domain.Document
	chunks    []domain.Chunk
}

// Index holds the in-memory chunk collection across all loaded
// documents. It is rebuilt wholesale by Rebuild; there is no
// incremental update path.
type Index struct {
	load LoadFunc

	mu   sync.RWMutex
	snap *snapshot

	// rebuildMu serialises rebuilds relative to each other. Searches
	// proceed concurrently against the current snapshot meanwhile.
	rebuildMu sync.Mutex
}

// NewIndex creates an empty index that rebuilds through load.
func NewIndex(load LoadFunc) *Index {
	return &Index{
		load: load,
		snap: &snapshot{},
	}
}

// Rebuild discards the current chunk collection and replaces it with a
// freshly loaded one. The new snapshot is constructed outside the read
// lock and swapped in atomically. On a load failure the previous
// snapshot stays in place.
func (idx *Index) Rebuild(ctx context.Context) error {
	idx.rebuildMu.Lock()
	defer idx.rebuildMu.Unlock()

	docs, chunks, err := idx.load(ctx)
	if err != nil {
		logger.Warn("Index rebuild failed, keeping previous snapshot: %v", err)
		return fmt.Errorf("rebuilding index: %w", err)
	}

	next := &snapshot{documents: docs, chunks: chunks}

	idx.mu.Lock()
	idx.snap = next
	idx.mu.Unlock()

	logger.Info("Index rebuilt: %d documents, %d chunks", len(docs), len(chunks))
	return nil
}

// current returns the active snapshot.
func (idx *Index) current() *snapshot {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.snap
}

// Documents returns the documents in the active snapshot.
func (idx *Index) Documents() []domain.Document {
	return idx.current().documents
}

// Chunks returns the chunks in the active snapshot.
func (idx *Index) Chunks() []domain.Chunk {
	return idx.current().chunks
}

// Search scores every indexed chunk against the query and returns at
// most limit results ordered by exact matches, then score.
//
// A query that yields no usable tokens (all tokens length <= 2 after
// splitting) returns the first limit chunks unscored so callers always
// get deterministic context rather than an error.
func (idx *Index) Search(query string, limit int) []domain.SearchResult {
	logger.Section("Search Execution")
	logger.Debug("Query: %q", query)

	snap := idx.current()
	if limit <= 0 {
		limit = 5
	}

	tokens := queryTokens(query)
	logger.Debug("Query tokens: %v", tokens)

	if len(tokens) == 0 {
		return headResults(snap.chunks, limit)
	}

	var results []domain.SearchResult
	for _, chunk := range snap.chunks {
		result := scoreChunk(chunk, tokens)
		if result.Score > 0 {
			results = append(results, result)
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].ExactMatches != results[j].ExactMatches {
			return results[i].ExactMatches > results[j].ExactMatches
		}
		return results[i].Score > results[j].Score
	})

	if len(results) > limit {
		results = results[:limit]
	}

	logger.Debug("Found %d relevant chunks", len(results))
	return results
}

// queryTokens lowercases the query, splits on whitespace, and drops
// tokens too short to carry signal.
func queryTokens(query string) []string {
	var tokens []string
	for _, token := range strings.Fields(strings.ToLower(query)) {
		if len(token) >= minQueryTokenLength {
			tokens = append(tokens, token)
		}
	}
	return tokens
}

// headResults returns the first limit chunks unscored, the fallback
// for queries with no usable tokens.
func headResults(chunks []domain.Chunk, limit int) []domain.SearchResult {
	if len(chunks) > limit {
		chunks = chunks[:limit]
	}
	results := make([]domain.SearchResult, len(chunks))
	for i, chunk := range chunks {
		results[i] = domain.SearchResult{Chunk: chunk, Relevance: domain.RelevanceLow}
	}
	return results
}

// scoreChunk accumulates the lexical score of one chunk across all
// query tokens: whole-word occurrences weigh triple, raw substring
// occurrences weigh single, and a category mention earns a fixed bonus.
func scoreChunk(chunk domain.Chunk, tokens []string) domain.SearchResult {
	content := strings.ToLower(chunk.Content)
	category := strings.ToLower(chunk.Category)

	var score, exact, partial int
	for _, token := range tokens {
		exactCount := countWholeWord(content, token)
		partialCount := strings.Count(content, token)

		exact += exactCount
		partial += partialCount
		score += exactCount*exactMatchWeight + partialCount*partialMatchWeight

		if strings.Contains(category, token) {
			score += categoryMatchBonus
		}
	}

	return domain.SearchResult{
		Chunk:          chunk,
		Score:          score,
		ExactMatches:   exact,
		PartialMatches: partial,
		Relevance:      domain.RelevanceFor(exact, partial),
	}
}

// countWholeWord counts word-boundary occurrences of token in content.
// A token that cannot be compiled into a pattern counts zero exact
// matches rather than aborting the query; it still contributes to the
// score through the substring count at partial weight.
func countWholeWord(content, token string) int {
	re, err := regexp.Compile(`\b` + regexp.QuoteMeta(token) + `\b`)
	if err != nil {
		logger.Warn("Skipping whole-word match for token %q: %v", token, err)
		return 0
	}
	return len(re.FindAllStringIndex(content, -1))
}
