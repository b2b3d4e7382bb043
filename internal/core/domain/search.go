package domain

// Relevance buckets derived from how a chunk matched the query.
const (
	RelevanceHigh   = "high"
	RelevanceMedium = "medium"
	RelevanceLow    = "low"
)

// SearchResult represents a single scored chunk for a query.
// Results are transient; they are computed per query and never persisted.
type SearchResult struct {
	// Chunk is the matched chunk.
	Chunk Chunk

	// Score is the accumulated lexical score across query tokens.
	Score int

	// ExactMatches counts whole-word occurrences of query tokens.
	ExactMatches int

	// PartialMatches counts raw substring occurrences of query tokens.
	PartialMatches int

	// Relevance buckets the result: "high" when any exact match was
	// found, "medium" for substring-only matches, "low" otherwise.
	Relevance string
}

// RelevanceFor derives the coarse relevance bucket from match counts.
func RelevanceFor(exact, partial int) string {
	switch {
	case exact > 0:
		return RelevanceHigh
	case partial > 0:
		return RelevanceMedium
	default:
		return RelevanceLow
	}
}
