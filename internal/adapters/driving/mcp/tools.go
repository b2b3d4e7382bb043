package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// SearchInput is the input schema for the search tool.
type SearchInput struct {
	Query string `json:"query" jsonschema:"the search query to find relevant document chunks"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum number of chunks to return (default 5)"`
}

// SearchOutput is the output schema for the search tool.
type SearchOutput struct {
	Results []SearchResultOutput `json:"results"`
	Count   int                  `json:"count"`
}

// SearchResultOutput represents a single retrieved chunk.
type SearchResultOutput struct {
	DocumentID     string `json:"document_id"`
	Source         string `json:"source"`
	Category       string `json:"category"`
	Content        string `json:"content"`
	Score          int    `json:"score"`
	ExactMatches   int    `json:"exact_matches"`
	PartialMatches int    `json:"partial_matches"`
	Relevance      string `json:"relevance"`
}

// ListDocumentsInput is the input schema for the list_documents tool.
type ListDocumentsInput struct {
	Owner string `json:"owner,omitempty" jsonschema:"filter to documents uploaded by this user id"`
}

// ListDocumentsOutput is the output schema for the list_documents tool.
type ListDocumentsOutput struct {
	Documents []DocumentOutput `json:"documents"`
	Count     int              `json:"count"`
}

// DocumentOutput represents one document summary.
type DocumentOutput struct {
	ID         string   `json:"id"`
	Filename   string   `json:"filename"`
	Format     string   `json:"format"`
	Category   string   `json:"category"`
	Tags       []string `json:"tags,omitempty"`
	ChunkCount int      `json:"chunk_count"`
	WordCount  int      `json:"word_count"`
	UploadedBy string   `json:"uploaded_by,omitempty"`
}

// StatsOutput is the output schema for the get_stats tool.
type StatsOutput struct {
	TotalDocuments  int      `json:"total_documents"`
	TotalChunks     int      `json:"total_chunks"`
	Categories      []string `json:"categories"`
	AvgChunksPerDoc float64  `json:"avg_chunks_per_doc"`
	TotalWordCount  int      `json:"total_word_count"`
	AvgWordsPerDoc  int      `json:"avg_words_per_doc"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search",
		Description: "Search the document library for chunks relevant to a query",
	}, s.handleSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_documents",
		Description: "List ingested documents with their categories and tags",
	}, s.handleListDocuments)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_stats",
		Description: "Get statistics about the indexed document corpus",
	}, s.handleStats)
}

// handleSearch handles the search tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = 5
	}

	results, err := s.ports.Library.Search(ctx, input.Query, limit)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	output := SearchOutput{
		Results: make([]SearchResultOutput, len(results)),
		Count:   len(results),
	}

	for i := range results {
		output.Results[i] = SearchResultOutput{
			DocumentID:     results[i].Chunk.DocumentID,
			Source:         results[i].Chunk.Source,
			Category:       results[i].Chunk.Category,
			Content:        results[i].Chunk.Content,
			Score:          results[i].Score,
			ExactMatches:   results[i].ExactMatches,
			PartialMatches: results[i].PartialMatches,
			Relevance:      results[i].Relevance,
		}
	}

	return nil, output, nil
}

// handleListDocuments handles the list_documents tool invocation.
func (s *Server) handleListDocuments(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListDocumentsInput,
) (*mcp.CallToolResult, ListDocumentsOutput, error) {
	summaries, err := s.ports.Library.ListDocuments(ctx, input.Owner)
	if err != nil {
		return nil, ListDocumentsOutput{}, err
	}

	output := ListDocumentsOutput{
		Documents: make([]DocumentOutput, len(summaries)),
		Count:     len(summaries),
	}

	for i, sum := range summaries {
		output.Documents[i] = DocumentOutput{
			ID:         sum.ID,
			Filename:   sum.Filename,
			Format:     sum.Format,
			Category:   sum.Metadata.Category,
			Tags:       sum.Metadata.Tags,
			ChunkCount: sum.ChunkCount,
			WordCount:  sum.Metadata.WordCount,
			UploadedBy: sum.Metadata.UploadedBy,
		}
	}

	return nil, output, nil
}

// handleStats handles the get_stats tool invocation.
func (s *Server) handleStats(
	_ context.Context,
	_ *mcp.CallToolRequest,
	_ struct{},
) (*mcp.CallToolResult, StatsOutput, error) {
	stats := s.ports.Library.Stats()

	return nil, StatsOutput{
		TotalDocuments:  stats.TotalDocuments,
		TotalChunks:     stats.TotalChunks,
		Categories:      stats.Categories,
		AvgChunksPerDoc: stats.AvgChunksPerDoc,
		TotalWordCount:  stats.TotalWordCount,
		AvgWordsPerDoc:  stats.AvgWordsPerDoc,
	}, nil
}
