package domain

// IngestReport summarises a batch ingest. Per-file failures are
// collected in Errors; they never abort sibling files in the batch.
type IngestReport struct {
	// Successful lists the documents that were persisted and indexed.
	Successful []Document

	// Errors holds one human-readable message per failed file.
	Errors []string

	// Summary aggregates the batch outcome.
	Summary IngestSummary
}

// IngestSummary holds batch totals.
type IngestSummary struct {
	TotalProcessed int
	TotalErrors    int
	TotalChunks    int
}

// Stats describes the currently indexed corpus. All values are derived
// from the in-memory index snapshot; no store access is involved.
type Stats struct {
	TotalDocuments  int
	TotalChunks     int
	Categories      []string
	AvgChunksPerDoc float64
	TotalWordCount  int
	AvgWordsPerDoc  int
}

// FormatInfo describes one recognized file extension.
type FormatInfo struct {
	// Extension is the file extension including the leading dot.
	Extension string

	// Supported reports whether an extraction strategy exists.
	Supported bool

	// Hint names the substitute format for unsupported extensions.
	Hint string
}

// Health reports the readiness of the library's backing stores.
type Health struct {
	Healthy          bool
	DocumentsLoaded  int
	ChunksAvailable  int
	StoreReachable   bool
	DirectoriesExist bool
	Detail           string
}
