// Package csv converts delimited data into a text narrative so simple
// keyword search still finds tabular content.
package csv

import (
	stdcsv "encoding/csv"
	"fmt"
	"strings"

	"github.com/calypso-labs/contexta/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// maxNarratedRecords bounds how many rows are rendered in full; the
// remainder is summarised by a trailing count.
const maxNarratedRecords = 20

// Extractor handles comma-separated value files.
type Extractor struct{}

// New creates a CSV extractor.
func New() *Extractor {
	return &Extractor{}
}

// Extensions returns the extensions this extractor handles.
func (e *Extractor) Extensions() []string {
	return []string{".csv"}
}

// Extract synthesises a narrative containing the column headers, the
// total record count, and up to the first 20 records as "field: value"
// blocks. Malformed CSV falls back to the raw content so the file is
// still indexable.
func (e *Extractor) Extract(data []byte, filename string) (string, error) {
	reader := stdcsv.NewReader(strings.NewReader(string(data)))
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil || len(rows) == 0 {
		return string(data), nil
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = strings.TrimSpace(h)
	}
	records := rows[1:]

	var b strings.Builder
	fmt.Fprintf(&b, "Document: %s\n\n", filename)
	b.WriteString("Data Summary:\n")
	fmt.Fprintf(&b, "Headers: %s\n", strings.Join(headers, ", "))
	fmt.Fprintf(&b, "Total Records: %d\n\n", len(records))

	narrated := len(records)
	if narrated > maxNarratedRecords {
		narrated = maxNarratedRecords
	}

	for i := 0; i < narrated; i++ {
		fmt.Fprintf(&b, "Record %d:\n", i+1)
		for j, header := range headers {
			if j < len(records[i]) {
				if value := strings.TrimSpace(records[i][j]); value != "" {
					fmt.Fprintf(&b, "  %s: %s\n", header, value)
				}
			}
		}
		b.WriteString("\n")
	}

	if len(records) > maxNarratedRecords {
		fmt.Fprintf(&b, "... and %d more records\n", len(records)-maxNarratedRecords)
	}

	return b.String(), nil
}
