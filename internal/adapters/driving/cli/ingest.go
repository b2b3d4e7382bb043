package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/calypso-labs/contexta/internal/core/ports/driving"
)

var ingestOwner string

var ingestCmd = &cobra.Command{
	Use:   "ingest [file]...",
	Short: "Ingest documents into the library",
	Long: `Extracts text from each file, splits it into chunks, classifies it,
and persists it. Files are processed independently: a failing file is
reported and skipped, never aborting the batch.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().StringVar(&ingestOwner, "owner", "", "user id to record as the uploader")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	var staged []driving.StagedFile

	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}

		sf, err := library.StageUpload(filepath.Base(path), data)
		if err != nil {
			return err
		}
		staged = append(staged, sf)
	}

	report, err := library.Ingest(cmd.Context(), staged, ingestOwner)
	if err != nil {
		return err
	}

	cmd.Printf("Processed %d of %d files (%d chunks)\n",
		report.Summary.TotalProcessed, len(staged), report.Summary.TotalChunks)

	for _, doc := range report.Successful {
		cmd.Printf("  + %s [%s] %d words\n", doc.Filename, doc.Metadata.Category, doc.Metadata.WordCount)
	}
	for _, msg := range report.Errors {
		cmd.Printf("  ! %s\n", msg)
	}

	if len(report.Errors) > 0 {
		return fmt.Errorf("%d file(s) failed", len(report.Errors))
	}
	return nil
}
