package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show corpus statistics",
	RunE:  runStats,
}

var formatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "List recognized file formats",
	RunE:  runFormats,
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the library's backing stores",
	RunE:  runHealth,
}

var reloadCmd = &cobra.Command{
	Use:   "reload",
	Short: "Force a full reload and index rebuild",
	Long: `Reloads every document from the durable store and the documents
directory, then rebuilds the in-memory index. Use this after changing
the backing store out-of-band.`,
	RunE: runReload,
}

func init() {
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(formatsCmd)
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(reloadCmd)
}

func runStats(cmd *cobra.Command, _ []string) error {
	stats := library.Stats()

	cmd.Printf("Documents:        %d\n", stats.TotalDocuments)
	cmd.Printf("Chunks:           %d\n", stats.TotalChunks)
	cmd.Printf("Categories:       %s\n", strings.Join(stats.Categories, ", "))
	cmd.Printf("Avg chunks/doc:   %.1f\n", stats.AvgChunksPerDoc)
	cmd.Printf("Total words:      %d\n", stats.TotalWordCount)
	cmd.Printf("Avg words/doc:    %d\n", stats.AvgWordsPerDoc)
	return nil
}

func runFormats(cmd *cobra.Command, _ []string) error {
	for _, f := range library.Formats() {
		if f.Supported {
			cmd.Printf("  %-6s supported\n", f.Extension)
		} else {
			cmd.Printf("  %-6s unsupported (%s)\n", f.Extension, f.Hint)
		}
	}
	return nil
}

func runHealth(cmd *cobra.Command, _ []string) error {
	h := library.Health(cmd.Context())

	status := "healthy"
	if !h.Healthy {
		status = "unhealthy: " + h.Detail
	}
	cmd.Printf("Status:    %s\n", status)
	cmd.Printf("Documents: %d\n", h.DocumentsLoaded)
	cmd.Printf("Chunks:    %d\n", h.ChunksAvailable)
	return nil
}

func runReload(cmd *cobra.Command, _ []string) error {
	if err := library.Reload(cmd.Context()); err != nil {
		return err
	}

	stats := library.Stats()
	cmd.Printf("Reloaded %d documents with %d chunks\n", stats.TotalDocuments, stats.TotalChunks)
	return nil
}
