package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/calypso-labs/contexta/internal/core/domain"
)

var (
	listOwner  string
	listJSON   bool
	deleteUser string
)

var documentCmd = &cobra.Command{
	Use:     "document",
	Aliases: []string{"doc"},
	Short:   "Manage ingested documents",
}

var documentListCmd = &cobra.Command{
	Use:   "list",
	Short: "List ingested documents",
	RunE:  runDocumentList,
}

var documentDeleteCmd = &cobra.Command{
	Use:   "delete [id]...",
	Short: "Delete documents by id",
	Long: `Deletes each document from the durable store and the filesystem
mirror, then rebuilds the index. Ids are processed independently;
failures are reported per id.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runDocumentDelete,
}

func init() {
	documentListCmd.Flags().StringVar(&listOwner, "owner", "", "only list documents uploaded by this user id")
	documentListCmd.Flags().BoolVar(&listJSON, "json", false, "output as JSON")
	documentDeleteCmd.Flags().StringVar(&deleteUser, "user", "", "requesting user id; deletion is refused for non-owners")

	documentCmd.AddCommand(documentListCmd)
	documentCmd.AddCommand(documentDeleteCmd)
	rootCmd.AddCommand(documentCmd)
}

func runDocumentList(cmd *cobra.Command, _ []string) error {
	summaries, err := library.ListDocuments(cmd.Context(), listOwner)
	if err != nil {
		return fmt.Errorf("listing documents: %w", err)
	}

	if listJSON {
		data, err := json.MarshalIndent(summaries, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal documents: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(summaries) == 0 {
		cmd.Println("No documents ingested.")
		return nil
	}

	for _, sum := range summaries {
		cmd.Printf("%s  %s [%s] %d chunks, %d words",
			sum.ID, sum.Filename, sum.Metadata.Category, sum.ChunkCount, sum.Metadata.WordCount)
		if len(sum.Metadata.Tags) > 0 {
			cmd.Printf("  tags: %s", strings.Join(sum.Metadata.Tags, ", "))
		}
		cmd.Println()
	}
	return nil
}

func runDocumentDelete(cmd *cobra.Command, args []string) error {
	var failed int
	for _, id := range args {
		filename, err := library.DeleteDocument(cmd.Context(), id, deleteUser)
		if err != nil {
			failed++
			switch {
			case errors.Is(err, domain.ErrNotFound):
				cmd.Printf("  ! %s: not found\n", id)
			case errors.Is(err, domain.ErrUnauthorized):
				cmd.Printf("  ! %s: %v\n", id, err)
			default:
				cmd.Printf("  ! %s: %v\n", id, err)
			}
			continue
		}
		cmd.Printf("  - deleted %s\n", filename)
	}

	if failed > 0 {
		return fmt.Errorf("%d document(s) could not be deleted", failed)
	}
	return nil
}
