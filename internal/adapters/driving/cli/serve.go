package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/calypso-labs/contexta/internal/adapters/driving/mcp"
	"github.com/calypso-labs/contexta/internal/logger"
	"github.com/calypso-labs/contexta/internal/watcher"
)

var (
	serveHTTP  string
	serveWatch bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the library to AI assistants over MCP",
	Long: `Starts a Model Context Protocol server exposing search,
list_documents, and get_stats tools. By default the server speaks MCP
over stdio; pass --http to serve over HTTP instead.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveHTTP, "http", "", "serve MCP over HTTP on this address instead of stdio")
	serveCmd.Flags().BoolVar(&serveWatch, "watch", false, "reload automatically when the documents directory changes")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	server, err := mcp.NewServer(&mcp.Ports{Library: library})
	if err != nil {
		return err
	}

	ctx := cmd.Context()

	if serveWatch {
		w := watcher.New(cfg.DocumentsDir, library.Reload)
		go watchAndWarn(ctx, w)
	}

	if serveHTTP != "" {
		return server.RunHTTP(ctx, serveHTTP)
	}
	return server.Run(ctx)
}

// watchAndWarn runs the watcher and surfaces its exit error. A watcher
// that cannot start (missing documents directory) must not fail
// silently while the server keeps serving.
func watchAndWarn(ctx context.Context, w *watcher.Watcher) {
	if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Warn("Document watcher stopped: %v", err)
	}
}
