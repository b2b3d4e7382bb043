// Package cli implements the cobra command tree for the contexta
// binary. Commands are thin shells over the LibraryService driving
// port; all business logic lives in the core services.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	configfile "github.com/calypso-labs/contexta/internal/adapters/driven/config/file"
	"github.com/calypso-labs/contexta/internal/adapters/driven/filestore/local"
	"github.com/calypso-labs/contexta/internal/adapters/driven/storage/sqlite"
	"github.com/calypso-labs/contexta/internal/chunker"
	"github.com/calypso-labs/contexta/internal/core/ports/driving"
	"github.com/calypso-labs/contexta/internal/core/services"
	"github.com/calypso-labs/contexta/internal/extractors"
	"github.com/calypso-labs/contexta/internal/logger"
)

var (
	verboseFlag bool
	configPath  string

	cfg     configfile.Config
	library driving.LibraryService
	store   *sqlite.Store
)

var rootCmd = &cobra.Command{
	Use:   "contexta",
	Short: "Ingest documents and retrieve relevance-ranked context",
	Long: `Contexta turns documents into searchable text chunks and serves
relevance-ranked chunks back on demand, for use as contextual
augmentation by AI assistants and other consumers.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		logger.SetVerbose(verboseFlag)
		if cmd.Name() == "version" {
			return nil
		}
		return initLibrary(cmd)
	},
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		if store != nil {
			store.Close() //nolint:errcheck
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config.toml (default ~/.contexta/config.toml)")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// initLibrary loads configuration and wires the service graph: sqlite
// store, local filestore, extractor registry, chunker, library.
func initLibrary(cmd *cobra.Command) error {
	path := configPath
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		path = filepath.Join(home, ".contexta", "config.toml")
	}

	var err error
	cfg, err = configfile.Load(path)
	if err != nil {
		return err
	}

	store, err = sqlite.NewStore(cfg.DataDir)
	if err != nil {
		return fmt.Errorf("opening document store: %w", err)
	}

	lib, err := services.NewLibrary(
		store,
		local.New(),
		extractors.NewRegistry(),
		chunker.New(
			chunker.WithMaxChunkSize(cfg.MaxChunkSize),
			chunker.WithOverlapSize(cfg.OverlapSize),
		),
		cfg.DocumentsDir,
		cfg.TempDir,
	)
	if err != nil {
		return err
	}

	if err := lib.Reload(cmd.Context()); err != nil {
		return err
	}

	library = lib
	return nil
}
