// Package file loads Contexta configuration from a TOML file.
package file

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Config holds all tunable settings. Zero values are replaced with
// defaults by Load, so a missing or partial config file is fine.
type Config struct {
	// DocumentsDir is the permanent home of original files.
	DocumentsDir string `toml:"documents_dir"`

	// TempDir is where uploads are staged before ingestion.
	TempDir string `toml:"temp_dir"`

	// DataDir holds the SQLite database.
	DataDir string `toml:"data_dir"`

	// MaxChunkSize is the chunk size ceiling in characters.
	MaxChunkSize int `toml:"max_chunk_size"`

	// OverlapSize is the chunk overlap budget in characters.
	OverlapSize int `toml:"overlap_size"`

	// SearchLimit is the default number of search results.
	SearchLimit int `toml:"search_limit"`
}

// Default returns the configuration used when no file exists, rooted
// under ~/.contexta.
func Default() Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	root := filepath.Join(home, ".contexta")
	return Config{
		DocumentsDir: filepath.Join(root, "documents"),
		TempDir:      filepath.Join(root, "tmp"),
		DataDir:      filepath.Join(root, "data"),
		MaxChunkSize: 1000,
		OverlapSize:  100,
		SearchLimit:  5,
	}
}

// Load reads the TOML config at path, filling unset fields with
// defaults. A missing file yields the defaults without error.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	applyDefaults(&cfg)
	return cfg, nil
}

// Save writes the config as TOML, creating the parent directory.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing config %s: %w", path, err)
	}
	return nil
}

// applyDefaults replaces zero values with defaults after a partial
// config file load.
func applyDefaults(cfg *Config) {
	def := Default()
	if cfg.DocumentsDir == "" {
		cfg.DocumentsDir = def.DocumentsDir
	}
	if cfg.TempDir == "" {
		cfg.TempDir = def.TempDir
	}
	if cfg.DataDir == "" {
		cfg.DataDir = def.DataDir
	}
	if cfg.MaxChunkSize <= 0 {
		cfg.MaxChunkSize = def.MaxChunkSize
	}
	if cfg.OverlapSize < 0 {
		cfg.OverlapSize = def.OverlapSize
	}
	if cfg.SearchLimit <= 0 {
		cfg.SearchLimit = def.SearchLimit
	}
}
