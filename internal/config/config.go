// Package config provides configuration loading and structs for the Tafuta server.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hyperjump/tafuta/internal/ranking"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application.
type Config struct {
	Debug   bool                  `yaml:"debug"`
	Server  ServerConfig          `yaml:"server"`
	Storage StorageConfig         `yaml:"storage"`
	Search  SearchConfig          `yaml:"search"`
	Ranking ranking.RankingConfig `yaml:"ranking"`
	Sources []SourceConfig        `yaml:"sources"`
	Watch   WatchConfig           `yaml:"watch"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// StorageConfig holds the catalog database location.
type StorageConfig struct {
	DatabasePath string `yaml:"database_path"`
}

// SearchConfig holds search session settings.
type SearchConfig struct {
	HistorySize          int    `yaml:"history_size"`
	MaxConcurrentSources int    `yaml:"max_concurrent_sources"`
	DefaultSortBy        string `yaml:"default_sort_by"`
	DefaultSortOrder     string `yaml:"default_sort_order"`
	PagesEnabled         *bool  `yaml:"pages_enabled"`
}

// PagesEnabledOrDefault returns whether navigation pages are searchable; defaults to true when unset.
func (s *SearchConfig) PagesEnabledOrDefault() bool {
	if s.PagesEnabled != nil {
		return *s.PagesEnabled
	}
	return true
}

// Source kinds.
const (
	SourceSQLite = "sqlite"
	SourceFile   = "file"
	SourceHTTP   = "http"
)

// SourceConfig describes one entity collection.
type SourceConfig struct {
	Name string `yaml:"name"`
	// Type is the entity type: customer, product or order.
	Type string `yaml:"type"`
	// Kind is sqlite (the catalog database), file (a YAML/JSON fixture) or http (a REST endpoint).
	Kind  string `yaml:"kind"`
	Path  string `yaml:"path,omitempty"`
	URL   string `yaml:"url,omitempty"`
	Token string `yaml:"token,omitempty"`
}

// WatchConfig holds fixture reload settings.
type WatchConfig struct {
	Enabled    bool `yaml:"enabled"`
	DebounceMS int  `yaml:"debounce_ms"`
}

// Load reads and parses the config file at path, expands paths, and applies defaults.
// Returns an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	ApplyDefaults(&cfg)
	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	configDir := filepath.Dir(path)
	cfg.Storage.DatabasePath = expandPath(cfg.Storage.DatabasePath, configDir)
	for i := range cfg.Sources {
		if cfg.Sources[i].Path != "" {
			cfg.Sources[i].Path = expandPath(cfg.Sources[i].Path, configDir)
		}
	}

	return &cfg, nil
}

// Save writes the config to path.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Validate checks source declarations and sort defaults.
func Validate(cfg *Config) error {
	switch cfg.Search.DefaultSortBy {
	case "relevance", "date", "name", "price":
	default:
		return fmt.Errorf("invalid search.default_sort_by %q", cfg.Search.DefaultSortBy)
	}
	switch cfg.Search.DefaultSortOrder {
	case "asc", "desc":
	default:
		return fmt.Errorf("invalid search.default_sort_order %q", cfg.Search.DefaultSortOrder)
	}
	for i, s := range cfg.Sources {
		switch s.Kind {
		case SourceSQLite:
		case SourceFile:
			if s.Path == "" {
				return fmt.Errorf("sources[%d] (%s): file source needs a path", i, s.Name)
			}
		case SourceHTTP:
			if s.URL == "" {
				return fmt.Errorf("sources[%d] (%s): http source needs a url", i, s.Name)
			}
		default:
			return fmt.Errorf("sources[%d] (%s): unknown kind %q", i, s.Name, s.Kind)
		}
		if s.Type == "" {
			return fmt.Errorf("sources[%d] (%s): missing type", i, s.Name)
		}
	}
	return nil
}

// expandPath converts a path to absolute. Paths starting with "./" are relative to configDir;
// other relative paths are relative to the home directory.
func expandPath(path string, configDir string) string {
	if filepath.IsAbs(path) || path == ":memory:" {
		return path
	}
	if strings.HasPrefix(path, "./") || path == "." {
		return filepath.Join(configDir, path)
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, path)
	}
	return path
}
