package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
server:
  host: "127.0.0.1"
  port: 9000
storage:
  database_path: "test.db"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Host != "127.0.0.1" || cfg.Server.Port != 9000 {
		t.Errorf("unexpected server config: %+v", cfg.Server)
	}
	if cfg.Storage.DatabasePath == "" {
		t.Error("database_path should be set")
	}
	if cfg.Debug {
		t.Error("debug should default to false when unset")
	}
	if cfg.Search.HistorySize != 10 || cfg.Search.DefaultSortBy != "relevance" || cfg.Search.DefaultSortOrder != "desc" {
		t.Errorf("search defaults: %+v", cfg.Search)
	}
	if !cfg.Search.PagesEnabledOrDefault() {
		t.Error("pages should be enabled by default")
	}
	if len(cfg.Sources) != 3 || cfg.Sources[0].Kind != SourceSQLite {
		t.Errorf("default sources: %+v", cfg.Sources)
	}
	if cfg.Ranking.NameWeight != 10 || cfg.Ranking.IDWeight != 2 {
		t.Errorf("ranking defaults: %+v", cfg.Ranking)
	}
}

func TestLoad_rankingOverrides(t *testing.T) {
	path := writeConfig(t, `
ranking:
  name_weight: 12
  tags_weight: -1
  locale: sw
search:
  pages_enabled: false
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	w := cfg.Ranking.Weights()
	if w["name"] != 12 {
		t.Errorf("name weight: %d", w["name"])
	}
	if _, ok := w["tags"]; ok {
		t.Error("negative weight should disable tags")
	}
	if cfg.Ranking.Locale != "sw" {
		t.Errorf("locale: %q", cfg.Ranking.Locale)
	}
	if cfg.Search.PagesEnabledOrDefault() {
		t.Error("pages_enabled: false should be honoured")
	}
}

func TestLoad_sourcePathsRelativeToConfigDir(t *testing.T) {
	path := writeConfig(t, `
sources:
  - name: fixture-products
    type: product
    kind: file
    path: ./fixtures/products.yaml
  - type: order
    kind: http
    url: http://localhost:8000/api/sales/
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	want := filepath.Join(filepath.Dir(path), "fixtures", "products.yaml")
	if cfg.Sources[0].Path != want {
		t.Errorf("path: got %q want %q", cfg.Sources[0].Path, want)
	}
	if cfg.Sources[1].Name != "http:order" {
		t.Errorf("default source name: %q", cfg.Sources[1].Name)
	}
}

func TestLoad_invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"bad sort", "search:\n  default_sort_by: popularity\n", "default_sort_by"},
		{"bad order", "search:\n  default_sort_order: up\n", "default_sort_order"},
		{"file without path", "sources:\n  - type: product\n    kind: file\n", "needs a path"},
		{"http without url", "sources:\n  - type: order\n    kind: http\n", "needs a url"},
		{"unknown kind", "sources:\n  - type: order\n    kind: ftp\n", "unknown kind"},
		{"missing type", "sources:\n  - kind: sqlite\n", "missing type"},
		{"broken yaml", "server: [", "parse"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Load() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoad_missingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestSave_roundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	cfg := &Config{Server: ServerConfig{Host: "0.0.0.0", Port: 7000}, Storage: StorageConfig{DatabasePath: "/tmp/x.db"}}
	ApplyDefaults(cfg)
	if err := Save(path, cfg); err != nil {
		t.Fatal(err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Server.Port != 7000 || loaded.Storage.DatabasePath != "/tmp/x.db" {
		t.Errorf("loaded: %+v", loaded)
	}
}
