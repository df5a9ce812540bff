package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DataDir != "./data" {
		t.Errorf("unexpected data dir: %s", cfg.DataDir)
	}
	if len(cfg.Feeds) != 3 {
		t.Errorf("expected 3 default feeds, got %d", len(cfg.Feeds))
	}
	if cfg.Vector.Dimension != 1024 {
		t.Errorf("unexpected default dimension: %d", cfg.Vector.Dimension)
	}
	if cfg.Scrape.TimeoutSeconds != 10 || cfg.Scrape.DelaySeconds != 1 {
		t.Errorf("unexpected scrape defaults: %+v", cfg.Scrape)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `data_dir: /tmp/news
feeds:
  - https://example.com/rss
ollama:
  embedding_model: nomic-embed-text
vector:
  dimension: 768
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DataDir != "/tmp/news" {
		t.Errorf("data_dir not overridden: %s", cfg.DataDir)
	}
	if len(cfg.Feeds) != 1 || cfg.Feeds[0] != "https://example.com/rss" {
		t.Errorf("feeds not overridden: %v", cfg.Feeds)
	}
	if cfg.Ollama.EmbeddingModel != "nomic-embed-text" {
		t.Errorf("embedding model not overridden: %s", cfg.Ollama.EmbeddingModel)
	}
	if cfg.Vector.Dimension != 768 {
		t.Errorf("dimension not overridden: %d", cfg.Vector.Dimension)
	}
	// Untouched values keep their defaults.
	if cfg.Ollama.AnalysisModel != "llama3" {
		t.Errorf("analysis model lost its default: %s", cfg.Ollama.AnalysisModel)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("vector:\n  dimension: -5\n"), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for negative dimension")
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(":\nnot yaml {{"), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg := Default()
	cfg.DataDir = "/var/lib/newswire"

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.DataDir != "/var/lib/newswire" {
		t.Errorf("round trip lost data_dir: %s", got.DataDir)
	}
}
