// Package config loads the application configuration from a YAML file,
// layered over built-in defaults. A .env file in the working directory is
// loaded first so that variables like OLLAMA_HOST are visible to the rest
// of the process.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the top-level application configuration.
type Config struct {
	DataDir string        `yaml:"data_dir"`
	Feeds   []string      `yaml:"feeds"`
	Ollama  OllamaConfig  `yaml:"ollama"`
	Vector  VectorConfig  `yaml:"vector"`
	Scrape  ScrapeConfig  `yaml:"scrape"`
}

// OllamaConfig names the Ollama server and the models used for analysis
// and embedding generation.
type OllamaConfig struct {
	BaseURL        string `yaml:"base_url"`
	AnalysisModel  string `yaml:"analysis_model"`
	EmbeddingModel string `yaml:"embedding_model"`
}

// VectorConfig holds the similarity index settings. Dimension must match
// the embedding model's output width.
type VectorConfig struct {
	Dimension int `yaml:"dimension"`
}

// ScrapeConfig controls full-content fetching.
type ScrapeConfig struct {
	TimeoutSeconds int `yaml:"timeout_seconds"`
	DelaySeconds   int `yaml:"delay_seconds"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		DataDir: "./data",
		Feeds: []string{
			"https://feeds.feedburner.com/TechCrunch/",
			"https://www.wired.com/feed/rss",
			"https://www.theverge.com/rss/index.xml",
		},
		Ollama: OllamaConfig{
			BaseURL:        "http://localhost:11434",
			AnalysisModel:  "llama3",
			EmbeddingModel: "mxbai-embed-large",
		},
		Vector: VectorConfig{
			Dimension: 1024,
		},
		Scrape: ScrapeConfig{
			TimeoutSeconds: 10,
			DelaySeconds:   1,
		},
	}
}

// Load reads the configuration at path. A missing file is not an error;
// defaults are returned. Values present in the file override defaults,
// anything omitted keeps its default.
func Load(path string) (*Config, error) {
	// Best effort; a missing .env file is fine.
	_ = godotenv.Load()

	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the configuration to path, creating parent directories as
// needed by the caller.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	return nil
}

func (c *Config) validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data_dir must not be empty")
	}
	if c.Vector.Dimension <= 0 {
		return fmt.Errorf("vector dimension must be positive, got %d", c.Vector.Dimension)
	}
	if c.Scrape.TimeoutSeconds <= 0 {
		return fmt.Errorf("scrape timeout must be positive, got %d", c.Scrape.TimeoutSeconds)
	}
	if c.Scrape.DelaySeconds < 0 {
		return fmt.Errorf("scrape delay must not be negative, got %d", c.Scrape.DelaySeconds)
	}
	return nil
}
