// Package config holds runtime configuration for the docquery pipeline.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// ErrInvalidChunking indicates that the chunk overlap is not smaller than the
// chunk size (or not positive). Rejected before any I/O happens.
var ErrInvalidChunking = errors.New("chunk overlap must be positive and smaller than chunk size")

// Defaults mirror the chunking and query settings the corpus was tuned with.
const (
	DefaultChunkSize      = 1000 // characters per window
	DefaultChunkOverlap   = 200  // characters shared between adjacent windows
	DefaultBatchSize      = 100  // chunk records per store upsert
	DefaultTopK           = 5
	DefaultCollection     = "documents"
	DefaultQdrantHost     = "localhost"
	DefaultQdrantPort     = 6334
	DefaultEmbeddingModel = "text-embedding-3-small"
)

// Config is the full runtime configuration. Values are resolved in order:
// built-in defaults, then ~/.docquery/config.yaml if present, then
// environment variables.
type Config struct {
	DocsDir        string `yaml:"docs_dir"`
	QdrantHost     string `yaml:"qdrant_host"`
	QdrantPort     int    `yaml:"qdrant_port"`
	Collection     string `yaml:"collection"`
	ChunkSize      int    `yaml:"chunk_size"`
	ChunkOverlap   int    `yaml:"chunk_overlap"`
	BatchSize      int    `yaml:"batch_size"`
	TopK           int    `yaml:"top_k"`
	EmbeddingModel string `yaml:"embedding_model"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		DocsDir:        "docs",
		QdrantHost:     DefaultQdrantHost,
		QdrantPort:     DefaultQdrantPort,
		Collection:     DefaultCollection,
		ChunkSize:      DefaultChunkSize,
		ChunkOverlap:   DefaultChunkOverlap,
		BatchSize:      DefaultBatchSize,
		TopK:           DefaultTopK,
		EmbeddingModel: DefaultEmbeddingModel,
	}
}

// Load resolves the configuration and validates it.
func Load() (*Config, error) {
	cfg := Default()

	path := filepath.Join(os.Getenv("HOME"), ".docquery", "config.yaml")
	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv overrides fields from environment variables.
func (c *Config) applyEnv() {
	c.DocsDir = getEnv("DOCS_DIR", c.DocsDir)
	c.QdrantHost = getEnv("QDRANT_HOST", c.QdrantHost)
	c.QdrantPort = getEnvInt("QDRANT_PORT", c.QdrantPort)
	c.Collection = getEnv("COLLECTION_NAME", c.Collection)
	c.ChunkSize = getEnvInt("CHUNK_SIZE", c.ChunkSize)
	c.ChunkOverlap = getEnvInt("CHUNK_OVERLAP", c.ChunkOverlap)
	c.BatchSize = getEnvInt("BATCH_SIZE", c.BatchSize)
	c.TopK = getEnvInt("TOP_K", c.TopK)
	c.EmbeddingModel = getEnv("EMBEDDING_MODEL", c.EmbeddingModel)
}

// Validate rejects unusable settings before any collaborator is touched.
func (c *Config) Validate() error {
	if c.ChunkSize <= 0 || c.ChunkOverlap <= 0 || c.ChunkOverlap >= c.ChunkSize {
		return fmt.Errorf("%w: size=%d overlap=%d", ErrInvalidChunking, c.ChunkSize, c.ChunkOverlap)
	}
	if c.BatchSize <= 0 {
		return fmt.Errorf("batch size must be positive, got %d", c.BatchSize)
	}
	if c.TopK <= 0 {
		return fmt.Errorf("top-k must be positive, got %d", c.TopK)
	}
	if c.Collection == "" {
		return fmt.Errorf("collection name must not be empty")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultValue
}
