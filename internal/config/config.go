package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Provider names accepted by LLM_PROVIDER.
const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

type Config struct {
	Port  string `envconfig:"PORT" default:"8000"`
	Debug bool   `envconfig:"DEBUG" default:"false"`

	DatabaseURL string `envconfig:"DATABASE_URL" required:"true"`

	SentryDSN   string `envconfig:"SENTRY_DSN"`
	Environment string `envconfig:"ENVIRONMENT" default:"development"`

	// Vector index
	Namespace           string `envconfig:"INDEX_NAMESPACE" default:"default"`
	EmbeddingDimensions int    `envconfig:"EMBEDDING_DIMENSIONS" default:"768"`

	// Provider selection: "openai" or "gemini"
	Provider string `envconfig:"LLM_PROVIDER" default:"openai"`

	OpenAIAPIKey         string `envconfig:"OPENAI_API_KEY"`
	OpenAIChatModel      string `envconfig:"OPENAI_CHAT_MODEL" default:"gpt-4o"`
	OpenAIEmbeddingModel string `envconfig:"OPENAI_EMBEDDING_MODEL" default:"text-embedding-3-small"`

	GoogleAPIKey         string `envconfig:"GOOGLE_API_KEY"`
	GeminiChatModel      string `envconfig:"GEMINI_CHAT_MODEL" default:"gemini-2.5-pro"`
	GeminiEmbeddingModel string `envconfig:"GEMINI_EMBEDDING_MODEL" default:"embedding-001"`

	// Ingestion
	ChunkSize      int    `envconfig:"CHUNK_SIZE" default:"800"`
	ChunkOverlap   int    `envconfig:"CHUNK_OVERLAP" default:"100"`
	EmbedBatchSize int    `envconfig:"EMBED_BATCH_SIZE" default:"32"`
	Docs           string `envconfig:"DOCS"` // comma-separated default sources for ingest

	// Optional S3-compatible store for source documents
	S3Endpoint  string `envconfig:"S3_ENDPOINT"`
	S3AccessKey string `envconfig:"S3_ACCESS_KEY_ID"`
	S3SecretKey string `envconfig:"S3_SECRET_ACCESS_KEY"`
	S3Bucket    string `envconfig:"S3_BUCKET" default:"promptfun-docs"`
	S3Region    string `envconfig:"S3_REGION" default:"us-east-1"`
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("PFUN", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	// envconfig's required tag only rejects an absent variable, not an
	// empty one
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		return nil, fmt.Errorf("DATABASE_URL must not be empty")
	}

	switch cfg.Provider {
	case ProviderOpenAI, ProviderGemini:
	default:
		return nil, fmt.Errorf("unknown LLM provider %q", cfg.Provider)
	}

	return &cfg, nil
}

func (c *Config) HasS3() bool {
	return c.S3Endpoint != "" && c.S3AccessKey != "" && c.S3SecretKey != ""
}

func (c *Config) HasOpenAI() bool {
	return c.OpenAIAPIKey != ""
}

func (c *Config) HasGemini() bool {
	return c.GoogleAPIKey != ""
}

// DocSources splits the DOCS list into trimmed, non-empty source paths.
func (c *Config) DocSources() []string {
	if strings.TrimSpace(c.Docs) == "" {
		return nil
	}
	parts := strings.Split(c.Docs, ",")
	sources := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			sources = append(sources, trimmed)
		}
	}
	return sources
}
