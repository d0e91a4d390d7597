package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/studybuddy-ai/studybuddy/internal/config"
	"github.com/studybuddy-ai/studybuddy/internal/db"
	"github.com/studybuddy-ai/studybuddy/internal/embeddings"
	"github.com/studybuddy-ai/studybuddy/internal/llm"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `studybuddy init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// openDatabase opens the SQLite database under the configured data
// directory, creating the directory if needed.
func openDatabase(cfg *config.Config) (*db.DB, error) {
	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	return db.Open(filepath.Join(cfg.DataDir, "studybuddy.db"))
}

// createEmbedderFromConfig creates an embeddings.Embedder based on config.
// Shared by the ingest, query, chat server, and MCP serve commands.
func createEmbedderFromConfig(cfg *config.Config) (embeddings.Embedder, error) {
	provider := cfg.EmbeddingProvider
	if provider == "" {
		provider = config.ProviderGoogle
	}
	model := cfg.EmbeddingModel
	if model == "" {
		model = config.DefaultEmbeddingModel(provider)
	}

	switch provider {
	case config.ProviderGoogle:
		apiKey := os.Getenv(config.APIKeyEnvVar(config.ProviderGoogle))
		if apiKey == "" {
			return nil, fmt.Errorf("GOOGLE_API_KEY environment variable is required for Google embeddings")
		}
		return embeddings.NewGoogleEmbedder(apiKey, embeddings.GoogleModel(model)), nil
	case config.ProviderOpenAI:
		apiKey := os.Getenv(config.APIKeyEnvVar(config.ProviderOpenAI))
		if apiKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable is required for OpenAI embeddings")
		}
		return embeddings.NewOpenAIEmbedder(apiKey, embeddings.OpenAIModel(model)), nil
	case config.ProviderOllama:
		return embeddings.NewOllamaEmbedder(model, 768, ""), nil
	default:
		return nil, fmt.Errorf("provider %s has no embedding support; set embedding_provider to google, openai, or ollama", provider)
	}
}

// createProviderFromConfig creates an LLM provider based on config settings,
// wrapped with rate limiting when rate_limit_rpm is set.
func createProviderFromConfig(cfg *config.Config) (llm.Provider, error) {
	provider, err := llm.NewProvider(string(cfg.Provider), cfg.Model, "")
	if err != nil {
		return nil, err
	}
	if cfg.RateLimitRPM > 0 {
		provider = llm.NewRateLimitedProvider(provider, cfg.RateLimitRPM)
	}
	return provider, nil
}
