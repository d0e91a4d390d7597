package config

// DefaultConfigFile is the config filename looked up in the working
// directory.
const DefaultConfigFile = ".studybuddy.yml"

// Default model choices per provider. The nebius default matches the model
// the hosted app ran on.
var defaultModels = map[ProviderType]string{
	ProviderNebius: "Qwen/Qwen2.5-Coder-32B-Instruct",
	ProviderOpenAI: "gpt-4o-mini",
	ProviderGoogle: "gemini-2.0-flash",
	ProviderOllama: "llama3",
}

var defaultEmbeddingModels = map[ProviderType]string{
	ProviderOpenAI: "text-embedding-3-small",
	ProviderGoogle: "text-embedding-004",
	ProviderOllama: "nomic-embed-text",
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Provider:          ProviderNebius,
		Model:             defaultModels[ProviderNebius],
		EmbeddingProvider: ProviderGoogle,
		EmbeddingModel:    defaultEmbeddingModels[ProviderGoogle],
		ChunkSize:         500,
		TopK:              5,
		RateLimitRPM:      60,
		DataDir:           ".studybuddy",
		Port:              8080,
	}
}

// DefaultModel returns the default model for a provider, falling back to
// the nebius default for unknown providers.
func DefaultModel(provider ProviderType) string {
	if m, ok := defaultModels[provider]; ok {
		return m
	}
	return defaultModels[ProviderNebius]
}

// DefaultEmbeddingModel returns the default embedding model for a provider.
func DefaultEmbeddingModel(provider ProviderType) string {
	if m, ok := defaultEmbeddingModels[provider]; ok {
		return m
	}
	return defaultEmbeddingModels[ProviderGoogle]
}
