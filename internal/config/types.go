package config

// ProviderType identifies an LLM or embedding provider.
type ProviderType string

const (
	ProviderNebius ProviderType = "nebius"
	ProviderOpenAI ProviderType = "openai"
	ProviderGoogle ProviderType = "google"
	ProviderOllama ProviderType = "ollama"
)

// Config is the top-level studybuddy configuration, corresponding to
// .studybuddy.yml.
type Config struct {
	Provider           ProviderType `yaml:"provider" koanf:"provider"`
	Model              string       `yaml:"model" koanf:"model"`
	EmbeddingProvider  ProviderType `yaml:"embedding_provider" koanf:"embedding_provider"`
	EmbeddingModel     string       `yaml:"embedding_model" koanf:"embedding_model"`
	ChunkSize          int          `yaml:"chunk_size" koanf:"chunk_size"`
	TopK               int          `yaml:"top_k" koanf:"top_k"`
	RateLimitRPM       int          `yaml:"rate_limit_rpm" koanf:"rate_limit_rpm"`
	DataDir            string       `yaml:"data_dir" koanf:"data_dir"`
	Port               int          `yaml:"port" koanf:"port"`
	CORSAllowAll       bool         `yaml:"cors_allow_all" koanf:"cors_allow_all"`
	GoogleClientID     string       `yaml:"google_client_id" koanf:"google_client_id"`
	GoogleClientSecret string       `yaml:"google_client_secret" koanf:"google_client_secret"`
}
