package llm

import (
	"fmt"
	"os"
)

// NewProvider creates an LLM provider of the given type. An explicit apiKey
// takes precedence; otherwise the provider's conventional environment
// variable is consulted. Supported types: "nebius", "openai", "google",
// "ollama".
func NewProvider(providerType, model, apiKey string) (Provider, error) {
	switch providerType {
	case "nebius":
		key := apiKey
		if key == "" {
			key = os.Getenv("NEBIUS_API_KEY")
		}
		if key == "" {
			return nil, fmt.Errorf("nebius API key is not set (NEBIUS_API_KEY)")
		}
		return NewNebiusProvider(key, model), nil

	case "openai":
		key := apiKey
		if key == "" {
			key = os.Getenv("OPENAI_API_KEY")
		}
		if key == "" {
			return nil, fmt.Errorf("openai API key is not set (OPENAI_API_KEY)")
		}
		return NewOpenAIProvider(key, model), nil

	case "google":
		key := apiKey
		if key == "" {
			key = os.Getenv("GOOGLE_API_KEY")
		}
		if key == "" {
			return nil, fmt.Errorf("google API key is not set (GOOGLE_API_KEY)")
		}
		return NewGoogleProvider(key, model), nil

	case "ollama":
		host := os.Getenv("OLLAMA_HOST")
		if host == "" {
			host = "http://localhost:11434"
		}
		return NewOllamaProvider(host, model), nil

	default:
		return nil, fmt.Errorf("unsupported provider type: %s", providerType)
	}
}
