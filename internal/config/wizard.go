package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/manifoldco/promptui"
)

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to .studybuddy.yml.
func RunWizard() (*Config, error) {
	fmt.Println("Welcome to studybuddy! Let's configure your study workspace.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. Provider selection.
	providerPrompt := promptui.Select{
		Label: "Select LLM provider",
		Items: []string{"nebius", "openai", "google", "ollama"},
	}
	_, providerStr, err := providerPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("provider selection: %w", err)
	}
	cfg.Provider = ProviderType(providerStr)

	// 2. Model, defaulting per provider.
	modelPrompt := promptui.Prompt{
		Label:   "Model",
		Default: DefaultModel(cfg.Provider),
	}
	cfg.Model, err = modelPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("model: %w", err)
	}

	// 3. Embedding provider. Nebius has no embedding endpoint, so it is
	// absent from this list.
	embeddingPrompt := promptui.Select{
		Label: "Select embedding provider",
		Items: []string{"google", "openai", "ollama"},
	}
	_, embeddingStr, err := embeddingPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("embedding provider selection: %w", err)
	}
	cfg.EmbeddingProvider = ProviderType(embeddingStr)
	cfg.EmbeddingModel = DefaultEmbeddingModel(cfg.EmbeddingProvider)

	// 4. Chunk size.
	chunkPrompt := promptui.Prompt{
		Label:   "Chunk size (words per chunk)",
		Default: strconv.Itoa(cfg.ChunkSize),
		Validate: func(s string) error {
			n, err := strconv.Atoi(s)
			if err != nil || n <= 0 {
				return fmt.Errorf("must be a positive integer")
			}
			return nil
		},
	}
	chunkStr, err := chunkPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("chunk size: %w", err)
	}
	cfg.ChunkSize, _ = strconv.Atoi(chunkStr)

	// 5. Data directory.
	dataDirPrompt := promptui.Prompt{
		Label:   "Data directory",
		Default: cfg.DataDir,
	}
	cfg.DataDir, err = dataDirPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("data directory: %w", err)
	}

	// Check for API keys.
	for _, p := range []ProviderType{cfg.Provider, cfg.EmbeddingProvider} {
		if envVar := APIKeyEnvVar(p); envVar != "" && os.Getenv(envVar) == "" {
			fmt.Printf("\nNote: Set %s in your environment before running studybuddy.\n", envVar)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	// Save to .studybuddy.yml.
	if err := cfg.Save(DefaultConfigFile); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", DefaultConfigFile)
	return cfg, nil
}
