package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Provider != ProviderNebius {
		t.Errorf("expected default provider %q, got %q", ProviderNebius, cfg.Provider)
	}
	if cfg.Model != "Qwen/Qwen2.5-Coder-32B-Instruct" {
		t.Errorf("unexpected default model %q", cfg.Model)
	}
	if cfg.EmbeddingProvider != ProviderGoogle {
		t.Errorf("expected default embedding provider %q, got %q", ProviderGoogle, cfg.EmbeddingProvider)
	}
	if cfg.ChunkSize != 500 {
		t.Errorf("expected default chunk_size 500, got %d", cfg.ChunkSize)
	}
	if cfg.TopK != 5 {
		t.Errorf("expected default top_k 5, got %d", cfg.TopK)
	}
	if cfg.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Port)
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.studybuddy.yml")

	original := DefaultConfig()
	original.Provider = ProviderOpenAI
	original.Model = "gpt-4o"
	original.EmbeddingProvider = ProviderOpenAI
	original.EmbeddingModel = "text-embedding-3-small"
	original.ChunkSize = 250
	original.TopK = 3
	original.DataDir = "study-data"

	// Save.
	if err := original.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// Load back.
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	// Verify round-trip.
	if loaded.Provider != original.Provider {
		t.Errorf("provider: got %q, want %q", loaded.Provider, original.Provider)
	}
	if loaded.Model != original.Model {
		t.Errorf("model: got %q, want %q", loaded.Model, original.Model)
	}
	if loaded.EmbeddingModel != original.EmbeddingModel {
		t.Errorf("embedding_model: got %q, want %q", loaded.EmbeddingModel, original.EmbeddingModel)
	}
	if loaded.ChunkSize != original.ChunkSize {
		t.Errorf("chunk_size: got %d, want %d", loaded.ChunkSize, original.ChunkSize)
	}
	if loaded.TopK != original.TopK {
		t.Errorf("top_k: got %d, want %d", loaded.TopK, original.TopK)
	}
	if loaded.DataDir != original.DataDir {
		t.Errorf("data_dir: got %q, want %q", loaded.DataDir, original.DataDir)
	}
}

func TestLoadMissingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nonexistent.yml")

	// Loading a missing file should return defaults, not an error.
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load should not fail for missing file: %v", err)
	}
	if cfg.Provider != ProviderNebius {
		t.Errorf("expected default provider, got %q", cfg.Provider)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.yml")

	cfg := DefaultConfig()
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// Override provider via env var.
	os.Setenv("STUDYBUDDY_PROVIDER", "openai")
	defer os.Unsetenv("STUDYBUDDY_PROVIDER")

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Provider != ProviderOpenAI {
		t.Errorf("env override failed: got %q, want %q", loaded.Provider, ProviderOpenAI)
	}
}

func TestValidateValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig should be valid, got: %v", err)
	}
}

func TestValidateInvalidProvider(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Provider = "invalid"
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for invalid provider")
	}
}

func TestValidateEmptyProvider(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Provider = ""
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for empty provider")
	}
}

func TestValidateEmptyModel(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Model = ""
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for empty model")
	}
}

func TestValidateInvalidEmbeddingProvider(t *testing.T) {
	cfg := DefaultConfig()
	cfg.EmbeddingProvider = "word2vec"
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for invalid embedding_provider")
	}
}

func TestValidateChunkSize(t *testing.T) {
	for _, size := range []int{0, -100} {
		cfg := DefaultConfig()
		cfg.ChunkSize = size
		if err := cfg.Validate(); err == nil {
			t.Errorf("expected validation error for chunk_size %d", size)
		}
	}
}

func TestValidateTopK(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TopK = 0
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for top_k 0")
	}
}

func TestValidateInvalidPort(t *testing.T) {
	for _, port := range []int{0, -1, 70000} {
		cfg := DefaultConfig()
		cfg.Port = port
		if err := cfg.Validate(); err == nil {
			t.Errorf("expected validation error for port %d", port)
		}
	}
}

func TestValidateEmptyDataDir(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DataDir = ""
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for empty data_dir")
	}
}

func TestDefaultModel(t *testing.T) {
	if m := DefaultModel(ProviderOpenAI); m != "gpt-4o-mini" {
		t.Errorf("DefaultModel(openai) = %q", m)
	}
	// Unknown providers fall back to the nebius default.
	if m := DefaultModel("unknown"); m != "Qwen/Qwen2.5-Coder-32B-Instruct" {
		t.Errorf("DefaultModel(unknown) = %q", m)
	}
}

func TestAPIKeyEnvVar(t *testing.T) {
	tests := []struct {
		provider ProviderType
		want     string
	}{
		{ProviderNebius, "NEBIUS_API_KEY"},
		{ProviderOpenAI, "OPENAI_API_KEY"},
		{ProviderGoogle, "GOOGLE_API_KEY"},
		{ProviderOllama, ""},
	}
	for _, tt := range tests {
		got := APIKeyEnvVar(tt.provider)
		if got != tt.want {
			t.Errorf("APIKeyEnvVar(%q) = %q, want %q", tt.provider, got, tt.want)
		}
	}
}
