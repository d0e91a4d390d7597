package mcp

import (
	"context"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/studybuddy-ai/studybuddy/internal/agents"
	"github.com/studybuddy-ai/studybuddy/internal/db"
	"github.com/studybuddy-ai/studybuddy/internal/docstore"
	"github.com/studybuddy-ai/studybuddy/internal/llm"
)

// mockEmbedder implements embeddings.Embedder for testing.
type mockEmbedder struct{}

func (m *mockEmbedder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	result := make([][]float32, len(texts))
	for i := range texts {
		result[i] = []float32{1, 0, 0}
	}
	return result, nil
}
func (m *mockEmbedder) Dimensions() int { return 3 }
func (m *mockEmbedder) Name() string    { return "mock" }

// mockProvider returns one canned completion.
type mockProvider struct {
	response string
}

func (m *mockProvider) Name() string { return "mock" }

func (m *mockProvider) Complete(_ context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
	return &llm.CompletionResponse{Content: m.response, FinishReason: "stop"}, nil
}

func newTestServer(t *testing.T, response string) (*Server, *docstore.Store) {
	t.Helper()
	database, err := db.OpenMemory()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { database.Close() })
	store, err := docstore.New(database)
	if err != nil {
		t.Fatal(err)
	}
	runner, err := agents.NewRunner(&mockProvider{response: response}, "test-model")
	if err != nil {
		t.Fatal(err)
	}
	return NewServer(store, &mockEmbedder{}, runner), store
}

func seedDocument(t *testing.T, store *docstore.Store) {
	t.Helper()
	doc := docstore.Document{
		Filename: "notes.txt",
		Text:     "Mitosis has phases.",
		Embeddings: []docstore.EmbeddingRecord{
			{Content: "Mitosis has four phases.", Embedding: []float32{1, 0, 0}, Metadata: docstore.RecordMetadata{ChunkNumber: 1}},
			{Content: "Unrelated content.", Embedding: []float32{0, 1, 0}, Metadata: docstore.RecordMetadata{ChunkNumber: 2}},
		},
		Stats: docstore.Stats{TotalWords: 4, TotalPages: 1},
	}
	if err := store.Save(context.Background(), "doc-1", doc); err != nil {
		t.Fatal(err)
	}
}

func TestToolDefinitions(t *testing.T) {
	tests := []struct {
		name     string
		tool     mcp.Tool
		wantName string
	}{
		{"search_document", searchDocumentTool, "search_document"},
		{"list_documents", listDocumentsTool, "list_documents"},
		{"run_agent", runAgentTool, "run_agent"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.tool.Name != tt.wantName {
				t.Errorf("tool name = %q, want %q", tt.tool.Name, tt.wantName)
			}
			if tt.tool.Description == "" {
				t.Error("tool description should not be empty")
			}
		})
	}
}

func TestHandleSearchDocument(t *testing.T) {
	srv, store := newTestServer(t, "{}")
	seedDocument(t, store)
	ctx := context.Background()

	t.Run("basic search", func(t *testing.T) {
		req := mcp.CallToolRequest{}
		req.Params.Arguments = map[string]any{
			"document_id": "doc-1",
			"query":       "what is mitosis",
			"limit":       1,
		}

		result, err := srv.handleSearchDocument(ctx, req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.IsError {
			t.Fatalf("unexpected tool error: %v", result.Content)
		}
		text := toolText(t, result)
		if !strings.Contains(text, "Mitosis has four phases.") {
			t.Errorf("closest chunk missing from result: %s", text)
		}
		if strings.Contains(text, "Unrelated content.") {
			t.Error("limit 1 should drop the weaker chunk")
		}
	})

	t.Run("missing document", func(t *testing.T) {
		req := mcp.CallToolRequest{}
		req.Params.Arguments = map[string]any{
			"document_id": "nope",
			"query":       "anything",
		}

		result, err := srv.handleSearchDocument(ctx, req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !result.IsError {
			t.Error("expected error for unknown document")
		}
	})

	t.Run("missing query", func(t *testing.T) {
		req := mcp.CallToolRequest{}
		req.Params.Arguments = map[string]any{"document_id": "doc-1"}

		result, err := srv.handleSearchDocument(ctx, req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !result.IsError {
			t.Error("expected error for missing query")
		}
	})
}

func TestHandleListDocuments(t *testing.T) {
	ctx := context.Background()

	t.Run("empty store", func(t *testing.T) {
		srv, _ := newTestServer(t, "{}")
		result, err := srv.handleListDocuments(ctx, mcp.CallToolRequest{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.IsError {
			t.Error("empty store should not be a tool error")
		}
	})

	t.Run("lists ingested documents", func(t *testing.T) {
		srv, store := newTestServer(t, "{}")
		seedDocument(t, store)

		result, err := srv.handleListDocuments(ctx, mcp.CallToolRequest{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		text := toolText(t, result)
		if !strings.Contains(text, "notes.txt") || !strings.Contains(text, "doc-1") {
			t.Errorf("listing missing document info: %s", text)
		}
	})
}

func TestHandleRunAgent(t *testing.T) {
	ctx := context.Background()

	t.Run("runs summarize", func(t *testing.T) {
		srv, _ := newTestServer(t, `{"title":"Cells","summary":"Cells divide.","keyPoints":[],"difficulty":"Beginner"}`)
		req := mcp.CallToolRequest{}
		req.Params.Arguments = map[string]any{
			"agent": "summarize",
			"text":  "cells divide by mitosis",
		}

		result, err := srv.handleRunAgent(ctx, req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.IsError {
			t.Fatalf("unexpected tool error: %v", result.Content)
		}
		if !strings.Contains(toolText(t, result), `"title": "Cells"`) {
			t.Errorf("result JSON missing: %s", toolText(t, result))
		}
	})

	t.Run("unknown agent", func(t *testing.T) {
		srv, _ := newTestServer(t, "{}")
		req := mcp.CallToolRequest{}
		req.Params.Arguments = map[string]any{
			"agent": "mindmap",
			"text":  "anything",
		}

		result, err := srv.handleRunAgent(ctx, req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !result.IsError {
			t.Error("expected error for unknown agent")
		}
	})
}

func toolText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if len(result.Content) == 0 {
		t.Fatal("empty tool result")
	}
	text, ok := mcp.AsTextContent(result.Content[0])
	if !ok {
		t.Fatalf("unexpected content type %T", result.Content[0])
	}
	return text.Text
}
