package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/studybuddy-ai/studybuddy/internal/agents"
	"github.com/studybuddy-ai/studybuddy/internal/retrieval"
)

// handleSearchDocument embeds the query and ranks the document's chunks.
func (s *Server) handleSearchDocument(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	documentID, err := request.RequireString("document_id")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: document_id"), nil
	}
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: query"), nil
	}
	limit := request.GetInt("limit", retrieval.DefaultTopK)

	doc, err := s.store.Get(ctx, documentID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("loading document: %v", err)), nil
	}
	if doc == nil {
		return mcp.NewToolResultError(fmt.Sprintf("no document with id %q; use list_documents to see what is ingested", documentID)), nil
	}

	vectors, err := s.embedder.Embed(ctx, []string{query})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("embedding query: %v", err)), nil
	}
	if len(vectors) == 0 || len(vectors[0]) == 0 {
		return mcp.NewToolResultError("embedder returned no vector for the query"), nil
	}

	scored := retrieval.TopK(vectors[0], doc.Embeddings, limit)
	if len(scored) == 0 {
		return mcp.NewToolResultText("No chunks found. The document may have no embeddings."), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Found %d chunk(s) in %s:\n", len(scored), doc.Filename)
	for _, sc := range scored {
		fmt.Fprintf(&sb, "\n--- Chunk %d (similarity %.1f%%) ---\n", sc.Record.Metadata.ChunkNumber, sc.Similarity*100)
		sb.WriteString(sc.Record.Content)
		sb.WriteString("\n")
	}
	return mcp.NewToolResultText(sb.String()), nil
}

// handleListDocuments lists every ingested document.
func (s *Server) handleListDocuments(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	docs := s.store.GetAll()
	if len(docs) == 0 {
		return mcp.NewToolResultText("No documents ingested yet. Use `studybuddy ingest` to add some."), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%d document(s):\n", len(docs))
	for _, d := range docs {
		fmt.Fprintf(&sb, "\n- %s (id %s)\n  %d chunks, %d words, %d pages, ingested %s\n",
			d.Filename, d.ID, len(d.Embeddings), d.Stats.TotalWords, d.Stats.TotalPages,
			d.Timestamp.Format("2006-01-02 15:04"))
	}
	return mcp.NewToolResultText(sb.String()), nil
}

// handleRunAgent runs one study agent and returns its JSON result.
func (s *Server) handleRunAgent(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := request.RequireString("agent")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: agent"), nil
	}
	text, err := request.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: text"), nil
	}

	kind, ok := agents.ParseKind(name)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("unknown agent %q", name)), nil
	}

	var args []string
	if lang := request.GetString("target_language", ""); lang != "" {
		args = append(args, lang)
	}

	result, err := s.runner.Run(ctx, kind, text, args...)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("running %s: %v", kind, err)), nil
	}

	encoded, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encoding result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(encoded)), nil
}
