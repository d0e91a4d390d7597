// Package mcp exposes the document store and agents over the Model Context
// Protocol so external AI tools can search ingested material and run study
// agents.
package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/studybuddy-ai/studybuddy/internal/agents"
	"github.com/studybuddy-ai/studybuddy/internal/docstore"
	"github.com/studybuddy-ai/studybuddy/internal/embeddings"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Server wraps an MCP server exposing document search and agent tools.
type Server struct {
	store    *docstore.Store
	embedder embeddings.Embedder
	runner   *agents.Runner
	mcp      *server.MCPServer
}

// NewServer creates a new MCP server with the given dependencies.
func NewServer(store *docstore.Store, embedder embeddings.Embedder, runner *agents.Runner) *Server {
	s := &Server{
		store:    store,
		embedder: embedder,
		runner:   runner,
	}

	s.mcp = server.NewMCPServer(
		"studybuddy",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

// registerTools adds all tool definitions and their handlers to the MCP server.
func (s *Server) registerTools() {
	s.mcp.AddTool(searchDocumentTool, s.handleSearchDocument)
	s.mcp.AddTool(listDocumentsTool, s.handleListDocuments)
	s.mcp.AddTool(runAgentTool, s.handleRunAgent)
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}
