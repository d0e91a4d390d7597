package mcp

import "github.com/mark3labs/mcp-go/mcp"

// searchDocumentTool defines the search_document MCP tool.
var searchDocumentTool = mcp.NewTool("search_document",
	mcp.WithDescription("Search an ingested document semantically. Returns the most relevant chunks with similarity scores."),
	mcp.WithString("document_id",
		mcp.Required(),
		mcp.Description("ID of the document to search (see list_documents)"),
	),
	mcp.WithString("query",
		mcp.Required(),
		mcp.Description("Natural language search query"),
	),
	mcp.WithNumber("limit",
		mcp.Description("Maximum number of chunks to return (default 5)"),
	),
)

// listDocumentsTool defines the list_documents MCP tool.
var listDocumentsTool = mcp.NewTool("list_documents",
	mcp.WithDescription("List the ingested documents with their IDs, filenames, and statistics."),
)

// runAgentTool defines the run_agent MCP tool.
var runAgentTool = mcp.NewTool("run_agent",
	mcp.WithDescription("Run one study agent over a piece of text and return its JSON result."),
	mcp.WithString("agent",
		mcp.Required(),
		mcp.Description("Agent to run"),
		mcp.Enum("summarize", "translate", "explain", "qa", "flashcard", "quiz", "practiceProblems"),
	),
	mcp.WithString("text",
		mcp.Required(),
		mcp.Description("Input text for the agent"),
	),
	mcp.WithString("target_language",
		mcp.Description("Target language for the translate agent (default English)"),
	),
)
