// Package chat answers study questions over ingested documents: the latest
// user message is embedded, the closest chunks of the selected document are
// retrieved and injected into the system instruction, and the provider
// generates the reply.
package chat

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/studybuddy-ai/studybuddy/internal/docstore"
	"github.com/studybuddy-ai/studybuddy/internal/embeddings"
	"github.com/studybuddy-ai/studybuddy/internal/llm"
	"github.com/studybuddy-ai/studybuddy/internal/retrieval"
)

const (
	chatTemperature = 0.7
	chatTopP        = 0.4
	maxReplyTokens  = 2048
)

const baseSystemPrompt = "You are StudyBuddy, a helpful study assistant. Answer clearly and concisely, and say so when you do not know."

const contextPromptTemplate = `%s

Use the following excerpts from the student's document %q to ground your answer. If the excerpts do not cover the question, say so instead of guessing.

%s`

// Message is one chat turn.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Service runs retrieval-augmented chat.
type Service struct {
	store    *docstore.Store
	embedder embeddings.Embedder
	provider llm.Provider
	model    string
	topK     int
}

// NewService builds a chat service. topK <= 0 selects the retrieval default.
func NewService(store *docstore.Store, embedder embeddings.Embedder, provider llm.Provider, model string, topK int) (*Service, error) {
	if provider == nil {
		return nil, fmt.Errorf("chat: no LLM provider configured")
	}
	if model == "" {
		return nil, fmt.Errorf("chat: no model configured")
	}
	if topK <= 0 {
		topK = retrieval.DefaultTopK
	}
	return &Service{store: store, embedder: embedder, provider: provider, model: model, topK: topK}, nil
}

// Reply answers the conversation. With a resolvable documentID the latest
// user message selects context chunks; an unknown id degrades to plain chat
// with a log line rather than failing the request.
func (s *Service) Reply(ctx context.Context, messages []Message, documentID string) (string, error) {
	if len(messages) == 0 {
		return "", fmt.Errorf("chat: no messages")
	}

	system := baseSystemPrompt
	if documentID != "" {
		if block, filename := s.contextBlock(ctx, messages, documentID); block != "" {
			system = fmt.Sprintf(contextPromptTemplate, baseSystemPrompt, filename, block)
		}
	}

	req := llm.CompletionRequest{
		Model:       s.model,
		Messages:    make([]llm.Message, 0, len(messages)+1),
		MaxTokens:   maxReplyTokens,
		Temperature: chatTemperature,
		TopP:        chatTopP,
	}
	req.Messages = append(req.Messages, llm.Message{Role: llm.RoleSystem, Content: system})
	for _, m := range messages {
		role := llm.RoleUser
		if m.Role == string(llm.RoleAssistant) {
			role = llm.RoleAssistant
		}
		req.Messages = append(req.Messages, llm.Message{Role: role, Content: m.Content})
	}

	resp, err := s.provider.Complete(ctx, req)
	if err != nil {
		return "", fmt.Errorf("chat: completion: %w", err)
	}
	return resp.Content, nil
}

// contextBlock embeds the latest user message and renders the top chunks of
// the document. Empty on any failure: retrieval trouble never blocks chat.
func (s *Service) contextBlock(ctx context.Context, messages []Message, documentID string) (string, string) {
	doc, err := s.store.Get(ctx, documentID)
	if err != nil || doc == nil {
		log.Printf("chat: document %s not found, answering without context", documentID)
		return "", ""
	}

	query := latestUserMessage(messages)
	if query == "" {
		return "", ""
	}

	vectors, err := s.embedder.Embed(ctx, []string{query})
	if err != nil || len(vectors) == 0 || len(vectors[0]) == 0 {
		log.Printf("chat: embedding query failed, answering without context: %v", err)
		return "", ""
	}

	scored := retrieval.TopK(vectors[0], doc.Embeddings, s.topK)
	if len(scored) == 0 {
		return "", ""
	}

	var sb strings.Builder
	for i, sc := range scored {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		fmt.Fprintf(&sb, "[%d] %s", i+1, sc.Record.Content)
	}
	return sb.String(), doc.Filename
}

// Query runs a raw similarity lookup over a document, for the query endpoint
// and CLI. Unknown document is an error here, unlike chat.
func (s *Service) Query(ctx context.Context, documentID, query string, k int) ([]retrieval.Scored, error) {
	doc, err := s.store.Get(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("chat: loading document %s: %w", documentID, err)
	}
	if doc == nil {
		return nil, fmt.Errorf("chat: document %s not found", documentID)
	}
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("chat: empty query")
	}

	vectors, err := s.embedder.Embed(ctx, []string{query})
	if err != nil {
		return nil, fmt.Errorf("chat: embedding query: %w", err)
	}
	if len(vectors) == 0 || len(vectors[0]) == 0 {
		return nil, fmt.Errorf("chat: embedder returned no vector for query")
	}

	return retrieval.TopK(vectors[0], doc.Embeddings, k), nil
}

func latestUserMessage(messages []Message) string {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == string(llm.RoleUser) || messages[i].Role == "" {
			return messages[i].Content
		}
	}
	return ""
}
