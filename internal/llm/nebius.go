package llm

import (
	"context"

	openai "github.com/sashabaranov/go-openai"
)

// NebiusBaseURL is the OpenAI-compatible endpoint of Nebius AI Studio.
const NebiusBaseURL = "https://api.studio.nebius.com/v1/"

// DefaultNebiusModel is the instruction model used for structured extraction.
const DefaultNebiusModel = "Qwen/Qwen2.5-Coder-32B-Instruct"

// NebiusProvider implements Provider against the Nebius AI Studio API,
// which speaks the OpenAI chat completions protocol.
type NebiusProvider struct {
	client *openai.Client
	model  string
}

// NewNebiusProvider creates a new Nebius provider.
func NewNebiusProvider(apiKey string, model string) *NebiusProvider {
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = NebiusBaseURL
	if model == "" {
		model = DefaultNebiusModel
	}
	return &NebiusProvider{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

func (p *NebiusProvider) Name() string {
	return "nebius"
}

func (p *NebiusProvider) Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	model := req.Model
	if model == "" {
		model = p.model
	}

	var messages []openai.ChatCompletionMessage
	for _, msg := range req.Messages {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    string(msg.Role),
			Content: msg.Content,
		})
	}

	apiReq := openai.ChatCompletionRequest{
		Model:       model,
		Messages:    messages,
		MaxTokens:   req.MaxTokens,
		Temperature: openAITemperature(req.Temperature),
		TopP:        float32(req.TopP),
	}

	resp, err := p.client.CreateChatCompletion(ctx, apiReq)
	if err != nil {
		return nil, err
	}

	var content, finishReason string
	if len(resp.Choices) > 0 {
		content = resp.Choices[0].Message.Content
		finishReason = string(resp.Choices[0].FinishReason)
	}

	return &CompletionResponse{
		Content:      content,
		InputTokens:  resp.Usage.PromptTokens,
		OutputTokens: resp.Usage.CompletionTokens,
		Model:        resp.Model,
		FinishReason: finishReason,
	}, nil
}
