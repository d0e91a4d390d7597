package agents

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/studybuddy-ai/studybuddy/internal/llm"
)

// maxCompletionTokens caps every agent completion. The longest schema
// (explain) fits comfortably; anything beyond this is runaway output.
const maxCompletionTokens = 4096

// Runner executes individual agents against an LLM provider.
type Runner struct {
	provider llm.Provider
	model    string
}

// NewRunner returns a Runner. It fails when the provider or model is
// missing: that is a configuration error, not something to discover on the
// first request.
func NewRunner(provider llm.Provider, model string) (*Runner, error) {
	if provider == nil {
		return nil, fmt.Errorf("agents: no LLM provider configured")
	}
	if model == "" {
		return nil, fmt.Errorf("agents: no model configured")
	}
	return &Runner{provider: provider, model: model}, nil
}

// Run executes one agent over the given text. For translate, args[0] is the
// target language; other kinds ignore args.
//
// Run only returns an error for invalid input (unknown kind, empty text).
// Provider and parse failures are returned as an *ErrorResult so callers
// treat them as renderable data.
func (r *Runner) Run(ctx context.Context, kind Kind, text string, args ...string) (Result, error) {
	if _, ok := ParseKind(string(kind)); !ok {
		return nil, fmt.Errorf("agents: unknown agent %q", kind)
	}
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("agents: empty input text")
	}

	targetLang := ""
	if len(args) > 0 {
		targetLang = args[0]
	}

	req := llm.CompletionRequest{
		Model: r.model,
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: systemPrompt(kind)},
			{Role: llm.RoleUser, Content: buildPrompt(kind, text, targetLang)},
		},
		MaxTokens:   maxCompletionTokens,
		Temperature: temperature(kind),
	}

	resp, err := r.provider.Complete(ctx, req)
	if err != nil {
		log.Printf("agents: %s completion failed: %v", kind, err)
		return &ErrorResult{Error: true, Message: err.Error()}, nil
	}

	return parseResult(kind, resp.Content), nil
}

// parseResult decodes a raw model response into the kind's typed result.
// It tries the response as-is, then with markdown fences stripped, then the
// first {...} span. When every stage fails the raw response is preserved in
// the canonical error shape.
func parseResult(kind Kind, raw string) Result {
	stripped := StripFences(raw)
	candidates := []string{raw, stripped, ExtractObject(stripped)}
	for _, c := range candidates {
		if c == "" {
			continue
		}
		if res, err := unmarshalKind(kind, c); err == nil {
			return res
		}
	}
	log.Printf("agents: %s returned unparseable JSON (%d bytes)", kind, len(raw))
	return &ErrorResult{Error: true, Message: ErrorMessage, RawResponse: raw}
}

func unmarshalKind(kind Kind, data string) (Result, error) {
	var res Result
	switch kind {
	case KindSummarize:
		res = &SummarizeResult{}
	case KindTranslate:
		res = &TranslateResult{}
	case KindExplain:
		res = &ExplainResult{}
	case KindQA:
		res = &QAResult{}
	case KindFlashcard:
		res = &FlashcardResult{}
	case KindQuiz:
		res = &QuizResult{}
	case KindPracticeProblems:
		res = &PracticeProblemsResult{}
	default:
		return nil, fmt.Errorf("unknown agent %q", kind)
	}
	if err := json.Unmarshal([]byte(data), res); err != nil {
		return nil, err
	}
	return res, nil
}
