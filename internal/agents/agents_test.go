package agents

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/studybuddy-ai/studybuddy/internal/llm"
)

// fakeProvider scripts completion responses for tests. respond receives the
// full request so tests can branch on prompts and assert on parameters.
type fakeProvider struct {
	mu      sync.Mutex
	calls   []llm.CompletionRequest
	respond func(req llm.CompletionRequest) (string, error)
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) Complete(ctx context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
	f.mu.Lock()
	f.calls = append(f.calls, req)
	f.mu.Unlock()
	content, err := f.respond(req)
	if err != nil {
		return nil, err
	}
	return &llm.CompletionResponse{Content: content, Model: req.Model, FinishReason: "stop"}, nil
}

func (f *fakeProvider) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeProvider) call(i int) llm.CompletionRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[i]
}

func fixedResponse(content string) *fakeProvider {
	return &fakeProvider{respond: func(llm.CompletionRequest) (string, error) {
		return content, nil
	}}
}

func newTestRunner(t *testing.T, p llm.Provider) *Runner {
	t.Helper()
	r, err := NewRunner(p, "test-model")
	if err != nil {
		t.Fatal(err)
	}
	return r
}

const summarizeJSON = `{"title":"Cells","summary":"Cells are the unit of life.","keyPoints":["membrane","nucleus"],"difficulty":"Beginner"}`

func TestRunnerRequiresProviderAndModel(t *testing.T) {
	if _, err := NewRunner(nil, "m"); err == nil {
		t.Error("expected error for nil provider")
	}
	if _, err := NewRunner(fixedResponse("{}"), ""); err == nil {
		t.Error("expected error for empty model")
	}
}

func TestRunSummarizeParsesTypedResult(t *testing.T) {
	p := fixedResponse(summarizeJSON)
	r := newTestRunner(t, p)

	res, err := r.Run(context.Background(), KindSummarize, "cells divide")
	if err != nil {
		t.Fatal(err)
	}
	sum, ok := res.(*SummarizeResult)
	if !ok {
		t.Fatalf("expected *SummarizeResult, got %T", res)
	}
	if sum.Title != "Cells" || len(sum.KeyPoints) != 2 {
		t.Errorf("unexpected result: %+v", sum)
	}

	req := p.call(0)
	if req.Temperature != 0 {
		t.Errorf("expected temperature 0 for summarize, got %v", req.Temperature)
	}
	if req.Messages[0].Role != llm.RoleSystem || req.Messages[0].Content == "" {
		t.Error("expected a system message")
	}
	if !strings.Contains(req.Messages[1].Content, "cells divide") {
		t.Error("input text missing from user prompt")
	}
}

func TestRunGenerativeKindsUseHigherTemperature(t *testing.T) {
	for _, kind := range []Kind{KindQuiz, KindFlashcard, KindPracticeProblems} {
		p := fixedResponse(`{"title":"x"}`)
		r := newTestRunner(t, p)
		if _, err := r.Run(context.Background(), kind, "text"); err != nil {
			t.Fatal(err)
		}
		if got := p.call(0).Temperature; got != 0.2 {
			t.Errorf("%s: expected temperature 0.2, got %v", kind, got)
		}
	}
}

func TestRunParsesFencedResponse(t *testing.T) {
	p := fixedResponse("```json\n" + summarizeJSON + "\n```")
	r := newTestRunner(t, p)

	res, err := r.Run(context.Background(), KindSummarize, "text")
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := res.(*SummarizeResult); !ok {
		t.Fatalf("expected *SummarizeResult, got %T", res)
	}
}

func TestRunSalvagesObjectFromProse(t *testing.T) {
	p := fixedResponse("Here is your summary:\n" + summarizeJSON + "\nLet me know if you need more.")
	r := newTestRunner(t, p)

	res, err := r.Run(context.Background(), KindSummarize, "text")
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := res.(*SummarizeResult); !ok {
		t.Fatalf("expected *SummarizeResult, got %T", res)
	}
}

func TestRunUnparseableResponseBecomesErrorResult(t *testing.T) {
	raw := "I'm sorry, I can't produce JSON for that."
	p := fixedResponse(raw)
	r := newTestRunner(t, p)

	res, err := r.Run(context.Background(), KindSummarize, "text")
	if err != nil {
		t.Fatal(err)
	}
	er, ok := res.(*ErrorResult)
	if !ok {
		t.Fatalf("expected *ErrorResult, got %T", res)
	}
	if !er.Error || er.Message != ErrorMessage {
		t.Errorf("unexpected error shape: %+v", er)
	}
	if er.RawResponse != raw {
		t.Errorf("raw response not preserved: %q", er.RawResponse)
	}
	if er.Text() != raw {
		t.Error("error result must render its raw response as text")
	}
}

func TestRunProviderFailureBecomesErrorResult(t *testing.T) {
	p := &fakeProvider{respond: func(llm.CompletionRequest) (string, error) {
		return "", errors.New("connection refused")
	}}
	r := newTestRunner(t, p)

	res, err := r.Run(context.Background(), KindSummarize, "text")
	if err != nil {
		t.Fatalf("transport failures must be data, not errors: %v", err)
	}
	er, ok := res.(*ErrorResult)
	if !ok {
		t.Fatalf("expected *ErrorResult, got %T", res)
	}
	if !strings.Contains(er.Message, "connection refused") {
		t.Errorf("expected transport message, got %q", er.Message)
	}
}

func TestRunRejectsBadInput(t *testing.T) {
	r := newTestRunner(t, fixedResponse("{}"))
	if _, err := r.Run(context.Background(), Kind("bogus"), "text"); err == nil {
		t.Error("expected error for unknown kind")
	}
	if _, err := r.Run(context.Background(), KindSummarize, "   "); err == nil {
		t.Error("expected error for blank text")
	}
}

func TestRunTranslateTargetLanguage(t *testing.T) {
	p := fixedResponse(`{"detectedLanguage":"German","targetLanguage":"Spanish","originalText":"...","translatedText":"hola"}`)
	r := newTestRunner(t, p)

	if _, err := r.Run(context.Background(), KindTranslate, "hallo", "Spanish"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(p.call(0).Messages[1].Content, "Spanish") {
		t.Error("target language missing from prompt")
	}

	// No argument falls back to English.
	p2 := fixedResponse(`{"translatedText":"hello"}`)
	r2 := newTestRunner(t, p2)
	if _, err := r2.Run(context.Background(), KindTranslate, "hallo"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(p2.call(0).Messages[1].Content, "English") {
		t.Error("expected English default target language in prompt")
	}
}

func TestParseKindVocabulary(t *testing.T) {
	for _, k := range Kinds() {
		got, ok := ParseKind(string(k))
		if !ok || got != k {
			t.Errorf("registry kind %q not parseable", k)
		}
		if k.Description() == "" {
			t.Errorf("kind %q has no description", k)
		}
	}
	if _, ok := ParseKind("Summarize"); ok {
		t.Error("agent names are case sensitive")
	}
	if _, ok := ParseKind(""); ok {
		t.Error("empty name must not parse")
	}
}
