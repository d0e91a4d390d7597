package agents

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/studybuddy-ai/studybuddy/internal/llm"
)

func newTestOrchestrator(t *testing.T, p llm.Provider) *Orchestrator {
	t.Helper()
	return NewOrchestrator(newTestRunner(t, p))
}

func TestFanOutDefaultSelectionRunsAllAgents(t *testing.T) {
	p := fixedResponse(`{"title":"x"}`)
	orch := newTestOrchestrator(t, p)

	set, skipped, err := orch.FanOut(context.Background(), "input", nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(skipped) != 0 {
		t.Errorf("unexpected skipped list %v", skipped)
	}
	if set.Len() != len(Kinds()) {
		t.Fatalf("expected %d results, got %d", len(Kinds()), set.Len())
	}
	for i, k := range Kinds() {
		if set.Names()[i] != k {
			t.Errorf("position %d: expected %q, got %q", i, k, set.Names()[i])
		}
	}
}

func TestFanOutPreservesRequestOrder(t *testing.T) {
	p := fixedResponse(`{"title":"x"}`)
	orch := newTestOrchestrator(t, p)

	set, _, err := orch.FanOut(context.Background(), "input", []string{"quiz", "summarize", "qa"})
	if err != nil {
		t.Fatal(err)
	}
	want := []Kind{KindQuiz, KindSummarize, KindQA}
	got := set.Names()
	if len(got) != len(want) {
		t.Fatalf("expected %d results, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("position %d: expected %q, got %q", i, want[i], got[i])
		}
	}

	// The serialized object must keep the same key order.
	encoded, err := json.Marshal(set)
	if err != nil {
		t.Fatal(err)
	}
	s := string(encoded)
	if !(strings.Index(s, `"quiz"`) < strings.Index(s, `"summarize"`) &&
		strings.Index(s, `"summarize"`) < strings.Index(s, `"qa"`)) {
		t.Errorf("key order not preserved in %s", s)
	}
}

func TestFanOutReportsUnknownAgentsAsSkipped(t *testing.T) {
	p := fixedResponse(`{"title":"x"}`)
	orch := newTestOrchestrator(t, p)

	set, skipped, err := orch.FanOut(context.Background(), "input", []string{"summarize", "mindmap"})
	if err != nil {
		t.Fatal(err)
	}
	if set.Len() != 1 {
		t.Errorf("expected 1 result, got %d", set.Len())
	}
	if len(skipped) != 1 || skipped[0] != "mindmap" {
		t.Errorf("expected skipped [mindmap], got %v", skipped)
	}
}

func TestFanOutRejectsFullyUnknownSelection(t *testing.T) {
	orch := newTestOrchestrator(t, fixedResponse(`{}`))
	if _, _, err := orch.FanOut(context.Background(), "input", []string{"mindmap", "poster"}); err == nil {
		t.Error("expected error when no requested agent is known")
	}
}

func TestFanOutRejectsEmptyText(t *testing.T) {
	orch := newTestOrchestrator(t, fixedResponse(`{}`))
	if _, _, err := orch.FanOut(context.Background(), "  ", nil); err == nil {
		t.Error("expected error for blank input")
	}
}

func TestFanOutIsolatesPerAgentFailures(t *testing.T) {
	p := &fakeProvider{respond: func(req llm.CompletionRequest) (string, error) {
		if req.Messages[0].Content == quizSystemPrompt {
			return "", errors.New("boom")
		}
		return `{"title":"ok"}`, nil
	}}
	orch := newTestOrchestrator(t, p)

	set, _, err := orch.FanOut(context.Background(), "input", []string{"summarize", "quiz"})
	if err != nil {
		t.Fatal(err)
	}

	if res, _ := set.Get(KindSummarize); IsError(res) {
		t.Error("summarize should have succeeded")
	}
	res, ok := set.Get(KindQuiz)
	if !ok {
		t.Fatal("quiz result missing")
	}
	if !IsError(res) {
		t.Fatalf("expected quiz failure to be error-shaped, got %T", res)
	}
}

func TestRunPipelineChainsStepOutputs(t *testing.T) {
	translated := `{"detectedLanguage":"German","targetLanguage":"English","originalText":"...","translatedText":"the cell divides"}`
	p := &fakeProvider{respond: func(req llm.CompletionRequest) (string, error) {
		if req.Messages[0].Content == translateSystemPrompt {
			return translated, nil
		}
		return summarizeJSON, nil
	}}
	orch := newTestOrchestrator(t, p)

	steps := []PipelineStep{
		{Name: "translate", Args: []any{"English"}},
		{Name: "summarize", Args: []any{}},
	}
	res, err := orch.RunPipeline(context.Background(), "die Zelle teilt sich", steps)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := res.(*SummarizeResult); !ok {
		t.Fatalf("expected final *SummarizeResult, got %T", res)
	}

	if p.callCount() != 2 {
		t.Fatalf("expected 2 completions, got %d", p.callCount())
	}
	second := p.call(1).Messages[1].Content
	if !strings.Contains(second, "the cell divides") {
		t.Error("second step did not receive the first step's output")
	}
	if strings.Contains(second, "die Zelle") {
		t.Error("second step saw the original text instead of the translation")
	}
}

func TestRunPipelineUnknownAgentAborts(t *testing.T) {
	p := fixedResponse(`{}`)
	orch := newTestOrchestrator(t, p)

	_, err := orch.RunPipeline(context.Background(), "text", []PipelineStep{{Name: "mindmap"}})
	if err == nil {
		t.Fatal("expected error for unknown pipeline step")
	}
	if p.callCount() != 0 {
		t.Errorf("no completion should run for an invalid plan, got %d", p.callCount())
	}
}

func TestRunPipelineErrorStepPassesRawTextOnward(t *testing.T) {
	raw := "not json at all but still text"
	p := &fakeProvider{respond: func(req llm.CompletionRequest) (string, error) {
		if req.Messages[0].Content == explainSystemPrompt {
			return raw, nil
		}
		return summarizeJSON, nil
	}}
	orch := newTestOrchestrator(t, p)

	steps := []PipelineStep{
		{Name: "explain"},
		{Name: "summarize"},
	}
	res, err := orch.RunPipeline(context.Background(), "original", steps)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := res.(*SummarizeResult); !ok {
		t.Fatalf("expected pipeline to continue past error step, got %T", res)
	}
	if !strings.Contains(p.call(1).Messages[1].Content, raw) {
		t.Error("raw text of failed step not passed to next step")
	}
}

func TestRunPipelineRejectsEmptyPlan(t *testing.T) {
	orch := newTestOrchestrator(t, fixedResponse(`{}`))
	if _, err := orch.RunPipeline(context.Background(), "text", nil); err == nil {
		t.Error("expected error for empty pipeline")
	}
}
