package agents

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/studybuddy-ai/studybuddy/internal/llm"
)

// PipelineStep is one planned agent invocation. Args is agent-specific:
// translate takes the target language as its first element, everything else
// runs with no args.
type PipelineStep struct {
	Name string `json:"name"`
	Args []any  `json:"args"`
}

// Planner asks the LLM to order agents into a pipeline for a given input.
type Planner struct {
	provider llm.Provider
	model    string
}

func NewPlanner(provider llm.Provider, model string) (*Planner, error) {
	if provider == nil {
		return nil, fmt.Errorf("agents: no LLM provider configured")
	}
	if model == "" {
		return nil, fmt.Errorf("agents: no model configured")
	}
	return &Planner{provider: provider, model: model}, nil
}

const plannerSystemPrompt = "You are a planning assistant that decides which study agents to run on a document and in what order. You respond only with JSON."

const plannerPromptTemplate = `You have the following agents available:

%s

Given the input text below, decide which agents to run and in what order.

Guidelines:
- If the text is not in English, translate it early so later agents work on English text.
- If the text is long, summarize before running question or quiz agents.
- Only include agents that are useful for this text. Two to four steps is typical.
- The translate agent takes the target language as its single argument; all other agents take no arguments.

Respond with ONLY a JSON array of steps, no prose:
[{"name": "translate", "args": ["English"]}, {"name": "summarize", "args": []}]

Input text:
"""
%s
"""`

const rationalePromptTemplate = `You previously planned the following agent pipeline for a document:

%s

In two or three sentences, explain why this ordering makes sense for a student studying the document. Respond with plain prose, no JSON.`

// fallbackPlan is returned whenever the model's plan cannot be parsed or
// validated. Summarize is safe for any input.
func fallbackPlan() []PipelineStep {
	return []PipelineStep{{Name: string(KindSummarize), Args: []any{}}}
}

// Plan asks the model for a pipeline over the given text. It never fails on
// model output: unparseable or invalid plans degrade to the fallback plan.
// An error is returned only when the completion itself fails.
func (p *Planner) Plan(ctx context.Context, text string) ([]PipelineStep, error) {
	var vocab strings.Builder
	for _, k := range Kinds() {
		fmt.Fprintf(&vocab, "- %s: %s\n", k, k.Description())
	}

	req := llm.CompletionRequest{
		Model: p.model,
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: plannerSystemPrompt},
			{Role: llm.RoleUser, Content: fmt.Sprintf(plannerPromptTemplate, vocab.String(), text)},
		},
		MaxTokens:   1024,
		Temperature: 0,
	}

	resp, err := p.provider.Complete(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("planner completion: %w", err)
	}

	steps, ok := parsePlan(resp.Content)
	if !ok {
		log.Printf("agents: planner produced no usable plan, falling back to summarize")
		return fallbackPlan(), nil
	}
	return steps, nil
}

// Rationale asks the model to explain a plan in prose. A failure degrades to
// an empty string rather than an error: the rationale is decoration, the plan
// is the contract.
func (p *Planner) Rationale(ctx context.Context, steps []PipelineStep) string {
	encoded, err := json.Marshal(steps)
	if err != nil {
		return ""
	}

	req := llm.CompletionRequest{
		Model: p.model,
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: plannerSystemPrompt},
			{Role: llm.RoleUser, Content: fmt.Sprintf(rationalePromptTemplate, encoded)},
		},
		MaxTokens:   512,
		Temperature: 0.2,
	}

	resp, err := p.provider.Complete(ctx, req)
	if err != nil {
		log.Printf("agents: rationale completion failed: %v", err)
		return ""
	}
	return strings.TrimSpace(resp.Content)
}

// parsePlan runs the sanitation chain over a planner response: direct parse,
// fence strip, first-[...] extract, token repair. The first stage that yields
// a valid plan wins. A plan is valid when every element names a known agent;
// one bad element rejects the whole plan.
func parsePlan(raw string) ([]PipelineStep, bool) {
	stripped := StripFences(raw)
	extracted := ExtractArray(stripped)
	candidates := []string{raw, stripped, extracted, RepairTokens(extracted)}
	for _, c := range candidates {
		if c == "" {
			continue
		}
		var steps []PipelineStep
		if err := json.Unmarshal([]byte(c), &steps); err != nil {
			continue
		}
		if validPlan(steps) {
			return steps, true
		}
	}
	return nil, false
}

func validPlan(steps []PipelineStep) bool {
	if len(steps) == 0 {
		return false
	}
	for _, s := range steps {
		if _, ok := ParseKind(s.Name); !ok {
			return false
		}
	}
	return true
}
