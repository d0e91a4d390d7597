package agents

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
)

// ResultSet holds fan-out results keyed by agent name, preserving the order
// the agents were requested in. encoding/json maps would lose that order, so
// it marshals itself.
type ResultSet struct {
	names   []Kind
	results map[Kind]Result
}

func newResultSet() *ResultSet {
	return &ResultSet{results: make(map[Kind]Result)}
}

func (s *ResultSet) add(kind Kind, res Result) {
	if _, ok := s.results[kind]; !ok {
		s.names = append(s.names, kind)
	}
	s.results[kind] = res
}

// Get returns the result for an agent, if present.
func (s *ResultSet) Get(kind Kind) (Result, bool) {
	res, ok := s.results[kind]
	return res, ok
}

// Names returns the agent names in request order.
func (s *ResultSet) Names() []Kind {
	out := make([]Kind, len(s.names))
	copy(out, s.names)
	return out
}

func (s *ResultSet) Len() int { return len(s.names) }

// MarshalJSON emits a JSON object with keys in request order.
func (s *ResultSet) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range s.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(string(name))
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(s.results[name])
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Orchestrator runs agents either fanned out over one input or chained into
// a pipeline.
type Orchestrator struct {
	runner *Runner
}

func NewOrchestrator(runner *Runner) *Orchestrator {
	return &Orchestrator{runner: runner}
}

// FanOut runs the selected agents independently over the same input. A nil
// or empty selection means every registered agent, in registry order. Unknown
// names in an explicit selection are reported in the skipped list rather than
// failing the request; an explicit selection with no known names at all is a
// validation error. Per-agent failures land in the result set as the error
// shape, so one broken agent never hides the others.
func (o *Orchestrator) FanOut(ctx context.Context, text string, selected []string) (*ResultSet, []string, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil, fmt.Errorf("agents: empty input text")
	}

	var kinds []Kind
	var skipped []string
	if len(selected) == 0 {
		kinds = Kinds()
	} else {
		seen := make(map[Kind]bool)
		for _, name := range selected {
			kind, ok := ParseKind(name)
			if !ok {
				skipped = append(skipped, name)
				continue
			}
			if !seen[kind] {
				seen[kind] = true
				kinds = append(kinds, kind)
			}
		}
		if len(kinds) == 0 {
			return nil, nil, fmt.Errorf("agents: no known agents in selection %v", selected)
		}
	}

	set := newResultSet()
	for _, kind := range kinds {
		res, err := o.runner.Run(ctx, kind, text)
		if err != nil {
			// Input was validated above, so this is a per-agent failure.
			res = &ErrorResult{Error: true, Message: err.Error()}
		}
		set.add(kind, res)
		if ctx.Err() != nil {
			return nil, nil, ctx.Err()
		}
	}
	return set, skipped, nil
}

// RunPipeline executes steps strictly in order, feeding each step's text
// rendering into the next. An unknown step name aborts the whole pipeline:
// a plan that names nonexistent agents is a caller bug, not a degraded run.
// A step whose result is the error shape still passes its raw text onward.
func (o *Orchestrator) RunPipeline(ctx context.Context, text string, steps []PipelineStep) (Result, error) {
	if len(steps) == 0 {
		return nil, fmt.Errorf("agents: empty pipeline")
	}

	var last Result
	current := text
	for i, step := range steps {
		kind, ok := ParseKind(step.Name)
		if !ok {
			return nil, fmt.Errorf("agents: pipeline step %d names unknown agent %q", i+1, step.Name)
		}

		res, err := o.runner.Run(ctx, kind, current, stringArgs(step.Args)...)
		if err != nil {
			return nil, fmt.Errorf("agents: pipeline step %d (%s): %w", i+1, kind, err)
		}
		if IsError(res) {
			log.Printf("agents: pipeline step %d (%s) produced an error result, passing raw text onward", i+1, kind)
		}

		last = res
		if next := res.Text(); next != "" {
			current = next
		}
	}
	return last, nil
}

func stringArgs(args []any) []string {
	out := make([]string, 0, len(args))
	for _, a := range args {
		out = append(out, fmt.Sprint(a))
	}
	return out
}
