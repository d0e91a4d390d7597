package agents

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ErrorMessage is the canonical message carried by parse-failure results.
const ErrorMessage = "Failed to parse AI response as valid JSON"

// ErrorResult is the canonical error shape returned when an agent's LLM
// response cannot be parsed, or when the call itself failed at the agent
// boundary. It is data, not an error: callers render it like any result.
type ErrorResult struct {
	Error       bool   `json:"error"`
	Message     string `json:"message"`
	RawResponse string `json:"rawResponse"`
}

// Text returns the raw response so later pipeline steps can still work on
// text when a step's structured parse failed.
func (r *ErrorResult) Text() string { return r.RawResponse }

// Result is anything an agent invocation can produce: one of the typed
// payloads below or *ErrorResult. Text renders the result back to plain
// text for chained pipelines.
type Result interface {
	Text() string
}

// SummarizeResult is the summarize agent's output schema.
type SummarizeResult struct {
	Title      string   `json:"title"`
	Summary    string   `json:"summary"`
	KeyPoints  []string `json:"keyPoints"`
	Difficulty string   `json:"difficulty"`
}

func (r *SummarizeResult) Text() string {
	var sb strings.Builder
	sb.WriteString(r.Summary)
	for _, p := range r.KeyPoints {
		sb.WriteString("\n- ")
		sb.WriteString(p)
	}
	return sb.String()
}

// TranslateResult is the translate agent's output schema.
type TranslateResult struct {
	DetectedLanguage string `json:"detectedLanguage"`
	TargetLanguage   string `json:"targetLanguage"`
	OriginalText     string `json:"originalText"`
	TranslatedText   string `json:"translatedText"`
	Notes            string `json:"notes,omitempty"`
}

func (r *TranslateResult) Text() string { return r.TranslatedText }

// Concept is one explained concept within an ExplainResult.
type Concept struct {
	Concept     string `json:"concept"`
	Explanation string `json:"explanation"`
}

// ExplainResult is the explain agent's output schema.
type ExplainResult struct {
	Title        string    `json:"title"`
	Summary      string    `json:"summary"`
	MainConcepts []Concept `json:"mainConcepts"`
	KeyPoints    []string  `json:"keyPoints"`
	Conclusion   string    `json:"conclusion"`
}

func (r *ExplainResult) Text() string {
	var sb strings.Builder
	sb.WriteString(r.Summary)
	for _, c := range r.MainConcepts {
		fmt.Fprintf(&sb, "\n%s: %s", c.Concept, c.Explanation)
	}
	if r.Conclusion != "" {
		sb.WriteString("\n")
		sb.WriteString(r.Conclusion)
	}
	return sb.String()
}

// QAPair is one extracted question and its answer.
type QAPair struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// QAResult is the question-answer extraction agent's output schema.
type QAResult struct {
	Title     string   `json:"title"`
	Questions []QAPair `json:"questions"`
}

func (r *QAResult) Text() string {
	var sb strings.Builder
	for i, q := range r.Questions {
		if i > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "Q: %s\nA: %s", q.Question, q.Answer)
	}
	return sb.String()
}

// Flashcard is a single front/back card.
type Flashcard struct {
	Front string `json:"front"`
	Back  string `json:"back"`
}

// FlashcardResult is the flashcard agent's output schema.
type FlashcardResult struct {
	Title      string      `json:"title"`
	Flashcards []Flashcard `json:"flashcards"`
}

func (r *FlashcardResult) Text() string {
	var sb strings.Builder
	for i, c := range r.Flashcards {
		if i > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "%s — %s", c.Front, c.Back)
	}
	return sb.String()
}

// QuizQuestion is one multiple-choice question with four options.
type QuizQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
	Explanation   string   `json:"explanation"`
}

// QuizResult is the quiz agent's output schema.
type QuizResult struct {
	Title     string         `json:"title"`
	Questions []QuizQuestion `json:"questions"`
}

func (r *QuizResult) Text() string {
	var sb strings.Builder
	for i, q := range r.Questions {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(q.Question)
	}
	return sb.String()
}

// PracticeProblem is one problem statement with its worked solution.
type PracticeProblem struct {
	Problem  string `json:"problem"`
	Solution string `json:"solution"`
}

// PracticeProblemsResult is the practice-problem agent's output schema.
type PracticeProblemsResult struct {
	Title    string            `json:"title"`
	Problems []PracticeProblem `json:"problems"`
}

func (r *PracticeProblemsResult) Text() string {
	var sb strings.Builder
	for i, p := range r.Problems {
		if i > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "Problem: %s\nSolution: %s", p.Problem, p.Solution)
	}
	return sb.String()
}

// IsError reports whether a result is the canonical error shape.
func IsError(r Result) bool {
	_, ok := r.(*ErrorResult)
	return ok
}

// DecodeResult parses a serialized result back into its typed form. The
// error shape is recognised by its "error": true marker before the typed
// schemas are tried.
func DecodeResult(kind Kind, data []byte) (Result, error) {
	var probe struct {
		Error bool `json:"error"`
	}
	if err := json.Unmarshal(data, &probe); err == nil && probe.Error {
		var er ErrorResult
		if err := json.Unmarshal(data, &er); err == nil {
			return &er, nil
		}
	}
	return unmarshalKind(kind, string(data))
}
