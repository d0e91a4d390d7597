// Package agents implements the study agents: single-purpose text
// transformations backed by an LLM call, each with a fixed JSON output
// schema, plus the planner and orchestrator that sequence them.
package agents

// Kind identifies one of the known agents. The set is closed: dispatch is
// an exhaustive switch, so a typo in an agent name cannot reach an agent.
type Kind string

const (
	KindSummarize        Kind = "summarize"
	KindTranslate        Kind = "translate"
	KindExplain          Kind = "explain"
	KindQA               Kind = "qa"
	KindFlashcard        Kind = "flashcard"
	KindQuiz             Kind = "quiz"
	KindPracticeProblems Kind = "practiceProblems"
)

// Kinds lists every agent in registry order. Fan-out runs without an
// explicit selection follow this order.
func Kinds() []Kind {
	return []Kind{
		KindSummarize,
		KindTranslate,
		KindExplain,
		KindQA,
		KindFlashcard,
		KindQuiz,
		KindPracticeProblems,
	}
}

// ParseKind resolves an agent name from the vocabulary. The second return
// is false for unknown names.
func ParseKind(name string) (Kind, bool) {
	switch Kind(name) {
	case KindSummarize, KindTranslate, KindExplain, KindQA,
		KindFlashcard, KindQuiz, KindPracticeProblems:
		return Kind(name), true
	default:
		return "", false
	}
}

// Description returns the one-line description used in planner prompts.
func (k Kind) Description() string {
	switch k {
	case KindSummarize:
		return "Summarizes lengthy text."
	case KindTranslate:
		return "Translates text into a target language."
	case KindExplain:
		return "Explains complex topics in simple terms."
	case KindQA:
		return "Extracts key questions and answers from content."
	case KindFlashcard:
		return "Generates study flashcards."
	case KindQuiz:
		return "Generates a multiple-choice quiz."
	case KindPracticeProblems:
		return "Generates practice problems with solutions."
	default:
		return ""
	}
}
