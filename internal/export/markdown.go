// Package export renders agent results for sharing: Markdown, standalone
// HTML, and Google Docs.
package export

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/studybuddy-ai/studybuddy/internal/agents"
)

// FormatMarkdown flattens a fan-out result map into one Markdown document.
// Sections follow registry order; agent names that are not in the registry
// are ignored rather than failing the export.
func FormatMarkdown(title string, results map[string]json.RawMessage) string {
	var sb strings.Builder
	if title == "" {
		title = "Study Notes"
	}
	fmt.Fprintf(&sb, "# %s\n", title)

	for _, kind := range agents.Kinds() {
		raw, ok := results[string(kind)]
		if !ok {
			continue
		}
		res, err := agents.DecodeResult(kind, raw)
		if err != nil {
			fmt.Fprintf(&sb, "\n## %s\n\n_Result could not be decoded._\n", sectionTitle(kind))
			continue
		}
		sb.WriteString("\n")
		writeSection(&sb, kind, res)
	}
	return sb.String()
}

func sectionTitle(kind agents.Kind) string {
	switch kind {
	case agents.KindSummarize:
		return "Summary"
	case agents.KindTranslate:
		return "Translation"
	case agents.KindExplain:
		return "Explanation"
	case agents.KindQA:
		return "Questions & Answers"
	case agents.KindFlashcard:
		return "Flashcards"
	case agents.KindQuiz:
		return "Quiz"
	case agents.KindPracticeProblems:
		return "Practice Problems"
	default:
		return string(kind)
	}
}

func writeSection(sb *strings.Builder, kind agents.Kind, res agents.Result) {
	fmt.Fprintf(sb, "## %s\n\n", sectionTitle(kind))

	switch r := res.(type) {
	case *agents.ErrorResult:
		fmt.Fprintf(sb, "_%s_\n", r.Message)
		if r.RawResponse != "" {
			fmt.Fprintf(sb, "\n```\n%s\n```\n", r.RawResponse)
		}
	case *agents.SummarizeResult:
		if r.Title != "" {
			fmt.Fprintf(sb, "**%s**\n\n", r.Title)
		}
		fmt.Fprintf(sb, "%s\n", r.Summary)
		if len(r.KeyPoints) > 0 {
			sb.WriteString("\n**Key Points**\n\n")
			for _, p := range r.KeyPoints {
				fmt.Fprintf(sb, "- %s\n", p)
			}
		}
		if r.Difficulty != "" {
			fmt.Fprintf(sb, "\nDifficulty: %s\n", r.Difficulty)
		}
	case *agents.TranslateResult:
		fmt.Fprintf(sb, "Detected language: %s. Target language: %s.\n\n", r.DetectedLanguage, r.TargetLanguage)
		fmt.Fprintf(sb, "%s\n", r.TranslatedText)
		if r.Notes != "" {
			fmt.Fprintf(sb, "\n> %s\n", r.Notes)
		}
	case *agents.ExplainResult:
		if r.Summary != "" {
			fmt.Fprintf(sb, "%s\n", r.Summary)
		}
		for _, c := range r.MainConcepts {
			fmt.Fprintf(sb, "\n### %s\n\n%s\n", c.Concept, c.Explanation)
		}
		if len(r.KeyPoints) > 0 {
			sb.WriteString("\n**Key Points**\n\n")
			for _, p := range r.KeyPoints {
				fmt.Fprintf(sb, "- %s\n", p)
			}
		}
		if r.Conclusion != "" {
			fmt.Fprintf(sb, "\n%s\n", r.Conclusion)
		}
	case *agents.QAResult:
		for i, q := range r.Questions {
			fmt.Fprintf(sb, "**Q%d. %s**\n\n%s\n\n", i+1, q.Question, q.Answer)
		}
	case *agents.FlashcardResult:
		for _, c := range r.Flashcards {
			fmt.Fprintf(sb, "- **%s**: %s\n", c.Front, c.Back)
		}
	case *agents.QuizResult:
		for i, q := range r.Questions {
			fmt.Fprintf(sb, "**%d. %s**\n\n", i+1, q.Question)
			for j, opt := range q.Options {
				fmt.Fprintf(sb, "%c. %s\n", 'A'+j, opt)
			}
			fmt.Fprintf(sb, "\nAnswer: %s", q.CorrectAnswer)
			if q.Explanation != "" {
				fmt.Fprintf(sb, " (%s)", q.Explanation)
			}
			sb.WriteString("\n\n")
		}
	case *agents.PracticeProblemsResult:
		for i, p := range r.Problems {
			fmt.Fprintf(sb, "**Problem %d.** %s\n\n*Solution.* %s\n\n", i+1, p.Problem, p.Solution)
		}
	default:
		fmt.Fprintf(sb, "%s\n", res.Text())
	}
}
