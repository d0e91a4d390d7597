package agents

import "fmt"

const summarizeSystemPrompt = "You are a helpful assistant that summarizes educational content for students."

const summarizePromptTemplate = `Summarize the following text in simple, clear language suitable for a college student.

Format your response as a JSON object with the following structure:
{
  "title": "A concise title for this summary",
  "summary": "A comprehensive summary of the main text in 3-5 sentences",
  "keyPoints": ["Key point 1", "Key point 2", "Key point 3"],
  "difficulty": "A rating of the content complexity (Beginner/Intermediate/Advanced)"
}

Input text:
"""
%s
"""`

const translateSystemPrompt = "You are a multilingual assistant that translates educational content."

const translatePromptTemplate = `You are a translation assistant.

Task:
- Detect the language of the input text.
- Translate it into %s.
- Provide cultural or contextual translation notes if relevant.

Return your output strictly in the following JSON format:

{
  "detectedLanguage": "The language identified in the input",
  "targetLanguage": "The language translated into",
  "originalText": "A 50-100 character excerpt of the input",
  "translatedText": "The full translated text",
  "notes": "Optional: cultural notes, translation nuances, or ambiguity"
}

Input:
"""
%s
"""`

// defaultTargetLanguage is used when a translate step carries no argument:
// non-English input is brought into the surrounding dominant language.
const defaultTargetLanguage = "English"

const explainSystemPrompt = "You are a helpful teacher assistant."

const explainPromptTemplate = `Explain the following content in simple terms, suitable for a student. Break down complex ideas, define key concepts clearly, and make the explanation easy to follow.

Instructions:
- Provide a short summary.
- Extract and explain the key concepts in a simplified way.
- List the most important takeaways as bullet points.
- End with a concise conclusion.
- Output only a clean JSON object in the following format:

{
  "title": "A concise title for this explanation",
  "summary": "A brief 1-2 sentence summary of the content",
  "mainConcepts": [
    { "concept": "Concept 1", "explanation": "Simple explanation of concept 1" }
  ],
  "keyPoints": ["Key point 1", "Key point 2", "Key point 3"],
  "conclusion": "A concluding sentence or two"
}

Input:
"""
%s
"""`

const qaSystemPrompt = "You are an AI assistant that extracts key questions and answers from educational content."

const qaPromptTemplate = `Instructions:
- Generate exactly 3 meaningful and relevant questions based on the text.
- Provide clear, complete answers to each question.
- Format your response strictly as a JSON object with this structure:

{
  "title": "Short, informative title about the content",
  "questions": [
    { "question": "First question?", "answer": "Detailed and accurate answer" }
  ]
}

Here is the text:
"""
%s
"""`

const flashcardSystemPrompt = "You are a helpful assistant that creates study flashcards from text."

const flashcardPromptTemplate = `Generate 5 study flashcards based on the following text.

Format your response as a JSON object with the following structure:
{
  "title": "A concise title related to the content",
  "flashcards": [
    { "front": "Term or concept", "back": "Definition or explanation" }
  ]
}

Input text:
"""
%s
"""`

const quizSystemPrompt = "You are a helpful assistant that creates educational quizzes from text."

const quizPromptTemplate = `You are an AI quiz creator. Based on the following input text, generate a 5-question multiple-choice quiz.

Instructions:
- Each question must have 4 options (A-D).
- Include the correct answer and a short explanation for each.
- Make sure all content is relevant and not overly difficult for a college-level student.

Return only a valid JSON object in the following format:
{
  "title": "Short, descriptive title for the quiz",
  "questions": [
    {
      "question": "Text of the question?",
      "options": ["Option A", "Option B", "Option C", "Option D"],
      "correctAnswer": "Option A",
      "explanation": "Brief explanation of why this answer is correct"
    }
  ]
}

Here is the text:
"""
%s
"""`

const practiceProblemsSystemPrompt = "You are a helpful assistant that writes practice problems for students."

const practiceProblemsPromptTemplate = `Generate 3 practice problems with detailed solutions based on the following text.

Format your response as a JSON object with the following structure:
{
  "title": "A concise title related to the content",
  "problems": [
    { "problem": "Detailed problem statement", "solution": "Step-by-step solution" }
  ]
}

Input text:
"""
%s
"""`

// buildPrompt renders the user prompt for a kind. translate takes the target
// language as its only argument.
func buildPrompt(kind Kind, text, targetLang string) string {
	switch kind {
	case KindSummarize:
		return fmt.Sprintf(summarizePromptTemplate, text)
	case KindTranslate:
		if targetLang == "" {
			targetLang = defaultTargetLanguage
		}
		return fmt.Sprintf(translatePromptTemplate, targetLang, text)
	case KindExplain:
		return fmt.Sprintf(explainPromptTemplate, text)
	case KindQA:
		return fmt.Sprintf(qaPromptTemplate, text)
	case KindFlashcard:
		return fmt.Sprintf(flashcardPromptTemplate, text)
	case KindQuiz:
		return fmt.Sprintf(quizPromptTemplate, text)
	case KindPracticeProblems:
		return fmt.Sprintf(practiceProblemsPromptTemplate, text)
	default:
		return text
	}
}

// systemPrompt returns the system message for a kind.
func systemPrompt(kind Kind) string {
	switch kind {
	case KindSummarize:
		return summarizeSystemPrompt
	case KindTranslate:
		return translateSystemPrompt
	case KindExplain:
		return explainSystemPrompt
	case KindQA:
		return qaSystemPrompt
	case KindFlashcard:
		return flashcardSystemPrompt
	case KindQuiz:
		return quizSystemPrompt
	case KindPracticeProblems:
		return practiceProblemsSystemPrompt
	default:
		return ""
	}
}

// temperature returns the sampling temperature for a kind: 0 for structured
// extraction, 0.2 for generative agents.
func temperature(kind Kind) float64 {
	switch kind {
	case KindQuiz, KindFlashcard, KindPracticeProblems:
		return 0.2
	default:
		return 0
	}
}
