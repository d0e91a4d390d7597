// Package textsplit segments raw document text into chunks suitable for
// embedding, display, and retrieval. Each strategy is independent and
// position metadata is always relative to the text handed to it.
package textsplit

import (
	"fmt"
	"regexp"
	"strings"
)

// DefaultChunkSize is the fixed-size window width in characters.
const DefaultChunkSize = 500

// DefaultMaxTokens is the approximate token budget per token-based chunk.
const DefaultMaxTokens = 1000

// ChunkMetadata carries position information for a single chunk.
type ChunkMetadata struct {
	ChunkNumber    int  `json:"chunkNumber,omitempty"`
	PageNumber     int  `json:"pageNumber,omitempty"`
	StartIndex     int  `json:"startIndex"`
	EndIndex       int  `json:"endIndex"`
	WordCount      int  `json:"wordCount,omitempty"`
	CharacterCount int  `json:"characterCount"`
	IsLastChunk    bool `json:"isLastChunk,omitempty"`
}

// Chunk is a contiguous slice of a document's text plus its position metadata.
type Chunk struct {
	Content  string        `json:"content"`
	Metadata ChunkMetadata `json:"metadata"`
}

// Header is a detected section heading and its zero-based line index.
type Header struct {
	Header   string `json:"header"`
	Position int    `json:"position"`
}

var (
	crlfRe       = regexp.MustCompile(`\r\n`)
	controlRe    = regexp.MustCompile(`[\x00-\x09\x0B-\x1F\x7F-\x9F]`)
	spaceRunRe   = regexp.MustCompile(`[ \t]+`)
	newlineRunRe = regexp.MustCompile(`\n+`)
	pageNumRe    = regexp.MustCompile(`\n\d+\n`)
	blankLineRe  = regexp.MustCompile(`(?m)^\s*\n`)
	paragraphRe  = regexp.MustCompile(`\n\s*\n`)
	wordRe       = regexp.MustCompile(`\s+`)
	titleCaseRe  = regexp.MustCompile(`^[A-Z][a-z]+(?: [A-Z][a-z]+)*$`)
)

// Clean normalises text extracted from a PDF: line endings, control
// characters, whitespace runs, bare page-number lines, and blank lines.
// It is idempotent.
func Clean(text string) string {
	text = crlfRe.ReplaceAllString(text, "\n")
	text = controlRe.ReplaceAllString(text, "")
	text = spaceRunRe.ReplaceAllString(text, " ")
	text = newlineRunRe.ReplaceAllString(text, "\n")
	text = pageNumRe.ReplaceAllString(text, "\n")
	text = blankLineRe.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}

// WordCount counts whitespace-delimited words.
func WordCount(text string) int {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return 0
	}
	return len(wordRe.Split(trimmed, -1))
}

// ByParagraph splits text on blank-line boundaries, dropping empty segments.
// Offsets are rune positions into the given text's paragraph sequence.
func ByParagraph(text string) []Chunk {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	parts := paragraphRe.Split(text, -1)
	var chunks []Chunk
	currentIndex := 0
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed == "" {
			continue
		}
		chunks = append(chunks, Chunk{
			Content: trimmed,
			Metadata: ChunkMetadata{
				StartIndex:     currentIndex,
				EndIndex:       currentIndex + len([]rune(p)),
				WordCount:      WordCount(trimmed),
				CharacterCount: len([]rune(trimmed)),
			},
		})
		currentIndex += len([]rune(p)) + 2
	}
	return chunks
}

// ByFixedSize cuts text into contiguous windows of exactly chunkSize runes,
// left to right; the final window may be shorter and is the only one marked
// IsLastChunk. Chunk numbers are 1-based. chunkSize must be positive.
func ByFixedSize(text string, chunkSize int) ([]Chunk, error) {
	if chunkSize <= 0 {
		return nil, fmt.Errorf("textsplit: chunk size must be positive, got %d", chunkSize)
	}
	runes := []rune(text)
	if len(runes) == 0 {
		return nil, nil
	}

	var chunks []Chunk
	for start := 0; start < len(runes); start += chunkSize {
		end := start + chunkSize
		if end > len(runes) {
			end = len(runes)
		}
		content := string(runes[start:end])
		chunks = append(chunks, Chunk{
			Content: content,
			Metadata: ChunkMetadata{
				ChunkNumber:    len(chunks) + 1,
				StartIndex:     start,
				EndIndex:       end,
				CharacterCount: end - start,
				IsLastChunk:    end == len(runes),
			},
		})
	}
	return chunks, nil
}

// ByTokens accumulates whitespace-delimited words until maxTokens is reached,
// then flushes the accumulation as one chunk. Words are never split and the
// final partial accumulation is always flushed.
func ByTokens(text string, maxTokens int) []Chunk {
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil
	}

	words := wordRe.Split(trimmed, -1)
	var chunks []Chunk
	var current []string
	currentIndex := 0

	flush := func() {
		content := strings.Join(current, " ")
		chunks = append(chunks, Chunk{
			Content: content,
			Metadata: ChunkMetadata{
				StartIndex:     currentIndex,
				EndIndex:       currentIndex + len([]rune(content)),
				WordCount:      len(current),
				CharacterCount: len([]rune(content)),
			},
		})
		currentIndex += len([]rune(content)) + 1
		current = nil
	}

	for _, w := range words {
		current = append(current, w)
		if len(current) >= maxTokens {
			flush()
		}
	}
	if len(current) > 0 {
		flush()
	}
	return chunks
}

// ByPages splits on the same blank-line delimiter as ByParagraph but tags
// each block with a 1-based page number and re-applies Clean per block.
func ByPages(text string) []Chunk {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	parts := paragraphRe.Split(text, -1)
	var chunks []Chunk
	currentIndex := 0
	page := 0
	for _, p := range parts {
		if strings.TrimSpace(p) == "" {
			continue
		}
		cleaned := Clean(p)
		page++
		chunks = append(chunks, Chunk{
			Content: cleaned,
			Metadata: ChunkMetadata{
				PageNumber:     page,
				StartIndex:     currentIndex,
				EndIndex:       currentIndex + len([]rune(cleaned)),
				WordCount:      WordCount(cleaned),
				CharacterCount: len([]rune(cleaned)),
			},
		})
		currentIndex += len([]rune(cleaned)) + 2
	}
	return chunks
}

// SectionHeaders flags short lines that look like headings: either fully
// upper-case (containing at least one letter) or simple Title Case.
// Positions are zero-based line indexes.
func SectionHeaders(text string) []Header {
	if text == "" {
		return nil
	}

	var headers []Header
	for i, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || len([]rune(trimmed)) >= 50 {
			continue
		}
		if isAllCaps(trimmed) || titleCaseRe.MatchString(trimmed) {
			headers = append(headers, Header{Header: trimmed, Position: i})
		}
	}
	return headers
}

// isAllCaps reports whether s is its own upper-casing and contains at least
// one cased letter, so bare numbers do not qualify.
func isAllCaps(s string) bool {
	return s == strings.ToUpper(s) && s != strings.ToLower(s)
}
