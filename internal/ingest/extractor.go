// Package ingest turns raw study material into stored, embedded documents:
// extract text, clean it, segment it, embed the fixed-size chunks and save
// the result.
package ingest

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// Extraction is the raw output of text extraction, before cleaning.
type Extraction struct {
	Text      string
	PageCount int
}

// Extractor converts an uploaded file's bytes into text. PDF extraction is
// an external capability: deployments plug their own Extractor in; the
// in-repo TextExtractor covers plain text and markdown.
type Extractor interface {
	Extract(data []byte) (*Extraction, error)
}

// TextExtractor treats the input bytes as UTF-8 text.
type TextExtractor struct{}

func (TextExtractor) Extract(data []byte) (*Extraction, error) {
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("ingest: file is not valid UTF-8 text")
	}
	return &Extraction{Text: string(data)}, nil
}

// supportedExtensions are the file types the built-in extractor handles.
var supportedExtensions = map[string]bool{
	".txt":      true,
	".md":       true,
	".markdown": true,
	".text":     true,
}

// SupportedFile reports whether the built-in extractor can handle a path.
func SupportedFile(path string) bool {
	return supportedExtensions[strings.ToLower(filepath.Ext(path))]
}
