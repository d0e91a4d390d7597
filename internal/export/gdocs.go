package export

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf16"

	"golang.org/x/oauth2"
	"google.golang.org/api/docs/v1"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

// GDocsExport identifies a created Google Doc.
type GDocsExport struct {
	DocumentID string `json:"documentId"`
	URL        string `json:"url"`
}

// GDocsExporter writes study notes into a new Google Doc.
type GDocsExporter struct {
	docs  *docs.Service
	drive *drive.Service
}

// NewGDocsExporter builds Docs and Drive services from an OAuth token
// source.
func NewGDocsExporter(ctx context.Context, ts oauth2.TokenSource) (*GDocsExporter, error) {
	docsSvc, err := docs.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return nil, fmt.Errorf("export: creating docs service: %w", err)
	}
	driveSvc, err := drive.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return nil, fmt.Errorf("export: creating drive service: %w", err)
	}
	return &GDocsExporter{docs: docsSvc, drive: driveSvc}, nil
}

// Export creates a document titled title and fills it with the Markdown
// rendering of the results, mapping headings onto the Docs named styles.
func (e *GDocsExporter) Export(ctx context.Context, title, markdown string) (*GDocsExport, error) {
	if title == "" {
		title = "Study Notes"
	}

	doc, err := e.docs.Documents.Create(&docs.Document{Title: title}).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("export: creating document: %w", err)
	}

	requests := buildDocRequests(markdown)
	if len(requests) > 0 {
		_, err = e.docs.Documents.BatchUpdate(doc.DocumentId, &docs.BatchUpdateDocumentRequest{
			Requests: requests,
		}).Context(ctx).Do()
		if err != nil {
			return nil, fmt.Errorf("export: writing document body: %w", err)
		}
	}

	url := "https://docs.google.com/document/d/" + doc.DocumentId + "/edit"
	if file, err := e.drive.Files.Get(doc.DocumentId).Fields("webViewLink").Context(ctx).Do(); err == nil && file.WebViewLink != "" {
		url = file.WebViewLink
	}

	return &GDocsExport{DocumentID: doc.DocumentId, URL: url}, nil
}

// buildDocRequests converts Markdown into one InsertText request plus
// paragraph-style requests for the heading lines. Docs API ranges are in
// UTF-16 code units, so offsets are computed accordingly.
func buildDocRequests(markdown string) []*docs.Request {
	lines := strings.Split(markdown, "\n")

	type headingRange struct {
		style      string
		start, end int64
	}

	var text strings.Builder
	var headings []headingRange
	offset := int64(1) // body content starts at index 1

	for _, line := range lines {
		style := ""
		switch {
		case strings.HasPrefix(line, "### "):
			style, line = "HEADING_3", strings.TrimPrefix(line, "### ")
		case strings.HasPrefix(line, "## "):
			style, line = "HEADING_2", strings.TrimPrefix(line, "## ")
		case strings.HasPrefix(line, "# "):
			style, line = "HEADING_1", strings.TrimPrefix(line, "# ")
		}
		line = strings.ReplaceAll(line, "**", "")

		length := utf16Len(line) + 1 // trailing newline
		if style != "" {
			headings = append(headings, headingRange{style: style, start: offset, end: offset + length})
		}
		text.WriteString(line)
		text.WriteString("\n")
		offset += length
	}

	content := text.String()
	if strings.TrimSpace(content) == "" {
		return nil
	}

	requests := []*docs.Request{{
		InsertText: &docs.InsertTextRequest{
			Text:     content,
			Location: &docs.Location{Index: 1},
		},
	}}
	for _, h := range headings {
		requests = append(requests, &docs.Request{
			UpdateParagraphStyle: &docs.UpdateParagraphStyleRequest{
				Range:          &docs.Range{StartIndex: h.start, EndIndex: h.end},
				ParagraphStyle: &docs.ParagraphStyle{NamedStyleType: h.style},
				Fields:         "namedStyleType",
			},
		})
	}
	return requests
}

func utf16Len(s string) int64 {
	return int64(len(utf16.Encode([]rune(s))))
}
