package export

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// pageTemplate wraps rendered notes in a small standalone page.
const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{.Title}}</title>
  <style>
    body { font-family: -apple-system, "Segoe UI", Roboto, sans-serif; max-width: 48rem; margin: 2rem auto; padding: 0 1rem; line-height: 1.6; color: #1f2328; }
    h1, h2, h3 { line-height: 1.25; }
    blockquote { border-left: 3px solid #d0d7de; margin-left: 0; padding-left: 1rem; color: #57606a; }
    pre { background: #f6f8fa; padding: 1rem; overflow-x: auto; border-radius: 6px; }
    code { font-family: ui-monospace, SFMono-Regular, Menlo, monospace; font-size: 0.9em; }
  </style>
</head>
<body>
<article>
{{.Content}}
</article>
</body>
</html>`

type pageData struct {
	Title   string
	Content template.HTML
}

// RenderHTML converts the Markdown rendering of agent results into a
// standalone HTML page.
func RenderHTML(title, markdown string) (string, error) {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle("github"),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithUnsafe(),
		),
	)

	var body bytes.Buffer
	if err := md.Convert([]byte(markdown), &body); err != nil {
		return "", fmt.Errorf("export: rendering markdown: %w", err)
	}

	tmpl, err := template.New("page").Parse(pageTemplate)
	if err != nil {
		return "", fmt.Errorf("export: parsing page template: %w", err)
	}

	if title == "" {
		title = "Study Notes"
	}
	var out bytes.Buffer
	if err := tmpl.Execute(&out, pageData{Title: title, Content: template.HTML(body.String())}); err != nil {
		return "", fmt.Errorf("export: executing page template: %w", err)
	}
	return out.String(), nil
}
