package reports

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"

	"webcarbon/internal/charts"
)

//go:embed templates/report.html.tmpl
var templateFS embed.FS

// HTMLBuilder handles HTML generation with goldmark
type HTMLBuilder struct {
	goldmark goldmark.Markdown
	page     *template.Template
}

// TemplateData represents the data structure for the HTML template
type TemplateData struct {
	Title       string
	Variant     Variant
	Version     string
	GeneratedAt string
	Chart       template.HTML
	Panel       template.HTML
}

// NewHTMLBuilder creates an HTML builder
func NewHTMLBuilder() (*HTMLBuilder, error) {
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithHardWraps(),
		),
	)

	page, err := template.ParseFS(templateFS, "templates/report.html.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse report template: %w", err)
	}

	return &HTMLBuilder{
		goldmark: md,
		page:     page,
	}, nil
}

// ConvertMarkdownToHTML converts markdown to HTML using goldmark
func (h *HTMLBuilder) ConvertMarkdownToHTML(markdownContent string) (string, error) {
	var buf bytes.Buffer
	if err := h.goldmark.Convert([]byte(markdownContent), &buf); err != nil {
		return "", fmt.Errorf("failed to convert markdown: %w", err)
	}
	return buf.String(), nil
}

// BuildPage assembles the chart snippet and the panel markdown into a full HTML page
func (h *HTMLBuilder) BuildPage(snippet charts.ChartSnippet, panelMarkdown string, variant Variant, version string, generatedAt time.Time) ([]byte, error) {
	panelHTML, err := h.ConvertMarkdownToHTML(panelMarkdown)
	if err != nil {
		return nil, err
	}

	data := TemplateData{
		Title:       snippet.Title,
		Variant:     variant,
		Version:     version,
		GeneratedAt: generatedAt.UTC().Format("2006-01-02 15:04:05 UTC"),
		// both fragments are produced by this program, not user input
		Chart: template.HTML(snippet.HTML),
		Panel: template.HTML(panelHTML),
	}

	var buf bytes.Buffer
	if err := h.page.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to execute report template: %w", err)
	}
	return buf.Bytes(), nil
}
