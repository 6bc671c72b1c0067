// Package template provides a deterministic generator for development and
// demos. Drafts are rendered from Go templates fed with a cheap extraction
// of the source content, so no model API is needed.
package template

import (
	"context"
	"fmt"
	"strings"
	"text/template"

	"github.com/kaljuvee/postwave/pkg/models"
	"github.com/kaljuvee/postwave/pkg/platforms"
)

var drafts = map[models.Platform]string{
	models.PlatformTwitter: `{{.Title}}

{{.Summary}}

#{{.Style}} #postwave`,
	models.PlatformLinkedIn: `{{.Title}}

{{.Summary}}

Key takeaway: {{.Lead}}

#{{.Style}} #postwave`,
	models.PlatformReddit: `{{.Title}}

{{.Summary}}`,
}

type draftData struct {
	Title   string
	Lead    string
	Summary string
	Style   string
}

// Generator renders drafts from static templates. Output is a pure function
// of content, platform and style.
type Generator struct {
	templates map[models.Platform]*template.Template
}

func NewGenerator() (*Generator, error) {
	templates := make(map[models.Platform]*template.Template, len(drafts))

	for platform, draft := range drafts {
		tmpl, err := template.New(string(platform)).Parse(draft)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s draft template: %w", platform, err)
		}

		templates[platform] = tmpl
	}

	return &Generator{templates: templates}, nil
}

func (g *Generator) Generate(_ context.Context, content string, platform models.Platform, style string) (string, error) {
	tmpl, ok := g.templates[platform]
	if !ok {
		return "", fmt.Errorf("no draft template for platform '%s'", platform)
	}

	if style == "" {
		style = "professional"
	}

	var buf strings.Builder

	err := tmpl.Execute(&buf, extract(content, style))
	if err != nil {
		return "", fmt.Errorf("failed to render %s draft: %w", platform, err)
	}

	draft := strings.TrimSpace(buf.String())
	if platforms.OverLimit(platform, draft) {
		draft = truncate(draft, platforms.Limit(platform))
	}

	return draft, nil
}

// extract pulls a title, lead line and short summary out of the raw text.
func extract(content, style string) draftData {
	var lines []string

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if len(line) > 10 {
			lines = append(lines, line)
		}
	}

	data := draftData{
		Title: "New update",
		Style: style,
	}

	if len(lines) > 0 {
		data.Title = lines[0]
	}

	if len(lines) > 1 {
		data.Lead = lines[1]

		end := min(len(lines), 4)
		data.Summary = strings.Join(lines[1:end], " ")
	} else {
		data.Lead = data.Title
		data.Summary = data.Title
	}

	return data
}

func truncate(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}

	return string(runes[:limit])
}
