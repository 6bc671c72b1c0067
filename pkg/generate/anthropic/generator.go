// Package anthropic generates platform-specific post drafts with Claude.
package anthropic

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/kaljuvee/postwave/pkg/models"
	"github.com/kaljuvee/postwave/pkg/platforms"
)

const (
	DefaultModel     = "claude-sonnet-4-20250514"
	defaultMaxTokens = 4096
)

// Generator drafts posts by prompting Claude with the source content and a
// platform-specific instruction block.
type Generator struct {
	client    anthropic.Client
	model     string
	maxTokens int64
}

func NewGenerator(apiKey, model string) *Generator {
	if model == "" {
		model = DefaultModel
	}

	var client anthropic.Client
	if apiKey == "" {
		client = anthropic.NewClient()
	} else {
		client = anthropic.NewClient(option.WithAPIKey(apiKey))
	}

	return &Generator{
		client:    client,
		model:     model,
		maxTokens: defaultMaxTokens,
	}
}

func (g *Generator) Generate(ctx context.Context, content string, platform models.Platform, style string) (string, error) {
	prompt, err := buildPrompt(content, platform, style)
	if err != nil {
		return "", err
	}

	resp, err := g.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(g.model),
		MaxTokens: g.maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("anthropic request failed: %w", err)
	}

	var text strings.Builder

	for _, block := range resp.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}

	draft := strings.TrimSpace(text.String())
	if draft == "" {
		return "", fmt.Errorf("anthropic returned an empty draft for %s", platform)
	}

	return draft, nil
}

// buildPrompt renders the per-platform instruction block. Character limits
// are stated in the prompt so the model aims for them, not enforced here.
func buildPrompt(content string, platform models.Platform, style string) (string, error) {
	if style == "" {
		style = "professional"
	}

	switch platform {
	case models.PlatformTwitter:
		return fmt.Sprintf(`Based on the following content, generate a compelling Twitter post that is:
- Concise (under %d characters)
- Engaging and informative
- Style: %s
- Include relevant hashtags if appropriate

Content:
%s

Generate only the tweet text, nothing else.`, platforms.Limit(platform), style, content), nil
	case models.PlatformLinkedIn:
		return fmt.Sprintf(`Based on the following content, generate a professional LinkedIn post that:
- Is engaging and thought-provoking
- Includes relevant insights or takeaways
- Style: %s
- Can be longer than Twitter (up to %d characters)
- Include relevant hashtags

Content:
%s

Generate only the LinkedIn post text, nothing else.`, style, platforms.Limit(platform), content), nil
	case models.PlatformReddit:
		return fmt.Sprintf(`Based on the following content, generate a Reddit post that:
- Reads like a genuine community submission, not an advertisement
- Leads with the most interesting detail
- Style: %s

Content:
%s

Generate only the post text, nothing else.`, style, content), nil
	default:
		return "", fmt.Errorf("no prompt defined for platform '%s'", platform)
	}
}
