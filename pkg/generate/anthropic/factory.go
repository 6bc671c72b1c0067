package anthropic

import (
	"context"

	"github.com/kaljuvee/postwave/pkg/protocol"
)

// GeneratorFactory creates Claude-backed generator instances.
type GeneratorFactory struct{}

func NewGeneratorFactory() protocol.GeneratorFactory {
	return &GeneratorFactory{}
}

func (f *GeneratorFactory) ID() string {
	return "anthropic"
}

func (f *GeneratorFactory) Schema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"api_key": map[string]any{
				"type":        "string",
				"description": "Anthropic API key. Falls back to ANTHROPIC_API_KEY when unset",
			},
			"model": map[string]any{
				"type":        "string",
				"description": "Model identifier",
				"default":     DefaultModel,
			},
		},
	}
}

func (f *GeneratorFactory) Create(_ context.Context, config map[string]any) (protocol.Generator, error) {
	apiKey, _ := config["api_key"].(string)
	model, _ := config["model"].(string)

	return NewGenerator(apiKey, model), nil
}
