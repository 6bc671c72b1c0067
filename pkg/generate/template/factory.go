package template

import (
	"context"

	"github.com/kaljuvee/postwave/pkg/protocol"
)

// GeneratorFactory creates template generator instances.
type GeneratorFactory struct{}

func NewGeneratorFactory() protocol.GeneratorFactory {
	return &GeneratorFactory{}
}

func (f *GeneratorFactory) ID() string {
	return "template"
}

func (f *GeneratorFactory) Schema() map[string]any {
	return map[string]any{
		"type":       "object",
		"properties": map[string]any{},
	}
}

func (f *GeneratorFactory) Create(_ context.Context, _ map[string]any) (protocol.Generator, error) {
	return NewGenerator()
}
