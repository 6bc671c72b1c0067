package sandbox

import (
	"context"

	"github.com/kaljuvee/postwave/pkg/protocol"
)

// PublisherFactory creates sandbox publisher instances.
type PublisherFactory struct{}

func NewPublisherFactory() protocol.PublisherFactory {
	return &PublisherFactory{}
}

func (f *PublisherFactory) ID() string {
	return "sandbox"
}

func (f *PublisherFactory) Schema() map[string]any {
	return map[string]any{
		"type":       "object",
		"properties": map[string]any{},
	}
}

func (f *PublisherFactory) Create(_ context.Context, _ map[string]any) (protocol.Publisher, error) {
	return NewPublisher(), nil
}
