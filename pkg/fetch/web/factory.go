package web

import (
	"context"

	"github.com/kaljuvee/postwave/pkg/protocol"
)

// FetcherFactory creates web fetcher instances.
type FetcherFactory struct{}

func NewFetcherFactory() protocol.FetcherFactory {
	return &FetcherFactory{}
}

func (f *FetcherFactory) ID() string {
	return "web"
}

// Schema returns the JSON schema for web fetcher configuration.
func (f *FetcherFactory) Schema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"timeout": map[string]any{
				"type":        "number",
				"description": "Request timeout in seconds",
				"default":     30,
				"minimum":     1,
				"maximum":     300,
			},
			"headers": map[string]any{
				"type":        "object",
				"description": "Extra HTTP headers sent with every fetch",
			},
		},
	}
}

func (f *FetcherFactory) Create(_ context.Context, config map[string]any) (protocol.Fetcher, error) {
	return NewFetcher(config)
}
