// Package protocol defines the interfaces and contracts for the pipeline's
// external collaborators.
package protocol

import (
	"context"

	"github.com/kaljuvee/postwave/pkg/models"
)

// Fetcher extracts readable text from a source URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// Generator produces platform-specific post text from source content.
type Generator interface {
	Generate(ctx context.Context, content string, platform models.Platform, style string) (string, error)
}

// Publisher submits finished post text to a platform and returns the
// platform-assigned post identifier.
type Publisher interface {
	Publish(ctx context.Context, platform models.Platform, content string) (string, error)
}

// FetcherFactory creates fetcher instances from configuration.
type FetcherFactory interface {
	// ID returns the unique identifier for this fetcher type
	ID() string

	// Schema returns the JSON schema for configuring this fetcher
	Schema() map[string]any

	// Create creates a new fetcher instance with the given configuration
	Create(ctx context.Context, config map[string]any) (Fetcher, error)
}

// GeneratorFactory creates generator instances from configuration.
type GeneratorFactory interface {
	ID() string
	Schema() map[string]any
	Create(ctx context.Context, config map[string]any) (Generator, error)
}

// PublisherFactory creates publisher instances from configuration.
type PublisherFactory interface {
	ID() string
	Schema() map[string]any
	Create(ctx context.Context, config map[string]any) (Publisher, error)
}
