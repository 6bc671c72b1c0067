// Package cmd provides common initialization for the command-line binaries.
package cmd

import (
	"context"
	"log/slog"

	"github.com/kaljuvee/postwave/pkg/fetch/web"
	"github.com/kaljuvee/postwave/pkg/generate/anthropic"
	"github.com/kaljuvee/postwave/pkg/generate/template"
	"github.com/kaljuvee/postwave/pkg/protocol"
	"github.com/kaljuvee/postwave/pkg/publish/arcade"
	"github.com/kaljuvee/postwave/pkg/publish/sandbox"
	"github.com/kaljuvee/postwave/pkg/registry"
)

// NewRegistry creates a registry with all native collaborator factories.
func NewRegistry(logger *slog.Logger) *registry.Registry {
	reg := registry.NewRegistry(logger)

	reg.RegisterFetcher(web.NewFetcherFactory())
	reg.RegisterGenerator(anthropic.NewGeneratorFactory())
	reg.RegisterGenerator(template.NewGeneratorFactory())
	reg.RegisterPublisher(arcade.NewPublisherFactory())
	reg.RegisterPublisher(sandbox.NewPublisherFactory())

	return reg
}

// CollaboratorConfig selects and configures the three collaborators a
// pipeline engine needs.
type CollaboratorConfig struct {
	Fetcher         string
	Generator       string
	Publisher       string
	AnthropicAPIKey string
	AnthropicModel  string
	ArcadeBaseURL   string
	ArcadeAPIKey    string
	ArcadeUserID    string
}

// Collaborators builds the configured fetcher, generator and publisher from
// the registry.
func Collaborators(ctx context.Context, reg *registry.Registry, cfg CollaboratorConfig) (protocol.Fetcher, protocol.Generator, protocol.Publisher, error) {
	if cfg.Fetcher == "" {
		cfg.Fetcher = "web"
	}

	if cfg.Generator == "" {
		cfg.Generator = "template"
	}

	if cfg.Publisher == "" {
		cfg.Publisher = "sandbox"
	}

	fetcher, err := reg.CreateFetcher(ctx, cfg.Fetcher, map[string]any{})
	if err != nil {
		return nil, nil, nil, err
	}

	generatorConfig := map[string]any{}
	if cfg.Generator == "anthropic" {
		generatorConfig["api_key"] = cfg.AnthropicAPIKey
		if cfg.AnthropicModel != "" {
			generatorConfig["model"] = cfg.AnthropicModel
		}
	}

	generator, err := reg.CreateGenerator(ctx, cfg.Generator, generatorConfig)
	if err != nil {
		return nil, nil, nil, err
	}

	publisherConfig := map[string]any{}
	if cfg.Publisher == "arcade" {
		publisherConfig["api_key"] = cfg.ArcadeAPIKey
		publisherConfig["user_id"] = cfg.ArcadeUserID

		if cfg.ArcadeBaseURL != "" {
			publisherConfig["base_url"] = cfg.ArcadeBaseURL
		}
	}

	publisher, err := reg.CreatePublisher(ctx, cfg.Publisher, publisherConfig)
	if err != nil {
		return nil, nil, nil, err
	}

	return fetcher, generator, publisher, nil
}
