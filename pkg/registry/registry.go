package registry

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/kaljuvee/postwave/pkg/protocol"
)

// Registry holds the collaborator factories available to the pipeline:
// fetchers pull content, generators draft posts, publishers push them out.
// Factory configs are validated against the factory's JSON schema before
// the collaborator is created.
type Registry struct {
	logger             *slog.Logger
	fetcherFactories   map[string]protocol.FetcherFactory
	generatorFactories map[string]protocol.GeneratorFactory
	publisherFactories map[string]protocol.PublisherFactory
}

func NewRegistry(logger *slog.Logger) *Registry {
	return &Registry{
		logger:             logger,
		fetcherFactories:   make(map[string]protocol.FetcherFactory),
		generatorFactories: make(map[string]protocol.GeneratorFactory),
		publisherFactories: make(map[string]protocol.PublisherFactory),
	}
}

func (r *Registry) RegisterFetcher(factory protocol.FetcherFactory) {
	r.fetcherFactories[factory.ID()] = factory
}

func (r *Registry) RegisterGenerator(factory protocol.GeneratorFactory) {
	r.generatorFactories[factory.ID()] = factory
}

func (r *Registry) RegisterPublisher(factory protocol.PublisherFactory) {
	r.publisherFactories[factory.ID()] = factory
}

func (r *Registry) CreateFetcher(ctx context.Context, id string, config map[string]any) (protocol.Fetcher, error) {
	factory, ok := r.fetcherFactories[id]
	if !ok {
		return nil, fmt.Errorf("fetcher '%s' not registered", id)
	}

	if err := validateConfig(config, factory.Schema()); err != nil {
		return nil, fmt.Errorf("fetcher '%s' config: %w", id, err)
	}

	return factory.Create(ctx, config)
}

func (r *Registry) CreateGenerator(ctx context.Context, id string, config map[string]any) (protocol.Generator, error) {
	factory, ok := r.generatorFactories[id]
	if !ok {
		return nil, fmt.Errorf("generator '%s' not registered", id)
	}

	if err := validateConfig(config, factory.Schema()); err != nil {
		return nil, fmt.Errorf("generator '%s' config: %w", id, err)
	}

	return factory.Create(ctx, config)
}

func (r *Registry) CreatePublisher(ctx context.Context, id string, config map[string]any) (protocol.Publisher, error) {
	factory, ok := r.publisherFactories[id]
	if !ok {
		return nil, fmt.Errorf("publisher '%s' not registered", id)
	}

	if err := validateConfig(config, factory.Schema()); err != nil {
		return nil, fmt.Errorf("publisher '%s' config: %w", id, err)
	}

	return factory.Create(ctx, config)
}

func (r *Registry) AvailableFetchers() []string {
	return sortedKeys(r.fetcherFactories)
}

func (r *Registry) AvailableGenerators() []string {
	return sortedKeys(r.generatorFactories)
}

func (r *Registry) AvailablePublishers() []string {
	return sortedKeys(r.publisherFactories)
}

// validateConfig checks the config against the factory's JSON schema. A nil
// schema means the factory accepts anything.
func validateConfig(config, schema map[string]any) error {
	if schema == nil {
		return nil
	}

	if config == nil {
		config = map[string]any{}
	}

	schemaLoader := gojsonschema.NewGoLoader(schema)
	dataLoader := gojsonschema.NewGoLoader(config)

	result, err := gojsonschema.Validate(schemaLoader, dataLoader)
	if err != nil {
		return err
	}

	if !result.Valid() {
		messages := make([]string, 0, len(result.Errors()))
		for _, resultErr := range result.Errors() {
			messages = append(messages, resultErr.String())
		}

		return fmt.Errorf("schema validation failed: %s", strings.Join(messages, "; "))
	}

	return nil
}

func sortedKeys[T any](factories map[string]T) []string {
	keys := make([]string, 0, len(factories))
	for key := range factories {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	return keys
}
