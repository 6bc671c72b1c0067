package arcade

import (
	"context"

	"github.com/kaljuvee/postwave/pkg/protocol"
)

// PublisherFactory creates Arcade publisher instances.
type PublisherFactory struct{}

func NewPublisherFactory() protocol.PublisherFactory {
	return &PublisherFactory{}
}

func (f *PublisherFactory) ID() string {
	return "arcade"
}

func (f *PublisherFactory) Schema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"base_url": map[string]any{
				"type":        "string",
				"description": "Arcade API base URL",
				"default":     DefaultBaseURL,
			},
			"api_key": map[string]any{
				"type":        "string",
				"description": "Arcade API key",
			},
			"user_id": map[string]any{
				"type":        "string",
				"description": "Arcade user the platform grants belong to",
			},
		},
		"required": []string{"api_key", "user_id"},
	}
}

func (f *PublisherFactory) Create(_ context.Context, config map[string]any) (protocol.Publisher, error) {
	baseURL, _ := config["base_url"].(string)
	apiKey, _ := config["api_key"].(string)
	userID, _ := config["user_id"].(string)

	return NewPublisher(baseURL, apiKey, userID), nil
}
