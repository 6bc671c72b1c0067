// Package arcade publishes posts through the Arcade social posting API.
package arcade

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/kaljuvee/postwave/pkg/models"
)

const (
	DefaultBaseURL = "https://api.arcade.dev/v1"
	defaultTimeout = 30 * time.Second
)

// Publisher submits post content to Arcade, which holds the platform OAuth
// grants for the configured user.
type Publisher struct {
	client  *http.Client
	baseURL string
	apiKey  string
	userID  string
}

func NewPublisher(baseURL, apiKey, userID string) *Publisher {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &Publisher{
		client:  &http.Client{Timeout: defaultTimeout},
		baseURL: baseURL,
		apiKey:  apiKey,
		userID:  userID,
	}
}

type postRequest struct {
	Platform string `json:"platform"`
	UserID   string `json:"user_id"`
	Content  string `json:"content"`
}

type postResponse struct {
	ID string `json:"id"`
}

func (p *Publisher) Publish(ctx context.Context, platform models.Platform, content string) (string, error) {
	payload, err := json.Marshal(postRequest{
		Platform: string(platform),
		UserID:   p.userID,
		Content:  content,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode post request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/posts", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create post request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("arcade request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read arcade response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("arcade returned status %d: %s", resp.StatusCode, string(body))
	}

	var result postResponse

	err = json.Unmarshal(body, &result)
	if err != nil {
		return "", fmt.Errorf("failed to decode arcade response: %w", err)
	}

	if result.ID == "" {
		return "", fmt.Errorf("arcade response for %s post carried no id", platform)
	}

	return result.ID, nil
}
